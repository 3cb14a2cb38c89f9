package resource_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-console/internal/domain/resource"
)

func TestLookup_EndpointsDelAPI(t *testing.T) {
	md, ok := resource.Lookup(resource.WarehouseDocument)
	require.True(t, ok)
	assert.Equal(t, "/warehouse-document", md.Endpoint)
	assert.Equal(t, "warehouse-documents", md.Route)

	md, ok = resource.Lookup(resource.BoxShift)
	require.True(t, ok)
	assert.Equal(t, "/boxshift", md.Endpoint)

	_, ok = resource.Lookup("inexistente")
	assert.False(t, ok)
}

func TestAll_ClavesYRutasUnicas(t *testing.T) {
	keys := map[string]bool{}
	routes := map[string]bool{}
	for _, md := range resource.All() {
		assert.False(t, keys[md.Key], "clave duplicada %s", md.Key)
		assert.False(t, routes[md.Route], "ruta duplicada %s", md.Route)
		keys[md.Key] = true
		routes[md.Route] = true
		assert.NotEmpty(t, md.Name)
		assert.NotEmpty(t, md.Endpoint)
	}
}

func TestMustLookup_Panic(t *testing.T) {
	assert.Panics(t, func() { resource.MustLookup("nada") })
}

// Package session raíz de la aplicación por usuario: cada token tiene su Session con el
// cliente del API y un store por módulo. Las sesiones se crean una vez, se reutilizan y
// se descartan tras un tiempo sin uso.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/backoffice-console/internal/application/dto"
	"github.com/jhoicas/backoffice-console/internal/application/forms"
	"github.com/jhoicas/backoffice-console/internal/application/store"
	"github.com/jhoicas/backoffice-console/internal/domain"
	"github.com/jhoicas/backoffice-console/internal/domain/entity"
	"github.com/jhoicas/backoffice-console/internal/domain/resource"
	"github.com/jhoicas/backoffice-console/internal/domain/warehouse"
	"github.com/jhoicas/backoffice-console/internal/infrastructure/restapi"
	"github.com/jhoicas/backoffice-console/pkg/logger"
)

// lookupPerPage tamaño de página de las listas de referencia.
const lookupPerPage = 100

// lookupResources módulos que alimentan selects de formularios.
var lookupResources = map[string]bool{
	resource.Motive:    true,
	resource.Warehouse: true,
	resource.Product:   true,
	resource.Client:    true,
	resource.Sale:      true,
	resource.Purchase:  true,
	resource.Box:       true,
	resource.PriceList: true,
}

// LookupCache caché de listas de referencia.
type LookupCache interface {
	Get(ctx context.Context, key string, fetch func(context.Context) ([]byte, error)) ([]byte, error)
	Invalidate(ctx context.Context, prefix string) error
}

// Session estado de la consola para un token.
type Session struct {
	key     string
	client  *restapi.Client
	lookups LookupCache
	log     *logger.Logger

	Boxes               *store.Store[entity.Box]
	BoxShifts           *store.BoxShiftStore
	BoxMovements        *store.Store[entity.BoxMovement]
	Clients             *store.Store[entity.Client]
	CreditNotes         *store.CreditNoteStore
	PurchaseCreditNotes *store.Store[entity.PurchaseCreditNote]
	PriceLists          *store.PriceListStore
	WarehouseDocuments  *store.WarehouseDocumentStore
	Kardex              *store.Store[entity.KardexEntry]
	ValuatedInventory   *store.Store[entity.ValuatedInventoryRow]
	Motives             *store.Store[entity.Motive]
	Warehouses          *store.Store[entity.Warehouse]
	Products            *store.Store[entity.Product]
	Sales               *store.Store[entity.Sale]
	Purchases           *store.Store[entity.Purchase]

	modules  map[string]Module
	byRoute  map[string]Module
	detaches []func()

	mu       sync.Mutex
	lastSeen time.Time
}

// Key identificador estable y no reversible del token (claves de caché, logs).
func Key(token string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("console-session:"+token)).String()
}

// New arma la sesión: un cliente ligado al token y un store por módulo.
func New(base *restapi.Client, token string, lookups LookupCache, log *logger.Logger) *Session {
	if log == nil {
		log = logger.Nop()
	}
	key := Key(token)
	c := base.WithToken(token)
	s := &Session{
		key:      key,
		client:   c,
		lookups:  lookups,
		log:      log,
		modules:  make(map[string]Module),
		byRoute:  make(map[string]Module),
		lastSeen: time.Now(),
	}

	md := resource.MustLookup

	s.Boxes = store.New[entity.Box](restapi.NewResource[entity.Box](c, md(resource.Box).Endpoint), func(b *entity.Box) int64 { return b.ID }, log)
	s.BoxShifts = store.NewBoxShiftStore(restapi.NewBoxShiftAPI(c), log)
	s.BoxMovements = store.New[entity.BoxMovement](restapi.NewResource[entity.BoxMovement](c, md(resource.BoxMovement).Endpoint), func(m *entity.BoxMovement) int64 { return m.ID }, log)
	s.Clients = store.New[entity.Client](restapi.NewResource[entity.Client](c, md(resource.Client).Endpoint), func(x *entity.Client) int64 { return x.ID }, log)
	s.CreditNotes = store.NewCreditNoteStore(restapi.NewCreditNoteAPI(c), log)
	s.PurchaseCreditNotes = store.New[entity.PurchaseCreditNote](restapi.NewResource[entity.PurchaseCreditNote](c, md(resource.PurchaseCreditNote).Endpoint), func(x *entity.PurchaseCreditNote) int64 { return x.ID }, log)
	s.PriceLists = store.NewPriceListStore(restapi.NewPriceListAPI(c), log)
	s.WarehouseDocuments = store.NewWarehouseDocumentStore(restapi.NewWarehouseDocumentAPI(c), log)
	s.Kardex = store.New[entity.KardexEntry](restapi.NewResource[entity.KardexEntry](c, md(resource.Kardex).Endpoint), nil, log)
	s.ValuatedInventory = store.New[entity.ValuatedInventoryRow](restapi.NewResource[entity.ValuatedInventoryRow](c, md(resource.ValuatedInventory).Endpoint), nil, log)
	s.Motives = store.New[entity.Motive](restapi.NewResource[entity.Motive](c, md(resource.Motive).Endpoint), func(x *entity.Motive) int64 { return x.ID }, log)
	s.Warehouses = store.New[entity.Warehouse](restapi.NewResource[entity.Warehouse](c, md(resource.Warehouse).Endpoint), func(x *entity.Warehouse) int64 { return x.ID }, log)
	s.Products = store.New[entity.Product](restapi.NewResource[entity.Product](c, md(resource.Product).Endpoint), func(x *entity.Product) int64 { return x.ID }, log)
	s.Sales = store.New[entity.Sale](restapi.NewResource[entity.Sale](c, md(resource.Sale).Endpoint), func(x *entity.Sale) int64 { return x.ID }, log)
	s.Purchases = store.New[entity.Purchase](restapi.NewResource[entity.Purchase](c, md(resource.Purchase).Endpoint), func(x *entity.Purchase) int64 { return x.ID }, log)

	s.register(newWriteModule(md(resource.Box), s.Boxes, same[dto.BoxRequest]), s.Boxes.Detach)
	s.register(&readModule[entity.BoxShift]{md: md(resource.BoxShift), store: s.BoxShifts.Store}, s.BoxShifts.Detach)
	s.register(newWriteModule(md(resource.BoxMovement), s.BoxMovements, same[dto.CreateBoxMovementRequest]), s.BoxMovements.Detach)
	s.register(newWriteModule(md(resource.Client), s.Clients, same[dto.ClientRequest]), s.Clients.Detach)
	s.register(newWriteModule(md(resource.CreditNote), s.CreditNotes.Store, forms.CreditNoteForm.Payload), s.CreditNotes.Detach)
	s.register(newWriteModule(md(resource.PurchaseCreditNote), s.PurchaseCreditNotes, forms.PurchaseCreditNoteForm.Payload), s.PurchaseCreditNotes.Detach)
	s.register(newWriteModule(md(resource.PriceList), s.PriceLists.Store, same[dto.PriceListRequest]), s.PriceLists.Detach)
	docs := newWriteModule(md(resource.WarehouseDocument), s.WarehouseDocuments.Store, forms.WarehouseDocumentForm.Payload)
	docs.guard = s.WarehouseDocuments.Guard
	s.register(&warehouseModule{writeModule: docs}, s.WarehouseDocuments.Detach)
	s.register(&readModule[entity.KardexEntry]{md: md(resource.Kardex), store: s.Kardex}, s.Kardex.Detach)
	s.register(&readModule[entity.ValuatedInventoryRow]{md: md(resource.ValuatedInventory), store: s.ValuatedInventory}, s.ValuatedInventory.Detach)
	s.register(&readModule[entity.Motive]{md: md(resource.Motive), store: s.Motives}, s.Motives.Detach)
	s.register(&readModule[entity.Warehouse]{md: md(resource.Warehouse), store: s.Warehouses}, s.Warehouses.Detach)
	s.register(&readModule[entity.Product]{md: md(resource.Product), store: s.Products}, s.Products.Detach)
	s.register(&readModule[entity.Sale]{md: md(resource.Sale), store: s.Sales}, s.Sales.Detach)
	s.register(&readModule[entity.Purchase]{md: md(resource.Purchase), store: s.Purchases}, s.Purchases.Detach)
	return s
}

func (s *Session) register(m Module, detach func()) {
	s.modules[m.Meta().Key] = m
	s.byRoute[m.Meta().Route] = m
	s.detaches = append(s.detaches, detach)
}

// Key identificador de la sesión.
func (s *Session) Key() string { return s.key }

// Module módulo por clave.
func (s *Session) Module(key string) (Module, bool) {
	m, ok := s.modules[key]
	return m, ok
}

// ModuleByRoute módulo por ruta de la consola (ej. "warehouse-documents").
func (s *Session) ModuleByRoute(route string) (Module, bool) {
	m, ok := s.byRoute[route]
	return m, ok
}

// Touch marca la sesión como usada.
func (s *Session) Touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

// LastSeen último uso.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Close cierra todos los stores: las respuestas en curso se descartan.
func (s *Session) Close(ctx context.Context) {
	for _, d := range s.detaches {
		d()
	}
	if s.lookups != nil {
		if err := s.lookups.Invalidate(ctx, lookupPrefix(s.key)); err != nil {
			s.log.Warn().Err(err).Str("session", s.key).Msg("session: no se pudo limpiar la caché")
		}
	}
}

// BoxShiftMovements movimientos de un turno (listado de movimientos filtrado por turno).
func (s *Session) BoxShiftMovements(ctx context.Context, shiftID int64, params dto.ListParams) ListView {
	if params.Filters == nil {
		params.Filters = map[string]string{}
	}
	params.Filters["box_shift_id"] = strconv.FormatInt(shiftID, 10)
	return listView(resource.MustLookup(resource.BoxMovement), s.BoxMovements.FetchList(ctx, params))
}

// Lookup lista de referencia para selects, desde caché si está disponible.
func (s *Session) Lookup(ctx context.Context, key string) (json.RawMessage, error) {
	md, ok := resource.Lookup(key)
	if !ok || !lookupResources[key] {
		return nil, fmt.Errorf("%w: lista %q", domain.ErrNotFound, key)
	}
	fetch := func(ctx context.Context) ([]byte, error) {
		q := url.Values{}
		q.Set("per_page", strconv.Itoa(lookupPerPage))
		raw, err := s.client.GetRaw(ctx, md.Endpoint, q)
		if err != nil {
			return nil, err
		}
		var env struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 {
			return env.Data, nil
		}
		return raw, nil
	}
	if s.lookups == nil {
		return fetch(ctx)
	}
	return s.lookups.Get(ctx, lookupPrefix(s.key)+key, fetch)
}

func lookupPrefix(sessionKey string) string {
	return "lookup:" + sessionKey + ":"
}

// warehouseModule agrega al detalle las acciones disponibles según el estado.
type warehouseModule struct {
	*writeModule[entity.WarehouseDocument, forms.WarehouseDocumentForm, dto.WarehouseDocumentRequest]
}

func (m *warehouseModule) Get(ctx context.Context, id int64) ItemView {
	v := m.writeModule.Get(ctx, id)
	if doc, ok := v.Item.(*entity.WarehouseDocument); ok {
		for _, a := range warehouse.AvailableActions(warehouse.StatusOf(doc)) {
			v.Actions = append(v.Actions, string(a))
		}
	}
	return v
}

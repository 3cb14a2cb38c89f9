package validation

import "sort"

// RootField clave de los errores que no pertenecen a un campo (banner del formulario).
const RootField = ""

// FormErrors errores de un formulario: por campo (ruta JSON, ej. "weight_ranges[1].max_weight")
// y de nivel raíz.
type FormErrors struct {
	Fields map[string][]string `json:"fields,omitempty"`
	Root   []string            `json:"root,omitempty"`
}

// Add agrega un mensaje a un campo; path vacío lo agrega a la raíz.
func (e *FormErrors) Add(path, msg string) {
	if path == RootField {
		e.Root = append(e.Root, msg)
		return
	}
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[path] = append(e.Fields[path], msg)
}

// Merge incorpora los errores de otro formulario.
func (e *FormErrors) Merge(other FormErrors) {
	for path, msgs := range other.Fields {
		for _, m := range msgs {
			e.Add(path, m)
		}
	}
	e.Root = append(e.Root, other.Root...)
}

// Count total de mensajes (banner "N errores").
func (e FormErrors) Count() int {
	n := len(e.Root)
	for _, msgs := range e.Fields {
		n += len(msgs)
	}
	return n
}

// HasErrors indica si hay al menos un error.
func (e FormErrors) HasErrors() bool { return e.Count() > 0 }

// Has indica si un campo tiene errores.
func (e FormErrors) Has(path string) bool {
	if path == RootField {
		return len(e.Root) > 0
	}
	return len(e.Fields[path]) > 0
}

// Paths campos con error, ordenados.
func (e FormErrors) Paths() []string {
	out := make([]string, 0, len(e.Fields))
	for p := range e.Fields {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

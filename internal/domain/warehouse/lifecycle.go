// Package warehouse concentra el ciclo de vida de los documentos de almacén:
// BORRADOR → CONFIRMADO → CANCELADO. La tabla de transiciones es la única fuente
// para decidir qué acciones se ofrecen y qué llamadas se permiten; el API sigue
// siendo la autoridad y rechaza transiciones inválidas por su cuenta.
package warehouse

import "github.com/jhoicas/backoffice-console/internal/domain/entity"

// Status estado de un documento de almacén.
type Status string

const (
	StatusDraft     Status = "BORRADOR"
	StatusConfirmed Status = "CONFIRMADO"
	StatusCancelled Status = "CANCELADO"
)

// Valid indica si el estado es uno de los tres conocidos.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// Action acción de usuario sobre un documento.
type Action string

const (
	ActionView    Action = "view"
	ActionEdit    Action = "edit"
	ActionConfirm Action = "confirm"
	ActionDelete  Action = "delete"
	ActionCancel  Action = "cancel"
)

// transitions estados destino permitidos desde cada estado.
var transitions = map[Status][]Status{
	StatusDraft:     {StatusConfirmed},
	StatusConfirmed: {StatusCancelled},
	StatusCancelled: nil,
}

// actions acciones disponibles por estado, en orden de presentación.
var actions = map[Status][]Action{
	StatusDraft:     {ActionView, ActionEdit, ActionConfirm, ActionDelete},
	StatusConfirmed: {ActionView, ActionCancel},
	StatusCancelled: {ActionView},
}

// CanTransition indica si un documento en current puede pasar a target.
func CanTransition(current, target Status) bool {
	for _, s := range transitions[current] {
		if s == target {
			return true
		}
	}
	return false
}

// Target estado al que lleva una acción de transición; ok=false si la acción no cambia el estado.
func (a Action) Target() (Status, bool) {
	switch a {
	case ActionConfirm:
		return StatusConfirmed, true
	case ActionCancel:
		return StatusCancelled, true
	}
	return "", false
}

// AvailableActions acciones que la consola ofrece para un estado.
// Un estado desconocido solo permite ver.
func AvailableActions(s Status) []Action {
	list, ok := actions[s]
	if !ok {
		return []Action{ActionView}
	}
	out := make([]Action, len(list))
	copy(out, list)
	return out
}

// Allows indica si la acción está disponible en el estado.
func Allows(s Status, a Action) bool {
	for _, x := range AvailableActions(s) {
		if x == a {
			return true
		}
	}
	return false
}

// StatusOf estado tipado de un documento.
func StatusOf(doc *entity.WarehouseDocument) Status {
	if doc == nil {
		return ""
	}
	return Status(doc.Status)
}

// RequiresDestination indica si el tipo de documento exige almacén (y responsable) de destino.
func RequiresDestination(documentType string) bool {
	return documentType == entity.DocumentTypeTraslado
}

package permission

import (
	"github.com/velumpress/cms/pkg/model"
)

//go:generate go run github.com/dmarkham/enumer -type Action -trimprefix Action -transform lower -json -text -output action_enumer.go

// Action is what a request attempts on content
type Action int

const (
	ActionRead Action = iota
	ActionCreate
	ActionEdit
	ActionDelete
)

// Capability is a single grant a user may hold
type Capability uint8

const (
	CapCreate Capability = 1 << iota
	CapEdit
	CapDelete
)

// Capabilities is a set of Capability values
type Capabilities uint8

// Has reports whether the set contains c
func (s Capabilities) Has(c Capability) bool {
	return s&Capabilities(c) != 0
}

// CapabilitiesOf maps the stored permission flags onto a capability set
func CapabilitiesOf(p model.Permissions) Capabilities {
	var s Capabilities
	if p.CanCreate {
		s |= Capabilities(CapCreate)
	}
	if p.CanEdit {
		s |= Capabilities(CapEdit)
	}
	if p.CanDelete {
		s |= Capabilities(CapDelete)
	}
	return s
}

// Required returns the capability an action needs; reads need none
func (a Action) Required() (Capability, bool) {
	switch a {
	case ActionCreate:
		return CapCreate, true
	case ActionEdit:
		return CapEdit, true
	case ActionDelete:
		return CapDelete, true
	}
	return 0, false
}

var denials = map[Action]string{
	ActionCreate: "No tienes permiso para crear contenido",
	ActionEdit:   "No tienes permiso para editar contenido",
	ActionDelete: "No tienes permiso para eliminar contenido",
}

// Decision is the outcome of evaluating an action for a user
type Decision struct {
	Allowed bool
	// RequiresApproval asks the caller to queue the mutation rather than apply it
	RequiresApproval bool
	// Reason is the user-facing denial message
	Reason string
}

// Evaluate decides whether user may perform action
func Evaluate(user *model.User, action Action) Decision {
	if user == nil {
		return Decision{Reason: "No autorizado"}
	}
	if user.IsAdmin() {
		return Decision{Allowed: true}
	}

	required, needsCapability := action.Required()
	if !needsCapability {
		return Decision{Allowed: true}
	}
	if !CapabilitiesOf(user.Permissions).Has(required) {
		return Decision{Reason: denials[action]}
	}

	return Decision{
		Allowed:          true,
		RequiresApproval: user.Permissions.RequiresApproval,
	}
}

// CanAccessCountry reports whether user may mutate content of the given country
func CanAccessCountry(user *model.User, code string) bool {
	if user == nil {
		return false
	}
	if user.IsAdmin() {
		return true
	}
	for _, c := range user.Countries {
		if c == model.AllCountries || c == code {
			return true
		}
	}
	return false
}

package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/velumpress/cms/pkg/model"
)

func editor(p model.Permissions, countries ...string) *model.User {
	return &model.User{ID: "e1", Username: "editor", Role: model.RoleEditor, Countries: countries, Permissions: p}
}

func TestEvaluate(t *testing.T) {
	admin := &model.User{ID: "admin", Role: model.RoleAdmin, Permissions: model.Permissions{RequiresApproval: true}}
	createOnly := editor(model.Permissions{CanCreate: true})
	moderated := editor(model.Permissions{CanCreate: true, CanEdit: true, CanDelete: true, RequiresApproval: true})
	nothing := editor(model.Permissions{RequiresApproval: true})

	tests := []struct {
		name     string
		user     *model.User
		action   Action
		allowed  bool
		approval bool
		reason   string
	}{
		{"admin deletes", admin, ActionDelete, true, false, ""},
		{"admin ignores approval flag", admin, ActionCreate, true, false, ""},
		{"read always allowed", nothing, ActionRead, true, false, ""},
		{"create with capability", createOnly, ActionCreate, true, false, ""},
		{"edit without capability", createOnly, ActionEdit, false, false, "No tienes permiso para editar contenido"},
		{"delete without capability", createOnly, ActionDelete, false, false, "No tienes permiso para eliminar contenido"},
		{"moderated create", moderated, ActionCreate, true, true, ""},
		{"moderated delete", moderated, ActionDelete, true, true, ""},
		{"moderated read", moderated, ActionRead, true, false, ""},
		{"denied before approval", nothing, ActionCreate, false, false, "No tienes permiso para crear contenido"},
		{"anonymous", nil, ActionRead, false, false, "No autorizado"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Evaluate(tt.user, tt.action)
			assert.Equal(t, tt.allowed, d.Allowed)
			assert.Equal(t, tt.approval, d.RequiresApproval)
			assert.Equal(t, tt.reason, d.Reason)
		})
	}
}

func TestCanAccessCountry(t *testing.T) {
	assert.True(t, CanAccessCountry(&model.User{Role: model.RoleAdmin}, "ve"))
	assert.True(t, CanAccessCountry(editor(model.Permissions{}, model.AllCountries), "ve"))
	assert.True(t, CanAccessCountry(editor(model.Permissions{}, "co", "ve"), "ve"))
	assert.False(t, CanAccessCountry(editor(model.Permissions{}, "co"), "ve"))
	assert.False(t, CanAccessCountry(editor(model.Permissions{}), "ve"))
	assert.False(t, CanAccessCountry(nil, "ve"))
}

func TestCapabilities(t *testing.T) {
	caps := CapabilitiesOf(model.Permissions{CanCreate: true, CanDelete: true})
	assert.True(t, caps.Has(CapCreate))
	assert.False(t, caps.Has(CapEdit))
	assert.True(t, caps.Has(CapDelete))

	_, ok := ActionRead.Required()
	assert.False(t, ok)
}

func TestActionString(t *testing.T) {
	a, err := ActionString("DELETE")
	assert.NoError(t, err)
	assert.Equal(t, ActionDelete, a)
	assert.Equal(t, "edit", ActionEdit.String())

	_, err = ActionString("publish")
	assert.Error(t, err)
}

package content

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Prepare validates a create payload for sec and returns the record to
// store: defaults overlaid with the payload and a final id. The result is
// what gets queued for approval, so applying it later yields the same id.
func Prepare(sec *Section, data Record) (Record, error) {
	if err := requireFields(data, sec.Required, sec.RequiredMessage); err != nil {
		return nil, err
	}

	rec := sec.Defaults()
	for k, v := range data {
		if v == nil {
			continue
		}
		rec[k] = v
	}

	id, err := deriveID(data, sec.SlugFrom)
	if err != nil {
		return nil, err
	}
	rec["id"] = id
	return rec, nil
}

// PrepareChild validates a create payload for a nested record
func PrepareChild(c *Child, data Record) (Record, error) {
	if err := requireFields(data, c.Required(), c.RequiredMessage()); err != nil {
		return nil, err
	}

	rec := c.Defaults()
	for k, v := range data {
		if v == nil {
			continue
		}
		rec[k] = v
	}

	id, err := deriveID(data, "title")
	if err != nil {
		return nil, err
	}
	rec["id"] = id
	return rec, nil
}

// CheckUpdate validates an update payload: a given id must match the target
func CheckUpdate(id string, data Record) error {
	if given, ok := data["id"]; ok && given != nil && given != id {
		return Invalid("El ID no se puede modificar")
	}
	return nil
}

func requireFields(data Record, fields []string, msg string) error {
	for _, f := range fields {
		if isBlank(data[f]) {
			return Invalid(msg)
		}
	}
	return nil
}

func isBlank(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	}
	return false
}

func deriveID(data Record, slugFrom string) (string, error) {
	if slugFrom == "" {
		return uuid.NewString(), nil
	}

	if raw, ok := data["id"]; ok && !isBlank(raw) {
		id, ok := raw.(string)
		if !ok || !ValidID(id) {
			return "", Invalid(fmt.Sprintf("ID inválido: %v", raw))
		}
		return id, nil
	}

	source, _ := data[slugFrom].(string)
	id := Slugify(source)
	if id == "" {
		return "", Invalid("No se pudo generar un ID a partir de " + slugFrom)
	}
	return id, nil
}

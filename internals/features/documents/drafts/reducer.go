package drafts

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
)

const (
	ActionAddItem    = "add_item"
	ActionUpdateItem = "update_item"
	ActionRemoveItem = "remove_item"
	ActionSetField   = "set_field"
)

var ErrInvalidAction = errors.New("invalid draft action")

// Action is one edit against a draft.
//
//	add_item:    value = item object (id ignored)
//	update_item: itemId + value = partial item object
//	remove_item: itemId, or index when the client only knows the position
//	set_field:   field (json name of a scalar field) + value
type Action struct {
	Type   string          `json:"type"`
	ItemID string          `json:"itemId,omitempty"`
	Index  *int            `json:"index,omitempty"`
	Field  string          `json:"field,omitempty"`
	Value  json.RawMessage `json:"value,omitempty"`
}

// Reduce applies a to d and recomputes the derived fields.
func Reduce(d Draft, a Action) error {
	if err := apply(d, a); err != nil {
		return err
	}
	d.Recompute()
	return nil
}

// ReduceAll applies actions in order, stopping at the first failure.
func ReduceAll(d Draft, actions []Action) error {
	for i, a := range actions {
		if err := apply(d, a); err != nil {
			return fmt.Errorf("action %d (%s): %w", i, a.Type, err)
		}
	}
	d.Recompute()
	return nil
}

func apply(d Draft, a Action) error {
	list := d.list()
	switch a.Type {
	case ActionAddItem:
		_, err := list.addRaw(a.Value)
		return err

	case ActionUpdateItem:
		if a.ItemID == "" || len(a.Value) == 0 {
			return ErrInvalidAction
		}
		return list.updateRaw(a.ItemID, a.Value)

	case ActionRemoveItem:
		switch {
		case a.ItemID != "":
			if !list.remove(a.ItemID) {
				return ErrItemNotFound
			}
		case a.Index != nil:
			if !list.removeAt(*a.Index) {
				return ErrItemNotFound
			}
		default:
			return ErrInvalidAction
		}
		return nil

	case ActionSetField:
		field := strings.TrimSpace(a.Field)
		if field == "" || len(a.Value) == 0 || !settableFields(d)[field] {
			return ErrInvalidAction
		}
		patch, err := sonic.Marshal(map[string]json.RawMessage{field: a.Value})
		if err != nil {
			return err
		}
		return sonic.Unmarshal(patch, d)
	}
	return ErrInvalidAction
}

var settableCache sync.Map // reflect.Type -> map[string]bool

// settableFields lists the json names of d's client-editable scalar fields.
// Computed fields carry no validate tag and are left out, as are the item
// list and any nested struct.
func settableFields(d Draft) map[string]bool {
	t := reflect.TypeOf(d)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if cached, ok := settableCache.Load(t); ok {
		return cached.(map[string]bool)
	}
	out := make(map[string]bool)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Tag.Get("validate") == "" {
			continue
		}
		switch f.Type.Kind() {
		case reflect.String, reflect.Bool,
			reflect.Int, reflect.Int32, reflect.Int64,
			reflect.Float32, reflect.Float64:
		default:
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name != "" && name != "-" {
			out[name] = true
		}
	}
	settableCache.Store(t, out)
	return out
}

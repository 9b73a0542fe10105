package evaluator

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// Materialize deep-forces a value into a plain Go tree suitable for
// rendering: nil, bool, float64, string, []interface{} and
// map[string]interface{}. Hidden object fields are excluded and
// object assertions run before any field is read.
func (i *Interp) Materialize(v Value) (interface{}, error) {
	switch t := v.(type) {
	case *Null:
		return nil, nil
	case *Boolean:
		return t.Value, nil
	case *Number:
		return t.Value, nil
	case *String:
		return t.Value, nil
	case *Array:
		out := make([]interface{}, len(t.Elements))
		for idx, el := range t.Elements {
			ev, err := el.Force()
			if err != nil {
				return nil, err
			}
			m, err := i.Materialize(ev)
			if err != nil {
				return nil, err
			}
			out[idx] = m
		}
		return out, nil
	case *Object:
		if err := t.TriggerAsserts(t, i); err != nil {
			return nil, err
		}
		out := make(map[string]interface{}, len(t.VisibleKeyNames()))
		for _, name := range t.VisibleKeyNames() {
			fv, err := t.Value(name, t.At, i)
			if err != nil {
				return nil, err
			}
			m, err := i.Materialize(fv)
			if err != nil {
				return nil, err
			}
			out[name] = m
		}
		return out, nil
	default:
		return nil, i.errorWithStack(ErrTypeMismatch, v.Pos(),
			"cannot manifest %s", v.Kind())
	}
}

// ManifestJSON renders a value as canonical single-line JSON. This is
// also the representation "+" uses when concatenating a non-string
// onto a string.
func (i *Interp) ManifestJSON(v Value) (string, error) {
	tree, err := i.Materialize(v)
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(tree)
	if err != nil {
		return "", i.errorWithStack(ErrInternal, v.Pos(), "manifest: %v", err)
	}
	return string(data), nil
}

// ManifestJSONIndent renders a value as indented JSON.
func (i *Interp) ManifestJSONIndent(v Value, indent string) (string, error) {
	tree, err := i.Materialize(v)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(tree, "", indent)
	if err != nil {
		return "", i.errorWithStack(ErrInternal, v.Pos(), "manifest: %v", err)
	}
	return string(data), nil
}

// ManifestYAML renders a value as a YAML document.
func (i *Interp) ManifestYAML(v Value) (string, error) {
	tree, err := i.Materialize(v)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	enc := yaml.NewEncoder(&sb)
	enc.SetIndent(2)
	if err := enc.Encode(tree); err != nil {
		return "", i.errorWithStack(ErrInternal, v.Pos(), "manifest: %v", err)
	}
	if err := enc.Close(); err != nil {
		return "", i.errorWithStack(ErrInternal, v.Pos(), "manifest: %v", err)
	}
	return sb.String(), nil
}

package genre

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Ref is the normalized genre reference used everywhere past the API boundary.
type Ref struct {
	Name string `json:"name"`
}

// Input is a genre as supplied by a client: either a plain string or an
// object carrying a name. Both decode into the same value.
type Input struct {
	Name string
}

// Named returns an Input for name.
func Named(name string) Input {
	return Input{Name: name}
}

// Names converts plain names into inputs.
func Names(names ...string) []Input {
	out := make([]Input, 0, len(names))
	for _, n := range names {
		out = append(out, Input{Name: n})
	}
	return out
}

// UnmarshalJSON accepts "Action" or {"name": "Action"}. null decodes to an empty name.
func (in *Input) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		in.Name = ""
		return nil
	}

	switch data[0] {
	case '"':
		return json.Unmarshal(data, &in.Name)
	case '{':
		var obj struct {
			Name *string `json:"name"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		if obj.Name != nil {
			in.Name = *obj.Name
		}
		return nil
	default:
		return fmt.Errorf("genre must be a string or an object with a name, got %s", data)
	}
}

// MarshalJSON always emits the object shape.
func (in Input) MarshalJSON() ([]byte, error) {
	return json.Marshal(Ref{Name: in.Name})
}

// Normalize extracts names, drops empty ones and collapses exact duplicates.
// Names are case-sensitive; first-seen order is kept.
func Normalize(inputs []Input) []Ref {
	seen := make(map[string]struct{}, len(inputs))
	refs := make([]Ref, 0, len(inputs))
	for _, in := range inputs {
		if in.Name == "" {
			continue
		}
		if _, ok := seen[in.Name]; ok {
			continue
		}
		seen[in.Name] = struct{}{}
		refs = append(refs, Ref{Name: in.Name})
	}
	return refs
}

// RefNames returns the names of refs in order.
func RefNames(refs []Ref) []string {
	names := make([]string, len(refs))
	for i, r := range refs {
		names[i] = r.Name
	}
	return names
}

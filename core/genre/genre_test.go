package genre_test

import (
	"encoding/json"
	"testing"

	"anime-tracker/core/genre"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInput_UnmarshalJSON_DualShape(t *testing.T) {
	var inputs []genre.Input
	err := json.Unmarshal([]byte(`["Action", {"name": "Drama"}, {"id": 3}, null, ""]`), &inputs)
	require.NoError(t, err)

	require.Len(t, inputs, 5)
	assert.Equal(t, "Action", inputs[0].Name)
	assert.Equal(t, "Drama", inputs[1].Name)
	assert.Equal(t, "", inputs[2].Name)
	assert.Equal(t, "", inputs[3].Name)
	assert.Equal(t, "", inputs[4].Name)
}

func TestInput_UnmarshalJSON_RejectsOtherShapes(t *testing.T) {
	for _, raw := range []string{`[1]`, `[true]`, `[["Action"]]`} {
		var inputs []genre.Input
		assert.Error(t, json.Unmarshal([]byte(raw), &inputs), raw)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	var inputs []genre.Input
	require.NoError(t, json.Unmarshal([]byte(`["Action", "Action", {"name": "Action"}]`), &inputs))

	refs := genre.Normalize(inputs)
	assert.Equal(t, []genre.Ref{{Name: "Action"}}, refs)
	assert.Equal(t, refs, genre.Normalize(genre.Names(genre.RefNames(refs)...)))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		inputs []genre.Input
		want   []string
	}{
		{"Empty", nil, []string{}},
		{"Skips Empty Names", genre.Names("", "Comedy", ""), []string{"Comedy"}},
		{"Case Sensitive", genre.Names("Action", "action"), []string{"Action", "action"}},
		{"Keeps Order", genre.Names("Sci-Fi", "Action", "Sci-Fi", "Drama"), []string{"Sci-Fi", "Action", "Drama"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, genre.RefNames(genre.Normalize(tt.inputs)))
		})
	}
}

func TestInput_MarshalJSON(t *testing.T) {
	b, err := json.Marshal([]genre.Input{genre.Named("Action")})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name": "Action"}]`, string(b))
}

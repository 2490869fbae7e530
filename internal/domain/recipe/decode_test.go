package recipe

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// doc parses a JSON literal into the generic tree Decode expects.
func doc(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestDecode_RejectsWholeRecipe(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		want  error
		field string
	}{
		{"not a mapping", `[1, 2]`, ErrMissingOrInvalidOutput, "output"},
		{"missing output", `{"predicate": {"type": "tag", "id": "x:logs"}}`, ErrMissingOrInvalidOutput, "output"},
		{"output is a mapping", `{"output": {"type": "item"}, "predicate": {"type": "tag", "id": "x:logs"}}`, ErrMissingOrInvalidOutput, "output"},
		{"output is a string", `{"output": "x:plank", "predicate": {"type": "tag", "id": "x:logs"}}`, ErrMissingOrInvalidOutput, "output"},
		{"missing predicate", `{"output": []}`, ErrMissingOrInvalidPredicate, "predicate"},
		{"predicate is a list", `{"output": [], "predicate": ["tag"]}`, ErrMissingOrInvalidPredicate, "predicate"},
		{"predicate type item", `{"output": [], "predicate": {"type": "item", "id": "x:plank"}}`, ErrUnknownPredicateType, "predicate.type"},
		{"predicate type missing", `{"output": [], "predicate": {"id": "x:logs"}}`, ErrUnknownPredicateType, "predicate.type"},
		{"predicate type number", `{"output": [], "predicate": {"type": 3, "id": "x:logs"}}`, ErrUnknownPredicateType, "predicate.type"},
		{"predicate type wrong case", `{"output": [], "predicate": {"type": "Tag", "id": "x:logs"}}`, ErrUnknownPredicateType, "predicate.type"},
		{"tag without id", `{"output": [], "predicate": {"type": "tag"}}`, ErrMissingID, "predicate.id"},
		{"block without id", `{"output": [], "predicate": {"type": "block", "state": {"axis": "y"}}}`, ErrMissingID, "predicate.id"},
		{"id is a mapping", `{"output": [], "predicate": {"type": "tag", "id": {"a": 1}}}`, ErrMissingID, "predicate.id"},
		{"invalid id", `{"output": [], "predicate": {"type": "tag", "id": "X:Logs"}}`, ErrInvalidIdentifier, "predicate.id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Decode(doc(t, tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, Recipe{}, r, "no partial recipe on failure")

			var de *DecodeError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, tt.field, de.Field)
		})
	}
}

func TestDecode_OutputCheckedBeforePredicate(t *testing.T) {
	_, err := Decode(doc(t, `{}`))
	assert.ErrorIs(t, err, ErrMissingOrInvalidOutput)
}

func TestDecode_NilDocument(t *testing.T) {
	_, err := Decode(nil)
	assert.ErrorIs(t, err, ErrMissingOrInvalidOutput)
}

func TestDecode_ErrorsAreDistinct(t *testing.T) {
	_, err := Decode(doc(t, `{"output": [], "predicate": {"type": "item"}}`))
	assert.ErrorIs(t, err, ErrUnknownPredicateType)
	assert.NotErrorIs(t, err, ErrMissingID)
	assert.NotErrorIs(t, err, ErrMissingOrInvalidPredicate)
}

func TestDecode_TagPredicate(t *testing.T) {
	r, err := Decode(doc(t, `{
		"predicate": {"type": "tag", "id": "x:logs"},
		"output": [{"type": "tag_all", "id": "x:planks"}]
	}`))
	require.NoError(t, err)

	want := Recipe{
		Predicate: TagMatch{Tag: id("x:logs")},
		Transform: Transform{TagAll{Tag: id("x:planks"), Amount: 1}},
	}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("Decode mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_BlockPredicateState(t *testing.T) {
	r, err := Decode(doc(t, `{
		"predicate": {"type": "block", "id": "oak_log", "state": {"axis": "y", "lit": true, "age": 3}},
		"output": []
	}`))
	require.NoError(t, err)

	want := ExactMatch{
		Block: id("minecraft:oak_log"),
		State: map[string]string{"axis": "y", "lit": "true", "age": "3"},
	}
	if diff := cmp.Diff(Predicate(want), r.Predicate); diff != "" {
		t.Errorf("predicate mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, r.Transform)
}

func TestDecode_BlockPredicateStateShapes(t *testing.T) {
	tests := []struct {
		name  string
		state string
	}{
		{"absent", ``},
		{"empty", `, "state": {}`},
		{"not a mapping", `, "state": ["axis"]`},
		{"nested value", `, "state": {"axis": {"v": "y"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Decode(doc(t, `{"output": [], "predicate": {"type": "block", "id": "oak_log"`+tt.state+`}}`))
			require.NoError(t, err, "state problems never fail the decode")

			em, ok := r.Predicate.(ExactMatch)
			require.True(t, ok)
			assert.Empty(t, em.State)

			subject := block("oak_log", map[string]string{"axis": "y"})
			assert.False(t, Matches(r.Predicate, subject, testCatalog()), "never matches")
		})
	}
}

func TestDecode_EmittersAreLenient(t *testing.T) {
	r, err := Decode(doc(t, `{
		"predicate": {"type": "tag", "id": "x:logs"},
		"output": [
			{"type": "item", "id": "x:plank", "amount": 4},
			"x:stick",
			{"type": "item"},
			{"type": "bucket", "id": "x:plank"},
			{"id": "x:plank"},
			{"type": "item", "id": "Bad Id"},
			{"type": "tag_random", "id": "x:planks", "amount": "2"},
			{"type": "tag_all", "id": "planks"}
		]
	}`))
	require.NoError(t, err)

	want := Transform{
		Item{ID: id("x:plank"), Amount: 4},
		Noop{Reason: "output[1]: not a mapping"},
		Noop{Reason: "output[2]: missing id"},
		Noop{Reason: `output[3]: unknown type "bucket"`},
		Noop{Reason: `output[4]: unknown type ""`},
		r.Transform[5],
		TagRandom{Tag: id("x:planks"), Amount: 2},
		TagAll{Tag: id("minecraft:planks"), Amount: 1},
	}
	if diff := cmp.Diff(want, r.Transform); diff != "" {
		t.Errorf("transform mismatch (-want +got):\n%s", diff)
	}
	assert.IsType(t, Noop{}, r.Transform[5])
	assert.Equal(t, 5, r.Transform.Noops())
}

func TestDecode_Amount(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   int
	}{
		{"absent", ``, 1},
		{"integer", `, "amount": 4`, 4},
		{"integral float", `, "amount": 4.0`, 4},
		{"numeric string", `, "amount": "7"`, 7},
		{"signed string", `, "amount": "+3"`, 3},
		{"fraction", `, "amount": 2.5`, 1},
		{"word", `, "amount": "lots"`, 1},
		{"bool", `, "amount": true`, 1},
		{"null", `, "amount": null`, 1},
		{"list", `, "amount": [2]`, 1},
		{"zero", `, "amount": 0`, 0},
		{"negative", `, "amount": -3`, -3},
		{"negative string", `, "amount": "-2"`, -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Decode(doc(t, `{"predicate": {"type": "tag", "id": "x:logs"}, "output": [{"type": "item", "id": "x:plank"`+tt.amount+`}]}`))
			require.NoError(t, err)
			require.Len(t, r.Transform, 1)
			assert.Equal(t, Item{ID: id("x:plank"), Amount: tt.want}, r.Transform[0])
		})
	}
}

func TestDecode_EmptyOutputIsValid(t *testing.T) {
	r, err := Decode(doc(t, `{"predicate": {"type": "tag", "id": "x:logs"}, "output": []}`))
	require.NoError(t, err)
	assert.Empty(t, r.Transform)
	assert.Empty(t, r.Apply(Env{Catalog: testCatalog()}))
}

func TestDecode_YAMLStyleScalars(t *testing.T) {
	// Trees from YAML decoders carry ints rather than float64s.
	tree := map[string]any{
		"predicate": map[string]any{"type": "block", "id": "oak_log", "state": map[string]any{"age": 3}},
		"output":    []any{map[string]any{"type": "item", "id": "x:plank", "amount": 6}},
	}
	r, err := Decode(tree)
	require.NoError(t, err)
	assert.Equal(t, ExactMatch{Block: id("oak_log"), State: map[string]string{"age": "3"}}, r.Predicate)
	assert.Equal(t, Transform{Item{ID: id("x:plank"), Amount: 6}}, r.Transform)
}

func TestDecodeError_Message(t *testing.T) {
	_, err := Decode(doc(t, `{"output": [], "predicate": {"type": "item"}}`))
	assert.EqualError(t, err, "unknown predicate type at predicate.type (item)")

	_, err = Decode(doc(t, `{"output": [], "predicate": {"type": "tag", "id": "A:b"}}`))
	assert.ErrorContains(t, err, "invalid identifier at predicate.id (A:b): identifier")
}

package recipe

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/corey/saw/internal/ports"
)

// Predicate and emitter type names as they appear in documents.
const (
	PredicateTag   = "tag"
	PredicateBlock = "block"

	EmitterTagAll    = "tag_all"
	EmitterTagRandom = "tag_random"
	EmitterItem      = "item"
)

// Decode converts a generic document tree into a Recipe.
//
// The document must have an "output" list and a "predicate" mapping. The
// predicate is decoded strictly: any problem fails the whole recipe. Output
// entries are decoded leniently: a malformed entry becomes a Noop emitter and
// the remaining entries still apply.
func Decode(doc any) (Recipe, error) {
	m, _ := doc.(map[string]any)

	list, ok := m["output"].([]any)
	if !ok {
		return Recipe{}, &DecodeError{Code: CodeMissingOrInvalidOutput, Field: "output"}
	}
	transform := decodeTransform(list)

	pm, ok := m["predicate"].(map[string]any)
	if !ok {
		return Recipe{}, &DecodeError{Code: CodeMissingOrInvalidPredicate, Field: "predicate"}
	}
	pred, err := decodePredicate(pm)
	if err != nil {
		return Recipe{}, err
	}

	return Recipe{Predicate: pred, Transform: transform}, nil
}

func decodePredicate(m map[string]any) (Predicate, error) {
	typ, _ := scalarString(m["type"])
	if typ != PredicateTag && typ != PredicateBlock {
		return nil, &DecodeError{Code: CodeUnknownPredicateType, Field: "predicate.type", Value: m["type"]}
	}

	raw, ok := scalarString(m["id"])
	if !ok {
		return nil, &DecodeError{Code: CodeMissingID, Field: "predicate.id"}
	}
	id, err := ports.ParseIdentifier(raw)
	if err != nil {
		return nil, &DecodeError{Code: CodeInvalidIdentifier, Field: "predicate.id", Value: raw, Err: err}
	}

	if typ == PredicateTag {
		return TagMatch{Tag: id}, nil
	}

	// A state that is not a mapping is treated as empty, which never matches.
	state := make(map[string]string)
	if sm, ok := m["state"].(map[string]any); ok {
		for k, v := range sm {
			if s, ok := scalarString(v); ok {
				state[k] = s
			} else {
				// Lists and mappings can never equal a property value.
				return ExactMatch{Block: id, State: nil}, nil
			}
		}
	}
	return ExactMatch{Block: id, State: state}, nil
}

func decodeTransform(list []any) Transform {
	t := make(Transform, 0, len(list))
	for i, entry := range list {
		t = append(t, decodeEmitter(i, entry))
	}
	return t
}

func decodeEmitter(i int, entry any) Emitter {
	m, ok := entry.(map[string]any)
	if !ok {
		return Noop{Reason: fmt.Sprintf("output[%d]: not a mapping", i)}
	}

	raw, ok := scalarString(m["id"])
	if !ok {
		return Noop{Reason: fmt.Sprintf("output[%d]: missing id", i)}
	}
	id, err := ports.ParseIdentifier(raw)
	if err != nil {
		return Noop{Reason: fmt.Sprintf("output[%d]: %v", i, err)}
	}

	amount := decodeAmount(m["amount"])

	typ, _ := scalarString(m["type"])
	switch typ {
	case EmitterTagAll:
		return TagAll{Tag: id, Amount: amount}
	case EmitterTagRandom:
		return TagRandom{Tag: id, Amount: amount}
	case EmitterItem:
		return Item{ID: id, Amount: amount}
	default:
		return Noop{Reason: fmt.Sprintf("output[%d]: unknown type %q", i, typ)}
	}
}

// decodeAmount reads an optional count. Anything that is not an integer in
// its string form counts as 1. Zero and negative counts are kept; such an
// emitter produces an empty stack, so it contributes nothing.
func decodeAmount(v any) int {
	s, ok := scalarString(v)
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}
	return n
}

// scalarString renders a scalar document value as a string. Lists, mappings
// and nil report false.
func scalarString(v any) (string, bool) {
	switch v := v.(type) {
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case json.Number:
		return v.String(), true
	default:
		return "", false
	}
}

package ports

import (
	"fmt"
	"strings"
)

// DefaultNamespace is applied to identifiers written without a namespace,
// so "oak_log" and "minecraft:oak_log" name the same thing.
const DefaultNamespace = "minecraft"

// Identifier is a namespaced name ("namespace:path") for a block, item or tag.
// The zero value is not a valid identifier.
type Identifier struct {
	Namespace string
	Path      string
}

// ParseIdentifier parses "namespace:path" or a bare "path".
// Namespaces allow [a-z0-9_.-]; paths additionally allow '/'.
func ParseIdentifier(s string) (Identifier, error) {
	ns, path := DefaultNamespace, s
	if i := strings.IndexByte(s, ':'); i >= 0 {
		ns, path = s[:i], s[i+1:]
		if ns == "" {
			ns = DefaultNamespace
		}
	}
	if path == "" {
		return Identifier{}, fmt.Errorf("identifier %q: empty path", s)
	}
	for _, r := range ns {
		if !isIdentRune(r, false) {
			return Identifier{}, fmt.Errorf("identifier %q: invalid namespace character %q", s, r)
		}
	}
	for _, r := range path {
		if !isIdentRune(r, true) {
			return Identifier{}, fmt.Errorf("identifier %q: invalid path character %q", s, r)
		}
	}
	return Identifier{Namespace: ns, Path: path}, nil
}

// MustIdentifier is ParseIdentifier for literals known to be valid.
func MustIdentifier(s string) Identifier {
	id, err := ParseIdentifier(s)
	if err != nil {
		panic(err)
	}
	return id
}

func isIdentRune(r rune, path bool) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return true
	case r == '_' || r == '.' || r == '-':
		return true
	case r == '/':
		return path
	default:
		return false
	}
}

// IsZero reports whether id is the zero Identifier.
func (id Identifier) IsZero() bool {
	return id.Namespace == "" && id.Path == ""
}

func (id Identifier) String() string {
	return id.Namespace + ":" + id.Path
}

// MarshalText encodes the identifier in its "namespace:path" form.
func (id Identifier) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText parses the "namespace:path" form.
func (id *Identifier) UnmarshalText(b []byte) error {
	parsed, err := ParseIdentifier(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

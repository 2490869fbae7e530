// Package resources implements ports.DocumentSource over a resource tree laid
// out by namespace:
//
//	<root>/<namespace>/saw_recipes/<path>.json5
//	<root>/<namespace>/saw_recipes/<path>.json
//
// Each document is identified as "namespace:saw_recipes/<path>". Files are
// parsed as JSON5, which accepts plain JSON as well.
package resources

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/yosuke-furukawa/json5/encoding/json5"

	"github.com/corey/saw/internal/ports"
)

// Directory is the per-namespace directory recipes are read from.
const Directory = "saw_recipes"

// Suffixes are the accepted document suffixes.
var Suffixes = []string{".json5", ".json"}

// Source reads recipe documents from an fs.FS.
type Source struct {
	fsys fs.FS
}

// NewSource returns a Source over fsys (typically os.DirFS(root)).
func NewSource(fsys fs.FS) *Source {
	return &Source{fsys: fsys}
}

// Documents returns every recipe document, namespaces in name order and
// files in lexical path order within each namespace. A file that cannot be
// read or parsed is returned with Err set; only a failure to list the tree
// itself is returned as an error.
func (s *Source) Documents(ctx context.Context) ([]ports.Document, error) {
	namespaces, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read resource root: %w", err)
	}

	var docs []ports.Document
	for _, ns := range namespaces {
		if !ns.IsDir() || strings.HasPrefix(ns.Name(), ".") {
			continue
		}
		dir := path.Join(ns.Name(), Directory)
		if _, err := fs.Stat(s.fsys, dir); errors.Is(err, fs.ErrNotExist) {
			continue
		}

		err := fs.WalkDir(s.fsys, dir, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() || !HasSuffix(p) {
				return nil
			}
			docs = append(docs, s.read(ns.Name(), p))
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", dir, err)
		}
	}
	return docs, nil
}

func (s *Source) read(namespace, p string) ports.Document {
	doc := ports.Document{ID: namespace + ":" + strings.TrimPrefix(p, namespace+"/")}

	data, err := fs.ReadFile(s.fsys, p)
	if err != nil {
		doc.Err = fmt.Errorf("read %s: %w", p, err)
		return doc
	}
	root, err := Parse(data)
	if err != nil {
		doc.Err = err
		return doc
	}
	doc.Root = root
	return doc
}

// Parse decodes JSON5 text into a generic tree.
func Parse(data []byte) (any, error) {
	var root any
	if err := json5.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse json5: %w", err)
	}
	return root, nil
}

// HasSuffix reports whether p names a recipe document.
func HasSuffix(p string) bool {
	for _, s := range Suffixes {
		if strings.HasSuffix(p, s) {
			return true
		}
	}
	return false
}

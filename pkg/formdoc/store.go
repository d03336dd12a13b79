package formdoc

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// Store keeps parsed bundles by form id. It is safe for concurrent readers
// once built.
type Store struct {
	forms map[string]Bundle
}

type storeFile struct {
	Forms map[string]bundleFile `json:"forms" yaml:"forms"`
}

// LoadFS walks fsys and parses every JSON or YAML file. A file either holds
// a single bundle, identified by its "id" or its base name, or a "forms"
// object keyed by id. A nil fsys yields an empty store.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{forms: make(map[string]Bundle)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(name string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isBundleFile(name) {
			return nil
		}

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("formdoc: read %s: %w", name, err)
		}
		if err := checkPayload(data, name); err != nil {
			return err
		}

		var multi storeFile
		if err := decode(data, &multi); err != nil {
			return &DocumentError{Source: name, Message: "parse forms", Err: err}
		}
		if len(multi.Forms) > 0 {
			for id, file := range multi.Forms {
				bundle, err := file.bundle(name)
				if err != nil {
					return err
				}
				bundle.ID = strings.TrimSpace(id)
				if err := store.add(bundle, name); err != nil {
					return err
				}
			}
			return nil
		}

		bundle, err := parseBundle(data, name)
		if err != nil {
			return err
		}
		if bundle.ID == "" {
			bundle.ID = strings.TrimSuffix(path.Base(name), path.Ext(name))
		}
		return store.add(bundle, name)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Store) add(bundle Bundle, name string) error {
	if bundle.ID == "" {
		return &DocumentError{Source: name, Message: "form id is empty"}
	}
	if _, exists := s.forms[bundle.ID]; exists {
		return &DocumentError{Source: name, Message: fmt.Sprintf("duplicate form %q", bundle.ID)}
	}
	s.forms[bundle.ID] = bundle
	return nil
}

// Form returns the bundle registered under id.
func (s *Store) Form(id string) (Bundle, bool) {
	if s == nil {
		return Bundle{}, false
	}
	bundle, ok := s.forms[id]
	return bundle, ok
}

// IDs lists registered form ids in lexical order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.forms))
	for id := range s.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds any forms.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

func isBundleFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

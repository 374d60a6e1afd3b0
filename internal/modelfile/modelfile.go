// Package modelfile reads and writes model documents. YAML is the native
// format; JSON documents load through the same decoder.
package modelfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/KhalidAdan/tables/internal/debug"
	"github.com/KhalidAdan/tables/internal/model"
)

// Store loads and saves models on a filesystem
type Store struct {
	fs afero.Fs
}

// NewStore creates a store backed by fs
func NewStore(fs afero.Fs) *Store {
	return &Store{fs: fs}
}

// Load reads the model at path. Unknown keys are rejected.
func (s *Store) Load(path string) (*model.Model, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}

	m, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	debug.Debug("loaded model", "path", path, "entities", len(m.Entities), "relations", len(m.Relations))
	return m, nil
}

// Save writes m to path, as JSON when the extension is .json and YAML otherwise
func (s *Store) Save(path string, m *model.Model) error {
	var data []byte
	var err error
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = json.MarshalIndent(m, "", "  ")
	} else {
		data, err = yaml.Marshal(m)
	}
	if err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := afero.WriteFile(s.fs, path, data, 0644); err != nil {
		return fmt.Errorf("failed to write model file: %w", err)
	}

	debug.Debug("saved model", "path", path)
	return nil
}

// Exists reports whether a file is present at path
func (s *Store) Exists(path string) (bool, error) {
	return afero.Exists(s.fs, path)
}

// Decode reads a single YAML or JSON model document from r
func Decode(r io.Reader) (*model.Model, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var m model.Model
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty model document")
		}
		return nil, err
	}
	return &m, nil
}

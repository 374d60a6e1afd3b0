package generator

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/KhalidAdan/tables/internal/model"
	"github.com/KhalidAdan/tables/internal/naming"
)

// GenerateAll renders m for every registered target. Strategies hold no
// state, so targets are rendered concurrently.
func GenerateAll(m *model.Model) (map[model.Target]string, error) {
	targets := Targets()
	outputs := make([]string, len(targets))

	var g errgroup.Group
	for i, target := range targets {
		i, target := i, target
		g.Go(func() error {
			out, err := Generate(m, target)
			if err != nil {
				return fmt.Errorf("%s: %w", target, err)
			}
			outputs[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make(map[model.Target]string, len(targets))
	for i, target := range targets {
		result[target] = outputs[i]
	}
	return result, nil
}

// DirWriter writes generated schemas to a directory, one file per target
type DirWriter struct {
	fs        afero.Fs
	OutputDir string
}

// NewDirWriter creates a writer rooted at outputDir on fs
func NewDirWriter(fs afero.Fs, outputDir string) *DirWriter {
	return &DirWriter{
		fs:        fs,
		OutputDir: outputDir,
	}
}

// Write stores every output and returns the written paths in sorted order
func (w *DirWriter) Write(m *model.Model, outputs map[model.Target]string) ([]string, error) {
	// Create output directory if it doesn't exist
	if err := w.fs.MkdirAll(w.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	paths := make([]string, 0, len(outputs))
	for target, out := range outputs {
		path := filepath.Join(w.OutputDir, FileName(m, target))
		if err := afero.WriteFile(w.fs, path, []byte(out+"\n"), 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths, nil
}

// FileName is the conventional file name for m rendered for target
func FileName(m *model.Model, target model.Target) string {
	if target == model.TargetPrisma {
		return "schema.prisma"
	}
	base := naming.ToSnakeCase(m.Name)
	if base == "" {
		base = "schema"
	}
	return fmt.Sprintf("%s.%s.sql", base, target)
}

package generator

import (
	"fmt"
	"io"

	"github.com/KhalidAdan/tables/internal/model"
)

// MarkdownWriter renders generated schemas as a markdown document with one
// fenced section per target
type MarkdownWriter struct {
	writer io.Writer
}

// NewMarkdownWriter creates a new markdown writer
func NewMarkdownWriter(w io.Writer) *MarkdownWriter {
	return &MarkdownWriter{writer: w}
}

// Format writes the document. Sections follow Targets() order; targets
// missing from outputs are skipped.
func (f *MarkdownWriter) Format(m *model.Model, outputs map[model.Target]string) error {
	if _, err := fmt.Fprintf(f.writer, "# %s Schema\n\n", m.Name); err != nil {
		return err
	}

	for _, target := range Targets() {
		out, ok := outputs[target]
		if !ok {
			continue
		}
		lang := "sql"
		if target == model.TargetPrisma {
			lang = "prisma"
		}
		if _, err := fmt.Fprintf(f.writer, "## %s\n\n```%s\n%s\n```\n\n", target, lang, out); err != nil {
			return err
		}
	}
	return nil
}

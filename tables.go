// Package tables generates database schema definitions from an
// entity-relationship model.
//
// A model is a set of entities (tables), their attributes (columns) and the
// relations between them. Tables renders a model as PostgreSQL, MySQL or
// SQLite DDL, or as Prisma schema language. Generation is a pure function of
// the model and the target: nothing is connected to or executed.
//
// # Quick Start
//
// Build a model in code and render it:
//
//	m := tables.NewModel("School", tables.TargetPostgres)
//	student := m.AddEntity("Student",
//		tables.Attribute{Name: "ID", Type: tables.TypeIdentifier, PrimaryKey: true},
//		tables.Attribute{Name: "Email", Type: tables.TypeString, Unique: true},
//	)
//	studentID := student.ID
//	class := m.AddEntity("Class",
//		tables.Attribute{Name: "ID", Type: tables.TypeIdentifier, PrimaryKey: true},
//	)
//	_, err := m.AddRelation(tables.RelationInput{
//		Type:         tables.OneToMany,
//		FromEntityID: studentID,
//		ToEntityID:   class.ID,
//	})
//
//	schema, err := tables.Generate(m, tables.TargetPostgres)
//
// Or load a model document from disk:
//
//	m, err := tables.LoadModel("model.yaml")
//
// # Targets
//
// Supported targets are "postgres", "mysql", "sqlite" and "prisma". Use
// Targets to list them and GenerateAll to render every one at once.
//
// # Output
//
// WriteSchema writes a single target to an io.Writer, or every target to a
// directory with one file per target:
//
//	&OutputOptions{Writer: os.Stdout}
//	&OutputOptions{OutputDir: "schema"}
package tables

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/KhalidAdan/tables/internal/generator"
	"github.com/KhalidAdan/tables/internal/model"
	"github.com/KhalidAdan/tables/internal/modelfile"
)

type (
	Model             = model.Model
	Entity            = model.Entity
	Attribute         = model.Attribute
	Relation          = model.Relation
	RelationInput     = model.RelationInput
	Position          = model.Position
	AttributeType     = model.AttributeType
	RelationType      = model.RelationType
	ReferentialAction = model.ReferentialAction
	Target            = model.Target
	ValidationError   = model.ValidationError
)

const (
	TypeIdentifier = model.TypeIdentifier
	TypeString     = model.TypeString
	TypeNumber     = model.TypeNumber
	TypeJSON       = model.TypeJSON
	TypeDate       = model.TypeDate
	TypeDatetime   = model.TypeDatetime
	TypeTimestamp  = model.TypeTimestamp
	TypeBoolean    = model.TypeBoolean
	TypeMoney      = model.TypeMoney

	OneToOne   = model.OneToOne
	OneToMany  = model.OneToMany
	ManyToMany = model.ManyToMany

	Cascade    = model.Cascade
	Restrict   = model.Restrict
	NoAction   = model.NoAction
	SetNull    = model.SetNull
	SetDefault = model.SetDefault

	TargetPostgres = model.TargetPostgres
	TargetMySQL    = model.TargetMySQL
	TargetSQLite   = model.TargetSQLite
	TargetPrisma   = model.TargetPrisma
)

// Generation errors. Use errors.Is to test for them.
var (
	ErrUnknownRelationType  = generator.ErrUnknownRelationType
	ErrMissingThroughEntity = generator.ErrMissingThroughEntity
	ErrEntityNotFound       = generator.ErrEntityNotFound
	ErrMissingPrimaryKey    = generator.ErrMissingPrimaryKey
	ErrAmbiguousPrimaryKey  = generator.ErrAmbiguousPrimaryKey
	ErrUnsupportedFieldType = generator.ErrUnsupportedFieldType
	ErrUnknownTarget        = generator.ErrUnknownTarget
)

// OutputOptions configures where WriteSchema writes.
//
// Single target (Writer): the schema for one target
//
//	&OutputOptions{Writer: os.Stdout}
//
// Every target (OutputDir): one file per target, named
// <snake model name>.<target>.sql for SQL targets and schema.prisma for Prisma
//
//	&OutputOptions{OutputDir: "schema"}
//
// If both are specified, OutputDir takes precedence and Writer is ignored.
// If neither is specified, output goes to os.Stdout.
type OutputOptions struct {
	// Writer receives the schema for the requested target.
	// Ignored if OutputDir is set.
	Writer io.Writer

	// OutputDir receives one file per target. The directory is created if
	// it doesn't exist.
	OutputDir string
}

// NewModel creates an empty model
func NewModel(name string, target Target) *Model {
	return model.NewModel(name, target)
}

// Generate renders m for target.
//
// Returns an error if:
//   - target is not registered (ErrUnknownTarget)
//   - a relation has an unknown type or references a missing entity
//   - a referenced entity has no primary key, or more than one
//   - an attribute type has no mapping in the target dialect
//
// No partial output is returned on error.
func Generate(m *Model, target Target) (string, error) {
	return generator.Generate(m, target)
}

// GenerateAll renders m for every target. Any failure fails the whole call.
func GenerateAll(m *Model) (map[Target]string, error) {
	return generator.GenerateAll(m)
}

// Targets returns every supported target in sorted order
func Targets() []Target {
	return generator.Targets()
}

// Validate checks m for problems that would make generation fail or produce
// a schema the database rejects. Every problem is reported.
func Validate(m *Model) error {
	return model.Validate(m)
}

// LoadModel reads a YAML or JSON model document
func LoadModel(path string) (*Model, error) {
	return modelfile.NewStore(afero.NewOsFs()).Load(path)
}

// SaveModel writes m as JSON when path ends in .json and YAML otherwise
func SaveModel(path string, m *Model) error {
	return modelfile.NewStore(afero.NewOsFs()).Save(path, m)
}

// WriteSchema renders m and writes it to the output described by opts.
//
// With a Writer, only target is rendered. With an OutputDir, every target is
// rendered and target is ignored.
//
// Example (single target to stdout):
//
//	err := tables.WriteSchema(m, tables.TargetSQLite, nil)
//
// Example (every target to a directory):
//
//	err := tables.WriteSchema(m, "", &tables.OutputOptions{OutputDir: "schema"})
func WriteSchema(m *Model, target Target, opts *OutputOptions) error {
	if opts == nil {
		opts = &OutputOptions{Writer: os.Stdout}
	}

	if opts.OutputDir != "" {
		outputs, err := generator.GenerateAll(m)
		if err != nil {
			return err
		}
		_, err = generator.NewDirWriter(afero.NewOsFs(), filepath.Clean(opts.OutputDir)).Write(m, outputs)
		return err
	}

	out, err := generator.Generate(m, target)
	if err != nil {
		return err
	}

	writer := opts.Writer
	if writer == nil {
		writer = os.Stdout
	}
	if _, err := fmt.Fprintln(writer, out); err != nil {
		return fmt.Errorf("failed to write schema: %w", err)
	}
	return nil
}

package generator

import (
	"fmt"
	"strings"

	"github.com/KhalidAdan/tables/internal/model"
	"github.com/KhalidAdan/tables/internal/naming"
)

// sqlDialect holds the tokens that differ between SQL targets
type sqlDialect struct {
	name           string
	types          map[model.AttributeType]string
	primaryKey     string
	foreignKeyType string
}

func (d sqlDialect) columnType(t model.AttributeType) (string, error) {
	colType, ok := d.types[t]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFieldType, t)
	}
	return colType, nil
}

// SQLStrategy emits CREATE TABLE statements for a SQL dialect
type SQLStrategy struct {
	dialect sqlDialect
}

// GenerateSchema renders one CREATE TABLE block per entity, in model order
func (s *SQLStrategy) GenerateSchema(m *model.Model) (string, error) {
	if err := checkRelations(m); err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "-- %s schema generated for %s\n\n", m.Name, s.dialect.name)

	for i := range m.Entities {
		if i > 0 {
			b.WriteString("\n\n") // Blank line between tables
		}

		table, err := s.generateEntitySchema(m, &m.Entities[i])
		if err != nil {
			return "", err
		}
		b.WriteString(table)
	}
	return b.String(), nil
}

func (s *SQLStrategy) generateEntitySchema(m *model.Model, entity *model.Entity) (string, error) {
	var defs, uniqueColumns []string

	// Relation-owned attributes are rendered with their foreign key below
	for _, attr := range entity.Attributes {
		if attr.IsRelationOwned() {
			continue
		}
		def, err := s.columnDef(attr)
		if err != nil {
			return "", fmt.Errorf("entity %s: %w", entity.Name, err)
		}
		defs = append(defs, def)

		if attr.Unique && !attr.PrimaryKey {
			uniqueColumns = append(uniqueColumns, naming.ToSnakeCase(attr.Name))
		}
	}

	// Key columns come before every table constraint
	keyColumns, constraints, err := s.foreignKeys(m, entity.ID)
	if err != nil {
		return "", err
	}
	defs = append(defs, keyColumns...)
	defs = append(defs, constraints...)

	// All unique columns share one clause
	if len(uniqueColumns) > 0 {
		defs = append(defs, fmt.Sprintf("UNIQUE (%s)", strings.Join(uniqueColumns, ", ")))
	}

	return fmt.Sprintf("CREATE TABLE %s (\n  %s\n);", naming.ToSnakeCase(entity.Name), strings.Join(defs, ",\n  ")), nil
}

func (s *SQLStrategy) columnDef(attr model.Attribute) (string, error) {
	colType, err := s.dialect.columnType(attr.Type)
	if err != nil {
		return "", err
	}

	parts := []string{naming.ToSnakeCase(attr.Name), colType}
	if attr.PrimaryKey {
		parts = append(parts, s.dialect.primaryKey)
	}
	if attr.Default != nil && *attr.Default != "" {
		parts = append(parts, "DEFAULT "+*attr.Default)
	}
	if !attr.Nullable && !attr.PrimaryKey {
		parts = append(parts, "NOT NULL")
	}
	return strings.Join(parts, " "), nil
}

// foreignKeys returns the key columns and FOREIGN KEY constraints for every
// relation whose foreign key lives on entityID
func (s *SQLStrategy) foreignKeys(m *model.Model, entityID string) (columns, constraints []string, err error) {
	add := func(target resolvedEntity, rel model.Relation) {
		column, constraint := s.reference(target, rel)
		columns = append(columns, column)
		constraints = append(constraints, constraint)
	}

	for _, rel := range m.Relations {
		switch rel.Type {
		case model.OneToOne, model.OneToMany:
			if rel.ToEntity != entityID {
				continue
			}
			from, err := resolve(m, rel.FromEntity)
			if err != nil {
				return nil, nil, err
			}
			add(from, rel)

		case model.ManyToMany:
			if rel.ThroughEntity != entityID {
				continue
			}
			from, err := resolve(m, rel.FromEntity)
			if err != nil {
				return nil, nil, err
			}
			to, err := resolve(m, rel.ToEntity)
			if err != nil {
				return nil, nil, err
			}
			add(from, rel)
			add(to, rel)
		}
	}

	return columns, constraints, nil
}

// reference renders the <table>_id column and its FOREIGN KEY constraint
func (s *SQLStrategy) reference(target resolvedEntity, rel model.Relation) (column, constraint string) {
	table := naming.ToSnakeCase(target.entity.Name)
	name := table + "_id"
	return fmt.Sprintf("%s %s", name, s.dialect.foreignKeyType),
		fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s(%s) ON DELETE %s ON UPDATE %s",
			name, table, naming.ToSnakeCase(target.pk.Name), rel.OnDelete, rel.OnUpdate)
}

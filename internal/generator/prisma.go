package generator

import (
	"fmt"
	"strings"

	"github.com/KhalidAdan/tables/internal/model"
	"github.com/KhalidAdan/tables/internal/naming"
)

var prismaTypes = map[model.AttributeType]string{
	model.TypeIdentifier: "Int",
	model.TypeString:     "String",
	model.TypeNumber:     "Int",
	model.TypeJSON:       "Json",
	model.TypeDate:       "DateTime",
	model.TypeDatetime:   "DateTime",
	model.TypeTimestamp:  "DateTime",
	model.TypeBoolean:    "Boolean",
	model.TypeMoney:      "Float",
}

// PrismaStrategy emits Prisma schema language model blocks
type PrismaStrategy struct{}

// GenerateSchema renders one model block per entity, in model order
func (s *PrismaStrategy) GenerateSchema(m *model.Model) (string, error) {
	if err := checkRelations(m); err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "// %s schema generated for Prisma\n\n", m.Name)

	for i := range m.Entities {
		if i > 0 {
			b.WriteString("\n\n")
		}

		block, err := s.generateEntitySchema(m, &m.Entities[i])
		if err != nil {
			return "", err
		}
		b.WriteString(block)
	}
	return b.String(), nil
}

func (s *PrismaStrategy) generateEntitySchema(m *model.Model, entity *model.Entity) (string, error) {
	var lines []string

	for _, attr := range entity.Attributes {
		if attr.IsRelationOwned() {
			continue
		}
		field, err := s.fieldDef(attr)
		if err != nil {
			return "", fmt.Errorf("entity %s: %w", entity.Name, err)
		}
		lines = append(lines, field)
	}

	for _, rel := range m.Relations {
		fields, err := s.relationFields(m, entity, rel)
		if err != nil {
			return "", err
		}
		lines = append(lines, fields...)
	}

	return fmt.Sprintf("model %s {\n  %s\n}", naming.ToPascalCase(entity.Name), strings.Join(lines, "\n  ")), nil
}

func (s *PrismaStrategy) fieldDef(attr model.Attribute) (string, error) {
	fieldType, ok := prismaTypes[attr.Type]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFieldType, attr.Type)
	}
	if attr.Nullable {
		fieldType += "?"
	}

	field := naming.ToSnakeCase(attr.Name) + " " + fieldType
	if attr.PrimaryKey {
		field += " @id @autoincrement"
	}
	if attr.Default != nil && *attr.Default != "" {
		field += fmt.Sprintf(" @default(%s)", *attr.Default)
	}
	return field, nil
}

// relationFields returns the fields rel contributes to entity, which depend
// on the side of the relation the entity sits on
func (s *PrismaStrategy) relationFields(m *model.Model, entity *model.Entity, rel model.Relation) ([]string, error) {
	if err := checkRelationType(rel); err != nil {
		return nil, err
	}

	switch rel.Type {
	case model.OneToOne, model.OneToMany:
		switch entity.ID {
		case rel.FromEntity:
			to := m.EntityByID(rel.ToEntity)
			if to == nil {
				return nil, fmt.Errorf("%w: %s", ErrEntityNotFound, rel.ToEntity)
			}
			suffix := "[]"
			if rel.Type == model.OneToOne {
				suffix = "?"
			}
			return []string{objectField(to, suffix)}, nil

		case rel.ToEntity:
			from, err := resolve(m, rel.FromEntity)
			if err != nil {
				return nil, err
			}
			return relationPair(from), nil
		}

	case model.ManyToMany:
		if rel.ThroughEntity == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingThroughEntity, rel.ID)
		}

		switch entity.ID {
		case rel.FromEntity, rel.ToEntity:
			through := m.EntityByID(rel.ThroughEntity)
			if through == nil {
				return nil, fmt.Errorf("%w: %s", ErrEntityNotFound, rel.ThroughEntity)
			}
			return []string{objectField(through, "[]")}, nil

		case rel.ThroughEntity:
			from, err := resolve(m, rel.FromEntity)
			if err != nil {
				return nil, err
			}
			to, err := resolve(m, rel.ToEntity)
			if err != nil {
				return nil, err
			}
			return append(relationPair(from), relationPair(to)...), nil
		}
	}

	return nil, nil
}

// objectField renders a navigation field such as "class Class[]"
func objectField(target *model.Entity, suffix string) string {
	return fmt.Sprintf("%s %s%s", naming.ToSnakeCase(target.Name), naming.ToPascalCase(target.Name), suffix)
}

// relationPair renders the @relation field referencing target and its
// unique scalar foreign key
func relationPair(target resolvedEntity) []string {
	name := target.entity.Name
	scalar := naming.ToCamelCase(name) + "Id"
	return []string{
		fmt.Sprintf("%s %s @relation(fields: [%s], references: [%s])",
			naming.ToSnakeCase(name), naming.ToPascalCase(name), scalar, naming.ToSnakeCase(target.pk.Name)),
		scalar + " Int @unique",
	}
}

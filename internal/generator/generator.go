// Package generator turns an entity-relationship model into a schema
// definition for one of the supported dialects.
//
// Every Strategy is a pure function of the model: it never mutates it, keeps
// no state between calls and is safe for concurrent use.
package generator

import (
	"errors"
	"fmt"
	"sort"

	"github.com/KhalidAdan/tables/internal/model"
)

var (
	// ErrUnknownRelationType is returned for a relation type outside the closed set.
	ErrUnknownRelationType = errors.New("unsupported relation type")
	// ErrMissingThroughEntity is returned when a many-to-many relation has no junction entity.
	ErrMissingThroughEntity = errors.New("missing through entity on a many-to-many relation")
	// ErrEntityNotFound is returned when a relation references an entity id absent from the model.
	ErrEntityNotFound = errors.New("entity not found")
	// ErrMissingPrimaryKey is returned when a referenced entity has no primary key.
	ErrMissingPrimaryKey = errors.New("primary key not found for entity")
	// ErrAmbiguousPrimaryKey is returned when a referenced entity has more than one primary key.
	ErrAmbiguousPrimaryKey = errors.New("more than one primary key on entity")
	// ErrUnsupportedFieldType is returned for an attribute type the dialect cannot map.
	ErrUnsupportedFieldType = errors.New("unsupported field type")
	// ErrUnknownTarget is returned when no strategy is registered for a dialect key.
	ErrUnknownTarget = errors.New("unknown target")
)

// Strategy generates a schema definition for one dialect
type Strategy interface {
	GenerateSchema(m *model.Model) (string, error)
}

var strategies = map[model.Target]Strategy{
	model.TargetPostgres: &SQLStrategy{dialect: postgres},
	model.TargetMySQL:    &SQLStrategy{dialect: mysql},
	model.TargetSQLite:   &SQLStrategy{dialect: sqlite},
	model.TargetPrisma:   &PrismaStrategy{},
}

// Lookup returns the strategy registered for target
func Lookup(target model.Target) (Strategy, error) {
	s, ok := strategies[target]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTarget, target)
	}
	return s, nil
}

// Generate renders m for target
func Generate(m *model.Model, target model.Target) (string, error) {
	s, err := Lookup(target)
	if err != nil {
		return "", err
	}
	return s.GenerateSchema(m)
}

// Targets returns the registered dialect keys in sorted order
func Targets() []model.Target {
	targets := make([]model.Target, 0, len(strategies))
	for t := range strategies {
		targets = append(targets, t)
	}
	sort.Slice(targets, func(i, j int) bool {
		return targets[i] < targets[j]
	})
	return targets
}

// DisplayName is the dialect name printed in schema banners
func DisplayName(target model.Target) string {
	switch s := strategies[target].(type) {
	case *SQLStrategy:
		return s.dialect.name
	case *PrismaStrategy:
		return "Prisma"
	default:
		return string(target)
	}
}

// resolvedEntity is an entity looked up by id together with its single primary key
type resolvedEntity struct {
	entity *model.Entity
	pk     model.Attribute
}

// resolve finds an entity by id and its primary key. Relations only carry
// ids; the model's entity list is the single source of truth.
func resolve(m *model.Model, id string) (resolvedEntity, error) {
	entity := m.EntityByID(id)
	if entity == nil {
		return resolvedEntity{}, fmt.Errorf("%w: %s", ErrEntityNotFound, id)
	}
	pks := entity.PrimaryKeys()
	switch len(pks) {
	case 0:
		return resolvedEntity{}, fmt.Errorf("%w: %s", ErrMissingPrimaryKey, entity.Name)
	case 1:
		return resolvedEntity{entity: entity, pk: pks[0]}, nil
	default:
		return resolvedEntity{}, fmt.Errorf("%w: %s", ErrAmbiguousPrimaryKey, entity.Name)
	}
}

// checkRelations verifies every relation's type and entity references before
// any block is rendered
func checkRelations(m *model.Model) error {
	for _, rel := range m.Relations {
		if err := checkRelationType(rel); err != nil {
			return err
		}
		ids := []string{rel.FromEntity, rel.ToEntity}
		if rel.Type == model.ManyToMany {
			if rel.ThroughEntity == "" {
				return fmt.Errorf("%w: %s", ErrMissingThroughEntity, rel.ID)
			}
			ids = append(ids, rel.ThroughEntity)
		}
		for _, id := range ids {
			if m.EntityByID(id) == nil {
				return fmt.Errorf("%w: %s", ErrEntityNotFound, id)
			}
		}
	}
	return nil
}

func checkRelationType(rel model.Relation) error {
	switch rel.Type {
	case model.OneToOne, model.OneToMany, model.ManyToMany:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownRelationType, rel.Type)
	}
}

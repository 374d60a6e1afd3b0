package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// RelationInput describes a relation to be added to a model
type RelationInput struct {
	ID           string
	Type         RelationType
	FromEntityID string
	ToEntityID   string
	OnDelete     ReferentialAction
	OnUpdate     ReferentialAction
	Position     Position // junction entity placement for many-to-many
}

// NewModel creates an empty model
func NewModel(name string, target Target) *Model {
	return &Model{Name: name, Target: target}
}

// AddEntity appends a new entity and returns a pointer to it. Attributes
// without an id are given one. The pointer is only valid until the next edit
// that grows or shrinks m.Entities.
func (m *Model) AddEntity(name string, attrs ...Attribute) *Entity {
	entity := Entity{
		ID:         uuid.NewString(),
		Name:       name,
		Attributes: make([]Attribute, 0, len(attrs)),
	}
	for _, attr := range attrs {
		if attr.ID == "" {
			attr.ID = uuid.NewString()
		}
		entity.Attributes = append(entity.Attributes, attr)
	}
	m.Entities = append(m.Entities, entity)
	return &m.Entities[len(m.Entities)-1]
}

// DeleteEntity removes an entity and every relation touching it
func (m *Model) DeleteEntity(entityID string) error {
	if m.EntityByID(entityID) == nil {
		return fmt.Errorf("entity not found by id: %s", entityID)
	}

	var touching []string
	for _, rel := range m.Relations {
		if rel.FromEntity == entityID || rel.ToEntity == entityID || rel.ThroughEntity == entityID {
			touching = append(touching, rel.ID)
		}
	}
	for _, id := range touching {
		if err := m.DeleteRelation(id); err != nil {
			return err
		}
	}

	// the entity may already be gone if it was a junction
	m.removeEntity(entityID)
	return nil
}

// AddAttribute appends an attribute to the given entity
func (m *Model) AddAttribute(entityID string, attr Attribute) (*Attribute, error) {
	entity := m.EntityByID(entityID)
	if entity == nil {
		return nil, fmt.Errorf("entity not found by id: %s", entityID)
	}
	if attr.ID == "" {
		attr.ID = uuid.NewString()
	}
	entity.Attributes = append(entity.Attributes, attr)
	return &entity.Attributes[len(entity.Attributes)-1], nil
}

// DeleteAttribute removes an attribute. Removing a relation-owned attribute
// also removes its relation; junction siblings are released back to the user.
func (m *Model) DeleteAttribute(entityID, attributeID string) error {
	entity := m.EntityByID(entityID)
	if entity == nil {
		return fmt.Errorf("entity not found by id: %s", entityID)
	}

	idx := -1
	for i, attr := range entity.Attributes {
		if attr.ID == attributeID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("attribute not found by id: %s", attributeID)
	}
	attr := entity.Attributes[idx]
	entity.Attributes = append(entity.Attributes[:idx], entity.Attributes[idx+1:]...)

	if !attr.IsRelationOwned() {
		return nil
	}

	rel := m.RelationByID(attr.RelationKey)
	if rel == nil {
		return fmt.Errorf("relation not found, but relationKey was present on attribute: %s", attr.RelationKey)
	}
	if rel.Type == ManyToMany {
		if through := m.EntityByID(rel.ThroughEntity); through != nil {
			for i := range through.Attributes {
				if through.Attributes[i].RelationKey == attr.RelationKey {
					through.Attributes[i].RelationKey = ""
				}
			}
		}
	}
	m.removeRelation(rel.ID)
	return nil
}

// SetAttributeType changes an attribute's type. Identifiers become the
// non-nullable primary key; leaving identifier drops the primary key flag.
func (m *Model) SetAttributeType(entityID, attributeID string, t AttributeType) error {
	attr, err := m.attribute(entityID, attributeID)
	if err != nil {
		return err
	}
	if attr.IsRelationOwned() {
		return fmt.Errorf("attribute %s is owned by relation %s", attr.Name, attr.RelationKey)
	}

	attr.Type = t
	if t == TypeIdentifier {
		attr.PrimaryKey = true
		attr.Nullable = false
	} else if attr.PrimaryKey {
		attr.PrimaryKey = false
	}
	return nil
}

// AddRelation records a relation and synthesizes its foreign-key attributes.
// One-to-one and one-to-many put the key on the target entity; many-to-many
// creates a junction entity holding a key for each side.
func (m *Model) AddRelation(in RelationInput) (*Relation, error) {
	from := m.EntityByID(in.FromEntityID)
	to := m.EntityByID(in.ToEntityID)
	if from == nil || to == nil {
		return nil, fmt.Errorf("entity not found by id: %s or %s", in.FromEntityID, in.ToEntityID)
	}

	if in.ID == "" {
		in.ID = uuid.NewString()
	}
	if in.OnDelete == "" {
		in.OnDelete = Cascade
	}
	if in.OnUpdate == "" {
		in.OnUpdate = Cascade
	}

	rel := Relation{
		ID:         in.ID,
		Type:       in.Type,
		FromEntity: from.ID,
		ToEntity:   to.ID,
		OnDelete:   in.OnDelete,
		OnUpdate:   in.OnUpdate,
	}
	fromName, toName := from.Name, to.Name

	switch in.Type {
	case OneToOne, OneToMany:
		if _, err := m.AddAttribute(to.ID, foreignKeyAttribute(fromName, in.ID)); err != nil {
			return nil, err
		}
	case ManyToMany:
		m.Entities = append(m.Entities, Entity{
			ID:       in.ID,
			Name:     fromName + "_" + toName,
			Position: in.Position,
			Attributes: []Attribute{
				foreignKeyAttribute(fromName, in.ID),
				foreignKeyAttribute(toName, in.ID),
			},
		})
		rel.ThroughEntity = in.ID
	default:
		return nil, fmt.Errorf("unknown relation type: %s", in.Type)
	}

	m.Relations = append(m.Relations, rel)
	return &m.Relations[len(m.Relations)-1], nil
}

// DeleteRelation removes a relation together with the attributes and
// junction entity it synthesized
func (m *Model) DeleteRelation(relationID string) error {
	rel := m.RelationByID(relationID)
	if rel == nil {
		return fmt.Errorf("relation not found by id: %s", relationID)
	}
	through := rel.ThroughEntity

	for i := range m.Entities {
		kept := m.Entities[i].Attributes[:0]
		for _, attr := range m.Entities[i].Attributes {
			if attr.RelationKey != relationID {
				kept = append(kept, attr)
			}
		}
		m.Entities[i].Attributes = kept
	}
	m.removeRelation(relationID)
	if through != "" {
		m.removeEntity(through)
	}
	return nil
}

func foreignKeyAttribute(entityName, relationID string) Attribute {
	return Attribute{
		ID:          uuid.NewString(),
		Name:        strings.ToLower(entityName) + "Id",
		Type:        TypeIdentifier,
		RelationKey: relationID,
	}
}

func (m *Model) attribute(entityID, attributeID string) (*Attribute, error) {
	entity := m.EntityByID(entityID)
	if entity == nil {
		return nil, fmt.Errorf("entity not found by id: %s", entityID)
	}
	for i := range entity.Attributes {
		if entity.Attributes[i].ID == attributeID {
			return &entity.Attributes[i], nil
		}
	}
	return nil, fmt.Errorf("attribute not found by id: %s", attributeID)
}

func (m *Model) removeEntity(id string) {
	kept := m.Entities[:0]
	for _, e := range m.Entities {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	m.Entities = kept
}

func (m *Model) removeRelation(id string) {
	kept := m.Relations[:0]
	for _, r := range m.Relations {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	m.Relations = kept
}

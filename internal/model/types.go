package model

// AttributeType is the closed set of column kinds an attribute may carry
type AttributeType string

const (
	TypeIdentifier AttributeType = "identifier"
	TypeString     AttributeType = "string"
	TypeNumber     AttributeType = "number"
	TypeJSON       AttributeType = "json"
	TypeDate       AttributeType = "date"
	TypeDatetime   AttributeType = "datetime"
	TypeTimestamp  AttributeType = "timestamp"
	TypeBoolean    AttributeType = "boolean"
	TypeMoney      AttributeType = "money"
)

// AttributeTypes lists every supported attribute type in display order
var AttributeTypes = []AttributeType{
	TypeIdentifier,
	TypeString,
	TypeNumber,
	TypeJSON,
	TypeDate,
	TypeDatetime,
	TypeTimestamp,
	TypeBoolean,
	TypeMoney,
}

// RelationType is the cardinality of a relation
type RelationType string

const (
	OneToOne   RelationType = "one-to-one"
	OneToMany  RelationType = "one-to-many"
	ManyToMany RelationType = "many-to-many"
)

// ReferentialAction is the ON DELETE / ON UPDATE behaviour of a foreign key
type ReferentialAction string

const (
	Cascade    ReferentialAction = "CASCADE"
	Restrict   ReferentialAction = "RESTRICT"
	NoAction   ReferentialAction = "NO ACTION"
	SetNull    ReferentialAction = "SET NULL"
	SetDefault ReferentialAction = "SET DEFAULT"
)

// Target selects the output dialect
type Target string

const (
	TargetPostgres Target = "postgres"
	TargetMySQL    Target = "mysql"
	TargetSQLite   Target = "sqlite"
	TargetPrisma   Target = "prisma"
)

// Model is the root aggregate handed to the generator
type Model struct {
	Name      string     `yaml:"name" json:"name" validate:"required"`
	Entities  []Entity   `yaml:"entities" json:"entities" validate:"dive"`
	Relations []Relation `yaml:"relations" json:"relations" validate:"dive"`
	Target    Target     `yaml:"target" json:"target" validate:"omitempty,oneof=postgres mysql sqlite prisma"`
}

// Entity represents a table (or DSL model)
type Entity struct {
	ID         string      `yaml:"id" json:"id" validate:"required"`
	Name       string      `yaml:"name" json:"name" validate:"required"`
	Position   Position    `yaml:"position" json:"position"`
	Attributes []Attribute `yaml:"attributes" json:"attributes" validate:"dive"`
}

// Position is where the entity sits on the diagram canvas; generation ignores it
type Position struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Attribute represents a column definition
type Attribute struct {
	ID         string        `yaml:"id" json:"id" validate:"required"`
	Name       string        `yaml:"name" json:"name" validate:"required"`
	Type       AttributeType `yaml:"type" json:"type" validate:"required,oneof=identifier string number json date datetime timestamp boolean money"`
	PrimaryKey bool          `yaml:"primaryKey" json:"primaryKey"`
	Nullable   bool          `yaml:"nullable" json:"nullable"`
	Unique     bool          `yaml:"unique" json:"unique"`
	Default    *string       `yaml:"default,omitempty" json:"default,omitempty"`

	// RelationKey is set on foreign-key columns synthesized for a relation
	RelationKey string `yaml:"relationKey,omitempty" json:"relationKey,omitempty"`
}

// Relation represents an association between two entities. Entities are
// referenced by id and resolved against Model.Entities at generation time.
type Relation struct {
	ID            string            `yaml:"id" json:"id" validate:"required"`
	Type          RelationType      `yaml:"type" json:"type" validate:"required,oneof=one-to-one one-to-many many-to-many"`
	FromEntity    string            `yaml:"fromEntity" json:"fromEntity" validate:"required"`
	ToEntity      string            `yaml:"toEntity" json:"toEntity" validate:"required"`
	ThroughEntity string            `yaml:"throughEntity,omitempty" json:"throughEntity,omitempty"`
	OnDelete      ReferentialAction `yaml:"onDelete" json:"onDelete" validate:"omitempty,oneof=CASCADE RESTRICT 'NO ACTION' 'SET NULL' 'SET DEFAULT'"`
	OnUpdate      ReferentialAction `yaml:"onUpdate" json:"onUpdate" validate:"omitempty,oneof=CASCADE RESTRICT 'NO ACTION' 'SET NULL' 'SET DEFAULT'"`
}

// IsRelationOwned reports whether the attribute was synthesized for a relation
func (a Attribute) IsRelationOwned() bool {
	return a.RelationKey != ""
}

// PrimaryKeys returns the attributes flagged as primary key, in order
func (e *Entity) PrimaryKeys() []Attribute {
	var pks []Attribute
	for _, attr := range e.Attributes {
		if attr.PrimaryKey {
			pks = append(pks, attr)
		}
	}
	return pks
}

// EntityByID returns the entity with the given id, or nil
func (m *Model) EntityByID(id string) *Entity {
	for i := range m.Entities {
		if m.Entities[i].ID == id {
			return &m.Entities[i]
		}
	}
	return nil
}

// RelationByID returns the relation with the given id, or nil
func (m *Model) RelationByID(id string) *Relation {
	for i := range m.Relations {
		if m.Relations[i].ID == id {
			return &m.Relations[i]
		}
	}
	return nil
}

// StringPtr is a helper for building attributes with defaults
func StringPtr(s string) *string {
	return &s
}

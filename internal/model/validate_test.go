package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDefault(t *testing.T) {
	tests := []struct {
		name    string
		typ     AttributeType
		value   string
		wantErr bool
	}{
		{"identifier accepts anything", TypeIdentifier, "abc", false},
		{"string accepts anything", TypeString, "hello", false},
		{"number", TypeNumber, "42.5", false},
		{"number rejects text", TypeNumber, "forty", true},
		{"money with dollar sign", TypeMoney, "$19.99", false},
		{"money rejects text", TypeMoney, "$lots", true},
		{"boolean true", TypeBoolean, "true", false},
		{"boolean rejects yes", TypeBoolean, "yes", true},
		{"json object", TypeJSON, `{"a": 1}`, false},
		{"json rejects garbage", TypeJSON, `{a:`, true},
		{"date literal", TypeDate, "2024-02-29", false},
		{"datetime NOW()", TypeDatetime, "NOW()", false},
		{"datetime prisma now()", TypeDatetime, "now()", false},
		{"timestamp mysql sentinel", TypeTimestamp, "CURRENT_TIMESTAMP()", false},
		{"timestamp rfc3339", TypeTimestamp, "2024-01-02T03:04:05Z", false},
		{"date rejects text", TypeDate, "tomorrow", true},
		{"unknown type", AttributeType("uuid"), "x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDefault(tt.typ, tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateDefaultUnknownTypeListsTypes(t *testing.T) {
	err := ValidateDefault("uuid", "x")
	require.Error(t, err)
	assert.Equal(t, `unknown attribute type "uuid", expected one of identifier, string, number, json, date, datetime, timestamp, boolean, money`, err.Error())
}

func TestValidateAttributeFlags(t *testing.T) {
	assert.Error(t, ValidateAttribute(Attribute{Name: "id", Type: TypeIdentifier, PrimaryKey: true, Nullable: true}))
	assert.Error(t, ValidateAttribute(Attribute{Name: "email", Type: TypeString, Unique: true, Nullable: true}))
	assert.NoError(t, ValidateAttribute(Attribute{Name: "note", Type: TypeNumber, Nullable: true, Default: StringPtr("n/a")}),
		"nullable attributes skip the default check")
	assert.Error(t, ValidateAttribute(Attribute{Name: "qty", Type: TypeNumber, Default: StringPtr("n/a")}))
}

func TestValidateModel(t *testing.T) {
	m, student, class := newSchool(t)
	_, err := m.AddRelation(RelationInput{Type: ManyToMany, FromEntityID: student, ToEntityID: class})
	require.NoError(t, err)

	assert.NoError(t, Validate(m))
}

func TestValidateModelStructure(t *testing.T) {
	m := &Model{
		Name:   "Broken",
		Target: "oracle",
		Entities: []Entity{{
			ID:         "e",
			Name:       "Thing",
			Attributes: []Attribute{{ID: "a", Name: "id", Type: "uuid"}},
		}},
	}

	err := Validate(m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Target")
	assert.Contains(t, err.Error(), "Type")

	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestValidateRelationPrerequisites(t *testing.T) {
	m, student, class := newSchool(t)
	rel, err := m.AddRelation(RelationInput{Type: ManyToMany, FromEntityID: student, ToEntityID: class})
	require.NoError(t, err)
	relID := rel.ID

	m.EntityByID(student).Attributes[0].PrimaryKey = false
	m.RelationByID(relID).ThroughEntity = ""

	err = Validate(m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one primary key")
	assert.Contains(t, err.Error(), "no through entity")
}

func TestValidateReportsFlagConflicts(t *testing.T) {
	m := NewModel("Flags", TargetMySQL)
	m.AddEntity("User",
		Attribute{Name: "id", Type: TypeIdentifier, PrimaryKey: true, Nullable: true},
	)

	err := Validate(m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entity User attribute id")
}

func TestSampleModelIsValid(t *testing.T) {
	for _, target := range []Target{TargetPostgres, TargetMySQL, TargetSQLite, TargetPrisma} {
		m := SampleModel(target)
		require.NoError(t, Validate(m), target)
		assert.Len(t, m.Entities, 2)
		assert.Len(t, m.Relations, 1)
		assert.Equal(t, target, m.Target)
	}
}

package generator_test

import "github.com/KhalidAdan/tables/internal/model"

func pk(id, name string) model.Attribute {
	return model.Attribute{ID: id, Name: name, Type: model.TypeIdentifier, PrimaryKey: true}
}

func fk(id, name, relationID string) model.Attribute {
	return model.Attribute{ID: id, Name: name, Type: model.TypeIdentifier, RelationKey: relationID}
}

// schoolModel is a Student/Class pair joined by a single relation of type rel
func schoolModel(rel model.RelationType) *model.Model {
	return &model.Model{
		Name: "School",
		Entities: []model.Entity{
			{ID: "student", Name: "Student", Attributes: []model.Attribute{pk("s1", "id")}},
			{ID: "class", Name: "Class", Attributes: []model.Attribute{
				pk("c1", "id"),
				fk("c2", "studentId", "r1"),
			}},
		},
		Relations: []model.Relation{{
			ID:         "r1",
			Type:       rel,
			FromEntity: "student",
			ToEntity:   "class",
			OnDelete:   model.Cascade,
			OnUpdate:   model.Cascade,
		}},
	}
}

// junctionModel is A and B joined many-to-many through AB
func junctionModel() *model.Model {
	return &model.Model{
		Name: "Join",
		Entities: []model.Entity{
			{ID: "a", Name: "A", Attributes: []model.Attribute{pk("a1", "id")}},
			{ID: "b", Name: "B", Attributes: []model.Attribute{pk("b1", "id")}},
			{ID: "ab", Name: "AB", Attributes: []model.Attribute{
				fk("ab1", "aId", "ab"),
				fk("ab2", "bId", "ab"),
			}},
		},
		Relations: []model.Relation{{
			ID:            "ab",
			Type:          model.ManyToMany,
			FromEntity:    "a",
			ToEntity:      "b",
			ThroughEntity: "ab",
			OnDelete:      model.Restrict,
			OnUpdate:      model.NoAction,
		}},
	}
}

// usersModel has no relations and exercises every column flag
func usersModel() *model.Model {
	return &model.Model{
		Name: "Accounts",
		Entities: []model.Entity{
			{ID: "user", Name: "User", Attributes: []model.Attribute{
				pk("u1", "ID"),
				{ID: "u2", Name: "Email", Type: model.TypeString, Unique: true},
				{ID: "u3", Name: "User Name", Type: model.TypeString, Unique: true},
				{ID: "u4", Name: "Phone Number", Type: model.TypeString, Nullable: true},
				{ID: "u5", Name: "Created At", Type: model.TypeDate, Default: model.StringPtr("NOW()")},
				{ID: "u6", Name: "Balance", Type: model.TypeMoney},
				{ID: "u7", Name: "Active", Type: model.TypeBoolean, Default: model.StringPtr("true")},
			}},
			{ID: "audit", Name: "Audit Log", Attributes: []model.Attribute{
				pk("l1", "id"),
				{ID: "l2", Name: "Payload", Type: model.TypeJSON, Nullable: true},
				{ID: "l3", Name: "Logged At", Type: model.TypeTimestamp},
			}},
		},
	}
}

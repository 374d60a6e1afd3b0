package model

// SampleModel returns a small Student/Class model used by `tables init`.
// Timestamps are datetime columns defaulting to the current time in the
// spelling the target accepts.
func SampleModel(target Target) *Model {
	now := "CURRENT_TIMESTAMP"
	switch target {
	case TargetPostgres:
		now = "NOW()"
	case TargetPrisma:
		now = "now()"
	}

	m := NewModel("Tables App", target)
	student := m.AddEntity("Student",
		Attribute{Name: "ID", Type: TypeIdentifier, PrimaryKey: true},
		Attribute{Name: "Email", Type: TypeString, Unique: true},
		Attribute{Name: "Phone Number", Type: TypeString, Nullable: true},
		Attribute{Name: "Created At", Type: TypeDatetime, Default: StringPtr(now)},
		Attribute{Name: "Updated At", Type: TypeDatetime, Nullable: true, Default: StringPtr(now)},
	)
	student.Position = Position{X: -100, Y: 0}
	studentID := student.ID

	class := m.AddEntity("Class",
		Attribute{Name: "ID", Type: TypeIdentifier, PrimaryKey: true},
		Attribute{Name: "Name of Class", Type: TypeString},
		Attribute{Name: "Code", Type: TypeString, Unique: true},
		Attribute{Name: "Created At", Type: TypeDatetime, Default: StringPtr(now)},
		Attribute{Name: "Updated At", Type: TypeDatetime, Nullable: true, Default: StringPtr(now)},
	)
	class.Position = Position{X: -100, Y: 600}
	classID := class.ID

	// cannot fail: both entities exist
	_, _ = m.AddRelation(RelationInput{Type: OneToMany, FromEntityID: studentID, ToEntityID: classID})
	return m
}

package generator_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KhalidAdan/tables/internal/generator"
	"github.com/KhalidAdan/tables/internal/model"
)

func TestSQLColumns(t *testing.T) {
	tests := []struct {
		name   string
		target model.Target
		want   string
	}{
		{
			name:   "postgres",
			target: model.TargetPostgres,
			want: `-- Accounts schema generated for PostgreSQL

CREATE TABLE user (
  id SERIAL PRIMARY KEY,
  email TEXT NOT NULL,
  user_name TEXT NOT NULL,
  phone_number TEXT,
  created_at DATE DEFAULT NOW() NOT NULL,
  balance NUMERIC(19,4) NOT NULL,
  active BOOLEAN DEFAULT true NOT NULL,
  UNIQUE (email, user_name)
);

CREATE TABLE audit_log (
  id SERIAL PRIMARY KEY,
  payload JSONB,
  logged_at TIMESTAMPTZ NOT NULL
);`,
		},
		{
			name:   "mysql",
			target: model.TargetMySQL,
			want: `-- Accounts schema generated for MySQL

CREATE TABLE user (
  id INT AUTO_INCREMENT PRIMARY KEY,
  email VARCHAR(255) NOT NULL,
  user_name VARCHAR(255) NOT NULL,
  phone_number VARCHAR(255),
  created_at DATE DEFAULT NOW() NOT NULL,
  balance DECIMAL(19,4) NOT NULL,
  active TINYINT(1) DEFAULT true NOT NULL,
  UNIQUE (email, user_name)
);

CREATE TABLE audit_log (
  id INT AUTO_INCREMENT PRIMARY KEY,
  payload JSON,
  logged_at TIMESTAMP NOT NULL
);`,
		},
		{
			name:   "sqlite",
			target: model.TargetSQLite,
			want: `-- Accounts schema generated for SQLite

CREATE TABLE user (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  email TEXT NOT NULL,
  user_name TEXT NOT NULL,
  phone_number TEXT,
  created_at TEXT DEFAULT NOW() NOT NULL,
  balance REAL NOT NULL,
  active INTEGER DEFAULT true NOT NULL,
  UNIQUE (email, user_name)
);

CREATE TABLE audit_log (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  payload TEXT,
  logged_at TEXT NOT NULL
);`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := generator.Generate(usersModel(), tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSQLOneToMany(t *testing.T) {
	tests := []struct {
		target model.Target
		want   string
	}{
		{
			target: model.TargetPostgres,
			want: `-- School schema generated for PostgreSQL

CREATE TABLE student (
  id SERIAL PRIMARY KEY
);

CREATE TABLE class (
  id SERIAL PRIMARY KEY,
  student_id INTEGER,
  FOREIGN KEY (student_id) REFERENCES student(id) ON DELETE CASCADE ON UPDATE CASCADE
);`,
		},
		{
			target: model.TargetMySQL,
			want: `-- School schema generated for MySQL

CREATE TABLE student (
  id INT AUTO_INCREMENT PRIMARY KEY
);

CREATE TABLE class (
  id INT AUTO_INCREMENT PRIMARY KEY,
  student_id INT,
  FOREIGN KEY (student_id) REFERENCES student(id) ON DELETE CASCADE ON UPDATE CASCADE
);`,
		},
		{
			target: model.TargetSQLite,
			want: `-- School schema generated for SQLite

CREATE TABLE student (
  id INTEGER PRIMARY KEY AUTOINCREMENT
);

CREATE TABLE class (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  student_id INTEGER,
  FOREIGN KEY (student_id) REFERENCES student(id) ON DELETE CASCADE ON UPDATE CASCADE
);`,
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.target), func(t *testing.T) {
			got, err := generator.Generate(schoolModel(model.OneToMany), tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSQLOneToOneMatchesOneToMany(t *testing.T) {
	for _, target := range []model.Target{model.TargetPostgres, model.TargetMySQL, model.TargetSQLite} {
		one, err := generator.Generate(schoolModel(model.OneToOne), target)
		require.NoError(t, err)
		many, err := generator.Generate(schoolModel(model.OneToMany), target)
		require.NoError(t, err)
		assert.Equal(t, many, one, target)
	}
}

func TestSQLManyToMany(t *testing.T) {
	got, err := generator.Generate(junctionModel(), model.TargetPostgres)
	require.NoError(t, err)

	want := `-- Join schema generated for PostgreSQL

CREATE TABLE a (
  id SERIAL PRIMARY KEY
);

CREATE TABLE b (
  id SERIAL PRIMARY KEY
);

CREATE TABLE ab (
  a_id INTEGER,
  b_id INTEGER,
  FOREIGN KEY (a_id) REFERENCES a(id) ON DELETE RESTRICT ON UPDATE NO ACTION,
  FOREIGN KEY (b_id) REFERENCES b(id) ON DELETE RESTRICT ON UPDATE NO ACTION
);`
	assert.Equal(t, want, got)

	for _, target := range []model.Target{model.TargetMySQL, model.TargetSQLite} {
		out, err := generator.Generate(junctionModel(), target)
		require.NoError(t, err)
		assert.Equal(t, 2, strings.Count(out, "FOREIGN KEY"), target)
		assert.Contains(t, out, "CREATE TABLE ab (\n  a_id ")
		assert.Less(t, strings.Index(out, "b_id INT"), strings.Index(out, "FOREIGN KEY (a_id)"), target)
	}
}

func TestSQLKeyColumnsPrecedeConstraints(t *testing.T) {
	m := &model.Model{
		Name: "Campus",
		Entities: []model.Entity{
			{ID: "student", Name: "Student", Attributes: []model.Attribute{pk("s1", "id")}},
			{ID: "teacher", Name: "Teacher", Attributes: []model.Attribute{pk("t1", "id")}},
			{ID: "class", Name: "Class", Attributes: []model.Attribute{
				pk("c1", "id"),
				{ID: "c2", Name: "Room", Type: model.TypeNumber, Unique: true},
				fk("c3", "studentId", "r1"),
				fk("c4", "teacherId", "r2"),
			}},
		},
		Relations: []model.Relation{
			{ID: "r1", Type: model.OneToMany, FromEntity: "student", ToEntity: "class", OnDelete: model.Cascade, OnUpdate: model.Cascade},
			{ID: "r2", Type: model.OneToOne, FromEntity: "teacher", ToEntity: "class", OnDelete: model.SetNull, OnUpdate: model.Cascade},
		},
	}

	got, err := generator.Generate(m, model.TargetSQLite)
	require.NoError(t, err)

	want := `CREATE TABLE class (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  room INTEGER NOT NULL,
  student_id INTEGER,
  teacher_id INTEGER,
  FOREIGN KEY (student_id) REFERENCES student(id) ON DELETE CASCADE ON UPDATE CASCADE,
  FOREIGN KEY (teacher_id) REFERENCES teacher(id) ON DELETE SET NULL ON UPDATE CASCADE,
  UNIQUE (room)
);`
	assert.True(t, strings.HasSuffix(got, want), got)
}

func TestSQLUniqueColumnsShareOneClause(t *testing.T) {
	m := &model.Model{
		Name: "Shop",
		Entities: []model.Entity{{
			ID:   "p",
			Name: "Product",
			Attributes: []model.Attribute{
				{ID: "1", Name: "id", Type: model.TypeIdentifier, PrimaryKey: true, Unique: true},
				{ID: "2", Name: "SKU", Type: model.TypeString, Unique: true},
				{ID: "3", Name: "Title", Type: model.TypeString},
				{ID: "4", Name: "Barcode", Type: model.TypeNumber, Unique: true},
			},
		}},
	}

	for _, target := range []model.Target{model.TargetPostgres, model.TargetMySQL, model.TargetSQLite} {
		out, err := generator.Generate(m, target)
		require.NoError(t, err)
		assert.Equal(t, 1, strings.Count(out, "UNIQUE ("), target)
		assert.True(t, strings.HasSuffix(out, "  UNIQUE (sku, barcode)\n);"), target)
	}
}

func TestSQLRelationOwnedAttributesAreNotPlainColumns(t *testing.T) {
	out, err := generator.Generate(schoolModel(model.OneToMany), model.TargetPostgres)
	require.NoError(t, err)

	assert.NotContains(t, out, "student_id SERIAL")
	assert.Equal(t, 1, strings.Count(out, "student_id INTEGER"))
}

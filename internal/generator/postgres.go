package generator

import "github.com/KhalidAdan/tables/internal/model"

// SERIAL carries the auto-increment, so the primary key needs no extra token
var postgres = sqlDialect{
	name: "PostgreSQL",
	types: map[model.AttributeType]string{
		model.TypeIdentifier: "SERIAL",
		model.TypeString:     "TEXT",
		model.TypeNumber:     "INTEGER",
		model.TypeJSON:       "JSONB",
		model.TypeDate:       "DATE",
		model.TypeDatetime:   "TIMESTAMP",
		model.TypeTimestamp:  "TIMESTAMPTZ",
		model.TypeBoolean:    "BOOLEAN",
		model.TypeMoney:      "NUMERIC(19,4)",
	},
	primaryKey:     "PRIMARY KEY",
	foreignKeyType: "INTEGER",
}

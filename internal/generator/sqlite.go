package generator

import "github.com/KhalidAdan/tables/internal/model"

// SQLite has no native JSON, date, boolean or decimal types. JSON and
// temporal values are stored as TEXT, booleans as 0/1 and money as REAL.
var sqlite = sqlDialect{
	name: "SQLite",
	types: map[model.AttributeType]string{
		model.TypeIdentifier: "INTEGER",
		model.TypeString:     "TEXT",
		model.TypeNumber:     "INTEGER",
		model.TypeJSON:       "TEXT",
		model.TypeDate:       "TEXT",
		model.TypeDatetime:   "TEXT",
		model.TypeTimestamp:  "TEXT",
		model.TypeBoolean:    "INTEGER",
		model.TypeMoney:      "REAL",
	},
	primaryKey:     "PRIMARY KEY AUTOINCREMENT",
	foreignKeyType: "INTEGER",
}

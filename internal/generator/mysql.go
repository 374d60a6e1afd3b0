package generator

import "github.com/KhalidAdan/tables/internal/model"

var mysql = sqlDialect{
	name: "MySQL",
	types: map[model.AttributeType]string{
		model.TypeIdentifier: "INT AUTO_INCREMENT",
		model.TypeString:     "VARCHAR(255)", // TEXT cannot carry a UNIQUE key
		model.TypeNumber:     "INT",
		model.TypeJSON:       "JSON",
		model.TypeDate:       "DATE",
		model.TypeDatetime:   "DATETIME",
		model.TypeTimestamp:  "TIMESTAMP",
		model.TypeBoolean:    "TINYINT(1)",
		model.TypeMoney:      "DECIMAL(19,4)", // GAAP
	},
	primaryKey:     "PRIMARY KEY",
	foreignKeyType: "INT",
}

package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// dateTimeSentinels are the server-side defaults accepted for temporal columns
var dateTimeSentinels = map[string]bool{
	"NOW()":               true,
	"now()":               true, // Prisma
	"CURRENT_DATE":        true,
	"CURRENT_TIME":        true,
	"CURRENT_TIMESTAMP":   true,
	"CURRENT_DATE()":      true, // MySQL
	"CURRENT_TIME()":      true, // MySQL
	"CURRENT_TIMESTAMP()": true, // MySQL
	"SYSDATE()":           true, // MySQL
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ValidationError describes one problem found in a model
type ValidationError struct {
	Entity    string
	Attribute string
	Message   string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("invalid model")
	if e.Entity != "" {
		b.WriteString(": entity ")
		b.WriteString(e.Entity)
	}
	if e.Attribute != "" {
		b.WriteString(" attribute ")
		b.WriteString(e.Attribute)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}

// Validate checks a model against the invariants the generator relies on.
// All problems are reported, joined into a single error.
func Validate(m *Model) error {
	if err := validate.Struct(m); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			errs := make([]error, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				errs = append(errs, &ValidationError{
					Message: fmt.Sprintf("%s failed on %q", fe.Namespace(), fe.Tag()),
				})
			}
			return errors.Join(errs...)
		}
		return err
	}

	var errs []error
	for _, entity := range m.Entities {
		for _, attr := range entity.Attributes {
			if err := ValidateAttribute(attr); err != nil {
				errs = append(errs, &ValidationError{Entity: entity.Name, Attribute: attr.Name, Message: err.Error()})
			}
		}
	}
	for _, rel := range m.Relations {
		errs = append(errs, validateRelation(m, rel)...)
	}
	return errors.Join(errs...)
}

// ValidateAttribute checks the flag exclusivity rules and the default value
func ValidateAttribute(attr Attribute) error {
	if attr.PrimaryKey && attr.Nullable {
		return errors.New("a primary key cannot be nullable")
	}
	if attr.Unique && attr.Nullable {
		return errors.New("a unique column cannot be nullable")
	}
	if attr.Default == nil || attr.Nullable {
		return nil
	}
	return ValidateDefault(attr.Type, *attr.Default)
}

// ValidateDefault checks that value is an acceptable default for t
func ValidateDefault(t AttributeType, value string) error {
	ok := false
	switch t {
	case TypeIdentifier, TypeString:
		ok = true
	case TypeNumber:
		_, err := strconv.ParseFloat(value, 64)
		ok = err == nil
	case TypeMoney:
		_, err := strconv.ParseFloat(strings.TrimPrefix(value, "$"), 64)
		ok = err == nil
	case TypeBoolean:
		ok = value == "true" || value == "false"
	case TypeJSON:
		ok = json.Valid([]byte(value))
	case TypeDate, TypeDatetime, TypeTimestamp:
		ok = isDateTimeDefault(value)
	default:
		return fmt.Errorf("unknown attribute type %q, expected one of %s", t, attributeTypeList())
	}
	if !ok {
		return fmt.Errorf("invalid default value %q for type %s", value, t)
	}
	return nil
}

func attributeTypeList() string {
	names := make([]string, len(AttributeTypes))
	for i, t := range AttributeTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

func isDateTimeDefault(value string) bool {
	if dateTimeSentinels[value] {
		return true
	}
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return true
		}
	}
	return false
}

func validateRelation(m *Model, rel Relation) []error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, &ValidationError{Message: fmt.Sprintf("relation %s: ", rel.ID) + fmt.Sprintf(format, args...)})
	}

	for _, id := range []string{rel.FromEntity, rel.ToEntity} {
		entity := m.EntityByID(id)
		if entity == nil {
			fail("entity %s does not exist", id)
			continue
		}
		if n := len(entity.PrimaryKeys()); n != 1 {
			fail("entity %s must have exactly one primary key, has %d", entity.Name, n)
		}
	}

	if rel.Type == ManyToMany {
		if rel.ThroughEntity == "" {
			fail("many-to-many relation has no through entity")
		} else if m.EntityByID(rel.ThroughEntity) == nil {
			fail("through entity %s does not exist", rel.ThroughEntity)
		}
	}
	return errs
}

package activerecord

import (
	"fmt"
	"strings"
)

// IDField is the distinguished primary key field.
const IDField = "id"

// FieldType is a semantic type tag. Unknown tags are carried as-is.
type FieldType string

const (
	Serial  FieldType = "serial"
	String  FieldType = "string"
	Number  FieldType = "number"
	Boolean FieldType = "boolean"
	UUID    FieldType = "uuid"
	Time    FieldType = "time"
	JSON    FieldType = "json"
)

// Field is one schema entry.
type Field struct {
	Name string
	Type FieldType
}

// Schema is the ordered list of a model's fields.
type Schema []Field

// Fields builds a Schema from alternating name and type arguments:
//
//	Fields("id", Serial, "name", String)
//
// It panics on an odd argument count, a non-string name or a duplicate name,
// since schemas are declared once at start-up.
func Fields(pairs ...any) Schema {
	if len(pairs)%2 != 0 {
		panic("activerecord: Fields expects name/type pairs")
	}
	schema := make(Schema, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok || name == "" {
			panic(fmt.Sprintf("activerecord: field name at position %d must be a non-empty string", i))
		}
		var typ FieldType
		switch t := pairs[i+1].(type) {
		case FieldType:
			typ = t
		case string:
			typ = FieldType(t)
		default:
			panic(fmt.Sprintf("activerecord: field %q has type tag of type %T", name, pairs[i+1]))
		}
		if schema.Has(name) {
			panic(fmt.Sprintf("activerecord: duplicate field %q", name))
		}
		schema = append(schema, Field{Name: name, Type: typ})
	}
	return schema
}

// Names returns field names in declaration order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}

// Has reports whether name is declared.
func (s Schema) Has(name string) bool {
	_, ok := s.Lookup(name)
	return ok
}

// Lookup returns the field declared as name.
func (s Schema) Lookup(name string) (Field, bool) {
	for _, f := range s {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Columns is the default projection: every field joined with ", ".
func (s Schema) Columns() string {
	return strings.Join(s.Names(), ", ")
}

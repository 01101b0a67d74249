package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// Ingredient holds the schema definition for the reference Ingredient entity
// (§3 "Reference entities"). Schema-only: the generated ent client is an
// external `go generate ./...` build step, the same way the teacher keeps
// `internal/gateway/ent/schema` separate from the generated `internal/gateway/ent`
// package. internal/refdata loads this table's rows through database/sql
// instead of the generated client.
type Ingredient struct {
	ent.Schema
}

func (Ingredient) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("ingredient_id").
			Unique().
			Immutable(),
		field.String("primary_name").
			NotEmpty(),
		field.Strings("aliases").
			Default([]string{}),
		field.String("category").
			Default(""),
		field.String("default_form_id").
			Default(""),
	}
}

package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// Form holds the schema definition for the reference Form entity (§3).
type Form struct {
	ent.Schema
}

func (Form) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("form_id").
			Unique().
			Immutable(),
		field.String("name").
			NotEmpty(),
		field.String("form_group").
			Default(""),
		field.String("target_dimension").
			Default("auto"), // one of "g" | "mL" | "auto"
		field.String("display_rule_default").
			Default(""),
	}
}

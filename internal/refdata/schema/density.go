package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
)

// Density holds the schema definition for the reference Density entity
// (§3, §4.8). g_per_mL must be > 0 and within a plausible band, enforced at
// the repository layer rather than as an ent Validate() hook so the band
// stays runtime-configurable (§9 Open Question).
type Density struct {
	ent.Schema
}

func (Density) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("density_id").
			Unique().
			Immutable(),
		field.String("ingredient_id").
			NotEmpty(),
		field.String("form_id").
			NotEmpty(),
		field.Float("g_per_ml").
			Positive(),
		field.String("packed_state").
			Optional(), // "packed" | "loosely_packed" | ""
		field.Float("temp_c").
			Optional().
			Nillable(),
		field.Int("source_priority").
			Default(0),
		field.Float("quality_score").
			Default(0),
		field.Time("effective_from").
			Optional().
			Nillable(),
		field.Time("effective_to").
			Optional().
			Nillable(),
		field.Bool("is_active").
			Default(true),
	}
}

func (Density) Edges() []ent.Edge {
	return []ent.Edge{
		edge.To("ingredient", Ingredient.Type).Unique(),
		edge.To("form", Form.Type).Unique(),
	}
}

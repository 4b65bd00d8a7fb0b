package types

// SchemaField is one declared field of an object type. The type annotation is
// advisory metadata; it is not enforced on assignment.
type SchemaField struct {
	Name string
	Type string
}

// Schema describes an object type registered by a `type X = object {...}`
// declaration. Construction is validated against it: unknown fields are
// rejected, declared fields missing from the constructor default to nil.
type Schema struct {
	Name   string
	Fields []SchemaField
}

// Field returns the declared field with the given name
func (s *Schema) Field(name string) (SchemaField, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return SchemaField{}, false
}

// Schemas is a registry of declared object types. Each engine instance owns
// its own registry; there is no package-level table, so independent engines
// do not interfere.
type Schemas struct {
	byName map[string]*Schema
}

// NewSchemas creates an empty schema registry
func NewSchemas() *Schemas {
	return &Schemas{byName: make(map[string]*Schema)}
}

// Register adds or replaces a schema
func (r *Schemas) Register(s *Schema) {
	r.byName[s.Name] = s
}

// Lookup returns the schema for an object type name
func (r *Schemas) Lookup(name string) (*Schema, bool) {
	s, ok := r.byName[name]
	return s, ok
}

// Names returns the registered type names (unordered)
func (r *Schemas) Names() []string {
	out := make([]string, 0, len(r.byName))
	for n := range r.byName {
		out = append(out, n)
	}
	return out
}

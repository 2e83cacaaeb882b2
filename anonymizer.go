package veil

import "context"

// Anonymizer binds a validated schema to a built-in registry and a faker
// resolver. It is the entry point for the external row-update loop: one
// AlterField call per field value, from as many workers as the caller runs.
type Anonymizer struct {
	schema   *Schema
	faker    *Faker
	registry *Registry
}

// NewAnonymizer builds the registry and faker from the schema's options and
// validates every rule the schema references. Validation failures abort
// startup; better than discovering a broken rule mid-run.
func NewAnonymizer(schema *Schema) (*Anonymizer, error) {
	faker := NewFaker(schema.Options.Faker)
	registry := Builtin(faker)
	if err := schema.Validate(registry); err != nil {
		return nil, err
	}
	return &Anonymizer{
		schema:   schema,
		faker:    faker,
		registry: registry,
	}, nil
}

// Schema returns the bound schema.
func (a *Anonymizer) Schema() *Schema {
	return a.schema
}

// Registry returns the bound provider registry.
func (a *Anonymizer) Registry() *Registry {
	return a.registry
}

// Faker returns the bound generator resolver.
func (a *Anonymizer) Faker() *Faker {
	return a.faker
}

// AlterField replaces one field value according to its rule. The rule's
// locale, when set, is passed to the provider alongside its arguments.
func (a *Anonymizer) AlterField(ctx context.Context, rule ProviderRule, original string) (Value, error) {
	args := rule.Args.clone()
	if rule.Locale != "" {
		args["locale"] = rule.Locale
	}
	return a.registry.Alter(ctx, rule.Name, original, args)
}

package veil

import (
	"context"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Schema is the declarative rule set: per table and column, which provider
// replaces the column's values.
//
//	tables:
//	  - name: auth_user
//	    primary_key: id
//	    fields:
//	      - name: first_name
//	        provider:
//	          name: fake.first_name
//	      - name: email
//	        provider:
//	          name: partial_mask
//	          unmasked_left: 2
//	          unmasked_right: 4
//	    excludes:
//	      - column: email
//	        pattern: "^admin"
//	options:
//	  faker:
//	    default_locale: en_US
//	    locales: [en_US, de_DE]
type Schema struct {
	Tables  []TableRule `yaml:"tables"`
	Options Options     `yaml:"options"`
}

// Options is the global configuration block.
type Options struct {
	Faker FakerOptions `yaml:"faker"`
}

// TableRule declares the anonymization of one table.
type TableRule struct {
	Name       string        `yaml:"name"`
	PrimaryKey string        `yaml:"primary_key"`
	Fields     []FieldRule   `yaml:"fields"`
	Excludes   []ExcludeRule `yaml:"excludes"`
}

// FieldRule binds one column to a provider.
type FieldRule struct {
	Name     string       `yaml:"name"`
	Provider ProviderRule `yaml:"provider"`
}

// ProviderRule selects a provider and carries its arguments. Any key other
// than name and locale is passed through to the provider as-is.
type ProviderRule struct {
	Name   string `yaml:"name"`
	Locale string `yaml:"locale"`
	Args   Args   `yaml:",inline"`
}

// ExcludeRule skips rows whose column value matches a pattern.
type ExcludeRule struct {
	Column  string `yaml:"column"`
	Pattern string `yaml:"pattern"`

	re *regexp.Regexp
}

// ParseSchema decodes a YAML schema.
func ParseSchema(data []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	return &s, nil
}

// LoadSchema reads and decodes a YAML schema file.
func LoadSchema(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	s, err := ParseSchema(data)
	if err != nil {
		return nil, err
	}
	emitSchemaLoaded(context.Background(), path, len(s.Tables))
	return s, nil
}

// Validate checks the schema against a registry: every field names a rule
// the registry can resolve, every per-field locale is declared in the global
// locale set, and every exclude pattern compiles. Validation failures are
// configuration errors; a partially valid schema must not be applied.
func (s *Schema) Validate(registry *Registry) error {
	declared := make(map[string]struct{}, len(s.Options.Faker.Locales)+1)
	for _, l := range s.Options.Faker.Locales {
		declared[l] = struct{}{}
	}
	if l := s.Options.Faker.DefaultLocale; l != "" {
		declared[l] = struct{}{}
	}

	for ti := range s.Tables {
		table := &s.Tables[ti]
		if table.Name == "" {
			return fmt.Errorf("table %d: missing name", ti)
		}

		for _, field := range table.Fields {
			if field.Name == "" {
				return fmt.Errorf("table %s: field without a name", table.Name)
			}
			if field.Provider.Name == "" {
				return fmt.Errorf("table %s, field %s: missing provider name", table.Name, field.Name)
			}
			if _, err := registry.Resolve(field.Provider.Name); err != nil {
				return fmt.Errorf("table %s, field %s: %w", table.Name, field.Name, err)
			}
			if locale := field.Provider.Locale; locale != "" {
				if _, ok := declared[locale]; !ok {
					return &ArgumentError{
						Err:    ErrUnknownLocale,
						Rule:   field.Provider.Name,
						Detail: fmt.Sprintf("table %s, field %s: locale %s is not declared in options.faker.locales", table.Name, field.Name, locale),
					}
				}
			}
		}

		for ei := range table.Excludes {
			exclude := &table.Excludes[ei]
			re, err := regexp.Compile(exclude.Pattern)
			if err != nil {
				return fmt.Errorf("table %s, exclude %s: %w", table.Name, exclude.Column, err)
			}
			exclude.re = re
		}
	}

	return nil
}

// Table returns the rule for the named table.
func (s *Schema) Table(name string) (*TableRule, bool) {
	for i := range s.Tables {
		if s.Tables[i].Name == name {
			return &s.Tables[i], true
		}
	}
	return nil, false
}

// Excluded reports whether a row with the given column value is excluded
// from anonymization. Patterns must have been compiled by Validate.
func (t *TableRule) Excluded(column, value string) bool {
	for _, exclude := range t.Excludes {
		if exclude.Column == column && exclude.re != nil && exclude.re.MatchString(value) {
			return true
		}
	}
	return false
}

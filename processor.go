package veil

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/zoobzio/sentinel"
)

func init() {
	// Register the rule tag with sentinel
	sentinel.Tag("veil")
}

// Cloner allows types to provide deep copy logic.
// Implementing this interface is required for use with Processor.
//
// The Clone method must return a deep copy where modifications to the clone
// do not affect the original value. For simple value types with no pointers,
// slices, or maps, Clone can simply return the receiver value:
//
//	func (u User) Clone() User { return u }
type Cloner[T any] interface {
	Clone() T
}

// Processor anonymizes struct values according to `veil` struct tags.
//
// A tag names the rule and optional comma-separated arguments:
//
//	Email string `veil:"partial_mask,unmasked_left=2,unmasked_right=4,sign=*"`
//
// Processors are immutable after construction and safe for concurrent use.
// Every tagged rule is resolved against the registry at construction time,
// so configuration errors surface at startup rather than mid-run.
type Processor[T Cloner[T]] struct {
	registry *Registry
	plans    []fieldPlan
	typeName string
}

// fieldPlan describes how to transform a single field.
type fieldPlan struct {
	index   []int  // reflect.Value.FieldByIndex access path
	name    string // field name for error messages
	rule    string // rule identifier from the tag
	args    Args   // arguments parsed from the tag
	isSlice bool   // true if field is []string
	isMap   bool   // true if field is map[K]string
}

// NewProcessor creates a Processor for type T against the given registry.
func NewProcessor[T Cloner[T]](registry *Registry) (*Processor[T], error) {
	spec := sentinel.Scan[T]()

	var plans []fieldPlan
	if err := buildFieldPlans(&plans, spec, nil, ""); err != nil {
		return nil, err
	}

	for _, plan := range plans {
		if _, err := registry.Resolve(plan.rule); err != nil {
			return nil, fmt.Errorf("field %s: %w", plan.name, err)
		}
	}

	p := &Processor[T]{
		registry: registry,
		plans:    plans,
		typeName: spec.TypeName,
	}

	emitProcessorCreated(context.Background(), spec.TypeName, len(plans))
	return p, nil
}

// Anonymize returns a transformed copy of v: the value is cloned and every
// tagged field is replaced through the registry. NULL replacements become
// the zero string; map entries with NULL replacements are removed.
func (p *Processor[T]) Anonymize(ctx context.Context, v T) (T, error) {
	clone := v.Clone()
	rv := reflect.ValueOf(&clone).Elem()

	for _, plan := range p.plans {
		field, ok := getField(rv, plan.index)
		if !ok {
			continue
		}

		if plan.isSlice {
			for i := 0; i < field.Len(); i++ {
				elem := field.Index(i)
				if !elem.CanSet() {
					continue
				}
				out, err := p.registry.Alter(ctx, plan.rule, elem.String(), plan.args)
				if err != nil {
					return clone, fmt.Errorf("field %s[%d]: %w", plan.name, i, err)
				}
				elem.SetString(out.String())
			}
			continue
		}

		if plan.isMap {
			iter := field.MapRange()
			for iter.Next() {
				k, mv := iter.Key(), iter.Value()
				out, err := p.registry.Alter(ctx, plan.rule, mv.String(), plan.args)
				if err != nil {
					return clone, fmt.Errorf("field %s[%v]: %w", plan.name, k.Interface(), err)
				}
				if out.IsNull() {
					field.SetMapIndex(k, reflect.Value{})
					continue
				}
				field.SetMapIndex(k, reflect.ValueOf(out.String()))
			}
			continue
		}

		if !field.CanSet() {
			continue
		}
		out, err := p.registry.Alter(ctx, plan.rule, field.String(), plan.args)
		if err != nil {
			return clone, fmt.Errorf("field %s: %w", plan.name, err)
		}
		field.SetString(out.String())
	}

	return clone, nil
}

// getField walks an index path, dereferencing non-nil pointers along the way.
func getField(rv reflect.Value, index []int) (reflect.Value, bool) {
	field := rv
	for _, i := range index {
		if field.Kind() == reflect.Ptr {
			if field.IsNil() {
				return reflect.Value{}, false
			}
			field = field.Elem()
		}
		field = field.Field(i)
	}
	if field.Kind() == reflect.Ptr {
		if field.IsNil() {
			return reflect.Value{}, false
		}
		field = field.Elem()
	}
	return field, true
}

// buildFieldPlans recursively processes fields and nested structs.
func buildFieldPlans(plans *[]fieldPlan, spec sentinel.Metadata, parentIndex []int, namePrefix string) error {
	for _, field := range spec.Fields {
		fullIndex := append(append([]int{}, parentIndex...), field.Index...)
		fullName := field.Name
		if namePrefix != "" {
			fullName = namePrefix + "." + field.Name
		}

		// Handle nested structs
		if field.Kind == sentinel.KindStruct {
			if nested := scanNestedType(field.ReflectType); nested != nil {
				if err := buildFieldPlans(plans, *nested, fullIndex, fullName); err != nil {
					return err
				}
			}
			continue
		}

		// Handle pointer to struct
		if field.Kind == sentinel.KindPointer && field.ReflectType.Elem().Kind() == reflect.Struct {
			if nested := scanNestedType(field.ReflectType.Elem()); nested != nil {
				if err := buildFieldPlans(plans, *nested, fullIndex, fullName); err != nil {
					return err
				}
			}
			continue
		}

		tag, ok := field.Tags["veil"]
		if !ok {
			continue
		}

		isString := field.ReflectType.Kind() == reflect.String
		isStringSlice := field.ReflectType.Kind() == reflect.Slice &&
			field.ReflectType.Elem().Kind() == reflect.String
		isStringMap := field.ReflectType.Kind() == reflect.Map &&
			field.ReflectType.Elem().Kind() == reflect.String

		if !isString && !isStringSlice && !isStringMap {
			return fmt.Errorf("field %s: veil tag requires a string, []string, or map of string field", fullName)
		}

		rule, args, err := parseRuleTag(tag)
		if err != nil {
			return fmt.Errorf("field %s: %w", fullName, err)
		}

		*plans = append(*plans, fieldPlan{
			index:   fullIndex,
			name:    fullName,
			rule:    rule,
			args:    args,
			isSlice: isStringSlice,
			isMap:   isStringMap,
		})
	}

	return nil
}

// parseRuleTag splits `rule,k=v,k=v` into the rule identifier and its
// arguments. Argument values stay strings; the Args getters coerce.
func parseRuleTag(tag string) (string, Args, error) {
	parts := strings.Split(tag, ",")
	rule := strings.TrimSpace(parts[0])
	if rule == "" {
		return "", nil, fmt.Errorf("empty rule identifier")
	}

	args := make(Args, len(parts)-1)
	for _, part := range parts[1:] {
		k, v, found := strings.Cut(part, "=")
		if !found || strings.TrimSpace(k) == "" {
			return "", nil, fmt.Errorf("malformed argument %q, want k=v", part)
		}
		args[strings.TrimSpace(k)] = v
	}
	return rule, args, nil
}

// scanNestedType scans a nested struct type and returns its metadata.
func scanNestedType(rt reflect.Type) *sentinel.Metadata {
	if spec, ok := sentinel.Lookup(rt.String()); ok {
		return &spec
	}

	if rt.Kind() != reflect.Struct {
		return nil
	}

	spec := sentinel.Metadata{
		TypeName:    rt.Name(),
		PackageName: rt.PkgPath(),
		Fields:      make([]sentinel.FieldMetadata, 0, rt.NumField()),
	}

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		fm := sentinel.FieldMetadata{
			Name:        sf.Name,
			Type:        sf.Type.String(),
			ReflectType: sf.Type,
			Index:       sf.Index,
			Tags:        make(map[string]string),
		}
		if val, ok := sf.Tag.Lookup("veil"); ok {
			fm.Tags["veil"] = val
		}

		switch sf.Type.Kind() {
		case reflect.Struct:
			fm.Kind = sentinel.KindStruct
		case reflect.Ptr:
			fm.Kind = sentinel.KindPointer
		case reflect.Slice, reflect.Array:
			fm.Kind = sentinel.KindSlice
		case reflect.Map:
			fm.Kind = sentinel.KindMap
		case reflect.Interface:
			fm.Kind = sentinel.KindInterface
		default:
			fm.Kind = sentinel.KindScalar
		}

		spec.Fields = append(spec.Fields, fm)
	}

	return &spec
}

// processorKey combines type and registry for cache lookup.
type processorKey struct {
	typ      reflect.Type
	registry *Registry
}

var (
	processorCache = make(map[processorKey]any)
	processorMu    sync.RWMutex
)

// Use returns a cached processor or builds a new one.
// The processor is cached by type and registry.
func Use[T Cloner[T]](registry *Registry) (*Processor[T], error) {
	key := processorKey{typ: reflect.TypeFor[T](), registry: registry}

	// Fast path: read-lock cache check
	processorMu.RLock()
	if cached, ok := processorCache[key]; ok {
		processorMu.RUnlock()
		return cached.(*Processor[T]), nil
	}
	processorMu.RUnlock()

	// Slow path: build and cache with write-lock
	processorMu.Lock()
	defer processorMu.Unlock()

	// Double-check pattern
	if cached, ok := processorCache[key]; ok {
		return cached.(*Processor[T]), nil
	}

	p, err := NewProcessor[T](registry)
	if err != nil {
		return nil, err
	}

	processorCache[key] = p
	return p, nil
}

// ResetProcessors clears the processor cache.
// This is primarily useful for test isolation.
func ResetProcessors() {
	processorMu.Lock()
	defer processorMu.Unlock()
	processorCache = make(map[processorKey]any)
}

package veil

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for engine events.
var (
	SignalRegistryReady    = capitan.NewSignal("veil.registry.ready", "Provider registry populated")
	SignalAlterStart       = capitan.NewSignal("veil.alter.start", "Field alteration beginning")
	SignalAlterComplete    = capitan.NewSignal("veil.alter.complete", "Field alteration finished")
	SignalProcessorCreated = capitan.NewSignal("veil.processor.created", "Struct processor instantiated")
	SignalSchemaLoaded     = capitan.NewSignal("veil.schema.loaded", "Anonymization schema loaded")
)

// Keys for typed event data.
var (
	KeyRule       = capitan.NewStringKey("rule")
	KeyTypeName   = capitan.NewStringKey("type_name")
	KeySchemaPath = capitan.NewStringKey("schema_path")
	KeyProviders  = capitan.NewIntKey("providers")
	KeyTables     = capitan.NewIntKey("tables")
	KeyFields     = capitan.NewIntKey("fields")
	KeyDuration   = capitan.NewDurationKey("duration")
	KeyError      = capitan.NewErrorKey("error")
)

// emitRegistryReady emits an event when a registry finishes startup
// registration.
func emitRegistryReady(ctx context.Context, providers int) {
	capitan.Emit(ctx, SignalRegistryReady,
		KeyProviders.Field(providers),
	)
}

// emitAlterStart emits an event when a field alteration begins.
func emitAlterStart(ctx context.Context, rule string) {
	capitan.Emit(ctx, SignalAlterStart,
		KeyRule.Field(rule),
	)
}

// emitAlterComplete emits an event when a field alteration finishes.
func emitAlterComplete(ctx context.Context, rule string, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyRule.Field(rule),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalAlterComplete, fields...)
		return
	}
	capitan.Emit(ctx, SignalAlterComplete, fields...)
}

// emitProcessorCreated emits an event when a struct processor is created.
func emitProcessorCreated(ctx context.Context, typeName string, fields int) {
	capitan.Emit(ctx, SignalProcessorCreated,
		KeyTypeName.Field(typeName),
		KeyFields.Field(fields),
	)
}

// emitSchemaLoaded emits an event when a schema file is loaded.
func emitSchemaLoaded(ctx context.Context, path string, tables int) {
	capitan.Emit(ctx, SignalSchemaLoaded,
		KeySchemaPath.Field(path),
		KeyTables.Field(tables),
	)
}

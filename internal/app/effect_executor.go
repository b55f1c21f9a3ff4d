// Package app contains the application layer - service implementations and effect execution.
package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/example/codegen/internal/core/effects"
	"github.com/example/codegen/internal/logger"
	"github.com/example/codegen/internal/ports/secondary"
)

// EffectExecutor interprets and executes effects.
// This is the "Imperative Shell" - the only place I/O happens.
type EffectExecutor interface {
	Execute(ctx context.Context, effs []effects.Effect) error
}

// DefaultEffectExecutor implements EffectExecutor against a workspace adapter.
type DefaultEffectExecutor struct {
	workspace secondary.WorkspaceAdapter
}

// NewEffectExecutor creates a new DefaultEffectExecutor.
func NewEffectExecutor(workspace secondary.WorkspaceAdapter) *DefaultEffectExecutor {
	return &DefaultEffectExecutor{workspace: workspace}
}

// Execute processes a slice of effects, executing each in sequence.
func (e *DefaultEffectExecutor) Execute(ctx context.Context, effs []effects.Effect) error {
	for _, eff := range effs {
		if err := e.executeOne(ctx, eff); err != nil {
			return fmt.Errorf("failed to execute %s effect: %w", eff.EffectType(), err)
		}
	}
	return nil
}

func (e *DefaultEffectExecutor) executeOne(ctx context.Context, eff effects.Effect) error {
	switch typed := eff.(type) {
	case effects.FileEffect:
		return e.executeFile(ctx, typed)
	case effects.LogEffect:
		e.executeLog(ctx, typed)
		return nil
	default:
		return fmt.Errorf("unknown effect type: %T", eff)
	}
}

func (e *DefaultEffectExecutor) executeFile(ctx context.Context, eff effects.FileEffect) error {
	switch eff.Operation {
	case effects.FileMkdir:
		return e.workspace.CreateDirectory(ctx, eff.Path)
	case effects.FileWrite:
		if eff.Exclusive {
			return e.workspace.WriteFileExclusive(ctx, eff.Path, eff.Content, eff.Mode)
		}
		return e.workspace.WriteFile(ctx, eff.Path, eff.Content, eff.Mode)
	default:
		return fmt.Errorf("unknown file operation: %s", eff.Operation)
	}
}

func (e *DefaultEffectExecutor) executeLog(ctx context.Context, eff effects.LogEffect) {
	keys := make([]string, 0, len(eff.Fields))
	for k := range eff.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	keyvals := make([]any, 0, 2*len(keys))
	for _, k := range keys {
		keyvals = append(keyvals, k, eff.Fields[k])
	}

	log := logger.FromContext(ctx)
	switch eff.Level {
	case "debug":
		log.Debug(eff.Message, keyvals...)
	case "warn":
		log.Warn(eff.Message, keyvals...)
	case "error":
		log.Error(eff.Message, keyvals...)
	default:
		log.Info(eff.Message, keyvals...)
	}
}

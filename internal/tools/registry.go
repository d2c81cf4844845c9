package tools

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/patchloom/patchloom/internal/logger"
	"github.com/patchloom/patchloom/internal/secretdetect"
)

type registryEntry struct {
	spec      ToolSpec
	executor  ToolExecutor
	exclusive bool
}

// Registry holds the canonical toolset and dispatches ToolCalls to them.
type Registry struct {
	entries        map[string]*registryEntry
	writeMu        sync.Mutex
	secretDetector secretdetect.Detector
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*registryEntry)}
}

// NewRegistryWithSecrets builds a registry that scans every generated
// diff for secrets before it leaves Execute.
func NewRegistryWithSecrets(detector secretdetect.Detector) *Registry {
	return &Registry{entries: make(map[string]*registryEntry), secretDetector: detector}
}

// SetSecretDetector attaches (or replaces) the registry's secret scanner.
func (r *Registry) SetSecretDetector(detector secretdetect.Detector) {
	r.secretDetector = detector
}

// RegisterSpec registers spec, instantiating its executor via factory.
func (r *Registry) RegisterSpec(spec ToolSpec, factory ToolFactory) {
	exclusive := false
	if ex, ok := spec.(exclusiveToolSpec); ok {
		exclusive = ex.RequiresExclusiveExecution()
	}
	r.entries[spec.Name()] = &registryEntry{
		spec:      spec,
		executor:  factory(r),
		exclusive: exclusive,
	}
}

// Get returns the named tool's spec and executor.
func (r *Registry) Get(name string) (ToolSpec, ToolExecutor, bool) {
	e, ok := r.entries[name]
	if !ok {
		return nil, nil, false
	}
	return e.spec, e.executor, true
}

// ListSpecs returns every registered tool's spec, sorted by name.
func (r *Registry) ListSpecs() []ToolSpec {
	out := make([]ToolSpec, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.spec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// ToJSONSchema renders every registered tool's spec as an
// OpenAI/Anthropic-style function-calling schema entry.
func (r *Registry) ToJSONSchema() []map[string]interface{} {
	specs := r.ListSpecs()
	out := make([]map[string]interface{}, 0, len(specs))
	for _, s := range specs {
		out = append(out, map[string]interface{}{
			"name":        s.Name(),
			"description": s.Description(),
			"parameters":  s.Parameters(),
		})
	}
	return out
}

// Execute validates call.Parameters against the tool's schema, runs it
// (serialized against other exclusive tools via the registry's
// single-writer lock), and scans the result's diff for secrets before
// returning it.
func (r *Registry) Execute(ctx context.Context, call *ToolCall) *ToolResult {
	entry, ok := r.entries[call.Name]
	if !ok {
		return &ToolResult{ID: call.ID, Error: "unknown tool: " + call.Name}
	}

	if err := validateParams(entry.spec, call.Parameters); err != nil {
		return &ToolResult{ID: call.ID, Error: err.Error()}
	}

	result := r.executeWithWriteLock(entry.exclusive, func() *ToolResult {
		return entry.executor.Execute(ctx, call.Parameters)
	})
	if result == nil {
		return &ToolResult{ID: call.ID, Error: "tool returned nil result"}
	}
	result.ID = call.ID

	r.scanForSecrets(call.Name, result)

	return result
}

func (r *Registry) executeWithWriteLock(exclusive bool, fn func() *ToolResult) *ToolResult {
	if exclusive {
		r.writeMu.Lock()
		defer r.writeMu.Unlock()
	}
	return fn()
}

func (r *Registry) scanForSecrets(toolName string, result *ToolResult) {
	if r.secretDetector == nil || result.Result == nil {
		return
	}
	diff, ok := result.Result["diff"].(string)
	if !ok || diff == "" {
		return
	}
	if matches := secretdetect.ScanDiff(r.secretDetector, diff); len(matches) > 0 {
		logger.WarnFields("generated diff contains likely secret(s)", logger.Fields{
			"tool":  toolName,
			"count": len(matches),
		})
		warnings := make([]string, 0, len(matches))
		for _, m := range matches {
			warnings = append(warnings, m.PatternName+" at line "+strconv.Itoa(m.LineNumber))
		}
		result.Result["secret_warnings"] = warnings
	}
}

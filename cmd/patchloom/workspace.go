package main

import (
	"log/slog"
	"strings"

	"github.com/patchloom/patchloom/internal/config"
	"github.com/patchloom/patchloom/internal/logger"
	"github.com/patchloom/patchloom/internal/secretdetect"
	"github.com/patchloom/patchloom/internal/tools"
	"github.com/patchloom/patchloom/internal/workspace"
)

// openWorkspace loads root's config (falling back to defaults), wires up
// the global logger, and returns a Workspace plus its bound tool registry.
func openWorkspace(root string) (*workspace.Workspace, *tools.Registry, error) {
	cfg, err := config.Load(root)
	if err != nil {
		return nil, nil, err
	}

	if cfg.LogLevel != "" {
		if err := logger.Init(logger.ParseLevel(strings.ToLower(cfg.LogLevel)), cfg.LogFile); err != nil {
			return nil, nil, err
		}
	}

	// Route the stdlib slog default through the global *logger.Logger so
	// any dependency that logs via log/slog (bubbletea, tree-sitter
	// bindings invoked from a background goroutine, etc.) lands in the
	// same log file and level gate as the rest of the CLI.
	slog.SetDefault(slog.New(logger.NewSlogHandler(logger.Global())))

	ws, err := workspace.Open(root, cfg, nil)
	if err != nil {
		return nil, nil, err
	}

	registry := tools.NewDefaultRegistry(ws, secretdetect.NewDetector())
	return ws, registry, nil
}

package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level.
type LogHooks struct {
	Logger *log.Logger
}

// Register installs h for every hook category.
func (h LogHooks) Register() {
	SetPipelineHooks(h)
	SetAnnealHooks(h)
	SetCacheHooks(h)
	SetServerHooks(h)
}

func (h LogHooks) OnLayoutStart(_ context.Context, nodes, cells int) {
	h.Logger.Debug("layout start", "nodes", nodes, "cells", cells)
}

func (h LogHooks) OnLayoutComplete(_ context.Context, nodes, cost int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("layout failed", "nodes", nodes, "err", err, "duration", d)
		return
	}
	h.Logger.Debug("layout done", "nodes", nodes, "cost", cost, "duration", d)
}

func (h LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.Logger.Debug("render start", "formats", formats)
}

func (h LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.Logger.Debug("render done", "formats", formats, "duration", d, "err", err)
}

func (h LogHooks) OnLevel(_ context.Context, level int, t float64, current, best, accepted int) {
	h.Logger.Debug("level", "n", level, "t", t, "current", current, "best", best, "accepted", accepted)
}

func (h LogHooks) OnFrozen(_ context.Context, iterations, best int, d time.Duration) {
	h.Logger.Debug("frozen", "iterations", iterations, "best", best, "duration", d)
}

func (h LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h LogHooks) OnRequest(_ context.Context, method, route string) {
	h.Logger.Debug("request", "method", method, "route", route)
}

func (h LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.Logger.Info("response", "method", method, "route", route, "status", status, "duration", d)
}

var (
	_ PipelineHooks = LogHooks{}
	_ AnnealHooks   = LogHooks{}
	_ CacheHooks    = LogHooks{}
	_ ServerHooks   = LogHooks{}
)

package observability

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnCompileStart(ctx, "bar")
	p.OnCompileComplete(ctx, "bar", 1024, time.Millisecond, nil)
	p.OnConvert(ctx, "png", time.Millisecond, nil)
	p.OnPublish(ctx, "charts/chart-1.svg", 1024, time.Millisecond, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "artifact")
	c.OnCacheMiss(ctx, "artifact")
	c.OnCacheSet(ctx, "artifact", 1024)

	s := NoopServerHooks{}
	s.OnRequest(ctx, "GET", "/chart")
	s.OnResponse(ctx, "GET", "/chart", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() default is not a no-op")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() default is not a no-op")
	}
	if _, ok := Server().(NoopServerHooks); !ok {
		t.Error("Server() default is not a no-op")
	}

	pipeline := &countingHooks{}
	SetPipelineHooks(pipeline)
	SetCacheHooks(pipeline)
	SetServerHooks(pipeline)
	if Pipeline() != pipeline || Cache() != pipeline || Server() != pipeline {
		t.Error("custom hooks not registered")
	}

	SetPipelineHooks(nil)
	if Pipeline() != pipeline {
		t.Error("nil replaced registered hooks")
	}

	Pipeline().OnCompileStart(context.Background(), "pie")
	Cache().OnCacheHit(context.Background(), "artifact")
	if pipeline.events != 2 {
		t.Errorf("events = %d, want 2", pipeline.events)
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() did not restore defaults")
	}
}

type countingHooks struct {
	NoopPipelineHooks
	NoopCacheHooks
	NoopServerHooks
	mu     sync.Mutex
	events int
}

func (h *countingHooks) OnCompileStart(context.Context, string) { h.inc() }

func (h *countingHooks) OnCacheHit(context.Context, string) { h.inc() }

func (h *countingHooks) inc() {
	h.mu.Lock()
	h.events++
	h.mu.Unlock()
}

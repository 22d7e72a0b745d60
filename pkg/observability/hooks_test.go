package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPassHooks{}
	p.OnPassStart(ctx, 10, 436)
	p.OnPassComplete(ctx, 10, 3, time.Millisecond)

	r := NoopRenderHooks{}
	r.OnRenderStart(ctx, []string{"svg"})
	r.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "frame")
	c.OnCacheMiss(ctx, "artifact")
	c.OnCacheSet(ctx, "artifact", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "picsum.photos", "/id/1/800")
	h.OnResponse(ctx, "GET", "picsum.photos", "/id/1/800", 200, time.Second)
	h.OnError(ctx, "GET", "picsum.photos", "/id/1/800", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Pass().(NoopPassHooks); !ok {
		t.Error("Pass() should return NoopPassHooks by default")
	}
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Render() should return NoopRenderHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customPass := &testPassHooks{}
	SetPassHooks(customPass)
	if Pass() != customPass {
		t.Error("SetPassHooks should set custom hooks")
	}

	customRender := &testRenderHooks{}
	SetRenderHooks(customRender)
	if Render() != customRender {
		t.Error("SetRenderHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Pass().(NoopPassHooks); !ok {
		t.Error("Reset() should restore NoopPassHooks")
	}
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Reset() should restore NoopRenderHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testPassHooks{}
	SetPassHooks(custom)

	// Setting nil should be ignored
	SetPassHooks(nil)

	if Pass() != custom {
		t.Error("SetPassHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testPassHooks struct{ NoopPassHooks }
type testRenderHooks struct{ NoopRenderHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }

package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	a := NoopAnnotateHooks{}
	a.OnRefreshStart(ctx, "file:///app/package.json", 3)
	a.OnRefreshComplete(ctx, "file:///app/package.json", 3, time.Second, nil)
	a.OnRefreshSuperseded(ctx, "file:///app/package.json", 7)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "reactnative.directory", "/api/libraries/library")
	h.OnResponse(ctx, "GET", "reactnative.directory", "/api/libraries/library", 200, time.Second)
	h.OnError(ctx, "GET", "reactnative.directory", "/api/libraries/library", errors.New("boom"))
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Annotate().(NoopAnnotateHooks); !ok {
		t.Error("Annotate() should return NoopAnnotateHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customAnnotate := &testAnnotateHooks{}
	SetAnnotateHooks(customAnnotate)
	if Annotate() != customAnnotate {
		t.Error("SetAnnotateHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Annotate().(NoopAnnotateHooks); !ok {
		t.Error("Reset() should restore NoopAnnotateHooks")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("Reset() should restore NoopHTTPHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testAnnotateHooks{}
	SetAnnotateHooks(custom)
	SetAnnotateHooks(nil)
	if Annotate() != custom {
		t.Error("SetAnnotateHooks(nil) should be ignored")
	}

	SetHTTPHooks(nil)
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("SetHTTPHooks(nil) should be ignored")
	}
}

type testAnnotateHooks struct{ NoopAnnotateHooks }
type testHTTPHooks struct{ NoopHTTPHooks }

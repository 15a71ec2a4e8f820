package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/react-native-community/vscode-react-native-directory/pkg/observability"
)

func TestRegisterHooks(t *testing.T) {
	t.Cleanup(observability.Reset)

	if registerHooks(newLogger(&bytes.Buffer{}, log.InfoLevel)) {
		t.Fatal("hooks registered at info level")
	}

	var buf bytes.Buffer
	if !registerHooks(newLogger(&buf, log.DebugLevel)) {
		t.Fatal("hooks not registered at debug level")
	}
	observability.HTTP().OnResponse(context.Background(), "GET", "reactnative.directory", "/api/libraries", 200, 0)
	observability.Annotate().OnRefreshSuperseded(context.Background(), "file:///app/package.json", 3)

	out := buf.String()
	for _, want := range []string{"http response", "status=200", "refresh superseded", "token=3"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

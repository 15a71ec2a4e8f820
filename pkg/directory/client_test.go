package directory

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const leftPadJSON = `{
  "left-pad": {
    "npmPkg": "left-pad",
    "githubUrl": "https://github.com/x/left-pad",
    "ios": true,
    "android": true,
    "expoGo": true,
    "vegaos": "https://example.com/vega",
    "unmaintained": true,
    "newArchitecture": "new-arch-only",
    "configPlugin": false,
    "alternatives": ["string.prototype.padstart"],
    "github": {
      "name": "left-pad",
      "fullName": "x/left-pad",
      "description": "String left pad",
      "hasTypes": true,
      "urls": {"repo": "https://github.com/x/left-pad", "homepage": null},
      "stats": {"stars": 1200, "forks": 30, "issues": 4, "subscribers": 10},
      "license": {"key": "mit", "name": "MIT License", "spdxId": "MIT", "url": "https://api.github.com/licenses/mit"}
    },
    "npm": {"downloads": 3400000, "weekDownloads": 800000},
    "score": 80
  }
}`

func TestLookup(t *testing.T) {
	var gotPath, gotName, gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotName = r.URL.Query().Get("name")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(leftPadJSON))
	}))
	defer server.Close()

	c := NewClient(WithBaseURL(server.URL+"/api/libraries/"), WithHTTPClient(server.Client()), WithUserAgent("test-agent"))
	libs, err := c.Lookup(context.Background(), []string{"left-pad", "@scope/pkg"})
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	if gotPath != "/api/libraries/library" {
		t.Errorf("path = %q", gotPath)
	}
	if gotName != "left-pad,@scope/pkg" {
		t.Errorf("name = %q", gotName)
	}
	if gotUA != "test-agent" {
		t.Errorf("User-Agent = %q", gotUA)
	}

	lib, ok := libs["left-pad"]
	if !ok {
		t.Fatalf("left-pad missing from %v", libs)
	}
	if lib.GitHub.Stats.Stars != 1200 || lib.Downloads() != 3400000 || lib.Score != 80 {
		t.Errorf("stats = %+v, downloads = %d, score = %d", lib.GitHub.Stats, lib.Downloads(), lib.Score)
	}
	if !lib.Unmaintained || lib.NewArchitecture != NewArchOnly {
		t.Errorf("unmaintained = %v, newArchitecture = %v", lib.Unmaintained, lib.NewArchitecture)
	}
	if !lib.IOS.Set || !lib.ExpoGo.Set || lib.Web.Set || lib.ConfigPlugin.Set {
		t.Errorf("flags = ios:%v expoGo:%v web:%v configPlugin:%v", lib.IOS.Set, lib.ExpoGo.Set, lib.Web.Set, lib.ConfigPlugin.Set)
	}
	if !lib.VegaOS.Set || lib.VegaOS.Value != "https://example.com/vega" {
		t.Errorf("vegaos = %+v", lib.VegaOS)
	}
	if lib.GitHub.License == nil || lib.GitHub.License.SpdxID != "MIT" {
		t.Errorf("license = %+v", lib.GitHub.License)
	}
}

func TestLookupNoNames(t *testing.T) {
	c := NewClient(WithBaseURL("http://127.0.0.1:1"))
	libs, err := c.Lookup(context.Background(), nil)
	if err != nil || len(libs) != 0 {
		t.Fatalf("Lookup(nil) = %v, %v", libs, err)
	}
}

func TestLookupFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantIs  error
	}{
		{
			name:    "server error",
			handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusServiceUnavailable) },
			wantIs:  ErrNetwork,
		},
		{
			name:    "bad body",
			handler: func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`[1,2,3]`)) },
			wantIs:  ErrDecode,
		},
		{
			name:    "bad field type",
			handler: func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"x":{"newArchitecture":42}}`)) },
			wantIs:  ErrDecode,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls++
				tt.handler(w, r)
			}))
			defer server.Close()

			c := NewClient(WithBaseURL(server.URL), WithHTTPClient(server.Client()))
			libs, err := c.Lookup(context.Background(), []string{"x"})
			if !errors.Is(err, tt.wantIs) {
				t.Fatalf("error = %v, want %v", err, tt.wantIs)
			}
			if libs != nil {
				t.Errorf("libs = %v, want nil", libs)
			}
			if calls != 1 {
				t.Errorf("calls = %d, lookups must not retry", calls)
			}
		})
	}
}

func TestLookupCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(WithBaseURL("http://127.0.0.1:1"))
	if _, err := c.Lookup(ctx, []string{"x"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}

func TestPackage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("name") == "left-pad" {
			w.Write([]byte(leftPadJSON))
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := NewClient(WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	lib, err := c.Package(context.Background(), "left-pad")
	if err != nil {
		t.Fatalf("Package() error: %v", err)
	}
	if lib.NpmPkg != "left-pad" {
		t.Errorf("NpmPkg = %q", lib.NpmPkg)
	}

	if _, err := c.Package(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestSearch(t *testing.T) {
	var gotQuery string
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"libraries":[{"npmPkg":"react-native-svg","github":{"stats":{"stars":7000}}}],"total":1}`))
	}))
	defer server.Close()

	c := NewClient(WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	res, err := c.Search(context.Background(), ParseQuery("svg :ios :hastypes"))
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
	if len(res.Libraries) != 1 || res.Libraries[0].NpmPkg != "react-native-svg" {
		t.Errorf("libraries = %+v", res.Libraries)
	}
	for _, want := range []string{"search=svg", "order=downloads", "ios=true", "hasTypes=true"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("query %q missing %q", gotQuery, want)
		}
	}
}

package npm

import (
	"cmp"
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/react-native-community/vscode-react-native-directory/pkg/buildinfo"
	"github.com/react-native-community/vscode-react-native-directory/pkg/httputil"
)

// DefaultRegistry is the public npm registry.
const DefaultRegistry = "https://registry.npmjs.org"

// abbreviatedMetadata asks the registry for the install-time document, which
// carries dist-tags and versions without per-version readmes.
const abbreviatedMetadata = "application/vnd.npm.install-v1+json; q=1.0, application/json; q=0.8"

// ErrNotFound is returned for packages the registry does not know.
var ErrNotFound = httputil.ErrNotFound

// Versions is the release history of a package.
type Versions struct {
	Name     string            `json:"name"`
	DistTags map[string]string `json:"distTags"`
	// Versions are sorted newest first by semantic version precedence.
	// Strings that are not valid semver sort last.
	Versions []string `json:"versions"`
	// Deprecated maps deprecated versions to the registry's message.
	Deprecated map[string]string `json:"deprecated,omitempty"`
}

// Latest returns the version tagged "latest", falling back to the newest
// version.
func (v *Versions) Latest() string {
	if l := v.DistTags["latest"]; l != "" {
		return l
	}
	if len(v.Versions) > 0 {
		return v.Versions[0]
	}
	return ""
}

// Stable returns Versions without prereleases.
func (v *Versions) Stable() []string {
	var out []string
	for _, ver := range v.Versions {
		if semver.IsValid("v"+ver) && semver.Prerelease("v"+ver) == "" {
			out = append(out, ver)
		}
	}
	return out
}

// Client reads package metadata from an npm registry.
type Client struct {
	http    *httputil.Client
	baseURL string
}

// NewClient creates a registry client. An empty baseURL selects
// [DefaultRegistry]; a nil httpClient selects [httputil.NewHTTPClient].
func NewClient(baseURL string, httpClient *http.Client, breakers *httputil.Breakers) *Client {
	if baseURL == "" {
		baseURL = DefaultRegistry
	}
	return &Client{
		http: httputil.NewClient(httpClient, breakers, map[string]string{
			"User-Agent": buildinfo.UserAgent(),
		}),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// FetchVersions returns the dist-tags and published versions of name.
func (c *Client) FetchVersions(ctx context.Context, name string) (*Versions, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: empty package name", ErrNotFound)
	}

	var doc registryResponse
	err := httputil.RetryWithBackoff(ctx, func() error {
		return c.http.GetWithHeaders(ctx, c.packageURL(name), map[string]string{"Accept": abbreviatedMetadata}, &doc)
	})
	if err != nil {
		return nil, fmt.Errorf("npm package %s: %w", name, err)
	}

	out := &Versions{Name: cmp.Or(doc.Name, name), DistTags: doc.DistTags}
	if out.DistTags == nil {
		out.DistTags = map[string]string{}
	}
	out.Versions = make([]string, 0, len(doc.Versions))
	for ver, details := range doc.Versions {
		out.Versions = append(out.Versions, ver)
		if details.Deprecated != "" {
			if out.Deprecated == nil {
				out.Deprecated = map[string]string{}
			}
			out.Deprecated[ver] = details.Deprecated
		}
	}
	sortNewestFirst(out.Versions)
	return out, nil
}

// packageURL escapes the scope separator the way the npm CLI does.
func (c *Client) packageURL(name string) string {
	if strings.HasPrefix(name, "@") {
		name = strings.Replace(name, "/", "%2F", 1)
	}
	return c.baseURL + "/" + name
}

func sortNewestFirst(versions []string) {
	slices.SortFunc(versions, func(a, b string) int {
		va, vb := "v"+a, "v"+b
		okA, okB := semver.IsValid(va), semver.IsValid(vb)
		switch {
		case okA && okB:
			if c := semver.Compare(vb, va); c != 0 {
				return c
			}
			return strings.Compare(a, b)
		case okA:
			return -1
		case okB:
			return 1
		}
		return strings.Compare(a, b)
	})
}

type registryResponse struct {
	Name     string                    `json:"name"`
	DistTags map[string]string         `json:"dist-tags"`
	Versions map[string]versionDetails `json:"versions"`
}

type versionDetails struct {
	Deprecated string `json:"deprecated"`
}

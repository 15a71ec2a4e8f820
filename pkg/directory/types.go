package directory

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Flag is a catalog attribute that the directory encodes either as a boolean
// or as a free-form string (for example a link to a config plugin). Any
// non-empty string counts as set.
type Flag struct {
	Set   bool
	Value string
}

func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*f = Flag{}
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Flag{Set: s != "", Value: s}
	default:
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return fmt.Errorf("flag: %w", err)
		}
		*f = Flag{Set: b}
	}
	return nil
}

func (f Flag) MarshalJSON() ([]byte, error) {
	if f.Value != "" {
		return json.Marshal(f.Value)
	}
	return json.Marshal(f.Set)
}

// NewArchitecture describes New Architecture support: unknown/no, supported,
// or supported exclusively.
type NewArchitecture int

const (
	NewArchUnsupported NewArchitecture = iota
	NewArchSupported
	NewArchOnly
)

const newArchOnlyValue = "new-arch-only"

func (n *NewArchitecture) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*n = NewArchUnsupported
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		switch s {
		case newArchOnlyValue:
			*n = NewArchOnly
		case "":
			*n = NewArchUnsupported
		default:
			*n = NewArchSupported
		}
	default:
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return fmt.Errorf("newArchitecture: %w", err)
		}
		if b {
			*n = NewArchSupported
		} else {
			*n = NewArchUnsupported
		}
	}
	return nil
}

func (n NewArchitecture) MarshalJSON() ([]byte, error) {
	switch n {
	case NewArchOnly:
		return json.Marshal(newArchOnlyValue)
	case NewArchSupported:
		return []byte("true"), nil
	default:
		return []byte("false"), nil
	}
}

// Supported reports whether the package works with the New Architecture.
func (n NewArchitecture) Supported() bool { return n != NewArchUnsupported }

// Library is one catalog entry.
type Library struct {
	NpmPkg    string `json:"npmPkg"`
	GithubURL string `json:"githubUrl"`

	Android  Flag `json:"android,omitempty"`
	IOS      Flag `json:"ios,omitempty"`
	Web      Flag `json:"web,omitempty"`
	Windows  Flag `json:"windows,omitempty"`
	MacOS    Flag `json:"macos,omitempty"`
	TVOS     Flag `json:"tvos,omitempty"`
	VisionOS Flag `json:"visionos,omitempty"`
	FireOS   Flag `json:"fireos,omitempty"`
	Horizon  Flag `json:"horizon,omitempty"`
	VegaOS   Flag `json:"vegaos,omitempty"`
	ExpoGo   Flag `json:"expoGo,omitempty"`

	Unmaintained        bool            `json:"unmaintained,omitempty"`
	Dev                 bool            `json:"dev,omitempty"`
	Template            bool            `json:"template,omitempty"`
	NewArchitecture     NewArchitecture `json:"newArchitecture,omitempty"`
	NewArchitectureNote string          `json:"newArchitectureNote,omitempty"`
	ConfigPlugin        Flag            `json:"configPlugin,omitempty"`
	Alternatives        []string        `json:"alternatives,omitempty"`
	Examples            []string        `json:"examples,omitempty"`
	Images              []string        `json:"images,omitempty"`

	GitHub GitHub `json:"github"`
	Npm    *Npm   `json:"npm,omitempty"`

	Score                  int      `json:"score"`
	MatchingScoreModifiers []string `json:"matchingScoreModifiers,omitempty"`
	Popularity             float64  `json:"popularity,omitempty"`
}

// GitHub holds repository data mirrored by the directory.
type GitHub struct {
	Name          string       `json:"name"`
	FullName      string       `json:"fullName"`
	Description   string       `json:"description"`
	Topics        []string     `json:"topics,omitempty"`
	HasTypes      bool         `json:"hasTypes,omitempty"`
	IsArchived    bool         `json:"isArchived,omitempty"`
	HasNativeCode bool         `json:"hasNativeCode"`
	ModuleType    string       `json:"moduleType,omitempty"`
	URLs          RepoURLs     `json:"urls"`
	Stats         Stats        `json:"stats"`
	License       *License     `json:"license,omitempty"`
	LastRelease   *LastRelease `json:"lastRelease,omitempty"`
}

type RepoURLs struct {
	Repo     string `json:"repo"`
	Homepage string `json:"homepage,omitempty"`
}

type Stats struct {
	Stars       int64  `json:"stars"`
	Forks       int64  `json:"forks"`
	Issues      int64  `json:"issues"`
	Subscribers int64  `json:"subscribers"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	PushedAt    string `json:"pushedAt,omitempty"`
}

type License struct {
	Key    string `json:"key"`
	Name   string `json:"name"`
	SpdxID string `json:"spdxId"`
	URL    string `json:"url"`
}

type LastRelease struct {
	Name         string `json:"name"`
	TagName      string `json:"tagName"`
	PublishedAt  string `json:"publishedAt"`
	IsPrerelease bool   `json:"isPrerelease"`
}

// Npm holds registry statistics mirrored by the directory.
type Npm struct {
	Downloads         int64  `json:"downloads,omitempty"`
	WeekDownloads     int64  `json:"weekDownloads,omitempty"`
	Size              int64  `json:"size,omitempty"`
	LatestRelease     string `json:"latestRelease,omitempty"`
	LatestReleaseDate string `json:"latestReleaseDate,omitempty"`
}

// Downloads returns the monthly npm download count, or zero when unknown.
func (l *Library) Downloads() int64 {
	if l.Npm == nil {
		return 0
	}
	return l.Npm.Downloads
}

// Name returns the npm package name, falling back to the repository name.
func (l *Library) Name() string {
	if l.NpmPkg != "" {
		return l.NpmPkg
	}
	return l.GitHub.Name
}

// Libraries maps the names passed to a lookup to the entries the directory
// knows about. Unknown names are simply absent.
type Libraries map[string]Library

// SearchResult is one page of search results.
type SearchResult struct {
	Libraries []Library `json:"libraries"`
	Total     int       `json:"total"`
}

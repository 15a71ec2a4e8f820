package directory

import (
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var keywordPattern = regexp.MustCompile(`:\w+`)

// keywordParams maps lowercased search keywords to the API's boolean
// filter parameters.
var keywordParams = map[string]string{
	"android":            "android",
	"expogo":             "expoGo",
	"ios":                "ios",
	"macos":              "macos",
	"fireos":             "fireos",
	"horizon":            "horizon",
	"tvos":               "tvos",
	"visionos":           "visionos",
	"vegaos":             "vegaos",
	"web":                "web",
	"windows":            "windows",
	"hasexample":         "hasExample",
	"hasimage":           "hasImage",
	"hastypes":           "hasTypes",
	"ismaintained":       "isMaintained",
	"ispopular":          "isPopular",
	"wasrecentlyupdated": "wasRecentlyUpdated",
	"newarchitecture":    "newArchitecture",
	"configplugin":       "configPlugin",
	"nightlyprogram":     "nightlyProgram",
}

// Keywords returns the supported `:keyword` filters, sorted.
func Keywords() []string {
	out := make([]string, 0, len(keywordParams))
	for k := range keywordParams {
		out = append(out, ":"+k)
	}
	sort.Strings(out)
	return out
}

// Query is a catalog search: free text plus boolean filters.
type Query struct {
	Text    string
	Filters []string
	Limit   int
	Offset  int
}

// ParseQuery splits raw user input into free text and `:keyword` filters.
// Keywords are matched case-insensitively; unknown keywords are left in the
// text.
func ParseQuery(raw string) Query {
	var q Query
	seen := map[string]bool{}
	text := keywordPattern.ReplaceAllStringFunc(raw, func(tok string) string {
		param, ok := keywordParams[strings.ToLower(tok[1:])]
		if !ok {
			return tok
		}
		if !seen[param] {
			seen[param] = true
			q.Filters = append(q.Filters, param)
		}
		return ""
	})
	q.Text = strings.Join(strings.Fields(text), " ")
	return q
}

// Values encodes the query as API parameters. Results are ordered by
// downloads, matching the directory website.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Text != "" {
		v.Set("search", q.Text)
	}
	v.Set("order", "downloads")
	for _, f := range q.Filters {
		v.Set(f, "true")
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		v.Set("offset", strconv.Itoa(q.Offset))
	}
	return v
}

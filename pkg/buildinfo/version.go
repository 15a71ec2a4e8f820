// Package buildinfo carries the version stamped into rndir at link time:
//
//	go build -ldflags "-X github.com/react-native-community/vscode-react-native-directory/pkg/buildinfo.Version=v0.4.0 \
//	    -X github.com/react-native-community/vscode-react-native-directory/pkg/buildinfo.Commit=$(git rev-parse --short HEAD)" \
//	    ./cmd/rndir
package buildinfo

import "fmt"

// Name is the program name reported to language clients and HTTP servers.
const Name = "rndir"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the multi-line version report.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (%s, %s)\n", Version, Commit, Date)
}

// UserAgent is the default User-Agent header for outbound requests.
func UserAgent() string {
	return Name + "/" + Version
}

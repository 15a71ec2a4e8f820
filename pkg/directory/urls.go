package directory

import "net/url"

// Links holds the outbound pages for a package.
type Links struct {
	Directory    string
	Repository   string
	Npm          string
	Bundlephobia string
	Homepage     string
	License      string
}

// LinksFor builds the outbound links for lib.
func LinksFor(lib *Library) Links {
	name := lib.Name()
	l := Links{
		Directory:    DirectoryURL(name),
		Repository:   lib.GithubURL,
		Npm:          NpmURL(name),
		Bundlephobia: BundlephobiaURL(name),
		Homepage:     lib.GitHub.URLs.Homepage,
	}
	if l.Repository == "" {
		l.Repository = lib.GitHub.URLs.Repo
	}
	if lib.GitHub.License != nil {
		l.License = lib.GitHub.License.URL
	}
	return l
}

// DirectoryURL is the package's page on reactnative.directory.
func DirectoryURL(name string) string {
	return "https://reactnative.directory/package/" + escapeName(name)
}

// NpmURL is the package's npm registry page.
func NpmURL(name string) string {
	return "https://www.npmjs.com/package/" + escapeName(name)
}

// BundlephobiaURL is the package's bundle-size analysis page.
func BundlephobiaURL(name string) string {
	return "https://bundlephobia.com/package/" + escapeName(name)
}

// escapeName escapes a package name for use in a URL path while keeping the
// scope separator readable (@scope/name).
func escapeName(name string) string {
	return (&url.URL{Path: name}).EscapedPath()
}

// Package config loads rndir settings.
//
// Settings are layered: built-in defaults, then the TOML file, then (for
// the language server) the client's initialization options and later
// workspace/didChangeConfiguration payloads. Each layer only overrides the
// keys it sets.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/react-native-community/vscode-react-native-directory/pkg/directory"
	"github.com/react-native-community/vscode-react-native-directory/pkg/httputil"
	"github.com/react-native-community/vscode-react-native-directory/pkg/npm"
	"github.com/react-native-community/vscode-react-native-directory/pkg/pkgmanager"
)

const (
	appName  = "rndir"
	fileName = "config.toml"

	// Section is the settings namespace language clients send under.
	Section = "reactNativeDirectory"
)

// Config holds every tunable setting.
type Config struct {
	BaseURL          string `toml:"base_url"`
	RegistryURL      string `toml:"registry_url"`
	Annotations      bool   `toml:"annotations"`
	DebounceMS       int    `toml:"debounce_ms"`
	TimeoutMS        int    `toml:"timeout_ms"`
	PackageManager   string `toml:"package_manager"`
	BreakerThreshold int    `toml:"breaker_threshold"`
	UserAgent        string `toml:"user_agent"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		BaseURL:          directory.DefaultBaseURL,
		RegistryURL:      npm.DefaultRegistry,
		Annotations:      true,
		DebounceMS:       500,
		TimeoutMS:        int(httputil.DefaultTimeout / time.Millisecond),
		PackageManager:   pkgmanager.Auto,
		BreakerThreshold: httputil.DefaultBreakerThreshold,
	}
}

// Debounce is DebounceMS as a duration.
func (c Config) Debounce() time.Duration { return time.Duration(c.DebounceMS) * time.Millisecond }

// Timeout is TimeoutMS as a duration.
func (c Config) Timeout() time.Duration { return time.Duration(c.TimeoutMS) * time.Millisecond }

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base_url must not be empty")
	}
	if c.DebounceMS <= 0 {
		return fmt.Errorf("debounce_ms must be positive, got %d", c.DebounceMS)
	}
	if c.TimeoutMS <= 0 {
		return fmt.Errorf("timeout_ms must be positive, got %d", c.TimeoutMS)
	}
	if !strings.EqualFold(c.PackageManager, pkgmanager.Auto) {
		if _, err := pkgmanager.Parse(c.PackageManager); err != nil {
			return fmt.Errorf("package_manager: %w", err)
		}
	}
	return nil
}

// Dir returns the configuration directory, following XDG
// (~/.config/rndir/).
func Dir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// DefaultPath returns the location of the config file.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Load reads the TOML file at path on top of the defaults. An empty path
// selects [DefaultPath], which may be absent; an explicit path must exist.
// Unknown keys are rejected so typos do not go unnoticed.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		slices.Sort(keys)
		return Default(), fmt.Errorf("load config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// overlay mirrors the editor-side setting names. Pointers tell "unset"
// apart from zero values.
type overlay struct {
	EnablePackageJSONAnnotations *bool   `json:"enablePackageJsonAnnotations"`
	BaseURL                      *string `json:"baseUrl"`
	RegistryURL                  *string `json:"registryUrl"`
	DebounceMS                   *int    `json:"debounceMs"`
	TimeoutMS                    *int    `json:"timeoutMs"`
	PackageManager               *string `json:"packageManager"`
	BreakerThreshold             *int    `json:"breakerThreshold"`
	UserAgent                    *string `json:"userAgent"`
}

// Apply overlays editor settings onto c. options is the decoded JSON value
// a client sent (initializationOptions or a didChangeConfiguration
// payload); settings may sit at the top level or under [Section]. A nil
// options leaves c untouched. The result is validated and c is only
// modified when it is valid.
func (c *Config) Apply(options any) error {
	if options == nil {
		return nil
	}
	data, err := json.Marshal(options)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	var sections map[string]json.RawMessage
	if err := json.Unmarshal(data, &sections); err != nil {
		return fmt.Errorf("settings must be an object: %w", err)
	}
	if nested, ok := sections[Section]; ok {
		data = nested
	}

	var o overlay
	if err := json.Unmarshal(data, &o); err != nil {
		return fmt.Errorf("decode settings: %w", err)
	}

	next := *c
	setIf(&next.Annotations, o.EnablePackageJSONAnnotations)
	setIf(&next.BaseURL, o.BaseURL)
	setIf(&next.RegistryURL, o.RegistryURL)
	setIf(&next.DebounceMS, o.DebounceMS)
	setIf(&next.TimeoutMS, o.TimeoutMS)
	setIf(&next.PackageManager, o.PackageManager)
	setIf(&next.BreakerThreshold, o.BreakerThreshold)
	setIf(&next.UserAgent, o.UserAgent)
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

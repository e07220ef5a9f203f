package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/yosuke-furukawa/json5/encoding/json5"

	"github.com/arome-jobs/jobwatch/internal/browser"
	"github.com/arome-jobs/jobwatch/internal/monitor"
)

const (
	DirName          = "jobwatch"
	ConfigFileName   = "config.json"
	ProxiesFileName  = "proxies.txt"
	SeenFileName     = "seen.json"
	MonitorsFileName = "monitors.yaml"
)

// Config contains defaults for extraction runs. Every field can be overridden
// with a JOBWATCH_* environment variable.
type Config struct {
	DefaultSource      string `json:"default_source"`
	WaitTimeoutSeconds int    `json:"wait_timeout_seconds"`
	HTTPTimeoutSeconds int    `json:"http_timeout_seconds"`
	BrowserEngine      string `json:"browser_engine"`
	Headless           bool   `json:"headless"`
	DetailWorkers      int    `json:"detail_workers"`
	LinkedInLocationID string `json:"linkedin_location_id"`
}

func DefaultConfig() Config {
	return Config{
		DefaultSource:      "",
		WaitTimeoutSeconds: 15,
		HTTPTimeoutSeconds: 30,
		BrowserEngine:      browser.EnginePlaywright,
		Headless:           true,
		DetailWorkers:      4,
		LinkedInLocationID: monitor.DefaultLocationID,
	}
}

// WaitTimeout is how long DOM extractors wait for their anchor selector.
func (c Config) WaitTimeout() time.Duration {
	if c.WaitTimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.WaitTimeoutSeconds) * time.Second
}

func (c Config) HTTPTimeout() time.Duration {
	if c.HTTPTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

func (c Config) Workers() int {
	if c.DetailWorkers <= 0 {
		return 1
	}
	return c.DetailWorkers
}

func ConfigDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv("JOBWATCH_CONFIG_DIR")); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, DirName), nil
}

func ConfigPath() (string, error) {
	return inConfigDir(ConfigFileName)
}

func ProxiesPath() (string, error) {
	return inConfigDir(ProxiesFileName)
}

func SeenPath() (string, error) {
	return inConfigDir(SeenFileName)
}

func inConfigDir(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// Load reads config.json (JSON5 allowed) over the defaults, then applies env overrides.
func Load() (Config, error) {
	cfg := DefaultConfig()
	path, err := ConfigPath()
	if err != nil {
		return applyEnv(cfg), err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(cfg), nil
		}
		return applyEnv(cfg), err
	}

	if len(strings.TrimSpace(string(data))) > 0 {
		if err := json5.Unmarshal(data, &cfg); err != nil {
			return applyEnv(cfg), err
		}
	}
	return applyEnv(cfg), nil
}

func applyEnv(cfg Config) Config {
	cfg.DefaultSource = envString("JOBWATCH_DEFAULT_SOURCE", cfg.DefaultSource)
	cfg.WaitTimeoutSeconds = envInt("JOBWATCH_WAIT_TIMEOUT", cfg.WaitTimeoutSeconds)
	cfg.HTTPTimeoutSeconds = envInt("JOBWATCH_HTTP_TIMEOUT", cfg.HTTPTimeoutSeconds)
	cfg.BrowserEngine = envString("JOBWATCH_BROWSER_ENGINE", cfg.BrowserEngine)
	cfg.Headless = envBool("JOBWATCH_HEADLESS", cfg.Headless)
	cfg.DetailWorkers = envInt("JOBWATCH_DETAIL_WORKERS", cfg.DetailWorkers)
	cfg.LinkedInLocationID = envString("JOBWATCH_LINKEDIN_LOCATION_ID", cfg.LinkedInLocationID)
	return cfg
}

// Init writes default config.json, proxies.txt and an example monitors.yaml if missing.
func Init() ([]string, error) {
	var created []string

	dir, err := ConfigDir()
	if err != nil {
		return created, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return created, err
	}

	files := []struct {
		name  string
		write func(path string) error
	}{
		{ConfigFileName, func(path string) error { return writeConfig(path, DefaultConfig()) }},
		{ProxiesFileName, func(path string) error { return os.WriteFile(path, []byte(""), 0o644) }},
		{MonitorsFileName, func(path string) error { return os.WriteFile(path, []byte(exampleMonitors), 0o644) }},
	}
	for _, file := range files {
		path := filepath.Join(dir, file.name)
		if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := file.write(path); err != nil {
			return created, err
		}
		created = append(created, path)
	}

	return created, nil
}

func writeConfig(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func LoadProxies(flagValue string) ([]string, error) {
	if strings.TrimSpace(flagValue) != "" {
		return splitCSV(flagValue), nil
	}

	if env := strings.TrimSpace(os.Getenv("JOBWATCH_PROXIES")); env != "" {
		return splitCSV(env), nil
	}

	path, err := ProxiesPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var proxies []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		proxies = append(proxies, line)
	}
	return proxies, nil
}

func envString(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func envInt(key string, fallback int) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func envBool(key string, fallback bool) bool {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

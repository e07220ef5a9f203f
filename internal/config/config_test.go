package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arome-jobs/jobwatch/internal/monitor"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv("JOBWATCH_CONFIG_DIR", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, 15*time.Second, cfg.WaitTimeout())
	assert.Equal(t, monitor.DefaultLocationID, cfg.LinkedInLocationID)
}

func TestLoadJSON5AndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("JOBWATCH_CONFIG_DIR", dir)
	t.Setenv("JOBWATCH_HEADLESS", "false")
	t.Setenv("JOBWATCH_DETAIL_WORKERS", "not a number")

	body := `{
  // comments and trailing commas are fine
  "default_source": "hellowork",
  "wait_timeout_seconds": 20,
  "detail_workers": 8,
}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(body), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "hellowork", cfg.DefaultSource)
	assert.Equal(t, 20*time.Second, cfg.WaitTimeout())
	assert.Equal(t, 8, cfg.Workers(), "unparseable env values keep the file value")
	assert.False(t, cfg.Headless)
}

func TestInitIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("JOBWATCH_CONFIG_DIR", dir)

	created, err := Init()
	require.NoError(t, err)
	assert.Len(t, created, 3)

	created, err = Init()
	require.NoError(t, err)
	assert.Empty(t, created)

	monitors, err := LoadMonitors(filepath.Join(dir, MonitorsFileName), monitor.DefaultLocationID)
	require.NoError(t, err)
	assert.Len(t, monitors, 3)
}

func TestLoadProxies(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("JOBWATCH_CONFIG_DIR", dir)
	t.Setenv("JOBWATCH_PROXIES", "")

	require.NoError(t, os.WriteFile(filepath.Join(dir, ProxiesFileName), []byte("# pool\nhttp://a:1\n\nhttp://b:2\n"), 0o644))
	proxies, err := LoadProxies("")
	require.NoError(t, err)
	assert.Equal(t, []string{"http://a:1", "http://b:2"}, proxies)

	t.Setenv("JOBWATCH_PROXIES", "http://env:1, http://env:2")
	proxies, err = LoadProxies("")
	require.NoError(t, err)
	assert.Equal(t, []string{"http://env:1", "http://env:2"}, proxies)

	proxies, err = LoadProxies("http://flag:1")
	require.NoError(t, err)
	assert.Equal(t, []string{"http://flag:1"}, proxies)
}

func TestParseMonitors(t *testing.T) {
	data := []byte(`
monitors:
  - name: hw
    search_url: " https://www.hellowork.com/fr-fr/emploi/recherche.html?k=parfum "
  - name: li
    source: linkedin
    search:
      keywords: aromaticien
  - name: off
    search_url: https://example.com
    disabled: true
`)
	monitors, err := ParseMonitors(data, "90009659")
	require.NoError(t, err)
	require.Len(t, monitors, 2)

	assert.Equal(t, "https://www.hellowork.com/fr-fr/emploi/recherche.html?k=parfum", monitors[0].SearchURL)

	params, err := monitor.Decode(monitors[1].SearchURL)
	require.NoError(t, err)
	assert.Equal(t, monitor.SearchParameters{Keywords: "aromaticien", LocationID: "90009659", DatePosted: monitor.PastWeek}, params)
}

func TestParseMonitorsErrors(t *testing.T) {
	cases := map[string]string{
		"missing name":   "monitors:\n  - search_url: https://example.com\n",
		"duplicate name": "monitors:\n  - name: a\n    search_url: x\n  - name: a\n    search_url: y\n",
		"no target":      "monitors:\n  - name: a\n",
		"bad window":     "monitors:\n  - name: a\n    search:\n      keywords: x\n      date_posted: yesterday\n",
		"bad yaml":       "monitors: [",
	}
	for name, body := range cases {
		_, err := ParseMonitors([]byte(body), monitor.DefaultLocationID)
		assert.Error(t, err, name)
	}

	_, err := ParseMonitors([]byte("monitors: []\n"), monitor.DefaultLocationID)
	assert.ErrorIs(t, err, ErrNoMonitors)
}

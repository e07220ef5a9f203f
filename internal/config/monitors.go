package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arome-jobs/jobwatch/internal/monitor"
)

const exampleMonitors = `# Each monitor runs a listing pass, then a detail pass per new listing.
monitors:
  - name: aromaticien-hellowork
    search_url: https://www.hellowork.com/fr-fr/emploi/recherche.html?k=aromaticien
  - name: flavorist-jsearch
    search_url: https://jsearch.p.rapidapi.com/search?query=flavorist%20in%20france&num_pages=1
  - name: parfumeur-linkedin
    source: linkedin
    search:
      keywords: parfumeur
      date_posted: pastWeek
`

// Monitor is one saved search. Either SearchURL or Search must be set; Search is
// encoded into SearchURL when the file is loaded.
type Monitor struct {
	Name      string                    `yaml:"name"`
	Source    string                    `yaml:"source,omitempty"`
	SearchURL string                    `yaml:"search_url,omitempty"`
	Search    *monitor.SearchParameters `yaml:"search,omitempty"`
	Disabled  bool                      `yaml:"disabled,omitempty"`
}

type monitorFile struct {
	Monitors []Monitor `yaml:"monitors"`
}

var ErrNoMonitors = errors.New("no monitors defined")

// LoadMonitors reads a YAML monitors file. Empty location ids in structured searches
// take defaultLocationID; an empty date window takes the codec default.
func LoadMonitors(path string, defaultLocationID string) ([]Monitor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseMonitors(data, defaultLocationID)
}

func ParseMonitors(data []byte, defaultLocationID string) ([]Monitor, error) {
	var file monitorFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("monitors: %w", err)
	}

	out := make([]Monitor, 0, len(file.Monitors))
	names := make(map[string]struct{}, len(file.Monitors))
	for i, m := range file.Monitors {
		m.Name = strings.TrimSpace(m.Name)
		m.Source = strings.TrimSpace(m.Source)
		m.SearchURL = strings.TrimSpace(m.SearchURL)
		if m.Name == "" {
			return nil, fmt.Errorf("monitors[%d]: name is required", i)
		}
		if _, dup := names[m.Name]; dup {
			return nil, fmt.Errorf("monitors[%d]: duplicate name %q", i, m.Name)
		}
		names[m.Name] = struct{}{}

		if m.SearchURL == "" && m.Search != nil {
			params := *m.Search
			if params.LocationID == "" {
				params.LocationID = defaultLocationID
			}
			if params.DatePosted == "" {
				params.DatePosted = monitor.DefaultDatePosted
			}
			if !params.DatePosted.Valid() {
				return nil, fmt.Errorf("monitors[%d] %s: %w: %q", i, m.Name, monitor.ErrInvalidDatePosted, params.DatePosted)
			}
			m.SearchURL = monitor.Encode(params)
		}
		if m.SearchURL == "" {
			return nil, fmt.Errorf("monitors[%d] %s: search_url or search is required", i, m.Name)
		}
		if m.Disabled {
			continue
		}
		out = append(out, m)
	}

	if len(out) == 0 {
		return nil, ErrNoMonitors
	}
	return out, nil
}

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arome-jobs/jobwatch/internal/export"
	"github.com/arome-jobs/jobwatch/internal/models"
	"github.com/arome-jobs/jobwatch/internal/prefill"
)

type DetailCmd struct {
	URL     string `arg:"" help:"Posting URL."`
	Source  string `help:"Source key (default: inferred from the URL)."`
	ID      string `name:"id" help:"Source-assigned id, for API sources that look postings up by id."`
	Proxies string `help:"Comma-separated proxy URLs." env:"JOBWATCH_PROXIES"`
	OutputOptions
}

func (c *DetailCmd) Run(ctx *Context) error {
	detail, err := fetchDetail(ctx, c.Source, c.URL, c.ID, c.Proxies)
	if err != nil {
		return err
	}
	return emit(ctx, c.OutputOptions, func(w io.Writer, format export.Format, opts export.WriteOptions) error {
		return export.WriteDetails(w, []models.JobDetail{detail}, format, opts)
	})
}

// PrefillCmd either fetches one posting or projects details saved earlier with
// `detail --json`.
type PrefillCmd struct {
	URL     string `arg:"" optional:"" help:"Posting URL (omit with --from)."`
	From    string `help:"Read job details from a JSON file (object or array) instead of fetching."`
	Source  string `help:"Source key (default: inferred from the URL)."`
	ID      string `name:"id" help:"Source-assigned id, for API sources that look postings up by id."`
	Proxies string `help:"Comma-separated proxy URLs." env:"JOBWATCH_PROXIES"`
	OutputOptions
}

func (c *PrefillCmd) Run(ctx *Context) error {
	var details []models.JobDetail
	switch {
	case strings.TrimSpace(c.From) != "":
		loaded, err := readDetails(c.From)
		if err != nil {
			return err
		}
		details = loaded
	case strings.TrimSpace(c.URL) != "":
		detail, err := fetchDetail(ctx, c.Source, c.URL, c.ID, c.Proxies)
		if err != nil {
			return err
		}
		details = []models.JobDetail{detail}
	default:
		return fmt.Errorf("a posting URL or --from is required")
	}

	records := make([]models.PrefillRecord, 0, len(details))
	for _, detail := range details {
		records = append(records, prefill.Project(detail))
	}
	return emit(ctx, c.OutputOptions, func(w io.Writer, format export.Format, opts export.WriteOptions) error {
		return export.WritePrefill(w, records, format, opts)
	})
}

func fetchDetail(ctx *Context, sourceFlag, url, id, proxies string) (models.JobDetail, error) {
	source, err := resolveSource(sourceFlag, url, ctx.Config.DefaultSource)
	if err != nil {
		return models.JobDetail{}, err
	}

	ex, err := newExtraction(ctx, proxies)
	if err != nil {
		return models.JobDetail{}, err
	}
	defer ex.Close()

	extractor, ok := ex.registry.Detail(source)
	if !ok {
		return models.JobDetail{}, fmt.Errorf("unknown source: %s", source)
	}

	stop := startIndicator(ctx, "Extracting posting")
	detail, err := ex.detail(ctx.context(), extractor, url, id)
	if stop != nil {
		stop()
	}
	return detail, err
}

func readDetails(path string) ([]models.JobDetail, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read --from: %w", err)
	}
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") {
		var detail models.JobDetail
		if err := json.Unmarshal(data, &detail); err != nil {
			return nil, fmt.Errorf("parse --from %q: %w", path, err)
		}
		return []models.JobDetail{detail}, nil
	}

	var details []models.JobDetail
	if err := json.Unmarshal(data, &details); err != nil {
		return nil, fmt.Errorf("parse --from %q: %w", path, err)
	}
	return details, nil
}

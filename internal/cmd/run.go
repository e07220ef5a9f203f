package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/arome-jobs/jobwatch/internal/config"
	"github.com/arome-jobs/jobwatch/internal/export"
	"github.com/arome-jobs/jobwatch/internal/models"
	"github.com/arome-jobs/jobwatch/internal/prefill"
	"github.com/arome-jobs/jobwatch/internal/seen"
	"github.com/arome-jobs/jobwatch/internal/ui"
)

type RunCmd struct {
	Monitors    string   `help:"Monitors YAML file (default: monitors.yaml in the config dir)."`
	Only        []string `help:"Run only these monitors (comma-separated names)." sep:","`
	Seen        string   `help:"Seen listings history (default: seen.json in the config dir)."`
	NoSeen      bool     `name:"no-seen" help:"Process every listing; neither read nor update history."`
	MaxListings int      `name:"max-listings" help:"Maximum new listings per monitor to fetch details for (0 = all)."`
	Proxies     string   `help:"Comma-separated proxy URLs." env:"JOBWATCH_PROXIES"`
	OutputOptions
}

// runResult is everything a batch of monitors produced.
type runResult struct {
	records   []models.PrefillRecord
	processed []models.ListingStub
	reports   []ui.RunReport
}

func (r runResult) allFailed() bool {
	if len(r.reports) == 0 {
		return false
	}
	for _, report := range r.reports {
		if report.Listings > 0 || len(report.Failures) == 0 {
			return false
		}
	}
	return true
}

func (c *RunCmd) Run(ctx *Context) error {
	monitorsPath := c.Monitors
	if monitorsPath == "" {
		monitorsPath = joinConfigDir(ctx, config.MonitorsFileName)
	}
	monitors, err := config.LoadMonitors(monitorsPath, ctx.Config.LinkedInLocationID)
	if err != nil {
		return fmt.Errorf("load monitors %s: %w", monitorsPath, err)
	}
	monitors, err = selectMonitors(monitors, c.Only)
	if err != nil {
		return err
	}

	seenPath := ""
	var history []models.ListingStub
	if !c.NoSeen {
		seenPath = firstNonEmpty(c.Seen, joinConfigDir(ctx, config.SeenFileName))
		history, err = seen.ReadStubsAllowMissing(seenPath)
		if err != nil {
			return fmt.Errorf("read seen history: %w", err)
		}
	}

	ex, err := newExtraction(ctx, c.Proxies)
	if err != nil {
		return err
	}
	defer ex.Close()

	runID := uuid.NewString()
	logger := ctx.Logger.With().Str("run_id", runID).Logger()
	runCtx := logger.WithContext(ctx.context())
	logger.Info().Int("monitors", len(monitors)).Msg("run started")

	stop := startIndicator(ctx, "Running monitors")
	result := runMonitors(runCtx, ex, monitors, history, ctx.Config.DefaultSource, ctx.Config.Workers(), c.MaxListings)
	if stop != nil {
		stop()
	}

	if err := emit(ctx, c.OutputOptions, func(w io.Writer, format export.Format, opts export.WriteOptions) error {
		return export.WritePrefill(w, result.records, format, opts)
	}); err != nil {
		return err
	}

	if seenPath != "" && len(result.processed) > 0 {
		stats, err := updateSeenHistory(seenPath, result.processed)
		if err != nil {
			return err
		}
		logger.Debug().Int("added", stats.Added).Int("total", stats.TotalOut).Str("path", seenPath).Msg("seen history updated")
	}

	ctx.UI.Report(result.reports)
	logger.Info().Int("records", len(result.records)).Msg("run finished")
	if result.allFailed() {
		return fmt.Errorf("run %s: every monitor failed", runID)
	}
	return nil
}

// runMonitors never stops on a failure: a monitor whose listing pass fails is reported
// and skipped, and a listing whose detail pass fails is reported and left out of
// the seen history so the next run retries it.
func runMonitors(ctx context.Context, ex *extraction, monitors []config.Monitor, history []models.ListingStub, defaultSource string, workers, maxListings int) runResult {
	var result runResult
	base := zerolog.Ctx(ctx)

	for _, m := range monitors {
		report := ui.RunReport{Monitor: m.Name}
		fail := func(stub models.ListingStub, err error) {
			report.Failures = append(report.Failures, ui.Failure{
				Monitor:    m.Name,
				Source:     firstNonEmpty(stub.Source, report.Source, m.Source, "-"),
				ExternalID: stub.ExternalID,
				Err:        err,
			})
		}

		source, err := resolveSource(m.Source, m.SearchURL, defaultSource)
		if err != nil {
			fail(models.ListingStub{}, err)
			result.reports = append(result.reports, report)
			continue
		}
		report.Source = source

		logger := base.With().Str("monitor", m.Name).Str("source", source).Logger()
		monitorCtx := logger.WithContext(ctx)

		stubs, err := ex.listings(monitorCtx, source, m.SearchURL)
		if err != nil {
			logger.Warn().Err(err).Msg("listing pass failed")
			fail(models.ListingStub{}, err)
			result.reports = append(result.reports, report)
			if errors.Is(err, context.Canceled) {
				break
			}
			continue
		}
		report.Listings = len(stubs)

		fresh, _ := seen.Diff(stubs, history)
		if maxListings > 0 && len(fresh) > maxListings {
			fresh = fresh[:maxListings]
		}
		report.New = len(fresh)
		logger.Info().Int("listings", len(stubs)).Int("new", len(fresh)).Msg("listing pass done")

		for _, outcome := range ex.details(monitorCtx, source, fresh, workers) {
			if outcome.err != nil {
				fail(outcome.stub, outcome.err)
				continue
			}
			report.Details++
			result.records = append(result.records, prefill.Project(outcome.detail))
			result.processed = append(result.processed, outcome.stub)
		}
		result.reports = append(result.reports, report)
	}

	return result
}

func selectMonitors(monitors []config.Monitor, only []string) ([]config.Monitor, error) {
	if len(only) == 0 {
		return monitors, nil
	}
	byName := make(map[string]config.Monitor, len(monitors))
	for _, m := range monitors {
		byName[m.Name] = m
	}

	selected := make([]config.Monitor, 0, len(only))
	for _, name := range only {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		m, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown monitor: %s", name)
		}
		selected = append(selected, m)
	}
	return selected, nil
}

func joinConfigDir(ctx *Context, name string) string {
	return filepath.Join(ctx.ConfigDir, name)
}

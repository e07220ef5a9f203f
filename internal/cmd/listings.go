package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/arome-jobs/jobwatch/internal/export"
	"github.com/arome-jobs/jobwatch/internal/models"
	"github.com/arome-jobs/jobwatch/internal/seen"
)

type ListingsCmd struct {
	Target  string `arg:"" help:"Search URL, or an encoded parameter string for API sources."`
	Source  string `help:"Source key (default: inferred from the target)."`
	Proxies string `help:"Comma-separated proxy URLs." env:"JOBWATCH_PROXIES"`
	OutputOptions
	SeenOptions
}

func (c *ListingsCmd) Run(ctx *Context) error {
	if err := c.SeenOptions.validate(c.Output); err != nil {
		return err
	}
	source, err := resolveSource(c.Source, c.Target, ctx.Config.DefaultSource)
	if err != nil {
		return err
	}

	ex, err := newExtraction(ctx, c.Proxies)
	if err != nil {
		return err
	}
	defer ex.Close()

	stop := startIndicator(ctx, "Extracting listings")
	stubs, err := ex.listings(ctx.context(), source, c.Target)
	if stop != nil {
		stop()
	}
	if err != nil {
		return err
	}

	output := stubs
	var unseen []models.ListingStub
	if strings.TrimSpace(c.Seen) != "" {
		history, err := seen.ReadStubsAllowMissing(c.Seen)
		if err != nil {
			return fmt.Errorf("read --seen: %w", err)
		}
		unseen, _ = seen.Diff(stubs, history)
		if c.NewOnly {
			output = unseen
		}
	}

	if err := emit(ctx, c.OutputOptions, func(w io.Writer, format export.Format, opts export.WriteOptions) error {
		return export.WriteStubs(w, output, format, opts)
	}); err != nil {
		return err
	}

	if c.SeenUpdate {
		if _, err := updateSeenHistory(c.Seen, unseen); err != nil {
			return err
		}
	}

	fmt.Fprintf(ctx.Err, "summary: source=%s listings=%d new=%d\n", source, len(stubs), len(unseen))
	return nil
}

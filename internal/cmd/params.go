package cmd

import (
	"fmt"

	"github.com/arome-jobs/jobwatch/internal/monitor"
)

type ParamsCmd struct {
	Encode ParamsEncodeCmd `cmd:"" help:"Encode LinkedIn search parameters into a monitor search_url."`
	Decode ParamsDecodeCmd `cmd:"" help:"Decode a monitor search_url back into parameters."`
}

type ParamsEncodeCmd struct {
	Keywords   string `arg:"" help:"Search keywords."`
	LocationID string `name:"location-id" help:"LinkedIn geo id (default: config linkedin_location_id)."`
	DatePosted string `name:"date-posted" help:"Recency filter." enum:"pastMonth,past24Hours,pastWeek" default:"pastWeek"`
}

type ParamsDecodeCmd struct {
	Value string `arg:"" help:"Encoded parameter string."`
}

func (c *ParamsEncodeCmd) Run(ctx *Context) error {
	params := monitor.SearchParameters{
		Keywords:   c.Keywords,
		LocationID: firstNonEmpty(c.LocationID, ctx.Config.LinkedInLocationID, monitor.DefaultLocationID),
		DatePosted: monitor.DatePosted(c.DatePosted),
	}
	if !params.DatePosted.Valid() {
		return fmt.Errorf("%w: %q", monitor.ErrInvalidDatePosted, c.DatePosted)
	}
	_, err := fmt.Fprintln(ctx.Out, monitor.Encode(params))
	return err
}

func (c *ParamsDecodeCmd) Run(ctx *Context) error {
	params, err := monitor.Decode(c.Value)
	if err != nil {
		return err
	}
	return writeJSON(ctx.Out, params)
}

package cmd

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/arome-jobs/jobwatch/internal/config"
	"github.com/arome-jobs/jobwatch/internal/ui"
)

type Context struct {
	// Ctx carries cancellation and the logger (zerolog.Ctx) into extractors.
	Ctx        context.Context
	Out        io.Writer
	Err        io.Writer
	UI         *ui.UI
	Config     config.Config
	ConfigDir  string
	Logger     zerolog.Logger
	Verbose    bool
	JSONOutput bool
	PlainText  bool
	Version    string
	ColorMode  ui.ColorMode
}

func (c *Context) context() context.Context {
	if c.Ctx != nil {
		return c.Ctx
	}
	return c.Logger.WithContext(context.Background())
}

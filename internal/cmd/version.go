package cmd

import (
	"fmt"
	"runtime"
)

type VersionCmd struct{}

func (v *VersionCmd) Run(ctx *Context) error {
	if ctx.JSONOutput {
		return writeJSON(ctx.Out, map[string]string{
			"version": ctx.Version,
			"go":      runtime.Version(),
		})
	}
	_, err := fmt.Fprintln(ctx.Out, ctx.Version)
	return err
}

package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/arome-jobs/jobwatch/internal/scraper"
)

var sourceCredentials = map[string]string{
	scraper.SiteJSearch:  scraper.JSearchKeyEnv,
	scraper.SiteLinkedIn: scraper.LinkedInKeyEnv,
}

type SourcesCmd struct{}

type sourceInfo struct {
	Source     string `json:"source"`
	Kind       string `json:"kind"`
	Credential string `json:"credential,omitempty"`
	Configured bool   `json:"configured"`
}

func (s *SourcesCmd) Run(ctx *Context) error {
	registry := scraper.RegistryOf(
		scraper.NewHelloWork(ctx.Config.WaitTimeout()),
		scraper.NewJSearch(nil),
		scraper.NewLinkedIn(nil),
	)

	infos := make([]sourceInfo, 0, len(registry.Sources()))
	for _, name := range registry.Sources() {
		extractor, _ := registry.Listing(name)
		info := sourceInfo{Source: name, Kind: string(extractor.Kind()), Configured: true}
		if env, ok := sourceCredentials[name]; ok {
			info.Credential = env
			info.Configured = strings.TrimSpace(os.Getenv(env)) != ""
		}
		infos = append(infos, info)
	}

	if ctx.JSONOutput {
		return writeJSON(ctx.Out, infos)
	}

	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "source\tkind\tcredential\tstatus")
	for _, info := range infos {
		status := "ready"
		if !info.Configured {
			status = "missing " + info.Credential
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", info.Source, info.Kind, firstNonEmpty(info.Credential, "-"), status)
	}
	return tw.Flush()
}

package cmd

import (
	"github.com/alecthomas/kong"
)

type CLI struct {
	Color   string `help:"Color output: auto, always, never." enum:"auto,always,never" default:"auto"`
	JSON    bool   `help:"JSON output to stdout; disables colors."`
	Plain   bool   `help:"TSV output to stdout; disables colors."`
	Verbose bool   `help:"Enable debug logging."`
	EnvFile string `name:"env-file" help:"Dotenv file holding API keys." default:".env"`

	VersionFlag kong.VersionFlag `help:"Print version."`

	Version  VersionCmd  `cmd:"" help:"Print version."`
	Config   ConfigCmd   `cmd:"" help:"Manage configuration."`
	Sources  SourcesCmd  `cmd:"" help:"List supported sources."`
	Listings ListingsCmd `cmd:"" help:"Extract listing stubs from one search target."`
	Detail   DetailCmd   `cmd:"" help:"Extract one full job posting."`
	Prefill  PrefillCmd  `cmd:"" help:"Project job postings onto listing-form records."`
	Run      RunCmd      `cmd:"" help:"Run every monitor in a monitors file."`
	Params   ParamsCmd   `cmd:"" help:"Encode or decode monitor search parameters."`
	Seen     SeenCmd     `cmd:"" help:"Seen listing history utilities."`
	Proxies  ProxiesCmd  `cmd:"" help:"Proxy utilities."`
}

func NewCLI() *CLI {
	return &CLI{}
}

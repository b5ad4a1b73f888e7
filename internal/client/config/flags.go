package config

import (
	"flag"
	"io"
	"os"

	"github.com/dmitrijs2005/meetingd/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
// os.Args is filtered with flagx.FilterArgs so flags owned by other loaders
// (-c/-config) do not break parsing.
func parseFlags(cfg *Config) error {
	args := flagx.FilterArgs(os.Args[1:], "a", "t", "p")

	fs := flag.NewFlagSet("e2e", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port of the meetingd server")
	fs.DurationVar(&cfg.CallTimeout, "t", cfg.CallTimeout, "per-call timeout")
	fs.BoolVar(&cfg.PromptPassword, "p", cfg.PromptPassword, "prompt for the password")

	return fs.Parse(args)
}

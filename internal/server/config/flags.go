package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/meetingd/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     gRPC bind address (e.g., ":50051")
//	-d string     PostgreSQL DSN; empty keeps everything in memory
//	-s string     JWT HMAC secret key
//	-t duration   session lifetime (e.g., "1h")
//	-b string     session backend ("" or "badger")
//	-p string     Badger directory
//	-n string     media nodes, host:port[/region[/capacity]],...
//	-m int        max participants per meeting
//	-l string     log level
//
// os.Args is filtered to these flags first so that -c/-config and flags of
// other components do not collide.
func parseFlags(config *Config) error {
	args := flagx.FilterArgs(os.Args[1:], "a", "d", "s", "t", "b", "p", "n", "m", "l")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.DurationVar(&config.SessionTTL, "t", config.SessionTTL, "session lifetime")
	fs.StringVar(&config.SessionBackend, "b", config.SessionBackend, "session backend")
	fs.StringVar(&config.BadgerPath, "p", config.BadgerPath, "badger directory")
	fs.Var(&config.MediaNodes, "n", "media nodes")
	fs.IntVar(&config.MaxParticipants, "m", config.MaxParticipants, "max participants per meeting")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	return fs.Parse(args)
}

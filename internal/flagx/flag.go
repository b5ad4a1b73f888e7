// Package flagx lets several loaders share one command line: each picks out
// the flags it owns and parses only those.
package flagx

import (
	"flag"
	"io"
	"os"
	"strings"
)

// FilterArgs returns the arguments that belong to the named flags, in their
// original order. Names are given without dashes; "-n", "--n", "-n=v" and
// "--n=v" all match "n". A separate value is kept when the next argument
// does not start with a dash.
func FilterArgs(args []string, names ...string) []string {
	owned := make(map[string]bool, len(names))
	for _, n := range names {
		owned[n] = true
	}

	kept := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		name, hasValue, ok := flagName(args[i])
		if !ok || !owned[name] {
			continue
		}
		kept = append(kept, args[i])
		if !hasValue && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			i++
			kept = append(kept, args[i])
		}
	}
	return kept
}

func flagName(arg string) (name string, hasValue, ok bool) {
	if len(arg) < 2 || arg[0] != '-' {
		return "", false, false
	}
	name = strings.TrimPrefix(arg[1:], "-")
	name, _, hasValue = strings.Cut(name, "=")
	return name, hasValue, name != ""
}

// ConfigPath returns the JSON config file named by -c or -config in args.
// When neither is present it falls back to the envKey environment variable
// (skipped when envKey is empty).
func ConfigPath(args []string, envKey string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, "c", "config"))

	if path == "" && envKey != "" {
		path = os.Getenv(envKey)
	}
	return path
}

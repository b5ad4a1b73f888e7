// Package config loads runtime configuration for the meetingd end-to-end
// client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string     address:port of the meetingd gRPC endpoint
//	-t duration   per-call timeout
//	-p            prompt for the password instead of using the default
//
// # JSON schema
//
// The JSON loader uses timex.Duration, so timeouts can be either strings like
// "5s" or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "call_timeout": "5s"
//	}
package config

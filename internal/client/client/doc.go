// Package client is a typed gRPC client for meetingd.
//
// Transport failures are mapped to ErrUnavailable or wrapped as-is; errors the
// server reports in a response envelope are returned as *api.Error so callers
// can inspect the code with errors.As.
package client

package common

// SessionTokenHeaderName is the gRPC metadata key that may carry the session
// token when a request message does not.
const SessionTokenHeaderName = "session_token"

// ServiceName identifies the server in traces, health checks and JWT issuer.
const ServiceName = "meetingd"

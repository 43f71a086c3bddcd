package common

const (
	// AuthorizationHeader carries the bearer access token.
	AuthorizationHeader = "Authorization"
	// BearerScheme is the prefix expected in AuthorizationHeader, including the trailing space.
	BearerScheme = "Bearer "
	// RequestIDHeader echoes the per-request id assigned by the server.
	RequestIDHeader = "X-Request-ID"
	// SessionKey is the well-known key under which the client persists its session.
	SessionKey = "auth"
)

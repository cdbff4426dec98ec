package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the optional scheme prefix of the authorization header value.
const BearerScheme = "Bearer "

// RequestIDHeaderName is echoed on every response and propagated into logs.
const RequestIDHeaderName = "X-Request-Id"

// ResetTokenSize is the number of random bytes behind a password reset token.
const ResetTokenSize = 32

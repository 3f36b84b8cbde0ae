package constants

import "time"

// Session
const (
	// AccessTokenCookie is the cookie that carries the bearer token.
	AccessTokenCookie = "access_token"
	// BearerPrefix prefixes the token inside the cookie value.
	BearerPrefix = "Bearer "
	// AccessTokenLifetime is how long an issued token stays valid.
	AccessTokenLifetime = 60 * time.Minute
)

// Context keys
const (
	ContextKeyUser   = "current_user"
	ContextKeyUserID = "user_id"
	ContextKeyToken  = "access_token_raw"
)

// Validation
const (
	MinPasswordLength = 8
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Dashboards
const (
	RecentListLimit = 5
	ChartDays       = 7
)

package redis

import "errors"

// Error definitions for the redis package.
var (
	// ErrNilLogger is returned when a constructor is given a nil logger.
	ErrNilLogger = errors.New("logger cannot be nil")

	// ErrMissingRedisAddr is returned when NewRedisSummaryCache is called
	// without a server address. Callers that want caching disabled should
	// pass a nil cache to the services instead.
	ErrMissingRedisAddr = errors.New("redis address cannot be empty")

	// ErrInvalidTTL is returned when the configured summary TTL is not a
	// positive number of seconds.
	ErrInvalidTTL = errors.New("progress TTL must be a positive number of seconds")
)

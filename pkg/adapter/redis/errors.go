package redis

import "errors"

var (
	ErrFailedToParseRedisConnString = errors.New("failed to parse redis connection string")
	ErrRedisNotReady                = errors.New("redis did not become ready within the given time period")
	ErrEmptyConnectionURL           = errors.New("empty redis connection URL")
	ErrHealthcheckFailed            = errors.New("redis healthcheck failed")
	ErrCorruptRow                   = errors.New("stored row is not valid JSON")
	ErrTxConflict                   = errors.New("table changed concurrently, retries exhausted")
	ErrCommandFailed                = errors.New("redis command failed")
	ErrIDUpdate                     = errors.New("the id field cannot be updated")
)

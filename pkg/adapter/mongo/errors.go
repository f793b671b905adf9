package mongo

import "errors"

var (
	ErrFailedToConnectToMongo = errors.New("failed to connect to mongo")
	ErrEmptyConnectionURL     = errors.New("empty mongo connection url, set MONGODB_URL")
	ErrHealthcheckFailed      = errors.New("mongo healthcheck failed")
	ErrNextID                 = errors.New("failed to allocate serial id")
	ErrCommandFailed          = errors.New("mongo command failed")
)

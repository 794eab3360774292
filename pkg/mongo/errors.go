package mongo

import "errors"

var (
	ErrFailedToConnectToMongo = errors.New("mongo.errors.connection_failed")
	ErrHealthcheckFailed      = errors.New("mongo.errors.healthcheck_failed")
)

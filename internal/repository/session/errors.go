package session

import "errors"

var (
	ErrMalformedRecord   = errors.New("malformed session record")
	ErrSchemaNotMigrated = errors.New("session schema is not migrated")
)

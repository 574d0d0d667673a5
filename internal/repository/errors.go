package repository

import "errors"

// ErrNotFound is returned by Get when no value is stored under the key.
//
// Every backend maps its own "missing" signal (sql.ErrNoRows, redis.Nil, a nil
// bolt value) onto this error so callers never depend on a driver.
var ErrNotFound = errors.New("repository: not found")

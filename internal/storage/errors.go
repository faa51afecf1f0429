// filepath: internal/storage/errors.go
package storage

import "errors"

// Sentinel errors returned by the storage layer. Callers match them with
// errors.Is; wrapped variants carry the operation detail.
var (
	ErrSizeExceeded        = errors.New("size exceeds configured maximum")
	ErrPathTraversal       = errors.New("path escapes storage root")
	ErrCollisionUnresolved = errors.New("final name collision unresolved")
)

// filepath: internal/services/service_errors.go
package services

import "docvault/internal/storage"

// Standard errors returned by the service layer, shared with the storage
// core so callers can match either package's sentinel.
var (
	ErrSizeExceeded        = storage.ErrSizeExceeded
	ErrPathTraversal       = storage.ErrPathTraversal
	ErrCollisionUnresolved = storage.ErrCollisionUnresolved
)

// Package authz holds the ownership guard. User identity lives in an
// external provider, so ownership is a value comparison of subject ids at
// this boundary rather than a storage-level constraint.
package authz

import (
	"fmt"

	"github.com/tunedeck/backend/internal/apperr"
)

// Authorize passes when the caller is absent (unauthenticated-but-permitted
// paths) or matches the resource owner, and fails with Forbidden otherwise.
func Authorize(callerID, ownerID string) error {
	if callerID == "" || callerID == ownerID {
		return nil
	}
	return fmt.Errorf("caller does not own this resource: %w", apperr.ErrForbidden)
}

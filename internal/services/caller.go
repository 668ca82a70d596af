// Package services holds the resource services. Every entry point takes
// the caller identity explicitly, consults the policy package, applies
// business invariants, and delegates persistence to the repositories.
// Failures are raised as apperr values; no user-facing strings are
// formatted here.
package services

import (
	"github.com/ZakariaBatty/fleetdesk/internal/policy"
)

// Caller identifies the authenticated user making a service call. The
// handler layer builds it from the session user id plus a fresh user row
// lookup, so the role is never trusted from a stale token.
type Caller struct {
	UserID uint
	Role   policy.Role
}

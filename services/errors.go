package services

import "errors"

// Sentinel errors separating the three failure families the API maps to
// distinct HTTP statuses. Wrap them with context: fmt.Errorf("...: %w", ErrNotFound).
var (
	ErrNotFound      = errors.New("entity not found")
	ErrAlreadyExists = errors.New("entity already exists")
	ErrBusinessRule  = errors.New("business rule violation")
)

// DropReason classifies why an inbound event was discarded without effect.
// Expected drops (orphan, unknown status, stale version) are timing or
// contract artifacts of eventual consistency; anything else surfaces as an
// error from the handler instead.
type DropReason int

const (
	DropNone DropReason = iota
	DropOrphanService
	DropUnknownStatus
	DropStaleVersion
)

func (r DropReason) String() string {
	switch r {
	case DropOrphanService:
		return "orphan_service"
	case DropUnknownStatus:
		return "unknown_status"
	case DropStaleVersion:
		return "stale_version"
	default:
		return "none"
	}
}

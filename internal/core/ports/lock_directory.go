package ports

import (
	"context"

	"github.com/paulmach/orb"
	"go.trai.ch/fairway/internal/core/domain"
)

// LockDirectory answers queries about the stored lock records.
//
//go:generate mockgen -source=lock_directory.go -destination=mocks/mock_lock_directory.go -package=mocks
type LockDirectory interface {
	// LocksNear returns every lock inside bound, ordered by id.
	LocksNear(ctx context.Context, bound orb.Bound) ([]domain.LockRecord, error)
	// Lock returns the lock with the given id or domain.ErrLockNotFound.
	Lock(ctx context.Context, id int64) (*domain.LockRecord, error)
}

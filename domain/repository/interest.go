package repository

import (
	"context"

	"vidnotes/domain/model"
)

// IInterestCategory reads the fixed interest catalog.
type IInterestCategory interface {
	List(ctx context.Context) ([]model.InterestCategory, error)
	// CountByIDs returns how many of the given ids exist; used to validate
	// interest submissions without a partial write.
	CountByIDs(ctx context.Context, ids []int64) (int, error)
}

// IInterest persists a user's declared interests. Replacement is wholesale
// and atomic: delete everything, insert the new rows, one transaction.
type IInterest interface {
	GetByUser(ctx context.Context, userID int64) ([]model.Interest, error)
	ReplaceForUser(ctx context.Context, userID int64, categoryIDs []int64, keywords []string) error
}

package repository

import (
	"context"

	"vidnotes/domain/model"
)

// IUser defines user persistence. IsPremium is resolved from the billing
// subsystem's subscriptions table; the rest of the billing lifecycle lives
// outside this service.
type IUser interface {
	GetByID(ctx context.Context, id int64) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	CreateUser(ctx context.Context, user model.User) (int64, error)
	IsPremium(ctx context.Context, userID int64) (bool, error)
}

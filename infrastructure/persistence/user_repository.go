package persistence

import (
	"context"
	"database/sql"
	"time"

	"vidnotes/domain/model"
	"vidnotes/domain/repository"
	"vidnotes/infrastructure/logger"
)

// UserRepository is a PostgreSQL implementation of IUser using database/sql.
type UserRepository struct{ db *sql.DB }

func NewUserRepository(db *sql.DB) repository.IUser { return &UserRepository{db} }

func (r *UserRepository) GetByID(ctx context.Context, id int64) (model.User, error) {
	var u model.User
	row := r.db.QueryRowContext(ctx, `SELECT id, name, email, password, google_id, avatar, is_admin, created_at, updated_at FROM users WHERE id = $1`, id)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.GoogleID, &u.Avatar, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if err != sql.ErrNoRows {
			logger.GetLogger().WithField("error", err).Error("query user by id failed")
		}
		return u, err
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	row := r.db.QueryRowContext(ctx, `SELECT id, name, email, password, google_id, avatar, is_admin, created_at, updated_at FROM users WHERE email = $1`, email)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.GoogleID, &u.Avatar, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if err != sql.ErrNoRows {
			logger.GetLogger().WithField("error", err).Error("query user by email failed")
		}
		return u, err
	}
	return u, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, user model.User) (int64, error) {
	now := time.Now().UTC()
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (name, email, password, google_id, avatar, is_admin, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$7) RETURNING id`,
		user.Name, user.Email, user.Password, user.GoogleID, user.Avatar, user.IsAdmin, now,
	).Scan(&id)
	if err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{
			"error": err,
			"email": user.Email,
		}).Error("create user failed")
		return 0, err
	}
	return id, nil
}

// IsPremium reports whether the user has an active subscription. The
// subscription rows themselves are written by the billing subsystem.
func (r *UserRepository) IsPremium(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	row := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM subscriptions WHERE user_id = $1 AND stripe_status = 'active')`, userID)
	if err := row.Scan(&exists); err != nil {
		logger.GetLogger().WithField("error", err).Error("query subscription status failed")
		return false, err
	}
	return exists, nil
}

package persistence

import (
	"context"
	"database/sql"
	"time"

	"vidnotes/domain/model"
	"vidnotes/domain/repository"
	"vidnotes/infrastructure/logger"

	"github.com/lib/pq"
)

// InterestCategoryRepository reads the fixed interest catalog.
type InterestCategoryRepository struct{ db *sql.DB }

func NewInterestCategoryRepository(db *sql.DB) repository.IInterestCategory {
	return &InterestCategoryRepository{db}
}

func (r *InterestCategoryRepository) List(ctx context.Context) ([]model.InterestCategory, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, slug, icon, color, sort_order FROM interest_categories ORDER BY sort_order`)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("list interest categories failed")
		return nil, err
	}
	defer rows.Close()
	out := make([]model.InterestCategory, 0, 16)
	for rows.Next() {
		var c model.InterestCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Icon, &c.Color, &c.SortOrder); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *InterestCategoryRepository) CountByIDs(ctx context.Context, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int
	row := r.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT id) FROM interest_categories WHERE id = ANY($1)`, pq.Array(ids))
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// InterestRepository persists a user's declared interests.
type InterestRepository struct{ db *sql.DB }

func NewInterestRepository(db *sql.DB) repository.IInterest {
	return &InterestRepository{db}
}

func (r *InterestRepository) GetByUser(ctx context.Context, userID int64) ([]model.Interest, error) {
	q := `SELECT ui.id, ui.user_id, ui.interest_category_id, ui.custom_keyword, ui.created_at,
	             ic.id, ic.name, ic.slug, ic.icon, ic.color, ic.sort_order
	      FROM user_interests ui
	      LEFT JOIN interest_categories ic ON ic.id = ui.interest_category_id
	      WHERE ui.user_id = $1
	      ORDER BY ui.id`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("list user interests failed")
		return nil, err
	}
	defer rows.Close()
	var out []model.Interest
	for rows.Next() {
		var in model.Interest
		var catID, catID2 sql.NullInt64
		var keyword, catName, catSlug, catIcon, catColor sql.NullString
		var catSort sql.NullInt64
		if err := rows.Scan(&in.ID, &in.UserID, &catID, &keyword, &in.CreatedAt,
			&catID2, &catName, &catSlug, &catIcon, &catColor, &catSort); err != nil {
			return nil, err
		}
		if catID.Valid {
			in.CategoryID = &catID.Int64
		}
		if keyword.Valid {
			in.CustomKeyword = &keyword.String
		}
		if catID2.Valid {
			in.Category = &model.InterestCategory{
				ID:        catID2.Int64,
				Name:      catName.String,
				Slug:      catSlug.String,
				Icon:      catIcon.String,
				Color:     catColor.String,
				SortOrder: int(catSort.Int64),
			}
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

// ReplaceForUser swaps the user's whole interest set in one transaction:
// no partial write survives an error.
func (r *InterestRepository) ReplaceForUser(ctx context.Context, userID int64, categoryIDs []int64, keywords []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM user_interests WHERE user_id = $1`, userID); err != nil {
		return err
	}
	now := time.Now().UTC()
	for _, categoryID := range categoryIDs {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO user_interests (user_id, interest_category_id, created_at) VALUES ($1,$2,$3)`,
			userID, categoryID, now); err != nil {
			return err
		}
	}
	for _, keyword := range keywords {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO user_interests (user_id, custom_keyword, created_at) VALUES ($1,$2,$3)`,
			userID, keyword, now); err != nil {
			return err
		}
	}
	if err = tx.Commit(); err != nil {
		logger.GetLogger().WithField("error", err).Error("replace user interests failed")
		return err
	}
	return nil
}

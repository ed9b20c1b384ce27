package cache

import (
	"context"
	"fmt"
	"time"

	"vidnotes/domain/model"
	"vidnotes/domain/repository"

	"github.com/redis/go-redis/v9"
)

// RefreshQuota counts explicit discover refreshes per user per local
// calendar day in redis. Premium users bypass it entirely. INCR plus a
// first-increment EXPIREAT is not compare-and-swap across the read in
// Remaining; an occasional overrun is cosmetic, not a security boundary.
type RefreshQuota struct {
	client     *redis.Client
	dailyLimit int
	now        func() time.Time
}

func NewRefreshQuota(client *redis.Client, dailyLimit int) repository.IRefreshQuota {
	return &RefreshQuota{client: client, dailyLimit: dailyLimit, now: time.Now}
}

// NewRefreshQuotaWithClock is used by tests to pin the day boundary.
func NewRefreshQuotaWithClock(client *redis.Client, dailyLimit int, now func() time.Time) repository.IRefreshQuota {
	return &RefreshQuota{client: client, dailyLimit: dailyLimit, now: now}
}

func (q *RefreshQuota) key(userID int64) string {
	return fmt.Sprintf("discover_refresh:%d:%s", userID, q.now().Format("2006-01-02"))
}

func (q *RefreshQuota) Remaining(ctx context.Context, user model.User) (model.RefreshAllowance, error) {
	if user.IsPremium {
		return model.UnlimitedAllowance(), nil
	}
	used, err := q.client.Get(ctx, q.key(user.ID)).Int()
	if err == redis.Nil {
		used = 0
	} else if err != nil {
		return model.RefreshAllowance{}, err
	}
	return model.LimitedAllowance(q.dailyLimit - used), nil
}

func (q *RefreshQuota) CanRefresh(ctx context.Context, user model.User) (bool, error) {
	allowance, err := q.Remaining(ctx, user)
	if err != nil {
		return false, err
	}
	return allowance.CanRefresh(), nil
}

func (q *RefreshQuota) Increment(ctx context.Context, user model.User) error {
	if user.IsPremium {
		return nil
	}
	key := q.key(user.ID)
	n, err := q.client.Incr(ctx, key).Result()
	if err != nil {
		return err
	}
	if n == 1 {
		// First refresh of the day: the counter dies at local midnight.
		now := q.now()
		endOfDay := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
		if err := q.client.ExpireAt(ctx, key, endOfDay).Err(); err != nil {
			return err
		}
	}
	return nil
}

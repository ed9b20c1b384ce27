package repository

import (
	"context"

	"vidnotes/domain/model"
)

// IVideoSearch wraps the external video search API. Failures (missing
// credential, transport error, non-2xx) are swallowed at this layer and
// logged, never returned: a degraded discover page is acceptable, a broken
// one is not. Callers append their own query qualifiers.
type IVideoSearch interface {
	Search(ctx context.Context, query string, maxResults int64) []model.SuggestedVideo
}

package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"vidnotes/domain/dto"
	"vidnotes/domain/model"
	"vidnotes/domain/repository"
	"vidnotes/infrastructure/logger"
)

const (
	suggestionTTL = 3600 * time.Second
	// One page of suggestions and the cap on external calls per request.
	suggestionLimit        = 8
	maxInterestsPerRequest = 4
	minVideosPerInterest   = 2
	maxKeywordLength       = 100
)

type IDiscoverUsecase interface {
	Categories(ctx context.Context) ([]model.InterestCategory, error)
	Interests(ctx context.Context, userID int64) ([]model.Interest, error)
	UpdateInterests(ctx context.Context, userID int64, req dto.UpdateInterestsRequest) error
	Suggestions(ctx context.Context, user model.User) (*dto.SuggestionsResponse, error)
	Refresh(ctx context.Context, user model.User) (*dto.SuggestionsResponse, error)
}

type discoverUsecase struct {
	categoryRepo repository.IInterestCategory
	interestRepo repository.IInterest
	search       repository.IVideoSearch
	cache        repository.ISuggestionCache
	quota        repository.IRefreshQuota

	// Injectable for tests; production uses the wall clock and the global
	// rand source.
	now     func() time.Time
	shuffle func(n int, swap func(i, j int))
}

// DiscoverOption tweaks the usecase, mainly for tests.
type DiscoverOption func(*discoverUsecase)

func WithClock(now func() time.Time) DiscoverOption {
	return func(u *discoverUsecase) { u.now = now }
}

func WithShuffle(shuffle func(n int, swap func(i, j int))) DiscoverOption {
	return func(u *discoverUsecase) { u.shuffle = shuffle }
}

func NewDiscoverUsecase(
	categoryRepo repository.IInterestCategory,
	interestRepo repository.IInterest,
	search repository.IVideoSearch,
	cache repository.ISuggestionCache,
	quota repository.IRefreshQuota,
	opts ...DiscoverOption,
) IDiscoverUsecase {
	u := &discoverUsecase{
		categoryRepo: categoryRepo,
		interestRepo: interestRepo,
		search:       search,
		cache:        cache,
		quota:        quota,
		now:          time.Now,
		shuffle:      rand.Shuffle,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *discoverUsecase) Categories(ctx context.Context) ([]model.InterestCategory, error) {
	return u.categoryRepo.List(ctx)
}

func (u *discoverUsecase) Interests(ctx context.Context, userID int64) ([]model.Interest, error) {
	interests, err := u.interestRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if interests == nil {
		interests = []model.Interest{}
	}
	return interests, nil
}

// UpdateInterests validates and then replaces the user's interest set
// wholesale. Empty inputs clear all interests.
func (u *discoverUsecase) UpdateInterests(ctx context.Context, userID int64, req dto.UpdateInterestsRequest) error {
	categoryIDs := dedupeIDs(req.CategoryIDs)
	if len(categoryIDs) > 0 {
		count, err := u.categoryRepo.CountByIDs(ctx, categoryIDs)
		if err != nil {
			return err
		}
		if count != len(categoryIDs) {
			return newValidationError("category_ids", "One or more selected categories do not exist.")
		}
	}

	keywords := make([]string, 0, len(req.CustomKeywords))
	seen := make(map[string]struct{})
	for _, raw := range req.CustomKeywords {
		keyword := strings.TrimSpace(raw)
		if keyword == "" {
			continue
		}
		if len(keyword) > maxKeywordLength {
			return newValidationError("custom_keywords", fmt.Sprintf("Keywords may not exceed %d characters.", maxKeywordLength))
		}
		if _, ok := seen[keyword]; ok {
			continue
		}
		seen[keyword] = struct{}{}
		keywords = append(keywords, keyword)
	}

	return u.interestRepo.ReplaceForUser(ctx, userID, categoryIDs, keywords)
}

// Suggestions serves the passive discover page. It never consumes refresh
// quota: cache misses regenerate silently.
func (u *discoverUsecase) Suggestions(ctx context.Context, user model.User) (*dto.SuggestionsResponse, error) {
	interests, err := u.interestRepo.GetByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if len(interests) == 0 {
		return u.noInterestsResponse(ctx, user)
	}

	key := u.userKey(user.ID)
	cached, err := u.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		var set dto.SuggestionSet
		if err := json.Unmarshal(cached, &set); err == nil {
			return u.respond(ctx, user, &set)
		}
		// Unreadable payload: drop it and regenerate.
		logger.GetLogger().WithField("key", key).Warn("discarding malformed cached suggestion set")
	}

	set, err := u.generateSuggestions(ctx, interests)
	if err != nil {
		return nil, err
	}
	if err := u.store(ctx, key, set); err != nil {
		return nil, err
	}
	return u.respond(ctx, user, set)
}

// Refresh is the explicit, quota-consuming regeneration. Order matters:
// quota check, increment, per-user eviction, regeneration, cache write.
func (u *discoverUsecase) Refresh(ctx context.Context, user model.User) (*dto.SuggestionsResponse, error) {
	can, err := u.quota.CanRefresh(ctx, user)
	if err != nil {
		return nil, err
	}
	if !can {
		return nil, ErrLimitReached
	}
	if err := u.quota.Increment(ctx, user); err != nil {
		return nil, err
	}

	key := u.userKey(user.ID)
	// Evicted unconditionally, even when nothing was cached.
	if err := u.cache.Forget(ctx, key); err != nil {
		return nil, err
	}

	interests, err := u.interestRepo.GetByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if len(interests) == 0 {
		return u.noInterestsResponse(ctx, user)
	}

	set, err := u.generateSuggestions(ctx, interests)
	if err != nil {
		return nil, err
	}
	if err := u.store(ctx, key, set); err != nil {
		return nil, err
	}
	return u.respond(ctx, user, set)
}

// generateSuggestions mixes videos from a random sample of the user's
// interests. The per-interest requests share an hourly cache across users;
// videosPerInterest is derived from the TOTAL interest count so users with
// few interests get more depth per topic, while the sample keeps external
// call volume bounded at four searches per request.
func (u *discoverUsecase) generateSuggestions(ctx context.Context, interests []model.Interest) (*dto.SuggestionSet, error) {
	total := len(interests)
	videosPerInterest := (suggestionLimit + total - 1) / total
	if videosPerInterest < minVideosPerInterest {
		videosPerInterest = minVideosPerInterest
	}

	sampled := make([]model.Interest, total)
	copy(sampled, interests)
	u.shuffle(len(sampled), func(i, j int) {
		sampled[i], sampled[j] = sampled[j], sampled[i]
	})
	if len(sampled) > maxInterestsPerRequest {
		sampled = sampled[:maxInterestsPerRequest]
	}

	allVideos := make([]model.SuggestedVideo, 0, suggestionLimit*2)
	for _, interest := range sampled {
		term := interest.SearchTerm()
		payload, err := u.cache.Remember(ctx, u.interestKey(interest.ID), suggestionTTL, func(ctx context.Context) ([]byte, error) {
			videos := u.search.Search(ctx, term+" tutorial", int64(videosPerInterest))
			return json.Marshal(videos)
		})
		if err != nil {
			return nil, err
		}
		var videos []model.SuggestedVideo
		if err := json.Unmarshal(payload, &videos); err != nil {
			return nil, err
		}
		for i := range videos {
			videos[i].Interest = term
		}
		allVideos = append(allVideos, videos...)
	}

	u.shuffle(len(allVideos), func(i, j int) {
		allVideos[i], allVideos[j] = allVideos[j], allVideos[i]
	})
	if len(allVideos) > suggestionLimit {
		allVideos = allVideos[:suggestionLimit]
	}

	return &dto.SuggestionSet{
		Videos:    allVideos,
		Interests: distinctSearchTerms(interests),
	}, nil
}

func (u *discoverUsecase) store(ctx context.Context, key string, set *dto.SuggestionSet) error {
	payload, err := json.Marshal(set)
	if err != nil {
		return err
	}
	return u.cache.Put(ctx, key, payload, suggestionTTL)
}

// respond merges a suggestion set with the live allowance fields, which
// are never cached.
func (u *discoverUsecase) respond(ctx context.Context, user model.User, set *dto.SuggestionSet) (*dto.SuggestionsResponse, error) {
	allowance, err := u.quota.Remaining(ctx, user)
	if err != nil {
		return nil, err
	}
	return &dto.SuggestionsResponse{
		Videos:             set.Videos,
		Interests:          set.Interests,
		RemainingRefreshes: allowance.RemainingJSON(),
		IsPremium:          user.IsPremium,
	}, nil
}

func (u *discoverUsecase) noInterestsResponse(ctx context.Context, user model.User) (*dto.SuggestionsResponse, error) {
	allowance, err := u.quota.Remaining(ctx, user)
	if err != nil {
		return nil, err
	}
	return &dto.SuggestionsResponse{
		Videos:             []model.SuggestedVideo{},
		Message:            "no_interests",
		RemainingRefreshes: allowance.RemainingJSON(),
		IsPremium:          user.IsPremium,
	}, nil
}

// userKey pins one user's aggregated set for the current hour; interestKey
// is shared across users with the same interest row to amortize external
// API calls. Hour-granular keys self-expire without an eviction job.
func (u *discoverUsecase) userKey(userID int64) string {
	return fmt.Sprintf("discover:user:%d:%s", userID, u.now().Format("2006-01-02-15"))
}

func (u *discoverUsecase) interestKey(interestID int64) string {
	return fmt.Sprintf("discover:interest:%d:%s", interestID, u.now().Format("2006-01-02-15"))
}

func dedupeIDs(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// distinctSearchTerms preserves first-occurrence order over the full
// interest set, not just the sampled one.
func distinctSearchTerms(interests []model.Interest) []string {
	out := make([]string, 0, len(interests))
	seen := make(map[string]struct{}, len(interests))
	for i := range interests {
		term := interests[i].SearchTerm()
		if term == "" {
			continue
		}
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		out = append(out, term)
	}
	return out
}

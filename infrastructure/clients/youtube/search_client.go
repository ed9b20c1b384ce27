package youtube

import (
	"context"
	"html"
	"time"

	"vidnotes/domain/model"
	"vidnotes/domain/repository"
	"vidnotes/infrastructure/logger"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const searchTimeout = 8 * time.Second

// Config holds YouTube Data API credentials. API key mode is enough for
// search; OAuth tokens are accepted for deployments that already have them.
type Config struct {
	APIKey       string `json:"api_key"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RedirectURL  string `json:"redirect_url"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// SearchClient wraps the YouTube Data API v3 search endpoint. All failures
// are absorbed here: discover suggestions degrading to "nothing found" is
// an acceptable fallback for a non-critical feature.
type SearchClient struct {
	service *youtube.Service
}

// NewSearchClient creates a search client. The returned client is always
// usable: without credentials, or when service construction fails, it has
// a nil service and yields empty results instead of errors.
func NewSearchClient(ctx context.Context, config *Config) (repository.IVideoSearch, error) {
	if config.AccessToken != "" && config.RefreshToken != "" {
		oauth2Config := &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			RedirectURL:  config.RedirectURL,
			Scopes:       []string{youtube.YoutubeReadonlyScope},
			Endpoint:     google.Endpoint,
		}
		token := &oauth2.Token{
			AccessToken:  config.AccessToken,
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
			Expiry:       time.Now().Add(-1 * time.Minute), // Force refresh on first use
		}
		service, err := youtube.NewService(ctx, option.WithHTTPClient(oauth2Config.Client(ctx, token)))
		if err != nil {
			return &SearchClient{}, err
		}
		return &SearchClient{service: service}, nil
	}

	if config.APIKey == "" {
		logger.GetLogger().Warn("YouTube API credentials not configured - discover search will return empty results")
		return &SearchClient{}, nil
	}

	service, err := youtube.NewService(ctx, option.WithAPIKey(config.APIKey))
	if err != nil {
		return &SearchClient{}, err
	}
	return &SearchClient{service: service}, nil
}

// Search returns up to maxResults video summaries for the query. Medium
// duration, strict safe search and English relevance keep results in the
// educational sweet spot the discover page targets.
func (c *SearchClient) Search(ctx context.Context, query string, maxResults int64) []model.SuggestedVideo {
	if c.service == nil {
		return []model.SuggestedVideo{}
	}
	if maxResults < 1 {
		maxResults = 1
	}

	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	response, err := c.service.Search.List([]string{"snippet"}).
		Context(ctx).
		Q(query).
		Type("video").
		VideoDuration("medium").
		RelevanceLanguage("en").
		SafeSearch("strict").
		MaxResults(maxResults).
		Do()
	if err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{
			"error": err,
			"query": query,
		}).Error("YouTube search failed")
		return []model.SuggestedVideo{}
	}

	videos := make([]model.SuggestedVideo, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		videos = append(videos, model.SuggestedVideo{
			YouTubeID:   item.Id.VideoId,
			Title:       html.UnescapeString(item.Snippet.Title),
			ChannelName: item.Snippet.ChannelTitle,
			Thumbnail:   pickThumbnail(item.Snippet.Thumbnails),
			PublishedAt: item.Snippet.PublishedAt,
		})
	}
	return videos
}

// pickThumbnail prefers the medium variant, falling back to default.
func pickThumbnail(details *youtube.ThumbnailDetails) string {
	if details == nil {
		return ""
	}
	if details.Medium != nil && details.Medium.Url != "" {
		return details.Medium.Url
	}
	if details.Default != nil {
		return details.Default.Url
	}
	return ""
}

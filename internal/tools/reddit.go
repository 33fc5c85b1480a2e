package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/RyanWillie/Thinkle/internal/config"
)

const (
	redditEndpoint     = "https://api.pushshift.io/reddit/search/submission"
	redditDefaultLimit = 5
)

// RedditSearch queries the Pushshift submission index for community
// discussion. Results below the configured upvote threshold or older than
// the configured age are dropped before the agent sees them.
type RedditSearch struct {
	endpoint string
	client   *http.Client
	settings config.RedditSettings
	now      func() time.Time
}

var _ Tool = (*RedditSearch)(nil)

// NewRedditSearch constructs the community search tool with the configured
// relevance thresholds.
func NewRedditSearch(settings config.RedditSettings) *RedditSearch {
	return &RedditSearch{
		endpoint: redditEndpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
		settings: settings,
		now:      time.Now,
	}
}

func (r *RedditSearch) Name() string { return "reddit_search" }

func (r *RedditSearch) Description() string {
	return "Search Reddit for community discussion about a query. Returns posts with title, url, score, and subreddit."
}

func (r *RedditSearch) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "The search term",
			},
			"subreddit": map[string]any{
				"type":        "string",
				"description": "Subreddit to search (default: all)",
			},
			"limit": map[string]any{
				"type":        "integer",
				"description": "Number of posts to return (default: 5)",
			},
		},
		"required": []string{"query"},
	}
}

type redditPost struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Score     int    `json:"score"`
	Subreddit string `json:"subreddit"`
	Timestamp string `json:"timestamp"`
}

// Call queries Pushshift ordered by score and renders the filtered posts as
// JSON text.
func (r *RedditSearch) Call(ctx context.Context, args json.RawMessage) (string, error) {
	input := struct {
		Query     string `json:"query"`
		Subreddit string `json:"subreddit"`
		Limit     int    `json:"limit"`
	}{Subreddit: "all", Limit: redditDefaultLimit}
	if err := json.Unmarshal(args, &input); err != nil {
		return "", fmt.Errorf("decode arguments: %w", err)
	}
	if strings.TrimSpace(input.Query) == "" {
		return "", fmt.Errorf("query must not be empty")
	}
	if input.Limit <= 0 {
		input.Limit = redditDefaultLimit
	}

	query := url.Values{}
	query.Set("q", input.Query)
	query.Set("subreddit", input.Subreddit)
	query.Set("size", strconv.Itoa(input.Limit))
	query.Set("sort", "desc")
	query.Set("sort_type", "score")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request reddit: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("reddit http %d", resp.StatusCode)
	}

	var response struct {
		Data []struct {
			Title      string  `json:"title"`
			Permalink  string  `json:"permalink"`
			Score      int     `json:"score"`
			Subreddit  string  `json:"subreddit"`
			CreatedUTC float64 `json:"created_utc"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("decode reddit response: %w", err)
	}

	cutoff := r.now().Add(-time.Duration(r.settings.MaxAgeHours) * time.Hour)
	posts := make([]redditPost, 0, len(response.Data))
	for _, item := range response.Data {
		if item.Score < r.settings.MinUpvotes {
			continue
		}
		created := time.Unix(int64(item.CreatedUTC), 0).UTC()
		if created.Before(cutoff) {
			continue
		}
		posts = append(posts, redditPost{
			Title:     item.Title,
			URL:       "https://www.reddit.com" + item.Permalink,
			Score:     item.Score,
			Subreddit: item.Subreddit,
			Timestamp: created.Format(time.RFC3339),
		})
	}

	out, err := json.Marshal(posts)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

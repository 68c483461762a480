package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/theuerc/riddle-me-this/internal/model"
)

// Client fetches video metadata from the YouTube Data API v3 using an API
// key. It is constructed once and injected wherever metadata is needed;
// there is no process-wide lazily-initialized handle.
type Client struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
	limiter *rate.Limiter
}

// NewClient creates a Data API client. The limiter keeps us well under the
// default daily quota even when a burst of uncached lookups arrives.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: "https://www.googleapis.com/youtube/v3",
		httpc:   &http.Client{Timeout: 15 * time.Second},
		limiter: rate.NewLimiter(rate.Every(100*time.Millisecond), 5),
	}
}

// NewClientWithBaseURL is used by tests to point the client at a fake server.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = baseURL
	return c
}

// videoListResponse mirrors the videos.list response fields we persist.
type videoListResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			PublishedAt  time.Time `json:"publishedAt"`
			ChannelID    string    `json:"channelId"`
			Title        string    `json:"title"`
			Description  string    `json:"description"`
			ChannelTitle string    `json:"channelTitle"`
			CategoryID   string    `json:"categoryId"`
			Thumbnails   struct {
				Maxres struct {
					URL string `json:"url"`
				} `json:"maxres"`
				High struct {
					URL string `json:"url"`
				} `json:"high"`
			} `json:"thumbnails"`
		} `json:"snippet"`
		ContentDetails struct {
			Definition      string `json:"definition"`
			LicensedContent bool   `json:"licensedContent"`
		} `json:"contentDetails"`
		Status struct {
			UploadStatus        string `json:"uploadStatus"`
			PrivacyStatus       string `json:"privacyStatus"`
			License             string `json:"license"`
			PublicStatsViewable bool   `json:"publicStatsViewable"`
			MadeForKids         bool   `json:"madeForKids"`
		} `json:"status"`
		Statistics struct {
			ViewCount     string `json:"viewCount"`
			LikeCount     string `json:"likeCount"`
			FavoriteCount string `json:"favoriteCount"`
			CommentCount  string `json:"commentCount"`
		} `json:"statistics"`
	} `json:"items"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// VideoInfo fetches snippet, statistics, contentDetails and status for a
// video ID and maps them onto a model.Video.
func (c *Client) VideoInfo(ctx context.Context, videoID string) (*model.Video, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("part", "snippet,statistics,contentDetails,status")
	q.Set("id", videoID)
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/videos?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("youtube data api: %w", err)
	}
	defer resp.Body.Close()

	var out videoListResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("youtube data api: decode: %w", err)
	}
	if out.Error != nil {
		return nil, fmt.Errorf("youtube data api: %d %s", out.Error.Code, out.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("youtube data api: status %d", resp.StatusCode)
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("%w: %s", model.ErrVideoNotFound, videoID)
	}

	item := out.Items[0]
	thumb := item.Snippet.Thumbnails.Maxres.URL
	if thumb == "" {
		thumb = item.Snippet.Thumbnails.High.URL
	}

	return &model.Video{
		VideoID:             item.ID,
		PublishedAt:         item.Snippet.PublishedAt,
		ChannelID:           item.Snippet.ChannelID,
		Title:               item.Snippet.Title,
		Description:         item.Snippet.Description,
		ChannelTitle:        item.Snippet.ChannelTitle,
		CategoryID:          item.Snippet.CategoryID,
		ThumbnailURL:        thumb,
		Definition:          item.ContentDetails.Definition,
		LicensedContent:     item.ContentDetails.LicensedContent,
		UploadStatus:        item.Status.UploadStatus,
		PrivacyStatus:       item.Status.PrivacyStatus,
		License:             item.Status.License,
		PublicStatsViewable: item.Status.PublicStatsViewable,
		MadeForKids:         item.Status.MadeForKids,
		ViewCount:           parseCount(item.Statistics.ViewCount),
		LikeCount:           parseCount(item.Statistics.LikeCount),
		FavoriteCount:       parseCount(item.Statistics.FavoriteCount),
		CommentCount:        parseCount(item.Statistics.CommentCount),
	}, nil
}

// parseCount handles the Data API's string-typed counters. Missing or
// malformed counts become zero rather than an error.
func parseCount(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}

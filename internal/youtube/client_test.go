package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theuerc/riddle-me-this/internal/model"
)

const videoListBody = `{
	"items": [{
		"id": "dQw4w9WgXcQ",
		"snippet": {
			"publishedAt": "2009-10-25T06:57:33Z",
			"channelId": "UCuAXFkgsw1L7xaCfnd5JJOw",
			"title": "Rick Astley - Never Gonna Give You Up",
			"description": "The official video.",
			"channelTitle": "Rick Astley",
			"categoryId": "10",
			"thumbnails": {"high": {"url": "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg"}}
		},
		"contentDetails": {"definition": "hd", "licensedContent": true},
		"status": {
			"uploadStatus": "processed",
			"privacyStatus": "public",
			"license": "youtube",
			"publicStatsViewable": true,
			"madeForKids": false
		},
		"statistics": {
			"viewCount": "1500000000",
			"likeCount": "17000000",
			"favoriteCount": "0",
			"commentCount": "2300000"
		}
	}]
}`

func TestClient_VideoInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/videos", r.URL.Path)
		assert.Equal(t, "dQw4w9WgXcQ", r.URL.Query().Get("id"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Contains(t, r.URL.Query().Get("part"), "snippet")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(videoListBody))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", srv.URL)
	v, err := c.VideoInfo(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)

	assert.Equal(t, "dQw4w9WgXcQ", v.VideoID)
	assert.Equal(t, "Rick Astley - Never Gonna Give You Up", v.Title)
	assert.Equal(t, "Rick Astley", v.ChannelTitle)
	assert.Equal(t, "hd", v.Definition)
	assert.True(t, v.LicensedContent)
	assert.Equal(t, int64(1500000000), v.ViewCount)
	assert.Equal(t, int64(2300000), v.CommentCount)
	// maxres is absent, so the high-res thumbnail is used.
	assert.Equal(t, "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg", v.ThumbnailURL)
}

func TestClient_VideoInfo_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"items": []}`))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", srv.URL)
	_, err := c.VideoInfo(context.Background(), "aaaaaaaaaaa")
	assert.ErrorIs(t, err, model.ErrVideoNotFound)
}

func TestClient_VideoInfo_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": {"code": 403, "message": "quotaExceeded"}}`))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", srv.URL)
	_, err := c.VideoInfo(context.Background(), "dQw4w9WgXcQ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quotaExceeded")
}

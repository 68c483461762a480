package model

import "time"

// Video holds the flat YouTube Data API metadata for a single video.
// A row is written once on first lookup and never updated afterwards.
type Video struct {
	VideoID             string    `json:"videoId"`
	PublishedAt         time.Time `json:"publishedAt"`
	ChannelID           string    `json:"channelId"`
	Title               string    `json:"title"`
	Description         string    `json:"description,omitempty"`
	ChannelTitle        string    `json:"channelTitle"`
	CategoryID          string    `json:"categoryId,omitempty"`
	ThumbnailURL        string    `json:"thumbnailUrl,omitempty"`
	Definition          string    `json:"definition,omitempty"`
	LicensedContent     bool      `json:"licensedContent"`
	UploadStatus        string    `json:"uploadStatus,omitempty"`
	PrivacyStatus       string    `json:"privacyStatus,omitempty"`
	License             string    `json:"license,omitempty"`
	PublicStatsViewable bool      `json:"publicStatsViewable"`
	MadeForKids         bool      `json:"madeForKids"`
	ViewCount           int64     `json:"viewCount"`
	LikeCount           int64     `json:"likeCount"`
	FavoriteCount       int64     `json:"favoriteCount"`
	CommentCount        int64     `json:"commentCount"`
	CreatedAt           time.Time `json:"createdAt"`
}

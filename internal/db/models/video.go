package models

import "time"

type Video struct {
	ID          int64     `json:"vod_id"`
	Title       string    `json:"title"`
	CoverURL    string    `json:"cover_url"`
	VideoURL    string    `json:"video_url"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	ReleaseYear int       `json:"release_year"`
	Views       int64     `json:"views"`
	UpdateTime  time.Time `json:"update_time"`
}

// VideoFilter narrows a catalog listing. Empty fields are ignored.
type VideoFilter struct {
	Category string
	// Keyword is a case-sensitive substring of the title.
	Keyword string
}

// Comment is a root comment or a reply. Username is filled by the read path.
type Comment struct {
	ID        int64     `json:"comment_id"`
	UserID    int64     `json:"user_id"`
	VideoID   int64     `json:"video_id"`
	Content   string    `json:"content"`
	ParentID  *int64    `json:"parent_id"`
	CreatedAt time.Time `json:"created_at"`
	Username  string    `json:"username"`
}

// Thread is a root comment with its direct replies, oldest first.
type Thread struct {
	Comment
	Replies []Comment `json:"replies"`
}

type Collection struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	VideoID     int64     `json:"video_id"`
	CollectedAt time.Time `json:"collected_at"`
}

// filepath: internal/models/models.go
// Package models contains the core data structures for the application.
package models

import (
	"time"
)

// Info represents general information about the service.
type Info struct {
	ServiceName    string    `json:"service_name"`
	Version        string    `json:"version"`
	UptimeSince    time.Time `json:"uptime_since"`
	SessionBackend string    `json:"session_backend"`
	StorageBackend string    `json:"storage_backend"`
}

// Post is a single blog post. LikesCount and Comments are derived values and
// are only filled by the queries that compute them.
type Post struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Author     string    `json:"author"`
	CreatedAt  time.Time `json:"created_at"`
	ImagePath  string    `json:"image_path,omitempty"`
	LikesCount int       `json:"likes_count"`
	Comments   []Comment `json:"comments,omitempty"`
}

// PostCreateArgs holds the values needed to insert a new post.
type PostCreateArgs struct {
	Title     string
	Content   string
	Author    string
	ImagePath string
}

// Comment is a single comment on a post.
type Comment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// PostAnalytics summarizes engagement for one post.
type PostAnalytics struct {
	Views    int      `json:"views"`
	Likes    int      `json:"likes"`
	Comments int      `json:"comments"`
	LikedBy  []string `json:"liked_by"`
}

// PostWithAnalytics pairs a post with its engagement summary.
type PostWithAnalytics struct {
	Post      Post          `json:"post"`
	Analytics PostAnalytics `json:"analytics"`
}

// HousekeepingReport describes the outcome of one maintenance run.
type HousekeepingReport struct {
	StartedAt       time.Time `json:"started_at"`
	Duration        string    `json:"duration"`
	ExpiredSessions int64     `json:"expired_sessions"`
	OrphanedUploads int       `json:"orphaned_uploads"`
	ReclaimedBytes  int64     `json:"reclaimed_bytes"`
	UploadErrors    []string  `json:"upload_errors,omitempty"`
}

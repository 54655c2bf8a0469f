// filepath: internal/services/interfaces.go
package services

import (
	"blog/internal/config"
	"blog/internal/models"
	"blog/internal/storage"
	"context"
	"io"
)

// Auditor defines the interface for recording security-relevant events.
type Auditor interface {
	// Log records an event.
	// ctx: context of the request that caused the event
	// action: what happened (e.g., "post.create", "user.delete")
	// actor: who did it (username)
	// resource: what was affected (e.g., "Post:12", "User:bob")
	// details: structured metadata about the event
	Log(ctx context.Context, action string, actor string, resource string, details map[string]interface{})
}

// InfoService defines the interface for the info service.
type InfoService interface {
	GetInfo() models.Info
}

// UserService defines the interface for the user service.
type UserService interface {
	VerifyCredentials(ctx context.Context, username, password string) (bool, error)
	CreateUser(ctx context.Context, username, password string) (bool, error)
	DeleteUser(ctx context.Context, username string) (bool, error)
	GetUsers(ctx context.Context) ([]string, error)
	InitializeUsers(ctx context.Context, cfg *config.Config) error
}

// ImageUpload is an image attached to a new post.
type ImageUpload struct {
	File     io.ReadSeeker
	Filename string
	Size     int64
}

// PostService defines the interface for posts and their engagement.
type PostService interface {
	ListPosts(ctx context.Context) ([]models.Post, error)
	GetPost(ctx context.Context, id int64) (*models.Post, error)
	ViewPost(ctx context.Context, id int64) (*models.Post, error)
	CreatePost(ctx context.Context, author, title, content string, image *ImageUpload) (int64, error)
	DeletePost(ctx context.Context, id int64) (bool, error)
	ToggleLike(ctx context.Context, id int64, username string) (bool, error)
	AddComment(ctx context.Context, id int64, username, content string) error
	GetPostAnalytics(ctx context.Context, id int64, requester string) (*models.PostWithAnalytics, error)
	GetUserAnalytics(ctx context.Context, username string) ([]models.PostWithAnalytics, error)
	OpenUpload(ctx context.Context, name string) (io.ReadCloser, storage.ObjectInfo, error)
}

// HousekeepingService defines the interface for the housekeeping service.
type HousekeepingService interface {
	TriggerHousekeeping(ctx context.Context) (*models.HousekeepingReport, error)
}

// filepath: internal/repository/utils.go
package repository

import (
	"blog/internal/models"
	"blog/internal/shared"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// postColumns are the columns read by scanPost, in order.
var postColumns = []string{
	"p.id", "p.title", "p.content", "p.author", "p.created_at", "p.image_path",
	"(SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id) AS likes_count",
}

func scanPost(row rowScanner) (models.Post, error) {
	var p models.Post
	var createdAt int64
	var image sql.NullString
	if err := row.Scan(&p.ID, &p.Title, &p.Content, &p.Author, &createdAt, &image, &p.LikesCount); err != nil {
		return models.Post{}, err
	}
	p.CreatedAt = time.Unix(createdAt, 0).UTC()
	p.ImagePath = image.String
	return p, nil
}

func scanComment(row rowScanner) (models.Comment, error) {
	var c models.Comment
	var createdAt int64
	if err := row.Scan(&c.ID, &c.PostID, &c.Username, &c.Content, &createdAt); err != nil {
		return models.Comment{}, err
	}
	c.CreatedAt = time.Unix(createdAt, 0).UTC()
	return c, nil
}

// storageErr wraps a driver error so callers can detect it with errors.Is(err, shared.ErrStorage).
func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, shared.ErrStorage, err)
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// filepath: internal/repository/engagement_repo.go
package repository

import (
	"blog/internal/models"
	"blog/internal/shared"
	"context"

	"github.com/Masterminds/squirrel"
)

// ToggleLike flips the like state of (postID, username) and reports whether the
// pair is liked afterwards. Insert and fallback delete share one transaction, and
// the UNIQUE(post_id, username) constraint decides which branch runs. A missing
// post yields shared.ErrPostNotFound and writes nothing.
func (s *Repository) ToggleLike(ctx context.Context, postID int64, username string) (bool, error) {
	tx, err := s.BeginTx(ctx)
	if err != nil {
		return false, storageErr("toggle like", err)
	}
	defer tx.Rollback()

	inserted, err := tx.InsertLikeInTx(ctx, postID, username)
	if err != nil {
		return false, storageErr("toggle like", err)
	}
	if !inserted {
		exists, err := tx.PostExistsInTx(ctx, postID)
		if err != nil {
			return false, storageErr("toggle like", err)
		}
		if !exists {
			return false, shared.ErrPostNotFound
		}
		if err := tx.DeleteLikeInTx(ctx, postID, username); err != nil {
			return false, storageErr("toggle like", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, storageErr("toggle like", err)
	}
	return inserted, nil
}

// GetLikesCount returns the number of likes on a post.
func (s *Repository) GetLikesCount(ctx context.Context, postID int64) (int, error) {
	return s.countWhere(ctx, "likes", squirrel.Eq{"post_id": postID})
}

// AddComment appends a comment stamped with the repository clock.
// It returns shared.ErrPostNotFound when the post does not exist.
func (s *Repository) AddComment(ctx context.Context, postID int64, username, content string) error {
	written, err := insertForPost(ctx, s.DB, s.Builder, "comments", postID,
		[]string{"post_id", "username", "content", "created_at"},
		[]any{postID, username, content, s.now().Unix()}, "")
	if err != nil {
		return storageErr("add comment", err)
	}
	if !written {
		return shared.ErrPostNotFound
	}
	return nil
}

// GetComments returns a post's comments, newest first.
func (s *Repository) GetComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	query, args, err := s.Builder.Select("id", "post_id", "username", "content", "created_at").
		From("comments").
		Where(squirrel.Eq{"post_id": postID}).
		OrderBy("id DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr("get comments", err)
	}
	defer rows.Close()

	comments := make([]models.Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, storageErr("get comments", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("get comments", err)
	}
	return comments, nil
}

// AddView records one view of a post. Views are never deduplicated.
// It returns shared.ErrPostNotFound when the post does not exist.
func (s *Repository) AddView(ctx context.Context, postID int64) error {
	written, err := insertForPost(ctx, s.DB, s.Builder, "views", postID,
		[]string{"post_id", "viewed_at"},
		[]any{postID, s.now().Unix()}, "")
	if err != nil {
		return storageErr("add view", err)
	}
	if !written {
		return shared.ErrPostNotFound
	}
	return nil
}

func (s *Repository) countWhere(ctx context.Context, table string, pred squirrel.Sqlizer) (int, error) {
	query, args, err := s.Builder.Select("COUNT(*)").From(table).Where(pred).ToSql()
	if err != nil {
		return 0, err
	}
	var n int
	if err := s.DB.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, storageErr("count "+table, err)
	}
	return n, nil
}

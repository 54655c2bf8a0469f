// filepath: internal/repository/analytics_repo.go
package repository

import (
	"blog/internal/models"
	"context"

	"github.com/Masterminds/squirrel"
)

// GetPostAnalytics returns view, like and comment counts plus the likers of a post.
// It does not check that the post exists.
func (s *Repository) GetPostAnalytics(ctx context.Context, postID int64) (*models.PostAnalytics, error) {
	views, err := s.countWhere(ctx, "views", squirrel.Eq{"post_id": postID})
	if err != nil {
		return nil, err
	}
	likes, err := s.countWhere(ctx, "likes", squirrel.Eq{"post_id": postID})
	if err != nil {
		return nil, err
	}
	comments, err := s.countWhere(ctx, "comments", squirrel.Eq{"post_id": postID})
	if err != nil {
		return nil, err
	}
	likedBy, err := s.getLikers(ctx, postID)
	if err != nil {
		return nil, err
	}

	return &models.PostAnalytics{
		Views:    views,
		Likes:    likes,
		Comments: comments,
		LikedBy:  likedBy,
	}, nil
}

// GetUserPostsAnalytics returns username's posts, newest first, each paired with its analytics.
func (s *Repository) GetUserPostsAnalytics(ctx context.Context, username string) ([]models.PostWithAnalytics, error) {
	posts, err := s.GetPostsByAuthor(ctx, username)
	if err != nil {
		return nil, err
	}

	result := make([]models.PostWithAnalytics, 0, len(posts))
	for _, p := range posts {
		a, err := s.GetPostAnalytics(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, models.PostWithAnalytics{Post: p, Analytics: *a})
	}
	return result, nil
}

func (s *Repository) getLikers(ctx context.Context, postID int64) ([]string, error) {
	query, args, err := s.Builder.Select("username").
		From("likes").
		Where(squirrel.Eq{"post_id": postID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr("get likers", err)
	}
	defer rows.Close()

	likers := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, storageErr("get likers", err)
		}
		likers = append(likers, name)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("get likers", err)
	}
	return likers, nil
}

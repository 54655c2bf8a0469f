// filepath: internal/repository/post_repo.go
package repository

import (
	"blog/internal/models"
	"blog/internal/shared"
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
)

// CreatePost inserts a post stamped with the repository clock and returns its id.
func (s *Repository) CreatePost(ctx context.Context, args models.PostCreateArgs) (int64, error) {
	query, qargs, err := s.Builder.Insert("posts").
		Columns("title", "content", "author", "created_at", "image_path").
		Values(args.Title, args.Content, args.Author, s.now().Unix(), nullableString(args.ImagePath)).
		ToSql()
	if err != nil {
		return 0, err
	}

	res, err := s.DB.ExecContext(ctx, query, qargs...)
	if err != nil {
		return 0, storageErr("create post", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageErr("create post", err)
	}
	return id, nil
}

// GetAllPosts returns every post, newest first, with its like count.
func (s *Repository) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	return s.queryPosts(ctx, s.Builder.Select(postColumns...).From("posts p").OrderBy("p.id DESC"))
}

// GetPostsByAuthor returns the posts written by username, newest first.
func (s *Repository) GetPostsByAuthor(ctx context.Context, username string) ([]models.Post, error) {
	return s.queryPosts(ctx, s.Builder.Select(postColumns...).
		From("posts p").
		Where(squirrel.Eq{"p.author": username}).
		OrderBy("p.id DESC"))
}

// GetPost returns a single post with its like count and comments (newest first).
// The two reads are independent statements.
func (s *Repository) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	query, args, err := s.Builder.Select(postColumns...).
		From("posts p").
		Where(squirrel.Eq{"p.id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	post, err := scanPost(s.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrPostNotFound
		}
		return nil, storageErr("get post", err)
	}

	comments, err := s.GetComments(ctx, id)
	if err != nil {
		return nil, err
	}
	post.Comments = comments
	return &post, nil
}

// DeletePost removes the post row. Likes, comments and views are left in place.
func (s *Repository) DeletePost(ctx context.Context, id int64) (bool, error) {
	query, args, err := s.Builder.Delete("posts").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return false, err
	}

	res, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return false, storageErr("delete post", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, storageErr("delete post", err)
	}
	return n > 0, nil
}

// GetImagePaths returns the image path of every post that has one.
func (s *Repository) GetImagePaths(ctx context.Context) ([]string, error) {
	query, args, err := s.Builder.Select("image_path").
		From("posts").
		Where(squirrel.NotEq{"image_path": nil}).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr("get image paths", err)
	}
	defer rows.Close()

	paths := make([]string, 0)
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, storageErr("get image paths", err)
		}
		paths = append(paths, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("get image paths", err)
	}
	return paths, nil
}

func (s *Repository) queryPosts(ctx context.Context, builder squirrel.SelectBuilder) ([]models.Post, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr("list posts", err)
	}
	defer rows.Close()

	posts := make([]models.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, storageErr("list posts", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list posts", err)
	}
	return posts, nil
}

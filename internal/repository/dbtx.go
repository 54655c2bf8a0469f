// filepath: internal/repository/dbtx.go
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
)

// Tx is a wrapper around *sql.Tx that provides transactional database operations.
type Tx struct {
	*sql.Tx
	builder squirrel.StatementBuilderType
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// insertForPost inserts one row into table only while post postID exists, so
// engagement rows never point at a post that was never created. suffix is
// appended verbatim, e.g. an ON CONFLICT clause. It reports whether a row was written.
func insertForPost(ctx context.Context, db execer, b squirrel.StatementBuilderType, table string, postID int64, columns []string, values []any, suffix string) (bool, error) {
	sel := b.Select().Where("EXISTS (SELECT 1 FROM posts WHERE id = ?)", postID)
	for _, v := range values {
		sel = sel.Column("?", v)
	}
	ins := b.Insert(table).Columns(columns...).Select(sel)
	if suffix != "" {
		ins = ins.Suffix(suffix)
	}
	query, args, err := ins.ToSql()
	if err != nil {
		return false, err
	}

	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// InsertLikeInTx inserts a like for the pair unless one already exists or the
// post is missing. It reports whether a row was written.
func (tx *Tx) InsertLikeInTx(ctx context.Context, postID int64, username string) (bool, error) {
	return insertForPost(ctx, tx, tx.builder, "likes", postID,
		[]string{"post_id", "username"},
		[]any{postID, username},
		"ON CONFLICT(post_id, username) DO NOTHING")
}

// PostExistsInTx reports whether the post row exists.
func (tx *Tx) PostExistsInTx(ctx context.Context, postID int64) (bool, error) {
	query, args, err := tx.builder.Select("1").From("posts").Where(squirrel.Eq{"id": postID}).Limit(1).ToSql()
	if err != nil {
		return false, err
	}
	var one int
	err = tx.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// DeleteLikeInTx removes the like for the pair, if any.
func (tx *Tx) DeleteLikeInTx(ctx context.Context, postID int64, username string) error {
	query, args, err := tx.builder.Delete("likes").
		Where(squirrel.Eq{"post_id": postID, "username": username}).
		ToSql()
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, query, args...)
	return err
}

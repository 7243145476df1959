package postservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

func (m *PostModel) insertComment(ctx context.Context, comment *Comment) error {
	query := `
		INSERT INTO comment (text, posted_time, author_id, post_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := m.db.QueryRowContext(ctx, query, comment.Text, comment.PostedTime, comment.AuthorID, comment.PostID).Scan(&comment.ID)
	if err != nil {
		switch {
		case ForeignKeyError(err, "comment_post_id_fkey"):
			return ErrPostForeignKey
		case ForeignKeyError(err, "comment_author_id_fkey"):
			return ErrUserForeignKey
		default:
			return err
		}
	}

	return nil
}

// getCommentsByPostId returns the post's comments oldest first, joined with
// their authors.
func (m *PostModel) getCommentsByPostId(ctx context.Context, postID int) ([]Comment, error) {
	query := `
		SELECT c.id, c.text, c.posted_time, c.author_id, c.post_id, u.name, u.email
		FROM comment c
		JOIN users u ON c.author_id = u.id
		WHERE c.post_id = $1
		ORDER BY c.posted_time`

	rows, err := m.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var c Comment
		var posted time.Time
		err := rows.Scan(&c.ID, &c.Text, &posted, &c.AuthorID, &c.PostID, &c.Author.Name, &c.Author.Email)
		if err != nil {
			return nil, err
		}
		c.PostedTime = posted
		c.Author.ID = c.AuthorID
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}

func (m *PostModel) getCommentById(ctx context.Context, id int) (*Comment, error) {
	query := `
		SELECT id, text, posted_time, author_id, post_id
		FROM comment
		WHERE id = $1`

	var c Comment

	err := m.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Text, &c.PostedTime, &c.AuthorID, &c.PostID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &c, nil
}

func (m *PostModel) deleteComment(ctx context.Context, id int) error {
	query := `
		DELETE FROM comment
		WHERE id = $1`

	res, err := m.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		switch {
		case rows == 0:
			return ErrRecordNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}

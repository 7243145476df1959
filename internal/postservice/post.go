package postservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateTitle = errors.New("duplicate title")
	ErrUserForeignKey = errors.New("author_id does not exist")
	ErrPostForeignKey = errors.New("post_id does not exist")
)

func newPostModel(db *sql.DB) *PostModel {
	return &PostModel{db: db}
}

// ForeignKeyError is a helper function to check if the error is a foreign key constraint error.
func ForeignKeyError(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23503" && pqErr.Constraint == name {
			return true
		}
	}

	return false
}

func (m *PostModel) insert(ctx context.Context, post *Post) error {
	query := `
		INSERT INTO blog_posts (title, subtitle, date, body, img_url, author_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	args := []any{post.Title, post.Subtitle, post.Date, post.Body, post.ImgURL, post.AuthorID}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&post.ID)
	if err != nil {
		switch {
		case err.Error() == "pq: duplicate key value violates unique constraint \"blog_posts_title_key\"":
			return ErrDuplicateTitle
		case ForeignKeyError(err, "blog_posts_author_id_fkey"):
			return ErrUserForeignKey
		default:
			return err
		}
	}

	return nil
}

// getPostById is a method to get a post by its ID joining the users table to get the author's name and email.
func (m *PostModel) getPostById(ctx context.Context, id int) (*Post, error) {
	query := `
		SELECT p.id, p.title, p.subtitle, p.date, p.body, p.img_url, p.author_id, u.name, u.email
		FROM blog_posts p
		JOIN users u ON p.author_id = u.id
		WHERE p.id = $1`

	row := m.db.QueryRowContext(ctx, query, id)

	var post Post
	err := row.Scan(&post.ID, &post.Title, &post.Subtitle, &post.Date, &post.Body, &post.ImgURL, &post.AuthorID, &post.Author.Name, &post.Author.Email)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	post.Author.ID = post.AuthorID

	return &post, nil
}

// getPosts returns every post in creation order.
func (m *PostModel) getPosts(ctx context.Context) ([]Post, error) {
	query := `
		SELECT p.id, p.title, p.subtitle, p.date, p.body, p.img_url, p.author_id, u.name, u.email
		FROM blog_posts p
		JOIN users u ON p.author_id = u.id
		ORDER BY p.id`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var post Post
		err := rows.Scan(&post.ID, &post.Title, &post.Subtitle, &post.Date, &post.Body, &post.ImgURL, &post.AuthorID, &post.Author.Name, &post.Author.Email)
		if err != nil {
			return nil, err
		}
		post.Author.ID = post.AuthorID
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

// updatePost overwrites title, subtitle, body, image and author. The date
// column is deliberately left alone.
func (m *PostModel) updatePost(ctx context.Context, post *Post) error {
	query := `
		UPDATE blog_posts
		SET title = $1, subtitle = $2, body = $3, img_url = $4, author_id = $5
		WHERE id = $6`

	res, err := m.db.ExecContext(ctx, query, post.Title, post.Subtitle, post.Body, post.ImgURL, post.AuthorID, post.ID)
	if err != nil {
		switch {
		case err.Error() == "pq: duplicate key value violates unique constraint \"blog_posts_title_key\"":
			return ErrDuplicateTitle
		default:
			return err
		}
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

// deletePost removes the post; its comments go with it through the foreign
// key cascade.
func (m *PostModel) deletePost(ctx context.Context, id int) error {
	query := `
		DELETE FROM blog_posts
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

package postservice

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/sayurimoto/inkwell/internal/common"
	"github.com/stretchr/testify/assert"
)

// setupTestUser is a helper function to create a test user in the database.
func setupTestUser(db *sql.DB, email string) (*int, error) {
	query := `
		INSERT INTO users (name, email, password, role)
		VALUES ($1, $2, $3, 'user')
		RETURNING id`

	var id int
	err := db.QueryRow(query, "testuser", email, []byte("notahash")).Scan(&id)
	if err != nil {
		return nil, err
	}

	return &id, nil
}

func setupTestEnvironment(t *testing.T) (*PostService, *sql.DB, func() error, *int) {
	db := common.TestDB("file://../../migrations", t)

	id, err := setupTestUser(db, "testuser@example.com")
	assert.NoError(t, err)

	cleanup := func() error {
		_, err := db.Exec("DELETE FROM blog_posts")
		return err
	}

	return NewPostService(db), db, cleanup, id
}

func createRandomPost(db *sql.DB, userId int, title string) (*int, error) {
	query := `
		INSERT INTO blog_posts (title, subtitle, date, body, img_url, author_id)
		VALUES ($1, 'A subtitle', 'July 15, 2024', 'Post body.', 'https://example.com/cover.jpg', $2)
		RETURNING id`

	var id int
	err := db.QueryRow(query, title, userId).Scan(&id)
	if err != nil {
		return nil, err
	}

	return &id, nil
}

func TestCreatePost(t *testing.T) {
	s, db, cleanup, userId := setupTestEnvironment(t)

	testCases := []struct {
		name        string
		post        *CreatePostRequest
		expectedErr error
	}{
		{
			name: "valid post",
			post: &CreatePostRequest{
				Title:    "Test Post",
				Subtitle: "A subtitle",
				Body:     "This is a test post.",
				ImgURL:   "https://example.com/cover.jpg",
				AuthorID: *userId,
			},
			expectedErr: nil,
		},
		{
			name: "empty title",
			post: &CreatePostRequest{
				Subtitle: "A subtitle",
				Body:     "This is a test post.",
				ImgURL:   "https://example.com/cover.jpg",
				AuthorID: *userId,
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"title": "must be provided"}},
		},
		{
			name: "bad image URL",
			post: &CreatePostRequest{
				Title:    "Test Post",
				Subtitle: "A subtitle",
				Body:     "This is a test post.",
				ImgURL:   "ftp://example.com/cover.jpg",
				AuthorID: *userId,
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"img_url": "must be an http or https URL"}},
		},
		{
			name: "invalid author ID",
			post: &CreatePostRequest{
				Title:    "Test Post",
				Subtitle: "A subtitle",
				Body:     "This is a test post.",
				ImgURL:   "https://example.com/cover.jpg",
				AuthorID: 999,
			},
			expectedErr: ErrUserForeignKey,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()

			post, err := s.CreatePost(ctx, tc.post)
			assert.Equal(t, tc.expectedErr, err)

			if err == nil {
				assert.NotZero(t, post.ID)
				assert.Equal(t, time.Now().Format(DateFormat), post.Date)

				var count int
				err := db.QueryRow("SELECT COUNT(*) FROM blog_posts").Scan(&count)
				assert.NoError(t, err)
				assert.Equal(t, 1, count)
			}

			t.Cleanup(func() {
				assert.NoError(t, cleanup())
			})
		})
	}
}

func TestCreatePostDuplicateTitle(t *testing.T) {
	s, _, cleanup, userId := setupTestEnvironment(t)

	ctx := context.Background()

	req := &CreatePostRequest{
		Title:    "Unique Title",
		Subtitle: "A subtitle",
		Body:     "This is a test post.",
		ImgURL:   "https://example.com/cover.jpg",
		AuthorID: *userId,
	}

	_, err := s.CreatePost(ctx, req)
	assert.NoError(t, err)

	_, err = s.CreatePost(ctx, req)
	assert.Equal(t, ErrDuplicateTitle, err)

	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})
}

func TestGetPostByID(t *testing.T) {
	s, db, cleanup, userId := setupTestEnvironment(t)

	ctx := context.Background()

	id, err := createRandomPost(db, *userId, "Test Post")
	assert.NoError(t, err)

	t.Run("existing post", func(t *testing.T) {
		post, err := s.GetPostByID(ctx, *id)
		assert.NoError(t, err)
		assert.Equal(t, "Test Post", post.Title)
		assert.Equal(t, "July 15, 2024", post.Date)
		assert.Equal(t, "testuser", post.Author.Name)
	})

	t.Run("missing post", func(t *testing.T) {
		_, err := s.GetPostByID(ctx, 999)
		assert.Equal(t, ErrRecordNotFound, err)
	})

	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})
}

func TestUpdatePostKeepsDate(t *testing.T) {
	s, db, cleanup, userId := setupTestEnvironment(t)

	ctx := context.Background()

	id, err := createRandomPost(db, *userId, "Test Post")
	assert.NoError(t, err)

	err = s.UpdatePost(ctx, &UpdatePostRequest{
		ID:       *id,
		Title:    "Updated Title",
		Subtitle: "Updated subtitle",
		Body:     "Updated body.",
		ImgURL:   "https://example.com/new.jpg",
		AuthorID: *userId,
	})
	assert.NoError(t, err)

	post, err := s.GetPostByID(ctx, *id)
	assert.NoError(t, err)
	assert.Equal(t, "Updated Title", post.Title)
	assert.Equal(t, "July 15, 2024", post.Date)

	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})
}

func TestDeletePostCascadesComments(t *testing.T) {
	s, db, cleanup, userId := setupTestEnvironment(t)

	ctx := context.Background()

	id, err := createRandomPost(db, *userId, "Test Post")
	assert.NoError(t, err)

	_, err = s.AddComment(ctx, "first comment", *id, *userId)
	assert.NoError(t, err)
	_, err = s.AddComment(ctx, "second comment", *id, *userId)
	assert.NoError(t, err)

	err = s.DeletePost(ctx, *id)
	assert.NoError(t, err)

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM comment WHERE post_id = $1", *id).Scan(&count)
	assert.NoError(t, err)
	assert.Equal(t, 0, count)

	err = s.DeletePost(ctx, *id)
	assert.Equal(t, ErrRecordNotFound, err)

	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})
}

func TestComments(t *testing.T) {
	s, db, cleanup, userId := setupTestEnvironment(t)

	ctx := context.Background()

	id, err := createRandomPost(db, *userId, "Test Post")
	assert.NoError(t, err)

	t.Run("comment on missing post", func(t *testing.T) {
		_, err := s.AddComment(ctx, "hello", 999, *userId)
		assert.Equal(t, ErrPostForeignKey, err)
	})

	t.Run("fresh comment reads as just now", func(t *testing.T) {
		comment, err := s.AddComment(ctx, "hello", *id, *userId)
		assert.NoError(t, err)
		assert.NotZero(t, comment.ID)

		comments, err := s.GetComments(ctx, *id)
		assert.NoError(t, err)
		assert.Len(t, comments, 1)
		assert.Equal(t, "hello", comments[0].Text)
		assert.Equal(t, "testuser", comments[0].Author.Name)
		assert.Equal(t, "just now", comments[0].Age)
	})

	t.Run("old comment age is recomputed", func(t *testing.T) {
		_, err := db.Exec(`
			INSERT INTO comment (text, posted_time, author_id, post_id)
			VALUES ('old comment', $1, $2, $3)`, time.Now().Add(-2*time.Hour), *userId, *id)
		assert.NoError(t, err)

		comments, err := s.GetComments(ctx, *id)
		assert.NoError(t, err)
		assert.Len(t, comments, 2)
		assert.Equal(t, "old comment", comments[0].Text)
		assert.Equal(t, "2 hours ago", comments[0].Age)
	})

	t.Run("delete comment", func(t *testing.T) {
		comment, err := s.AddComment(ctx, "short lived", *id, *userId)
		assert.NoError(t, err)

		fetched, err := s.GetCommentByID(ctx, comment.ID)
		assert.NoError(t, err)
		assert.Equal(t, *userId, fetched.AuthorID)

		err = s.DeleteComment(ctx, comment.ID)
		assert.NoError(t, err)

		_, err = s.GetCommentByID(ctx, comment.ID)
		assert.Equal(t, ErrRecordNotFound, err)
	})

	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})
}

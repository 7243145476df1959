package postservice

import (
	"context"
	"database/sql"
	"time"

	"github.com/sayurimoto/inkwell/internal/common"
)

// DateFormat is the display format stamped on a post at creation time.
const DateFormat = "January 02, 2006"

func NewPostService(db *sql.DB) *PostService {
	return &PostService{m: newPostModel(db)}
}

type CreatePostRequest struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Body     string `json:"body"`
	ImgURL   string `json:"img_url"`
	AuthorID int    `json:"author_id"`
}

// CreatePost creates a new blog post stamped with today's date. The author ID
// must be provided by the caller.
func (s *PostService) CreatePost(ctx context.Context, req *CreatePostRequest) (*Post, error) {
	v := common.NewValidator()
	validateTitle(v, req.Title)
	validateSubtitle(v, req.Subtitle)
	validateBody(v, req.Body)
	validateImgURL(v, req.ImgURL)
	validateInt(v, req.AuthorID, "author_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	post := &Post{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Date:     time.Now().Format(DateFormat),
		Body:     req.Body,
		ImgURL:   req.ImgURL,
		AuthorID: req.AuthorID,
	}

	if err := s.m.insert(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// GetPostByID returns a blog post by its ID.
func (s *PostService) GetPostByID(ctx context.Context, id int) (*Post, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getPostById(ctx, id)
}

// GetPosts returns all blog posts.
func (s *PostService) GetPosts(ctx context.Context) ([]Post, error) {
	return s.m.getPosts(ctx)
}

type UpdatePostRequest struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Body     string `json:"body"`
	ImgURL   string `json:"img_url"`
	AuthorID int    `json:"author_id"`
}

// UpdatePost overwrites everything except the publish date, which keeps the
// value stamped at creation.
func (s *PostService) UpdatePost(ctx context.Context, req *UpdatePostRequest) error {
	v := common.NewValidator()
	validateInt(v, req.ID, "id")
	validateTitle(v, req.Title)
	validateSubtitle(v, req.Subtitle)
	validateBody(v, req.Body)
	validateImgURL(v, req.ImgURL)
	validateInt(v, req.AuthorID, "author_id")
	if !v.Valid() {
		return v.ValidationError()
	}

	post := &Post{
		ID:       req.ID,
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Body:     req.Body,
		ImgURL:   req.ImgURL,
		AuthorID: req.AuthorID,
	}

	return s.m.updatePost(ctx, post)
}

// DeletePost deletes a blog post together with its comments.
func (s *PostService) DeletePost(ctx context.Context, id int) error {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return v.ValidationError()
	}

	return s.m.deletePost(ctx, id)
}

// AddComment creates a comment on a post. The posted time is set here, never
// taken from the submitter.
func (s *PostService) AddComment(ctx context.Context, text string, postID, authorID int) (*Comment, error) {
	v := common.NewValidator()
	validateCommentText(v, text)
	validateInt(v, postID, "post_id")
	validateInt(v, authorID, "author_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	comment := &Comment{
		Text:       text,
		PostedTime: time.Now(),
		PostID:     postID,
		AuthorID:   authorID,
	}

	if err := s.m.insertComment(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// GetComments returns a post's comments in posting order, each with a
// freshly computed relative-age string.
func (s *PostService) GetComments(ctx context.Context, postID int) ([]Comment, error) {
	v := common.NewValidator()
	validateInt(v, postID, "post_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	comments, err := s.m.getCommentsByPostId(ctx, postID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for i := range comments {
		comments[i].Age = timeAgo(comments[i].PostedTime, now)
	}

	return comments, nil
}

// GetCommentByID fetches the exact comment addressed by id, so ownership
// checks compare against the right row even when the user has other comments.
func (s *PostService) GetCommentByID(ctx context.Context, id int) (*Comment, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getCommentById(ctx, id)
}

// DeleteComment deletes a single comment. The caller is responsible for the
// ownership check.
func (s *PostService) DeleteComment(ctx context.Context, id int) error {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return v.ValidationError()
	}

	return s.m.deleteComment(ctx, id)
}

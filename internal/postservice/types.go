package postservice

import (
	"database/sql"
	"time"

	"github.com/sayurimoto/inkwell/internal/userservice"
)

type Post struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	// Date is the publish date as displayed, e.g. "August 29, 2026". It is
	// stamped once at creation and never refreshed by edits.
	Date string `json:"date"`
	// Body may contain markup produced by the post editor.
	Body     string           `json:"body"`
	ImgURL   string           `json:"img_url"`
	AuthorID int              `json:"author_id"`
	Author   userservice.User `json:"author"`
}

type Comment struct {
	ID         int              `json:"id"`
	Text       string           `json:"text"`
	PostedTime time.Time        `json:"posted_time"`
	AuthorID   int              `json:"author_id"`
	PostID     int              `json:"post_id"`
	Author     userservice.User `json:"author"`
	// Age is the relative-age string ("2 hours ago"), recomputed on every
	// read rather than stored.
	Age string `json:"age"`
}

type PostModel struct {
	db *sql.DB
}

type PostService struct {
	m *PostModel
}

package userservice

import (
	"database/sql"
	"time"

	"github.com/sayurimoto/inkwell/internal/common"
)

type Role string

const (
	// The first registered user becomes the administrator; everyone after
	// that is a regular user.
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"

	SessionTokenTime time.Duration = 7 * 24 * time.Hour
	UserCacheTime    time.Duration = 5 * time.Minute
)

var (
	AnonymousUser = User{}
)

type UserService struct {
	m *DBModel
	c *common.Cache
}

type DBModel struct {
	db *sql.DB
}

type User struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password Password `json:"-"`
	Role     Role     `json:"role"`
}

type Password struct {
	Plain string `json:"-"`
	hash  []byte `json:"-"`
}

// Session is a server-side login session. Only the SHA-256 hash of the
// token is stored; the plaintext goes into the signed cookie.
type Session struct {
	Plain  string    `json:"token"`
	Hash   []byte    `json:"-"`
	UserID int       `json:"-"`
	Expiry time.Time `json:"expiry"`
}

package userservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sayurimoto/inkwell/internal/common"
)

var (
	ErrAuthenticationFailure = fmt.Errorf("invalid credentials")
)

func NewUserService(db *sql.DB, c *common.Cache) *UserService {
	return &UserService{
		m: newUserModel(db),
		c: c,
	}
}

// RegisterUser creates a new user account and logs it in. The first account
// ever created becomes the administrator. Returns the user together with a
// fresh login session.
func (s *UserService) RegisterUser(ctx context.Context, name, email, password string) (*User, *Session, error) {
	// Perform validation
	v := common.NewValidator()
	validateName(v, name)
	validateEmail(v, email)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, nil, v.ValidationError()
	}

	u := User{
		Name:     name,
		Email:    email,
		Password: Password{Plain: password},
	}

	// Set the password hash
	err := u.Password.set(u.Password.Plain)
	if err != nil {
		return nil, nil, err
	}

	// Insert the user into the database
	err = s.m.insertUser(ctx, &u)
	if err != nil {
		return nil, nil, err
	}

	session, err := s.m.createSession(ctx, u.ID, SessionTokenTime)
	if err != nil {
		return nil, nil, err
	}

	return &u, session, nil
}

// LoginUser logs in a user by email and returns a fresh session. Unknown
// email and wrong password both map to ErrAuthenticationFailure so the caller
// cannot tell registered emails apart from unregistered ones.
func (s *UserService) LoginUser(ctx context.Context, email, password string) (*User, *Session, error) {
	v := common.NewValidator()
	v.Check(email != "", "email", "must be provided")
	v.Check(password != "", "password", "must be provided")
	if !v.Valid() {
		return nil, nil, v.ValidationError()
	}

	// Get the user from the database
	user, err := s.m.getUserByEmail(ctx, email)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, nil, ErrAuthenticationFailure
		default:
			return nil, nil, err
		}
	}

	// Compare the password hash
	ok, err := user.Password.compare(password)
	if err != nil {
		return nil, nil, err
	}

	if !ok {
		return nil, nil, ErrAuthenticationFailure
	}

	session, err := s.m.createSession(ctx, user.ID, SessionTokenTime)
	if err != nil {
		return nil, nil, err
	}

	return user, session, nil
}

// GetUserBySessionToken resolves a session token to the user it belongs to.
// Expired or unknown tokens return ErrNotFound.
func (s *UserService) GetUserBySessionToken(ctx context.Context, token string) (*User, error) {
	v := common.NewValidator()
	ValidateToken(v, token)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	hash := HashToken(token)

	key := common.CacheKeyUserBySessionToken(hash)
	if cached, ok := s.c.Get(key); ok {
		return cached.(*User), nil
	}

	user, err := s.m.getUserBySessionHash(ctx, hash)
	if err != nil {
		return nil, err
	}

	s.c.Set(key, user, UserCacheTime)

	return user, nil
}

// LogoutUser deletes the session behind the token. Unknown tokens are a
// no-op.
func (s *UserService) LogoutUser(ctx context.Context, token string) error {
	v := common.NewValidator()
	ValidateToken(v, token)
	if !v.Valid() {
		return v.ValidationError()
	}

	hash := HashToken(token)

	if err := s.m.deleteSession(ctx, hash); err != nil {
		return err
	}

	s.c.Delete(common.CacheKeyUserBySessionToken(hash))

	return nil
}

// GetUserByID is used by handlers that only hold a user id. Lookups go
// through the same short-lived cache as session resolution.
func (s *UserService) GetUserByID(ctx context.Context, id int) (*User, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	key := common.CacheKeyUserByID(id)
	if cached, ok := s.c.Get(key); ok {
		return cached.(*User), nil
	}

	user, err := s.m.getUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.c.Set(key, user, UserCacheTime)

	return user, nil
}

func (u *User) IsAnonymous() bool {
	return u == &AnonymousUser
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

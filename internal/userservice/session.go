package userservice

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/base32"
	"errors"
	"time"
)

func HashToken(token string) []byte {
	hash := sha256.Sum256([]byte(token))
	return hash[:]
}

func newSession(userID int, ttl time.Duration) (*Session, error) {
	randomBytes := make([]byte, 16)
	_, err := rand.Read(randomBytes)
	if err != nil {
		return nil, err
	}

	session := &Session{
		Plain:  base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes),
		UserID: userID,
		Expiry: time.Now().Add(ttl),
	}

	session.Hash = HashToken(session.Plain)

	return session, nil
}

func (m *DBModel) insertSession(ctx context.Context, session *Session) error {
	query := `
		INSERT INTO sessions (hash, user_id, expiry)
		VALUES ($1, $2, $3)`

	_, err := m.db.ExecContext(ctx, query, session.Hash, session.UserID, session.Expiry)
	return err
}

func (m *DBModel) createSession(ctx context.Context, userID int, ttl time.Duration) (*Session, error) {
	session, err := newSession(userID, ttl)
	if err != nil {
		return nil, err
	}

	err = m.insertSession(ctx, session)
	if err != nil {
		return nil, err
	}

	return session, nil
}

func (m *DBModel) getUserBySessionHash(ctx context.Context, hash []byte) (*User, error) {
	var u User

	query := `
		SELECT u.id, u.name, u.email, u.role
		FROM users u
		INNER JOIN sessions s ON u.id = s.user_id
		WHERE s.hash = $1 AND s.expiry > $2`

	err := m.db.QueryRowContext(ctx, query, hash, time.Now()).Scan(&u.ID, &u.Name, &u.Email, &u.Role)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}

func (m *DBModel) deleteSession(ctx context.Context, hash []byte) error {
	query := `
		DELETE FROM sessions
		WHERE hash = $1`

	_, err := m.db.ExecContext(ctx, query, hash)
	return err
}

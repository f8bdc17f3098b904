// Package auth manages identity against the hosted backend: magic-link and
// password sign-in, session tokens, and a session-change stream the sync
// reconciler subscribes to. The auth transport itself (email delivery, token
// verification windows) follows the hosted service's contract; this package
// is the client half.
package auth

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/adityarawat/prepometer/internal/logger"
	"github.com/adityarawat/prepometer/internal/models"
)

// Event is published on every session change. Identity is zero when the
// session ended.
type Event struct {
	Identity models.Identity
}

var (
	ErrNoSession      = errors.New("no active session")
	ErrInvalidCode    = errors.New("invalid or expired sign-in code")
	ErrBadCredentials = errors.New("invalid email or password")
)

// linkTTL is how long a magic-link code stays valid.
const linkTTL = 15 * time.Minute

const authSchema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS magic_tokens (
	id          BIGSERIAL PRIMARY KEY,
	email       TEXT NOT NULL,
	token       TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	consumed_at TIMESTAMPTZ
);
CREATE TABLE IF NOT EXISTS sessions (
	token      TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL REFERENCES users (id),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Session is the process-wide auth capability. It is constructed once at
// startup and injected wherever identity matters; there is no hidden
// singleton.
type Session struct {
	db     *sql.DB
	mailer Mailer

	mu       sync.Mutex
	identity models.Identity
	token    string
	subs     []chan Event
}

// NewSession wires the capability against the shared backend database.
// mailer may be nil when magic-link sign-in is not configured.
func NewSession(db *sql.DB, mailer Mailer) (*Session, error) {
	if _, err := db.Exec(authSchema); err != nil {
		return nil, fmt.Errorf("failed to ensure auth schema: %w", err)
	}
	return &Session{db: db, mailer: mailer}, nil
}

// Current returns the signed-in identity, or a zero Identity when anonymous.
func (s *Session) Current() models.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

// Token returns the active session token, or "".
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Subscribe returns a channel receiving session-change events. The channel
// is buffered; a slow consumer drops events rather than blocking sign-in.
func (s *Session) Subscribe() <-chan Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan Event, 4)
	s.subs = append(s.subs, ch)
	return ch
}

func (s *Session) publish(ev Event) {
	s.mu.Lock()
	subs := make([]chan Event, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()
	for _, ch := range subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Resume validates a stored session token against the backend. A failed
// check is not an error to the caller; the app simply stays anonymous.
func (s *Session) Resume(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}
	row := s.db.QueryRowContext(ctx, `
SELECT u.id, u.email FROM sessions s JOIN users u ON u.id = s.user_id
WHERE s.token = $1`, token)

	var id models.Identity
	if err := row.Scan(&id.UserID, &id.Email); err != nil {
		if err != sql.ErrNoRows {
			logger.Warn("Session check failed", "error", err)
		}
		return false
	}

	s.mu.Lock()
	s.identity = id
	s.token = token
	s.mu.Unlock()
	s.publish(Event{Identity: id})
	return true
}

// RequestLink emails a one-time sign-in code to the address, creating the
// account if it does not exist yet.
func (s *Session) RequestLink(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if s.mailer == nil {
		return fmt.Errorf("email delivery is not configured")
	}

	if _, err := s.ensureUser(ctx, email, ""); err != nil {
		return err
	}

	code := generateToken()
	if _, err := s.db.ExecContext(ctx, `
INSERT INTO magic_tokens (email, token) VALUES ($1, $2)`, email, code); err != nil {
		return fmt.Errorf("failed to create sign-in token: %w", err)
	}

	if err := s.mailer.SendSignInCode(email, code); err != nil {
		return fmt.Errorf("failed to send sign-in email: %w", err)
	}
	logger.Info("Sign-in code sent", "email", email)
	return nil
}

// VerifyCode exchanges an emailed code for a session. Codes are single-use
// and expire after 15 minutes.
func (s *Session) VerifyCode(ctx context.Context, email, code string) (models.Identity, error) {
	email = normalizeEmail(email)
	row := s.db.QueryRowContext(ctx, `
SELECT id, created_at, consumed_at FROM magic_tokens
WHERE email = $1 AND token = $2
ORDER BY created_at DESC LIMIT 1`, email, strings.TrimSpace(code))

	var tokenID int64
	var createdAt time.Time
	var consumedAt sql.NullTime
	if err := row.Scan(&tokenID, &createdAt, &consumedAt); err != nil {
		return models.Identity{}, ErrInvalidCode
	}
	if consumedAt.Valid || time.Since(createdAt) > linkTTL {
		return models.Identity{}, ErrInvalidCode
	}

	if _, err := s.db.ExecContext(ctx, `
UPDATE magic_tokens SET consumed_at = now() WHERE id = $1`, tokenID); err != nil {
		return models.Identity{}, fmt.Errorf("failed to consume sign-in token: %w", err)
	}

	userID, err := s.ensureUser(ctx, email, "")
	if err != nil {
		return models.Identity{}, err
	}
	return s.openSession(ctx, models.Identity{UserID: userID, Email: email})
}

// SignInWithPassword checks the stored bcrypt hash and opens a session.
func (s *Session) SignInWithPassword(ctx context.Context, email, password string) (models.Identity, error) {
	email = normalizeEmail(email)
	row := s.db.QueryRowContext(ctx, `
SELECT id, password_hash FROM users WHERE email = $1`, email)

	var userID string
	var hash sql.NullString
	if err := row.Scan(&userID, &hash); err != nil {
		return models.Identity{}, ErrBadCredentials
	}
	if !hash.Valid || bcrypt.CompareHashAndPassword([]byte(hash.String), []byte(password)) != nil {
		return models.Identity{}, ErrBadCredentials
	}
	return s.openSession(ctx, models.Identity{UserID: userID, Email: email})
}

// Register creates an account with a password so password sign-in works
// alongside magic links.
func (s *Session) Register(ctx context.Context, email, password string) (models.Identity, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return models.Identity{}, fmt.Errorf("email and password are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.Identity{}, fmt.Errorf("failed to hash password: %w", err)
	}
	userID, err := s.ensureUser(ctx, email, string(hash))
	if err != nil {
		return models.Identity{}, err
	}
	return s.openSession(ctx, models.Identity{UserID: userID, Email: email})
}

// SignOut deletes the remote session and publishes the anonymous state.
// Local data is retained untouched.
func (s *Session) SignOut(ctx context.Context) error {
	s.mu.Lock()
	token := s.token
	s.identity = models.Identity{}
	s.token = ""
	s.mu.Unlock()

	if token != "" {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = $1`, token); err != nil {
			logger.Warn("Failed to delete remote session", "error", err)
		}
	}
	s.publish(Event{})
	return nil
}

func (s *Session) openSession(ctx context.Context, id models.Identity) (models.Identity, error) {
	token := generateToken()
	if _, err := s.db.ExecContext(ctx, `
INSERT INTO sessions (token, user_id) VALUES ($1, $2)`, token, id.UserID); err != nil {
		return models.Identity{}, fmt.Errorf("failed to create session: %w", err)
	}

	s.mu.Lock()
	s.identity = id
	s.token = token
	s.mu.Unlock()
	s.publish(Event{Identity: id})
	return id, nil
}

// ensureUser returns the user id for the email, creating the row if needed.
// A non-empty hash overwrites any previously stored password hash.
func (s *Session) ensureUser(ctx context.Context, email, hash string) (string, error) {
	var userID string
	err := s.db.QueryRowContext(ctx, `SELECT id FROM users WHERE email = $1`, email).Scan(&userID)
	if err == sql.ErrNoRows {
		userID = uuid.NewString()
		var pw interface{}
		if hash != "" {
			pw = hash
		}
		if _, err := s.db.ExecContext(ctx, `
INSERT INTO users (id, email, password_hash) VALUES ($1, $2, $3)`, userID, email, pw); err != nil {
			return "", fmt.Errorf("failed to create user: %w", err)
		}
		return userID, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up user: %w", err)
	}
	if hash != "" {
		if _, err := s.db.ExecContext(ctx, `
UPDATE users SET password_hash = $1 WHERE id = $2`, hash, userID); err != nil {
			return "", fmt.Errorf("failed to update password: %w", err)
		}
	}
	return userID, nil
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func generateToken() string {
	b := make([]byte, 32)
	rand.Read(b)
	return hex.EncodeToString(b)
}

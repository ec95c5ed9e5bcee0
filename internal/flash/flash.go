// Package flash carries one-shot notices to the next rendered page. Messages
// travel in a cookie holding an HS256 token signed with the app secret, so a
// client cannot forge them.
package flash

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	CategorySuccess = "success"
	CategoryError   = "error"

	cookieName = "flash"
	issuer     = "tasktracker"
	audience   = "tasktracker-flash"
)

var ErrInvalidToken = errors.New("invalid or expired flash token")

// Message is a single (text, category) notice.
type Message struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

func Error(text string) Message   { return Message{Text: text, Category: CategoryError} }
func Success(text string) Message { return Message{Text: text, Category: CategorySuccess} }

// Claims is the signed payload of the flash cookie.
type Claims struct {
	jwt.RegisteredClaims
	Messages []Message `json:"messages"`
}

type contextKey struct{}

// Store signs and reads flash cookies.
type Store struct {
	secret []byte
	ttl    time.Duration
}

// NewStore creates a Store. Messages not shown within ttl are dropped.
func NewStore(secret string, ttl time.Duration) *Store {
	return &Store{secret: []byte(secret), ttl: ttl}
}

// Encode signs msgs into a token string.
func (s *Store) Encode(msgs []Message) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Messages: msgs,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Decode validates token and returns the messages it carries.
func (s *Store) Decode(token string) ([]Message, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithAudience(audience))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims.Messages, nil
}

// Add queues msgs for the next request that renders a page. It is meant to be
// followed by a redirect.
func (s *Store) Add(w http.ResponseWriter, msgs ...Message) error {
	if len(msgs) == 0 {
		return nil
	}
	token, err := s.Encode(msgs)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Middleware pops any pending flash cookie into the request context and
// expires it, so each message is shown at most once.
func (s *Store) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(cookieName)
		if err != nil || c.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     cookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		msgs, err := s.Decode(c.Value)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, msgs)))
	})
}

// FromContext returns the messages popped by Middleware for this request.
func FromContext(ctx context.Context) []Message {
	msgs, _ := ctx.Value(contextKey{}).([]Message)
	return msgs
}

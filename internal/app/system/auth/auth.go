// Package auth implements the token gate for private routes: HS256 JWT
// issue/verify, password hashing, and the middleware that resolves a bearer
// token to the calling user.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// TokenUser is the caller identity injected into r.Context() by
// LoadTokenUser.
type TokenUser struct {
	ID primitive.ObjectID
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// ErrInvalidToken is returned by Verify for any token that fails parsing,
// signature, or expiry checks.
var ErrInvalidToken = errors.New("invalid or expired token")

// Tokens issues and verifies the HS256 JWTs that carry user identity. The
// subject claim holds the user's ObjectID hex.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	log    *zap.Logger
}

// NewTokens constructs a Tokens with the given signing secret and lifetime.
func NewTokens(secret string, ttl time.Duration, logger *zap.Logger) (*Tokens, error) {
	if secret == "" {
		return nil, errors.New("auth: signing secret must not be empty")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Tokens{secret: []byte(secret), ttl: ttl, log: logger}, nil
}

// Issue signs a token for the given user ID.
func (t *Tokens) Issue(userID primitive.ObjectID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID.Hex(),
		"iat": now.Unix(),
		"exp": now.Add(t.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Verify parses and validates a token string and returns the user ID it
// carries. Any failure collapses to ErrInvalidToken; the caller gets no
// detail about why.
func (t *Tokens) Verify(tokenString string) (primitive.ObjectID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return primitive.NilObjectID, ErrInvalidToken
	}
	sub, err := token.Claims.GetSubject()
	if err != nil {
		return primitive.NilObjectID, ErrInvalidToken
	}
	id, err := primitive.ObjectIDFromHex(sub)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidToken
	}
	return id, nil
}

// CurrentUser returns the caller identity and a found flag.
func CurrentUser(r *http.Request) (*TokenUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*TokenUser)
	return u, ok
}

func withUser(r *http.Request, u *TokenUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// WithTestUser injects a caller identity directly into the request context.
// Test helper; bypasses token parsing.
func WithTestUser(r *http.Request, u *TokenUser) *http.Request {
	return withUser(r, u)
}

// LoadTokenUser injects the user into context when the request carries a
// valid "Authorization: Bearer <token>" header. Requests without a token
// pass through anonymously; RequireSignedIn decides whether that matters.
func (t *Tokens) LoadTokenUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}
		id, err := t.Verify(raw)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, withUser(r, &TokenUser{ID: id}))
	})
}

// RequireSignedIn ensures there is a user in context (set by LoadTokenUser).
// API callers without one get a 401 JSON body.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"msg":"No token, authorization denied"}`))
	})
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// HashPassword hashes a plaintext password with bcrypt at the given cost.
// Cost values outside bcrypt's range fall back to the library default.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored bcrypt hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Package token implements the reversible session encoding: base64 over a
// percent-encoded JSON rendering of the user record. It is obfuscation for
// the persisted slot, not encryption, and must never be treated as a
// confidentiality boundary.
package token

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/probooking/probooking-api/internal/core/domain"
)

// Codec encodes and decodes session slot tokens. Stateless and safe for
// concurrent use.
type Codec struct{}

func NewCodec() Codec {
	return Codec{}
}

// Encode renders user as percent-encoded JSON wrapped in standard base64.
func (Codec) Encode(user domain.User) (string, error) {
	raw, err := json.Marshal(user)
	if err != nil {
		return "", fmt.Errorf("encode session: %w", err)
	}
	return base64.StdEncoding.EncodeToString([]byte(url.QueryEscape(string(raw)))), nil
}

// payload mirrors domain.User with pointer fields so missing keys are
// distinguishable from zero values.
type payload struct {
	ID        *string `json:"id"`
	Email     *string `json:"email"`
	Name      *string `json:"name"`
	Role      *string `json:"role"`
	Avatar    *string `json:"avatar"`
	IsActive  *bool   `json:"isActive"`
	CreatedAt *string `json:"createdAt"`
	LastLogin *string `json:"lastLogin"`
}

// Decode is the inverse of Encode. Any malformed input — bad base64, bad
// percent-encoding, bad JSON, a missing field, an unknown role, or an
// unparseable timestamp — yields domain.ErrMalformedSession. Callers treat
// that as "no session", never as a fatal condition.
func (Codec) Decode(tok string) (domain.User, error) {
	decoded, err := base64.StdEncoding.DecodeString(tok)
	if err != nil {
		return domain.User{}, fmt.Errorf("decode session: %w: %v", domain.ErrMalformedSession, err)
	}

	unescaped, err := url.QueryUnescape(string(decoded))
	if err != nil {
		return domain.User{}, fmt.Errorf("decode session: %w: %v", domain.ErrMalformedSession, err)
	}

	var p payload
	if err := json.Unmarshal([]byte(unescaped), &p); err != nil {
		return domain.User{}, fmt.Errorf("decode session: %w: %v", domain.ErrMalformedSession, err)
	}

	if p.ID == nil || p.Email == nil || p.Name == nil || p.Role == nil ||
		p.Avatar == nil || p.IsActive == nil || p.CreatedAt == nil || p.LastLogin == nil {
		return domain.User{}, fmt.Errorf("decode session: %w: missing field", domain.ErrMalformedSession)
	}

	role := domain.Role(*p.Role)
	if !role.Valid() {
		return domain.User{}, fmt.Errorf("decode session: %w: role %q", domain.ErrMalformedSession, *p.Role)
	}

	createdAt, err := parseTimestamp(*p.CreatedAt)
	if err != nil {
		return domain.User{}, fmt.Errorf("decode session: %w: createdAt: %v", domain.ErrMalformedSession, err)
	}
	lastLogin, err := parseTimestamp(*p.LastLogin)
	if err != nil {
		return domain.User{}, fmt.Errorf("decode session: %w: lastLogin: %v", domain.ErrMalformedSession, err)
	}

	return domain.User{
		ID:        *p.ID,
		Email:     *p.Email,
		Name:      *p.Name,
		Role:      role,
		Avatar:    *p.Avatar,
		IsActive:  *p.IsActive,
		CreatedAt: createdAt,
		LastLogin: lastLogin,
	}, nil
}

// parseTimestamp rehydrates an ISO-8601 string into a time.Time.
func parseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

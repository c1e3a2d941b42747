package token

import (
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/probooking/probooking-api/internal/core/domain"
)

func sampleUser() domain.User {
	return domain.User{
		ID:        "1",
		Email:     "john@probooking.com",
		Name:      "John Professional",
		Role:      domain.RoleProfessional,
		Avatar:    "https://i.pravatar.cc/150?img=12",
		IsActive:  true,
		CreatedAt: time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC),
		LastLogin: time.Date(2026, time.August, 29, 14, 30, 12, 345678000, time.UTC),
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	codec := NewCodec()
	want := sampleUser()

	tok, err := codec.Encode(want)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := codec.Decode(tok)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if got.ID != want.ID || got.Email != want.Email || got.Name != want.Name ||
		got.Role != want.Role || got.Avatar != want.Avatar || got.IsActive != want.IsActive {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
	// Timestamps compare as instants, not as strings.
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Fatalf("createdAt: got %v, want %v", got.CreatedAt, want.CreatedAt)
	}
	if !got.LastLogin.Equal(want.LastLogin) {
		t.Fatalf("lastLogin: got %v, want %v", got.LastLogin, want.LastLogin)
	}
}

func TestCodec_Decode_Malformed(t *testing.T) {
	codec := NewCodec()

	cases := map[string]string{
		"not base64":            "!!!not-base64!!!",
		"base64 of garbage":     base64.StdEncoding.EncodeToString([]byte("not json at all")),
		"json missing fields":   base64.StdEncoding.EncodeToString([]byte(`{"id":"1","email":"a@b.c"}`)),
		"unknown role":          base64.StdEncoding.EncodeToString([]byte(`{"id":"1","email":"a@b.c","name":"A","role":"root","avatar":"x","isActive":true,"createdAt":"2024-01-15T09:00:00Z","lastLogin":"2024-01-15T09:00:00Z"}`)),
		"unparseable timestamp": base64.StdEncoding.EncodeToString([]byte(`{"id":"1","email":"a@b.c","name":"A","role":"client","avatar":"x","isActive":true,"createdAt":"yesterday","lastLogin":"2024-01-15T09:00:00Z"}`)),
		"empty":                 "",
	}

	for name, tok := range cases {
		if _, err := codec.Decode(tok); !errors.Is(err, domain.ErrMalformedSession) {
			t.Errorf("%s: expected ErrMalformedSession, got %v", name, err)
		}
	}
}

func TestCodec_TokenIsReversibleText(t *testing.T) {
	codec := NewCodec()
	tok, err := codec.Encode(sampleUser())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	// The slot value is plain base64; anyone holding it can read it back.
	if _, err := base64.StdEncoding.DecodeString(tok); err != nil {
		t.Fatalf("token is not standard base64: %v", err)
	}
}

package ports

import "github.com/probooking/probooking-api/internal/core/domain"

// SessionCodec converts a user record to a storage-safe string and back.
// Implementations are pure transforms; Decode returns an error wrapping
// domain.ErrMalformedSession for any input that does not reproduce a full
// user record.
type SessionCodec interface {
	Encode(user domain.User) (string, error)
	Decode(token string) (domain.User, error)
}

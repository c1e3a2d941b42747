package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/probooking/probooking-api/internal/core/domain"
	"github.com/probooking/probooking-api/internal/core/ports"
)

// AttemptLimiter abstracts the failed-login throttle (Redis). The service
// fails open: limiter errors are logged and the login proceeds.
type AttemptLimiter interface {
	TooMany(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// AuditSink receives login events without blocking the login path.
type AuditSink interface {
	Enqueue(event domain.LoginEvent)
}

// Options tunes the session state machine.
type Options struct {
	// LoginDelay simulates upstream latency before the credential check.
	// Zero disables it. The delay honors context cancellation.
	LoginDelay time.Duration
	// LoginTimeout bounds a whole login attempt. Zero disables it.
	LoginTimeout time.Duration
	// ErrorDismissAfter auto-clears the published error message. Zero keeps
	// errors until ClearError or the next submit.
	ErrorDismissAfter time.Duration
	// StrictPasswords additionally compares the submitted password against
	// the stored hash. Off by default: the legacy flow matched on email only.
	StrictPasswords bool
}

// AuthService is the session state machine. A single mutex serializes all
// state transitions; the slot store is written by this service only.
type AuthService struct {
	creds   ports.CredentialStore
	codec   ports.SessionCodec
	store   ports.SessionStore
	limiter AttemptLimiter // optional
	audit   AuditSink      // optional
	opts    Options
	log     zerolog.Logger

	now func() time.Time

	mu     sync.Mutex
	state  domain.SessionState
	user   *domain.User
	errMsg string
	errGen uint64
}

func NewAuthService(
	creds ports.CredentialStore,
	codec ports.SessionCodec,
	store ports.SessionStore,
	opts Options,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		creds: creds,
		codec: codec,
		store: store,
		opts:  opts,
		log:   log,
		now:   time.Now,
		state: domain.StateUnauthenticated,
	}
}

// WithLimiter attaches a failed-attempt limiter. Call before serving traffic.
func (s *AuthService) WithLimiter(l AttemptLimiter) *AuthService {
	s.limiter = l
	return s
}

// WithAudit attaches an audit sink. Call before serving traffic.
func (s *AuthService) WithAudit(a AuditSink) *AuthService {
	s.audit = a
	return s
}

// Login validates the submitted credentials, matches them against the fixed
// record for the requested role, and on success persists and publishes the
// new session. A slot write failure does not fail the login; the session
// simply will not survive a restart.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	if in.Email == "" || in.Password == "" {
		// Local validation: never reaches the credential store and never
		// changes state.
		s.setError("Email and password are required")
		return nil, domain.ErrMissingCredentials
	}

	s.mu.Lock()
	switch s.state {
	case domain.StateAuthenticating:
		s.mu.Unlock()
		return nil, domain.ErrLoginInProgress
	case domain.StateAuthenticated:
		s.mu.Unlock()
		return nil, domain.ErrActiveSession
	}
	if !s.state.CanTransitionTo(domain.StateAuthenticating) {
		s.mu.Unlock()
		return nil, domain.ErrInvalidTransition
	}
	s.state = domain.StateAuthenticating
	s.errMsg = ""
	s.mu.Unlock()

	if s.opts.LoginTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.LoginTimeout)
		defer cancel()
	}

	result, err := s.authenticate(ctx, in)
	if err != nil {
		s.failLogin(in, err)
		return nil, err
	}

	s.mu.Lock()
	s.state = domain.StateAuthenticated
	user := result.User
	s.user = &user
	s.errMsg = ""
	s.mu.Unlock()

	if s.limiter != nil {
		if resetErr := s.limiter.Reset(ctx, in.Email); resetErr != nil {
			s.log.Warn().Err(resetErr).Str("email", in.Email).Msg("failed to reset attempt counter")
		}
	}
	s.recordAudit(in, true, "")

	s.log.Info().
		Str("email", user.Email).
		Str("role", string(user.Role)).
		Bool("persisted", result.Persisted).
		Msg("login succeeded")

	return result, nil
}

// authenticate runs the unlocked portion of a login: simulated latency,
// attempt limiting, credential match, token encode, slot write.
func (s *AuthService) authenticate(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	if s.opts.LoginDelay > 0 {
		timer := time.NewTimer(s.opts.LoginDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, s.ctxError(ctx)
		case <-timer.C:
		}
	}
	if ctx.Err() != nil {
		return nil, s.ctxError(ctx)
	}

	if s.limiter != nil {
		blocked, err := s.limiter.TooMany(ctx, in.Email)
		if err != nil {
			s.log.Warn().Err(err).Str("email", in.Email).Msg("attempt limiter check failed, proceeding")
		} else if blocked {
			return nil, domain.ErrTooManyAttempts
		}
	}

	record, err := s.creds.Lookup(in.Role)
	if err != nil {
		return nil, err
	}

	if record.Email != in.Email {
		return nil, domain.ErrInvalidCredentials
	}
	if s.opts.StrictPasswords {
		if bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(in.Password)) != nil {
			return nil, domain.ErrInvalidCredentials
		}
	}

	user := domain.User{
		ID:        record.ID,
		Email:     record.Email,
		Name:      record.Name,
		Role:      record.Role,
		Avatar:    record.Avatar,
		IsActive:  true,
		CreatedAt: record.CreatedAt,
		LastLogin: s.now().UTC(),
	}

	tok, err := s.codec.Encode(user)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	persisted := true
	if err := s.store.Save(ctx, tok); err != nil {
		// The session lives on in memory; it just won't survive a restart.
		persisted = false
		s.log.Warn().Err(err).Msg("session slot write failed, session is in-memory only")
	}

	return &ports.LoginResult{User: user, Token: tok, Persisted: persisted}, nil
}

// failLogin reverts to unauthenticated and publishes the user-facing error.
func (s *AuthService) failLogin(in ports.LoginInput, cause error) {
	s.mu.Lock()
	s.state = domain.StateUnauthenticated
	s.user = nil
	s.mu.Unlock()

	reason := "invalid credentials"
	msg := "Invalid credentials"
	switch {
	case errors.Is(cause, domain.ErrUnknownRole):
		reason = "unknown role"
	case errors.Is(cause, domain.ErrTooManyAttempts):
		reason = "too many attempts"
		msg = "Too many failed attempts, please try again later"
	case errors.Is(cause, domain.ErrLoginTimeout):
		reason = "timeout"
		msg = "Login timed out, please try again"
	case errors.Is(cause, context.Canceled):
		// Caller went away; revert without surfacing an error.
		return
	}

	s.setError(msg)
	s.recordAudit(in, false, reason)

	if s.limiter != nil && errors.Is(cause, domain.ErrInvalidCredentials) {
		// The limiter write must not depend on the (possibly expired) login
		// context.
		if err := s.limiter.RecordFailure(context.Background(), in.Email); err != nil {
			s.log.Warn().Err(err).Str("email", in.Email).Msg("failed to record login failure")
		}
	}

	s.log.Info().
		Str("email", in.Email).
		Str("role", string(in.Role)).
		Str("reason", reason).
		Msg("login failed")
}

// Logout clears the published session and the persisted slot. Calling it
// again on an empty session is a no-op.
func (s *AuthService) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.state = domain.StateUnauthenticated
	s.user = nil
	s.errMsg = ""
	s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		// The in-memory session is gone either way.
		s.log.Warn().Err(err).Msg("session slot clear failed")
	}
	return nil
}

// Restore rehydrates a persisted session at startup. A corrupt slot is
// cleared and the service stays logged out; nothing is surfaced to the user.
func (s *AuthService) Restore(ctx context.Context) (*domain.User, bool) {
	tok, err := s.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNoSession) {
			s.log.Warn().Err(err).Msg("session slot read failed")
		}
		return nil, false
	}

	user, err := s.codec.Decode(tok)
	if err != nil {
		s.log.Debug().Err(err).Msg("discarding corrupt session slot")
		if clearErr := s.store.Clear(ctx); clearErr != nil {
			s.log.Warn().Err(clearErr).Msg("failed to clear corrupt session slot")
		}
		return nil, false
	}

	s.mu.Lock()
	if !s.state.CanTransitionTo(domain.StateAuthenticated) {
		s.mu.Unlock()
		return nil, false
	}
	s.state = domain.StateAuthenticated
	s.user = &user
	s.mu.Unlock()

	s.log.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("session restored")
	return &user, true
}

func (s *AuthService) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *AuthService) CurrentUser() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *AuthService) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == domain.StateAuthenticated
}

func (s *AuthService) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == domain.StateAuthenticating
}

func (s *AuthService) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

func (s *AuthService) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = ""
	s.errGen++
}

// setError publishes a user-facing message and schedules its auto-dismissal.
// The generation counter keeps a stale timer from wiping a newer message.
func (s *AuthService) setError(msg string) {
	s.mu.Lock()
	s.errMsg = msg
	s.errGen++
	gen := s.errGen
	s.mu.Unlock()

	if s.opts.ErrorDismissAfter <= 0 {
		return
	}
	time.AfterFunc(s.opts.ErrorDismissAfter, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.errGen == gen {
			s.errMsg = ""
		}
	})
}

func (s *AuthService) ctxError(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return domain.ErrLoginTimeout
	}
	return ctx.Err()
}

func (s *AuthService) recordAudit(in ports.LoginInput, success bool, reason string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(domain.LoginEvent{
		ID:        uuid.NewString(),
		Email:     in.Email,
		Role:      in.Role,
		Success:   success,
		Reason:    reason,
		Timestamp: s.now().UTC(),
	})
}

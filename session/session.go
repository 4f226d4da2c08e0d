// Package session resolves a chosen name and PIN into an active user,
// creating a default profile on first entry. The PIN is compared only through
// its bcrypt digest; there is no token, expiry, or server-side verification —
// a shared-secret check suitable for low-stakes classroom use.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/zalando/go-keyring"
	"golang.org/x/crypto/bcrypt"

	"habitboard/core/storage"
	"habitboard/errorvalues"
	"habitboard/models"
)

// State tracks where the session is in the identity-resolution lifecycle.
type State int

const (
	Unauthenticated State = iota
	Resolving
	Active
)

const (
	keyringService = "Habitboard"
	keyringAccount = "last_name"
)

type Session struct {
	store storage.DocumentStore
	log   zerolog.Logger

	mu      sync.RWMutex
	state   State
	current *models.UserProfile
}

func New(store storage.DocumentStore, log zerolog.Logger) *Session {
	return &Session{
		store: store,
		log:   log.With().Str("component", "session").Logger(),
	}
}

// Enter resolves name + PIN into either the existing verified user or a newly
// created one with default state. A hash mismatch on an existing name fails
// with ErrInvalidCredential and mutates nothing.
func (s *Session) Enter(ctx context.Context, name, pin string) (*models.UserProfile, error) {
	name = strings.TrimSpace(name)
	pin = strings.TrimSpace(pin)
	if name == "" || pin == "" {
		return nil, errorvalues.ErrInvalidInput
	}

	s.setState(Resolving)

	found, err := s.store.GetUser(ctx, name)
	switch {
	case err == nil:
		if bcrypt.CompareHashAndPassword([]byte(found.CredentialHash), []byte(pin)) != nil {
			s.setState(Unauthenticated)
			return nil, errorvalues.ErrInvalidCredential
		}
		s.activate(found)

	case errors.Is(err, errorvalues.ErrNotFound):
		hash, hashErr := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
		if hashErr != nil {
			s.setState(Unauthenticated)
			return nil, hashErr
		}
		profile := models.NewUserProfile(name, string(hash))
		if putErr := s.store.PutUser(ctx, profile, storage.Replace); putErr != nil {
			s.setState(Unauthenticated)
			return nil, putErr
		}
		s.appendToRoster(ctx, name)
		s.activate(profile)

	default:
		s.setState(Unauthenticated)
		return nil, err
	}

	// Remembering the name is a convenience only; a missing keychain is fine.
	if err := keyring.Set(keyringService, keyringAccount, name); err != nil {
		s.log.Debug().Err(err).Msg("could not remember name in keyring")
	}
	return s.Current(), nil
}

// appendToRoster adds the name to the selection roster when there is room.
// A full roster, a duplicate, or a store failure all no-op silently: the
// roster only feeds the identity-selection screen.
func (s *Session) appendToRoster(ctx context.Context, name string) {
	roster, err := s.store.GetRoster(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("roster read failed")
		return
	}
	if !roster.Append(name) {
		return
	}
	if err := s.store.PutRoster(ctx, roster); err != nil {
		s.log.Warn().Err(err).Msg("roster write failed")
	}
}

// SwitchUser returns the session to Unauthenticated and forgets the
// remembered name.
func (s *Session) SwitchUser() {
	s.mu.Lock()
	s.current = nil
	s.state = Unauthenticated
	s.mu.Unlock()
	if err := keyring.Delete(keyringService, keyringAccount); err != nil {
		s.log.Debug().Err(err).Msg("could not clear remembered name")
	}
}

// Current returns the active profile, or nil outside the Active state.
func (s *Session) Current() *models.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Session) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == Active
}

// Refresh replaces the working profile copy with a pushed store snapshot.
// Every snapshot is treated as the new authoritative state.
func (s *Session) Refresh(p *models.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Active || s.current == nil || s.current.Name != p.Name {
		return
	}
	s.current = p
}

func (s *Session) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

func (s *Session) activate(p *models.UserProfile) {
	s.mu.Lock()
	s.current = p
	s.state = Active
	s.mu.Unlock()
}

// RememberedName returns the name stored on the last successful entry, if the
// host keychain has one.
func RememberedName() string {
	name, err := keyring.Get(keyringService, keyringAccount)
	if err != nil {
		return ""
	}
	return name
}

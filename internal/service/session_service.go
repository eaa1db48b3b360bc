package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"senti/internal/auth"
	"senti/internal/errors"
	"senti/internal/model"
	"senti/internal/repository"
)

// SessionService owns the process-wide session: the current identity or none.
//
// Every successful Login and Register performs one slot write and every
// Logout one slot delete; the write completes before the in-memory state
// changes, so a failed write leaves the session as it was.
type SessionService interface {
	// Restore reads the persisted record. Missing or unreadable records yield nil.
	Restore(ctx context.Context) *model.Identity
	Login(ctx context.Context, email, password string) (*model.Identity, error)
	// Register records a new credential and signs it in. An email already on
	// record fails with ErrEmailAlreadyInUse whatever the other fields are.
	// If the session write fails after the credential was recorded, the
	// credential stays and the session is left unchanged.
	Register(ctx context.Context, email, password, name string, role model.Role) (*model.Identity, error)
	Logout(ctx context.Context) error
	Current() *model.Identity
	IsAuthenticated() bool
}

type sessionService struct {
	mu          sync.Mutex
	credentials repository.CredentialRepository
	slot        auth.Slot
	codec       auth.IdentityCodec
	logger      *zap.Logger
	newID       func() string

	current *model.Identity
}

// NewSessionService creates the session and restores any persisted identity.
func NewSessionService(ctx context.Context, credentials repository.CredentialRepository, slot auth.Slot, codec auth.IdentityCodec, logger *zap.Logger) SessionService {
	s := &sessionService{
		credentials: credentials,
		slot:        slot,
		codec:       codec,
		logger:      logger,
		newID:       uuid.NewString,
	}
	s.current = s.Restore(ctx)
	if s.current != nil {
		logger.Info("session.restore", zap.String("identity_id", s.current.ID), zap.String("role", string(s.current.Role)))
	}
	return s
}

func (s *sessionService) Restore(ctx context.Context) *model.Identity {
	data, err := s.slot.Load(ctx)
	if err != nil {
		s.logger.Debug("session.restore: slot unreadable", zap.Error(err))
		return nil
	}
	if data == nil {
		return nil
	}
	identity, err := s.codec.Decode(data)
	if err != nil {
		s.logger.Debug("session.restore: record discarded", zap.Error(err))
		return nil
	}
	return identity
}

func (s *sessionService) Login(ctx context.Context, email, password string) (*model.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	identity, err := s.credentials.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx, identity); err != nil {
		return nil, err
	}
	s.current = identity

	s.logger.Info("session.login", zap.String("identity_id", identity.ID), zap.String("role", string(identity.Role)))
	return identity.Clone(), nil
}

func (s *sessionService) Register(ctx context.Context, email, password, name string, role model.Role) (*model.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.credentials.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, errors.ErrEmailAlreadyInUse
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %q", errors.ErrInvalidRole, role)
	}

	identity := &model.Identity{
		ID:    s.newID(),
		Name:  name,
		Email: email,
		Role:  role,
	}
	// Restore only accepts valid records; refuse anything it would discard.
	if err := identity.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidIdentity, err)
	}
	if err := s.credentials.Add(ctx, identity, password); err != nil {
		return nil, err
	}
	if err := s.persist(ctx, identity); err != nil {
		return nil, err
	}
	s.current = identity

	s.logger.Info("session.register", zap.String("identity_id", identity.ID), zap.String("role", string(identity.Role)))
	return identity.Clone(), nil
}

func (s *sessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.slot.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	if s.current != nil {
		s.logger.Info("session.logout", zap.String("identity_id", s.current.ID))
	}
	s.current = nil
	return nil
}

func (s *sessionService) Current() *model.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

func (s *sessionService) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

func (s *sessionService) persist(ctx context.Context, identity *model.Identity) error {
	data, err := s.codec.Encode(identity)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.slot.Save(ctx, data); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

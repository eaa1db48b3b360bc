package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "senti/internal/errors"
	"senti/internal/model"
)

const bcryptCost = 10

// CredentialRepository looks up and records sign-in credentials.
// Emails and passwords are compared exactly (case-sensitive).
type CredentialRepository interface {
	// Authenticate returns the identity for a matching email and password, or ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, password string) (*model.Identity, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	// Add records a new credential, or returns ErrEmailAlreadyInUse.
	Add(ctx context.Context, identity *model.Identity, password string) error
}

type memoryCredentialRepository struct {
	mu      sync.RWMutex
	records []model.MockCredential
}

// NewMemoryCredentialRepository builds a repository over the demo catalog.
// Registered credentials are kept for the life of the process.
func NewMemoryCredentialRepository(records []model.MockCredential) CredentialRepository {
	return &memoryCredentialRepository{records: append([]model.MockCredential(nil), records...)}
}

func (r *memoryCredentialRepository) Authenticate(ctx context.Context, email, password string) (*model.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.records {
		if rec.Email == email && rec.Password == password {
			return rec.Identity(), nil
		}
	}
	return nil, apperrors.ErrInvalidCredentials
}

func (r *memoryCredentialRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.indexOf(email) >= 0, nil
}

func (r *memoryCredentialRepository) Add(ctx context.Context, identity *model.Identity, password string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.indexOf(identity.Email) >= 0 {
		return apperrors.ErrEmailAlreadyInUse
	}
	r.records = append(r.records, model.MockCredential{
		ID:           identity.ID,
		Name:         identity.Name,
		Email:        identity.Email,
		Password:     password,
		Role:         identity.Role,
		ProfileImage: identity.ProfileImage,
	})
	return nil
}

func (r *memoryCredentialRepository) indexOf(email string) int {
	for i, rec := range r.records {
		if rec.Email == email {
			return i
		}
	}
	return -1
}

type sqlCredentialRepository struct {
	db *gorm.DB
}

// NewSQLCredentialRepository builds a GORM-backed repository storing bcrypt hashes.
func NewSQLCredentialRepository(db *gorm.DB) CredentialRepository {
	return &sqlCredentialRepository{db: db}
}

func (r *sqlCredentialRepository) Authenticate(ctx context.Context, email, password string) (*model.Identity, error) {
	var cred model.Credential
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&cred).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find credential: %w", err)
	}
	if cred.Email != email {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return cred.Identity(), nil
}

func (r *sqlCredentialRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Credential{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count credentials: %w", err)
	}
	return count > 0, nil
}

func (r *sqlCredentialRepository) Add(ctx context.Context, identity *model.Identity, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	cred := &model.Credential{
		ID:           identity.ID,
		Name:         identity.Name,
		Email:        identity.Email,
		PasswordHash: string(hash),
		Role:         identity.Role,
		ProfileImage: identity.ProfileImage,
	}
	err = r.db.WithContext(ctx).Create(cred).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.ErrEmailAlreadyInUse
	}
	if err != nil {
		return fmt.Errorf("create credential: %w", err)
	}
	return nil
}

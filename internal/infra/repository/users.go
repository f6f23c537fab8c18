/*
 * file: users.go
 * package: repository
 * description:
 *     User CRUD and credential checks. Password verification, and the
 *     hashing of a new user's plaintext password in NewUser, happen here
 *     with bcrypt. A password changed later through the `password`
 *     command is hashed by the dispatcher via ports.Credentials and
 *     stored as given by SaveUser.
 */

package repository

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/arborly/matchkeep/internal/core/apperr"
	"github.com/arborly/matchkeep/internal/core/domain"
)

func (r *GormStore) FindUserByID(id uint) (*domain.User, error) {
	var u domain.User
	if err := r.db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNoSuchUser
		}
		return nil, err
	}
	return &u, nil
}

func (r *GormStore) FindUserByEmail(email string) (*domain.User, error) {
	var u domain.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNoSuchUser
		}
		return nil, err
	}
	return &u, nil
}

func (r *GormStore) FindUserByApiKeyHash(hash string) (*domain.User, error) {
	var u domain.User
	if err := r.db.Where("api_key_hash = ?", hash).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrInvalidApiKey
		}
		return nil, err
	}
	return &u, nil
}

func (r *GormStore) FindUserByCredentials(email, password string) (*domain.User, error) {
	u, err := r.FindUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if u.PasswordHash == nil {
		return nil, apperr.ErrIncorrectCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.ErrIncorrectCredentials
	}
	return u, nil
}

// NewUser creates a user with login credentials. Rejects a taken email
// before hashing password, since hashing is the expensive step.
func (r *GormStore) NewUser(name, email, password, apiKeyHash string) (*domain.User, error) {
	if _, err := r.FindUserByEmail(email); err == nil {
		return nil, apperr.ErrEmailAlreadyTaken
	} else if !errors.Is(err, apperr.ErrNoSuchUser) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashedStr := string(hashed)
	u := &domain.User{
		Name:         name,
		Email:        &email,
		PasswordHash: &hashedStr,
		ApiKeyHash:   apiKeyHash,
	}
	if err := r.db.Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// NewTmpUser creates a user with no login credentials, addressable only
// through its API key.
func (r *GormStore) NewTmpUser(name, apiKeyHash string) (*domain.User, error) {
	u := &domain.User{Name: name, ApiKeyHash: apiKeyHash}
	if err := r.db.Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

func (r *GormStore) SaveUser(u *domain.User) error {
	return r.db.Save(u).Error
}

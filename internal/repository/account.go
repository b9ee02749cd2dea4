package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"jobposter-backend/internal/apperror"
	"jobposter-backend/internal/model"
)

// AccountStore persist users and company profiles.
type AccountStore struct {
	db *gorm.DB
}

// NewAccountStore creates AccountStore on top of db.
func NewAccountStore(db *gorm.DB) *AccountStore {
	return &AccountStore{db: db}
}

// CreateUser insert user. Email collision is reported as DuplicateEmail by the unique index.
func (s *AccountStore) CreateUser(ctx context.Context, user *model.User) error {
	return translateAccountErr(s.db.WithContext(ctx).Create(user).Error)
}

// CreateCompany insert company.User and its profile in one transaction.
func (s *AccountStore) CreateCompany(ctx context.Context, company *model.Company) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&company.User).Error; err != nil {
			return err
		}
		company.UserID = company.User.ID
		return tx.Omit("User").Create(company).Error
	})
	return translateAccountErr(err)
}

// FindByEmail look up account by normalized email.
func (s *AccountStore) FindByEmail(ctx context.Context, email string) (model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("email = ?", model.NormalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.User{}, ErrAccountNotFound
	}
	return user, err
}

// FindByID look up account by id.
func (s *AccountStore) FindByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.User{}, ErrAccountNotFound
	}
	return user, err
}

func translateAccountErr(err error) error {
	if err == nil {
		return nil
	}
	if pgCode(err) == uniqueViolation {
		return apperror.New(apperror.DuplicateEmail, "Email already registered", err)
	}
	return err
}

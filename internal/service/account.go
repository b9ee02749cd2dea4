package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"jobposter-backend/internal/apperror"
	"jobposter-backend/internal/model"
	"jobposter-backend/internal/policy"
	"jobposter-backend/internal/repository"
	"jobposter-backend/internal/utilities"
)

// MinPasswordLength is the shortest password accepted for a new account.
const MinPasswordLength = 8

var validate = validator.New()

// CompanyInput is what an admin provide to open a company account.
type CompanyInput struct {
	Email    string
	Password string
	Name     string
	Location string
}

// AccountService create accounts and verify credentials.
type AccountService struct {
	accounts AccountRepository
	log      logrus.FieldLogger
}

// NewAccountService creates AccountService backed by accounts.
func NewAccountService(accounts AccountRepository, log logrus.FieldLogger) *AccountService {
	return &AccountService{accounts: accounts, log: log}
}

// CreateUser open a user account on behalf of an admin.
func (s *AccountService) CreateUser(ctx context.Context, caller policy.Caller, email, password string) (model.User, error) {
	if err := policy.Check(caller, policy.CreateAccount, uuid.Nil); err != nil {
		return model.User{}, err
	}
	return s.createAccount(ctx, email, password, model.RoleUser)
}

// SignUp open a user account for an anonymous caller.
func (s *AccountService) SignUp(ctx context.Context, email, password string) (model.User, error) {
	return s.createAccount(ctx, email, password, model.RoleUser)
}

// CreateAdmin open an admin account. Only operator tooling call it, there is no HTTP route.
func (s *AccountService) CreateAdmin(ctx context.Context, email, password string) (model.User, error) {
	return s.createAccount(ctx, email, password, model.RoleAdmin)
}

func (s *AccountService) createAccount(ctx context.Context, email, password string, role model.Role) (model.User, error) {
	email, err := validateCredential(email, password)
	if err != nil {
		return model.User{}, err
	}

	hashed, err := utilities.HashPassword(password)
	if err != nil {
		return model.User{}, err
	}

	user := model.User{Email: email, Password: hashed, Role: role}
	if err := s.accounts.CreateUser(ctx, &user); err != nil {
		return model.User{}, err
	}
	s.log.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("account created")
	return user, nil
}

// CreateCompany open a company account with its profile on behalf of an admin.
func (s *AccountService) CreateCompany(ctx context.Context, caller policy.Caller, in CompanyInput) (model.Company, error) {
	if err := policy.Check(caller, policy.CreateAccount, uuid.Nil); err != nil {
		return model.Company{}, err
	}

	email, err := validateCredential(in.Email, in.Password)
	if err != nil {
		return model.Company{}, err
	}
	name := strings.TrimSpace(in.Name)
	location := strings.TrimSpace(in.Location)
	if name == "" || location == "" {
		return model.Company{}, apperror.New(apperror.InvalidInput, "Company name and location are required", nil)
	}

	hashed, err := utilities.HashPassword(in.Password)
	if err != nil {
		return model.Company{}, err
	}

	company := model.Company{
		User:     model.User{Email: email, Password: hashed, Role: model.RoleCompany},
		Name:     name,
		Location: location,
	}
	if err := s.accounts.CreateCompany(ctx, &company); err != nil {
		return model.Company{}, err
	}
	s.log.WithFields(logrus.Fields{"user_id": company.UserID, "role": model.RoleCompany}).Info("account created")
	return company, nil
}

// Authenticate return account matching email and password. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (model.User, error) {
	invalid := apperror.New(apperror.Unauthenticated, "Invalid email or password", nil)

	user, err := s.accounts.FindByEmail(ctx, model.NormalizeEmail(email))
	if errors.Is(err, repository.ErrAccountNotFound) {
		return model.User{}, invalid
	}
	if err != nil {
		return model.User{}, err
	}
	if !utilities.CheckPassword(user.Password, password) {
		return model.User{}, invalid
	}
	return user, nil
}

// Get resolve account by id, as done for every bearer token.
func (s *AccountService) Get(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := s.accounts.FindByID(ctx, id)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return model.User{}, apperror.New(apperror.Unauthenticated, "Account no longer exists", err)
	}
	return user, err
}

func validateCredential(email, password string) (string, error) {
	email = model.NormalizeEmail(email)
	if err := validate.Var(email, "required,email"); err != nil {
		return "", apperror.New(apperror.InvalidInput, "Invalid email address", err)
	}
	if len(password) < MinPasswordLength {
		return "", apperror.New(apperror.InvalidInput, "Password should longer or equal to 8 characters", nil)
	}
	return email, nil
}

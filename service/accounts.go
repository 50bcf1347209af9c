package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/kevinaaaquil/bookshelf/backend/models"
	"github.com/kevinaaaquil/bookshelf/backend/utils"
	"github.com/sirupsen/logrus"
)

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

// AccountStore persists accounts. Lookups return models.ErrNotFound on a
// miss; CreateAccount returns models.ErrConflict when the username or email
// is taken. AddBook and RemoveBook must each be a single atomic store
// operation.
type AccountStore interface {
	CreateAccount(ctx context.Context, account *models.Account) (*models.Account, error)
	AccountByID(ctx context.Context, id string) (*models.Account, error)
	AccountByEmail(ctx context.Context, email string) (*models.Account, error)
	AddBook(ctx context.Context, id string, entry models.BookEntry) (*models.Account, error)
	RemoveBook(ctx context.Context, id, bookID string) (*models.Account, error)
}

// AuthResult is returned by signup and login.
type AuthResult struct {
	Token   string
	Account *models.Account
}

type AccountService struct {
	Store      AccountStore
	Tokens     *TokenService
	BcryptCost int
	Log        logrus.FieldLogger
}

// Signup creates an account and returns it with a fresh token.
func (s *AccountService) Signup(ctx context.Context, username, email, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	email = NormalizeEmail(email)
	if err := validateSignup(username, email, password); err != nil {
		return nil, err
	}
	hash, err := utils.HashPassword(password, s.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	account, err := s.Store.CreateAccount(ctx, &models.Account{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		SavedBooks:   []models.BookEntry{},
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, fmt.Errorf("username or email already in use: %w", err)
		}
		return nil, fmt.Errorf("create account: %w", err)
	}
	s.logger().WithField("account_id", account.ID).Info("account created")
	return s.authResult(account)
}

// Login checks the password for the account registered under email.
func (s *AccountService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = NormalizeEmail(email)
	account, err := s.Store.AccountByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		utils.BurnPasswordCheck(password)
		return nil, fmt.Errorf("no account for this email: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	if !utils.CheckPassword(password, account.PasswordHash) {
		s.logger().WithField("account_id", account.ID).Debug("password mismatch")
		return nil, models.ErrInvalidCredentials
	}
	return s.authResult(account)
}

// GetSelf loads the caller's own account. accountID must come from the
// authenticated session.
func (s *AccountService) GetSelf(ctx context.Context, accountID string) (*models.Account, error) {
	account, err := s.Store.AccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	return account, nil
}

func (s *AccountService) authResult(account *models.Account) (*AuthResult, error) {
	token, err := s.Tokens.Issue(account.ID, account.Username, account.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{Token: token, Account: account}, nil
}

func (s *AccountService) logger() logrus.FieldLogger {
	if s.Log == nil {
		return logrus.StandardLogger()
	}
	return s.Log
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateSignup(username, email, password string) error {
	if username == "" {
		return fmt.Errorf("%w: username is required", models.ErrValidation)
	}
	if email == "" {
		return fmt.Errorf("%w: email is required", models.ErrValidation)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: email address is not valid", models.ErrValidation)
	}
	if password == "" {
		return fmt.Errorf("%w: password is required", models.ErrValidation)
	}
	if len(password) > maxPasswordBytes {
		return fmt.Errorf("%w: password is longer than %d bytes", models.ErrValidation, maxPasswordBytes)
	}
	return nil
}

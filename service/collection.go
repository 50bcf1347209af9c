package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/kevinaaaquil/bookshelf/backend/models"
	"github.com/sirupsen/logrus"
)

// CollectionService applies idempotent add/remove operations to an account's
// saved books. Callers pass the account id of the authenticated session.
type CollectionService struct {
	Store AccountStore
	Log   logrus.FieldLogger
}

// SaveBook adds entry unless a book with the same id is already saved.
func (s *CollectionService) SaveBook(ctx context.Context, accountID string, entry models.BookEntry) (*models.Account, error) {
	entry = entry.Normalize()
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	account, err := s.Store.AddBook(ctx, accountID, entry)
	if err != nil {
		return nil, fmt.Errorf("save book %q: %w", entry.BookID, err)
	}
	if s.Log != nil {
		s.Log.WithFields(logrus.Fields{"account_id": accountID, "book_id": entry.BookID}).Debug("book saved")
	}
	return account, nil
}

// RemoveBook removes the book with bookID. Removing a book that is not saved
// returns the unchanged account.
func (s *CollectionService) RemoveBook(ctx context.Context, accountID, bookID string) (*models.Account, error) {
	bookID = strings.TrimSpace(bookID)
	if bookID == "" {
		return nil, fmt.Errorf("%w: bookId is required", models.ErrValidation)
	}
	account, err := s.Store.RemoveBook(ctx, accountID, bookID)
	if err != nil {
		return nil, fmt.Errorf("remove book %q: %w", bookID, err)
	}
	if s.Log != nil {
		s.Log.WithFields(logrus.Fields{"account_id": accountID, "book_id": bookID}).Debug("book removed")
	}
	return account, nil
}

package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/kevinaaaquil/bookshelf/backend/models"
)

// Memory is an in-process account store for local runs and tests. Every
// operation holds a single mutex, which makes check-and-insert and the
// saved-book mutations atomic.
type Memory struct {
	mu         sync.Mutex
	accounts   map[string]*models.Account
	byEmail    map[string]string
	byUsername map[string]string
}

func NewMemory() *Memory {
	return &Memory{
		accounts:   make(map[string]*models.Account),
		byEmail:    make(map[string]string),
		byUsername: make(map[string]string),
	}
}

func (m *Memory) CreateAccount(ctx context.Context, account *models.Account) (*models.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[account.Email]; ok {
		return nil, models.ErrConflict
	}
	if _, ok := m.byUsername[account.Username]; ok {
		return nil, models.ErrConflict
	}
	stored := cloneAccount(account)
	stored.ID = uuid.NewString()
	m.accounts[stored.ID] = stored
	m.byEmail[stored.Email] = stored.ID
	m.byUsername[stored.Username] = stored.ID
	return cloneAccount(stored), nil
}

func (m *Memory) AccountByID(ctx context.Context, id string) (*models.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return cloneAccount(a), nil
}

func (m *Memory) AccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.byEmail[email]
	if !ok {
		return nil, models.ErrNotFound
	}
	return cloneAccount(m.accounts[id]), nil
}

func (m *Memory) AddBook(ctx context.Context, id string, entry models.BookEntry) (*models.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if !a.HasBook(entry.BookID) {
		a.SavedBooks = append(a.SavedBooks, cloneEntry(entry))
	}
	return cloneAccount(a), nil
}

func (m *Memory) RemoveBook(ctx context.Context, id, bookID string) (*models.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	kept := a.SavedBooks[:0]
	for _, b := range a.SavedBooks {
		if b.BookID != bookID {
			kept = append(kept, b)
		}
	}
	a.SavedBooks = kept
	return cloneAccount(a), nil
}

func cloneAccount(a *models.Account) *models.Account {
	out := *a
	out.SavedBooks = make([]models.BookEntry, 0, len(a.SavedBooks))
	for _, b := range a.SavedBooks {
		out.SavedBooks = append(out.SavedBooks, cloneEntry(b))
	}
	return &out
}

func cloneEntry(b models.BookEntry) models.BookEntry {
	b.Authors = append([]string(nil), b.Authors...)
	return b
}

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kevinaaaquil/bookshelf/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type accountDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Username   string             `bson:"username"`
	Email      string             `bson:"email"`
	Password   string             `bson:"password"` // bcrypt hash
	SavedBooks []models.BookEntry `bson:"savedBooks"`
	CreatedAt  time.Time          `bson:"createdAt"`
}

func (d *accountDocument) account() *models.Account {
	books := d.SavedBooks
	if books == nil {
		books = []models.BookEntry{}
	}
	return &models.Account{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.Password,
		SavedBooks:   books,
		CreatedAt:    d.CreatedAt,
	}
}

// Accounts is the MongoDB account store. Saved-book mutations are single
// findAndModify commands, so concurrent requests cannot lose updates.
type Accounts struct {
	coll *mongo.Collection
}

func NewAccounts(coll *mongo.Collection) *Accounts {
	return &Accounts{coll: coll}
}

func (s *Accounts) CreateAccount(ctx context.Context, account *models.Account) (*models.Account, error) {
	doc := accountDocument{
		Username:   account.Username,
		Email:      account.Email,
		Password:   account.PasswordHash,
		SavedBooks: account.SavedBooks,
		CreatedAt:  account.CreatedAt,
	}
	if doc.SavedBooks == nil {
		doc.SavedBooks = []models.BookEntry{}
	}
	res, err := s.coll.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return nil, models.ErrConflict
	}
	if err != nil {
		return nil, err
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	doc.ID = id
	return doc.account(), nil
}

func (s *Accounts) AccountByID(ctx context.Context, id string) (*models.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *Accounts) AccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

// AddBook pushes entry only when no saved book has the same bookId. When the
// filter matches nothing the book is already present (or the account is
// gone) and the current state is returned.
func (s *Accounts) AddBook(ctx context.Context, id string, entry models.BookEntry) (*models.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}
	filter := bson.M{"_id": oid, "savedBooks.bookId": bson.M{"$ne": entry.BookID}}
	update := bson.M{"$push": bson.M{"savedBooks": entry}}
	account, err := s.findOneAndUpdate(ctx, filter, update)
	if errors.Is(err, models.ErrNotFound) {
		return s.AccountByID(ctx, id)
	}
	return account, err
}

func (s *Accounts) RemoveBook(ctx context.Context, id, bookID string) (*models.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}
	update := bson.M{"$pull": bson.M{"savedBooks": bson.M{"bookId": bookID}}}
	return s.findOneAndUpdate(ctx, bson.M{"_id": oid}, update)
}

func (s *Accounts) findOne(ctx context.Context, filter bson.M) (*models.Account, error) {
	var doc accountDocument
	err := s.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.account(), nil
}

func (s *Accounts) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*models.Account, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc accountDocument
	err := s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.account(), nil
}

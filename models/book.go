package models

import (
	"fmt"
	"net/url"
	"strings"
)

// NoAuthorPlaceholder replaces an empty author list on saved books.
const NoAuthorPlaceholder = "No author to display"

// BookEntry is a snapshot of a catalog item taken when the user saved it.
type BookEntry struct {
	BookID      string   `bson:"bookId" json:"bookId"`
	Title       string   `bson:"title" json:"title"`
	Authors     []string `bson:"authors" json:"authors"`
	Description string   `bson:"description" json:"description"`
	Image       string   `bson:"image,omitempty" json:"image,omitempty"`
	Link        string   `bson:"link,omitempty" json:"link,omitempty"`
}

// CatalogRecord is a search result as returned by the catalog search layer.
type CatalogRecord struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Authors      []string `json:"authors"`
	Description  string   `json:"description"`
	ThumbnailURL string   `json:"thumbnailUrl"`
	InfoLink     string   `json:"infoLink"`
}

// Entry converts the record into the shape stored in a saved collection.
func (c CatalogRecord) Entry() BookEntry {
	return BookEntry{
		BookID:      c.ID,
		Title:       c.Title,
		Authors:     c.Authors,
		Description: c.Description,
		Image:       c.ThumbnailURL,
		Link:        c.InfoLink,
	}
}

// Normalize trims identifiers and applies the author placeholder. The
// receiver is not modified.
func (b BookEntry) Normalize() BookEntry {
	out := b
	out.BookID = strings.TrimSpace(b.BookID)
	out.Title = strings.TrimSpace(b.Title)
	out.Image = strings.TrimSpace(b.Image)
	out.Link = strings.TrimSpace(b.Link)
	out.Authors = nil
	for _, a := range b.Authors {
		if a = strings.TrimSpace(a); a != "" {
			out.Authors = append(out.Authors, a)
		}
	}
	if len(out.Authors) == 0 {
		out.Authors = []string{NoAuthorPlaceholder}
	}
	return out
}

// Validate checks required fields and optional URLs. Errors wrap ErrValidation.
func (b BookEntry) Validate() error {
	if strings.TrimSpace(b.BookID) == "" {
		return fmt.Errorf("%w: bookId is required", ErrValidation)
	}
	if strings.TrimSpace(b.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if !optionalHTTPURL(b.Image) {
		return fmt.Errorf("%w: image must be an http(s) URL", ErrValidation)
	}
	if !optionalHTTPURL(b.Link) {
		return fmt.Errorf("%w: link must be an http(s) URL", ErrValidation)
	}
	return nil
}

func optionalHTTPURL(raw string) bool {
	if raw == "" {
		return true
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

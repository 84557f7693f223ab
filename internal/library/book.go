package library

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"freader/internal/platform/googlebooks"
)

var (
	ErrNotFound       = errors.New("book not found")
	ErrAlreadySaved   = errors.New("volume already saved")
	ErrVolumeNotFound = errors.New("volume not found")
	ErrInvalidRating  = errors.New("rating must be between 0 and 5")
)

const MaxRating = 5.0

// Book is a catalog volume saved into one user's library.
type Book struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	GoogleBookID    string     `json:"google_book_id"`
	Title           string     `json:"title"`
	Authors         string     `json:"authors"`
	Description     string     `json:"description"`
	Categories      string     `json:"categories"`
	Notes           string     `json:"notes"`
	PhotoURL        string     `json:"photo_url"`
	PublishedDate   string     `json:"published_date"`
	PageCount       string     `json:"page_count"`
	Rating          float64    `json:"rating"`
	StartedReading  *time.Time `json:"started_reading,omitempty"`
	FinishedReading *time.Time `json:"finished_reading,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (b Book) IsReading() bool {
	return b.StartedReading != nil && b.FinishedReading == nil
}

func (b Book) IsFinished() bool {
	return b.FinishedReading != nil
}

// FromVolume maps a catalog volume to a fresh, unrated library entry.
func FromVolume(userID string, v googlebooks.Volume) Book {
	info := v.Info()
	pageCount := ""
	if info.PageCount != nil {
		pageCount = strconv.Itoa(*info.PageCount)
	}
	return Book{
		UserID:        userID,
		GoogleBookID:  v.ID,
		Title:         info.Title,
		Authors:       strings.Join(info.Authors, ", "),
		Description:   info.Description,
		Categories:    strings.Join(info.Categories, ", "),
		PhotoURL:      info.Thumbnail(),
		PublishedDate: info.PublishedDate,
		PageCount:     pageCount,
	}
}

// UpdateCommand carries the user-editable parts of a book. StartReading and
// MarkRead only ever set a timestamp that is still empty.
type UpdateCommand struct {
	Notes        *string  `json:"notes" validate:"omitempty,max=10000"`
	Rating       *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
	StartReading bool     `json:"start_reading"`
	MarkRead     bool     `json:"mark_read"`
}

func (c UpdateCommand) apply(b *Book, now time.Time) (bool, error) {
	changed := false
	if c.Rating != nil {
		if *c.Rating < 0 || *c.Rating > MaxRating {
			return false, ErrInvalidRating
		}
		if b.Rating != *c.Rating {
			b.Rating = *c.Rating
			changed = true
		}
	}
	if c.Notes != nil && b.Notes != *c.Notes {
		b.Notes = *c.Notes
		changed = true
	}
	if c.StartReading && b.StartedReading == nil {
		t := now
		b.StartedReading = &t
		changed = true
	}
	if c.MarkRead && b.FinishedReading == nil {
		t := now
		b.FinishedReading = &t
		changed = true
	}
	return changed, nil
}

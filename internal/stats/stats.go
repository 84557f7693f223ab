// Package stats summarizes a reader's library.
package stats

import (
	"sort"
	"strings"

	"freader/internal/library"
)

// ThumbsUpRating is the lowest rating shown with a thumbs up.
const ThumbsUpRating = 4.0

type Stats struct {
	Greeting      string  `json:"greeting"`
	Reading       int     `json:"reading"`
	Read          int     `json:"read"`
	Saved         int     `json:"saved"`
	AverageRating float64 `json:"average_rating"`
	Finished      []Row   `json:"finished"`
}

type Row struct {
	Book     library.Book `json:"book"`
	ThumbsUp bool         `json:"thumbs_up"`
}

// Compute derives the statistics screen from the caller's books.
func Compute(displayName, email string, books []library.Book) Stats {
	s := Stats{
		Greeting: greeting(displayName, email),
		Saved:    len(books),
		Finished: []Row{},
	}

	var ratingSum float64
	var rated int
	for _, b := range books {
		switch {
		case b.IsFinished():
			s.Read++
			s.Finished = append(s.Finished, Row{Book: b, ThumbsUp: b.Rating >= ThumbsUpRating})
			if b.Rating > 0 {
				ratingSum += b.Rating
				rated++
			}
		case b.IsReading():
			s.Reading++
		}
	}
	if rated > 0 {
		s.AverageRating = ratingSum / float64(rated)
	}

	sort.SliceStable(s.Finished, func(i, j int) bool {
		return s.Finished[i].Book.FinishedReading.After(*s.Finished[j].Book.FinishedReading)
	})
	return s
}

func greeting(displayName, email string) string {
	if local, _, ok := strings.Cut(strings.TrimSpace(email), "@"); ok && local != "" {
		return strings.ToUpper(local)
	}
	return displayName
}

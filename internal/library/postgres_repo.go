package library

import (
	"context"
	"errors"
	"time"

	"freader/internal/platform/postgres"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookColumns = `id, user_id, google_book_id, title, authors, description, categories, notes,
	photo_url, published_date, page_count, rating, started_reading_at, finished_reading_at,
	created_at, updated_at`

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func scanBook(row pgx.Row) (Book, error) {
	var b Book
	err := row.Scan(
		&b.ID, &b.UserID, &b.GoogleBookID, &b.Title, &b.Authors, &b.Description, &b.Categories, &b.Notes,
		&b.PhotoURL, &b.PublishedDate, &b.PageCount, &b.Rating, &b.StartedReading, &b.FinishedReading,
		&b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

// validID guards uuid columns; anything else can never match a row.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (r *PostgresRepo) Create(ctx context.Context, b *Book) error {
	const query = `
	INSERT INTO library_books (user_id, google_book_id, title, authors, description, categories, notes,
		photo_url, published_date, page_count, rating, started_reading_at, finished_reading_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	RETURNING id, created_at, updated_at
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query,
		b.UserID, b.GoogleBookID, b.Title, b.Authors, b.Description, b.Categories, b.Notes,
		b.PhotoURL, b.PublishedDate, b.PageCount, b.Rating, b.StartedReading, b.FinishedReading,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if postgres.IsUniqueViolation(err) {
		return ErrAlreadySaved
	}
	return err
}

func (r *PostgresRepo) List(ctx context.Context, userID string, limit, offset int) ([]Book, int, error) {
	if !validID(userID) {
		return []Book{}, 0, nil
	}

	var total int
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, `SELECT COUNT(*) FROM library_books WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	// LIMIT NULL means no limit.
	var lim any
	if limit > 0 {
		lim = limit
	}
	query := `SELECT ` + bookColumns + `
	FROM library_books
	WHERE user_id = $1
	ORDER BY created_at DESC, id
	LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(timeoutCtx, query, userID, lim, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	books := []Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, 0, err
		}
		books = append(books, b)
	}
	return books, total, rows.Err()
}

func (r *PostgresRepo) GetByID(ctx context.Context, userID, id string) (Book, error) {
	if !validID(userID) || !validID(id) {
		return Book{}, ErrNotFound
	}
	query := `SELECT ` + bookColumns + ` FROM library_books WHERE id = $1 AND user_id = $2`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.getOne(scanBook(r.db.QueryRow(timeoutCtx, query, id, userID)))
}

func (r *PostgresRepo) GetByGoogleID(ctx context.Context, userID, googleBookID string) (Book, error) {
	if !validID(userID) {
		return Book{}, ErrNotFound
	}
	query := `SELECT ` + bookColumns + ` FROM library_books WHERE user_id = $1 AND google_book_id = $2`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.getOne(scanBook(r.db.QueryRow(timeoutCtx, query, userID, googleBookID)))
}

func (r *PostgresRepo) getOne(b Book, err error) (Book, error) {
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepo) Update(ctx context.Context, b *Book) error {
	const query = `
	UPDATE library_books
	SET notes = $3, rating = $4, started_reading_at = $5, finished_reading_at = $6, updated_at = now()
	WHERE id = $1 AND user_id = $2
	RETURNING updated_at
	`
	if !validID(b.UserID) || !validID(b.ID) {
		return ErrNotFound
	}
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query,
		b.ID, b.UserID, b.Notes, b.Rating, b.StartedReading, b.FinishedReading,
	).Scan(&b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *PostgresRepo) Delete(ctx context.Context, userID, id string) error {
	if !validID(userID) || !validID(id) {
		return ErrNotFound
	}
	const query = `DELETE FROM library_books WHERE id = $1 AND user_id = $2`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, query, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

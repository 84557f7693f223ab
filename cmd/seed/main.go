package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"freader/internal/auth"
	"freader/internal/library"
	"freader/internal/platform/config"
	"freader/internal/platform/logger"
	"freader/internal/platform/postgres"
	"freader/internal/user"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	email    string
	password string
	count    int
}

func main() {
	config.LoadEnvFiles()
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:          "seed",
		Short:        "Create a demo reader with a populated library",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.count < 0 || opts.count > len(sampleBooks) {
				return fmt.Errorf("count must be between 0 and %d", len(sampleBooks))
			}
			return seed(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.email, "email", "demo@freader.dev", "demo account email")
	cmd.Flags().StringVar(&opts.password, "password", "Demo!2345", "demo account password")
	cmd.Flags().IntVar(&opts.count, "count", len(sampleBooks), "number of sample books to save")
	return cmd
}

func seed(ctx context.Context, opts *options) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.LogLevel, "console")
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	pool, err := postgres.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	users := user.NewService(user.NewPostgresRepo(pool, cfg.DBTimeout), user.DefaultProfile)
	authService := auth.NewService(
		auth.NewAccountPostgresRepo(pool, cfg.DBTimeout),
		auth.NewBlacklistPostgresRepo(pool, cfg.DBTimeout),
		users,
		cfg.JWTSecret,
		cfg.AccessTokenTTL,
		log,
	)

	sess, err := authService.Register(ctx, opts.email, opts.password)
	if errors.Is(err, auth.ErrAlreadyExists) {
		sess, err = authService.Login(ctx, opts.email, opts.password)
	}
	if err != nil {
		return fmt.Errorf("demo account: %w", err)
	}
	log.Info("demo account ready", zap.String("email", sess.Email), zap.String("user_id", sess.UserID))

	books := library.NewPostgresRepo(pool, cfg.DBTimeout)
	now := time.Now().UTC()
	inserted := 0
	for i, b := range sampleBooks[:opts.count] {
		b.UserID = sess.UserID
		withProgress(&b, i, now)
		if err := books.Create(ctx, &b); err != nil {
			if errors.Is(err, library.ErrAlreadySaved) {
				continue
			}
			return fmt.Errorf("insert %q: %w", b.Title, err)
		}
		inserted++
	}
	log.Info("library seeded", zap.Int("inserted", inserted), zap.Int("requested", opts.count))
	return nil
}

// withProgress spreads the sample books across saved, reading and finished.
func withProgress(b *library.Book, i int, now time.Time) {
	switch i % 3 {
	case 1:
		started := now.Add(-time.Duration(1+rand.Intn(20)) * 24 * time.Hour)
		b.StartedReading = &started
	case 2:
		started := now.Add(-time.Duration(30+rand.Intn(60)) * 24 * time.Hour)
		finished := started.Add(time.Duration(3+rand.Intn(20)) * 24 * time.Hour)
		b.StartedReading = &started
		b.FinishedReading = &finished
		b.Rating = float64(1 + rand.Intn(5))
	}
}

var sampleBooks = []library.Book{
	{GoogleBookID: "zyTCAlFPjgYC", Title: "The Google Story", Authors: "David A. Vise, Mark Malseed", Categories: "Business & Economics", PublishedDate: "2005-11-15", PageCount: "207"},
	{GoogleBookID: "PXa2bby0oQ0C", Title: "Dune", Authors: "Frank Herbert", Categories: "Fiction", PublishedDate: "1965", PageCount: "604"},
	{GoogleBookID: "wrOQLV6xB-wC", Title: "Harry Potter and the Sorcerer's Stone", Authors: "J.K. Rowling", Categories: "Juvenile Fiction", PublishedDate: "2015-12-08", PageCount: "309"},
	{GoogleBookID: "hjEFCAAAQBAJ", Title: "Clean Code", Authors: "Robert C. Martin", Categories: "Computers", PublishedDate: "2008-08-01", PageCount: "464"},
	{GoogleBookID: "kotPYEqx7kMC", Title: "1984", Authors: "George Orwell", Categories: "Fiction", PublishedDate: "1949", PageCount: "328"},
	{GoogleBookID: "2zgRDXFWkm8C", Title: "The Pragmatic Programmer", Authors: "Andrew Hunt, David Thomas", Categories: "Computers", PublishedDate: "1999-10-20", PageCount: "352"},
}

// Command seed-db loads the book catalog into PostgreSQL. Existing books are
// updated in place (matched by name), so the seeder is safe to re-run.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/avivros/bookme/internal/repository"
)

const upsertBookSQL = `INSERT INTO books (id, name, category, author, publishing, publishing_year, price, titel, img, qty)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (name) DO UPDATE SET
		category = EXCLUDED.category,
		author = EXCLUDED.author,
		publishing = EXCLUDED.publishing,
		publishing_year = EXCLUDED.publishing_year,
		price = EXCLUDED.price,
		titel = EXCLUDED.titel,
		img = EXCLUDED.img,
		qty = EXCLUDED.qty`

type bookJSON struct {
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Author         string          `json:"author"`
	Publishing     string          `json:"publishing"`
	PublishingYear int             `json:"publishingYear"`
	Price          decimal.Decimal `json:"price"`
	Titel          string          `json:"titel"`
	Img            string          `json:"img"`
	Qty            int             `json:"qty"`
}

func main() {
	var (
		databaseURL string
		booksFile   string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&booksFile, "books-file", "db/seed/books.json", "path to books JSON file")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, booksFile); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, booksFile string) error {
	slog.Info("connecting to database")

	pool, err := repository.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("running migrations")

	if err := repository.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	return seedBooks(ctx, pool, booksFile)
}

func seedBooks(ctx context.Context, pool *pgxpool.Pool, booksFile string) error {
	slog.Info("reading books file", slog.String("path", booksFile))

	data, err := os.ReadFile(booksFile)
	if err != nil {
		return errors.Wrap(err, "read books file")
	}

	var books []bookJSON
	if err := json.Unmarshal(data, &books); err != nil {
		return errors.Wrap(err, "parse books JSON")
	}

	slog.Info("upserting books", slog.Int("count", len(books)))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, b := range books {
		g.Go(func() error {
			_, err := pool.Exec(ctx, upsertBookSQL,
				uuid.NewString(), b.Name, b.Category, b.Author, b.Publishing,
				b.PublishingYear, b.Price, b.Titel, nullable(b.Img), b.Qty,
			)
			if err != nil {
				return errors.Wrapf(err, "upsert book %s", b.Name)
			}
			slog.Info("upserted book", slog.String("name", b.Name))
			return nil
		})
	}
	return g.Wait()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

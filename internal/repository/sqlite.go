package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"book_catalog/internal/model"
	"book_catalog/utils"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	"github.com/jmoiron/sqlx"
)

const (
	dialectSqlite = "sqlite3"
	tableBooks    = "books"
	tableLoans    = "loans"
	insertChunk   = 200
)

type bookRow struct {
	Position int             `db:"position"`
	Title    string          `db:"title"`
	Author   string          `db:"author"`
	Year     string          `db:"year"`
	Genre    string          `db:"genre"`
	IsRead   int             `db:"is_read"`
	Rating   sql.NullFloat64 `db:"rating"`
	Review   string          `db:"review"`
	DueDate  sql.NullString  `db:"due_date"`
}

type loanRow struct {
	Username string `db:"username"`
	Position int    `db:"position"`
	Title    string `db:"title"`
}

// Sqlite keeps the catalog in two tables. Save replaces both in one
// transaction.
type Sqlite struct {
	db *sqlx.DB
}

func NewSqliteRepo(db *sqlx.DB) *Sqlite {
	return &Sqlite{db: db}
}

func (r *Sqlite) Load(ctx context.Context) (model.Catalog, error) {
	op := "Sqlite.Load"
	rqID := utils.GetRequestIDFromCtx(ctx)

	var books []bookRow
	err := r.db.SelectContext(ctx, &books, `SELECT position, title, author, year, genre, is_read, rating, review, due_date FROM books ORDER BY position`)
	if err != nil {
		slog.Error("Failed to select books", slog.String("op", op), slog.String("rqID", rqID), slog.String("err", err.Error()))
		return model.Catalog{}, err
	}

	var loans []loanRow
	err = r.db.SelectContext(ctx, &loans, `SELECT username, position, title FROM loans ORDER BY username, position`)
	if err != nil {
		slog.Error("Failed to select loans", slog.String("op", op), slog.String("rqID", rqID), slog.String("err", err.Error()))
		return model.Catalog{}, err
	}

	if len(books) == 0 && len(loans) == 0 {
		slog.Warn("No rows in catalog tables", slog.String("op", op), slog.String("rqID", rqID))
		return model.Catalog{}, ErrNoData
	}

	catalog := model.NewCatalog()
	for _, row := range books {
		book, err := row.toBook()
		if err != nil {
			slog.Warn("Corrupt book row", slog.String("op", op), slog.String("rqID", rqID), slog.String("err", err.Error()), slog.Int("position", row.Position))
			return model.Catalog{}, fmt.Errorf("%w: %s", ErrCorrupt, err.Error())
		}
		catalog.Books = append(catalog.Books, book)
	}
	for _, row := range loans {
		catalog.Users[row.Username] = append(catalog.Users[row.Username], row.Title)
	}

	return catalog, nil
}

func (r *Sqlite) Save(ctx context.Context, catalog model.Catalog) (err error) {
	op := "Sqlite.Save"
	rqID := utils.GetRequestIDFromCtx(ctx)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		slog.Error("Failed to begin transaction", slog.String("op", op), slog.String("rqID", rqID), slog.String("err", err.Error()))
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{tableBooks, tableLoans} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			slog.Error("Failed to clear table", slog.String("op", op), slog.String("rqID", rqID), slog.String("table", table), slog.String("err", err.Error()))
			return err
		}
	}

	if err = insertRecords(ctx, tx, tableBooks, bookRecords(catalog.Books)); err != nil {
		slog.Error("Failed to insert books", slog.String("op", op), slog.String("rqID", rqID), slog.String("err", err.Error()))
		return err
	}

	if err = insertRecords(ctx, tx, tableLoans, loanRecords(catalog.Users)); err != nil {
		slog.Error("Failed to insert loans", slog.String("op", op), slog.String("rqID", rqID), slog.String("err", err.Error()))
		return err
	}

	if err = tx.Commit(); err != nil {
		slog.Error("Failed to commit", slog.String("op", op), slog.String("rqID", rqID), slog.String("err", err.Error()))
		return err
	}

	slog.Debug("Catalog saved to sqlite", slog.String("op", op), slog.String("rqID", rqID), slog.Int("books", len(catalog.Books)))
	return nil
}

func insertRecords(ctx context.Context, tx *sqlx.Tx, table string, records []interface{}) error {
	for start := 0; start < len(records); start += insertChunk {
		end := min(start+insertChunk, len(records))

		query, args, err := goqu.Dialect(dialectSqlite).
			Insert(table).
			Prepared(true).
			Rows(records[start:end]...).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build insert into %s: %w", table, err)
		}

		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}
	return nil
}

func bookRecords(books []model.Book) []interface{} {
	records := make([]interface{}, 0, len(books))
	for i, b := range books {
		isRead := 0
		if b.Read {
			isRead = 1
		}
		var rating interface{}
		if b.Rating != nil {
			rating = *b.Rating
		}
		var dueDate interface{}
		if b.DueDate != nil {
			dueDate = b.DueDate.String()
		}
		records = append(records, goqu.Record{
			"position": i,
			"title":    b.Title,
			"author":   b.Author,
			"year":     b.Year,
			"genre":    b.Genre,
			"is_read":  isRead,
			"rating":   rating,
			"review":   b.Review,
			"due_date": dueDate,
		})
	}
	return records
}

func loanRecords(users map[string][]string) []interface{} {
	records := make([]interface{}, 0, len(users))
	for username, titles := range users {
		for i, title := range titles {
			records = append(records, goqu.Record{
				"username": username,
				"position": i,
				"title":    title,
			})
		}
	}
	return records
}

func (row bookRow) toBook() (model.Book, error) {
	book := model.Book{
		Title:  row.Title,
		Author: row.Author,
		Year:   row.Year,
		Genre:  row.Genre,
		Read:   row.IsRead != 0,
		Review: row.Review,
	}
	if row.Rating.Valid {
		rating := row.Rating.Float64
		book.Rating = &rating
	}
	if row.DueDate.Valid {
		dueDate, err := model.ParseDate(row.DueDate.String)
		if err != nil {
			return model.Book{}, err
		}
		book.DueDate = &dueDate
	}
	return book, nil
}

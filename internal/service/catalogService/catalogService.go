package catalogService

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"
	"sync"
	"time"

	"book_catalog/config"
	"book_catalog/internal/model"
	"book_catalog/internal/repository"
	"book_catalog/utils"
)

const (
	minRating = 1
	maxRating = 5
	day       = 24 * time.Hour
)

type Storage interface {
	Load(ctx context.Context) (model.Catalog, error)
	Save(ctx context.Context, catalog model.Catalog) error
}

type Clock interface {
	Now() time.Time
}

// CatalogService owns the in-memory catalog. Every mutation is applied to a
// copy which replaces the current state only after it has been persisted.
type CatalogService struct {
	cfg     *config.Config
	storage Storage
	clock   Clock

	mu      sync.Mutex
	catalog model.Catalog
}

// New loads the stored catalog. A missing or unreadable catalog starts an
// empty one; other storage failures are returned.
func New(ctx context.Context, cfg *config.Config, storage Storage, clock Clock) (*CatalogService, error) {
	op := "CatalogService.New"
	rqID := utils.GetRequestIDFromCtx(ctx)

	catalog, err := storage.Load(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNoData) && !errors.Is(err, repository.ErrCorrupt) {
			slog.Error("got error from storage.Load", slog.String("op", op), slog.String("rqID", rqID), slog.String("err", err.Error()))
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		slog.Warn("starting with empty catalog", slog.String("op", op), slog.String("rqID", rqID), slog.String("reason", err.Error()))
		catalog = model.NewCatalog()
	}
	catalog.Normalize()

	slog.Info(
		"catalog loaded",
		slog.String("op", op),
		slog.String("rqID", rqID),
		slog.Int("books", len(catalog.Books)),
		slog.Int("users", len(catalog.Users)),
	)

	return &CatalogService{
		cfg:     cfg,
		storage: storage,
		clock:   clock,
		catalog: catalog,
	}, nil
}

func (s *CatalogService) AddBook(ctx context.Context, request model.AddBookRequest) (model.Book, error) {
	op := "CatalogService.AddBook"
	rqID := utils.GetRequestIDFromCtx(ctx)

	book, err := newBook(request)
	if err != nil {
		slog.Warn("invalid add book request", slog.String("op", op), slog.String("rqID", rqID), slog.String("err", err.Error()))
		return model.Book{}, err
	}

	err = s.mutate(ctx, func(catalog *model.Catalog) error {
		catalog.Books = append(catalog.Books, book)
		return nil
	})
	if err != nil {
		slog.Error("failed to add book", slog.String("op", op), slog.String("rqID", rqID), slog.String("err", err.Error()))
		return model.Book{}, err
	}

	slog.Info("book added", slog.String("op", op), slog.String("rqID", rqID), slog.String("title", book.Title))
	return book, nil
}

func (s *CatalogService) BorrowBook(ctx context.Context, title string, username string) (model.BorrowResult, error) {
	op := "CatalogService.BorrowBook"
	rqID := utils.GetRequestIDFromCtx(ctx)

	if strings.TrimSpace(username) == "" {
		return model.BorrowResult{}, fmt.Errorf("%w: username is empty", ErrInvalidInput)
	}

	var result model.BorrowResult
	err := s.mutate(ctx, func(catalog *model.Catalog) error {
		idx := catalog.FindBook(title)
		if idx < 0 {
			return ErrNotFound
		}
		book := &catalog.Books[idx]

		if book.IsLent() && s.cfg.Lending.RejectDoubleBorrow {
			return ErrAlreadyBorrowed
		}

		dueDate := model.DateOf(s.clock.Now()).AddDays(s.cfg.Lending.LoanDays)
		book.DueDate = &dueDate
		catalog.Users[username] = append(catalog.Users[username], book.Title)

		result = model.BorrowResult{Title: book.Title, Username: username, DueDate: dueDate}
		return nil
	})
	if err != nil {
		s.logFailure(op, rqID, err, slog.String("title", title), slog.String("username", username))
		return model.BorrowResult{}, err
	}

	slog.Info(
		"book borrowed",
		slog.String("op", op),
		slog.String("rqID", rqID),
		slog.String("title", result.Title),
		slog.String("username", username),
		slog.String("dueDate", result.DueDate.String()),
	)
	return result, nil
}

func (s *CatalogService) ReturnBook(ctx context.Context, title string, username string) (model.ReturnResult, error) {
	op := "CatalogService.ReturnBook"
	rqID := utils.GetRequestIDFromCtx(ctx)

	var result model.ReturnResult
	err := s.mutate(ctx, func(catalog *model.Catalog) error {
		loanIdx := catalog.FindLoan(username, title)
		if loanIdx < 0 {
			return ErrNotBorrowed
		}

		idx := catalog.FindBook(title)
		if idx < 0 {
			return ErrNotFound
		}
		book := &catalog.Books[idx]

		daysLate := 0
		if book.DueDate != nil {
			daysLate = s.daysLate(*book.DueDate)
		}
		book.DueDate = nil

		titles := slices.Delete(catalog.Users[username], loanIdx, loanIdx+1)
		if len(titles) == 0 {
			delete(catalog.Users, username)
		} else {
			catalog.Users[username] = titles
		}

		result = model.ReturnResult{
			Title:    book.Title,
			Username: username,
			DaysLate: daysLate,
			Fine:     daysLate * s.cfg.Lending.FinePerDay,
		}
		return nil
	})
	if err != nil {
		s.logFailure(op, rqID, err, slog.String("title", title), slog.String("username", username))
		return model.ReturnResult{}, err
	}

	slog.Info(
		"book returned",
		slog.String("op", op),
		slog.String("rqID", rqID),
		slog.String("title", result.Title),
		slog.String("username", username),
		slog.Int("daysLate", result.DaysLate),
		slog.Int("fine", result.Fine),
	)
	return result, nil
}

// ListBooks returns the collection ordered by key. The stored order is left
// untouched and nothing is persisted.
func (s *CatalogService) ListBooks(ctx context.Context, key model.SortKey) ([]model.BookView, error) {
	op := "CatalogService.ListBooks"
	rqID := utils.GetRequestIDFromCtx(ctx)

	if !key.Valid() {
		slog.Warn("unknown sort key", slog.String("op", op), slog.String("rqID", rqID), slog.String("key", string(key)))
		return nil, fmt.Errorf("%w: unknown sort key %q", ErrInvalidInput, key)
	}

	s.mu.Lock()
	books := s.catalog.Clone().Books
	s.mu.Unlock()

	if key != model.SortNone {
		slices.SortStableFunc(books, func(a, b model.Book) int {
			return strings.Compare(strings.ToLower(key.Field(a)), strings.ToLower(key.Field(b)))
		})
	}

	views := make([]model.BookView, 0, len(books))
	for _, b := range books {
		views = append(views, model.NewBookView(b))
	}

	slog.Debug("books listed", slog.String("op", op), slog.String("rqID", rqID), slog.Int("count", len(views)), slog.String("key", string(key)))
	return views, nil
}

// Save persists the current catalog as is.
func (s *CatalogService) Save(ctx context.Context) error {
	op := "CatalogService.Save"
	rqID := utils.GetRequestIDFromCtx(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Save(ctx, s.catalog); err != nil {
		slog.Error("got error from storage.Save", slog.String("op", op), slog.String("rqID", rqID), slog.String("err", err.Error()))
		return fmt.Errorf("save catalog: %w", err)
	}
	return nil
}

func (s *CatalogService) mutate(ctx context.Context, apply func(catalog *model.Catalog) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.catalog.Clone()
	if err := apply(&next); err != nil {
		return err
	}

	if err := s.storage.Save(ctx, next); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}

	s.catalog = next
	return nil
}

// daysLate counts whole days between midnight of the due date and now on
// the wall clock, so daylight saving shifts do not eat an hour of a day.
func (s *CatalogService) daysLate(dueDate model.Date) int {
	now := s.clock.Now()
	wallNow := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), time.UTC)
	late := int(wallNow.Sub(dueDate.Midnight(time.UTC)) / day)
	return max(0, late)
}

func (s *CatalogService) logFailure(op, rqID string, err error, attrs ...any) {
	args := append([]any{slog.String("op", op), slog.String("rqID", rqID), slog.String("err", err.Error())}, attrs...)
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrNotBorrowed) || errors.Is(err, ErrAlreadyBorrowed) {
		slog.Warn("operation rejected", args...)
		return
	}
	slog.Error("operation failed", args...)
}

func newBook(request model.AddBookRequest) (model.Book, error) {
	title := strings.TrimSpace(request.Title)
	if title == "" {
		return model.Book{}, fmt.Errorf("%w: title is empty", ErrInvalidInput)
	}

	book := model.Book{
		Title:  title,
		Author: strings.TrimSpace(request.Author),
		Year:   strings.TrimSpace(request.Year),
		Genre:  strings.TrimSpace(request.Genre),
		Read:   request.Read,
	}

	if !request.Read {
		return book, nil
	}

	if request.Rating == nil {
		return model.Book{}, fmt.Errorf("%w: rating is required for a read book", ErrInvalidInput)
	}
	rating := *request.Rating
	if math.IsNaN(rating) || rating < minRating || rating > maxRating {
		return model.Book{}, fmt.Errorf("%w: rating %v is out of range %d-%d", ErrInvalidInput, rating, minRating, maxRating)
	}
	book.Rating = &rating
	book.Review = request.Review

	return book, nil
}

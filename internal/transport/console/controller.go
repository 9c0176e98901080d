package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"book_catalog/config"
	"book_catalog/internal/converter/consoleConverter"
	"book_catalog/internal/model"
	"book_catalog/internal/service/catalogService"
	"book_catalog/utils"
)

type CatalogService interface {
	AddBook(ctx context.Context, request model.AddBookRequest) (model.Book, error)
	BorrowBook(ctx context.Context, title string, username string) (model.BorrowResult, error)
	ReturnBook(ctx context.Context, title string, username string) (model.ReturnResult, error)
	ListBooks(ctx context.Context, key model.SortKey) ([]model.BookView, error)
	Save(ctx context.Context) error
}

// Controller runs the numbered menu loop over a line based input.
type Controller struct {
	cfg     *config.Config
	service CatalogService
	in      *bufio.Scanner
	out     io.Writer
}

func NewController(cfg *config.Config, service CatalogService, in io.Reader, out io.Writer) *Controller {
	return &Controller{
		cfg:     cfg,
		service: service,
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

// Run serves commands until Exit is chosen, input ends or ctx is done.
// Both Exit and end of input persist the catalog once more.
func (ctrl *Controller) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		ctrl.println(consoleConverter.Menu())
		choice, err := ctrl.readLine(chooseOption)
		if err != nil {
			return ctrl.exit(ctx)
		}

		cmdCtx := utils.CreateCtxWithRqID(ctx)
		switch strings.TrimSpace(choice) {
		case "1":
			err = ctrl.AddBook(cmdCtx)
		case "2":
			err = ctrl.BorrowBook(cmdCtx)
		case "3":
			err = ctrl.ReturnBook(cmdCtx)
		case "4":
			err = ctrl.ListBooks(cmdCtx)
		case "5":
			return ctrl.exit(cmdCtx)
		default:
			ctrl.println(invalidChoice)
		}

		if errors.Is(err, io.EOF) {
			return ctrl.exit(cmdCtx)
		}
		ctrl.println("")
	}
}

func (ctrl *Controller) AddBook(ctx context.Context) error {
	op := "Controller.AddBook"
	rqID := utils.GetRequestIDFromCtx(ctx)

	var request model.AddBookRequest
	var err error
	for _, field := range []struct {
		prompt string
		dst    *string
	}{
		{promptTitle, &request.Title},
		{promptAuthor, &request.Author},
		{promptYear, &request.Year},
		{promptGenre, &request.Genre},
	} {
		if *field.dst, err = ctrl.readLine(field.prompt); err != nil {
			return err
		}
	}

	answer, err := ctrl.readLine(promptRead)
	if err != nil {
		return err
	}
	request.Read = isYes(answer)

	if request.Read {
		if request.Rating, err = ctrl.readRating(); err != nil {
			return err
		}
		if request.Review, err = ctrl.readLine(promptReview); err != nil {
			return err
		}
	}

	_, err = ctrl.service.AddBook(ctx, request)
	if err != nil {
		if errors.Is(err, catalogService.ErrInvalidInput) {
			ctrl.println(invalidInputMsgPrefix + err.Error())
			return nil
		}
		slog.Error("got error from service.AddBook", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		ctrl.println(internalErrMsg)
		return nil
	}

	ctrl.println(bookAdded)
	return nil
}

func (ctrl *Controller) BorrowBook(ctx context.Context) error {
	op := "Controller.BorrowBook"
	rqID := utils.GetRequestIDFromCtx(ctx)

	title, username, err := ctrl.readTitleAndUser(promptBorrowTitle)
	if err != nil {
		return err
	}

	res, err := ctrl.service.BorrowBook(ctx, title, username)
	if err != nil {
		switch {
		case errors.Is(err, catalogService.ErrNotFound):
			ctrl.println(bookNotFound)
		case errors.Is(err, catalogService.ErrAlreadyBorrowed):
			ctrl.println(bookAlreadyBorrowed)
		case errors.Is(err, catalogService.ErrInvalidInput):
			ctrl.println(emptyUsername)
		default:
			slog.Error("got error from service.BorrowBook", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
			ctrl.println(internalErrMsg)
		}
		return nil
	}

	ctrl.println(consoleConverter.BookBorrowed(res))
	return nil
}

func (ctrl *Controller) ReturnBook(ctx context.Context) error {
	op := "Controller.ReturnBook"
	rqID := utils.GetRequestIDFromCtx(ctx)

	title, username, err := ctrl.readTitleAndUser(promptReturnTitle)
	if err != nil {
		return err
	}

	res, err := ctrl.service.ReturnBook(ctx, title, username)
	if err != nil {
		if errors.Is(err, catalogService.ErrNotBorrowed) || errors.Is(err, catalogService.ErrNotFound) {
			ctrl.println(bookNotBorrowed)
			return nil
		}
		slog.Error("got error from service.ReturnBook", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		ctrl.println(internalErrMsg)
		return nil
	}

	ctrl.println(consoleConverter.BookReturned(res, ctrl.cfg.Lending.FineCurrency))
	return nil
}

func (ctrl *Controller) ListBooks(ctx context.Context) error {
	op := "Controller.ListBooks"
	rqID := utils.GetRequestIDFromCtx(ctx)

	books, err := ctrl.service.ListBooks(ctx, model.SortNone)
	if err != nil {
		slog.Error("got error from service.ListBooks", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		ctrl.println(internalErrMsg)
		return nil
	}
	if len(books) == 0 {
		ctrl.println(emptyCollection)
		return nil
	}

	key, err := ctrl.readLine(promptSort)
	if err != nil {
		return err
	}

	books, err = ctrl.service.ListBooks(ctx, model.SortKey(strings.ToLower(strings.TrimSpace(key))))
	if err != nil {
		if errors.Is(err, catalogService.ErrInvalidInput) {
			ctrl.println(unknownSortOption)
			return nil
		}
		slog.Error("got error from service.ListBooks", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		ctrl.println(internalErrMsg)
		return nil
	}

	ctrl.print(consoleConverter.BooksList(books))
	return nil
}

func (ctrl *Controller) exit(ctx context.Context) error {
	op := "Controller.exit"
	rqID := utils.GetRequestIDFromCtx(ctx)

	if err := ctrl.service.Save(ctx); err != nil {
		slog.Error("got error from service.Save", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		ctrl.println(internalErrMsg)
		return err
	}

	ctrl.println(goodbye)
	return nil
}

func (ctrl *Controller) readTitleAndUser(titlePrompt string) (title string, username string, err error) {
	if title, err = ctrl.readLine(titlePrompt); err != nil {
		return "", "", err
	}
	if username, err = ctrl.readLine(promptUsername); err != nil {
		return "", "", err
	}
	return strings.TrimSpace(title), strings.TrimSpace(username), nil
}

// readRating prompts until a number in range is entered.
func (ctrl *Controller) readRating() (*float64, error) {
	for {
		line, err := ctrl.readLine(promptRating)
		if err != nil {
			return nil, err
		}

		rating, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
		if err != nil || rating < 1 || rating > 5 {
			ctrl.println(invalidRating)
			continue
		}
		return &rating, nil
	}
}

func (ctrl *Controller) readLine(prompt string) (string, error) {
	ctrl.print(prompt)
	if !ctrl.in.Scan() {
		if err := ctrl.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return ctrl.in.Text(), nil
}

func (ctrl *Controller) print(text string) {
	_, _ = fmt.Fprint(ctrl.out, text)
}

func (ctrl *Controller) println(text string) {
	_, _ = fmt.Fprintln(ctrl.out, text)
}

func isYes(answer string) bool {
	return strings.ToLower(strings.TrimSpace(answer)) == "yes"
}

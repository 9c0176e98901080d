package repository

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"book_catalog/internal/lib/files"
	"book_catalog/internal/model"
	"book_catalog/utils"
)

// JSONFile keeps the catalog as one indented JSON document on disk.
type JSONFile struct {
	filePath string
}

func NewJSONFile(filePath string) *JSONFile {
	return &JSONFile{filePath: filePath}
}

func (r *JSONFile) Load(ctx context.Context) (model.Catalog, error) {
	op := "JSONFile.Load"
	rqID := utils.GetRequestIDFromCtx(ctx)

	data, err := os.ReadFile(r.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Warn("catalog file not found", slog.String("op", op), slog.String("rqID", rqID), slog.String("filePath", r.filePath))
			return model.Catalog{}, ErrNoData
		}
		slog.Error("failed to read catalog file", slog.String("op", op), slog.String("rqID", rqID), slog.String("err", err.Error()))
		return model.Catalog{}, err
	}

	catalog, err := DecodeCatalog(data)
	if err != nil {
		slog.Warn("catalog file can't be decoded", slog.String("op", op), slog.String("rqID", rqID), slog.String("err", err.Error()))
		return model.Catalog{}, err
	}

	slog.Debug(
		"catalog loaded from file",
		slog.String("op", op),
		slog.String("rqID", rqID),
		slog.Int("books", len(catalog.Books)),
		slog.Int("users", len(catalog.Users)),
	)
	return catalog, nil
}

func (r *JSONFile) Save(ctx context.Context, catalog model.Catalog) error {
	op := "JSONFile.Save"
	rqID := utils.GetRequestIDFromCtx(ctx)

	data, err := EncodeCatalog(catalog)
	if err != nil {
		slog.Error("failed to encode catalog", slog.String("op", op), slog.String("rqID", rqID), slog.String("err", err.Error()))
		return err
	}

	if err = files.WriteFileAtomic(r.filePath, data); err != nil {
		slog.Error("failed to write catalog file", slog.String("op", op), slog.String("rqID", rqID), slog.String("err", err.Error()))
		return err
	}

	slog.Debug("catalog saved to file", slog.String("op", op), slog.String("rqID", rqID), slog.String("filePath", r.filePath))
	return nil
}

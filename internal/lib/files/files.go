package files

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// WriteFileAtomic replaces the file at filePath with content. Data goes to a
// temp file in the same directory first and is renamed over the target, so
// readers see either the old or the new content in full.
func WriteFileAtomic(filePath string, content []byte) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(filePath)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err = tmp.Write(content); err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		slog.Error("Write file failed", slog.String("filePath", filePath), slog.String("err", err.Error()))
		if errDelete := DeleteFile(tmpPath); errDelete != nil {
			slog.Error("failed on delete file", slog.String("filePath", tmpPath), slog.String("err", errDelete.Error()))
		}
		return err
	}

	if err = os.Chmod(tmpPath, 0o644); err != nil {
		_ = DeleteFile(tmpPath)
		return err
	}

	if err = os.Rename(tmpPath, filePath); err != nil {
		_ = DeleteFile(tmpPath)
		return fmt.Errorf("rename %s: %w", tmpPath, err)
	}

	return nil
}

func DeleteFile(filePath string) error {
	if err := os.Remove(filePath); err != nil {
		return err
	}
	return nil
}

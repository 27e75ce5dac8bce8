package generator

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"beauty-dashboard/internal/errors"
	"beauty-dashboard/internal/models"
)

// writeCSV streams records to path with the fixed header. The file is
// written to a temp name in the same directory and renamed on success, so
// the canonical path only ever holds a fully formed dataset.
func writeCSV(path string, records []models.OrderRecord) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.IOWrap(err, "create output directory")
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.IOWrap(err, "create temp output file")
	}
	tmpName := tmp.Name()

	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	w := csv.NewWriter(tmp)
	if err := w.Write(models.Columns()); err != nil {
		cleanup()
		return errors.IOWrap(err, "write header")
	}
	for i := range records {
		if err := w.Write(records[i].CSVRow()); err != nil {
			cleanup()
			return errors.IOWrap(err, "write record")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		cleanup()
		return errors.IOWrap(err, "flush output")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.IOWrap(err, "close output")
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.IOWrap(err, "publish output file")
	}
	return nil
}

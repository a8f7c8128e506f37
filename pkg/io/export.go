package io

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/matzehuels/condadeps/pkg/errors"
)

// WriteJSON encodes v as indented JSON and writes it to w.
func WriteJSON(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(errors.ErrCodeOutput, err, "encode JSON")
	}
	return nil
}

// ExportJSON writes v to a JSON file at path, replacing any existing file.
//
// The JSON goes to a temporary file in the same directory, which is renamed
// over path only once it is complete. On error path is left untouched.
func ExportJSON(v any, path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(errors.ErrCodeOutput, err, "create %s", path)
	}
	tmp := f.Name()

	if err := WriteJSON(v, f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeOutput, err, "write %s", path)
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeOutput, err, "write %s", path)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeOutput, err, "write %s", path)
	}
	return nil
}

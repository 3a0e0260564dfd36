// Package recordstore persists one JSON document per file. It knows nothing
// about the records it stores: callers pick the Go type and the value to
// fall back to when the document is missing or unreadable.
package recordstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dmitrijs2005/fishfarmer/internal/filex"
	"github.com/dmitrijs2005/fishfarmer/internal/logging"
)

const filePerm = 0o600

// Store reads and writes JSON documents. The zero value is not usable; use New.
type Store struct {
	logger logging.Logger
}

func New(logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Store{logger: logger.With("module", "recordstore")}
}

// Load decodes the document at path into a T.
//
// A missing file yields def and is not created. A file that is empty or
// holds invalid JSON also yields def: the corruption is logged and never
// returned to the caller. Any other I/O failure is returned.
func Load[T any](ctx context.Context, s *Store, path string, def T) (T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return def, nil
		}
		return def, fmt.Errorf("read %s: %w", path, err)
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		s.logger.Warn(ctx, "unreadable document replaced by default", "path", path, "error", err.Error())
		return def, nil
	}

	return v, nil
}

// Save replaces the document at path with the indented JSON encoding of v.
func Save[T any](ctx context.Context, s *Store, path string, v T) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	if err := filex.WriteFileAtomic(path, data, filePerm); err != nil {
		return err
	}

	s.logger.Debug(ctx, "document saved", "path", path, "bytes", len(data))
	return nil
}

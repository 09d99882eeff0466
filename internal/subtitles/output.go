package subtitles

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"cuesync/internal/fileutil"
)

const lockRetryDelay = 50 * time.Millisecond

// WriteFile encodes cues and atomically replaces path. An advisory lock on
// path+".lock" serializes writers targeting the same file.
func WriteFile(ctx context.Context, path string, format Format, lang string, cues []Cue) error {
	var buf bytes.Buffer
	if err := Encode(&buf, format, lang, cues); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("lock %s: %w", path, err)
	}
	if !locked {
		return fmt.Errorf("lock %s: not acquired", path)
	}
	defer func() { _ = lock.Unlock() }()

	if err := fileutil.ReplaceFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write subtitles: %w", err)
	}
	return nil
}

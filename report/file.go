package report

import (
	"fmt"
	"os"

	"github.com/gofrs/flock"
)

// WriteFile replaces the contents of the file at path with data. The
// report is rendered in full before the file is opened, so the file is
// truncated and written in one step. Symlinks are followed and an existing
// file keeps its mode; a new file is created 0644. Concurrent writers to
// the same path are serialised by an advisory lock on the file itself.
func WriteFile(path string, data []byte) (err error) {
	lock := flock.New(path, flock.SetPermissions(0644))
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock %s: %w", path, err)
	}
	defer func() {
		if uerr := lock.Unlock(); uerr != nil && err == nil {
			err = fmt.Errorf("failed to unlock %s: %w", path, uerr)
		}
	}()

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

package filestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// errMalformedRecord marks a file that exists but does not decode. Unlike a
// read failure it is permanent; retrying cannot repair the bytes.
var errMalformedRecord = errors.New("malformed record")

// readJSON reads path into out; a missing file reports ok=false, not an error.
func readJSON(path string, out any) (bool, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return true, fmt.Errorf("%w: %v", errMalformedRecord, err)
	}
	return true, nil
}

// createJSON writes JSON to a temp file, then links it into place. The link
// fails with os.ErrExist when the target already exists, so two processes
// racing the same first write cannot overwrite each other; exactly one wins.
func createJSON(path string, v any, mode os.FileMode) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	base := filepath.Base(path)

	f, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()

	// Best-effort cleanup; the temp name is always removed.
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Chmod(mode); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	return os.Link(tmp, path)
}

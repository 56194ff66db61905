package repofile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// FileName marks a directory tree whose commands default to one batch file.
const FileName = ".opbatch"

// Find walks up from startDir looking for a .opbatch file. It returns the
// linked batch path, resolved against the directory holding the file, and
// that directory. Returns ("", "", nil) if not found.
func Find(startDir string) (batchPath, dir string, err error) {
	dir = startDir
	for {
		p, err := Read(dir)
		if err != nil {
			return "", "", err
		}
		if p != "" {
			if !filepath.IsAbs(p) {
				p = filepath.Join(dir, p)
			}
			return p, dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", "", nil
		}
		dir = parent
	}
}

// Write links dir to batchPath, stored relative to dir when possible so the
// link survives moving the tree.
func Write(dir, batchPath string) error {
	if filepath.IsAbs(batchPath) {
		if rel, err := filepath.Rel(dir, batchPath); err == nil && !strings.HasPrefix(rel, "..") {
			batchPath = rel
		}
	}
	return os.WriteFile(filepath.Join(dir, FileName), []byte(filepath.ToSlash(batchPath)+"\n"), 0644)
}

// Read reads and trims the .opbatch file in dir.
// Returns ("", nil) if the file does not exist.
func Read(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return filepath.FromSlash(strings.TrimSpace(string(data))), nil
}

// Remove deletes the .opbatch file in dir. A missing file is not an error.
func Remove(dir string) error {
	err := os.Remove(filepath.Join(dir, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

package pkg

import (
	"os"

	"github.com/pkg/errors"
)

// CheckFileExist reports whether the file at filePath exists.
func CheckFileExist(filePath string) (bool, error) {
	_, err := os.Lstat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, "stat %s", filePath)
	}
	return true, nil
}

// WriteFile writes data to filePath, creating it if needed.
func WriteFile(filePath string, data []byte) error {
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", filePath)
	}
	return nil
}

package linker_test

import (
	"os"
	"path/filepath"
)

func mkdirFile(dir, name, content string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, name), []byte(content), 0644)
}

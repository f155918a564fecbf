package files

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
)

// Local reads and writes files on the local filesystem.
type Local struct {
	// FixOwner, when set, hands newly created files to the owner of the
	// home directory if the process runs as root.
	FixOwner bool
}

// Load implements Store.
func (l Local) Load(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Save implements Store. The file is created with mode 0644 or truncated.
func (l Local) Save(ctx context.Context, path, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, statErr := os.Stat(path)
	created := errors.Is(statErr, fs.ErrNotExist)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return err
	}
	if created && l.FixOwner {
		if err := chownToHomeOwner(path); err != nil {
			log.Printf("[files] chown %s: %v", path, err)
		}
	}
	return nil
}

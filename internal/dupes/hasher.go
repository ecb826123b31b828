package dupes

import (
	"context"

	"mediasort/internal/engine"
	"mediasort/internal/fileutil"
)

// Hasher computes content hashes for duplicate detection. Implementations
// must be safe for concurrent use by multiple workers.
type Hasher interface {
	HashFile(ctx context.Context, path string) (string, error)
}

// FileHasher hashes file content with SHA256.
type FileHasher struct{}

func (FileHasher) HashFile(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	digest, err := fileutil.HashFile(path)
	if err != nil {
		return "", engine.Wrap(engine.ErrUnreadable, "dupes", "hash file", path, err)
	}
	return digest, nil
}

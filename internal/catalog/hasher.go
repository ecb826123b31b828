package catalog

import (
	"context"
	"log/slog"
	"os"

	"mediasort/internal/dupes"
	"mediasort/internal/logging"
)

// CachingHasher wraps another hasher with the store's hash cache. Cache
// failures degrade to plain hashing; they never fail the computation.
type CachingHasher struct {
	store  *Store
	inner  dupes.Hasher
	logger *slog.Logger
}

// NewCachingHasher builds a hasher that consults the cache before delegating
// to inner (FileHasher when nil).
func NewCachingHasher(store *Store, inner dupes.Hasher, logger *slog.Logger) *CachingHasher {
	if inner == nil {
		inner = dupes.FileHasher{}
	}
	return &CachingHasher{
		store:  store,
		inner:  inner,
		logger: logging.NewComponentLogger(logger, "catalog"),
	}
}

func (h *CachingHasher) HashFile(ctx context.Context, path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	size := info.Size()
	mtimeNS := info.ModTime().UnixNano()

	if digest, ok, err := h.store.LookupHash(ctx, path, size, mtimeNS); err != nil {
		h.logger.Warn("hash cache lookup failed",
			logging.String("path", path), logging.Error(err))
	} else if ok {
		return digest, nil
	}

	digest, err := h.inner.HashFile(ctx, path)
	if err != nil {
		return "", err
	}
	if err := h.store.StoreHash(ctx, path, size, mtimeNS, digest); err != nil {
		h.logger.Warn("hash cache store failed",
			logging.String("path", path), logging.Error(err))
	}
	return digest, nil
}

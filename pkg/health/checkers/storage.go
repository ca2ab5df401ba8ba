package checkers

import (
	"context"
	"time"

	"github.com/artem13815/resumic/pkg/storage/files"
)

// StorageChecker verifies the upload store accepts writes by putting and
// removing a small probe object.
type StorageChecker struct {
	store files.Store
}

func NewStorageChecker(store files.Store) *StorageChecker {
	return &StorageChecker{store: store}
}

func (c *StorageChecker) Name() string { return "file-storage" }

func (c *StorageChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	const probeKey = ".healthcheck"
	if _, err := c.store.Put(ctx, probeKey, "text/plain", []byte("ok")); err != nil {
		return err
	}
	return c.store.Delete(ctx, probeKey)
}

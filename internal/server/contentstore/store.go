// Package contentstore keeps file payloads outside the files table. The
// payload is the base64 text received from the client, stored verbatim.
package contentstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Store is an object store addressed by key.
type Store interface {
	Put(ctx context.Context, key string, encoded string) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// ObjectKey returns a fresh key for a payload owned by userID.
func ObjectKey(userID int64) string {
	return fmt.Sprintf("users/%d/files/%s", userID, uuid.New())
}

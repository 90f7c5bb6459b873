package folders

import (
	"context"

	"github.com/huseyinozgul/docvault/internal/server/models"
)

// LockMode is appended to single-row lookups run inside a transaction.
type LockMode string

const (
	NoLock        LockMode = ""
	LockForShare  LockMode = "FOR SHARE"
	LockForUpdate LockMode = "FOR UPDATE"
)

// Repository is owner-scoped: every method filters by userID, and a folder
// owned by someone else is reported exactly like a missing one.
type Repository interface {
	Create(ctx context.Context, folder *models.Folder) (*models.Folder, error)
	Get(ctx context.Context, id, userID int64, lock LockMode) (*models.Folder, error)
	ListByParent(ctx context.Context, userID int64, parentID *int64) ([]*models.Folder, error)
	CountByParent(ctx context.Context, userID, parentID int64) (int, error)
	Rename(ctx context.Context, id, userID int64, name string) (*models.Folder, error)
	Delete(ctx context.Context, id, userID int64) error
}

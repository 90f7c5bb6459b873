package files

import (
	"context"

	"github.com/huseyinozgul/docvault/internal/server/models"
)

// Repository is owner-scoped: every method filters by userID, and a file
// owned by someone else is reported exactly like a missing one.
type Repository interface {
	Create(ctx context.Context, file *models.File) (*models.File, error)
	Get(ctx context.Context, id, userID int64) (*models.File, error)
	GetWithContent(ctx context.Context, id, userID int64) (*models.File, error)
	ListByParent(ctx context.Context, userID int64, parentID *int64) ([]*models.File, error)
	CountByParent(ctx context.Context, userID, parentID int64) (int, error)
	Update(ctx context.Context, file *models.File) (*models.File, error)
	Delete(ctx context.Context, id, userID int64) (*models.File, error)
}

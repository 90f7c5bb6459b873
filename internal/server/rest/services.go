package rest

import (
	"context"

	"github.com/huseyinozgul/docvault/internal/server/models"
)

// UserService is the account side consumed by the handlers.
type UserService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

type FolderService interface {
	Create(ctx context.Context, userID int64, name string, parentID *int64) (*models.Folder, error)
	ListRoot(ctx context.Context, userID int64) (*models.RootContents, error)
	Contents(ctx context.Context, userID, folderID int64) (*models.FolderContents, error)
	Rename(ctx context.Context, userID, folderID int64, name string) (*models.Folder, error)
	Delete(ctx context.Context, userID, folderID int64) error
}

type FileService interface {
	Create(ctx context.Context, userID int64, name, content string, parentID *int64) (*models.File, error)
	Get(ctx context.Context, userID, fileID int64) (*models.File, error)
	Download(ctx context.Context, userID, fileID int64) (*models.Download, error)
	Update(ctx context.Context, userID, fileID int64, name *string, parentID *int64) (*models.File, error)
	Delete(ctx context.Context, userID, fileID int64) error
}

// Pinger reports database reachability; *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

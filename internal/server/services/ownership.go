package services

import (
	"context"
	"errors"

	"github.com/huseyinozgul/docvault/internal/common"
	"github.com/huseyinozgul/docvault/internal/dbx"
	"github.com/huseyinozgul/docvault/internal/server/models"
	"github.com/huseyinozgul/docvault/internal/server/repositories/folders"
	"github.com/huseyinozgul/docvault/internal/server/repositories/repomanager"
)

// Resolver is the single gate through which folder and file services load a
// specific resource. Every lookup is filtered by owner; a resource that does
// not exist and one owned by another user both come back as
// common.ErrorNotFound.
type Resolver struct {
	repomanager repomanager.RepositoryManager
}

func NewResolver(m repomanager.RepositoryManager) *Resolver {
	return &Resolver{repomanager: m}
}

// Folder resolves folderID for userID. lock is applied when db is a
// transaction.
func (r *Resolver) Folder(ctx context.Context, db dbx.DBTX, userID, folderID int64, lock folders.LockMode) (*models.Folder, error) {
	f, err := r.repomanager.Folders(db).Get(ctx, folderID, userID, lock)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Reference resolves a folder named in a request body and share-locks it for
// the rest of the transaction. A nil id is the root level and resolves to nil
// without touching storage. An ownership miss is reported as notFound.
func (r *Resolver) Reference(ctx context.Context, db dbx.DBTX, userID int64, folderID *int64, notFound error) (*models.Folder, error) {
	if folderID == nil {
		return nil, nil
	}
	f, err := r.Folder(ctx, db, userID, *folderID, folders.LockForShare)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, notFound
		}
		return nil, err
	}
	return f, nil
}

// File resolves the metadata of fileID for userID.
func (r *Resolver) File(ctx context.Context, db dbx.DBTX, userID, fileID int64) (*models.File, error) {
	return r.repomanager.Files(db).Get(ctx, fileID, userID)
}

// FileWithContent resolves fileID for userID including its stored payload.
func (r *Resolver) FileWithContent(ctx context.Context, db dbx.DBTX, userID, fileID int64) (*models.File, error) {
	return r.repomanager.Files(db).GetWithContent(ctx, fileID, userID)
}

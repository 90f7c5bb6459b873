package services

import (
	"context"
	"database/sql"

	"github.com/huseyinozgul/docvault/internal/common"
	"github.com/huseyinozgul/docvault/internal/dbx"
	"github.com/huseyinozgul/docvault/internal/logging"
	"github.com/huseyinozgul/docvault/internal/server/models"
	"github.com/huseyinozgul/docvault/internal/server/repositories/folders"
	"github.com/huseyinozgul/docvault/internal/server/repositories/repomanager"
)

var readOnlyTx = &sql.TxOptions{ReadOnly: true}

// FolderService manages a user's folder tree. Every method takes the id of
// the authenticated user and never sees anybody else's rows.
type FolderService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	resolver    *Resolver
	logger      logging.Logger
}

func NewFolderService(db *sql.DB, m repomanager.RepositoryManager, r *Resolver, l logging.Logger) *FolderService {
	return &FolderService{db: db, repomanager: m, resolver: r, logger: l}
}

// Create inserts a folder under parentID, or at root level when parentID is
// nil. An unknown parent yields common.ErrorParentFolderNotFound.
func (s *FolderService) Create(ctx context.Context, userID int64, name string, parentID *int64) (*models.Folder, error) {
	var created *models.Folder

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.resolver.Reference(ctx, tx, userID, parentID, common.ErrorParentFolderNotFound); err != nil {
			return err
		}

		f, err := s.repomanager.Folders(tx).Create(ctx, &models.Folder{
			Name:           name,
			UserID:         userID,
			ParentFolderID: parentID,
		})
		if err != nil {
			return err
		}
		created = f
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "folder created", "folder_id", created.ID, "user_id", userID)
	return created, nil
}

// ListRoot returns the folders and files of userID that have no parent.
func (s *FolderService) ListRoot(ctx context.Context, userID int64) (*models.RootContents, error) {
	var out models.RootContents

	err := dbx.WithTx(ctx, s.db, readOnlyTx, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		if out.Folders, err = s.repomanager.Folders(tx).ListByParent(ctx, userID, nil); err != nil {
			return err
		}
		out.Files, err = s.repomanager.Files(tx).ListByParent(ctx, userID, nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Contents returns folderID with its direct subfolders and files.
func (s *FolderService) Contents(ctx context.Context, userID, folderID int64) (*models.FolderContents, error) {
	var out models.FolderContents

	err := dbx.WithTx(ctx, s.db, readOnlyTx, func(ctx context.Context, tx dbx.DBTX) error {
		f, err := s.resolver.Folder(ctx, tx, userID, folderID, folders.NoLock)
		if err != nil {
			return err
		}
		out.Folder = f

		if out.Subfolders, err = s.repomanager.Folders(tx).ListByParent(ctx, userID, &f.ID); err != nil {
			return err
		}
		out.Files, err = s.repomanager.Files(tx).ListByParent(ctx, userID, &f.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Rename changes the name of folderID. The name is the only mutable field.
func (s *FolderService) Rename(ctx context.Context, userID, folderID int64, name string) (*models.Folder, error) {
	var renamed *models.Folder

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		f, err := s.resolver.Folder(ctx, tx, userID, folderID, folders.LockForUpdate)
		if err != nil {
			return err
		}
		renamed, err = s.repomanager.Folders(tx).Rename(ctx, f.ID, userID, name)
		return err
	})
	if err != nil {
		return nil, err
	}
	return renamed, nil
}

// Delete removes an empty folder. Subfolders are checked before files, so a
// folder holding both reports common.ErrorFolderHasSubfolders.
func (s *FolderService) Delete(ctx context.Context, userID, folderID int64) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		f, err := s.resolver.Folder(ctx, tx, userID, folderID, folders.LockForUpdate)
		if err != nil {
			return err
		}

		n, err := s.repomanager.Folders(tx).CountByParent(ctx, userID, f.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			return common.ErrorFolderHasSubfolders
		}

		n, err = s.repomanager.Files(tx).CountByParent(ctx, userID, f.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			return common.ErrorFolderHasFiles
		}

		return s.repomanager.Folders(tx).Delete(ctx, f.ID, userID)
	})
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "folder deleted", "folder_id", folderID, "user_id", userID)
	return nil
}

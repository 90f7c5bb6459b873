package services

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"

	"github.com/huseyinozgul/docvault/internal/common"
	"github.com/huseyinozgul/docvault/internal/dbx"
	"github.com/huseyinozgul/docvault/internal/logging"
	"github.com/huseyinozgul/docvault/internal/server/contentstore"
	"github.com/huseyinozgul/docvault/internal/server/models"
	"github.com/huseyinozgul/docvault/internal/server/repositories/repomanager"
)

// FileService manages file records. Content arrives base64 encoded and is
// kept encoded; it is decoded only for Download.
//
// With a non-nil blob store the encoded payload lives in the store under a
// per-user key and the row only carries that key. Otherwise it is kept in the
// files table.
type FileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	resolver    *Resolver
	blobs       contentstore.Store
	logger      logging.Logger
}

func NewFileService(db *sql.DB, m repomanager.RepositoryManager, r *Resolver, blobs contentstore.Store, l logging.Logger) *FileService {
	return &FileService{db: db, repomanager: m, resolver: r, blobs: blobs, logger: l}
}

// Create validates content, derives size and MIME type, and stores the file
// under parentID (root level when nil).
func (s *FileService) Create(ctx context.Context, userID int64, name, content string, parentID *int64) (*models.File, error) {
	decoded, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		return nil, common.ErrorInvalidContent
	}

	file := &models.File{
		Name:           name,
		UserID:         userID,
		ParentFolderID: parentID,
		Content:        content,
		Size:           int64(len(decoded)),
		MimeType:       MimeTypeFor(name),
	}

	if s.blobs != nil {
		key := contentstore.ObjectKey(userID)
		if err := s.blobs.Put(ctx, key, content); err != nil {
			return nil, err
		}
		file.StorageKey = &key
		file.Content = ""
	}

	var created *models.File
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.resolver.Reference(ctx, tx, userID, parentID, common.ErrorParentFolderNotFound); err != nil {
			return err
		}
		f, err := s.repomanager.Files(tx).Create(ctx, file)
		if err != nil {
			return err
		}
		created = f
		return nil
	})
	if err != nil {
		if file.StorageKey != nil {
			s.removeObject(ctx, *file.StorageKey)
		}
		return nil, err
	}

	s.logger.Info(ctx, "file created", "file_id", created.ID, "user_id", userID, "size", created.Size)
	return created, nil
}

// Get returns the metadata of fileID.
func (s *FileService) Get(ctx context.Context, userID, fileID int64) (*models.File, error) {
	return s.resolver.File(ctx, s.db, userID, fileID)
}

// Download returns the decoded content of fileID. Content that was accepted
// at write time but no longer decodes yields common.ErrorCorruptContent.
func (s *FileService) Download(ctx context.Context, userID, fileID int64) (*models.Download, error) {
	f, err := s.resolver.FileWithContent(ctx, s.db, userID, fileID)
	if err != nil {
		return nil, err
	}

	encoded := f.Content
	if f.StorageKey != nil {
		if s.blobs == nil {
			s.logger.Error(ctx, "file content is in object storage but no store is configured",
				"file_id", f.ID, "storage_key", *f.StorageKey)
			return nil, common.ErrorCorruptContent
		}
		encoded, err = s.blobs.Get(ctx, *f.StorageKey)
		if err != nil {
			s.logger.Error(ctx, "failed to read file content", "file_id", f.ID, "storage_key", *f.StorageKey, "error", err)
			if errors.Is(err, common.ErrorNotFound) {
				return nil, common.ErrorCorruptContent
			}
			return nil, err
		}
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		s.logger.Error(ctx, "stored file content cannot be decoded", "file_id", f.ID, "error", err)
		return nil, common.ErrorCorruptContent
	}

	mimeType := DefaultDownloadType
	if f.MimeType != nil {
		mimeType = *f.MimeType
	}
	return &models.Download{Name: f.Name, MimeType: mimeType, Data: data}, nil
}

// Update renames and/or moves fileID. A nil argument leaves that field
// unchanged; at least one must be set, which is checked once the file has
// been resolved. A parentID equal to common.RootFolderSentinel moves the file
// to root level. The MIME type follows the name.
func (s *FileService) Update(ctx context.Context, userID, fileID int64, name *string, parentID *int64) (*models.File, error) {
	var updated *models.File
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		f, err := s.resolver.File(ctx, tx, userID, fileID)
		if err != nil {
			return err
		}
		if name == nil && parentID == nil {
			return common.ErrorNoUpdateFields
		}

		// An empty name keeps the current one.
		if name != nil && *name != "" {
			f.Name = *name
			f.MimeType = MimeTypeFor(*name)
		}

		if parentID != nil {
			if *parentID == common.RootFolderSentinel {
				f.ParentFolderID = nil
			} else {
				target, err := s.resolver.Reference(ctx, tx, userID, parentID, common.ErrorTargetFolderNotFound)
				if err != nil {
					return err
				}
				f.ParentFolderID = &target.ID
			}
		}

		updated, err = s.repomanager.Files(tx).Update(ctx, f)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes fileID. Content held in the blob store is removed after the
// row is gone; a failure there is logged and not reported.
func (s *FileService) Delete(ctx context.Context, userID, fileID int64) error {
	var deleted *models.File
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		f, err := s.resolver.File(ctx, tx, userID, fileID)
		if err != nil {
			return err
		}
		deleted, err = s.repomanager.Files(tx).Delete(ctx, f.ID, userID)
		return err
	})
	if err != nil {
		return err
	}

	if deleted.StorageKey != nil {
		s.removeObject(ctx, *deleted.StorageKey)
	}
	s.logger.Info(ctx, "file deleted", "file_id", fileID, "user_id", userID)
	return nil
}

func (s *FileService) removeObject(ctx context.Context, key string) {
	if s.blobs == nil {
		return
	}
	if err := s.blobs.Delete(ctx, key); err != nil {
		s.logger.Warn(ctx, "failed to remove file content", "storage_key", key, "error", err)
	}
}

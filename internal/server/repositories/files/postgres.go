// Package files stores file records, and inline payloads, in the files table.
package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/huseyinozgul/docvault/internal/common"
	"github.com/huseyinozgul/docvault/internal/dbx"
	"github.com/huseyinozgul/docvault/internal/server/models"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// metaColumns never include the payload; listings and metadata reads stay
// small regardless of file size.
const metaColumns = `id, name, user_id, parent_folder_id, storage_key, size, mime_type, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanFile(s scanner, withContent bool) (*models.File, error) {
	var (
		f        models.File
		parent   sql.NullInt64
		key      sql.NullString
		mimeType sql.NullString
	)
	dest := []any{&f.ID, &f.Name, &f.UserID, &parent, &key, &f.Size, &mimeType, &f.CreatedAt}
	if withContent {
		dest = append(dest, &f.Content)
	}
	if err := s.Scan(dest...); err != nil {
		return nil, err
	}
	f.ParentFolderID = dbx.Int64Ptr(parent)
	f.StorageKey = dbx.StringPtr(key)
	f.MimeType = dbx.StringPtr(mimeType)
	return &f, nil
}

// Create inserts file and fills in the generated id and timestamp. If the
// parent folder disappeared before commit, common.ErrorNotFound is returned.
func (r *PostgresRepository) Create(ctx context.Context, file *models.File) (*models.File, error) {
	query :=
		`INSERT INTO files (name, content, storage_key, size, mime_type, user_id, parent_folder_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		file.Name, file.Content, file.StorageKey, file.Size, file.MimeType, file.UserID, file.ParentFolderID).
		Scan(&file.ID, &file.CreatedAt)
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return nil, common.ErrorParentFolderNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return file, nil
}

// Get returns the metadata of file id owned by userID.
func (r *PostgresRepository) Get(ctx context.Context, id, userID int64) (*models.File, error) {
	return r.get(ctx, id, userID, false)
}

// GetWithContent is Get plus the stored payload column.
func (r *PostgresRepository) GetWithContent(ctx context.Context, id, userID int64) (*models.File, error) {
	return r.get(ctx, id, userID, true)
}

func (r *PostgresRepository) get(ctx context.Context, id, userID int64, withContent bool) (*models.File, error) {
	columns := metaColumns
	if withContent {
		columns += `, content`
	}
	query := `SELECT ` + columns + ` FROM files
		 WHERE id = $1 AND user_id = $2`

	f, err := scanFile(r.db.QueryRowContext(ctx, query, id, userID), withContent)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return f, nil
}

// ListByParent returns the files directly inside parentID, or the root level
// files when parentID is nil, ordered by id.
func (r *PostgresRepository) ListByParent(ctx context.Context, userID int64, parentID *int64) ([]*models.File, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if parentID == nil {
		rows, err = r.db.QueryContext(ctx, `SELECT `+metaColumns+` FROM files
		 WHERE user_id = $1 AND parent_folder_id IS NULL
		 ORDER BY id`, userID)
	} else {
		rows, err = r.db.QueryContext(ctx, `SELECT `+metaColumns+` FROM files
		 WHERE user_id = $1 AND parent_folder_id = $2
		 ORDER BY id`, userID, *parentID)
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.File, 0)
	for rows.Next() {
		f, err := scanFile(rows, false)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// CountByParent counts the files directly inside parentID.
func (r *PostgresRepository) CountByParent(ctx context.Context, userID, parentID int64) (int, error) {
	query :=
		`SELECT COUNT(*) FROM files
		 WHERE user_id = $1 AND parent_folder_id = $2`

	var n int
	if err := r.db.QueryRowContext(ctx, query, userID, parentID).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

// Update persists name, mime type and parent of file and returns the
// updated metadata.
func (r *PostgresRepository) Update(ctx context.Context, file *models.File) (*models.File, error) {
	query := `UPDATE files SET name = $1, mime_type = $2, parent_folder_id = $3
		 WHERE id = $4 AND user_id = $5
		 RETURNING ` + metaColumns

	f, err := scanFile(r.db.QueryRowContext(ctx, query,
		file.Name, file.MimeType, file.ParentFolderID, file.ID, file.UserID), false)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrorNotFound
		case dbx.IsForeignKeyViolation(err):
			return nil, common.ErrorTargetFolderNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return f, nil
}

// Delete removes file id and returns the deleted metadata, which carries the
// storage key of an out-of-row payload.
func (r *PostgresRepository) Delete(ctx context.Context, id, userID int64) (*models.File, error) {
	query := `DELETE FROM files
		 WHERE id = $1 AND user_id = $2
		 RETURNING ` + metaColumns

	f, err := scanFile(r.db.QueryRowContext(ctx, query, id, userID), false)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return f, nil
}

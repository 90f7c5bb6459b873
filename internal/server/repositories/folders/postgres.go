// Package folders stores the per-user folder tree in the folders table.
package folders

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

const folderColumns = `id, name, user_id, parent_folder_id, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanFolder(s scanner) (*models.Folder, error) {
	var (
		f      models.Folder
		parent sql.NullInt64
	)
	if err := s.Scan(&f.ID, &f.Name, &f.UserID, &parent, &f.CreatedAt); err != nil {
		return nil, err
	}
	f.ParentFolderID = dbx.Int64Ptr(parent)
	return &f, nil
}

// Create inserts folder and fills in the generated id and timestamp. If the
// parent disappeared before commit the foreign key fires and
// common.ErrorNotFound is returned.
func (r *PostgresRepository) Create(ctx context.Context, folder *models.Folder) (*models.Folder, error) {
	query :=
		`INSERT INTO folders (name, user_id, parent_folder_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, folder.Name, folder.UserID, folder.ParentFolderID).
		Scan(&folder.ID, &folder.CreatedAt)
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return nil, common.ErrorParentFolderNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return folder, nil
}

// Get returns the folder id owned by userID, optionally row-locked.
func (r *PostgresRepository) Get(ctx context.Context, id, userID int64, lock LockMode) (*models.Folder, error) {
	query := `SELECT ` + folderColumns + ` FROM folders
		 WHERE id = $1 AND user_id = $2`
	if lock != NoLock {
		query += ` ` + string(lock)
	}

	f, err := scanFolder(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return f, nil
}

// ListByParent returns the direct child folders of parentID, or the root
// level folders when parentID is nil, ordered by id.
func (r *PostgresRepository) ListByParent(ctx context.Context, userID int64, parentID *int64) ([]*models.Folder, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if parentID == nil {
		rows, err = r.db.QueryContext(ctx, `SELECT `+folderColumns+` FROM folders
		 WHERE user_id = $1 AND parent_folder_id IS NULL
		 ORDER BY id`, userID)
	} else {
		rows, err = r.db.QueryContext(ctx, `SELECT `+folderColumns+` FROM folders
		 WHERE user_id = $1 AND parent_folder_id = $2
		 ORDER BY id`, userID, *parentID)
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Folder, 0)
	for rows.Next() {
		f, err := scanFolder(rows)
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

// CountByParent counts the direct child folders of parentID.
func (r *PostgresRepository) CountByParent(ctx context.Context, userID, parentID int64) (int, error) {
	query :=
		`SELECT COUNT(*) FROM folders
		 WHERE user_id = $1 AND parent_folder_id = $2`

	var n int
	if err := r.db.QueryRowContext(ctx, query, userID, parentID).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

// Rename sets the name of folder id and returns the updated row.
func (r *PostgresRepository) Rename(ctx context.Context, id, userID int64, name string) (*models.Folder, error) {
	query := `UPDATE folders SET name = $1
		 WHERE id = $2 AND user_id = $3
		 RETURNING ` + folderColumns

	f, err := scanFolder(r.db.QueryRowContext(ctx, query, name, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return f, nil
}

// Delete removes folder id. Exactly one row must be affected.
func (r *PostgresRepository) Delete(ctx context.Context, id, userID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM folders WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/huseyinozgul/docvault/internal/common"
	"github.com/huseyinozgul/docvault/internal/dbx"
	"github.com/huseyinozgul/docvault/internal/logging"
	"github.com/huseyinozgul/docvault/internal/server/models"
	filesrepo "github.com/huseyinozgul/docvault/internal/server/repositories/files"
	foldersrepo "github.com/huseyinozgul/docvault/internal/server/repositories/folders"
	usersrepo "github.com/huseyinozgul/docvault/internal/server/repositories/users"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func expectCommitted(mock sqlmock.Sqlmock, n int) {
	for i := 0; i < n; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
	}
}

func expectRolledBack(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectRollback()
}

func ptr[T any](v T) *T { return &v }

// memStore is an in-memory stand-in for the three tables. Repositories built
// on it ignore the DBTX they are bound to.
type memStore struct {
	mu      sync.Mutex
	nextID  int64
	users   map[int64]*models.User
	folders map[int64]*models.Folder
	files   map[int64]*models.File

	// locks records every lock mode requested through folder lookups.
	locks []foldersrepo.LockMode

	failFolderCount error
	failFileCount   error
	failFileCreate  error
}

func newMemStore() *memStore {
	return &memStore{
		users:   map[int64]*models.User{},
		folders: map[int64]*models.Folder{},
		files:   map[int64]*models.File{},
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) addUser(email string) *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := &models.User{ID: m.id(), Email: email, CreatedAt: time.Now()}
	m.users[u.ID] = u
	return u
}

func (m *memStore) addFolder(userID int64, name string, parent *int64) *models.Folder {
	m.mu.Lock()
	defer m.mu.Unlock()
	f := &models.Folder{ID: m.id(), Name: name, UserID: userID, ParentFolderID: parent, CreatedAt: time.Now()}
	m.folders[f.ID] = f
	return f
}

func (m *memStore) addFile(userID int64, name, content string, parent *int64) *models.File {
	m.mu.Lock()
	defer m.mu.Unlock()
	f := &models.File{ID: m.id(), Name: name, UserID: userID, ParentFolderID: parent, Content: content, CreatedAt: time.Now()}
	m.files[f.ID] = f
	return f
}

func sameParent(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

type memUsers struct{ s *memStore }

func (r memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	c := *u
	c.ID = r.s.id()
	c.CreatedAt = time.Now()
	r.s.users[c.ID] = &c
	return &c, nil
}

func (r memUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r memUsers) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *u
	return &c, nil
}

type memFolders struct{ s *memStore }

func (r memFolders) Create(_ context.Context, f *models.Folder) (*models.Folder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if f.ParentFolderID != nil {
		if _, ok := r.s.folders[*f.ParentFolderID]; !ok {
			return nil, common.ErrorParentFolderNotFound
		}
	}
	c := *f
	c.ID = r.s.id()
	c.CreatedAt = time.Now()
	r.s.folders[c.ID] = &c
	out := c
	return &out, nil
}

func (r memFolders) Get(_ context.Context, id, userID int64, lock foldersrepo.LockMode) (*models.Folder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.locks = append(r.s.locks, lock)
	f, ok := r.s.folders[id]
	if !ok || f.UserID != userID {
		return nil, common.ErrorNotFound
	}
	c := *f
	return &c, nil
}

func (r memFolders) ListByParent(_ context.Context, userID int64, parentID *int64) ([]*models.Folder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*models.Folder{}
	for _, f := range r.s.folders {
		if f.UserID == userID && sameParent(f.ParentFolderID, parentID) {
			c := *f
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memFolders) CountByParent(_ context.Context, userID, parentID int64) (int, error) {
	if r.s.failFolderCount != nil {
		return 0, r.s.failFolderCount
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, f := range r.s.folders {
		if f.UserID == userID && sameParent(f.ParentFolderID, &parentID) {
			n++
		}
	}
	return n, nil
}

func (r memFolders) Rename(_ context.Context, id, userID int64, name string) (*models.Folder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.folders[id]
	if !ok || f.UserID != userID {
		return nil, common.ErrorNotFound
	}
	f.Name = name
	c := *f
	return &c, nil
}

func (r memFolders) Delete(_ context.Context, id, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.folders[id]
	if !ok || f.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.s.folders, id)
	return nil
}

type memFiles struct{ s *memStore }

func (r memFiles) Create(_ context.Context, f *models.File) (*models.File, error) {
	if r.s.failFileCreate != nil {
		return nil, r.s.failFileCreate
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *f
	c.ID = r.s.id()
	c.CreatedAt = time.Now()
	r.s.files[c.ID] = &c
	out := c
	out.Content = ""
	return &out, nil
}

func (r memFiles) get(id, userID int64, withContent bool) (*models.File, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.files[id]
	if !ok || f.UserID != userID {
		return nil, common.ErrorNotFound
	}
	c := *f
	if !withContent {
		c.Content = ""
	}
	return &c, nil
}

func (r memFiles) Get(_ context.Context, id, userID int64) (*models.File, error) {
	return r.get(id, userID, false)
}

func (r memFiles) GetWithContent(_ context.Context, id, userID int64) (*models.File, error) {
	return r.get(id, userID, true)
}

func (r memFiles) ListByParent(_ context.Context, userID int64, parentID *int64) ([]*models.File, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*models.File{}
	for _, f := range r.s.files {
		if f.UserID == userID && sameParent(f.ParentFolderID, parentID) {
			c := *f
			c.Content = ""
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memFiles) CountByParent(_ context.Context, userID, parentID int64) (int, error) {
	if r.s.failFileCount != nil {
		return 0, r.s.failFileCount
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, f := range r.s.files {
		if f.UserID == userID && sameParent(f.ParentFolderID, &parentID) {
			n++
		}
	}
	return n, nil
}

func (r memFiles) Update(_ context.Context, f *models.File) (*models.File, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.files[f.ID]
	if !ok || cur.UserID != f.UserID {
		return nil, common.ErrorNotFound
	}
	if f.ParentFolderID != nil {
		if _, ok := r.s.folders[*f.ParentFolderID]; !ok {
			return nil, common.ErrorTargetFolderNotFound
		}
	}
	cur.Name = f.Name
	cur.MimeType = f.MimeType
	cur.ParentFolderID = f.ParentFolderID
	c := *cur
	c.Content = ""
	return &c, nil
}

func (r memFiles) Delete(_ context.Context, id, userID int64) (*models.File, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.files[id]
	if !ok || f.UserID != userID {
		return nil, common.ErrorNotFound
	}
	delete(r.s.files, id)
	c := *f
	c.Content = ""
	return &c, nil
}

type fakeRepoManager struct{ s *memStore }

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository          { return memUsers{m.s} }
func (m *fakeRepoManager) Folders(dbx.DBTX) foldersrepo.Repository      { return memFolders{m.s} }
func (m *fakeRepoManager) Files(dbx.DBTX) filesrepo.Repository          { return memFiles{m.s} }

// memBlobs is an in-memory contentstore.Store.
type memBlobs struct {
	mu      sync.Mutex
	objects map[string]string

	putErr    error
	deleteErr error
}

func newMemBlobs() *memBlobs { return &memBlobs{objects: map[string]string{}} }

func (b *memBlobs) Put(_ context.Context, key, encoded string) error {
	if b.putErr != nil {
		return b.putErr
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[key] = encoded
	return nil
}

func (b *memBlobs) Get(_ context.Context, key string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.objects[key]
	if !ok {
		return "", fmt.Errorf("object %s: %w", key, common.ErrorNotFound)
	}
	return v, nil
}

func (b *memBlobs) Delete(_ context.Context, key string) error {
	if b.deleteErr != nil {
		return b.deleteErr
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.objects, key)
	return nil
}

func (b *memBlobs) len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.objects)
}

var nopLogger = logging.Nop()

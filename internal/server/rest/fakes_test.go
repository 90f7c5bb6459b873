package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/huseyinozgul/docvault/internal/common"
	"github.com/huseyinozgul/docvault/internal/logging"
	"github.com/huseyinozgul/docvault/internal/server/models"
)

const validToken = "good-token"

var (
	testUser = &models.User{ID: 7, Email: "a@x.com"}
	created  = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
)

type fakeUsers struct {
	registerErr error
	loginErr    error
	authErr     error

	gotPassword string
}

func (f *fakeUsers) Register(_ context.Context, email, password string) (*models.User, error) {
	f.gotPassword = password
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &models.User{ID: 1, Email: email}, nil
}

func (f *fakeUsers) Login(context.Context, string, string) (string, error) {
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return "jwt", nil
}

func (f *fakeUsers) Authenticate(_ context.Context, token string) (*models.User, error) {
	if f.authErr != nil {
		return nil, f.authErr
	}
	if token != validToken {
		return nil, common.ErrInvalidToken
	}
	return testUser, nil
}

// fakeFolders records the arguments of the last call and returns err when set.
type fakeFolders struct {
	err error

	userID   int64
	folderID int64
	name     string
	parentID *int64
}

func (f *fakeFolders) Create(_ context.Context, userID int64, name string, parentID *int64) (*models.Folder, error) {
	f.userID, f.name, f.parentID = userID, name, parentID
	if f.err != nil {
		return nil, f.err
	}
	return &models.Folder{ID: 3, Name: name, UserID: userID, ParentFolderID: parentID, CreatedAt: created}, nil
}

func (f *fakeFolders) ListRoot(_ context.Context, userID int64) (*models.RootContents, error) {
	f.userID = userID
	if f.err != nil {
		return nil, f.err
	}
	return &models.RootContents{Folders: []*models.Folder{}, Files: []*models.File{}}, nil
}

func (f *fakeFolders) Contents(_ context.Context, userID, folderID int64) (*models.FolderContents, error) {
	f.userID, f.folderID = userID, folderID
	if f.err != nil {
		return nil, f.err
	}
	parent := folderID
	return &models.FolderContents{
		Folder:     &models.Folder{ID: folderID, Name: "Docs", UserID: userID, CreatedAt: created},
		Subfolders: []*models.Folder{{ID: 11, Name: "Sub", ParentFolderID: &parent, CreatedAt: created}},
		Files:      nil,
	}, nil
}

func (f *fakeFolders) Rename(_ context.Context, userID, folderID int64, name string) (*models.Folder, error) {
	f.userID, f.folderID, f.name = userID, folderID, name
	if f.err != nil {
		return nil, f.err
	}
	return &models.Folder{ID: folderID, Name: name, UserID: userID, CreatedAt: created}, nil
}

func (f *fakeFolders) Delete(_ context.Context, userID, folderID int64) error {
	f.userID, f.folderID = userID, folderID
	return f.err
}

type fakeFiles struct {
	err      error
	download *models.Download

	userID   int64
	fileID   int64
	name     *string
	content  string
	parentID *int64
}

func (f *fakeFiles) file(id int64, name string) *models.File {
	mt := "text/plain"
	return &models.File{ID: id, Name: name, UserID: f.userID, Size: 2, MimeType: &mt, ParentFolderID: f.parentID, CreatedAt: created}
}

func (f *fakeFiles) Create(_ context.Context, userID int64, name, content string, parentID *int64) (*models.File, error) {
	f.userID, f.name, f.content, f.parentID = userID, &name, content, parentID
	if f.err != nil {
		return nil, f.err
	}
	return f.file(5, name), nil
}

func (f *fakeFiles) Get(_ context.Context, userID, fileID int64) (*models.File, error) {
	f.userID, f.fileID = userID, fileID
	if f.err != nil {
		return nil, f.err
	}
	return f.file(fileID, "r.txt"), nil
}

func (f *fakeFiles) Download(_ context.Context, userID, fileID int64) (*models.Download, error) {
	f.userID, f.fileID = userID, fileID
	if f.err != nil {
		return nil, f.err
	}
	return f.download, nil
}

func (f *fakeFiles) Update(_ context.Context, userID, fileID int64, name *string, parentID *int64) (*models.File, error) {
	f.userID, f.fileID, f.name, f.parentID = userID, fileID, name, parentID
	if f.err != nil {
		return nil, f.err
	}
	n := "r.txt"
	if name != nil {
		n = *name
	}
	return f.file(fileID, n), nil
}

func (f *fakeFiles) Delete(_ context.Context, userID, fileID int64) error {
	f.userID, f.fileID = userID, fileID
	return f.err
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

type testAPI struct {
	users   *fakeUsers
	folders *fakeFolders
	files   *fakeFiles
	pinger  *fakePinger
	router  http.Handler
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	api := &testAPI{
		users:   &fakeUsers{},
		folders: &fakeFolders{},
		files:   &fakeFiles{},
		pinger:  &fakePinger{},
	}
	h := NewHandler(api.users, api.folders, api.files, api.pinger, logging.Nop())
	api.router = NewRouter(h, []string{"*"}, logging.Nop())
	return api
}

// httpRequest builds a request with the given raw Authorization header.
func httpRequest(method, path, authorization string) *http.Request {
	r := httptest.NewRequest(method, path, nil)
	if authorization != "" {
		r.Header.Set("Authorization", authorization)
	}
	return r
}

func serve(a *testAPI, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, r)
	return rec
}

// do sends a request, authenticated unless token is empty.
func (a *testAPI) do(method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return serve(a, req)
}

var errBoom = errors.New("boom")

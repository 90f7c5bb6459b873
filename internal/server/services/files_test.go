package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/huseyinozgul/docvault/internal/common"
	"github.com/huseyinozgul/docvault/internal/logging"
	"github.com/huseyinozgul/docvault/internal/server/contentstore"
)

type fileFixture struct {
	store    *memStore
	svc      *FileService
	commits  func(int)
	rollback func()
	logs     *observer.ObservedLogs
}

func newFileFixture(t *testing.T, blobs contentstore.Store) *fileFixture {
	t.Helper()
	store := newMemStore()
	db, mock := newSQLMockDB(t)
	m := &fakeRepoManager{s: store}
	core, logs := observer.New(zapcore.DebugLevel)
	logger := logging.NewZapLogger(zap.New(core))

	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("sql expectations: %v", err)
		}
	})
	return &fileFixture{
		store:    store,
		svc:      NewFileService(db, m, NewResolver(m), blobs, logger),
		commits:  func(n int) { expectCommitted(mock, n) },
		rollback: func() { expectRolledBack(mock) },
		logs:     logs,
	}
}

func b64(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }

func TestFileCreate_DerivesSizeAndMime(t *testing.T) {
	fx := newFileFixture(t, nil)
	u := fx.store.addUser("a@x.com")
	docs := fx.store.addFolder(u.ID, "Docs", nil)
	fx.commits(1)

	f, err := fx.svc.Create(context.Background(), u.ID, "r.txt", b64("hi"), &docs.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), f.Size)
	require.NotNil(t, f.MimeType)
	assert.Equal(t, "text/plain", *f.MimeType)
	require.NotNil(t, f.ParentFolderID)
	assert.Equal(t, docs.ID, *f.ParentFolderID)

	// The encoded form is what gets stored.
	assert.Equal(t, b64("hi"), fx.store.files[f.ID].Content)
	assert.Nil(t, fx.store.files[f.ID].StorageKey)
}

func TestFileCreate_InvalidBase64(t *testing.T) {
	fx := newFileFixture(t, nil)
	u := fx.store.addUser("a@x.com")

	for _, content := range []string{"not base64!", "aGk", "a GVsbG8="} {
		_, err := fx.svc.Create(context.Background(), u.ID, "r.txt", content, nil)
		assert.ErrorIs(t, err, common.ErrorInvalidContent, "content %q", content)
	}
	assert.Empty(t, fx.store.files)
}

func TestFileCreate_UnknownExtension(t *testing.T) {
	fx := newFileFixture(t, nil)
	u := fx.store.addUser("a@x.com")
	fx.commits(2)

	f, err := fx.svc.Create(context.Background(), u.ID, "README", b64(""), nil)
	require.NoError(t, err)
	assert.Nil(t, f.MimeType)
	assert.Equal(t, int64(0), f.Size)

	f, err = fx.svc.Create(context.Background(), u.ID, "blob.zzzunknown", b64("x"), nil)
	require.NoError(t, err)
	assert.Nil(t, f.MimeType)
}

func TestFileCreate_ParentNotOwned(t *testing.T) {
	fx := newFileFixture(t, nil)
	u := fx.store.addUser("a@x.com")
	other := fx.store.addUser("b@x.com")
	theirs := fx.store.addFolder(other.ID, "Theirs", nil)
	fx.rollback()

	_, err := fx.svc.Create(context.Background(), u.ID, "r.txt", b64("hi"), &theirs.ID)
	assert.ErrorIs(t, err, common.ErrorParentFolderNotFound)
	assert.Empty(t, fx.store.files)
}

func TestFileGet_OwnerScoped(t *testing.T) {
	fx := newFileFixture(t, nil)
	u := fx.store.addUser("a@x.com")
	other := fx.store.addUser("b@x.com")
	f := fx.store.addFile(u.ID, "r.txt", b64("hi"), nil)

	got, err := fx.svc.Get(context.Background(), u.ID, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "r.txt", got.Name)
	assert.Empty(t, got.Content)

	_, err = fx.svc.Get(context.Background(), other.ID, f.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = fx.svc.Get(context.Background(), u.ID, 12345)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestFileRoundTrip_ArbitraryBytes(t *testing.T) {
	payload := []byte{0x00, 0xff, 0x10, 'h', 'i', 0x80, 0x7f}

	for _, tc := range []struct {
		name  string
		blobs contentstore.Store
	}{
		{"inline", nil},
		{"object store", newMemBlobs()},
	} {
		t.Run(tc.name, func(t *testing.T) {
			fx := newFileFixture(t, tc.blobs)
			u := fx.store.addUser("a@x.com")
			fx.commits(1)

			f, err := fx.svc.Create(context.Background(), u.ID, "data.bin", base64.StdEncoding.EncodeToString(payload), nil)
			require.NoError(t, err)
			assert.Equal(t, int64(len(payload)), f.Size)

			d, err := fx.svc.Download(context.Background(), u.ID, f.ID)
			require.NoError(t, err)
			assert.True(t, bytes.Equal(payload, d.Data))
			assert.Equal(t, "data.bin", d.Name)
			assert.Equal(t, DefaultDownloadType, d.MimeType)
		})
	}
}

func TestFileDownload_CorruptContent(t *testing.T) {
	fx := newFileFixture(t, nil)
	u := fx.store.addUser("a@x.com")
	f := fx.store.addFile(u.ID, "r.txt", "%%%corrupt", nil)

	_, err := fx.svc.Download(context.Background(), u.ID, f.ID)
	assert.ErrorIs(t, err, common.ErrorCorruptContent)
	assert.Equal(t, 1, fx.logs.FilterMessage("stored file content cannot be decoded").Len())
}

func TestFileDownload_MissingObject(t *testing.T) {
	blobs := newMemBlobs()
	fx := newFileFixture(t, blobs)
	u := fx.store.addUser("a@x.com")
	f := fx.store.addFile(u.ID, "r.txt", "", nil)
	f.StorageKey = ptr("users/1/files/gone")

	_, err := fx.svc.Download(context.Background(), u.ID, f.ID)
	assert.ErrorIs(t, err, common.ErrorCorruptContent)
}

func TestFileDownload_OtherUser(t *testing.T) {
	fx := newFileFixture(t, nil)
	u := fx.store.addUser("a@x.com")
	other := fx.store.addUser("b@x.com")
	f := fx.store.addFile(u.ID, "r.txt", b64("hi"), nil)

	_, err := fx.svc.Download(context.Background(), other.ID, f.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestFileUpdate(t *testing.T) {
	fx := newFileFixture(t, nil)
	u := fx.store.addUser("a@x.com")
	docs := fx.store.addFolder(u.ID, "Docs", nil)
	f := fx.store.addFile(u.ID, "r.txt", b64("hi"), nil)
	f.MimeType = ptr("text/plain")

	t.Run("no fields", func(t *testing.T) {
		fx.rollback()
		_, err := fx.svc.Update(context.Background(), u.ID, f.ID, nil, nil)
		assert.ErrorIs(t, err, common.ErrorNoUpdateFields)
	})

	t.Run("missing file wins over no fields", func(t *testing.T) {
		fx.rollback()
		_, err := fx.svc.Update(context.Background(), u.ID, 4242, nil, nil)
		assert.ErrorIs(t, err, common.ErrorNotFound)
	})

	t.Run("rename recomputes mime", func(t *testing.T) {
		fx.commits(1)
		got, err := fx.svc.Update(context.Background(), u.ID, f.ID, ptr("report.pdf"), nil)
		require.NoError(t, err)
		assert.Equal(t, "report.pdf", got.Name)
		require.NotNil(t, got.MimeType)
		assert.Equal(t, "application/pdf", *got.MimeType)
		assert.Nil(t, got.ParentFolderID)
	})

	t.Run("move into folder", func(t *testing.T) {
		fx.commits(1)
		got, err := fx.svc.Update(context.Background(), u.ID, f.ID, nil, &docs.ID)
		require.NoError(t, err)
		require.NotNil(t, got.ParentFolderID)
		assert.Equal(t, docs.ID, *got.ParentFolderID)
		assert.Equal(t, "report.pdf", got.Name)
	})

	t.Run("empty name keeps current name", func(t *testing.T) {
		fx.commits(1)
		got, err := fx.svc.Update(context.Background(), u.ID, f.ID, ptr(""), nil)
		require.NoError(t, err)
		assert.Equal(t, "report.pdf", got.Name)
		require.NotNil(t, got.MimeType)
		assert.Equal(t, "application/pdf", *got.MimeType)
		require.NotNil(t, got.ParentFolderID)
		assert.Equal(t, docs.ID, *got.ParentFolderID)
	})

	t.Run("zero moves to root", func(t *testing.T) {
		fx.commits(1)
		got, err := fx.svc.Update(context.Background(), u.ID, f.ID, nil, ptr(common.RootFolderSentinel))
		require.NoError(t, err)
		assert.Nil(t, got.ParentFolderID)
	})

	t.Run("rename to unknown extension clears mime", func(t *testing.T) {
		fx.commits(1)
		got, err := fx.svc.Update(context.Background(), u.ID, f.ID, ptr("notes"), nil)
		require.NoError(t, err)
		assert.Nil(t, got.MimeType)
	})
}

func TestFileUpdate_TargetNotOwned(t *testing.T) {
	fx := newFileFixture(t, nil)
	u := fx.store.addUser("a@x.com")
	other := fx.store.addUser("b@x.com")
	theirs := fx.store.addFolder(other.ID, "Theirs", nil)
	f := fx.store.addFile(u.ID, "r.txt", b64("hi"), nil)
	fx.rollback()
	fx.rollback()

	_, err := fx.svc.Update(context.Background(), u.ID, f.ID, ptr("x.txt"), &theirs.ID)
	assert.ErrorIs(t, err, common.ErrorTargetFolderNotFound)
	assert.Equal(t, "r.txt", fx.store.files[f.ID].Name)

	_, err = fx.svc.Update(context.Background(), other.ID, f.ID, ptr("x.txt"), nil)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.False(t, errors.Is(err, common.ErrorTargetFolderNotFound))
}

func TestFileDelete(t *testing.T) {
	fx := newFileFixture(t, nil)
	u := fx.store.addUser("a@x.com")
	other := fx.store.addUser("b@x.com")
	f := fx.store.addFile(u.ID, "r.txt", b64("hi"), nil)

	fx.rollback()
	err := fx.svc.Delete(context.Background(), other.ID, f.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.Contains(t, fx.store.files, f.ID)

	fx.commits(1)
	require.NoError(t, fx.svc.Delete(context.Background(), u.ID, f.ID))
	assert.NotContains(t, fx.store.files, f.ID)
}

func TestFileObjectStore_Lifecycle(t *testing.T) {
	blobs := newMemBlobs()
	fx := newFileFixture(t, blobs)
	u := fx.store.addUser("a@x.com")
	fx.commits(2)

	f, err := fx.svc.Create(context.Background(), u.ID, "r.txt", b64("hi"), nil)
	require.NoError(t, err)
	row := fx.store.files[f.ID]
	require.NotNil(t, row.StorageKey)
	assert.True(t, strings.HasPrefix(*row.StorageKey, "users/"))
	assert.Empty(t, row.Content)
	assert.Equal(t, b64("hi"), blobs.objects[*row.StorageKey])

	require.NoError(t, fx.svc.Delete(context.Background(), u.ID, f.ID))
	assert.Equal(t, 0, blobs.len())
}

func TestFileObjectStore_FailedInsertRemovesObject(t *testing.T) {
	blobs := newMemBlobs()
	fx := newFileFixture(t, blobs)
	u := fx.store.addUser("a@x.com")
	fx.store.failFileCreate = errBoom{}
	fx.rollback()

	_, err := fx.svc.Create(context.Background(), u.ID, "r.txt", b64("hi"), nil)
	assert.True(t, errors.Is(err, errBoom{}), "got %v", err)
	assert.Equal(t, 0, blobs.len())
}

func TestFileObjectStore_PutError(t *testing.T) {
	blobs := newMemBlobs()
	blobs.putErr = errBoom{}
	fx := newFileFixture(t, blobs)
	u := fx.store.addUser("a@x.com")

	_, err := fx.svc.Create(context.Background(), u.ID, "r.txt", b64("hi"), nil)
	assert.True(t, errors.Is(err, errBoom{}), "got %v", err)
	assert.Empty(t, fx.store.files)
}

func TestFileObjectStore_DeleteErrorIsLogged(t *testing.T) {
	blobs := newMemBlobs()
	fx := newFileFixture(t, blobs)
	u := fx.store.addUser("a@x.com")
	fx.commits(2)

	f, err := fx.svc.Create(context.Background(), u.ID, "r.txt", b64("hi"), nil)
	require.NoError(t, err)

	blobs.deleteErr = errBoom{}
	require.NoError(t, fx.svc.Delete(context.Background(), u.ID, f.ID))
	assert.NotContains(t, fx.store.files, f.ID)
	assert.Equal(t, 1, fx.logs.FilterMessage("failed to remove file content").Len())
}

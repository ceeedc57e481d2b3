package integrity_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"masterdata-monitor/core/database"
	"masterdata-monitor/core/state"
	"masterdata-monitor/core/storage"
	"masterdata-monitor/core/storage/mocks"
	"masterdata-monitor/feature/integrity"
	"masterdata-monitor/feature/integrity/checks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newStore(t *testing.T, dir string, versions state.Versions) *state.Store {
	store := state.NewStore(state.Config{Dir: dir, VersionFile: "version.json", ChangedFile: "changed.json"})
	if versions != nil {
		require.NoError(t, store.SaveVersions(versions))
	}
	return store
}

func writeDatabase(t *testing.T, path string) {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: path})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE cards (id INTEGER PRIMARY KEY, name TEXT)").Error)
	require.NoError(t, database.Close(db))
}

func objects(keys ...string) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(keys))
	for _, k := range keys {
		ch <- minio.ObjectInfo{Key: k}
	}
	close(ch)
	return ch
}

func withPrefix(prefix string) any {
	return mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
		return opts.Prefix == prefix
	})
}

// fixture has a healthy JP database and a KR entry whose database is missing.
func fixture(t *testing.T) (string, *state.Store) {
	dir := t.TempDir()
	store := newStore(t, dir, state.Versions{
		"JP": {Version: 10010830, Hash: "jp"},
		"KR": {Version: 10000510, Hash: "kr", CDNAddr: "https://cdn/"},
		"TW": {Version: 12345},
	})
	writeDatabase(t, filepath.Join(dir, "master_jp.db"))
	return dir, store
}

func TestService_CheckLocal(t *testing.T) {
	dir, store := fixture(t)
	svc := integrity.NewService(store, dir, nil, "", nil, zap.NewNop())

	local, err := svc.CheckLocal()
	require.NoError(t, err)
	require.Len(t, local, 2)

	assert.Equal(t, "JP", local[0].Code)
	assert.True(t, local[0].OK())
	assert.Equal(t, 1, local[0].Tables)

	assert.Equal(t, "KR", local[1].Code)
	assert.False(t, local[1].OK())
	assert.Zero(t, local[1].Tables)
}

func TestService_CheckLocal_NoState(t *testing.T) {
	svc := integrity.NewService(newStore(t, t.TempDir(), nil), t.TempDir(), nil, "", nil, zap.NewNop())
	_, err := svc.CheckLocal()
	assert.ErrorIs(t, err, integrity.ErrNoState)
}

func TestService_Run_StorageDisabled(t *testing.T) {
	dir, store := fixture(t)
	svc := integrity.NewService(store, dir, nil, "", nil, zap.NewNop())

	report, err := svc.Run(context.Background(), true)
	require.NoError(t, err)
	assert.False(t, report.StorageChecked)
	assert.Empty(t, report.Missing)
	assert.False(t, report.Healthy())
}

func TestService_Run_Storage(t *testing.T) {
	cfg := storage.Config{Bucket: "masterdata", Prefix: "databases"}

	t.Run("ReportsMissing", func(t *testing.T) {
		dir, store := fixture(t)
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "masterdata").Return(true, nil)
		client.On("ListObjects", mock.Anything, "masterdata", withPrefix("databases/master_jp.db")).Return(objects("databases/master_jp.db"))
		client.On("ListObjects", mock.Anything, "masterdata", withPrefix("databases/master_kr.db")).Return(objects())
		client.On("ListObjects", mock.Anything, "masterdata", withPrefix("databases/version.json")).Return(objects("databases/version.json"))

		svc := integrity.NewService(store, dir, client, "masterdata", storage.NewPublisher(client, cfg, zap.NewNop()), zap.NewNop())
		report, err := svc.Run(context.Background(), false)
		require.NoError(t, err)

		assert.True(t, report.StorageChecked)
		require.Len(t, report.Missing, 1)
		assert.Equal(t, "databases/master_kr.db", report.Missing[0].Object)
		assert.Empty(t, report.Fixed)
		client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("LongerKeyIsNotAMatch", func(t *testing.T) {
		dir, store := fixture(t)
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "masterdata").Return(true, nil)
		client.On("ListObjects", mock.Anything, "masterdata", withPrefix("databases/master_jp.db")).Return(objects("databases/master_jp.db.bak"))
		client.On("ListObjects", mock.Anything, "masterdata", withPrefix("databases/master_kr.db")).Return(objects("databases/master_kr.db"))
		client.On("ListObjects", mock.Anything, "masterdata", withPrefix("databases/version.json")).Return(objects("databases/version.json"))

		svc := integrity.NewService(store, dir, client, "masterdata", storage.NewPublisher(client, cfg, zap.NewNop()), zap.NewNop())
		missing, err := svc.CheckStorage(context.Background(), []checks.LocalResult{{Code: "JP", Path: filepath.Join(dir, "master_jp.db")}})
		require.NoError(t, err)
		require.Len(t, missing, 1)
		assert.Equal(t, "databases/master_jp.db", missing[0].Object)
	})

	t.Run("FixRepublishesVerifiedFiles", func(t *testing.T) {
		dir, store := fixture(t)
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "masterdata").Return(true, nil)
		client.On("ListObjects", mock.Anything, "masterdata", withPrefix("databases/master_jp.db")).Return(objects())
		client.On("ListObjects", mock.Anything, "masterdata", withPrefix("databases/master_kr.db")).Return(objects())
		client.On("ListObjects", mock.Anything, "masterdata", withPrefix("databases/version.json")).Return(objects())
		client.On("PutObject", mock.Anything, "masterdata", "databases/master_jp.db", mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, nil).Once()
		client.On("PutObject", mock.Anything, "masterdata", "databases/version.json", mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, nil).Once()

		svc := integrity.NewService(store, dir, client, "masterdata", storage.NewPublisher(client, cfg, zap.NewNop()), zap.NewNop())
		report, err := svc.Run(context.Background(), true)
		require.NoError(t, err)

		assert.Len(t, report.Missing, 3)
		require.Len(t, report.Fixed, 2)
		assert.Equal(t, "databases/master_jp.db", report.Fixed[0].Object)
		assert.Equal(t, "databases/version.json", report.Fixed[1].Object)
		client.AssertExpectations(t)
	})

	t.Run("ListError", func(t *testing.T) {
		dir, store := fixture(t)
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "masterdata").Return(true, nil)
		ch := make(chan minio.ObjectInfo, 1)
		ch <- minio.ObjectInfo{Err: errors.New("access denied")}
		close(ch)
		client.On("ListObjects", mock.Anything, "masterdata", mock.Anything).Return((<-chan minio.ObjectInfo)(ch)).Once()

		svc := integrity.NewService(store, dir, client, "masterdata", storage.NewPublisher(client, cfg, zap.NewNop()), zap.NewNop())
		report, err := svc.Run(context.Background(), false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access denied")
		require.NotNil(t, report)
		assert.Len(t, report.Local, 2)
	})

	t.Run("MissingBucket", func(t *testing.T) {
		dir, store := fixture(t)
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "masterdata").Return(false, nil)

		svc := integrity.NewService(store, dir, client, "masterdata", storage.NewPublisher(client, cfg, zap.NewNop()), zap.NewNop())
		_, err := svc.Run(context.Background(), false)
		assert.ErrorContains(t, err, "does not exist")
	})
}

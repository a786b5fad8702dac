package checks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"record-compactor/core/compactor"
	"record-compactor/core/database"
	"record-compactor/core/storage"
	"record-compactor/core/storage/mocks"
	"record-compactor/feature/history"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var storeCfg = storage.Config{Bucket: "compactor", Prefix: "artifacts/"}

func TestCheckDisk(t *testing.T) {
	dir := t.TempDir()

	t.Run("Enough Space", func(t *testing.T) {
		res := CheckDisk(dir, 0)
		assert.True(t, res.Passed, res.Message)
		assert.Equal(t, Disk, res.Name)
		assert.NotEmpty(t, res.Metadata["available_gb"])
	})

	t.Run("Not Enough Space", func(t *testing.T) {
		res := CheckDisk(dir, 1e9)
		assert.False(t, res.Passed)
		assert.Contains(t, res.Message, "insufficient disk space")
	})

	t.Run("Missing Directory", func(t *testing.T) {
		res := CheckDisk(filepath.Join(dir, "nope"), 0)
		assert.False(t, res.Passed)
	})

	t.Run("Not A Directory", func(t *testing.T) {
		file := filepath.Join(dir, "file")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
		res := CheckDisk(file, 0)
		assert.False(t, res.Passed)
		assert.Contains(t, res.Message, "not a directory")
	})
}

func TestCheckConfig(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "abbr.yaml")
	require.NoError(t, os.WriteFile(good, []byte("url: u\nname: n\n"), 0o644))
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("url: u\nname: u\n"), 0o644))

	tests := []struct {
		name   string
		cfg    compactor.Config
		passed bool
	}{
		{"Defaults", compactor.Config{Fidelity: "columnar"}, true},
		{"Table File", compactor.Config{Fidelity: "columnar", AbbreviationsFile: good}, true},
		{"Duplicate Shorts", compactor.Config{AbbreviationsFile: bad}, false},
		{"Missing File", compactor.Config{AbbreviationsFile: filepath.Join(dir, "missing.yaml")}, false},
		{"Bad Fidelity", compactor.Config{Fidelity: "lossy"}, false},
		{"Bad Width", compactor.Config{CodeWidth: 12}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := CheckConfig(tt.cfg)
			assert.Equal(t, tt.passed, res.Passed, res.Message)
		})
	}

	res := CheckConfig(compactor.Config{AbbreviationsFile: good})
	assert.Equal(t, "2", res.Metadata["abbreviations"])
}

func TestCheckStorage(t *testing.T) {
	ctx := context.Background()
	listOpts := minio.ListObjectsOptions{Prefix: "artifacts/", MaxKeys: 1}

	t.Run("Not Configured", func(t *testing.T) {
		res := CheckStorage(ctx, nil, storeCfg)
		assert.True(t, res.Passed)
		assert.True(t, res.Skipped)
	})

	t.Run("Healthy", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "compactor").Return(true, nil)
		client.On("ListObjects", mock.Anything, "compactor", listOpts).
			Return(mocks.Objects(minio.ObjectInfo{Key: "artifacts/"}))

		res := CheckStorage(ctx, client, storeCfg)
		assert.True(t, res.Passed, res.Message)
		assert.False(t, res.Skipped)
	})

	t.Run("Bucket Missing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "compactor").Return(false, nil)

		res := CheckStorage(ctx, client, storeCfg)
		assert.False(t, res.Passed)
		assert.Equal(t, "bucket", res.Metadata["missing"])
	})

	t.Run("Prefix Missing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "compactor").Return(true, nil)
		client.On("ListObjects", mock.Anything, "compactor", listOpts).Return(mocks.Objects())

		res := CheckStorage(ctx, client, storeCfg)
		assert.False(t, res.Passed)
		assert.Equal(t, "prefix", res.Metadata["missing"])
	})

	t.Run("Unreachable", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "compactor").Return(false, errors.New("connection refused"))

		res := CheckStorage(ctx, client, storeCfg)
		assert.False(t, res.Passed)
		assert.Contains(t, res.Message, "connection refused")
	})
}

func TestFixStorage(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "compactor").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "compactor", minio.MakeBucketOptions{}).Return(nil)
	client.On("PutObject", mock.Anything, "compactor", "artifacts/", mock.Anything, int64(0), minio.PutObjectOptions{}).
		Return(minio.UploadInfo{}, nil)

	require.NoError(t, FixStorage(ctx, client, storeCfg, zap.NewNop()))
	client.AssertExpectations(t)

	assert.Error(t, FixStorage(ctx, nil, storeCfg, zap.NewNop()))
}

func TestCheckDatabase(t *testing.T) {
	t.Run("Not Configured", func(t *testing.T) {
		res := CheckDatabase(nil)
		assert.True(t, res.Skipped)
	})

	t.Run("Migrated", func(t *testing.T) {
		db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
		require.NoError(t, err)
		require.NoError(t, history.NewRepository(db).Migrate(context.Background()))

		res := CheckDatabase(db)
		assert.True(t, res.Passed, res.Message)
		assert.Equal(t, "sqlite", res.Metadata["dialect"])
	})

	t.Run("Missing Table", func(t *testing.T) {
		db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
		require.NoError(t, err)

		res := CheckDatabase(db)
		assert.False(t, res.Passed)
		assert.Contains(t, res.Message, "does not exist")
	})

	t.Run("Missing Columns", func(t *testing.T) {
		db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
		require.NoError(t, err)
		require.NoError(t, db.Exec("CREATE TABLE compaction_runs (id TEXT PRIMARY KEY, source TEXT)").Error)

		res := CheckDatabase(db)
		assert.False(t, res.Passed)
		assert.Contains(t, res.Metadata["missing_columns"], "ratio")
	})
}

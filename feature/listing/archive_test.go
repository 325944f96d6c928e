package listing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"theaterwecker/core/storage/mocks"
	"theaterwecker/feature/listing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestArchive_Store(t *testing.T) {
	ctx := context.Background()
	w := listing.Window{Year: 2024, Month: time.May}
	at := time.Date(2024, time.May, 2, 8, 4, 5, 0, time.UTC)

	t.Run("Uploads", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("PutObject", ctx, "listings", "raw/2024/05/20240502T080405Z.html", mock.Anything, int64(4), mock.Anything).
			Return(minio.UploadInfo{}, nil)

		a := listing.NewArchive(m, "listings", "raw", nil)
		key, err := a.Store(ctx, w, []byte("<p/>"), at)
		require.NoError(t, err)
		assert.Equal(t, "raw/2024/05/20240502T080405Z.html", key)
		m.AssertExpectations(t)
	})

	t.Run("Error", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, errors.New("offline"))

		a := listing.NewArchive(m, "listings", "raw", nil)
		_, err := a.Store(ctx, w, []byte("x"), at)
		assert.EqualError(t, err, "failed to archive listing 2024-05: offline")
	})

	t.Run("NilArchive", func(t *testing.T) {
		var a *listing.Archive
		key, err := a.Store(ctx, w, []byte("x"), at)
		assert.NoError(t, err)
		assert.Empty(t, key)
	})
}

func TestArchive_Prune(t *testing.T) {
	cutoff := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)

	objects := make(chan minio.ObjectInfo, 2)
	objects <- minio.ObjectInfo{Key: "raw/2024/01/old.html", LastModified: cutoff.Add(-time.Hour)}
	objects <- minio.ObjectInfo{Key: "raw/2024/05/new.html", LastModified: cutoff.Add(time.Hour)}
	close(objects)

	m := new(mocks.Client)
	m.On("ListObjects", mock.Anything, "listings", minio.ListObjectsOptions{Prefix: "raw/", Recursive: true}).
		Return((<-chan minio.ObjectInfo)(objects))
	m.On("RemoveObject", mock.Anything, "listings", "raw/2024/01/old.html", mock.Anything).Return(nil)

	a := listing.NewArchive(m, "listings", "raw", nil)
	removed, err := a.Prune(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	m.AssertNotCalled(t, "RemoveObject", mock.Anything, "listings", "raw/2024/05/new.html", mock.Anything)
}

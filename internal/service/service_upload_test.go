package service

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/MKhiriev/remy-site/internal/config"
	"github.com/MKhiriev/remy-site/internal/logger"
	"github.com/MKhiriev/remy-site/internal/mock"
	"github.com/MKhiriev/remy-site/internal/objectstore"
	"github.com/MKhiriev/remy-site/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestUploadService(t *testing.T) (*uploadService, *mock.MockObjectStorage) {
	ctrl := gomock.NewController(t)
	storage := mock.NewMockObjectStorage(ctrl)

	svc := NewUploadService(storage, config.Objects{PublicBaseURL: testPublicBase}, logger.Nop()).(*uploadService)
	svc.now = func() time.Time { return testNow }
	return svc, storage
}

func TestPresign_Success(t *testing.T) {
	svc, storage := newTestUploadService(t)

	var signedKey string
	storage.EXPECT().
		PresignPut(gomock.Any(), gomock.Any(), "image/webp", PresignExpiry).
		DoAndReturn(func(_ context.Context, key, _ string, _ time.Duration) (string, error) {
			signedKey = key
			return "https://bucket.example/" + key + "?X-Amz-Signature=abc", nil
		})

	upload, err := svc.Presign(context.Background(), models.PresignRequest{ContentType: "image/webp", Size: json.Number("1024"), Folder: "gallery"})
	require.NoError(t, err)

	pattern := regexp.MustCompile(`^gallery/\d+-[0-9a-f]{24}\.webp$`)
	assert.Regexp(t, pattern, upload.Key)
	assert.Equal(t, signedKey, upload.Key)
	assert.Contains(t, upload.Key, "/1780344000000-")
	assert.Equal(t, testPublicBase+"/"+upload.Key, upload.PublicURL)
	assert.Contains(t, upload.UploadURL, "X-Amz-Signature")
}

func TestPresign_UnknownFolderFallsBack(t *testing.T) {
	svc, storage := newTestUploadService(t)
	storage.EXPECT().PresignPut(gomock.Any(), gomock.Any(), "image/jpeg", PresignExpiry).Return("https://u", nil)

	upload, err := svc.Presign(context.Background(), models.PresignRequest{ContentType: "image/jpeg", Size: "10", Folder: "../etc"})
	require.NoError(t, err)
	assert.Regexp(t, `^uploads/\d+-[0-9a-f]{24}\.jpg$`, upload.Key)
}

func TestPresign_Validation(t *testing.T) {
	tests := []struct {
		name    string
		request models.PresignRequest
		wantErr error
	}{
		{name: "svg", request: models.PresignRequest{ContentType: "image/svg+xml", Size: "10"}, wantErr: ErrUnsupportedImageType},
		{name: "no type", request: models.PresignRequest{Size: "10"}, wantErr: ErrUnsupportedImageType},
		{name: "zero size", request: models.PresignRequest{ContentType: "image/png", Size: "0"}, wantErr: ErrInvalidSize},
		{name: "negative size", request: models.PresignRequest{ContentType: "image/png", Size: "-5"}, wantErr: ErrInvalidSize},
		{name: "missing size", request: models.PresignRequest{ContentType: "image/png"}, wantErr: ErrInvalidSize},
		{name: "too large", request: models.PresignRequest{ContentType: "image/png", Size: "31457281"}, wantErr: ErrFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestUploadService(t)

			_, err := svc.Presign(context.Background(), tt.request)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPresign_ExactlyMaxSize(t *testing.T) {
	svc, storage := newTestUploadService(t)
	storage.EXPECT().PresignPut(gomock.Any(), gomock.Any(), "image/gif", PresignExpiry).Return("https://u", nil)

	_, err := svc.Presign(context.Background(), models.PresignRequest{ContentType: "image/gif", Size: "31457280"})
	assert.NoError(t, err)
}

func TestPresign_SignerFailure(t *testing.T) {
	svc, storage := newTestUploadService(t)
	storage.EXPECT().PresignPut(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", objectstore.ErrPresign)

	_, err := svc.Presign(context.Background(), models.PresignRequest{ContentType: "image/png", Size: "10"})
	assert.ErrorIs(t, err, objectstore.ErrPresign)
}

func TestUpload_StorageDisabled(t *testing.T) {
	svc := NewUploadService(nil, config.Objects{}, logger.Nop())

	_, err := svc.Presign(context.Background(), models.PresignRequest{ContentType: "image/png", Size: "10"})
	assert.ErrorIs(t, err, ErrObjectStorageDisabled)

	_, err = svc.Delete(context.Background(), testPublicBase+"/a.png")
	assert.ErrorIs(t, err, ErrObjectStorageDisabled)
}

func TestUploadDelete(t *testing.T) {
	t.Run("deletes key", func(t *testing.T) {
		svc, storage := newTestUploadService(t)
		storage.EXPECT().Delete(gomock.Any(), "hero/1-abc.jpg").Return(nil)

		key, err := svc.Delete(context.Background(), testPublicBase+"/hero/1-abc.jpg")
		require.NoError(t, err)
		assert.Equal(t, "hero/1-abc.jpg", key)
	})

	t.Run("storage failure", func(t *testing.T) {
		svc, storage := newTestUploadService(t)
		storage.EXPECT().Delete(gomock.Any(), "hero/1-abc.jpg").Return(objectstore.ErrDelete)

		_, err := svc.Delete(context.Background(), testPublicBase+"/hero/1-abc.jpg")
		assert.True(t, errors.Is(err, objectstore.ErrDelete))
	})

	t.Run("missing url", func(t *testing.T) {
		svc, _ := newTestUploadService(t)

		_, err := svc.Delete(context.Background(), "")
		assert.ErrorIs(t, err, ErrMissingURL)
	})
}

func TestObjectKey(t *testing.T) {
	tests := []struct {
		name   string
		base   string
		url    string
		want   string
		wantOK bool
	}{
		{name: "under base", base: testPublicBase, url: testPublicBase + "/gallery/a_b-c.png", want: "gallery/a_b-c.png", wantOK: true},
		{name: "traversal", base: testPublicBase, url: testPublicBase + "/../secret", wantOK: false},
		{name: "other host", base: testPublicBase, url: "https://evil.example/a.png", wantOK: false},
		{name: "bare base", base: testPublicBase, url: testPublicBase + "/", wantOK: false},
		{name: "query string", base: testPublicBase, url: testPublicBase + "/a.png?x=1", wantOK: false},
		{name: "no base", base: "", url: "https://cdn.example.com/a.png", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := objectKey(tt.base, tt.url)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, key)
		})
	}
}

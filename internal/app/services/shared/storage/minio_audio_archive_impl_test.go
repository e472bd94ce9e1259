package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"jazaidoc-service/internal/app/models"
	"jazaidoc-service/internal/pkg/constvars"
	"jazaidoc-service/internal/pkg/exceptions"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockObjectPutter struct {
	mock.Mock
}

func (m *MockObjectPutter) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	args := m.Called(ctx, bucketName, objectName, reader, objectSize, opts)
	return args.Get(0).(minio.UploadInfo), args.Error(1)
}

func newTestArchive(client objectPutter) *minioAudioArchive {
	return &minioAudioArchive{
		Client:     client,
		BucketName: "recordings",
		now:        func() time.Time { return time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC) },
		Log:        zap.NewNop(),
	}
}

func TestMinioAudioArchive_Archive(t *testing.T) {
	ctx := context.Background()
	audio := &models.AudioInput{FileName: "Visit.WEBM", ContentType: "audio/webm", Content: []byte("abc")}

	t.Run("uploads under the login prefix", func(t *testing.T) {
		client := new(MockObjectPutter)
		client.On("PutObject", ctx, "recordings", mock.AnythingOfType("string"), mock.Anything, int64(3), minio.PutObjectOptions{ContentType: "audio/webm"}).
			Return(minio.UploadInfo{}, nil)

		objectName, err := newTestArchive(client).Archive(ctx, "aigerim", audio)

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(objectName, "audio/aigerim/2024/05/20/"))
		assert.True(t, strings.HasSuffix(objectName, ".webm"))
		client.AssertExpectations(t)
	})

	t.Run("upload failure", func(t *testing.T) {
		client := new(MockObjectPutter)
		client.On("PutObject", ctx, "recordings", mock.AnythingOfType("string"), mock.Anything, int64(3), mock.Anything).
			Return(minio.UploadInfo{}, errors.New("bucket missing"))

		_, err := newTestArchive(client).Archive(ctx, "aigerim", audio)

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.ErrCodeUpstreamUnavailable, customErr.ErrorCode)
	})
}

func TestMinioAudioArchive_ObjectNameSanitizesLogin(t *testing.T) {
	archive := newTestArchive(nil)

	assert.True(t, strings.HasPrefix(archive.objectName("../etc", "a.ogg"), "audio/.._etc/"))
	assert.True(t, strings.HasPrefix(archive.objectName("..", "a.ogg"), "audio/unknown/"))
}

package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"jazaidoc-service/internal/app/contracts"
	"jazaidoc-service/internal/app/models"
	"jazaidoc-service/internal/pkg/constvars"
	"jazaidoc-service/internal/pkg/exceptions"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// objectPutter is the part of *minio.Client the archive uses.
type objectPutter interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

type minioAudioArchive struct {
	Client     objectPutter
	BucketName string
	now        func() time.Time
	Log        *zap.Logger
}

func NewMinioAudioArchive(minioClient *minio.Client, bucketName string, logger *zap.Logger) contracts.AudioArchive {
	return &minioAudioArchive{
		Client:     minioClient,
		BucketName: bucketName,
		now:        time.Now,
		Log:        logger,
	}
}

// Archive stores the recording as audio/<login>/<yyyy>/<mm>/<dd>/<uuid><ext> and returns the object name.
func (a *minioAudioArchive) Archive(ctx context.Context, login string, audio *models.AudioInput) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	objectName := a.objectName(login, audio.FileName)
	contentType := audio.ContentType
	if contentType == "" {
		contentType = constvars.MIMEOctetStream
	}

	_, err := a.Client.PutObject(ctx, a.BucketName, objectName, bytes.NewReader(audio.Content), int64(len(audio.Content)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		a.Log.Error("minioAudioArchive.Archive error calling PutObject",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBucketKey, a.BucketName),
			zap.String(constvars.LoggingObjectNameKey, objectName),
			zap.Error(err),
		)
		return "", exceptions.ErrArchiveUpload(err)
	}

	a.Log.Info("minioAudioArchive.Archive succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBucketKey, a.BucketName),
		zap.String(constvars.LoggingObjectNameKey, objectName),
		zap.Int(constvars.LoggingFileSizeKey, len(audio.Content)),
	)
	return objectName, nil
}

func (a *minioAudioArchive) objectName(login, fileName string) string {
	owner := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' {
			return '_'
		}
		return r
	}, login)
	if owner == "" || owner == "." || owner == ".." {
		owner = "unknown"
	}
	return path.Join("audio", owner, a.now().UTC().Format("2006/01/02"), fmt.Sprintf("%s%s", uuid.NewString(), strings.ToLower(filepath.Ext(fileName))))
}

package filestorage

import (
	"bytes"
	"context"
	"io"

	"doc-flow-backend/config"
	"doc-flow-backend/db"
	filestore "doc-flow-backend/lib/file-storage/file-store"
	dbmodels "doc-flow-backend/models/db"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

type Provider interface {
	UploadFile(ctx context.Context, documentID, fileName, mimeType string, body []byte) (id string, err error)
	GetFile(ctx context.Context, fileID string) (rec *dbmodels.DocumentFile, body []byte, err error)
	ListByDocument(documentID string) (list []dbmodels.DocumentFile, err error)
}

var Instance Provider

func NewInstance(s3client *minio.Client) {
	Instance = &impl{
		s3client:  s3client,
		fileStore: filestore.NewInstance(db.DB),
	}
}

type impl struct {
	s3client  *minio.Client
	fileStore filestore.Provider
}

func (i impl) UploadFile(ctx context.Context, documentID, fileName, mimeType string, body []byte) (string, error) {
	rec := dbmodels.DocumentFile{
		DocumentID: documentID,
		Name:       fileName,
		MimeType:   mimeType,
		Size:       int64(len(body)),
	}
	id, err := i.fileStore.SaveFile(rec)
	if err != nil {
		return "", errors.Wrap(err, "ошибка сохранения описания файла")
	}
	_, err = i.s3client.PutObject(ctx, config.Conf.S3.BucketName, id, bytes.NewReader(body), int64(len(body)),
		minio.PutObjectOptions{ContentType: mimeType})
	if err != nil {
		return "", errors.Wrap(err, "ошибка загрузки файла в хранилище")
	}
	return id, nil
}

func (i impl) GetFile(ctx context.Context, fileID string) (*dbmodels.DocumentFile, []byte, error) {
	rec, err := i.fileStore.GetByID(fileID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка получения описания файла")
	}
	if rec == nil {
		return nil, nil, nil
	}
	object, err := i.s3client.GetObject(ctx, config.Conf.S3.BucketName, rec.ID, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка получения файла из хранилища")
	}
	defer object.Close()
	body, err := io.ReadAll(object)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка чтения файла из хранилища")
	}
	return rec, body, nil
}

func (i impl) ListByDocument(documentID string) ([]dbmodels.DocumentFile, error) {
	return i.fileStore.ListByDocument(documentID)
}

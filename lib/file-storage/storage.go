package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"

	"consulting-crm-backend/config"
	"consulting-crm-backend/lib/utils/helpers"
)

type Provider interface {
	// UploadDocument сохраняет документ назначения и возвращает ключ объекта
	UploadDocument(ctx context.Context, spaceID, assignmentID string, fileReader io.Reader, fileSize int64, fileName string) (fileID string, err error)
	GetDocument(ctx context.Context, spaceID, fileID string) ([]byte, error)
	DeleteDocument(ctx context.Context, spaceID, fileID string) error
	MakeSpaceBucket(ctx context.Context, spaceID string) error
}

var Instance Provider

type impl struct {
	s3client *minio.Client
}

func NewInstance(s3client *minio.Client) {
	Instance = &impl{
		s3client: s3client,
	}
}

func (i impl) getSpaceBucketName(spaceID string) string {
	return fmt.Sprintf("%s-%s", config.Conf.S3.BucketName, spaceID)
}

func (i impl) UploadDocument(ctx context.Context, spaceID, assignmentID string, fileReader io.Reader, fileSize int64, fileName string) (fileID string, err error) {
	err = i.MakeSpaceBucket(ctx, spaceID)
	if err != nil {
		return "", err
	}
	fileID = fmt.Sprintf("%s/%s", assignmentID, helpers.NewFileKey(fileName))
	_, err = i.s3client.PutObject(ctx, i.getSpaceBucketName(spaceID), fileID, fileReader, fileSize,
		minio.PutObjectOptions{ContentType: "application/octet-stream"})
	if err != nil {
		return "", errors.Wrap(err, "ошибка загрузки файла в хранилище")
	}
	return fileID, nil
}

func (i impl) GetDocument(ctx context.Context, spaceID, fileID string) ([]byte, error) {
	object, err := i.s3client.GetObject(ctx, i.getSpaceBucketName(spaceID), fileID, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения файла из хранилища")
	}
	defer object.Close()
	buf := new(bytes.Buffer)
	_, err = io.Copy(buf, object)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка чтения файла из хранилища")
	}
	return buf.Bytes(), nil
}

func (i impl) DeleteDocument(ctx context.Context, spaceID, fileID string) error {
	err := i.s3client.RemoveObject(ctx, i.getSpaceBucketName(spaceID), fileID, minio.RemoveObjectOptions{})
	if err != nil {
		return errors.Wrap(err, "ошибка удаления файла из хранилища")
	}
	return nil
}

func (i impl) MakeSpaceBucket(ctx context.Context, spaceID string) error {
	bucketName := i.getSpaceBucketName(spaceID)
	location := "us-east-1"
	exists, err := i.s3client.BucketExists(ctx, bucketName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	err = i.s3client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: location})
	if err != nil {
		return err
	}
	return nil
}

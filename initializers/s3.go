package initializers

import (
	"context"

	log "github.com/sirupsen/logrus"

	filestorage "consulting-crm-backend/lib/file-storage"
	s3client "consulting-crm-backend/s3"
)

func InitS3() {
	provider, err := s3client.NewClient()
	if err != nil {
		log.WithError(err).Error("Ошибка инициализации клиента S3")
		return
	}

	err = provider.MakeBucket(context.Background())
	if err != nil {
		log.WithError(err).Error("Ошибка создания бакета S3")
	}

	s3client.Client = provider.GetClient()
	filestorage.NewInstance(s3client.Client)
	log.Info("S3 клиент успешно инициализирован")
}

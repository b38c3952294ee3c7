package services

import (
	"context"
	"mime/multipart"
	"path"

	"vacancy_backend/internal/imageprocessor"
	"vacancy_backend/internal/logger"
	"vacancy_backend/internal/models"
	"vacancy_backend/internal/storage"
	"vacancy_backend/internal/validator"
	"vacancy_backend/pkg/apperrors"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// UploadLimits - лимиты размеров загружаемых файлов в байтах
type UploadLimits struct {
	MaxResumeSize int64
	MaxImageSize  int64
}

// FileUploader проверяет файл по содержимому и кладет его в хранилище
type FileUploader struct {
	storage storage.Storage
	images  *imageprocessor.Processor
	limits  UploadLimits
}

func NewFileUploader(store storage.Storage, images *imageprocessor.Processor, limits UploadLimits) *FileUploader {
	return &FileUploader{storage: store, images: images, limits: limits}
}

// objectKey: <prefix>/<ownerID>/<nanoid><ext>
func objectKey(prefix, ownerID, ext string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", err
	}
	return path.Join(prefix, ownerID, id+ext), nil
}

// UploadResume сохраняет PDF/DOC/DOCX; возвращает несохраненную запись Resume
func (u *FileUploader) UploadResume(ctx context.Context, accountID string, fh *multipart.FileHeader) (*models.Resume, error) {
	file, err := validator.FileValidator(fh, u.limits.MaxResumeSize, validator.ResumeMIMETypes)
	if err != nil {
		return nil, err
	}

	key, err := objectKey("resumes", accountID, file.Extension)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	url, err := u.storage.Save(ctx, key, file.Reader(), file.MIME)
	if err != nil {
		logger.CtxWithError(ctx, "Failed to store resume", err, "key", key)
		return nil, apperrors.ErrStorageFailure.WithError(err)
	}

	return &models.Resume{
		AccountID: accountID,
		Name:      file.Name,
		Size:      file.Size,
		URL:       url,
		PublicID:  key,
	}, nil
}

// UploadImage уменьшает изображение до size и сохраняет под prefix/ownerID
func (u *FileUploader) UploadImage(ctx context.Context, prefix, ownerID string, fh *multipart.FileHeader, size imageprocessor.ImageSize) (string, error) {
	file, err := validator.FileValidator(fh, u.limits.MaxImageSize, validator.ImageMIMETypes)
	if err != nil {
		return "", err
	}

	processed, err := u.images.Process(file.Reader(), size)
	if err != nil {
		return "", apperrors.NewBadRequestError("Invalid image file").WithError(err)
	}

	key, err := objectKey(prefix, ownerID, processed.Extension)
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	url, err := u.storage.Save(ctx, key, processed.Reader(), processed.ContentType)
	if err != nil {
		logger.CtxWithError(ctx, "Failed to store image", err, "key", key)
		return "", apperrors.ErrStorageFailure.WithError(err)
	}
	return url, nil
}

// Delete - ошибка удаления не критична для клиента, только логируется
func (u *FileUploader) Delete(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := u.storage.Delete(ctx, key); err != nil {
		logger.CtxWithError(ctx, "Failed to delete stored object", err, "key", key)
	}
}

func (u *FileUploader) SignedURL(ctx context.Context, key string) (string, error) {
	url, err := u.storage.SignedURL(ctx, key, resumeLinkTTL)
	if err != nil {
		return "", apperrors.ErrUpstream(err, "storage", "Error generating signed URL")
	}
	return url, nil
}

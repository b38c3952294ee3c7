package validator

import (
	"bytes"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"vacancy_backend/pkg/apperrors"

	"github.com/gabriel-vasile/mimetype"
)

const maxFileNameSize = 200

var (
	ResumeMIMETypes = []string{
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	}
	ImageMIMETypes = []string{
		"image/jpeg",
		"image/png",
		"image/gif",
		"image/webp",
	}
)

// UploadedFile - прочитанный и проверенный файл из multipart формы
type UploadedFile struct {
	Name      string
	Extension string
	MIME      string
	Size      int64
	Data      []byte
}

func (f *UploadedFile) Reader() io.Reader {
	return bytes.NewReader(f.Data)
}

// FileValidator читает файл не больше maxSize байт и определяет тип по содержимому,
// заголовок Content-Type от клиента не учитывается
func FileValidator(fh *multipart.FileHeader, maxSize int64, allowed []string) (*UploadedFile, error) {
	if fh == nil {
		return nil, apperrors.NewBadRequestError("No file provided")
	}
	if len(fh.Filename) > maxFileNameSize {
		return nil, apperrors.NewBadRequestError("File name is too long")
	}
	if maxSize > 0 && fh.Size > maxSize {
		return nil, apperrors.ErrFileTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	defer f.Close()

	// Размер в заголовке может врать, читаем на байт больше лимита
	reader := io.Reader(f)
	if maxSize > 0 {
		reader = io.LimitReader(f, maxSize+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return nil, apperrors.ErrFileTooLarge
	}

	mime := mimetype.Detect(data)
	if !mimetype.EqualsAny(mime.String(), allowed...) {
		return nil, apperrors.ErrInvalidFileType.WithDetails(map[string]interface{}{
			"detected": mime.String(),
			"allowed":  allowed,
		})
	}

	ext := mime.Extension()
	if ext == "" {
		ext = strings.ToLower(filepath.Ext(fh.Filename))
	}

	return &UploadedFile{
		Name:      filepath.Base(fh.Filename),
		Extension: ext,
		MIME:      mime.String(),
		Size:      int64(len(data)),
		Data:      data,
	}, nil
}

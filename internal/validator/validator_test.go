package validator

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"vacancy_backend/internal/services/dto"
	"vacancy_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type jobPayload struct {
	Title      string `json:"title" validate:"required"`
	Experience string `json:"experience" validate:"is-experience"`
	SalaryType string `json:"salaryType" validate:"is-salary-type"`
}

type statusPayload struct {
	Status string `json:"status" validate:"required,is-application-action"`
}

type candidateQuery struct {
	Gender string `form:"gender" validate:"is-gender"`
	Role   string `form:"role" validate:"is-role"`
}

func TestValidate_CustomRules(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&jobPayload{Title: "Go dev", Experience: "Mid Level", SalaryType: "Monthly"}))
	assert.NoError(t, v.Validate(&jobPayload{Title: "Go dev"}))

	err := v.Validate(&jobPayload{Experience: "Guru", SalaryType: "Weekly"})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "This field is required", vErr.Errors["title"])
	assert.Contains(t, vErr.Errors["experience"], "Entry Level")
	assert.Contains(t, vErr.Errors, "salaryType")

	assert.NoError(t, v.Validate(&statusPayload{Status: "accepted"}))
	err = v.Validate(&statusPayload{Status: "pending"})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Must be one of: accepted, rejected", vErr.Errors["status"])
}

func TestValidate_FormTagNames(t *testing.T) {
	v := New()

	err := v.Validate(&candidateQuery{Gender: "male", Role: "boss"})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Errors, "gender")
	assert.Contains(t, vErr.Errors, "role")
}

func TestValidate_PartialJobUpdateRejectsBlankFields(t *testing.T) {
	// 1. Подготовка
	v := New()
	blank := ""
	role := "Backend"

	// 2. Отсутствующие поля не проверяются
	assert.NoError(t, v.Validate(&dto.UpdateJobRequest{}))
	assert.NoError(t, v.Validate(&dto.UpdateJobRequest{JobRole: &role}))

	// 3. Пустая строка не может затереть обязательное поле вакансии
	err := v.Validate(&dto.UpdateJobRequest{JobRole: &blank, JobType: &blank, Industry: &blank, Location: &blank})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	for _, field := range []string{"jobRole", "jobType", "industry", "location"} {
		assert.Contains(t, vErr.Errors, field)
	}
}

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func TestFileValidator(t *testing.T) {
	pdf := []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\n")

	f, err := FileValidator(fileHeader(t, "cv.pdf", pdf), 1024, ResumeMIMETypes)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", f.MIME)
	assert.Equal(t, ".pdf", f.Extension)
	assert.Equal(t, "cv.pdf", f.Name)
	assert.Equal(t, int64(len(pdf)), f.Size)

	// Расширение .pdf не спасает текстовый файл
	_, err = FileValidator(fileHeader(t, "cv.pdf", []byte("just text")), 1024, ResumeMIMETypes)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusUnsupportedMediaType, appErr.HTTPCode)

	_, err = FileValidator(fileHeader(t, "cv.pdf", pdf), 8, ResumeMIMETypes)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusRequestEntityTooLarge, appErr.HTTPCode)

	_, err = FileValidator(nil, 8, ResumeMIMETypes)
	assert.Error(t, err)
}

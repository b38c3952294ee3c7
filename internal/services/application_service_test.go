package services_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vacancy_backend/internal/models"
	"vacancy_backend/internal/services/dto"
	"vacancy_backend/internal/testutil"
	"vacancy_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationService_ApplyWithUploadedFile(t *testing.T) {
	// 1. Подготовка
	h := newHarness(t)
	ctx := context.Background()
	recruiter := testutil.CreateAccount(t, h.db, models.RoleRecruiter, "hr@example.com", "")
	user := testutil.CreateAccount(t, h.db, models.RoleUser, "user@example.com", "")
	job := testutil.CreateJob(t, h.db, recruiter.ID, "Go Developer")

	// 2. Отклик с файлом
	application, err := h.svc.ApplicationService.Apply(ctx, h.db, user.ID, job.ID,
		&dto.ApplyRequest{CoverLetter: "Hire me"}, testutil.FileHeader(t, "cv.pdf", testutil.PDF))
	require.NoError(t, err)

	// 3. Проверка
	assert.Equal(t, models.ApplicationStatusPending, application.Status)
	assert.True(t, strings.HasPrefix(application.ResumeID, "resumes/"+user.ID+"/"))
	assert.True(t, strings.HasSuffix(application.ResumeID, ".pdf"))
	assert.Equal(t, 1, h.applied, "Хук метрик вызывается один раз")

	_, err = os.Stat(filepath.Join(h.store.BasePath(), application.ResumeID))
	assert.NoError(t, err, "Файл должен лежать в хранилище")

	// 4. Повторный отклик
	_, err = h.svc.ApplicationService.Apply(ctx, h.db, user.ID, job.ID,
		&dto.ApplyRequest{Resume: "/uploads/cv.pdf", ResumeID: "resumes/cv.pdf"}, nil)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyApplied)

	applied, err := h.svc.ApplicationService.HasApplied(h.db, user.ID, job.ID)
	require.NoError(t, err)
	assert.True(t, applied)
}

func TestApplicationService_ApplyValidation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	recruiter := testutil.CreateAccount(t, h.db, models.RoleRecruiter, "hr@example.com", "")
	user := testutil.CreateAccount(t, h.db, models.RoleUser, "user@example.com", "")
	job := testutil.CreateJob(t, h.db, recruiter.ID, "Go Developer")
	hidden := testutil.CreateJob(t, h.db, recruiter.ID, "Hidden", testutil.Hidden())

	_, err := h.svc.ApplicationService.Apply(ctx, h.db, user.ID, job.ID, &dto.ApplyRequest{}, nil)
	assert.ErrorIs(t, err, apperrors.ErrResumeRequired)

	_, err = h.svc.ApplicationService.Apply(ctx, h.db, user.ID, hidden.ID,
		&dto.ApplyRequest{Resume: "/uploads/cv.pdf", ResumeID: "resumes/cv.pdf"}, nil)
	assert.ErrorIs(t, err, apperrors.ErrJobNotFound, "На скрытую вакансию откликнуться нельзя")

	_, err = h.svc.ApplicationService.Apply(ctx, h.db, user.ID, job.ID, &dto.ApplyRequest{},
		testutil.FileHeader(t, "cv.txt", []byte("plain text resume")))
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileType)
	assert.Zero(t, h.applied)
}

func TestApplicationService_StatusIsFinal(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	owner := testutil.CreateAccount(t, h.db, models.RoleRecruiter, "owner@example.com", "")
	other := testutil.CreateAccount(t, h.db, models.RoleRecruiter, "other@example.com", "")
	user := testutil.CreateAccount(t, h.db, models.RoleUser, "user@example.com", "")
	job := testutil.CreateJob(t, h.db, owner.ID, "Go Developer")

	application, err := h.svc.ApplicationService.Apply(ctx, h.db, user.ID, job.ID,
		&dto.ApplyRequest{Resume: "/uploads/cv.pdf", ResumeID: "resumes/cv.pdf"}, nil)
	require.NoError(t, err)

	_, err = h.svc.ApplicationService.UpdateStatus(ctx, h.db, actorOf(other), application.ID, models.ApplicationStatusAccepted)
	assert.ErrorIs(t, err, apperrors.ErrApplicationNotFound, "Чужой отклик выглядит как несуществующий")

	_, err = h.svc.ApplicationService.UpdateStatus(ctx, h.db, actorOf(owner), application.ID, models.ApplicationStatusPending)
	require.Error(t, err)

	updated, err := h.svc.ApplicationService.UpdateStatus(ctx, h.db, actorOf(owner), application.ID, models.ApplicationStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusAccepted, updated.Status)

	_, err = h.svc.ApplicationService.UpdateStatus(ctx, h.db, actorOf(owner), application.ID, models.ApplicationStatusRejected)
	assert.ErrorIs(t, err, apperrors.ErrApplicationFinalized)
}

func TestApplicationService_RecruiterViews(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	owner := testutil.CreateAccount(t, h.db, models.RoleRecruiter, "owner@example.com", "")
	other := testutil.CreateAccount(t, h.db, models.RoleRecruiter, "other@example.com", "")
	user := testutil.CreateAccount(t, h.db, models.RoleUser, "user@example.com", "")
	job := testutil.CreateJob(t, h.db, owner.ID, "Go Developer")

	application, err := h.svc.ApplicationService.Apply(ctx, h.db, user.ID, job.ID,
		&dto.ApplyRequest{}, testutil.FileHeader(t, "cv.pdf", testutil.PDF))
	require.NoError(t, err)

	applicants, err := h.svc.ApplicationService.ListApplicants(ctx, h.db, actorOf(owner), job.ID)
	require.NoError(t, err)
	require.Len(t, applicants, 1)
	require.NotNil(t, applicants[0].Applicant)
	assert.Equal(t, "user@example.com", applicants[0].Applicant.Email)
	assert.Equal(t, "Go Developer", applicants[0].Job.Title)

	_, err = h.svc.ApplicationService.ListApplicants(ctx, h.db, actorOf(other), job.ID)
	assert.ErrorIs(t, err, apperrors.ErrJobNotFound)

	all, err := h.svc.ApplicationService.ListForRecruiter(h.db, owner.ID)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	url, err := h.svc.ApplicationService.ResumeDownloadURL(ctx, h.db, actorOf(owner), application.ID)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/"+application.ResumeID, url)

	_, err = h.svc.ApplicationService.ResumeDownloadURL(ctx, h.db, actorOf(user), application.ID)
	assert.NoError(t, err, "Соискатель может скачать свое резюме")

	_, err = h.svc.ApplicationService.ResumeDownloadURL(ctx, h.db, actorOf(other), application.ID)
	assert.ErrorIs(t, err, apperrors.ErrApplicationNotFound)
}

func TestApplicationService_UserViews(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	recruiter := testutil.CreateAccount(t, h.db, models.RoleRecruiter, "hr@example.com", "")
	user := testutil.CreateAccount(t, h.db, models.RoleUser, "user@example.com", "")
	job := testutil.CreateJob(t, h.db, recruiter.ID, "Go Developer")

	_, err := h.svc.ApplicationService.Apply(ctx, h.db, user.ID, job.ID,
		&dto.ApplyRequest{Resume: "/uploads/cv.pdf", ResumeID: "resumes/cv.pdf"}, nil)
	require.NoError(t, err)

	views, err := h.svc.ApplicationService.ListApplied(h.db, user.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.NotNil(t, views[0].Job)
	assert.Equal(t, "Go Developer", views[0].Job.Title)
	require.NotNil(t, views[0].Job.Recruiter)

	count, err := h.svc.ApplicationService.CountApplied(h.db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = h.svc.ApplicationService.HasApplied(h.db, user.ID, "missing")
	assert.ErrorIs(t, err, apperrors.ErrJobNotFound)
}

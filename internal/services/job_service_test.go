package services_test

import (
	"context"
	"testing"
	"time"

	"vacancy_backend/internal/models"
	"vacancy_backend/internal/services"
	"vacancy_backend/internal/services/dto"
	"vacancy_backend/internal/testutil"
	"vacancy_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJobRequest(title string) *dto.CreateJobRequest {
	return &dto.CreateJobRequest{
		Title:          title,
		Description:    "Build APIs",
		JobRole:        "Engineer",
		JobType:        "Full Time",
		Experience:     "Senior Level",
		Industry:       "IT",
		ExpirationDate: ptr(time.Now().Add(30 * 24 * time.Hour)),
		Location:       "Lagos",
	}
}

func TestJobService_CreateRequiresPaidCompany(t *testing.T) {
	h := newHarness(t)
	recruiter := testutil.CreateAccount(t, h.db, models.RoleRecruiter, "hr@example.com", "")
	admin := testutil.CreateAccount(t, h.db, models.RoleAdmin, "admin@example.com", "")

	_, err := h.svc.JobService.CreateJob(h.db, actorOf(recruiter), newJobRequest("Go Developer"))
	assert.ErrorIs(t, err, apperrors.ErrPaymentRequired)

	_, err = h.svc.JobService.CreateJob(h.db, actorOf(admin), newJobRequest("Admin job"))
	assert.NoError(t, err, "Администратор публикует без оплаты")

	testutil.MarkCompanyPaid(t, h.db, recruiter.ID)
	job, err := h.svc.JobService.CreateJob(h.db, actorOf(recruiter), newJobRequest("Go Developer"))
	require.NoError(t, err)
	assert.Equal(t, recruiter.ID, job.RecruiterID)
	assert.True(t, job.IsVisible)
	assert.Equal(t, models.SalaryNegotiable, job.SalaryType)
}

func TestJobService_CreateRejectsInvertedSalary(t *testing.T) {
	h := newHarness(t)
	admin := testutil.CreateAccount(t, h.db, models.RoleAdmin, "admin@example.com", "")

	req := newJobRequest("Go Developer")
	req.MinSalary = ptr(500.0)
	req.MaxSalary = ptr(100.0)
	_, err := h.svc.JobService.CreateJob(h.db, actorOf(admin), req)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
}

func TestJobService_ForeignJobLooksMissing(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	owner := testutil.CreateAccount(t, h.db, models.RoleRecruiter, "owner@example.com", "")
	other := testutil.CreateAccount(t, h.db, models.RoleRecruiter, "other@example.com", "")
	admin := testutil.CreateAccount(t, h.db, models.RoleAdmin, "admin@example.com", "")
	job := testutil.CreateJob(t, h.db, owner.ID, "Go Developer")

	_, err := h.svc.JobService.UpdateJob(ctx, h.db, actorOf(other), job.ID, &dto.UpdateJobRequest{Title: ptr("Hacked")})
	assert.ErrorIs(t, err, apperrors.ErrJobNotFound)
	_, err = h.svc.JobService.UpdateJob(ctx, h.db, actorOf(other), "missing", &dto.UpdateJobRequest{Title: ptr("Hacked")})
	assert.ErrorIs(t, err, apperrors.ErrJobNotFound, "Чужая и несуществующая вакансия неразличимы")
	assert.ErrorIs(t, h.svc.JobService.DeleteJob(ctx, h.db, actorOf(other), job.ID), apperrors.ErrJobNotFound)
	_, err = h.svc.JobService.SetVisibility(ctx, h.db, actorOf(other), job.ID, false)
	assert.ErrorIs(t, err, apperrors.ErrJobNotFound)

	updated, err := h.svc.JobService.UpdateJob(ctx, h.db, actorOf(admin), job.ID, &dto.UpdateJobRequest{Title: ptr("Senior Go Developer"), IsVisible: ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, "Senior Go Developer", updated.Title)
	assert.False(t, updated.IsVisible)

	_, err = h.svc.JobService.GetJob(h.db, job.ID)
	assert.ErrorIs(t, err, apperrors.ErrJobNotFound, "Скрытая вакансия не видна публично")

	require.NoError(t, h.svc.JobService.DeleteJob(ctx, h.db, actorOf(owner), job.ID))
}

func TestJobService_ListsAndCounts(t *testing.T) {
	h := newHarness(t)
	recruiter := testutil.CreateAccount(t, h.db, models.RoleRecruiter, "hr@example.com", "")
	user := testutil.CreateAccount(t, h.db, models.RoleUser, "user@example.com", "")
	first := testutil.CreateJob(t, h.db, recruiter.ID, "First", testutil.WithExperience("Entry Level"))
	testutil.CreateJob(t, h.db, recruiter.ID, "Second", testutil.Hidden())
	require.NoError(t, h.db.Create(&models.AppliedJob{UserID: user.ID, JobID: first.ID, Status: models.ApplicationStatusPending}).Error)

	list, err := h.svc.JobService.ListJobs(h.db, &dto.JobFilterQuery{}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)
	require.Len(t, list.Jobs, 1)
	require.NotNil(t, list.Jobs[0].Recruiter)
	assert.Equal(t, "Acme", list.Jobs[0].Recruiter.Company.Name)

	mine, err := h.svc.JobService.ListRecruiterJobs(h.db, recruiter.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2, "Рекрутер видит и скрытые вакансии")
	for _, j := range mine {
		if j.ID == first.ID {
			assert.Equal(t, int64(1), j.ApplicantsCount)
		}
	}

	count, err := h.svc.JobService.CountRecruiterJobs(h.db, recruiter.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	counts, err := h.svc.JobService.ExperienceCounts(h.db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts["Entry Level"])
}

func TestFavoriteService_Toggle(t *testing.T) {
	h := newHarness(t)
	recruiter := testutil.CreateAccount(t, h.db, models.RoleRecruiter, "hr@example.com", "")
	user := testutil.CreateAccount(t, h.db, models.RoleUser, "user@example.com", "")
	job := testutil.CreateJob(t, h.db, recruiter.ID, "Go Developer")

	favorite, err := h.svc.FavoriteService.Toggle(h.db, user.ID, job.ID)
	require.NoError(t, err)
	assert.True(t, favorite)

	jobs, err := h.svc.FavoriteService.List(h.db, user.ID)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, job.ID, jobs[0].ID)

	favorite, err = h.svc.FavoriteService.Toggle(h.db, user.ID, job.ID)
	require.NoError(t, err)
	assert.False(t, favorite)

	count, err := h.svc.FavoriteService.Count(h.db, user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = h.svc.FavoriteService.Toggle(h.db, user.ID, "missing")
	assert.ErrorIs(t, err, apperrors.ErrJobNotFound)
}

func TestAlertService_MatchesLatestAlert(t *testing.T) {
	h := newHarness(t)
	recruiter := testutil.CreateAccount(t, h.db, models.RoleRecruiter, "hr@example.com", "")
	user := testutil.CreateAccount(t, h.db, models.RoleUser, "user@example.com", "")
	testutil.CreateJob(t, h.db, recruiter.ID, "Lagos job")
	testutil.CreateJob(t, h.db, recruiter.ID, "Remote job", testutil.WithLocation("Remote"))

	jobs, err := h.svc.AlertService.Matches(h.db, user.ID)
	require.NoError(t, err)
	assert.Empty(t, jobs, "Без сохраненного фильтра подборка пустая")

	alert, err := h.svc.AlertService.Create(h.db, user.ID, &dto.AlertRequest{Location: " Remote "})
	require.NoError(t, err)
	assert.Equal(t, "Remote", alert.Location)

	jobs, err = h.svc.AlertService.Matches(h.db, user.ID)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Remote job", jobs[0].Title)

	count, err := h.svc.AlertService.Count(h.db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestActor_IsAdmin(t *testing.T) {
	assert.True(t, services.Actor{Role: models.RoleAdmin}.IsAdmin())
	assert.False(t, services.Actor{Role: models.RoleRecruiter}.IsAdmin())
}

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

func TestProfileService_UpdateSettings(t *testing.T) {
	h := newHarness(t)
	user := testutil.CreateAccount(t, h.db, models.RoleUser, "user@example.com", "")

	account, err := h.svc.ProfileService.UpdateSettings(h.db, user.ID, &dto.SettingsRequest{
		FirstName:   ptr("Ada"),
		Gender:      ptr("Female"),
		Skills:      []string{"go", "sql"},
		SocialLinks: &models.SocialLinks{Twitter: "@ada"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", account.FirstName)
	assert.Equal(t, "user", account.LastName, "Незаданные поля не меняются")
	require.NotNil(t, account.UserProfile)
	assert.Equal(t, models.GenderFemale, account.UserProfile.Gender)
	assert.Equal(t, []string{"go", "sql"}, []string(account.UserProfile.Skills))
	assert.Equal(t, "@ada", account.UserProfile.SocialLinks.Data().Twitter)

	_, err = h.svc.ProfileService.GetProfile(h.db, "missing")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestProfileService_ResumeLifecycle(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	user := testutil.CreateAccount(t, h.db, models.RoleUser, "user@example.com", "")

	resume, err := h.svc.ProfileService.UploadResume(ctx, h.db, user.ID, testutil.FileHeader(t, "cv.pdf", testutil.PDF))
	require.NoError(t, err)
	assert.Equal(t, "cv.pdf", resume.Name)
	stored := filepath.Join(h.store.BasePath(), resume.PublicID)
	_, err = os.Stat(stored)
	require.NoError(t, err)

	account, err := h.svc.ProfileService.GetProfile(h.db, user.ID)
	require.NoError(t, err)
	require.Len(t, account.Resumes, 1)

	require.NoError(t, h.svc.ProfileService.DeleteResume(ctx, h.db, user.ID, resume.URL))
	_, err = os.Stat(stored)
	assert.True(t, os.IsNotExist(err), "Файл удаляется вместе с записью")

	assert.ErrorIs(t, h.svc.ProfileService.DeleteResume(ctx, h.db, user.ID, resume.ID), apperrors.ErrResumeNotFound)
}

func TestProfileService_UploadProfileImage(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	user := testutil.CreateAccount(t, h.db, models.RoleUser, "user@example.com", "")

	url, err := h.svc.ProfileService.UploadProfileImage(ctx, h.db, user.ID, testutil.FileHeader(t, "me.png", testutil.PNG(t, 800, 800)))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/profiles/"+user.ID+"/"))

	account, err := h.svc.ProfileService.GetProfile(h.db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, url, account.ProfileImage)

	_, err = h.svc.ProfileService.UploadProfileImage(ctx, h.db, user.ID, testutil.FileHeader(t, "cv.pdf", testutil.PDF))
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileType)
}

func TestProfileService_SetupRecruiter(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	recruiter := testutil.CreateAccount(t, h.db, models.RoleRecruiter, "hr@example.com", "")
	user := testutil.CreateAccount(t, h.db, models.RoleUser, "user@example.com", "")

	req := &dto.RecruiterSetupRequest{CompanyName: "Globex", IndustryType: "Energy", Facebook: "globex"}
	account, err := h.svc.ProfileService.SetupRecruiter(ctx, h.db, recruiter.ID, req,
		testutil.FileHeader(t, "logo.png", testutil.PNG(t, 100, 100)), nil)
	require.NoError(t, err)

	company := account.RecruiterProfile.Company
	assert.Equal(t, "Globex", company.Name)
	assert.True(t, strings.HasPrefix(company.Logo, "/uploads/companies/"+recruiter.ID+"/"))
	assert.Equal(t, "globex", company.SocialLinks.Data().Facebook)
	assert.Equal(t, models.CompanyPaymentPending, company.PaymentStatus, "Настройка профиля не трогает оплату")

	_, err = h.svc.ProfileService.SetupRecruiter(ctx, h.db, user.ID, req, nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrAccessDenied)

	directory, err := h.svc.ProfileService.ListRecruiters(h.db)
	require.NoError(t, err)
	require.Len(t, directory, 1)
	assert.Equal(t, "Globex", directory[0].CompanyName)
	assert.Equal(t, "Energy", directory[0].Industry)
}

func TestProfileService_ListCandidates(t *testing.T) {
	h := newHarness(t)
	testutil.CreateAccount(t, h.db, models.RoleUser, "a@example.com", "")
	testutil.CreateAccount(t, h.db, models.RoleUser, "b@example.com", "")

	candidates, err := h.svc.ProfileService.ListCandidates(h.db, &dto.CandidateQuery{Email: "A@EX"})
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "a@example.com", candidates[0].Email)
	assert.NotNil(t, candidates[0].Skills)
}

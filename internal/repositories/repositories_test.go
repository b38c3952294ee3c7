package repositories_test

import (
	"testing"
	"time"

	"vacancy_backend/internal/models"
	"vacancy_backend/internal/repositories"
	"vacancy_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRepository_EmailIsCaseInsensitive(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewAccountRepository()

	testutil.CreateAccount(t, db, models.RoleUser, "Jane@Example.com ", "secret1")

	account, err := repo.FindByEmail(db, "jane@example.COM")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", account.Email)
	assert.NotNil(t, account.UserProfile, "Профиль должен подгружаться")

	exists, err := repo.EmailExists(db, "JANE@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	err = repo.Create(db, &models.Account{Role: models.RoleUser, Email: "jane@example.com"})
	assert.ErrorIs(t, err, repositories.ErrEmailTaken)
}

func TestAccountRepository_NotFound(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewAccountRepository()

	_, err := repo.FindByID(db, "missing")
	assert.ErrorIs(t, err, repositories.ErrAccountNotFound)

	err = repo.UpdateFields(db, "missing", map[string]interface{}{"phone": "1"})
	assert.ErrorIs(t, err, repositories.ErrAccountNotFound)
}

func TestAccountRepository_ReferenceUsedByOther(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewAccountRepository()
	owner := testutil.CreateAccount(t, db, models.RoleUser, "owner@example.com", "secret1")
	other := testutil.CreateAccount(t, db, models.RoleUser, "other@example.com", "secret1")
	require.NoError(t, repo.UpdateFields(db, owner.ID, map[string]interface{}{"payment_reference": "vac_abc"}))

	used, err := repo.ReferenceUsedByOther(db, "vac_abc", other.ID)
	require.NoError(t, err)
	assert.True(t, used)

	used, err = repo.ReferenceUsedByOther(db, "vac_abc", owner.ID)
	require.NoError(t, err)
	assert.False(t, used, "Свой reference не считается занятым")
}

func TestAccountRepository_ResetTokenExpiry(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewAccountRepository()
	account := testutil.CreateAccount(t, db, models.RoleUser, "reset@example.com", "secret1")

	expires := time.Now().Add(time.Hour)
	require.NoError(t, repo.UpdateFields(db, account.ID, map[string]interface{}{
		"reset_password_token":   "tok",
		"reset_password_expires": expires,
	}))

	found, err := repo.FindByResetToken(db, "tok", time.Now())
	require.NoError(t, err)
	assert.Equal(t, account.ID, found.ID)

	_, err = repo.FindByResetToken(db, "tok", expires.Add(time.Minute))
	assert.ErrorIs(t, err, repositories.ErrAccountNotFound, "Просроченный токен не должен находиться")
}

func TestAccountRepository_CompanyPayment(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewAccountRepository()
	recruiter := testutil.CreateAccount(t, db, models.RoleRecruiter, "hr@example.com", "secret1")

	require.NoError(t, repo.UpdateCompanyPayment(db, recruiter.ID, models.CompanyPaymentPaid))

	account, err := repo.FindByID(db, recruiter.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CompanyPaymentPaid, account.RecruiterProfile.Company.PaymentStatus)

	err = repo.UpdateCompanyPayment(db, "missing", models.CompanyPaymentPaid)
	assert.ErrorIs(t, err, repositories.ErrAccountNotFound)
}

func TestAccountRepository_FindResumeByIDOrURL(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewAccountRepository()
	user := testutil.CreateAccount(t, db, models.RoleUser, "cv@example.com", "secret1")
	other := testutil.CreateAccount(t, db, models.RoleUser, "other@example.com", "secret1")

	resume := &models.Resume{AccountID: user.ID, Name: "cv.pdf", URL: "/uploads/resumes/cv.pdf", PublicID: "resumes/cv.pdf"}
	require.NoError(t, repo.CreateResume(db, resume))

	byID, err := repo.FindResume(db, user.ID, resume.ID)
	require.NoError(t, err)
	byURL, err := repo.FindResume(db, user.ID, resume.URL)
	require.NoError(t, err)
	assert.Equal(t, byID.ID, byURL.ID)

	_, err = repo.FindResume(db, other.ID, resume.ID)
	assert.ErrorIs(t, err, repositories.ErrResumeNotFound, "Чужое резюме не должно находиться")
}

func TestAccountRepository_ListCandidates(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewAccountRepository()

	alice := testutil.CreateAccount(t, db, models.RoleUser, "alice@example.com", "")
	require.NoError(t, db.Model(&models.UserProfile{}).Where("account_id = ?", alice.ID).
		Updates(map[string]interface{}{"gender": "Female", "profession": "Backend Developer"}).Error)
	bob := testutil.CreateAccount(t, db, models.RoleUser, "bob@example.com", "")
	require.NoError(t, db.Model(&models.UserProfile{}).Where("account_id = ?", bob.ID).
		Updates(map[string]interface{}{"gender": "Male", "profession": "Designer"}).Error)
	testutil.CreateAccount(t, db, models.RoleRecruiter, "hr@example.com", "")

	all, err := repo.ListCandidates(db, repositories.CandidateFilter{Gender: "All"})
	require.NoError(t, err)
	assert.Len(t, all, 2, "Рекрутеры не входят в список кандидатов")

	women, err := repo.ListCandidates(db, repositories.CandidateFilter{Gender: "Female"})
	require.NoError(t, err)
	require.Len(t, women, 1)
	assert.Equal(t, alice.ID, women[0].ID)

	found, err := repo.ListCandidates(db, repositories.CandidateFilter{Search: "DESIGN"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, bob.ID, found[0].ID)

	recruiters, err := repo.ListRecruiters(db)
	require.NoError(t, err)
	assert.Len(t, recruiters, 1)
}

func TestJobRepository_ListVisibleFiltersAndPages(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewJobRepository()
	recruiter := testutil.CreateAccount(t, db, models.RoleRecruiter, "hr@example.com", "")

	testutil.CreateJob(t, db, recruiter.ID, "Go Developer")
	testutil.CreateJob(t, db, recruiter.ID, "Intern", testutil.WithExperience("Entry Level"))
	testutil.CreateJob(t, db, recruiter.ID, "Remote", testutil.WithLocation("Remote"))
	testutil.CreateJob(t, db, recruiter.ID, "Hidden", testutil.Hidden())

	jobs, total, err := repo.ListVisible(db, repositories.JobFilter{}, repositories.NewPage(1, 2))
	require.NoError(t, err)
	assert.Equal(t, int64(3), total, "Скрытая вакансия не считается")
	assert.Len(t, jobs, 2)
	require.NotNil(t, jobs[0].Recruiter)

	jobs, total, err = repo.ListVisible(db, repositories.JobFilter{Location: "Lagos", Experience: "Mid Level"}, repositories.Page{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Go Developer", jobs[0].Title)
}

func TestJobRepository_Visibility(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewJobRepository()
	recruiter := testutil.CreateAccount(t, db, models.RoleRecruiter, "hr@example.com", "")
	job := testutil.CreateJob(t, db, recruiter.ID, "Go Developer")

	require.NoError(t, repo.SetVisibility(db, job.ID, false))
	_, err := repo.FindVisibleByID(db, job.ID)
	assert.ErrorIs(t, err, repositories.ErrJobNotFound)

	found, err := repo.FindByID(db, job.ID)
	require.NoError(t, err)
	assert.False(t, found.IsVisible)

	assert.ErrorIs(t, repo.SetVisibility(db, "missing", true), repositories.ErrJobNotFound)
}

func TestJobRepository_DeleteCascades(t *testing.T) {
	db := testutil.NewDB(t)
	jobs := repositories.NewJobRepository()
	applications := repositories.NewApplicationRepository()
	favorites := repositories.NewFavoriteRepository()

	recruiter := testutil.CreateAccount(t, db, models.RoleRecruiter, "hr@example.com", "")
	user := testutil.CreateAccount(t, db, models.RoleUser, "user@example.com", "")
	job := testutil.CreateJob(t, db, recruiter.ID, "Go Developer")

	require.NoError(t, applications.Create(db, &models.AppliedJob{UserID: user.ID, JobID: job.ID, Status: models.ApplicationStatusPending}))
	require.NoError(t, favorites.Create(db, &models.FavoriteJob{UserID: user.ID, JobID: job.ID}))

	require.NoError(t, jobs.Delete(db, job.ID))

	count, err := applications.CountByUser(db, user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
	count, err = favorites.CountByUser(db, user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	assert.ErrorIs(t, jobs.Delete(db, job.ID), repositories.ErrJobNotFound)
}

func TestJobRepository_CountVisibleByExperience(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewJobRepository()
	recruiter := testutil.CreateAccount(t, db, models.RoleRecruiter, "hr@example.com", "")

	testutil.CreateJob(t, db, recruiter.ID, "A", testutil.WithExperience("Senior Level"))
	testutil.CreateJob(t, db, recruiter.ID, "B", testutil.WithExperience("Senior Level"))
	testutil.CreateJob(t, db, recruiter.ID, "C", testutil.WithExperience("Senior Level"), testutil.Hidden())
	testutil.CreateJob(t, db, recruiter.ID, "D", testutil.WithExperience("Guru"))

	counts, err := repo.CountVisibleByExperience(db)
	require.NoError(t, err)
	assert.Len(t, counts, len(models.ExperienceLevels), "Неизвестные уровни не попадают в корзины")
	assert.Equal(t, int64(2), counts["Senior Level"])
	assert.Equal(t, int64(0), counts["No Experience"])
}

func TestJobRepository_HideExpired(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewJobRepository()
	recruiter := testutil.CreateAccount(t, db, models.RoleRecruiter, "hr@example.com", "")

	expired := testutil.CreateJob(t, db, recruiter.ID, "Old", testutil.ExpiresAt(time.Now().Add(-time.Hour)))
	testutil.CreateJob(t, db, recruiter.ID, "Fresh")

	hidden, err := repo.HideExpired(db, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), hidden)

	_, err = repo.FindVisibleByID(db, expired.ID)
	assert.ErrorIs(t, err, repositories.ErrJobNotFound)
}

func TestApplicationRepository_UniqueAndCAS(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewApplicationRepository()

	recruiter := testutil.CreateAccount(t, db, models.RoleRecruiter, "hr@example.com", "")
	user := testutil.CreateAccount(t, db, models.RoleUser, "user@example.com", "")
	job := testutil.CreateJob(t, db, recruiter.ID, "Go Developer")

	application := &models.AppliedJob{UserID: user.ID, JobID: job.ID, Status: models.ApplicationStatusPending}
	require.NoError(t, repo.Create(db, application))
	assert.False(t, application.AppliedAt.IsZero())

	err := repo.Create(db, &models.AppliedJob{UserID: user.ID, JobID: job.ID, Status: models.ApplicationStatusPending})
	assert.ErrorIs(t, err, repositories.ErrAlreadyApplied)

	require.NoError(t, repo.UpdateStatus(db, application.ID, models.ApplicationStatusPending, models.ApplicationStatusAccepted))
	err = repo.UpdateStatus(db, application.ID, models.ApplicationStatusPending, models.ApplicationStatusRejected)
	assert.ErrorIs(t, err, repositories.ErrApplicationNotFound, "Повторный переход из pending невозможен")

	byRecruiter, err := repo.ListByRecruiter(db, recruiter.ID)
	require.NoError(t, err)
	require.Len(t, byRecruiter, 1)
	assert.Equal(t, models.ApplicationStatusAccepted, byRecruiter[0].Status)
	require.NotNil(t, byRecruiter[0].User)

	counts, err := repo.CountByJobs(db, []string{job.ID, "other"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[job.ID])
	assert.Equal(t, int64(0), counts["other"])
}

func TestAlertRepository_Latest(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewAlertRepository()
	user := testutil.CreateAccount(t, db, models.RoleUser, "user@example.com", "")

	_, err := repo.Latest(db, user.ID)
	assert.ErrorIs(t, err, repositories.ErrAlertNotFound)

	require.NoError(t, repo.Create(db, &models.JobAlert{UserID: user.ID, Location: "Lagos"}))
	second := &models.JobAlert{UserID: user.ID, Location: "Abuja"}
	second.CreatedAt = time.Now().Add(time.Minute)
	require.NoError(t, repo.Create(db, second))

	latest, err := repo.Latest(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Abuja", latest.Location)

	count, err := repo.CountByUser(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestNewPage(t *testing.T) {
	assert.Equal(t, repositories.Page{Offset: 0, Limit: 20}, repositories.NewPage(0, 20))
	assert.Equal(t, repositories.Page{Offset: 40, Limit: 20}, repositories.NewPage(3, 20))
}

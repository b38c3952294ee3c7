// Package testutil - общие хелперы тестов: sqlite в памяти и фабрики данных
package testutil

import (
	"strings"
	"testing"
	"time"

	"vacancy_backend/internal/auth"
	"vacancy_backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB создает изолированную базу на тест.
// shared cache нужен, чтобы транзакция и основное соединение видели одни данные.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()) + "_" + uuid.NewString()[:8]
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "Не удалось открыть sqlite")

	require.NoError(t, db.AutoMigrate(models.All()...), "Миграция не должна падать")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// CreateAccount создает подтвержденный аккаунт с профилем под роль.
// password хешируется; пустой пароль - аккаунт без пароля.
func CreateAccount(t *testing.T, db *gorm.DB, role models.Role, email, password string) *models.Account {
	t.Helper()

	account := &models.Account{
		Role:       role,
		FirstName:  "Test",
		LastName:   string(role),
		Email:      email,
		IsVerified: true,
	}
	if password != "" {
		hash, err := auth.HashPassword(password)
		require.NoError(t, err)
		account.PasswordHash = hash
	}
	switch role {
	case models.RoleRecruiter:
		account.RecruiterProfile = &models.RecruiterProfile{
			Position: "HR",
			Company:  models.Company{Name: "Acme", PaymentStatus: models.CompanyPaymentPending},
		}
	case models.RoleAdmin:
		account.AdminProfile = &models.AdminProfile{Title: "Administrator"}
	default:
		account.UserProfile = &models.UserProfile{}
	}

	require.NoError(t, db.Create(account).Error, "Не удалось создать аккаунт %s", email)
	return account
}

// MarkCompanyPaid открывает рекрутеру публикацию вакансий
func MarkCompanyPaid(t *testing.T, db *gorm.DB, recruiterID string) {
	t.Helper()
	err := db.Model(&models.RecruiterProfile{}).
		Where("account_id = ?", recruiterID).
		Update("company_payment_status", models.CompanyPaymentPaid).Error
	require.NoError(t, err)
}

// JobOption меняет вакансию перед сохранением
type JobOption func(*models.Job)

func WithExperience(level string) JobOption {
	return func(j *models.Job) { j.Experience = level }
}

func WithLocation(location string) JobOption {
	return func(j *models.Job) { j.Location = location }
}

func Hidden() JobOption {
	return func(j *models.Job) { j.IsVisible = false }
}

func ExpiresAt(at time.Time) JobOption {
	return func(j *models.Job) { j.ExpirationDate = at }
}

func CreateJob(t *testing.T, db *gorm.DB, recruiterID, title string, opts ...JobOption) *models.Job {
	t.Helper()

	job := &models.Job{
		RecruiterID:    recruiterID,
		Title:          title,
		Description:    "Description of " + title,
		JobRole:        "Engineer",
		JobType:        "Full Time",
		Experience:     "Mid Level",
		Industry:       "IT",
		Location:       "Lagos",
		ExpirationDate: time.Now().Add(30 * 24 * time.Hour),
		SalaryType:     models.SalaryMonthly,
		IsVisible:      true,
	}
	for _, opt := range opts {
		opt(job)
	}

	visible := job.IsVisible
	require.NoError(t, db.Create(job).Error)
	// default:true у gorm игнорирует нулевое значение при Create
	if !visible {
		require.NoError(t, db.Model(job).Update("is_visible", false).Error)
		job.IsVisible = false
	}
	return job
}

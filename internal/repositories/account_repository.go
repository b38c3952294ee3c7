package repositories

import (
	"errors"
	"strings"
	"time"

	"vacancy_backend/internal/models"

	"gorm.io/gorm"
)

type AccountRepository interface {
	Create(db *gorm.DB, account *models.Account) error
	FindByID(db *gorm.DB, id string) (*models.Account, error)
	FindByEmail(db *gorm.DB, email string) (*models.Account, error)
	FindByResetToken(db *gorm.DB, token string, now time.Time) (*models.Account, error)
	EmailExists(db *gorm.DB, email string) (bool, error)
	UpdateFields(db *gorm.DB, id string, fields map[string]interface{}) error
	ReferenceUsedByOther(db *gorm.DB, reference, accountID string) (bool, error)

	SaveUserProfile(db *gorm.DB, profile *models.UserProfile) error
	SaveRecruiterProfile(db *gorm.DB, profile *models.RecruiterProfile) error
	UpdateCompanyPayment(db *gorm.DB, accountID string, status models.CompanyPaymentStatus) error

	CreateResume(db *gorm.DB, resume *models.Resume) error
	FindResume(db *gorm.DB, accountID, idOrURL string) (*models.Resume, error)
	DeleteResume(db *gorm.DB, resume *models.Resume) error

	ListCandidates(db *gorm.DB, filter CandidateFilter) ([]models.Account, error)
	ListRecruiters(db *gorm.DB) ([]models.Account, error)
}

// CandidateFilter - все строковые фильтры регистронезависимые "contains",
// кроме Gender (точное совпадение, "All" игнорируется).
type CandidateFilter struct {
	Gender     string
	Location   string
	Experience string
	Education  string
	Phone      string
	Email      string
	Search     string
}

type AccountRepositoryImpl struct{}

func NewAccountRepository() AccountRepository {
	return &AccountRepositoryImpl{}
}

func withProfiles(db *gorm.DB) *gorm.DB {
	return db.Preload("UserProfile").
		Preload("RecruiterProfile").
		Preload("AdminProfile").
		Preload("Resumes", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at ASC")
		})
}

func (r *AccountRepositoryImpl) Create(db *gorm.DB, account *models.Account) error {
	if err := db.Create(account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *AccountRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Account, error) {
	var account models.Account
	err := withProfiles(db).First(&account, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.Account, error) {
	var account models.Account
	err := withProfiles(db).First(&account, "email = ?", models.NormalizeEmail(email)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepositoryImpl) FindByResetToken(db *gorm.DB, token string, now time.Time) (*models.Account, error) {
	var account models.Account
	err := db.Where("reset_password_token = ? AND reset_password_expires > ?", token, now).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepositoryImpl) EmailExists(db *gorm.DB, email string) (bool, error) {
	var count int64
	err := db.Model(&models.Account{}).
		Where("email = ?", models.NormalizeEmail(email)).
		Count(&count).Error
	return count > 0, err
}

// ReferenceUsedByOther - засчитан ли платеж с этим reference другому аккаунту
func (r *AccountRepositoryImpl) ReferenceUsedByOther(db *gorm.DB, reference, accountID string) (bool, error) {
	var count int64
	err := db.Model(&models.Account{}).
		Where("payment_reference = ? AND id <> ?", reference, accountID).
		Count(&count).Error
	return count > 0, err
}

func (r *AccountRepositoryImpl) UpdateFields(db *gorm.DB, id string, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	result := db.Model(&models.Account{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepositoryImpl) SaveUserProfile(db *gorm.DB, profile *models.UserProfile) error {
	return db.Save(profile).Error
}

func (r *AccountRepositoryImpl) SaveRecruiterProfile(db *gorm.DB, profile *models.RecruiterProfile) error {
	return db.Save(profile).Error
}

func (r *AccountRepositoryImpl) UpdateCompanyPayment(db *gorm.DB, accountID string, status models.CompanyPaymentStatus) error {
	result := db.Model(&models.RecruiterProfile{}).
		Where("account_id = ?", accountID).
		Updates(map[string]interface{}{
			"company_payment_status": status,
			"updated_at":             time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// ============================================
// Резюме
// ============================================

func (r *AccountRepositoryImpl) CreateResume(db *gorm.DB, resume *models.Resume) error {
	return db.Create(resume).Error
}

// FindResume ищет по id или по URL: фронтенд исторически присылает и то, и другое
func (r *AccountRepositoryImpl) FindResume(db *gorm.DB, accountID, idOrURL string) (*models.Resume, error) {
	var resume models.Resume
	err := db.Where("account_id = ? AND (id = ? OR url = ?)", accountID, idOrURL, idOrURL).
		First(&resume).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResumeNotFound
		}
		return nil, err
	}
	return &resume, nil
}

func (r *AccountRepositoryImpl) DeleteResume(db *gorm.DB, resume *models.Resume) error {
	return db.Delete(resume).Error
}

// ============================================
// Каталоги
// ============================================

func (r *AccountRepositoryImpl) ListCandidates(db *gorm.DB, filter CandidateFilter) ([]models.Account, error) {
	query := db.Model(&models.Account{}).
		Joins("LEFT JOIN user_profiles ON user_profiles.account_id = accounts.id").
		Where("accounts.role = ?", models.RoleUser)

	if filter.Gender != "" && !strings.EqualFold(filter.Gender, "All") {
		query = query.Where("user_profiles.gender = ?", filter.Gender)
	}

	contains := func(q *gorm.DB, column, value string) *gorm.DB {
		if value == "" {
			return q
		}
		return q.Where("LOWER("+column+") LIKE ?", likePattern(value))
	}
	query = contains(query, "accounts.location", filter.Location)
	query = contains(query, "user_profiles.experience", filter.Experience)
	query = contains(query, "user_profiles.education", filter.Education)
	query = contains(query, "accounts.phone", filter.Phone)
	query = contains(query, "accounts.email", filter.Email)

	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where(
			"(LOWER(accounts.first_name) LIKE ? OR LOWER(accounts.last_name) LIKE ? OR LOWER(user_profiles.profession) LIKE ? OR LOWER("+textCast(db, "user_profiles.skills")+") LIKE ?)",
			pattern, pattern, pattern, pattern,
		)
	}

	var accounts []models.Account
	err := query.Preload("UserProfile").
		Order("accounts.created_at DESC").
		Find(&accounts).Error
	return accounts, err
}

func (r *AccountRepositoryImpl) ListRecruiters(db *gorm.DB) ([]models.Account, error) {
	var accounts []models.Account
	err := db.Preload("RecruiterProfile").
		Where("role = ?", models.RoleRecruiter).
		Order("created_at DESC").
		Find(&accounts).Error
	return accounts, err
}

func likePattern(v string) string {
	return "%" + strings.ToLower(strings.TrimSpace(v)) + "%"
}

// textCast приводит JSON-колонку к строке; в MySQL нет CAST(... AS TEXT)
func textCast(db *gorm.DB, column string) string {
	if db.Dialector.Name() == "mysql" {
		return "CAST(" + column + " AS CHAR)"
	}
	return "CAST(" + column + " AS TEXT)"
}

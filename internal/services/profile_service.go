package services

import (
	"context"
	"errors"
	"mime/multipart"

	"vacancy_backend/internal/imageprocessor"
	"vacancy_backend/internal/models"
	"vacancy_backend/internal/repositories"
	"vacancy_backend/internal/services/dto"
	"vacancy_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProfileService interface {
	GetProfile(db *gorm.DB, accountID string) (*models.Account, error)
	UpdateSettings(db *gorm.DB, accountID string, req *dto.SettingsRequest) (*models.Account, error)
	UploadProfileImage(ctx context.Context, db *gorm.DB, accountID string, fh *multipart.FileHeader) (string, error)

	UploadResume(ctx context.Context, db *gorm.DB, accountID string, fh *multipart.FileHeader) (*models.Resume, error)
	DeleteResume(ctx context.Context, db *gorm.DB, accountID, resumeID string) error

	SetupRecruiter(ctx context.Context, db *gorm.DB, accountID string, req *dto.RecruiterSetupRequest, logo, banner *multipart.FileHeader) (*models.Account, error)

	ListCandidates(db *gorm.DB, query *dto.CandidateQuery) ([]dto.CandidateResponse, error)
	ListRecruiters(db *gorm.DB) ([]dto.RecruiterDirectoryEntry, error)
}

type ProfileServiceImpl struct {
	accountRepo repositories.AccountRepository
	uploader    *FileUploader
}

func NewProfileService(accountRepo repositories.AccountRepository, uploader *FileUploader) ProfileService {
	return &ProfileServiceImpl{
		accountRepo: accountRepo,
		uploader:    uploader,
	}
}

func (s *ProfileServiceImpl) GetProfile(db *gorm.DB, accountID string) (*models.Account, error) {
	account, err := s.accountRepo.FindByID(db, accountID)
	if err != nil {
		return nil, handleAccountError(err)
	}
	if _, err := account.Profile(); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return account, nil
}

// UpdateSettings меняет поля аккаунта и, для соискателя, его профиль
func (s *ProfileServiceImpl) UpdateSettings(db *gorm.DB, accountID string, req *dto.SettingsRequest) (*models.Account, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	account, err := s.accountRepo.FindByID(tx, accountID)
	if err != nil {
		return nil, handleAccountError(err)
	}

	fields := map[string]interface{}{}
	setString(fields, "first_name", req.FirstName)
	setString(fields, "last_name", req.LastName)
	setString(fields, "phone", req.Phone)
	setString(fields, "location", req.Location)
	if len(fields) > 0 {
		if err := s.accountRepo.UpdateFields(tx, accountID, fields); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	if account.Role == models.RoleUser {
		profile := account.UserProfile
		if profile == nil {
			profile = &models.UserProfile{AccountID: accountID}
		}
		applyUserSettings(profile, req)
		if err := s.accountRepo.SaveUserProfile(tx, profile); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.GetProfile(db, accountID)
}

func applyUserSettings(p *models.UserProfile, req *dto.SettingsRequest) {
	if req.Dob != nil {
		p.Dob = req.Dob
	}
	if req.Gender != nil {
		p.Gender = models.Gender(*req.Gender)
	}
	if req.Education != nil {
		p.Education = *req.Education
	}
	if req.Profession != nil {
		p.Profession = *req.Profession
	}
	if req.Qualification != nil {
		p.Qualification = *req.Qualification
	}
	if req.Experience != nil {
		p.Experience = *req.Experience
	}
	if req.Skills != nil {
		p.Skills = datatypes.JSONSlice[string](req.Skills)
	}
	if req.Headline != nil {
		p.Headline = *req.Headline
	}
	if req.Website != nil {
		p.Website = *req.Website
	}
	if req.Bio != nil {
		p.Bio = *req.Bio
	}
	if req.SocialLinks != nil {
		p.SocialLinks = datatypes.NewJSONType(*req.SocialLinks)
	}
}

func setString(fields map[string]interface{}, column string, value *string) {
	if value != nil {
		fields[column] = *value
	}
}

func (s *ProfileServiceImpl) UploadProfileImage(ctx context.Context, db *gorm.DB, accountID string, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", apperrors.NewBadRequestError("No image file provided")
	}
	url, err := s.uploader.UploadImage(ctx, "profiles", accountID, fh, imageprocessor.SizeAvatar)
	if err != nil {
		return "", err
	}
	if err := s.accountRepo.UpdateFields(db, accountID, map[string]interface{}{"profile_image": url}); err != nil {
		return "", handleAccountError(err)
	}
	return url, nil
}

func (s *ProfileServiceImpl) UploadResume(ctx context.Context, db *gorm.DB, accountID string, fh *multipart.FileHeader) (*models.Resume, error) {
	if fh == nil {
		return nil, apperrors.NewBadRequestError("No file uploaded")
	}
	resume, err := s.uploader.UploadResume(ctx, accountID, fh)
	if err != nil {
		return nil, err
	}
	if err := s.accountRepo.CreateResume(db, resume); err != nil {
		s.uploader.Delete(ctx, resume.PublicID)
		return nil, apperrors.InternalError(err)
	}
	return resume, nil
}

// DeleteResume принимает id записи или URL файла
func (s *ProfileServiceImpl) DeleteResume(ctx context.Context, db *gorm.DB, accountID, resumeID string) error {
	resume, err := s.accountRepo.FindResume(db, accountID, resumeID)
	if err != nil {
		if errors.Is(err, repositories.ErrResumeNotFound) {
			return apperrors.ErrResumeNotFound
		}
		return apperrors.InternalError(err)
	}
	if err := s.accountRepo.DeleteResume(db, resume); err != nil {
		return apperrors.InternalError(err)
	}
	s.uploader.Delete(ctx, resume.PublicID)
	return nil
}

// SetupRecruiter заполняет профиль компании; пустые поля формы затирают старые значения, как и в форме на фронтенде
func (s *ProfileServiceImpl) SetupRecruiter(ctx context.Context, db *gorm.DB, accountID string, req *dto.RecruiterSetupRequest, logo, banner *multipart.FileHeader) (*models.Account, error) {
	account, err := s.accountRepo.FindByID(db, accountID)
	if err != nil {
		return nil, handleAccountError(err)
	}
	profile := account.RecruiterProfile
	if account.Role != models.RoleRecruiter || profile == nil {
		return nil, apperrors.ErrAccessDenied
	}

	// Файлы загружаются до сохранения профиля
	if logo != nil {
		url, err := s.uploader.UploadImage(ctx, "companies", accountID, logo, imageprocessor.SizeLogo)
		if err != nil {
			return nil, err
		}
		profile.Company.Logo = url
	}
	if banner != nil {
		url, err := s.uploader.UploadImage(ctx, "companies", accountID, banner, imageprocessor.SizeBanner)
		if err != nil {
			return nil, err
		}
		profile.Company.Banner = url
	}

	if req.Position != "" {
		profile.Position = req.Position
	}
	c := &profile.Company
	c.Name = req.CompanyName
	c.About = req.About
	c.IndustryType = req.IndustryType
	c.Industry = req.Industry
	c.OrganizationType = req.OrganizationType
	c.Employees = req.Employees
	c.Website = req.Website
	c.Vision = req.Vision
	c.Phone = req.Phone
	c.NotificationEmail = req.NotificationEmail
	c.ContactPerson = req.ContactPerson
	c.Country = req.Country
	c.Address = req.Address
	c.SocialLinks = datatypes.NewJSONType(models.CompanySocialLinks{
		Facebook:  req.Facebook,
		Instagram: req.Instagram,
		Youtube:   req.Youtube,
	})

	if err := s.accountRepo.SaveRecruiterProfile(db, profile); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.GetProfile(db, accountID)
}

func (s *ProfileServiceImpl) ListCandidates(db *gorm.DB, query *dto.CandidateQuery) ([]dto.CandidateResponse, error) {
	accounts, err := s.accountRepo.ListCandidates(db, repositories.CandidateFilter{
		Gender:     query.Gender,
		Location:   query.Location,
		Experience: query.Experience,
		Education:  query.Education,
		Phone:      query.Phone,
		Email:      query.Email,
		Search:     query.Search,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.CandidateResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, dto.NewCandidateResponse(&accounts[i]))
	}
	return out, nil
}

func (s *ProfileServiceImpl) ListRecruiters(db *gorm.DB) ([]dto.RecruiterDirectoryEntry, error) {
	accounts, err := s.accountRepo.ListRecruiters(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.RecruiterDirectoryEntry, 0, len(accounts))
	for i := range accounts {
		out = append(out, dto.NewRecruiterDirectoryEntry(&accounts[i]))
	}
	return out, nil
}

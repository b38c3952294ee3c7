package dto

import (
	"time"

	"vacancy_backend/internal/models"
)

// SettingsRequest - частичное обновление, nil поля не меняются
type SettingsRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,max=100"`
	LastName  *string `json:"lastName" validate:"omitempty,max=100"`
	Phone     *string `json:"phone" validate:"omitempty,max=50"`
	Location  *string `json:"location" validate:"omitempty,max=255"`

	Dob           *time.Time          `json:"dob"`
	Gender        *string             `json:"gender" validate:"omitempty,is-gender"`
	Education     *string             `json:"education"`
	Profession    *string             `json:"profession"`
	Qualification *string             `json:"qualification"`
	Experience    *string             `json:"experience"`
	Skills        []string            `json:"skills"`
	Headline      *string             `json:"headline"`
	Website       *string             `json:"website" validate:"omitempty,url"`
	Bio           *string             `json:"bio" validate:"omitempty,max=5000"`
	SocialLinks   *models.SocialLinks `json:"socialLinks"`
}

// RecruiterSetupRequest приходит multipart формой вместе с logo и banner
type RecruiterSetupRequest struct {
	CompanyName       string `form:"companyName" json:"companyName"`
	Position          string `form:"position" json:"position"`
	About             string `form:"about" json:"about"`
	IndustryType      string `form:"industryType" json:"industryType"`
	Industry          string `form:"industry" json:"industry"`
	OrganizationType  string `form:"organizationType" json:"organizationType"`
	Employees         string `form:"noOfEmployees" json:"noOfEmployees"`
	Website           string `form:"website" json:"website" validate:"omitempty,url"`
	Vision            string `form:"vision" json:"vision"`
	Facebook          string `form:"facebook" json:"facebook"`
	Instagram         string `form:"instagram" json:"instagram"`
	Youtube           string `form:"youtube" json:"youtube"`
	Phone             string `form:"phone" json:"phone"`
	NotificationEmail string `form:"notificationEmail" json:"notificationEmail" validate:"omitempty,email"`
	ContactPerson     string `form:"contactPerson" json:"contactPerson"`
	Country           string `form:"country" json:"country"`
	Address           string `form:"address" json:"address"`
}

type ProfileImageResponse struct {
	Message      string `json:"message"`
	ProfileImage string `json:"profileImage"`
}

type ResumeResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Resume  *models.Resume `json:"resume,omitempty"`
}

type CandidateQuery struct {
	Gender     string `form:"gender"`
	Location   string `form:"location"`
	Experience string `form:"experience"`
	Education  string `form:"education"`
	Phone      string `form:"phone"`
	Email      string `form:"email"`
	Search     string `form:"search"`
}

// CandidateResponse - публичные поля соискателя
type CandidateResponse struct {
	ID           string        `json:"_id"`
	FirstName    string        `json:"firstName"`
	LastName     string        `json:"lastName"`
	ProfileImage string        `json:"profileImage"`
	Email        string        `json:"email"`
	Phone        string        `json:"phone"`
	Location     string        `json:"location"`
	Profession   string        `json:"profession"`
	Education    string        `json:"education"`
	Experience   string        `json:"experience"`
	Gender       models.Gender `json:"gender,omitempty"`
	Dob          *time.Time    `json:"dob,omitempty"`
	Bio          string        `json:"bio"`
	Skills       []string      `json:"skills"`
}

func NewCandidateResponse(a *models.Account) CandidateResponse {
	c := CandidateResponse{
		ID:           a.ID,
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		ProfileImage: a.ProfileImage,
		Email:        a.Email,
		Phone:        a.Phone,
		Location:     a.Location,
		Skills:       []string{},
	}
	if p := a.UserProfile; p != nil {
		c.Profession = p.Profession
		c.Education = p.Education
		c.Experience = p.Experience
		c.Gender = p.Gender
		c.Dob = p.Dob
		c.Bio = p.Bio
		if p.Skills != nil {
			c.Skills = p.Skills
		}
	}
	return c
}

// RecruiterDirectoryEntry - плоское представление рекрутера для каталога
type RecruiterDirectoryEntry struct {
	ID                string                    `json:"id"`
	RecruiterName     string                    `json:"recruiterName"`
	Email             string                    `json:"email"`
	Phone             string                    `json:"phone"`
	Location          string                    `json:"location"`
	CompanyName       string                    `json:"companyName"`
	CompanyLogo       string                    `json:"companyLogo"`
	CompanyBanner     string                    `json:"companyBanner"`
	About             string                    `json:"about"`
	Vision            string                    `json:"vision"`
	Website           string                    `json:"website"`
	Industry          string                    `json:"industry"`
	Employees         string                    `json:"employees"`
	NotificationEmail string                    `json:"notificationEmail"`
	SocialLinks       models.CompanySocialLinks `json:"socialLinks"`
}

func NewRecruiterDirectoryEntry(a *models.Account) RecruiterDirectoryEntry {
	e := RecruiterDirectoryEntry{
		ID:            a.ID,
		RecruiterName: a.FullName(),
		Email:         a.Email,
		Phone:         a.Phone,
		Location:      a.Location,
	}
	if a.RecruiterProfile == nil {
		return e
	}
	c := a.RecruiterProfile.Company
	e.CompanyName = c.Name
	e.CompanyLogo = c.Logo
	e.CompanyBanner = c.Banner
	e.About = c.About
	e.Vision = c.Vision
	e.Website = c.Website
	e.Industry = c.IndustryType
	if e.Industry == "" {
		e.Industry = c.Industry
	}
	e.Employees = c.Employees
	e.NotificationEmail = c.NotificationEmail
	e.SocialLinks = c.SocialLinks.Data()
	return e
}

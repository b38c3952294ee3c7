package dto

import (
	"time"

	"vacancy_backend/internal/models"
)

type CreateJobRequest struct {
	Title          string     `json:"title" validate:"required,max=255"`
	Description    string     `json:"description" validate:"required"`
	JobRole        string     `json:"jobRole" validate:"required,max=255"`
	JobType        string     `json:"jobType" validate:"required,max=100"`
	Experience     string     `json:"experience" validate:"required,is-experience"`
	Industry       string     `json:"industry" validate:"required,max=255"`
	ExpirationDate *time.Time `json:"expirationDate" validate:"required"`
	Location       string     `json:"location" validate:"required,max=255"`
	MinSalary      *float64   `json:"minSalary" validate:"omitempty,min=0"`
	MaxSalary      *float64   `json:"maxSalary" validate:"omitempty,min=0"`
	SalaryType     string     `json:"salaryType" validate:"omitempty,is-salary-type"`
	Salary         string     `json:"salary"`
	Category       string     `json:"category"`
	Level          string     `json:"level"`
}

// UpdateJobRequest - частичное обновление
type UpdateJobRequest struct {
	Title          *string    `json:"title" validate:"omitempty,min=1,max=255"`
	Description    *string    `json:"description" validate:"omitempty,min=1"`
	JobRole        *string    `json:"jobRole" validate:"omitempty,min=1,max=255"`
	JobType        *string    `json:"jobType" validate:"omitempty,min=1,max=100"`
	Experience     *string    `json:"experience" validate:"omitempty,is-experience"`
	Industry       *string    `json:"industry" validate:"omitempty,min=1,max=255"`
	ExpirationDate *time.Time `json:"expirationDate"`
	Location       *string    `json:"location" validate:"omitempty,min=1,max=255"`
	MinSalary      *float64   `json:"minSalary" validate:"omitempty,min=0"`
	MaxSalary      *float64   `json:"maxSalary" validate:"omitempty,min=0"`
	SalaryType     *string    `json:"salaryType" validate:"omitempty,is-salary-type"`
	Salary         *string    `json:"salary"`
	Category       *string    `json:"category"`
	Level          *string    `json:"level"`
	IsVisible      *bool      `json:"isVisible"`
}

type VisibilityRequest struct {
	IsVisible *bool `json:"isVisible" validate:"required"`
}

type JobFilterQuery struct {
	JobRole    string `form:"jobRole"`
	Industry   string `form:"industry"`
	Location   string `form:"location"`
	JobType    string `form:"jobType"`
	Experience string `form:"experience"`
}

// CompanySummary - поля компании, которые видны в карточке вакансии
type CompanySummary struct {
	Name     string `json:"name"`
	Logo     string `json:"logo"`
	Banner   string `json:"banner"`
	Industry string `json:"industry"`
	Website  string `json:"website"`
}

type RecruiterSummary struct {
	ID        string          `json:"_id"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	Email     string          `json:"email"`
	Company   *CompanySummary `json:"company,omitempty"`
}

func NewRecruiterSummary(a *models.Account) *RecruiterSummary {
	if a == nil {
		return nil
	}
	s := &RecruiterSummary{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Email:     a.Email,
	}
	if p := a.RecruiterProfile; p != nil {
		s.Company = &CompanySummary{
			Name:     p.Company.Name,
			Logo:     p.Company.Logo,
			Banner:   p.Company.Banner,
			Industry: p.Company.Industry,
			Website:  p.Company.Website,
		}
	}
	return s
}

// JobResponse заменяет полный аккаунт рекрутера на краткую сводку
type JobResponse struct {
	models.Job
	Recruiter *RecruiterSummary `json:"recruiter,omitempty"`
}

func NewJobResponse(job *models.Job) *JobResponse {
	if job == nil {
		return nil
	}
	return &JobResponse{Job: *job, Recruiter: NewRecruiterSummary(job.Recruiter)}
}

func NewJobResponses(jobs []models.Job) []*JobResponse {
	out := make([]*JobResponse, 0, len(jobs))
	for i := range jobs {
		out = append(out, NewJobResponse(&jobs[i]))
	}
	return out
}

type JobListResponse struct {
	Success  bool           `json:"success"`
	Count    int            `json:"count"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
	Jobs     []*JobResponse `json:"jobs"`
}

type JobResult struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Job     *JobResponse `json:"job"`
}

type RecruiterJobResponse struct {
	models.Job
	ApplicantsCount int64 `json:"applicantsCount"`
}

type RecruiterJobsResponse struct {
	Success bool                   `json:"success"`
	Jobs    []RecruiterJobResponse `json:"jobs"`
}

type CountResponse struct {
	Success bool  `json:"success"`
	Count   int64 `json:"count"`
}

type TotalResponse struct {
	Success bool  `json:"success"`
	Total   int64 `json:"total"`
}

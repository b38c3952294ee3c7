package dto

import (
	"time"

	"vacancy_backend/internal/models"
)

// ApplyRequest - либо ссылка на загруженное резюме, либо файл "resume" в той же форме
type ApplyRequest struct {
	CoverLetter string `form:"coverLetter" json:"coverLetter" validate:"max=10000"`
	Resume      string `form:"resume" json:"resume" validate:"omitempty,uri"`
	ResumeID    string `form:"resumeId" json:"resumeId"`
}

type ApplyResponse struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message"`
	AppliedJob *models.AppliedJob `json:"appliedJob"`
}

type UpdateApplicationStatusRequest struct {
	Status models.ApplicationStatus `json:"status" validate:"required,is-application-action"`
}

type ApplicationStatusResponse struct {
	Success     bool               `json:"success"`
	Message     string             `json:"message"`
	Application *models.AppliedJob `json:"application"`
}

type AppliedStatusResponse struct {
	Success bool `json:"success"`
	Applied bool `json:"applied"`
}

// AppliedJobView - отклик соискателя с вакансией и компанией
type AppliedJobView struct {
	models.AppliedJob
	Job *JobResponse `json:"job,omitempty"`
}

func NewAppliedJobViews(items []models.AppliedJob) []AppliedJobView {
	out := make([]AppliedJobView, 0, len(items))
	for _, a := range items {
		out = append(out, AppliedJobView{AppliedJob: a, Job: NewJobResponse(a.Job)})
	}
	return out
}

type ApplicantSummary struct {
	ID           string   `json:"_id"`
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	Location     string   `json:"location"`
	ProfileImage string   `json:"profileImage"`
	Profession   string   `json:"profession"`
	Experience   string   `json:"experience"`
	Skills       []string `json:"skills"`
}

func NewApplicantSummary(a *models.Account) *ApplicantSummary {
	if a == nil {
		return nil
	}
	s := &ApplicantSummary{
		ID:           a.ID,
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		Email:        a.Email,
		Phone:        a.Phone,
		Location:     a.Location,
		ProfileImage: a.ProfileImage,
		Skills:       []string{},
	}
	if p := a.UserProfile; p != nil {
		s.Profession = p.Profession
		s.Experience = p.Experience
		if p.Skills != nil {
			s.Skills = p.Skills
		}
	}
	return s
}

type JobBrief struct {
	ID       string `json:"_id"`
	Title    string `json:"title"`
	Location string `json:"location"`
}

// ApplicationView - отклик глазами рекрутера
type ApplicationView struct {
	ID          string                   `json:"_id"`
	Status      models.ApplicationStatus `json:"status"`
	CoverLetter string                   `json:"coverLetter"`
	Resume      string                   `json:"resume"`
	AppliedAt   time.Time                `json:"appliedAt"`
	Applicant   *ApplicantSummary        `json:"user,omitempty"`
	Job         *JobBrief                `json:"job,omitempty"`
}

func NewApplicationView(a *models.AppliedJob) ApplicationView {
	v := ApplicationView{
		ID:          a.ID,
		Status:      a.Status,
		CoverLetter: a.CoverLetter,
		Resume:      a.Resume,
		AppliedAt:   a.AppliedAt,
		Applicant:   NewApplicantSummary(a.User),
	}
	if a.Job != nil {
		v.Job = &JobBrief{ID: a.Job.ID, Title: a.Job.Title, Location: a.Job.Location}
	}
	return v
}

func NewApplicationViews(items []models.AppliedJob) []ApplicationView {
	out := make([]ApplicationView, 0, len(items))
	for i := range items {
		out = append(out, NewApplicationView(&items[i]))
	}
	return out
}

type ApplicationsResponse struct {
	Success      bool              `json:"success"`
	Applications []ApplicationView `json:"applications"`
}

type ApplicantsResponse struct {
	Success    bool              `json:"success"`
	Applicants []ApplicationView `json:"applicants"`
}

type SignedURLResponse struct {
	URL string `json:"url"`
}

type ToggleFavoriteRequest struct {
	JobID string `json:"jobId" validate:"required"`
}

type FavoriteResponse struct {
	Favorite bool `json:"favorite"`
}

// AlertRequest - все поля необязательны, пустые не участвуют в подборе
type AlertRequest struct {
	JobRole    string `json:"jobRole" validate:"max=255"`
	Industry   string `json:"industry" validate:"max=255"`
	Location   string `json:"location" validate:"max=255"`
	Experience string `json:"experience" validate:"omitempty,is-experience"`
	JobType    string `json:"jobType" validate:"max=100"`
}

type AlertResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Alert   *models.JobAlert `json:"alert"`
}

type JobsResponse struct {
	Success bool           `json:"success"`
	Jobs    []*JobResponse `json:"jobs"`
}

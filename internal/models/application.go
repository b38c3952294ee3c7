package models

import "time"

// AppliedJob - отклик соискателя. Пара (UserID, JobID) уникальна.
type AppliedJob struct {
	BaseModel
	UserID      string            `gorm:"type:varchar(36);not null;uniqueIndex:idx_applied_user_job" json:"userId"`
	JobID       string            `gorm:"type:varchar(36);not null;uniqueIndex:idx_applied_user_job;index" json:"jobId"`
	Resume      string            `json:"resume"`
	ResumeID    string            `json:"resumeId"`
	CoverLetter string            `gorm:"type:text" json:"coverLetter"`
	Status      ApplicationStatus `gorm:"size:20;default:pending;index" json:"status"`
	AppliedAt   time.Time         `json:"appliedAt"`

	User *Account `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Job  *Job     `gorm:"foreignKey:JobID" json:"job,omitempty"`
}

// FavoriteJob - наличие строки означает "в избранном"
type FavoriteJob struct {
	BaseModel
	UserID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_favorite_user_job" json:"userId"`
	JobID  string `gorm:"type:varchar(36);not null;uniqueIndex:idx_favorite_user_job;index" json:"jobId"`

	Job *Job `gorm:"foreignKey:JobID" json:"job,omitempty"`
}

// JobAlert - сохраненный разреженный фильтр. Пустые поля не ограничивают выборку.
type JobAlert struct {
	BaseModel
	UserID     string `gorm:"type:varchar(36);not null;index" json:"userId"`
	JobRole    string `json:"jobRole,omitempty"`
	Industry   string `json:"industry,omitempty"`
	Location   string `json:"location,omitempty"`
	Experience string `json:"experience,omitempty"`
	JobType    string `json:"jobType,omitempty"`
}

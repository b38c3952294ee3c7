package models

import "time"

// Job - вакансия рекрутера. IsVisible управляет попаданием в публичные списки.
type Job struct {
	BaseModel
	RecruiterID    string     `gorm:"type:varchar(36);index;not null" json:"recruiterId"`
	Title          string     `gorm:"size:255;not null" json:"title"`
	Description    string     `gorm:"type:text;not null" json:"description"`
	JobRole        string     `gorm:"size:255;index" json:"jobRole"`
	JobType        string     `gorm:"size:100;index" json:"jobType"`
	Experience     string     `gorm:"size:50;index" json:"experience"`
	Industry       string     `gorm:"size:255;index" json:"industry"`
	Location       string     `gorm:"size:255;index" json:"location"`
	ExpirationDate time.Time  `gorm:"index" json:"expirationDate"`
	MinSalary      *float64   `json:"minSalary,omitempty"`
	MaxSalary      *float64   `json:"maxSalary,omitempty"`
	SalaryType     SalaryType `gorm:"size:20;default:Negotiable" json:"salaryType"`
	Salary         string     `json:"salary,omitempty"`
	Category       string     `gorm:"size:255" json:"category,omitempty"`
	Level          string     `gorm:"size:100" json:"level,omitempty"`
	IsVisible      bool       `gorm:"default:true;index" json:"isVisible"`

	Recruiter *Account `gorm:"foreignKey:RecruiterID" json:"recruiter,omitempty"`
}

// OwnedBy - admin владеет всеми вакансиями
func (j *Job) OwnedBy(accountID string, role Role) bool {
	return role == RoleAdmin || j.RecruiterID == accountID
}

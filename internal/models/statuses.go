package models

type Role string
type ApplicationStatus string
type CompanyPaymentStatus string
type SalaryType string
type Gender string

const (
	RoleUser      Role = "user"
	RoleRecruiter Role = "recruiter"
	RoleAdmin     Role = "admin"

	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"

	CompanyPaymentPending CompanyPaymentStatus = "pending"
	CompanyPaymentPaid    CompanyPaymentStatus = "paid"

	SalaryMonthly    SalaryType = "Monthly"
	SalaryYearly     SalaryType = "Yearly"
	SalaryHourly     SalaryType = "Hourly"
	SalaryNegotiable SalaryType = "Negotiable"

	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"

	// Значения paymentStatus аккаунта соискателя
	UserPaymentSuccess = "success"
	PaymentGateway     = "paystack"
)

// ExperienceLevels - фиксированные корзины опыта, порядок важен для UI фильтра
var ExperienceLevels = []string{
	"No Experience",
	"Entry Level",
	"Internship & Graduate",
	"Mid Level",
	"Senior Level",
	"Executive Level",
}

func IsExperienceLevel(v string) bool {
	for _, l := range ExperienceLevels {
		if l == v {
			return true
		}
	}
	return false
}

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleRecruiter, RoleAdmin:
		return true
	}
	return false
}

func (s SalaryType) Valid() bool {
	switch s {
	case SalaryMonthly, SalaryYearly, SalaryHourly, SalaryNegotiable:
		return true
	}
	return false
}

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Terminal - accepted и rejected финальные
func (s ApplicationStatus) Terminal() bool {
	return s == ApplicationStatusAccepted || s == ApplicationStatusRejected
}

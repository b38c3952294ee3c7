package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Account - общая идентичность для всех ролей.
// Ролевые данные лежат в отдельных таблицах, выбор по Role.
type Account struct {
	BaseModel
	Role         Role   `gorm:"type:varchar(20);not null;index" json:"role"`
	FirstName    string `gorm:"size:100" json:"firstName"`
	LastName     string `gorm:"size:100" json:"lastName"`
	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string `json:"-"`
	GoogleID     string `gorm:"size:255;index" json:"googleId,omitempty"`
	Phone        string `gorm:"size:50" json:"phone"`
	Location     string `gorm:"size:255" json:"location"`
	ProfileImage string `json:"profileImage"`

	IsVerified          bool       `gorm:"default:false" json:"isVerified"`
	VerificationCode    string     `gorm:"size:6" json:"-"`
	VerificationExpires *time.Time `json:"-"`

	ResetPasswordToken   string     `gorm:"size:64;index" json:"-"`
	ResetPasswordExpires *time.Time `json:"-"`

	HasPaid           bool       `gorm:"default:false" json:"hasPaid"`
	AmountPaid        float64    `json:"amountPaid"`
	PaymentReference  string     `gorm:"size:100" json:"paymentReference,omitempty"`
	PaymentStatus     string     `gorm:"size:20" json:"paymentStatus,omitempty"`
	PaymentGateway    string     `gorm:"size:20" json:"paymentGateway,omitempty"`
	PaymentVerifiedAt *time.Time `json:"paymentVerifiedAt,omitempty"`

	UserProfile      *UserProfile      `gorm:"foreignKey:AccountID" json:"userProfile,omitempty"`
	RecruiterProfile *RecruiterProfile `gorm:"foreignKey:AccountID" json:"recruiterProfile,omitempty"`
	AdminProfile     *AdminProfile     `gorm:"foreignKey:AccountID" json:"adminProfile,omitempty"`
	Resumes          []Resume          `gorm:"foreignKey:AccountID" json:"resumes,omitempty"`
}

// BeforeSave нормализует email
func (a *Account) BeforeSave(tx *gorm.DB) error {
	a.Email = NormalizeEmail(a.Email)
	return nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *Account) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// Profile - ролевые данные аккаунта.
// Реализуют *UserProfile, *RecruiterProfile и *AdminProfile.
type Profile interface {
	ProfileRole() Role
}

// Profile возвращает вариант, соответствующий роли.
// Отсутствующий или несоответствующий вариант - ошибка данных.
func (a *Account) Profile() (Profile, error) {
	var p Profile
	switch a.Role {
	case RoleUser:
		if a.UserProfile != nil {
			p = a.UserProfile
		}
	case RoleRecruiter:
		if a.RecruiterProfile != nil {
			p = a.RecruiterProfile
		}
	case RoleAdmin:
		if a.AdminProfile != nil {
			p = a.AdminProfile
		}
	default:
		return nil, fmt.Errorf("account %s: unknown role %q", a.ID, a.Role)
	}
	if p == nil {
		return nil, fmt.Errorf("account %s: missing %s profile", a.ID, a.Role)
	}
	return p, nil
}

// SocialLinks соискателя
type SocialLinks struct {
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Youtube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
}

// CompanySocialLinks - у компании без twitter
type CompanySocialLinks struct {
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Youtube   string `json:"youtube,omitempty"`
}

type UserProfile struct {
	BaseModel
	AccountID     string                          `gorm:"type:varchar(36);uniqueIndex;not null" json:"accountId"`
	Gender        Gender                          `gorm:"size:10" json:"gender,omitempty"`
	Dob           *time.Time                      `json:"dob,omitempty"`
	Education     string                          `json:"education"`
	Profession    string                          `json:"profession"`
	Qualification string                          `json:"qualification"`
	Experience    string                          `json:"experience"`
	Skills        datatypes.JSONSlice[string]     `json:"skills"`
	Headline      string                          `json:"headline"`
	Website       string                          `json:"website"`
	Bio           string                          `gorm:"type:text" json:"bio"`
	SocialLinks   datatypes.JSONType[SocialLinks] `json:"socialLinks"`
}

func (*UserProfile) ProfileRole() Role { return RoleUser }

// Company встраивается в recruiter_profiles с префиксом company_
type Company struct {
	Name              string                                 `json:"name"`
	Logo              string                                 `json:"logo"`
	Banner            string                                 `json:"banner"`
	About             string                                 `gorm:"type:text" json:"about"`
	IndustryType      string                                 `json:"industryType"`
	OrganizationType  string                                 `json:"organizationType"`
	Employees         string                                 `json:"employees"`
	Website           string                                 `json:"website"`
	Vision            string                                 `gorm:"type:text" json:"vision"`
	SocialLinks       datatypes.JSONType[CompanySocialLinks] `json:"socialLinks"`
	Phone             string                                 `json:"phone"`
	NotificationEmail string                                 `json:"notificationEmail"`
	Industry          string                                 `json:"industry"`
	ContactPerson     string                                 `json:"contactPerson"`
	Country           string                                 `json:"country"`
	Address           string                                 `json:"address"`
	PaymentStatus     CompanyPaymentStatus                   `gorm:"size:10;default:pending" json:"paymentStatus"`
}

type RecruiterProfile struct {
	BaseModel
	AccountID string  `gorm:"type:varchar(36);uniqueIndex;not null" json:"accountId"`
	Position  string  `json:"position"`
	Company   Company `gorm:"embedded;embeddedPrefix:company_" json:"company"`
}

func (*RecruiterProfile) ProfileRole() Role { return RoleRecruiter }

type AdminProfile struct {
	BaseModel
	AccountID string `gorm:"type:varchar(36);uniqueIndex;not null" json:"accountId"`
	Title     string `json:"title"`
}

func (*AdminProfile) ProfileRole() Role { return RoleAdmin }

// Resume - загруженное резюме соискателя. PublicID - ключ в объектном хранилище.
type Resume struct {
	BaseModel
	AccountID string `gorm:"type:varchar(36);index;not null" json:"-"`
	Name      string `json:"name"`
	Size      int64  `json:"size"`
	URL       string `json:"url"`
	PublicID  string `json:"public_id"`
}

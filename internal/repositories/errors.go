package repositories

import "errors"

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrEmailTaken          = errors.New("email already taken")
	ErrResumeNotFound      = errors.New("resume not found")
	ErrJobNotFound         = errors.New("job not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrAlreadyApplied      = errors.New("application already exists")
	ErrFavoriteNotFound    = errors.New("favorite not found")
	ErrAlertNotFound       = errors.New("alert not found")
)

// Page - окно выборки для списков
type Page struct {
	Offset int
	Limit  int
}

func NewPage(page, pageSize int) Page {
	if page < 1 {
		page = 1
	}
	return Page{Offset: (page - 1) * pageSize, Limit: pageSize}
}

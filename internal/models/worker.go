package models

import "time"

// Worker is a manpower record listed on the public site.
type Worker struct {
	ID          string `json:"id"`
	NameEng     string `json:"name_eng"`
	NameArabic  string `json:"name_arabic"`
	Profession  string `json:"profession"`
	Nationality string `json:"nationality"`
	Gender      string `json:"gender"`
	Age         int    `json:"age,omitempty"`

	ExperienceYears int      `json:"experience_years,omitempty"`
	Languages       []string `json:"languages,omitempty"`
	MonthlySalary   float64  `json:"monthly_salary,omitempty"`

	PhotoURL  string `json:"photo_url,omitempty"`
	ResumeURL string `json:"resume_url,omitempty"`

	Available bool `json:"available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WorkerFilter drives the public manpower listing query.
// Zero values mean "no constraint".
type WorkerFilter struct {
	Profession  string `json:"profession,omitempty"`
	Nationality string `json:"nationality,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Available   *bool  `json:"available,omitempty"`

	// Case-insensitive substring match on either display name.
	Search string `json:"search,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

const (
	DefaultWorkerPageSize = 12
	MaxWorkerPageSize     = 100
)

// Normalize clamps pagination to sane bounds.
func (f *WorkerFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = DefaultWorkerPageSize
	}
	if f.Limit > MaxWorkerPageSize {
		f.Limit = MaxWorkerPageSize
	}
}

// Offset returns the row offset for the current page.
func (f WorkerFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

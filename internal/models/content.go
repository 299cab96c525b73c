package models

import "time"

// ===========================================
// SITE CONTENT (admin-managed)
// ===========================================

// GalleryItem is a photo shown on the public gallery page.
type GalleryItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title,omitempty"`
	ImageURL  string    `json:"image_url"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClientLogo is a client company logo shown on the public site.
type ClientLogo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	LogoURL   string    `json:"logo_url"`
	Website   string    `json:"website,omitempty"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Testimonial is a client quote; only approved ones are served publicly.
type Testimonial struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Company   string    `json:"company,omitempty"`
	Quote     string    `json:"quote"`
	Rating    int       `json:"rating,omitempty"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TeamMember is an agency staff profile for the about page.
type TeamMember struct {
	ID         string    `json:"id"`
	NameEng    string    `json:"name_eng"`
	NameArabic string    `json:"name_arabic,omitempty"`
	Role       string    `json:"role"`
	PhotoURL   string    `json:"photo_url,omitempty"`
	SortOrder  int       `json:"sort_order"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

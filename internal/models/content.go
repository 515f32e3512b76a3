package models

import "time"

// Project is a portfolio case study
type Project struct {
	ID           string    `db:"id" json:"id"`
	Title        string    `db:"title" json:"title"`
	Slug         string    `db:"slug" json:"slug"`
	Description  string    `db:"description" json:"description"`
	Problem      string    `db:"problem" json:"problem"`
	Solution     string    `db:"solution" json:"solution"`
	Impact       string    `db:"impact" json:"impact"`
	Technologies []string  `db:"technologies" json:"technologies"`
	ImageURL     *string   `db:"image_url" json:"image_url,omitempty"`
	ImageFileID  *string   `db:"image_file_id" json:"image_file_id,omitempty"`
	ProjectURL   *string   `db:"project_url" json:"project_url,omitempty"`
	GithubURL    *string   `db:"github_url" json:"github_url,omitempty"`
	Featured     bool      `db:"featured" json:"featured"`
	OrderIndex   int       `db:"order_index" json:"order_index"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Experience is a work history entry
type Experience struct {
	ID          string     `db:"id" json:"id"`
	Company     string     `db:"company" json:"company"`
	Position    string     `db:"position" json:"position"`
	Description string     `db:"description" json:"description"`
	StartDate   time.Time  `db:"start_date" json:"start_date"`
	EndDate     *time.Time `db:"end_date" json:"end_date,omitempty"`
	IsCurrent   bool       `db:"is_current" json:"is_current"`
	OrderIndex  int        `db:"order_index" json:"order_index"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// Skill categories shown on the public site
const (
	SkillCategoryFrontend = "frontend"
	SkillCategoryBackend  = "backend"
	SkillCategoryTools    = "tools"
	SkillCategoryOthers   = "others"
)

// Skill is a single technology entry, grouped by category
type Skill struct {
	ID         string    `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Category   string    `db:"category" json:"category"`
	Icon       *string   `db:"icon" json:"icon,omitempty"`
	IconSVG    *string   `db:"icon_svg" json:"icon_svg,omitempty"`
	OrderIndex int       `db:"order_index" json:"order_index"`
	IsVisible  bool      `db:"is_visible" json:"is_visible"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// Certificate is a certification or course completion entry
type Certificate struct {
	ID            string     `db:"id" json:"id"`
	Title         string     `db:"title" json:"title"`
	Provider      string     `db:"provider" json:"provider"`
	IssueDate     *time.Time `db:"issue_date" json:"issue_date,omitempty"`
	CredentialID  *string    `db:"credential_id" json:"credential_id,omitempty"`
	CredentialURL *string    `db:"credential_url" json:"credential_url,omitempty"`
	ImageURL      *string    `db:"image_url" json:"image_url,omitempty"`
	Description   *string    `db:"description" json:"description,omitempty"`
	OrderIndex    int        `db:"order_index" json:"order_index"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// ContactMessage is a visitor submission from the public contact form.
// Messages are forwarded by email and never persisted.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// internal/domain/models/content.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Content page slugs. Each slug identifies the single document for that
// page domain in the content collection.
const (
	ContentSlugAbout      = "about"
	ContentSlugActivities = "activities"
	ContentSlugAcademics  = "academics"
	ContentSlugAdmission  = "admission"
	ContentSlugFacilities = "facilities"
)

// AllContentSlugs returns all valid content page slugs.
func AllContentSlugs() []string {
	return []string{
		ContentSlugAbout,
		ContentSlugActivities,
		ContentSlugAcademics,
		ContentSlugAdmission,
		ContentSlugFacilities,
	}
}

// IsValidContentSlug checks if a slug identifies a content page.
func IsValidContentSlug(slug string) bool {
	for _, s := range AllContentSlugs() {
		if s == slug {
			return true
		}
	}
	return false
}

// Hero is the banner section shared by every content page.
type Hero struct {
	Title           string `bson:"title" json:"title"`
	Subtitle        string `bson:"subtitle,omitempty" json:"subtitle,omitempty"`
	CTAText         string `bson:"cta_text,omitempty" json:"cta_text,omitempty"`
	BackgroundImage string `bson:"background_image,omitempty" json:"background_image,omitempty"`
}

// ContentItem is a generic titled list entry used by several page sections
// (mission points, pillars, clubs, steps, documents, facilities...).
// Items carry no identity of their own; they are addressed by position
// within their owning section and rewritten wholesale on save.
type ContentItem struct {
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	Icon        string `bson:"icon,omitempty" json:"icon,omitempty"`
	Color       string `bson:"color,omitempty" json:"color,omitempty"`
	Image       string `bson:"image,omitempty" json:"image,omitempty"`
	Value       string `bson:"value,omitempty" json:"value,omitempty"`
}

/* ---------------------------------- About --------------------------------- */

// AboutHistory is the school history section with headline stats.
type AboutHistory struct {
	Image       string   `bson:"image,omitempty" json:"image,omitempty"`
	Description []string `bson:"description" json:"description"`
	Stats       struct {
		Years    string `bson:"years,omitempty" json:"years,omitempty"`
		Students string `bson:"students,omitempty" json:"students,omitempty"`
	} `bson:"stats" json:"stats"`
}

// AboutPrincipal is the principal's-desk section.
type AboutPrincipal struct {
	Name        string   `bson:"name,omitempty" json:"name,omitempty"`
	Designation string   `bson:"designation,omitempty" json:"designation,omitempty"`
	Photo       string   `bson:"photo,omitempty" json:"photo,omitempty"`
	Message     []string `bson:"message" json:"message"`
}

// Vision is the vision statement section.
type Vision struct {
	Text string `bson:"text,omitempty" json:"text,omitempty"`
}

// AboutPage is the about page document.
type AboutPage struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Slug       string             `bson:"slug" json:"slug"`
	Hero       Hero               `bson:"hero" json:"hero"`
	History    AboutHistory       `bson:"history" json:"history"`
	Vision     Vision             `bson:"vision" json:"vision"`
	Mission    []ContentItem      `bson:"mission" json:"mission"`
	Principal  AboutPrincipal     `bson:"principal" json:"principal"`
	CoreValues []ContentItem      `bson:"core_values" json:"core_values"`
	UpdatedAt  *time.Time         `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// Normalize fills nil slices so templates and editors never see a missing
// nested field. The backend may hold partial documents (sections are saved
// independently); every read path must pass through here.
func (p *AboutPage) Normalize() {
	p.Slug = ContentSlugAbout
	if p.History.Description == nil {
		p.History.Description = []string{}
	}
	if p.Mission == nil {
		p.Mission = []ContentItem{}
	}
	if p.Principal.Message == nil {
		p.Principal.Message = []string{}
	}
	if p.CoreValues == nil {
		p.CoreValues = []ContentItem{}
	}
}

// SectionKeys lists the independently savable sections of the about page.
func (p *AboutPage) SectionKeys() []string {
	return []string{"hero", "history", "vision", "mission", "principal", "core_values"}
}

/* -------------------------------- Activities ------------------------------ */

// FieldTrip is the closing call-to-action block on the activities page.
type FieldTrip struct {
	Title       string `bson:"title,omitempty" json:"title,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	ButtonText  string `bson:"button_text,omitempty" json:"button_text,omitempty"`
}

// ActivitiesPage is the activities page document.
type ActivitiesPage struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Slug          string             `bson:"slug" json:"slug"`
	Hero          Hero               `bson:"hero" json:"hero"`
	CoCurriculars []ContentItem      `bson:"co_curriculars" json:"co_curriculars"`
	Clubs         []ContentItem      `bson:"clubs" json:"clubs"`
	Events        []ContentItem      `bson:"events" json:"events"`
	FieldTrip     FieldTrip          `bson:"field_trip" json:"field_trip"`
	UpdatedAt     *time.Time         `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

func (p *ActivitiesPage) Normalize() {
	p.Slug = ContentSlugActivities
	if p.CoCurriculars == nil {
		p.CoCurriculars = []ContentItem{}
	}
	if p.Clubs == nil {
		p.Clubs = []ContentItem{}
	}
	if p.Events == nil {
		p.Events = []ContentItem{}
	}
}

func (p *ActivitiesPage) SectionKeys() []string {
	return []string{"hero", "co_curriculars", "clubs", "events", "field_trip"}
}

/* -------------------------------- Academics ------------------------------- */

// AcademicLevels groups the class lists per academic stage.
type AcademicLevels struct {
	PrePrimary []string `bson:"pre_primary" json:"pre_primary"`
	Primary    []string `bson:"primary" json:"primary"`
	Middle     []string `bson:"middle" json:"middle"`
	Secondary  []string `bson:"secondary" json:"secondary"`
}

// AcademicsPage is the academics page document.
type AcademicsPage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Slug      string             `bson:"slug" json:"slug"`
	Hero      Hero               `bson:"hero" json:"hero"`
	Pillars   []ContentItem      `bson:"pillars" json:"pillars"`
	Levels    AcademicLevels     `bson:"levels" json:"levels"`
	Methods   []ContentItem      `bson:"methods" json:"methods"`
	UpdatedAt *time.Time         `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

func (p *AcademicsPage) Normalize() {
	p.Slug = ContentSlugAcademics
	if p.Pillars == nil {
		p.Pillars = []ContentItem{}
	}
	if p.Methods == nil {
		p.Methods = []ContentItem{}
	}
	if p.Levels.PrePrimary == nil {
		p.Levels.PrePrimary = []string{}
	}
	if p.Levels.Primary == nil {
		p.Levels.Primary = []string{}
	}
	if p.Levels.Middle == nil {
		p.Levels.Middle = []string{}
	}
	if p.Levels.Secondary == nil {
		p.Levels.Secondary = []string{}
	}
}

func (p *AcademicsPage) SectionKeys() []string {
	return []string{"hero", "pillars", "levels", "methods"}
}

/* -------------------------------- Admission ------------------------------- */

// AdmissionPage is the admission page document.
type AdmissionPage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Slug      string             `bson:"slug" json:"slug"`
	Hero      Hero               `bson:"hero" json:"hero"`
	Steps     []ContentItem      `bson:"steps" json:"steps"`
	Documents []ContentItem      `bson:"documents" json:"documents"`
	Features  []ContentItem      `bson:"features" json:"features"`
	Stats     []ContentItem      `bson:"stats" json:"stats"`
	UpdatedAt *time.Time         `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

func (p *AdmissionPage) Normalize() {
	p.Slug = ContentSlugAdmission
	if p.Steps == nil {
		p.Steps = []ContentItem{}
	}
	if p.Documents == nil {
		p.Documents = []ContentItem{}
	}
	if p.Features == nil {
		p.Features = []ContentItem{}
	}
	if p.Stats == nil {
		p.Stats = []ContentItem{}
	}
}

func (p *AdmissionPage) SectionKeys() []string {
	return []string{"hero", "steps", "documents", "features", "stats"}
}

/* ------------------------------- Facilities ------------------------------- */

// ScienceSports is the combined labs-and-sports feature section.
type ScienceSports struct {
	ScienceTitle string `bson:"science_title,omitempty" json:"science_title,omitempty"`
	ScienceDesc  string `bson:"science_desc,omitempty" json:"science_desc,omitempty"`
	SportsTitle  string `bson:"sports_title,omitempty" json:"sports_title,omitempty"`
	SportsDesc   string `bson:"sports_desc,omitempty" json:"sports_desc,omitempty"`
	Image        string `bson:"image,omitempty" json:"image,omitempty"`
}

// FacilitiesPage is the facilities page document.
type FacilitiesPage struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Slug               string             `bson:"slug" json:"slug"`
	Hero               Hero               `bson:"hero" json:"hero"`
	AcademicFacilities []ContentItem      `bson:"academic_facilities" json:"academic_facilities"`
	ScienceSports      ScienceSports      `bson:"science_sports" json:"science_sports"`
	Logistics          []ContentItem      `bson:"logistics" json:"logistics"`
	UpdatedAt          *time.Time         `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

func (p *FacilitiesPage) Normalize() {
	p.Slug = ContentSlugFacilities
	if p.AcademicFacilities == nil {
		p.AcademicFacilities = []ContentItem{}
	}
	if p.Logistics == nil {
		p.Logistics = []ContentItem{}
	}
}

func (p *FacilitiesPage) SectionKeys() []string {
	return []string{"hero", "academic_facilities", "science_sports", "logistics"}
}

// Package types provides type definitions for structured data used throughout the resume-ats system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// ResumeData is the structured résumé produced by the generation pipeline.
// Empty strings mean "absent"; nil slices are treated as empty lists.
type ResumeData struct {
	PersonalInfo   PersonalInfo    `json:"personalInfo"`
	Experience     []Experience    `json:"experience"`
	Education      []Education     `json:"education"`
	Skills         []string        `json:"skills"`
	Languages      []Language      `json:"languages"`
	Certifications []Certification `json:"certifications"`
	Projects       []Project       `json:"projects"`
}

// PersonalInfo holds the contact block and the professional summary
type PersonalInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	Summary  string `json:"summary,omitempty"`
}

// Experience is a single work history entry. Entries are expected in
// reverse-chronological order, which is not enforced.
type Experience struct {
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	StartDate    string   `json:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty"`
	Description  string   `json:"description,omitempty"`
	Achievements []string `json:"achievements"`
}

// Education is a single education entry
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
}

// Language is a spoken language with an optional proficiency level
type Language struct {
	Language    string `json:"language"`
	Proficiency string `json:"proficiency,omitempty"`
}

// Certification is a professional certification
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
}

// Project is a side or portfolio project
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

// Text returns the description and achievements of an entry joined by spaces.
func (e Experience) Text() string {
	if len(e.Achievements) == 0 {
		return e.Description
	}
	return e.Description + " " + strings.Join(e.Achievements, " ")
}

// Label returns the company name, falling back to the position when the company is empty.
func (e Experience) Label() string {
	if strings.TrimSpace(e.Company) != "" {
		return e.Company
	}
	return e.Position
}

// OrEmpty returns r, or an empty résumé when r is nil.
func (r *ResumeData) OrEmpty() *ResumeData {
	if r == nil {
		return &ResumeData{}
	}
	return r
}

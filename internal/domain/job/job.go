package job

import (
	"time"

	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/common"
)

type Type string

const (
	TypeFullTime   Type = "Full-time"
	TypePartTime   Type = "Part-time"
	TypeInternship Type = "Internship"
	TypeRemote     Type = "Remote"
	TypeContract   Type = "Contract"
)

func ValidType(t Type) bool {
	switch t {
	case TypeFullTime, TypePartTime, TypeInternship, TypeRemote, TypeContract:
		return true
	default:
		return false
	}
}

const (
	MinSkills     = 1
	MaxSkills     = 50
	MinSkillLen   = 2
	MaxSkillLen   = 100
	MaxExperience = 50
)

type Job struct {
	ID              common.UUID `json:"id"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	Skills          []string    `json:"skills"`
	Salary          float64     `json:"salary"`
	ExperienceYears int         `json:"experience_years"`
	Location        string      `json:"location"`
	Type            Type        `json:"job_type"`
	Positions       int         `json:"positions"`
	CompanyID       common.UUID `json:"company_id"`
	CreatedBy       common.UUID `json:"created_by"`
	IsClosed        bool        `json:"is_closed"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

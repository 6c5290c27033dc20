package user

import (
	"time"

	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/blob"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/common"
)

type Role string

const (
	RoleCandidate Role = "candidate"
	RoleRecruiter Role = "recruiter"
)

func ValidRole(role Role) bool {
	return role == RoleCandidate || role == RoleRecruiter
}

type Profile struct {
	Phone    string       `json:"phone,omitempty"`
	Bio      string       `json:"bio,omitempty"`
	Skills   []string     `json:"skills,omitempty"`
	Resume   *blob.Object `json:"resume,omitempty"`
	PhotoURL string       `json:"photo_url,omitempty"`
}

type User struct {
	ID           common.UUID  `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Role         Role         `json:"role"`
	CompanyID    *common.UUID `json:"company_id,omitempty"`
	Profile      Profile      `json:"profile"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Public is the view of a user exposed to other users, e.g. an applicant as
// seen by a recruiter.
type Public struct {
	ID      common.UUID `json:"id"`
	Name    string      `json:"name"`
	Email   string      `json:"email"`
	Role    Role        `json:"role"`
	Profile Profile     `json:"profile"`
}

func (u User) Public() Public {
	return Public{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Profile: u.Profile}
}

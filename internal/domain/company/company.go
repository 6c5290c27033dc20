package company

import (
	"time"

	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/common"
)

type Company struct {
	ID          common.UUID `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Website     string      `json:"website,omitempty"`
	Location    string      `json:"location,omitempty"`
	LogoURL     string      `json:"logo_url,omitempty"`
	LogoKey     string      `json:"-"`
	OwnerID     common.UUID `json:"owner_id"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

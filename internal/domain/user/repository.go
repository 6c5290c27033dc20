package user

import (
	"context"

	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/common"
)

type Repository interface {
	Create(ctx context.Context, account User) (*User, error)
	GetByID(ctx context.Context, id common.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateProfile(ctx context.Context, id common.UUID, name string, profile Profile) (*User, error)
	SetCompany(ctx context.Context, id common.UUID, companyID common.UUID) error
}

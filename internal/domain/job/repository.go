package job

import (
	"context"

	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/common"
)

type Filter struct {
	Keyword string
	Limit   int
	Offset  int
}

type Repository interface {
	Create(ctx context.Context, j Job) (*Job, error)
	Update(ctx context.Context, j Job) (*Job, error)
	GetByID(ctx context.Context, id common.UUID) (*Job, error)
	List(ctx context.Context, filter Filter) ([]Job, error)
	Count(ctx context.Context, filter Filter) (int, error)
	ListByRecruiter(ctx context.Context, recruiterID common.UUID) ([]Job, error)
}

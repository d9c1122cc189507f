package ports

import (
	"context"

	"github.com/deepceutix/datagen/internal/domain"
)

type RunRepository interface {
	Create(ctx context.Context, run *domain.Run) error
	Update(ctx context.Context, run *domain.Run) error
	GetByID(ctx context.Context, id string) (*domain.Run, error)
	List(ctx context.Context, opts ListRunsOptions) ([]*domain.Run, error)
}

type ListRunsOptions struct {
	Limit  int
	Kind   *domain.RunKind
	Target *string
}

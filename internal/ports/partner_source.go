package ports

import (
	"context"

	"github.com/foodrescue/rescue-cli/internal/domain"
)

type PartnerSource interface {
	Partners(ctx context.Context) ([]domain.Partner, error)
}

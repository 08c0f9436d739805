package admin

import (
	"context"

	recordsRepo "github.com/strumhouse/strumhouse-main-sub001/database/repository/records"
	"github.com/strumhouse/strumhouse-main-sub001/models"
)

// AdminService serves read-only rollups for the staff dashboard.
type AdminService interface {
	Summary(ctx context.Context) (*models.AdminSummary, error)
}

type DefaultAdminService struct {
	Records recordsRepo.SummaryRepository
}

func (s *DefaultAdminService) Summary(ctx context.Context) (*models.AdminSummary, error) {
	summary, err := s.Records.Collect(ctx)
	if err != nil {
		return nil, &models.StoreError{Op: "collect summary", Err: err}
	}
	return summary, nil
}

package services

import (
	"context"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/etimsclient/internal/client/api"
	"github.com/dmitrijs2005/etimsclient/internal/client/models"
)

// AdminService groups the staff-only and monitoring endpoints.
type AdminService interface {
	Health(ctx context.Context) (models.HealthStatus, error)
	Logs(ctx context.Context, level string, limit int) ([]models.LogEntry, error)
	RetryQueue(ctx context.Context) (models.RetryQueueStatus, error)
	ProcessRetryQueue(ctx context.Context) (string, error)
	EnvironmentStatus(ctx context.Context) (models.EnvironmentStatus, error)
	SwitchEnvironment(ctx context.Context, env string) (models.EnvironmentStatus, error)
	DashboardStats(ctx context.Context) (models.DashboardStats, error)
	VSCUStatus(ctx context.Context) (models.VSCUStatus, error)
	Companies(ctx context.Context) ([]models.Company, error)
	SetCompanyStatus(ctx context.Context, id string, status models.CompanyStatus) error
}

type adminService struct {
	client *api.Client
}

func NewAdminService(client *api.Client) AdminService {
	return &adminService{client: client}
}

func (s *adminService) Health(ctx context.Context) (models.HealthStatus, error) {
	return api.Decode[models.HealthStatus](s.client.Health(ctx))
}

func (s *adminService) Logs(ctx context.Context, level string, limit int) ([]models.LogEntry, error) {
	q := url.Values{}
	if level != "" {
		q.Set("level", level)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return decodeList[models.LogEntry](s.client.Logs(ctx, q))
}

func (s *adminService) RetryQueue(ctx context.Context) (models.RetryQueueStatus, error) {
	return api.Decode[models.RetryQueueStatus](s.client.RetryQueue(ctx))
}

func (s *adminService) ProcessRetryQueue(ctx context.Context) (string, error) {
	return messageOf(s.client.ProcessRetryQueue(ctx))
}

func (s *adminService) EnvironmentStatus(ctx context.Context) (models.EnvironmentStatus, error) {
	return api.Decode[models.EnvironmentStatus](s.client.EnvironmentStatus(ctx))
}

func (s *adminService) SwitchEnvironment(ctx context.Context, env string) (models.EnvironmentStatus, error) {
	res := s.client.SwitchEnvironment(ctx, models.EnvironmentSwitch{Environment: env})
	if err := res.Err(); err != nil {
		return models.EnvironmentStatus{}, err
	}
	if len(res.Data) == 0 {
		return models.EnvironmentStatus{Environment: env}, nil
	}
	return api.Decode[models.EnvironmentStatus](res)
}

func (s *adminService) DashboardStats(ctx context.Context) (models.DashboardStats, error) {
	return api.Decode[models.DashboardStats](s.client.DashboardStats(ctx))
}

func (s *adminService) VSCUStatus(ctx context.Context) (models.VSCUStatus, error) {
	return api.Decode[models.VSCUStatus](s.client.VSCUStatus(ctx))
}

func (s *adminService) Companies(ctx context.Context) ([]models.Company, error) {
	return decodeList[models.Company](s.client.Companies(ctx))
}

func (s *adminService) SetCompanyStatus(ctx context.Context, id string, status models.CompanyStatus) error {
	return s.client.UpdateCompanyStatus(ctx, id, status).Err()
}

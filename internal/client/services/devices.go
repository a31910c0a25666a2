package services

import (
	"context"

	"github.com/dmitrijs2005/etimsclient/internal/client/api"
	"github.com/dmitrijs2005/etimsclient/internal/client/models"
)

type DeviceService interface {
	List(ctx context.Context) ([]models.Device, error)
	Sync(ctx context.Context, id string) (models.SyncResult, error)
	Initialize(ctx context.Context, init models.DeviceInit) (models.Device, error)
	Certify(ctx context.Context, id string) (models.Certification, error)
	Certification(ctx context.Context, id string) (models.Certification, error)
	RegenerateKeys(ctx context.Context, id string) (string, error)
}

type deviceService struct {
	client *api.Client
}

func NewDeviceService(client *api.Client) DeviceService {
	return &deviceService{client: client}
}

func (s *deviceService) List(ctx context.Context) ([]models.Device, error) {
	return decodeList[models.Device](s.client.Devices(ctx))
}

func (s *deviceService) Sync(ctx context.Context, id string) (models.SyncResult, error) {
	return syncResult(s.client.SyncDevice(ctx, id))
}

func (s *deviceService) Initialize(ctx context.Context, init models.DeviceInit) (models.Device, error) {
	return api.Decode[models.Device](s.client.InitializeDevice(ctx, init))
}

func (s *deviceService) Certify(ctx context.Context, id string) (models.Certification, error) {
	return api.Decode[models.Certification](s.client.CertifyDevice(ctx, id, nil))
}

func (s *deviceService) Certification(ctx context.Context, id string) (models.Certification, error) {
	return api.Decode[models.Certification](s.client.DeviceCertification(ctx, id))
}

func (s *deviceService) RegenerateKeys(ctx context.Context, id string) (string, error) {
	return messageOf(s.client.RegenerateDeviceKeys(ctx, id))
}

// syncResult tolerates an empty success body.
func syncResult(env api.Envelope) (models.SyncResult, error) {
	if err := env.Err(); err != nil {
		return models.SyncResult{}, err
	}
	if len(env.Data) == 0 {
		return models.SyncResult{}, nil
	}
	return api.Decode[models.SyncResult](env)
}

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/etimsclient/internal/client/api"
	"github.com/dmitrijs2005/etimsclient/internal/client/models"
	"github.com/dmitrijs2005/etimsclient/internal/client/storage"
	"github.com/dmitrijs2005/etimsclient/internal/logging"
)

// SyncService runs a full synchronisation with the backend and keeps the
// local sync preferences and the time of the last successful run.
type SyncService interface {
	Settings(ctx context.Context) (models.SyncSettings, error)
	SaveSettings(ctx context.Context, s models.SyncSettings) error
	LastSync(ctx context.Context) (time.Time, bool, error)
	Run(ctx context.Context) (SyncReport, error)
}

// SyncReport is the outcome of one Run.
type SyncReport struct {
	VSCU    models.SyncResult
	Devices []DeviceSync
	At      time.Time
}

type DeviceSync struct {
	DeviceID string
	Result   models.SyncResult
	Err      error
}

// Failed counts the devices whose sync call failed.
func (r SyncReport) Failed() int {
	n := 0
	for _, d := range r.Devices {
		if d.Err != nil {
			n++
		}
	}
	return n
}

type syncService struct {
	client *api.Client
	store  storage.Store
	logger logging.Logger
	now    func() time.Time
}

func NewSyncService(client *api.Client, store storage.Store, logger logging.Logger) SyncService {
	return &syncService{client: client, store: store, logger: logger, now: time.Now}
}

func (s *syncService) Settings(ctx context.Context) (models.SyncSettings, error) {
	settings := models.DefaultSyncSettings()
	if _, err := storage.GetJSON(ctx, s.store, storage.KeySyncSettings, &settings); err != nil {
		return models.DefaultSyncSettings(), err
	}
	return settings, nil
}

func (s *syncService) SaveSettings(ctx context.Context, settings models.SyncSettings) error {
	if settings.IntervalMinutes <= 0 {
		return fmt.Errorf("sync interval must be positive, got %d", settings.IntervalMinutes)
	}
	return storage.SetJSON(ctx, s.store, storage.KeySyncSettings, settings)
}

func (s *syncService) LastSync(ctx context.Context) (time.Time, bool, error) {
	var at time.Time
	found, err := storage.GetJSON(ctx, s.store, storage.KeyLastSyncTime, &at)
	return at, found, err
}

// Run triggers the VSCU sync and, when enabled in the settings, a sync of
// every device. Device failures are collected in the report; a failed VSCU
// sync aborts the run. The last sync time is recorded on success.
func (s *syncService) Run(ctx context.Context) (SyncReport, error) {
	settings, err := s.Settings(ctx)
	if err != nil {
		s.logger.Warn(ctx, "failed to read sync settings, using defaults", "error", err)
	}

	report := SyncReport{}
	report.VSCU, err = syncResult(s.client.VSCUSync(ctx))
	if err != nil {
		return report, fmt.Errorf("vscu sync: %w", err)
	}

	if settings.SyncDevices {
		devices, err := decodeList[models.Device](s.client.Devices(ctx))
		if err != nil {
			return report, fmt.Errorf("list devices: %w", err)
		}
		for _, d := range devices {
			res, err := syncResult(s.client.SyncDevice(ctx, d.ID.String()))
			if err != nil {
				s.logger.Warn(ctx, "device sync failed", "device", d.ID, "error", err)
			}
			report.Devices = append(report.Devices, DeviceSync{DeviceID: d.ID.String(), Result: res, Err: err})
		}
	}

	report.At = s.now().UTC()
	if err := storage.SetJSON(ctx, s.store, storage.KeyLastSyncTime, report.At); err != nil {
		return report, fmt.Errorf("record last sync time: %w", err)
	}
	return report, nil
}

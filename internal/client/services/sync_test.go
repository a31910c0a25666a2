package services

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/etimsclient/internal/client/api"
	"github.com/dmitrijs2005/etimsclient/internal/client/models"
	"github.com/dmitrijs2005/etimsclient/internal/client/storage"
	"github.com/dmitrijs2005/etimsclient/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSyncService(b *backend, now time.Time) *syncService {
	s := NewSyncService(b.client, b.store, logging.Discard()).(*syncService)
	s.now = func() time.Time { return now }
	return s
}

func TestSyncService_Settings(t *testing.T) {
	b := newBackend(t)
	svc := newSyncService(b, time.Now())
	ctx := context.Background()

	got, err := svc.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSyncSettings(), got)

	want := models.SyncSettings{AutoSync: false, IntervalMinutes: 30, WifiOnly: true}
	require.NoError(t, svc.SaveSettings(ctx, want))

	got, err = svc.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	assert.Error(t, svc.SaveSettings(ctx, models.SyncSettings{IntervalMinutes: 0}))
}

func TestSyncService_SettingsCorrupt(t *testing.T) {
	b := newBackend(t)
	svc := newSyncService(b, time.Now())
	ctx := context.Background()
	require.NoError(t, b.store.Set(ctx, storage.KeySyncSettings, []byte("{")))

	got, err := svc.Settings(ctx)
	assert.Error(t, err)
	assert.Equal(t, models.DefaultSyncSettings(), got)
}

func TestSyncService_Run(t *testing.T) {
	b := newBackend(t)
	b.json("POST /vscu/sync/", 200, `{"synced":5,"failed":1}`)
	b.json("GET /devices/", 200, `[{"id":1},{"id":2}]`)
	b.json("POST /devices/1/sync/", 200, `{"synced":2}`)
	b.json("POST /devices/2/sync/", 500, `{"message":"device offline"}`)

	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	svc := newSyncService(b, now)
	ctx := context.Background()

	report, err := svc.Run(ctx)

	require.NoError(t, err)
	assert.Equal(t, 5, report.VSCU.Synced)
	require.Len(t, report.Devices, 2)
	assert.Equal(t, 2, report.Devices[0].Result.Synced)
	assert.EqualError(t, report.Devices[1].Err, "device offline")
	assert.Equal(t, 1, report.Failed())

	at, found, err := svc.LastSync(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, at.Equal(now))
}

func TestSyncService_RunWithoutDevices(t *testing.T) {
	b := newBackend(t)
	b.json("POST /vscu/sync/", 204, ``)
	var deviceCalls atomic.Int32
	b.handle("GET /devices/", func(w http.ResponseWriter, r *http.Request) { deviceCalls.Add(1) })

	svc := newSyncService(b, time.Now())
	ctx := context.Background()
	require.NoError(t, svc.SaveSettings(ctx, models.SyncSettings{IntervalMinutes: 5, SyncDevices: false}))

	report, err := svc.Run(ctx)
	require.NoError(t, err)
	assert.Empty(t, report.Devices)
	assert.Zero(t, deviceCalls.Load())
}

func TestSyncService_RunVSCUFailure(t *testing.T) {
	b := newBackend(t)
	b.json("POST /vscu/sync/", 503, ``)

	svc := newSyncService(b, time.Now())
	ctx := context.Background()

	_, err := svc.Run(ctx)
	assert.ErrorIs(t, err, api.ErrUnavailable)

	_, found, err := svc.LastSync(ctx)
	require.NoError(t, err)
	assert.False(t, found)
}

package cli

import (
	"context"
	"io"
	"net/http"
	"sync"
	"testing"

	"github.com/dmitrijs2005/etimsclient/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncWriter serialises writes from the watcher goroutine.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func TestInvoicesCommands(t *testing.T) {
	ta := newTestApp(t, "")
	ta.loginAs(t)
	ta.mux.HandleFunc("GET /invoices/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		_, _ = w.Write([]byte(`{"count":30,"next":"http://x/?page=3","results":[{"id":7,"invoiceNumber":"INV-7","status":"failed","totalAmount":"116.00"}]}`))
	})
	ta.json("GET /invoices/7/", 200, `{"id":7,"invoice_number":"INV-7","status":"failed","last_error":"KRA timeout","retry_count":2,
		"items":[{"description":"Sugar 1kg","quantity":2,"unit_price":"50","tax_type":"B","total":"116"}]}`)
	ta.json("POST /invoices/7/resync/", 200, ``)
	ta.json("POST /invoices/retry-all/", 200, `{"queued":3}`)
	ctx := context.Background()

	require.NoError(t, ta.Invoices(ctx, []string{"2"}))
	out := ta.out.String()
	assert.Contains(t, out, "INV-7")
	assert.Contains(t, out, "116.00")
	assert.Contains(t, out, "1 of 30")
	assert.Contains(t, out, "More available")

	ta.out.Reset()
	require.NoError(t, ta.Invoice(ctx, []string{"7"}))
	out = ta.out.String()
	assert.Contains(t, out, "KRA timeout (retries: 2)")
	assert.Contains(t, out, "Sugar 1kg")

	ta.out.Reset()
	require.NoError(t, ta.Resync(ctx, []string{"7"}))
	assert.Contains(t, ta.out.String(), "Invoice queued for resync")

	ta.out.Reset()
	require.NoError(t, ta.RetryAll(ctx, nil))
	assert.Contains(t, ta.out.String(), "3 invoices queued")

	assert.ErrorIs(t, ta.Invoice(ctx, nil), errUsage)
	assert.ErrorIs(t, ta.Invoices(ctx, []string{"x"}), errUsage)
}

func TestDeviceCommands(t *testing.T) {
	ta := newTestApp(t, "")
	ta.loginAs(t)
	ta.json("GET /devices/", 200, `[{"id":1,"serial_number":"KRACU0100000001","status":"active","is_certified":true}]`)
	ta.json("POST /devices/1/sync/", 200, `{"synced":4,"failed":1}`)
	ta.json("POST /devices/1/certify/", 200, `{"status":"certified","certificate_id":"CERT-1"}`)
	ta.json("GET /vscu/status/", 200, `{"online":false,"status":"degraded","offline_hours":"25","offline_allowed":false,"pending_count":9}`)
	ctx := context.Background()

	require.NoError(t, ta.Devices(ctx, nil))
	assert.Contains(t, ta.out.String(), "KRACU0100000001")

	ta.out.Reset()
	require.NoError(t, ta.SyncDevice(ctx, []string{"1"}))
	assert.Contains(t, ta.out.String(), "Synced 4, failed 1")

	ta.out.Reset()
	require.NoError(t, ta.Certify(ctx, []string{"1"}))
	assert.Contains(t, ta.out.String(), "Certificate: CERT-1")

	ta.out.Reset()
	require.NoError(t, ta.VSCU(ctx, nil))
	assert.Contains(t, ta.out.String(), "offline for 25.00 h, offline limit exceeded")
	assert.Contains(t, ta.out.String(), "Pending: 9")
}

func TestSyncAndSettingsCommands(t *testing.T) {
	ta := newTestApp(t, "")
	ta.loginAs(t)
	ta.json("POST /vscu/sync/", 200, `{"synced":2}`)
	ta.json("GET /devices/", 200, `[{"id":1}]`)
	ta.json("POST /devices/1/sync/", 502, `{"message":"device unreachable"}`)
	ctx := context.Background()

	require.NoError(t, ta.Settings(ctx, []string{"interval=30", "wifi=on"}))
	assert.Contains(t, ta.out.String(), "auto=on interval=30 wifi=on devices=on")

	ta.out.Reset()
	require.NoError(t, ta.Sync(ctx, nil))
	out := ta.out.String()
	assert.Contains(t, out, "VSCU: synced 2")
	assert.Contains(t, out, "Device 1: Error: device unreachable")
	assert.Contains(t, out, "1 device(s) failed")

	last, found, err := ta.syncs.LastSync(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.False(t, last.IsZero())

	assert.ErrorIs(t, ta.Settings(ctx, []string{"interval=0"}), errUsage)
	assert.ErrorIs(t, ta.Settings(ctx, []string{"colour=on"}), errUsage)
	assert.ErrorIs(t, ta.Settings(ctx, []string{"wifi"}), errUsage)
}

func TestApplySetting(t *testing.T) {
	s := models.DefaultSyncSettings()
	require.NoError(t, applySetting(&s, "auto=off"))
	require.NoError(t, applySetting(&s, "devices=false"))
	require.NoError(t, applySetting(&s, "interval=5"))
	assert.Equal(t, models.SyncSettings{AutoSync: false, IntervalMinutes: 5, SyncDevices: false}, s)

	assert.Error(t, applySetting(&s, "wifi=maybe"))
}

func TestAdminCommands(t *testing.T) {
	ta := newTestApp(t, "")
	ta.loginAs(t)
	ta.json("GET /health/", 200, `{"status":"healthy","database":"ok","components":{"celery":"ok"}}`)
	ta.json("GET /system/retry-queue/", 200, `{"pending":1,"processing":0,"failed":2,"completed":10}`)
	ta.json("POST /retry-queue/process/", 200, `{"message":"processing 1 item"}`)
	ta.json("GET /environment/status/", 200, `{"environment":"sandbox"}`)
	ta.json("POST /environment/switch/", 200, `{"environment":"production"}`)
	ta.json("GET /logs/", 200, `[{"id":1,"level":"error","source":"kra","message":"timeout"}]`)
	ta.json("GET /companies/", 200, `{"results":[{"id":1,"name":"ACME","kra_pin":"P0001","device_count":2}]}`)
	ta.json("GET /dashboard/stats/", 200, `{"total_invoices":12,"total_revenue":"1000"}`)
	ctx := context.Background()

	steps := []struct {
		name string
		run  func() error
		want string
	}{
		{"health", func() error { return ta.Health(ctx, nil) }, "celery: ok\n  database: ok"},
		{"queue", func() error { return ta.Queue(ctx, nil) }, "Pending 1, processing 0, failed 2, completed 10"},
		{"processqueue", func() error { return ta.ProcessQueue(ctx, nil) }, "processing 1 item"},
		{"env", func() error { return ta.Env(ctx, nil) }, "Environment: sandbox"},
		{"env switch", func() error { return ta.Env(ctx, []string{"production"}) }, "Environment: production"},
		{"logs", func() error { return ta.Logs(ctx, []string{"error", "10"}) }, "timeout"},
		{"companies", func() error { return ta.Companies(ctx, nil) }, "P0001"},
		{"dashboard", func() error { return ta.Dashboard(ctx, nil) }, "1000.00"},
	}
	for _, s := range steps {
		t.Run(s.name, func(t *testing.T) {
			ta.out.Reset()
			require.NoError(t, s.run())
			assert.Contains(t, ta.out.String(), s.want)
		})
	}

	assert.ErrorIs(t, ta.Env(ctx, []string{"a", "b"}), errUsage)
}

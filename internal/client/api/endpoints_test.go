package api

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEndpoints_MethodsAndPaths(t *testing.T) {
	type call struct {
		method string
		uri    string
	}
	var got call
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		got = call{r.Method, r.RequestURI}
		w.WriteHeader(http.StatusOK)
	})
	c := env.client
	ctx := context.Background()

	tests := []struct {
		name string
		do   func() Envelope
		want call
	}{
		{"devices", func() Envelope { return c.Devices(ctx) }, call{"GET", "/devices/"}},
		{"update devices", func() Envelope { return c.UpdateDevices(ctx, map[string]any{}) }, call{"PUT", "/devices/"}},
		{"sync device", func() Envelope { return c.SyncDevice(ctx, "d1") }, call{"POST", "/devices/d1/sync/"}},
		{"sync device escaped", func() Envelope { return c.SyncDevice(ctx, "a/b c") }, call{"POST", "/devices/a%2Fb%20c/sync/"}},
		{"initialize device", func() Envelope { return c.InitializeDevice(ctx, map[string]any{}) }, call{"POST", "/devices/initialize/"}},
		{"certify device", func() Envelope { return c.CertifyDevice(ctx, "7", nil) }, call{"POST", "/devices/7/certify/"}},
		{"certification", func() Envelope { return c.DeviceCertification(ctx, "7") }, call{"GET", "/devices/7/certification/"}},
		{"regenerate keys", func() Envelope { return c.RegenerateDeviceKeys(ctx, "7") }, call{"POST", "/devices/7/regenerate-keys/"}},
		{"invoices", func() Envelope { return c.Invoices(ctx, 2, 20) }, call{"GET", "/invoices/?limit=20&page=2"}},
		{"invoices default", func() Envelope { return c.Invoices(ctx, 0, 0) }, call{"GET", "/invoices/"}},
		{"create invoice", func() Envelope { return c.CreateInvoice(ctx, map[string]any{}) }, call{"POST", "/invoices/"}},
		{"invoice", func() Envelope { return c.Invoice(ctx, "5") }, call{"GET", "/invoices/5/"}},
		{"resync invoice", func() Envelope { return c.ResyncInvoice(ctx, "5") }, call{"POST", "/invoices/5/resync/"}},
		{"retry all", func() Envelope { return c.RetryAllInvoices(ctx) }, call{"POST", "/invoices/retry-all/"}},
		{"companies", func() Envelope { return c.Companies(ctx) }, call{"GET", "/companies/"}},
		{"company", func() Envelope { return c.Company(ctx, "c1") }, call{"GET", "/companies/c1/"}},
		{"company status", func() Envelope { return c.UpdateCompanyStatus(ctx, "c1", map[string]bool{"is_active": false}) }, call{"PUT", "/companies/c1/status/"}},
		{"assign device", func() Envelope { return c.AssignCompanyDevice(ctx, "c1", map[string]string{}) }, call{"POST", "/companies/c1/devices/"}},
		{"dashboard", func() Envelope { return c.DashboardStats(ctx) }, call{"GET", "/dashboard/stats/"}},
		{"reports", func() Envelope { return c.Reports(ctx, url.Values{"period": {"week"}}) }, call{"GET", "/reports/?period=week"}},
		{"analytics", func() Envelope { return c.Analytics(ctx, "") }, call{"GET", "/analytics/"}},
		{"analytics id", func() Envelope { return c.Analytics(ctx, "9") }, call{"GET", "/analytics/9/"}},
		{"vscu status", func() Envelope { return c.VSCUStatus(ctx) }, call{"GET", "/vscu/status/"}},
		{"vscu sync", func() Envelope { return c.VSCUSync(ctx) }, call{"POST", "/vscu/sync/"}},
		{"vscu devices", func() Envelope { return c.VSCUDevices(ctx, map[string]any{}) }, call{"POST", "/vscu/devices/"}},
		{"vscu transactions", func() Envelope { return c.VSCUTransactions(ctx, map[string]any{}) }, call{"POST", "/vscu/transactions/"}},
		{"health", func() Envelope { return c.Health(ctx) }, call{"GET", "/health/"}},
		{"logs", func() Envelope { return c.Logs(ctx, nil) }, call{"GET", "/logs/"}},
		{"process queue", func() Envelope { return c.ProcessRetryQueue(ctx) }, call{"POST", "/retry-queue/process/"}},
		{"retry queue", func() Envelope { return c.RetryQueue(ctx) }, call{"GET", "/system/retry-queue/"}},
		{"switch env", func() Envelope { return c.SwitchEnvironment(ctx, map[string]string{"environment": "production"}) }, call{"POST", "/environment/switch/"}},
		{"env status", func() Envelope { return c.EnvironmentStatus(ctx) }, call{"GET", "/environment/status/"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got = call{}
			res := tt.do()
			assert.True(t, res.Success)
			assert.Equal(t, tt.want, got)
		})
	}
}

package api

import (
	"context"
	"net/url"
	"strconv"
)

func escape(id string) string {
	return url.PathEscape(id)
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// Devices

func (c *Client) Devices(ctx context.Context) Envelope {
	return c.get(ctx, "/devices/")
}

func (c *Client) UpdateDevices(ctx context.Context, body any) Envelope {
	return c.put(ctx, "/devices/", body)
}

func (c *Client) SyncDevice(ctx context.Context, id string) Envelope {
	return c.post(ctx, "/devices/"+escape(id)+"/sync/", nil)
}

func (c *Client) InitializeDevice(ctx context.Context, body any) Envelope {
	return c.post(ctx, "/devices/initialize/", body)
}

func (c *Client) CertifyDevice(ctx context.Context, id string, body any) Envelope {
	return c.post(ctx, "/devices/"+escape(id)+"/certify/", body)
}

func (c *Client) DeviceCertification(ctx context.Context, id string) Envelope {
	return c.get(ctx, "/devices/"+escape(id)+"/certification/")
}

func (c *Client) RegenerateDeviceKeys(ctx context.Context, id string) Envelope {
	return c.post(ctx, "/devices/"+escape(id)+"/regenerate-keys/", nil)
}

// Invoices

// Invoices lists one page of invoices. Non-positive page or limit are left
// to the server default.
func (c *Client) Invoices(ctx context.Context, page, limit int) Envelope {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return c.get(ctx, withQuery("/invoices/", q))
}

func (c *Client) CreateInvoice(ctx context.Context, body any) Envelope {
	return c.post(ctx, "/invoices/", body)
}

func (c *Client) Invoice(ctx context.Context, id string) Envelope {
	return c.get(ctx, "/invoices/"+escape(id)+"/")
}

func (c *Client) ResyncInvoice(ctx context.Context, id string) Envelope {
	return c.post(ctx, "/invoices/"+escape(id)+"/resync/", nil)
}

func (c *Client) RetryAllInvoices(ctx context.Context) Envelope {
	return c.post(ctx, "/invoices/retry-all/", nil)
}

// Companies

func (c *Client) Companies(ctx context.Context) Envelope {
	return c.get(ctx, "/companies/")
}

func (c *Client) Company(ctx context.Context, id string) Envelope {
	return c.get(ctx, "/companies/"+escape(id)+"/")
}

func (c *Client) UpdateCompanyStatus(ctx context.Context, id string, body any) Envelope {
	return c.put(ctx, "/companies/"+escape(id)+"/status/", body)
}

func (c *Client) AssignCompanyDevice(ctx context.Context, id string, body any) Envelope {
	return c.post(ctx, "/companies/"+escape(id)+"/devices/", body)
}

// Dashboard and reports

func (c *Client) DashboardStats(ctx context.Context) Envelope {
	return c.get(ctx, "/dashboard/stats/")
}

func (c *Client) Reports(ctx context.Context, q url.Values) Envelope {
	return c.get(ctx, withQuery("/reports/", q))
}

// Analytics fetches the analytics overview, or one entry when id is set.
func (c *Client) Analytics(ctx context.Context, id string) Envelope {
	if id == "" {
		return c.get(ctx, "/analytics/")
	}
	return c.get(ctx, "/analytics/"+escape(id)+"/")
}

// VSCU

func (c *Client) VSCUStatus(ctx context.Context) Envelope {
	return c.get(ctx, "/vscu/status/")
}

func (c *Client) VSCUSync(ctx context.Context) Envelope {
	return c.post(ctx, "/vscu/sync/", nil)
}

func (c *Client) VSCUDevices(ctx context.Context, body any) Envelope {
	return c.post(ctx, "/vscu/devices/", body)
}

func (c *Client) VSCUTransactions(ctx context.Context, body any) Envelope {
	return c.post(ctx, "/vscu/transactions/", body)
}

// System administration

func (c *Client) Health(ctx context.Context) Envelope {
	return c.get(ctx, healthPath)
}

func (c *Client) Logs(ctx context.Context, q url.Values) Envelope {
	return c.get(ctx, withQuery("/logs/", q))
}

func (c *Client) ProcessRetryQueue(ctx context.Context) Envelope {
	return c.post(ctx, "/retry-queue/process/", nil)
}

func (c *Client) RetryQueue(ctx context.Context) Envelope {
	return c.get(ctx, "/system/retry-queue/")
}

func (c *Client) SwitchEnvironment(ctx context.Context, body any) Envelope {
	return c.post(ctx, "/environment/switch/", body)
}

func (c *Client) EnvironmentStatus(ctx context.Context) Envelope {
	return c.get(ctx, "/environment/status/")
}

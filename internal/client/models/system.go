package models

type DashboardStats struct {
	TotalInvoices   int    `json:"total_invoices"`
	PendingInvoices int    `json:"pending_invoices"`
	FailedInvoices  int    `json:"failed_invoices"`
	TotalRevenue    Amount `json:"total_revenue"`
	TotalTax        Amount `json:"total_tax"`
	ActiveDevices   int    `json:"active_devices"`
	LastSync        Time   `json:"last_sync"`
}

type VSCUStatus struct {
	Online         bool   `json:"online"`
	Status         string `json:"status"`
	PendingCount   int    `json:"pending_count"`
	LastSync       Time   `json:"last_sync"`
	OfflineSince   Time   `json:"offline_since"`
	OfflineHours   Amount `json:"offline_hours"`
	OfflineAllowed bool   `json:"offline_allowed"`
}

type HealthStatus struct {
	Status     string            `json:"status"`
	Database   string            `json:"database,omitempty"`
	KRA        string            `json:"kra,omitempty"`
	Components map[string]string `json:"components,omitempty"`
	Timestamp  Time              `json:"timestamp"`
}

type RetryQueueStatus struct {
	Pending    int  `json:"pending"`
	Processing int  `json:"processing"`
	Failed     int  `json:"failed"`
	Completed  int  `json:"completed"`
	NextRunAt  Time `json:"next_run_at"`
}

type EnvironmentStatus struct {
	Environment string `json:"environment"`
	BaseURL     string `json:"base_url,omitempty"`
	SwitchedAt  Time   `json:"switched_at"`
}

// EnvironmentSwitch is the body of POST /environment/switch/.
type EnvironmentSwitch struct {
	Environment string `json:"environment"`
}

type LogEntry struct {
	ID        ID     `json:"id"`
	Level     string `json:"level"`
	Message   string `json:"message"`
	Source    string `json:"source,omitempty"`
	Timestamp Time   `json:"timestamp"`
}

// SyncSettings are the locally persisted sync preferences.
type SyncSettings struct {
	AutoSync        bool `json:"auto_sync"`
	IntervalMinutes int  `json:"interval_minutes"`
	WifiOnly        bool `json:"wifi_only"`
	SyncDevices     bool `json:"sync_devices"`
}

// DefaultSyncSettings is used until the user saves their own.
func DefaultSyncSettings() SyncSettings {
	return SyncSettings{AutoSync: true, IntervalMinutes: 15, SyncDevices: true}
}

package models

type Device struct {
	ID              ID     `json:"id"`
	SerialNumber    string `json:"serial_number"`
	DeviceName      string `json:"device_name,omitempty"`
	DeviceType      string `json:"device_type,omitempty"`
	Status          string `json:"status"`
	IsCertified     bool   `json:"is_certified"`
	BranchID        string `json:"branch_id,omitempty"`
	CompanyID       ID     `json:"company_id,omitempty"`
	LastSync        Time   `json:"last_sync"`
	CertificationAt Time   `json:"certification_date"`
}

// DeviceUpdate is the body of PUT /devices/.
type DeviceUpdate struct {
	ID         ID     `json:"id"`
	DeviceName string `json:"device_name,omitempty"`
	Status     string `json:"status,omitempty"`
}

// DeviceInit is the body of POST /devices/initialize/.
type DeviceInit struct {
	SerialNumber string `json:"serial_number"`
	DeviceName   string `json:"device_name,omitempty"`
	BranchID     string `json:"branch_id,omitempty"`
	KRAPin       string `json:"kra_pin,omitempty"`
}

type Certification struct {
	DeviceID        ID     `json:"device_id"`
	Status          string `json:"status"`
	CertificateID   string `json:"certificate_id,omitempty"`
	CMCKey          string `json:"cmc_key,omitempty"`
	IssuedAt        Time   `json:"issued_at"`
	ExpiresAt       Time   `json:"expires_at"`
	LastHealthCheck Time   `json:"last_health_check"`
}

// SyncResult is returned by device and VSCU sync calls.
type SyncResult struct {
	Synced  int    `json:"synced"`
	Failed  int    `json:"failed"`
	Message string `json:"message,omitempty"`
}

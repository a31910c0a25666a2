package models

type Company struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	KRAPin      string `json:"kra_pin"`
	Status      string `json:"status"`
	DeviceCount int    `json:"device_count"`
	CreatedAt   Time   `json:"created_at"`
}

// CompanyStatus is the body of PUT /companies/{id}/status/.
type CompanyStatus struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

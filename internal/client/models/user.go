package models

// Credentials is the body of the login and admin-login calls.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the body of the register call.
type Registration struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
	KRAPin      string `json:"kra_pin,omitempty"`
}

type User struct {
	ID        ID     `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	IsStaff   bool   `json:"is_staff"`
}

// TokenPair is the tokens object of an authentication response.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Session is the normalized result of a successful login:
// {"token": ..., "refresh": ..., "user": {...}}.
type Session struct {
	Token   string `json:"token"`
	Refresh string `json:"refresh"`
	User    User   `json:"user"`
}

// AdminCheck is returned by the admin-check endpoint.
type AdminCheck struct {
	IsAdmin bool `json:"is_admin"`
	IsStaff bool `json:"is_staff"`
}

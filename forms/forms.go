package forms

// Login is the login form. The session store does not validate it; callers do.
type Login struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProviderSignup is the service-provider registration form posted to /auth/signup.
type ProviderSignup struct {
	// Account details
	FullName string `json:"fullName" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,phone"`
	Password string `json:"password" validate:"required,min=8"`

	// Identity verification
	AadharNumber string `json:"aadharNumber" validate:"required,aadhar"`

	// Address
	Address string `json:"address" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	Pincode string `json:"pincode" validate:"required,pincode"`

	// Service details
	PrimaryService    string   `json:"primaryService" validate:"required"`
	SecondaryServices []string `json:"secondaryServices,omitempty"`
	Experience        *int     `json:"experience" validate:"required,min=0"`
	ServiceRadius     int      `json:"serviceRadius,omitempty" validate:"omitempty,min=1"`
	HourlyRate        *float64 `json:"hourlyRate,omitempty" validate:"omitempty,min=0"`
	Bio               string   `json:"bio,omitempty"`
	Languages         []string `json:"languages,omitempty"`
}

// CustomerSignup is the customer registration form. Address and pincode are
// optional for customers.
type CustomerSignup struct {
	FullName string `json:"fullName" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,phone"`
	Password string `json:"password" validate:"required,min=8"`
	Address  string `json:"address,omitempty"`
	City     string `json:"city" validate:"required"`
	State    string `json:"state" validate:"required"`
	Pincode  string `json:"pincode,omitempty" validate:"omitempty,pincode"`
}

// defaultServiceRadius matches the backend's default, in km.
const defaultServiceRadius = 5

// WithDefaults fills the optional fields the backend would otherwise default.
func (f ProviderSignup) WithDefaults() ProviderSignup {
	if f.ServiceRadius == 0 {
		f.ServiceRadius = defaultServiceRadius
	}
	return f
}

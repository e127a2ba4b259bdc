package users

// RoleType is the account role the QuickServe API assigns.
type RoleType string

const (
	RoleCustomer        RoleType = "CUSTOMER"         // Books services
	RoleServiceProvider RoleType = "SERVICE_PROVIDER" // Offers services and manages bookings
	RoleAdmin           RoleType = "ADMIN"            // Manages users, providers and bookings
)

func (r RoleType) Valid() bool {
	switch r {
	case RoleCustomer, RoleServiceProvider, RoleAdmin:
		return true
	}
	return false
}

// HasRole reports whether the user holds any of the given roles.
func (u User) HasRole(roles ...RoleType) bool {
	role := u.Role()
	if role == "" {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

func (u User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

func (u User) IsServiceProvider() bool {
	return u.HasRole(RoleServiceProvider)
}

package api

// QuickServe REST routes, relative to the API base URL.
const (
	RouteAuthLogin   = "/auth/login"
	RouteAuthSignup  = "/auth/signup"
	RouteAuthLogout  = "/auth/logout"
	RouteAuthRefresh = "/auth/refresh"
	RouteAuthMe      = "/auth/me"

	RouteProviderProfile      = "/provider/profile"
	RouteProviderStats        = "/provider/stats"
	RouteProviderBookings     = "/provider/bookings"
	RouteProviderAvailability = "/provider/availability"

	RoutePublicCategories = "/public/categories"
	RoutePublicProviders  = "/public/providers"
)

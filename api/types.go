package api

import (
	"encoding/json"

	"github.com/jrsteele09/quickserve-session/users"
)

// Response is the envelope every QuickServe endpoint wraps its payload in.
type Response[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

// AuthData is the payload of login, signup and refresh responses.
type AuthData struct {
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
	TokenType    string     `json:"tokenType,omitempty"`
	ExpiresIn    *int64     `json:"expiresIn,omitempty"` // access token lifetime in seconds
	User         users.User `json:"user"`
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type logoutRequest struct {
	Email string `json:"email"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type availabilityRequest struct {
	Available bool `json:"available"`
}

// DashboardStats is the provider dashboard summary.
type DashboardStats struct {
	TotalEarnings     json.Number `json:"totalEarnings,omitempty"`
	WeeklyEarnings    json.Number `json:"weeklyEarnings,omitempty"`
	TotalBookings     int         `json:"totalBookings"`
	CompletedBookings int         `json:"completedBookings"`
	PendingBookings   int         `json:"pendingBookings"`
	TodayBookings     int         `json:"todayBookings"`
	AverageRating     json.Number `json:"averageRating,omitempty"`
	TotalReviews      int         `json:"totalReviews"`
	ProfileViews      int         `json:"profileViews"`
	ActiveServices    int         `json:"activeServices"`
	EarningsTrend     string      `json:"earningsTrend,omitempty"`
	BookingsTrend     string      `json:"bookingsTrend,omitempty"`
	RatingStatus      string      `json:"ratingStatus,omitempty"`
	ViewsTrend        string      `json:"viewsTrend,omitempty"`
}

// ProviderProfile is the provider's own profile. Fields the client does not
// interpret are kept in Extra.
type ProviderProfile struct {
	ID                int64       `json:"id"`
	Name              string      `json:"name"`
	Email             string      `json:"email"`
	Phone             string      `json:"phone,omitempty"`
	Title             string      `json:"title,omitempty"`
	Bio               string      `json:"bio,omitempty"`
	City              string      `json:"city,omitempty"`
	State             string      `json:"state,omitempty"`
	Pincode           string      `json:"pincode,omitempty"`
	Rating            json.Number `json:"rating,omitempty"`
	Reviews           int         `json:"reviews"`
	Verified          bool        `json:"verified"`
	IsAvailable       bool        `json:"isAvailable"`
	PrimaryService    string      `json:"primaryService,omitempty"`
	SecondaryServices []string    `json:"secondaryServices,omitempty"`
	ServiceRadiusKm   int         `json:"serviceRadiusKm,omitempty"`
	HourlyRate        json.Number `json:"hourlyRate,omitempty"`
	Languages         []string    `json:"languages,omitempty"`
}

// Booking is one of the provider's bookings.
type Booking struct {
	ID            int64       `json:"id"`
	Customer      string      `json:"customer"`
	CustomerPhone string      `json:"customerPhone,omitempty"`
	Service       string      `json:"service"`
	ServiceID     int64       `json:"serviceId,omitempty"`
	Date          string      `json:"date,omitempty"`
	Time          string      `json:"time,omitempty"`
	Status        string      `json:"status"`
	Address       string      `json:"address,omitempty"`
	Price         json.Number `json:"price,omitempty"`
	Notes         string      `json:"notes,omitempty"`
}

// ServiceCategory is a bookable service category.
type ServiceCategory struct {
	Value         string `json:"value"`
	DisplayName   string `json:"displayName"`
	Icon          string `json:"icon,omitempty"`
	ProviderCount int    `json:"providerCount"`
}

// ProviderSummary is one row of a provider search.
type ProviderSummary struct {
	ID              int64       `json:"id"`
	Name            string      `json:"name"`
	AvatarURL       string      `json:"avatarUrl,omitempty"`
	PrimaryService  string      `json:"primaryService"`
	Services        []string    `json:"services,omitempty"`
	AverageRating   json.Number `json:"averageRating,omitempty"`
	TotalReviews    int         `json:"totalReviews"`
	HourlyRate      json.Number `json:"hourlyRate,omitempty"`
	Location        string      `json:"location,omitempty"`
	Verified        bool        `json:"verified"`
	IsAvailable     bool        `json:"isAvailable"`
	CompletedJobs   int         `json:"completedJobs"`
	ExperienceYears int         `json:"experienceYears"`
}

// Page is a Spring Data page.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
}

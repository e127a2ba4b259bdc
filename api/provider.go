package api

import (
	"context"
	"net/http"
	"net/url"
)

// ProviderAPI covers the service-provider dashboard endpoints. All of them
// require an authenticated client.
type ProviderAPI interface {
	GetProfile(ctx context.Context) (*ProviderProfile, error)
	UpdateProfile(ctx context.Context, profile map[string]any) (*ProviderProfile, error)
	GetStats(ctx context.Context) (*DashboardStats, error)
	GetBookings(ctx context.Context) ([]Booking, error)
	UpdateAvailability(ctx context.Context, available bool) error
}

// PublicAPI covers the unauthenticated catalogue endpoints.
type PublicAPI interface {
	GetCategories(ctx context.Context) ([]ServiceCategory, error)
	SearchProviders(ctx context.Context, params url.Values) (*Page[ProviderSummary], error)
}

var (
	_ ProviderAPI = (*Client)(nil)
	_ PublicAPI   = (*Client)(nil)
)

func (c *Client) GetProfile(ctx context.Context) (*ProviderProfile, error) {
	var resp Response[*ProviderProfile]
	if err := c.do(ctx, http.MethodGet, RouteProviderProfile, true, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) UpdateProfile(ctx context.Context, profile map[string]any) (*ProviderProfile, error) {
	var resp Response[*ProviderProfile]
	if err := c.do(ctx, http.MethodPut, RouteProviderProfile, true, profile, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) GetStats(ctx context.Context) (*DashboardStats, error) {
	var resp Response[*DashboardStats]
	if err := c.do(ctx, http.MethodGet, RouteProviderStats, true, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) GetBookings(ctx context.Context) ([]Booking, error) {
	var resp Response[[]Booking]
	if err := c.do(ctx, http.MethodGet, RouteProviderBookings, true, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) UpdateAvailability(ctx context.Context, available bool) error {
	return c.do(ctx, http.MethodPatch, RouteProviderAvailability, true, availabilityRequest{Available: available}, nil)
}

func (c *Client) GetCategories(ctx context.Context) ([]ServiceCategory, error) {
	var resp Response[[]ServiceCategory]
	if err := c.do(ctx, http.MethodGet, RoutePublicCategories, false, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// SearchProviders accepts the backend's filters: category, city, search,
// minPrice, maxPrice, minRating, sortBy, page, size.
func (c *Client) SearchProviders(ctx context.Context, params url.Values) (*Page[ProviderSummary], error) {
	path := RoutePublicProviders
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var resp Response[*Page[ProviderSummary]]
	if err := c.do(ctx, http.MethodGet, path, false, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

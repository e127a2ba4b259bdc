package apitest

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/jrsteele09/quickserve-session/users"
)

var categories = []map[string]any{
	{"value": "PLUMBING", "displayName": "Plumbing", "icon": "wrench", "providerCount": 0},
	{"value": "ELECTRICAL", "displayName": "Electrical", "icon": "zap", "providerCount": 0},
	{"value": "CLEANING", "displayName": "Cleaning", "icon": "sparkles", "providerCount": 0},
	{"value": "CARPENTRY", "displayName": "Carpentry", "icon": "hammer", "providerCount": 0},
}

func (s *Server) profileHandler(w http.ResponseWriter, r *http.Request) {
	a := s.caller(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, "Profile retrieved", providerProfile(a))
}

func (s *Server) updateProfileHandler(w http.ResponseWriter, r *http.Request) {
	var req map[string]any
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, MsgBadRequest)
		return
	}
	a := s.caller(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := req["name"].(string); ok && v != "" {
		a.FullName = v
	}
	if v, ok := req["phone"].(string); ok && v != "" {
		a.Phone = v
	}
	if v, ok := req["city"].(string); ok && v != "" {
		a.City = v
	}
	writeJSON(w, http.StatusOK, "Profile updated successfully", providerProfile(a))
}

func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, "Stats retrieved", map[string]any{
		"totalEarnings":     12500.50,
		"weeklyEarnings":    2300,
		"totalBookings":     42,
		"completedBookings": 37,
		"pendingBookings":   3,
		"todayBookings":     2,
		"averageRating":     4.7,
		"totalReviews":      29,
		"profileViews":      310,
		"activeServices":    4,
		"earningsTrend":     "+12% from last week",
		"ratingStatus":      "Top Rated Provider",
	})
}

func (s *Server) bookingsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, "Bookings retrieved", []map[string]any{
		{"id": 1, "customer": "Meera Shah", "service": "Pipe repair", "date": "2026-10-20", "time": "10:00", "status": "pending", "price": 450},
		{"id": 2, "customer": "Arjun Nair", "service": "Tap installation", "date": "2026-10-21", "time": "14:30", "status": "confirmed", "price": 300},
	})
}

func (s *Server) availabilityHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Available *bool `json:"available"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Available == nil {
		writeError(w, http.StatusBadRequest, MsgBadRequest)
		return
	}
	a := s.caller(r)

	s.mu.Lock()
	a.Available = *req.Available
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, "Availability updated", nil)
}

func (s *Server) categoriesHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]map[string]any, 0, len(categories))
	for _, c := range categories {
		row := map[string]any{}
		for k, v := range c {
			row[k] = v
		}
		count := 0
		for _, a := range s.accounts {
			if a.Role == users.RoleServiceProvider && strings.EqualFold(a.Service, c["value"].(string)) {
				count++
			}
		}
		row["providerCount"] = count
		out = append(out, row)
	}
	writeJSON(w, http.StatusOK, "Categories retrieved", out)
}

// providersHandler filters by category and city and pages the result.
func (s *Server) providersHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	category := q.Get("category")
	city := q.Get("city")
	page, _ := strconv.Atoi(q.Get("page"))
	size, err := strconv.Atoi(q.Get("size"))
	if err != nil || size <= 0 {
		size = 10
	}

	s.mu.Lock()
	matches := make([]map[string]any, 0)
	for _, a := range s.accounts {
		if a.Role != users.RoleServiceProvider {
			continue
		}
		if category != "" && !strings.EqualFold(a.Service, category) {
			continue
		}
		if city != "" && !strings.EqualFold(a.City, city) {
			continue
		}
		matches = append(matches, map[string]any{
			"id":             *a.ProviderID,
			"name":           a.FullName,
			"primaryService": a.Service,
			"location":       a.City,
			"isAvailable":    a.Available,
			"verified":       false,
		})
	}
	s.mu.Unlock()

	sort.Slice(matches, func(i, j int) bool {
		return matches[i]["id"].(int64) < matches[j]["id"].(int64)
	})

	start := page * size
	if start > len(matches) {
		start = len(matches)
	}
	end := start + size
	if end > len(matches) {
		end = len(matches)
	}

	writeJSON(w, http.StatusOK, "Providers retrieved", map[string]any{
		"content":       matches[start:end],
		"number":        page,
		"size":          size,
		"totalPages":    (len(matches) + size - 1) / size,
		"totalElements": len(matches),
	})
}

func providerProfile(a *Account) map[string]any {
	return map[string]any{
		"id":             *a.ProviderID,
		"name":           a.FullName,
		"email":          a.Email,
		"phone":          a.Phone,
		"city":           a.City,
		"primaryService": a.Service,
		"isAvailable":    a.Available,
		"verified":       false,
		"reviews":        0,
	}
}

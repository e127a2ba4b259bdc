package users

import (
	"encoding/json"
	"strconv"

	"github.com/jrsteele09/quickserve-session/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

// Well-known profile fields returned by the QuickServe API (AuthResponse.UserInfo).
const (
	FieldID              = "id"
	FieldFullName        = "fullName"
	FieldEmail           = "email"
	FieldPhone           = "phone"
	FieldRole            = "role"
	FieldProfilePhotoURL = "profilePhotoUrl"
	FieldProviderID      = "providerId"
	FieldCustomerID      = "customerId"
)

// User is the authenticated identity. Profile fields are arbitrary; a user
// that is present must carry an email. A nil User means "no user".
type User map[string]any

// Email returns the user's email address, or "" when absent.
func (u User) Email() string {
	return u.stringField(FieldEmail)
}

func (u User) FullName() string {
	return u.stringField(FieldFullName)
}

func (u User) Phone() string {
	return u.stringField(FieldPhone)
}

func (u User) Role() RoleType {
	return RoleType(u.stringField(FieldRole))
}

// ID returns the numeric user id, if present.
func (u User) ID() (int64, bool) {
	return u.intField(FieldID)
}

// ProviderID is set only for service providers.
func (u User) ProviderID() (int64, bool) {
	return u.intField(FieldProviderID)
}

// CustomerID is set only for customers.
func (u User) CustomerID() (int64, bool) {
	return u.intField(FieldCustomerID)
}

// Clone returns a shallow copy; nil stays nil.
func (u User) Clone() User {
	return utils.CloneMap(u)
}

// Merge returns a new User holding u's fields overlaid with partial's. Merging
// into a nil user yields only partial's fields.
func (u User) Merge(partial User) User {
	return utils.MergeMaps(u, partial)
}

func (u User) stringField(key string) string {
	if u == nil {
		return ""
	}
	s, _ := u[key].(string)
	return s
}

// intField accepts the shapes a JSON number can take after decoding.
func (u User) intField(key string) (int64, bool) {
	if u == nil {
		return 0, false
	}
	switch v := u[key].(type) {
	case float64:
		return int64(v), true
	case int:
		return int64(v), true
	case int64:
		return v, true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

package forms

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// labels gives the display name used by the QuickServe backend's messages.
var labels = map[string]string{
	"fullName":       "Full name",
	"email":          "Email",
	"phone":          "Phone number",
	"password":       "Password",
	"aadharNumber":   "Aadhar number",
	"address":        "Address",
	"city":           "City",
	"state":          "State",
	"pincode":        "Pincode",
	"primaryService": "Primary service",
	"experience":     "Experience",
	"serviceRadius":  "Service radius",
	"hourlyRate":     "Hourly rate",
}

func label(field string) string {
	if l, ok := labels[field]; ok {
		return l
	}
	return field
}

func message(fe validator.FieldError) string {
	l := label(fe.Field())
	switch fe.Tag() {
	case "required":
		return l + " is required"
	case "email":
		return "Please provide a valid email address"
	case "phone":
		return "Please provide a valid phone number"
	case "aadhar":
		return "Aadhar number must be 12 digits"
	case "pincode":
		return "Pincode must be 6 digits"
	case "min":
		switch fe.Field() {
		case "password":
			return "Password must be at least " + fe.Param() + " characters"
		case "fullName":
			return "Full name must be between 2 and 100 characters"
		case "serviceRadius":
			return "Service radius must be at least " + fe.Param() + " km"
		default:
			return l + " cannot be negative"
		}
	case "max":
		return fmt.Sprintf("%s must be at most %s", l, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", l)
	}
}

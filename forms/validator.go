package forms

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

var (
	phonePattern   = regexp.MustCompile(`^[+]?[0-9\s-]{10,15}$`)
	aadharPattern  = regexp.MustCompile(`^[0-9]{12}$`)
	pincodePattern = regexp.MustCompile(`^[0-9]{6}$`)
)

// ValidationErrors maps a form field (its JSON name) to a user-facing message.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, v[f])
	}
	return strings.Join(msgs, "; ")
}

// Validate checks a form struct against its `validate` tags. It returns nil or
// a ValidationErrors keyed by JSON field name.
func Validate(form any) error {
	lazyinit()

	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("[forms.Validate] %w", err)
	}

	out := ValidationErrors{}
	for _, fe := range fieldErrs {
		if _, exists := out[fe.Field()]; exists {
			continue
		}
		out[fe.Field()] = message(fe)
	}
	return out
}

// lazyinit performs one-time initialization of the validator
func lazyinit() {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report JSON names so messages line up with the API's field names.
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})

		_ = validate.RegisterValidation("phone", matches(phonePattern))
		_ = validate.RegisterValidation("aadhar", matches(aadharPattern))
		_ = validate.RegisterValidation("pincode", matches(pincodePattern))
	})
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || re.MatchString(s)
	}
}

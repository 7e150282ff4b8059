// utils/validation.go
package utils

import (
	"errors"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	phoneRegex    = regexp.MustCompile(`^\d{10}$`)
	emailRegex    = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	durationRegex = regexp.MustCompile(`^(?:(\d+)h\s*)?(?:(\d+)m\s*)?$`)
)

// ValidatePhone checks for exactly ten digits, no separators
func ValidatePhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

func ValidateEmail(email string) bool {
	return emailRegex.MatchString(strings.TrimSpace(email))
}

// ValidateDuration accepts "1h", "45m" and "1h 30m"; at least one part must
// be non-zero.
func ValidateDuration(duration string) error {
	duration = strings.TrimSpace(duration)
	m := durationRegex.FindStringSubmatch(duration)
	if duration == "" || m == nil {
		return errors.New(`must be in format "Xh Ym" (e.g. "1h 30m", "2h", "45m")`)
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	if hours == 0 && minutes == 0 {
		return errors.New("must specify hours, minutes, or both")
	}
	return nil
}

// HasAtMostTwoDecimals reports whether v is a whole number of cents.
func HasAtMostTwoDecimals(v float64) bool {
	cents := v * 100
	return math.Abs(cents-math.Round(cents)) < 1e-6
}

var jsonNamesOnce sync.Once

// UseJSONFieldNames makes binding errors report JSON field names instead of
// Go struct field names.
func UseJSONFieldNames() {
	jsonNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
	})
}

// BindingErrors turns gin/validator binding failures into one message per
// JSON field. Malformed bodies are reported under "body".
func BindingErrors(err error) map[string]string {
	out := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			out[jsonFieldName(fe)] = describeTag(fe)
		}
		return out
	}
	out["body"] = err.Error()
	return out
}

func jsonFieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	return ns
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "failed on '" + fe.Tag() + "'"
	}
}

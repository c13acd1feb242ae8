package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ItemConditions are the accepted marketplace item conditions.
var ItemConditions = []string{"New", "Like New", "Good", "Used"}

var (
	matricRe = regexp.MustCompile(`^[0-9]{2}[A-Za-z]{2}[0-9A-Za-z]*$`)
	courseRe = regexp.MustCompile(`^[A-Za-z]{2,4}\s?[0-9]{3}$`)
)

// Init configures the global validator used by Gin's binding.
// - Uses JSON tag names in errors.
// - Registers the campus specific tags and a few aliases.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		Register(v)
	}
}

// Register installs tag names, custom tags and aliases on v.
func Register(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})
	_ = v.RegisterValidation("matric", func(fl validator.FieldLevel) bool {
		return matricRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("coursecode", func(fl validator.FieldLevel) bool {
		return courseRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("15:04", fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("day", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(time.DateOnly, fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("condition", func(fl validator.FieldLevel) bool {
		return slices.Contains(ItemConditions, fl.Field().String())
	})
	v.RegisterAlias("pwd", "min=6,max=72") // bcrypt only reads 72 bytes
	v.RegisterAlias("phone", "e164")
}

// ToDetails converts validation/binding errors into a map[field]message suitable for API error.details.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	if errors.Is(err, io.EOF) {
		return map[string]string{"payload": "empty body"}
	}
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) {
		return map[string]string{"payload": "invalid json"}
	}
	if errors.As(err, &ute) {
		field := ute.Field
		if field == "" {
			field = "payload"
		}
		return map[string]string{field: "must be a " + ute.Type.String()}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = formatFieldError(fe)
		}
		return out
	}

	return map[string]string{"payload": "invalid payload"}
}

func formatFieldError(fe validator.FieldError) string {
	tag := fe.Tag()
	if tag == "pwd" {
		tag = fe.ActualTag()
	}
	param := fe.Param()
	kind := fe.Kind()

	switch tag {
	case "required":
		return "is required"
	case "required_with":
		return "is required when " + param + " is present"
	case "required_without":
		return "is required when " + param + " is not present"

	case "email":
		return "must be a valid email"
	case "url", "http_url":
		return "must be a valid URL"
	case "uri":
		return "must be a valid URI"
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "e164", "phone":
		return "must be a valid phone number"
	case "numeric":
		return "must be numeric"
	case "alphanum":
		return "must contain alphanumeric characters only"

	case "matric":
		return "must look like 20CE1234"
	case "coursecode":
		return "must look like CSC101"
	case "clock":
		return "must be HH:MM"
	case "day":
		return "must be YYYY-MM-DD"
	case "condition":
		return "must be one of " + strings.Join(ItemConditions, ", ")

	case "oneof":
		return "must be one of [" + param + "]"
	case "len":
		if kind == reflect.String {
			return fmt.Sprintf("must be exactly %s characters long", param)
		}
		return "must contain exactly " + param + " items"
	case "min":
		if isNumber(kind) {
			return "must be at least " + param
		}
		return "must be at least " + param + " characters long"
	case "max":
		if isNumber(kind) {
			return "must be at most " + param
		}
		return "must be at most " + param + " characters long"
	case "gt":
		return "must be greater than " + param
	case "gte":
		return "must be greater than or equal to " + param
	case "lt":
		return "must be less than " + param
	case "lte":
		return "must be less than or equal to " + param
	case "eqfield":
		return "must be equal to " + param
	case "nefield":
		return "must not be equal to " + param
	}
	return "is invalid"
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

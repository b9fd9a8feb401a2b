package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// MinPasswordLength is the password policy minimum for registration.
const MinPasswordLength = 6

var std = newStd()

func newStd() *validator.Validate {
	v := validator.New()
	Configure(v)
	return v
}

// Struct validates s against its `validate` tags using the shared instance.
func Struct(s any) error {
	return std.Struct(s)
}

// Init applies Configure to the engine behind gin's binding.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		Configure(v)
	}
}

// Configure applies the tag name function and aliases to v.
func Configure(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	v.RegisterAlias("pwd", fmt.Sprintf("min=%d", MinPasswordLength))
	v.RegisterAlias("id", "gt=0")
}

// ToDetails turns a bind or validation error into field -> message pairs for the
// error envelope. Malformed bodies are reported under "payload".
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) {
		return map[string]string{"payload": "invalid json"}
	}
	if errors.As(err, &ute) {
		if ute.Field != "" {
			return map[string]string{ute.Field: "must be a " + ute.Type.String()}
		}
		return map[string]string{"payload": "invalid json"}
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

// FirstTag returns the first of tags (in the given priority order) that failed in err,
// or "" when none did.
func FirstTag(err error, tags ...string) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ""
	}
	for _, tag := range tags {
		for _, fe := range verrs {
			if fe.Tag() == tag {
				return tag
			}
		}
	}
	return ""
}

// messages covers the tags used by request structs; anything else falls back
// to a generic line naming the tag.
var messages = map[string]func(param string) string{
	"required": func(string) string { return "is required" },
	"email":    func(string) string { return "must be a valid email" },
	"eqfield":  func(p string) string { return "must match " + p },
	"gt":       func(p string) string { return "must be greater than " + p },
	"gte":      func(p string) string { return "must be greater than or equal to " + p },
	"pwd": func(string) string {
		return fmt.Sprintf("must be at least %d characters long", MinPasswordLength)
	},
	"id": func(string) string { return "must be a positive id" },
}

func formatFieldError(fe validator.FieldError) string {
	if msg, ok := messages[fe.Tag()]; ok {
		return msg(fe.Param())
	}
	if fe.Param() != "" {
		return fmt.Sprintf("failed %s=%s", fe.Tag(), fe.Param())
	}
	return "failed " + fe.Tag()
}

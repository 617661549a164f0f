package attendees

import (
	"errors"
	"html"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

const (
	MsgNameTooShort    = "Name must be at least 2 characters."
	MsgAddressTooShort = "Address must be at least 5 characters."
	MsgSubmitFailed    = "We could not record your registration. Please try again."
	MsgInvalidForm     = "The form could not be read. Please try again."
)

var fieldMessages = map[string]string{
	"name":    MsgNameTooShort,
	"address": MsgAddressTooShort,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

// ContainsMarkup reports whether s carries HTML tags. Text is never
// rewritten; html/template escapes it on output.
func ContainsMarkup(s string) bool {
	if !strings.ContainsRune(s, '<') {
		return false
	}
	stripped := html.UnescapeString(textSanitizer().Sanitize(s))
	return stripped != html.UnescapeString(s)
}

// Normalize returns a copy of req with every field trimmed. The text is
// otherwise sent exactly as typed.
func Normalize(req RegistrationRequest) RegistrationRequest {
	return RegistrationRequest{
		Name:    strings.TrimSpace(req.Name),
		Address: strings.TrimSpace(req.Address),
		Message: strings.TrimSpace(req.Message),
	}
}

// markupFields lists the fields of req that carry HTML tags
func markupFields(req RegistrationRequest) []string {
	var fields []string
	for field, value := range map[string]string{
		"name":    req.Name,
		"address": req.Address,
		"message": req.Message,
	} {
		if ContainsMarkup(value) {
			fields = append(fields, field)
		}
	}
	sort.Strings(fields)
	return fields
}

// Validate checks the length rules and returns ValidationErrors keyed by field
func Validate(req RegistrationRequest) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := make(ValidationErrors, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg, ok := fieldMessages[fe.Field()]
		if !ok {
			msg = fe.Error()
		}
		out[fe.Field()] = msg
	}
	return out
}

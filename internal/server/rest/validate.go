package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/huseyinozgul/docvault/internal/server/auth"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return auth.CheckPasswordPolicy(fl.Field().String()) == nil
	})
	return v
}

// fieldError is one entry of a 422 response.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type validationError struct {
	fields []fieldError
}

func (e *validationError) Error() string {
	parts := make([]string, 0, len(e.fields))
	for _, f := range e.fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// maxBodyBytes caps request bodies; file content travels inline as base64.
var maxBodyBytes int64 = 64 << 20

var errBodyTooLarge = errors.New("request body too large")

// decodeBody reads a JSON body into dst and validates its tags. Oversized
// bodies fail with errBodyTooLarge; any other problem comes back as a
// *validationError.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errBodyTooLarge
		}
		return &validationError{fields: []fieldError{decodeFieldError(err)}}
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		out := &validationError{}
		for _, fe := range verrs {
			out.fields = append(out.fields, fieldError{Field: fe.Field(), Message: fieldMessage(fe)})
		}
		return out
	}
	return nil
}

func decodeFieldError(err error) fieldError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fieldError{Field: typeErr.Field, Message: fmt.Sprintf("must be of type %s", typeErr.Type)}
	}
	return fieldError{Field: "body", Message: "invalid JSON body"}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Field required"
	case "email":
		return "value is not a valid email address"
	case "password":
		if err := auth.CheckPasswordPolicy(fmt.Sprint(fe.Value())); err != nil {
			return err.Error()
		}
		return "invalid password"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	}
	return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
}

func writeValidationError(w http.ResponseWriter, err *validationError) {
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: err.fields})
}

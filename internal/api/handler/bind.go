package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fitplan/fitplan/internal/api/models"
	"github.com/fitplan/fitplan/internal/api/response"
	bm "github.com/fitplan/fitplan/internal/bodymetrics"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names. Embedded structs have no tag and
	// keep their Go name, which fieldPath drops.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return f.Name
		}
		return name
	})

	mustRegister(v, "gender", func(fl validator.FieldLevel) bool {
		_, err := bm.ParseGender(fl.Field().String())
		return err == nil
	})
	mustRegister(v, "goal", func(fl validator.FieldLevel) bool {
		_, err := bm.ParseGoal(fl.Field().String())
		return err == nil
	})
	mustRegister(v, "activity", func(fl validator.FieldLevel) bool {
		_, err := bm.ParseActivityLevel(fl.Field().String())
		return err == nil
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("registering %s validation: %v", tag, err))
	}
}

// decodeJSON reads a JSON body into dst and validates it. It writes a 400
// problem and returns false on failure. With optional set, an empty body
// leaves dst at its zero value.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, optional bool) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if !(optional && errors.Is(err, io.EOF)) {
			writeDecodeError(w, r, err)
			return false
		}
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			response.BadRequest(w, r, "request validation failed", fieldErrors(verrs))
			return false
		}
		response.InternalError(w, r, "request validation failed")
		return false
	}
	return true
}

func writeDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		typeErr *json.UnmarshalTypeError
		sizeErr *http.MaxBytesError
	)
	switch {
	case errors.As(err, &typeErr):
		response.BadRequest(w, r, "invalid JSON body", []models.FieldError{{
			Field:   typeErr.Field,
			Message: fmt.Sprintf("must be a %s", typeErr.Type),
			Code:    "type",
		}})
	case errors.As(err, &sizeErr):
		response.BadRequest(w, r, fmt.Sprintf("request body exceeds %d bytes", sizeErr.Limit), nil)
	case errors.Is(err, io.EOF):
		response.BadRequest(w, r, "request body is required", nil)
	default:
		response.BadRequest(w, r, "invalid JSON body: "+err.Error(), nil)
	}
}

func fieldErrors(verrs validator.ValidationErrors) []models.FieldError {
	out := make([]models.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, models.FieldError{
			Field:   fieldPath(fe.Namespace()),
			Message: fieldMessage(fe),
			Code:    fe.Tag(),
		})
	}
	return out
}

// fieldPath turns RegisterRequest.profile.height_cm into profile.height_cm.
func fieldPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	kept := parts[:0]
	for i, p := range parts {
		if i == 0 || p == "" || (p[0] >= 'A' && p[0] <= 'Z') {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, ".")
}

func fieldMessage(fe validator.FieldError) string {
	unit := ""
	switch fe.Kind() {
	case reflect.String:
		unit = " characters"
	case reflect.Slice:
		unit = " items"
	}
	switch fe.Tag() {
	case "required", "required_without":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min", "gte":
		if unit != "" {
			return "must have at least " + fe.Param() + unit
		}
		return "must be at least " + fe.Param()
	case "max", "lte":
		if unit != "" {
			return "must have at most " + fe.Param() + unit
		}
		return "must be at most " + fe.Param()
	case "gender":
		return "must be one of: " + joinCodes(bm.Genders)
	case "goal":
		return "must be one of: " + joinCodes(bm.Goals)
	case "activity":
		return "must be one of: " + joinCodes(bm.ActivityLevels)
	default:
		return "is invalid"
	}
}

func joinCodes[T ~string](codes []T) string {
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}

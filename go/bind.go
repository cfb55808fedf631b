package pizzaserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/oapi-codegen/runtime"

	apierrors "github.com/Apurer/go-gin-pizza-service/internal/shared/errors"
)

// FieldError describes one rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message,omitempty"`
}

// bindJSON decodes and validates the body, answering 400 with field details on failure.
func bindJSON(c *gin.Context, out any) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		respondProblem(c, bindProblem(err, out))
		return false
	}
	return true
}

func bindProblem(err error, out any) apierrors.ProblemDetail {
	rootType := baseStructType(out)

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields := make([]FieldError, 0, len(validationErrors))
		for _, fe := range validationErrors {
			fields = append(fields, FieldError{
				Field:   jsonPath(rootType, fe),
				Rule:    fe.Tag(),
				Param:   fe.Param(),
				Message: validationMessage(fe.Tag(), fe.Param()),
			})
		}
		return apierrors.NewValidationProblem(fields)
	}

	var syntaxError *json.SyntaxError
	if errors.As(err, &syntaxError) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return apierrors.ErrBadRequest.WithDetail("request body is not valid JSON")
	}

	var typeError *json.UnmarshalTypeError
	if errors.As(err, &typeError) {
		return apierrors.NewValidationProblem([]FieldError{{
			Field:   typeError.Field,
			Rule:    "type",
			Message: fmt.Sprintf("must be of type %s", typeError.Type.String()),
		}})
	}
	return apierrors.ErrBadRequest.WithDetail(err.Error())
}

func baseStructType(v any) reflect.Type {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t != nil && t.Kind() == reflect.Struct {
		return t
	}
	return nil
}

// jsonPath turns a validator namespace such as "orderRequest.Items[0].MenuID"
// into the JSON path "items[0].menuId".
func jsonPath(rootType reflect.Type, fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	current := rootType
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		name, index, _ := strings.Cut(part, "[")
		if index != "" {
			index = "[" + index
		}
		jsonName := name
		var next reflect.Type
		if current != nil && current.Kind() == reflect.Struct {
			if sf, ok := current.FieldByName(name); ok {
				if tag, _, _ := strings.Cut(sf.Tag.Get("json"), ","); tag != "" && tag != "-" {
					jsonName = tag
				}
				next = sf.Type
			}
		}
		out = append(out, jsonName+index)
		current = unwindCollection(next)
	}
	if len(out) == 0 {
		return fe.Field()
	}
	return strings.Join(out, ".")
}

func unwindCollection(t reflect.Type) reflect.Type {
	for t != nil {
		switch t.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Array:
			t = t.Elem()
		default:
			return t
		}
	}
	return nil
}

func validationMessage(rule, param string) string {
	switch rule {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must contain at least " + param
	case "gt":
		return "must be greater than " + param
	case "gte":
		return "must be at least " + param
	default:
		if param != "" {
			return fmt.Sprintf("failed %s validation (%s)", rule, param)
		}
		return "failed " + rule + " validation"
	}
}

// queryInt binds an optional integer query parameter, keeping fallback when absent.
func queryInt(c *gin.Context, name string, fallback int) (int, bool) {
	value := fallback
	if err := runtime.BindQueryParameter("form", true, false, name, c.Request.URL.Query(), &value); err != nil {
		respondProblem(c, apierrors.NewValidationProblem([]FieldError{{
			Field:   name,
			Rule:    "type",
			Message: "must be an integer",
		}}))
		return 0, false
	}
	return value, true
}

// queryString binds an optional string query parameter.
func queryString(c *gin.Context, name, fallback string) string {
	value := fallback
	if err := runtime.BindQueryParameter("form", true, false, name, c.Request.URL.Query(), &value); err != nil {
		return fallback
	}
	return value
}

// pathID parses a positive integer path parameter.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondProblem(c, apierrors.NewValidationProblem([]FieldError{{
			Field:   name,
			Rule:    "gt",
			Param:   "0",
			Message: "must be a positive integer",
		}}))
		return 0, false
	}
	return id, true
}

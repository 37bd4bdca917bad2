package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/blog-api/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Errors is returned when a request is rejected before reaching the database
type Errors struct {
	Fields []models.FieldError
}

func (e *Errors) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Field + ": " + f.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

var setupOnce sync.Once

// Setup makes the gin validator report fields by their JSON names and
// registers the nonul rule. It is safe to call more than once.
func Setup() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)
		// PostgreSQL text columns cannot store NUL.
		if err := v.RegisterValidation("nonul", noNUL); err != nil {
			panic(fmt.Sprintf("validation: register nonul: %v", err))
		}
	})
}

func noNUL(fl validator.FieldLevel) bool {
	return !strings.ContainsRune(fl.Field().String(), 0)
}

// BindJSON decodes and validates the request body into obj.
// Any failure is returned as *Errors.
func BindJSON(c *gin.Context, obj interface{}) error {
	Setup()
	if err := c.ShouldBindJSON(obj); err != nil {
		return Translate(err)
	}
	return nil
}

// ParseID parses an integer path parameter
func ParseID(field, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &Errors{Fields: []models.FieldError{{
			Field:   field,
			Message: "must be an integer",
			Value:   raw,
		}}}
	}
	return id, nil
}

// Translate converts a binding error into *Errors
func Translate(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make([]models.FieldError, 0, len(validationErrs))
		for _, fe := range validationErrs {
			fields = append(fields, models.FieldError{
				Field:   fe.Field(),
				Message: ruleMessage(fe),
			})
		}
		return &Errors{Fields: fields}
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &Errors{Fields: []models.FieldError{{
			Field:   typeErr.Field,
			Message: fmt.Sprintf("must be of type %s", typeName(typeErr.Type)),
			Value:   typeErr.Value,
		}}}
	}

	if errors.Is(err, io.EOF) {
		return &Errors{Fields: []models.FieldError{{Field: "request", Message: "request body is required"}}}
	}

	return &Errors{Fields: []models.FieldError{{Field: "request", Message: "malformed JSON body"}}}
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "nonul":
		return "must not contain NUL characters"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "unknown"
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "integer"
	case reflect.String:
		return "string"
	default:
		return t.Kind().String()
	}
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

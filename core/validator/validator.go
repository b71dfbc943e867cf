package validator

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"castle-admin/core/controller"

	playground "github.com/go-playground/validator/v10"
)

type Result struct {
	Errors []controller.ValidationError `json:"errors"`
}

func (r *Result) HasError() bool {
	return r != nil && len(r.Errors) > 0
}

func (r *Result) AddError(field, message string) {
	r.Errors = append(r.Errors, controller.NewValidationError(field, message))
}

var (
	engine     *playground.Validate
	engineOnce sync.Once
)

func get() *playground.Validate {
	engineOnce.Do(func() {
		engine = playground.New(playground.WithRequiredStructEnabled())
		engine.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return engine
}

// Struct runs the struct-tag rules on v and collects field errors.
func Struct(v any) *Result {
	result := &Result{}
	err := get().Struct(v)
	if err == nil {
		return result
	}
	verrs, ok := err.(playground.ValidationErrors)
	if !ok {
		result.AddError("", err.Error())
		return result
	}
	for _, fe := range verrs {
		result.AddError(fe.Field(), message(fe))
	}
	return result
}

// Var validates a single value against a tag expression.
func Var(field string, value any, tag string, result *Result) {
	if err := get().Var(value, tag); err != nil {
		if verrs, ok := err.(playground.ValidationErrors); ok && len(verrs) > 0 {
			result.AddError(field, message(verrs[0]))
			return
		}
		result.AddError(field, err.Error())
	}
}

func message(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "datetime":
		return fmt.Sprintf("must match format %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

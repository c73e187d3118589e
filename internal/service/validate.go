package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"taskServer/internal/models/task"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// error field names follow the API's JSON keys
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return strings.ToLower(fld.Name)
		}
		return name
	})

	v.RegisterCustomTypeFunc(clearableValue,
		task.Clearable[string]{},
		task.Clearable[time.Time]{},
	)

	if err := v.RegisterValidation("task_status", func(fl validator.FieldLevel) bool {
		return task.Status(fl.Field().String()).IsValid()
	}); err != nil {
		panic(err)
	}
	return v
}

// clearableValue hands the validator the slot's value; a cleared or absent
// slot becomes a nil pointer and is skipped by omitempty.
func clearableValue(field reflect.Value) any {
	switch c := field.Interface().(type) {
	case task.Clearable[string]:
		return c.Value
	case task.Clearable[time.Time]:
		return c.Value
	}
	return nil
}

// Validate checks v against its validate tags and reports the first failure
// as a validation BusinessError.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return NewValidationError("body", err.Error())
	}

	fe := fieldErrs[0]
	return NewValidationError(fe.Field(), describeFieldError(fe))
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "min":
		if fe.Param() == "1" {
			return "must not be empty"
		}
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "task_status":
		allowed := make([]string, len(task.Statuses))
		for i, st := range task.Statuses {
			allowed[i] = string(st)
		}
		return fmt.Sprintf("unknown status %q, expected one of: %s", fe.Value(), strings.Join(allowed, ", "))
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}

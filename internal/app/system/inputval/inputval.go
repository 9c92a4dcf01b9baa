// Package inputval validates request payload structs using struct tags and
// returns ordered, field-level error messages ready for the API's
// {"errors":[…]} envelope.
//
// Rules come from go-playground/validator tags; the optional `label` tag
// names the field in messages and the optional `param` tag sets the wire
// name reported to clients:
//
//	type registerInput struct {
//	    Name string `validate:"required" label:"Name" param:"name"`
//	}
package inputval

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FieldError is one validation failure.
type FieldError struct {
	Param string
	Msg   string
}

// Result collects validation failures in declaration order.
type Result struct {
	Errors []FieldError
}

// HasErrors reports whether any rule failed.
func (r Result) HasErrors() bool { return len(r.Errors) > 0 }

// First returns the first failure message, or "".
func (r Result) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Msg
}

// Validate checks v (a struct or pointer to struct) against its tags.
func Validate(v any) Result {
	err := validate.Struct(v)
	if err == nil {
		return Result{}
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Result{Errors: []FieldError{{Msg: "Invalid input"}}}
	}

	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	res := Result{}
	for _, fe := range verrs {
		label, param := fieldNames(t, fe.StructField())
		res.Errors = append(res.Errors, FieldError{Param: param, Msg: message(fe, label)})
	}
	return res
}

func fieldNames(t reflect.Type, field string) (label, param string) {
	label = field
	param = strings.ToLower(field)
	if sf, ok := t.FieldByName(field); ok {
		if l := sf.Tag.Get("label"); l != "" {
			label = l
		}
		if p := sf.Tag.Get("param"); p != "" {
			param = p
		} else if j := strings.Split(sf.Tag.Get("json"), ",")[0]; j != "" && j != "-" {
			param = j
		}
	}
	return label, param
}

func message(fe validator.FieldError, label string) string {
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return "Please include a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	case "url":
		return label + " must be a valid URL"
	default:
		return label + " is invalid"
	}
}

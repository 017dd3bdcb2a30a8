package schema

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/litescript/ls-across/internal/normalize"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonName)
		if err := RegisterCustomValidators(v); err != nil {
			panic(err)
		}
		validate = v
	})
	return validate
}

// RegisterCustomValidators adds the "ra" and "dec" range tags.
func RegisterCustomValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("ra", validateRA); err != nil {
		return err
	}
	return v.RegisterValidation("dec", validateDec)
}

func validateRA(fl validator.FieldLevel) bool {
	ra := fl.Field().Float()
	return ra >= 0 && ra < 360
}

func validateDec(fl validator.FieldLevel) bool {
	dec := fl.Field().Float()
	return dec >= -90 && dec <= 90
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// Check runs struct-tag validation on v and records each failure in p.
func Check(v any, p *Problems) {
	err := validatorInstance().Struct(v)
	if err == nil {
		return
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		p.Add(err.Error())
		return
	}
	for _, fe := range errs {
		p.Add(describe(fe))
	}
}

// Validate is Check with its own Problems.
func Validate(v any) error {
	var p Problems
	Check(v, &p)
	return p.Err()
}

func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "ra", "dec":
		return normalize.RangeMessage
	case "required":
		return field + " is required."
	case "oneof":
		return field + " should be one of " + strings.ReplaceAll(fe.Param(), " ", ", ") + "."
	case "gt", "gte", "lt", "lte", "min", "max":
		return field + " should be " + comparison(fe.Tag()) + " " + fe.Param() + "."
	default:
		return field + " failed " + fe.Tag() + " check."
	}
}

func comparison(tag string) string {
	switch tag {
	case "gt":
		return "greater than"
	case "gte", "min":
		return "at least"
	case "lt":
		return "less than"
	default:
		return "at most"
	}
}

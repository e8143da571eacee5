// Package validate turns struct-tag validation failures into rejection
// errors carrying a message that can be shown to the client as-is.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrInvalid is matched by every *Error.
var ErrInvalid = errors.New("invalid request")

// Error is a rejected payload. Field is the JSON name of the first offending
// field, empty for payload-level rejections.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Is(target error) bool {
	return target == ErrInvalid
}

// Errorf builds an *Error that is not tied to a struct tag.
func Errorf(field, format string, args ...any) *Error {
	return &Error{Field: field, Message: fmt.Sprintf(format, args...)}
}

var (
	once     sync.Once
	instance *validator.Validate
)

func engine() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return f.Name
			}

			return name
		})

		// Money is compared numerically by tags such as gt=0.
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			d, ok := field.Interface().(decimal.Decimal)
			if !ok {
				return nil
			}

			return d.InexactFloat64()
		}, decimal.Decimal{})

		// id accepts anything uuid.Parse does, including upper case.
		_ = v.RegisterValidation("id", func(fl validator.FieldLevel) bool {
			_, err := uuid.Parse(fl.Field().String())
			return err == nil
		})

		instance = v
	})

	return instance
}

// Struct validates s against its `validate` tags and returns the first
// failure as an *Error, or nil.
func Struct(s any) error {
	err := engine().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validating payload: %w", err)
	}

	return toError(fieldErrs[0])
}

func toError(fe validator.FieldError) *Error {
	field := fe.Field()

	switch fe.Tag() {
	case "required", "required_without":
		return Errorf(field, "%s is required", field)
	case "oneof":
		return Errorf(field, "%s must be one of %s", field, strings.Join(strings.Fields(fe.Param()), ", "))
	case "id", "uuid", "uuid4":
		return Errorf(field, "%s must be a valid id", field)
	case "gt":
		return Errorf(field, "%s must be greater than %s", field, fe.Param())
	case "gte":
		return Errorf(field, "%s must be at least %s", field, fe.Param())
	case "max":
		return Errorf(field, "%s must be at most %s characters", field, fe.Param())
	case "notblank":
		return Errorf(field, "%s must not be blank", field)
	}

	return Errorf(field, "%s is invalid", field)
}

// maxMoney is the first value a NUMERIC(14,2) column cannot hold.
var maxMoney = decimal.New(1, 12)

// Money rejects amounts the store would round or overflow: more than two
// decimal places, or an absolute value of 10^12 or more.
func Money(field string, d decimal.Decimal) error {
	if !d.Equal(d.Round(2)) {
		return Errorf(field, "%s must have at most 2 decimal places", field)
	}

	if d.Abs().GreaterThanOrEqual(maxMoney) {
		return Errorf(field, "%s must be less than %s", field, maxMoney.String())
	}

	return nil
}

package validators

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/energy-keeper/models"
)

// Field names accepted by [RecordValidator.Validate].
const (
	FieldEmail       = "Email"
	FieldPassword    = "Password"
	FieldDisplayName = "DisplayName"
)

// RecordValidator validates request bodies and credential records against
// their struct tags.
type RecordValidator struct {
	validate *validator.Validate
}

func NewRecordValidator() Validator {
	return &RecordValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate implements [Validator]. Supported types are [models.RegisterRequest],
// [models.LoginRequest], [models.StoredUser] and [models.Session], by value
// or pointer. When fields are given only those fields are checked.
func (v *RecordValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateStruct(value, registerFields, fields...)
	case *models.RegisterRequest:
		return v.validateStruct(*value, registerFields, fields...)

	case models.LoginRequest:
		return v.validateStruct(value, loginFields, fields...)
	case *models.LoginRequest:
		return v.validateStruct(*value, loginFields, fields...)

	case models.StoredUser:
		return v.validateRecord(value)
	case *models.StoredUser:
		return v.validateRecord(*value)

	case models.Session:
		return v.validateRecord(value)
	case *models.Session:
		return v.validateRecord(*value)

	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}
}

var (
	registerFields = []string{FieldEmail, FieldPassword, FieldDisplayName}
	loginFields    = []string{FieldEmail, FieldPassword}
)

func (v *RecordValidator) validateStruct(obj any, known []string, fields ...string) error {
	for _, f := range fields {
		if !slices.Contains(known, f) {
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	var err error
	if len(fields) == 0 {
		err = v.validate.Struct(obj)
	} else {
		err = v.validate.StructPartial(obj, fields...)
	}

	return requestError(err)
}

func (v *RecordValidator) validateRecord(obj any) error {
	if err := v.validate.Struct(obj); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	return nil
}

// requestError maps the first failed field to the package sentinel.
func requestError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err
	}

	fe := validationErrors[0]
	switch fe.Field() {
	case FieldEmail:
		return ErrEmptyEmail
	case FieldDisplayName:
		return ErrEmptyDisplayName
	case FieldPassword:
		if fe.Tag() == "min" {
			return ErrShortPassword
		}
		return ErrEmptyPassword
	}

	return err
}

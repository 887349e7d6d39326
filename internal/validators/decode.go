package validators

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/energy-keeper/models"
)

// Persisted records are untrusted: the store may hold values written by an
// older build or edited by hand. The shape structs use pointers so that a
// missing field and an empty one can be told apart.

type storedUserShape struct {
	ID           *string   `json:"id" validate:"required,min=1"`
	Email        *string   `json:"email" validate:"required,min=1"`
	DisplayName  *string   `json:"displayName" validate:"required"`
	PasswordHash *string   `json:"passwordHash" validate:"required,hexadecimal,len=64"`
	Salt         *string   `json:"salt" validate:"required,hexadecimal,len=32"`
	CreatedAt    time.Time `json:"createdAt"`
}

// sessionShape is stricter than a type check: an empty id or email, or a
// createdAt that is not RFC 3339, also counts as no session.
type sessionShape struct {
	ID          *string   `json:"id" validate:"required,min=1"`
	Email       *string   `json:"email" validate:"required,min=1"`
	DisplayName *string   `json:"displayName" validate:"required"`
	CreatedAt   time.Time `json:"createdAt"`
}

var shapeValidator = validator.New()

// DecodeStoredUser decodes one user-list entry. Missing fields, fields of
// the wrong JSON type and malformed hash or salt encodings all yield
// [ErrMalformedRecord].
func DecodeStoredUser(raw []byte) (models.StoredUser, error) {
	var shape storedUserShape
	if err := decodeShape(raw, &shape); err != nil {
		return models.StoredUser{}, err
	}

	return models.StoredUser{
		ID:           *shape.ID,
		Email:        *shape.Email,
		DisplayName:  *shape.DisplayName,
		PasswordHash: *shape.PasswordHash,
		Salt:         *shape.Salt,
		CreatedAt:    shape.CreatedAt,
	}, nil
}

// DecodeSession decodes the session slot. id and email must be non-empty
// strings, displayName must be a string.
func DecodeSession(raw []byte) (models.Session, error) {
	var shape sessionShape
	if err := decodeShape(raw, &shape); err != nil {
		return models.Session{}, err
	}

	return models.Session{
		ID:          *shape.ID,
		Email:       *shape.Email,
		DisplayName: *shape.DisplayName,
		CreatedAt:   shape.CreatedAt,
	}, nil
}

func decodeShape(raw []byte, shape any) error {
	if err := json.Unmarshal(raw, shape); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	if err := shapeValidator.Struct(shape); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	return nil
}

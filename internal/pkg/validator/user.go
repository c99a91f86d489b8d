package validator

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/futig/docqa-backend/internal/entity"
)

const minPasswordLength = 8

// ValidateRegister validates a registration request
func (v *Validator) ValidateRegister(req *entity.RegisterRequest) error {
	if strings.TrimSpace(req.Username) == "" {
		return fmt.Errorf("%w: username", entity.ErrMissingField)
	}
	if req.Password == "" {
		return fmt.Errorf("%w: password", entity.ErrMissingField)
	}
	if len(req.Password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", entity.ErrInvalidParameter, minPasswordLength)
	}
	if req.Email != "" {
		if _, err := mail.ParseAddress(req.Email); err != nil {
			return fmt.Errorf("%w: email", entity.ErrInvalidFormat)
		}
	}

	return nil
}

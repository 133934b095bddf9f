package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/SscSPs/kewat_ledger/internal/apperrors"
	"github.com/go-playground/validator/v10"
)

var (
	validateOnce    sync.Once
	structValidator *validator.Validate
)

// requestValidator shares the binding tags the HTTP layer validates with,
// so requests reaching a service by any path obey the same rules.
func requestValidator() *validator.Validate {
	validateOnce.Do(func() {
		structValidator = validator.New(validator.WithRequiredStructEnabled())
		structValidator.SetTagName("binding")
	})
	return structValidator
}

// validateRequest runs the binding tags of req and wraps failures in apperrors.ErrValidation.
func validateRequest(req any) error {
	err := requestValidator().Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, strings.Join(fields, "; "))
	}
	return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
}

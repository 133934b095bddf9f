package services

import (
	"fmt"

	"github.com/SscSPs/kewat_ledger/internal/apperrors"
)

var (
	ErrSettingsNotFound        = fmt.Errorf("%w: interest settings not configured for group", apperrors.ErrNotFound)
	ErrInvalidSettings         = fmt.Errorf("%w: interest settings must define annualRate and frequency", apperrors.ErrValidation)
	ErrInvalidCode             = fmt.Errorf("%w: invalid invite code", apperrors.ErrNotFound)
	ErrInviteExpired           = fmt.Errorf("%w: invite code has expired", apperrors.ErrExpired)
	ErrInviteAlreadyUsed       = fmt.Errorf("%w: invite code has already been used", apperrors.ErrConflict)
	ErrInvalidStatusTransition = fmt.Errorf("%w: ledger entry is no longer awaiting review", apperrors.ErrConflict)
	ErrMemberNotInGroup        = fmt.Errorf("%w: member does not belong to group", apperrors.ErrValidation)
)

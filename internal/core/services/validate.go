package services

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/custodia-labs/gsearch/internal/core/domain"
)

var descriptorValidator = validator.New(validator.WithRequiredStructEnabled())

// ValidateEngineConfig checks every descriptor and the cache policy.
// The returned states are in configuration order.
func ValidateEngineConfig(cfg domain.EngineConfig) ([]tableState, error) {
	if !cfg.EffectivePersistPolicy().IsValid() {
		return nil, fmt.Errorf("%w: persist policy %q", domain.ErrInvalidInput, cfg.PersistPolicy)
	}

	seen := make(map[string]struct{}, len(cfg.Tables))
	states := make([]tableState, 0, len(cfg.Tables))
	for _, d := range cfg.Tables {
		if err := validateDescriptor(d); err != nil {
			return nil, err
		}
		if _, dup := seen[d.Table]; dup {
			return nil, fmt.Errorf("%w: table %q is configured more than once", domain.ErrInvalidDescriptor, d.Table)
		}
		seen[d.Table] = struct{}{}

		state, err := newTableState(d)
		if err != nil {
			return nil, fmt.Errorf("table %q: %w", d.Table, err)
		}
		states = append(states, state)
	}
	return states, nil
}

func validateDescriptor(d domain.TableDescriptor) error {
	err := descriptorValidator.Struct(d)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Errorf("%w: table %q: field %s failed %s", domain.ErrInvalidDescriptor, d.Table, fe.Field(), fe.Tag())
	}
	return fmt.Errorf("%w: table %q: %v", domain.ErrInvalidDescriptor, d.Table, err)
}

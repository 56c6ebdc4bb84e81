package request

import (
	"errors"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for load construction.
var (
	// ErrWeightIsRequired is returned when a load is created with a non-positive weight.
	ErrWeightIsRequired = errs.NewValueIsRequiredError("weightGrams")
	// ErrVolumeIsInvalid is returned when a load is created with a negative volume.
	ErrVolumeIsInvalid = errs.NewValueIsInvalidError("volumeCm3")
	// ErrLoadIsNotConstructed is returned when using an improperly initialized Load.
	ErrLoadIsNotConstructed = errors.New("Load must be created via NewLoad constructor")
)

// Load is an immutable value object describing the package to be moved:
// weight in grams, volume in cubic centimeters, and a free-text description.
// A zero volume means the client supplied no volume figure; capacity matching
// then skips the volume check.
type Load struct { //nolint:recvcheck //using for validation
	weightGrams int
	volumeCm3   int
	description string
	guard       guard.ConstructorGuard
}

// NewLoad creates a Load. Weight must be positive; volume must be
// non-negative (0 = unknown); the description is optional.
func NewLoad(weightGrams, volumeCm3 int, description string) (Load, error) {
	l := Load{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(l.setWeightGrams(weightGrams), l.setVolumeCm3(volumeCm3)); err != nil {
		return Load{}, err
	}

	l.description = description
	return l, nil
}

// Validate checks if the Load was properly constructed.
func (l Load) Validate() error {
	return l.guard.Validate(ErrLoadIsNotConstructed)
}

// WeightGrams returns the package weight in grams.
func (l Load) WeightGrams() int {
	return l.weightGrams
}

// VolumeCm3 returns the package volume in cubic centimeters, 0 if unknown.
func (l Load) VolumeCm3() int {
	return l.volumeCm3
}

// Description returns the free-text package description.
func (l Load) Description() string {
	return l.description
}

func (l *Load) setWeightGrams(weightGrams int) error {
	if weightGrams <= 0 {
		return ErrWeightIsRequired
	}

	l.weightGrams = weightGrams
	return nil
}

func (l *Load) setVolumeCm3(volumeCm3 int) error {
	if volumeCm3 < 0 {
		return ErrVolumeIsInvalid
	}

	l.volumeCm3 = volumeCm3
	return nil
}

package shared

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrOutOfRange         = errors.New("out of range")
	ErrArithmeticOverflow = errors.New("arithmetic overflow: value exceeds u64")
	ErrPriceOutOfRange    = errors.New("price out of range")
	ErrTickNotFound       = errors.New("tick not found")
)

// SimulationError is returned when a swap simulation stops on a fatal status.
type SimulationError struct {
	Status SimulationStatus
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("swap simulation failed: %s", e.Status)
}

func (e *SimulationError) Unwrap() error {
	if e.Status == SimulationStatusTickNotFound {
		return ErrTickNotFound
	}
	return nil
}

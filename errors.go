package homereturn

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is wrapped by every validation failure. Invalid input is always
	// rejected before any quote source is queried.
	ErrInvalidInput = errors.New("invalid input")

	// ErrRateUnavailable is matched by a RateUnavailableError.
	ErrRateUnavailable = errors.New("historical rate unavailable")

	// ErrLiveRateUnavailable is matched by a LiveRateUnavailableError.
	ErrLiveRateUnavailable = errors.New("live rate unavailable")
)

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// RateUnavailableError reports that no historical rate could be resolved for Pair on a date.
// Err holds the source failure, if any; it is nil when the source simply had no data.
type RateUnavailableError struct {
	Pair Pair
	On   Date
	Err  error
}

func (e *RateUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("no historical %s rate on %s: %v", e.Pair, e.On, e.Err)
	}
	return fmt.Sprintf("no historical %s rate within %d days of %s", e.Pair, maxWindow, e.On)
}

func (e *RateUnavailableError) Is(target error) bool { return target == ErrRateUnavailable }
func (e *RateUnavailableError) Unwrap() error        { return e.Err }

// LiveRateUnavailableError reports that the current quote of Pair could not be resolved.
type LiveRateUnavailableError struct {
	Pair Pair
	Err  error
}

func (e *LiveRateUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("no live %s rate: %v", e.Pair, e.Err)
	}
	return fmt.Sprintf("no live %s rate", e.Pair)
}

func (e *LiveRateUnavailableError) Is(target error) bool { return target == ErrLiveRateUnavailable }
func (e *LiveRateUnavailableError) Unwrap() error        { return e.Err }

// PaymentError identifies the payment that made a calculation fail.
// Index is the position of the payment once sorted by date.
type PaymentError struct {
	Index   int
	Payment Payment
	Err     error
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("payment #%d on %s (%s %s): %v", e.Index+1, e.Payment.Date, e.Payment.Amount, e.Payment.Currency, e.Err)
}

func (e *PaymentError) Unwrap() error { return e.Err }

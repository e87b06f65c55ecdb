package testutil

import "errors"

// ErrSimulated is returned by test doubles standing in for a failing dependency.
var ErrSimulated = errors.New("simulated failure")

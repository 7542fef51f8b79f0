// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cryptoprovider

// Arg names a byte-string argument for boundary checks.
type Arg struct {
	Name  string
	Value []byte
}

// CheckNotNil returns an [*ArgumentError] for the first nil argument.
func CheckNotNil(args ...Arg) error {
	for _, arg := range args {
		if arg.Value == nil {
			return &ArgumentError{Arg: arg.Name}
		}
	}
	return nil
}

// CheckExact requires len(value) == required.
func CheckExact(name string, value []byte, required int) error {
	if len(value) != required {
		return &LengthError{Arg: name, Len: len(value), Required: required, Exact: true}
	}
	return nil
}

// CheckMin requires len(value) >= required.
func CheckMin(name string, value []byte, required int) error {
	if len(value) < required {
		return &LengthError{Arg: name, Len: len(value), Required: required}
	}
	return nil
}

// CheckRange requires lower <= len(value) <= upper.
func CheckRange(name string, value []byte, lower, upper int) error {
	if len(value) < lower || len(value) > upper {
		return &RangeError{Arg: name, Len: len(value), Min: lower, Max: upper}
	}
	return nil
}

// First returns the first non-nil error. Providers use it to run a
// sequence of checks in argument order.
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

type (
	// validatedEnum is a string enumeration following the IsValid convention.
	validatedEnum interface {
		~string
		IsValid() (bool, []error)
	}

	// enumValue is a pflag.Value restricted to a fixed set of names.
	enumValue[T validatedEnum] struct {
		target   *T
		options  []T
		typeName string
	}

	// secondsValue is a pflag.Value accepting fractional seconds.
	secondsValue struct {
		target *time.Duration
	}

	// optionsValue is implemented by flag values with a closed set of options.
	// Completion and Fig generation use it to advertise suggestions.
	optionsValue interface {
		Options() []string
	}
)

func newEnumValue[T validatedEnum](target *T, def T, options []T, typeName string) *enumValue[T] {
	*target = def
	return &enumValue[T]{target: target, options: options, typeName: typeName}
}

func (e *enumValue[T]) String() string { return string(*e.target) }

func (e *enumValue[T]) Set(s string) error {
	v := T(strings.ToLower(strings.TrimSpace(s)))
	if ok, errs := v.IsValid(); !ok {
		return errors.Join(errs...)
	}
	*e.target = v
	return nil
}

func (e *enumValue[T]) Type() string { return e.typeName }

func (e *enumValue[T]) Options() []string {
	out := make([]string, len(e.options))
	for i, o := range e.options {
		out[i] = string(o)
	}
	return out
}

func newSecondsValue(target *time.Duration) *secondsValue {
	return &secondsValue{target: target}
}

func (s *secondsValue) String() string {
	return strconv.FormatFloat(s.target.Seconds(), 'f', -1, 64)
}

func (s *secondsValue) Set(raw string) error {
	secs, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || secs < 0 || math.IsInf(secs, 0) || math.IsNaN(secs) {
		return fmt.Errorf("%q is not a non-negative number of seconds", raw)
	}
	if secs > math.MaxInt64/float64(time.Second) {
		return fmt.Errorf("%q seconds is out of range", raw)
	}
	*s.target = time.Duration(secs * float64(time.Second))
	return nil
}

func (s *secondsValue) Type() string { return "seconds" }

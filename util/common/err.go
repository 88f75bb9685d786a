// Package common provides small error helpers shared across the app.
package common

import (
	"errors"
	"fmt"
)

func NewErrorf(format string, a ...any) error {
	msg := fmt.Sprintf(format, a...)
	return errors.New(msg)
}

func NewError(a ...any) error {
	msg := fmt.Sprintln(a...)
	return errors.New(msg)
}

// Combine merges multiple errors into one, skipping nils.
func Combine(errs ...error) error {
	errorStrings := make([]string, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			errorStrings = append(errorStrings, err.Error())
		}
	}
	if len(errorStrings) == 0 {
		return nil
	}
	msg := errorStrings[0]
	for _, s := range errorStrings[1:] {
		msg += "; " + s
	}
	return errors.New(msg)
}

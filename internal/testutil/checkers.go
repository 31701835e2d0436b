// Copyright 2020 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package testutil

import (
	"errors"
	"fmt"

	. "gopkg.in/check.v1"

	"github.com/canonical/go-params"
)

type isTrueChecker struct {
	*CheckerInfo
}

// IsTrue determines whether a boolean value is true.
var IsTrue Checker = &isTrueChecker{
	&CheckerInfo{Name: "IsTrue", Params: []string{"value"}}}

func (checker *isTrueChecker) Check(params []interface{}, names []string) (result bool, error string) {
	value, ok := params[0].(bool)
	if !ok {
		return false, names[0] + " is not a bool"
	}
	return value, ""
}

type isFalseChecker struct {
	*CheckerInfo
}

// IsFalse determines whether a boolean value is false.
var IsFalse Checker = &isFalseChecker{
	&CheckerInfo{Name: "IsFalse", Params: []string{"value"}}}

func (checker *isFalseChecker) Check(params []interface{}, names []string) (result bool, error string) {
	value, ok := params[0].(bool)
	if !ok {
		return false, names[0] + " is not a bool"
	}
	return !value, ""
}

type errorIsChecker struct {
	*CheckerInfo
}

// ErrorIs determines whether any error in a chain has a specific
// value, using errors.Is
//
// For example:
//
//	c.Check(err, ErrorIs, io.EOF)
var ErrorIs Checker = &errorIsChecker{
	&CheckerInfo{Name: "ErrorIs", Params: []string{"value", "expected"}}}

func (checker *errorIsChecker) Check(params []interface{}, names []string) (result bool, errStr string) {
	err, ok := params[0].(error)
	if !ok {
		return false, "value is not an error"
	}

	expected, ok := params[1].(error)
	if !ok {
		return false, "expected is not an error"
	}

	return errors.Is(err, expected), ""
}

type errorAsChecker struct {
	*CheckerInfo
}

// ErrorAs determines whether any error in a chain has a specific
// type, using errors.As.
//
// For example:
//
//	var e *wire.FormatError
//	c.Check(err, ErrorAs, &e)
//	c.Check(e.Index, Equals, 0)
var ErrorAs Checker = &errorAsChecker{
	&CheckerInfo{Name: "ErrorAs", Params: []string{"value", "target"}}}

func (checker *errorAsChecker) Check(params []interface{}, names []string) (result bool, errStr string) {
	err, ok := params[0].(error)
	if !ok {
		return false, "value is not an error"
	}

	return errors.As(err, params[1]), ""
}

type hasReasonChecker struct {
	*CheckerInfo
}

// HasReason determines whether an error is a *params.Error raised by the
// crypto library with the specified reason. Unlike ErrorIs, it doesn't
// match related reasons.
//
// For example:
//
//	c.Check(err, HasReason, params.ErrValueTooLarge)
var HasReason Checker = &hasReasonChecker{
	&CheckerInfo{Name: "HasReason", Params: []string{"value", "reason"}}}

func (checker *hasReasonChecker) Check(p []interface{}, names []string) (result bool, errStr string) {
	err, ok := p[0].(error)
	if !ok {
		return false, "value is not an error"
	}
	reason, ok := p[1].(params.Reason)
	if !ok {
		return false, "reason is not a params.Reason"
	}

	var e *params.Error
	if !errors.As(err, &e) {
		return false, fmt.Sprintf("value is not a *params.Error (%T)", err)
	}
	if e.Lib != params.LibCrypto {
		return false, fmt.Sprintf("unexpected library %v", e.Lib)
	}
	return e.Reason == reason, ""
}

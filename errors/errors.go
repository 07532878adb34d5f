/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package errors

import (
	"errors"
	"fmt"

	"dirpx.dev/dmx/apis"
)

// Common sentinel errors
var (
	// ErrUndefinedMember is matched by reads of unknown properties and
	// instance calls of unknown methods.
	ErrUndefinedMember = errors.New("dmx: undefined member")

	// ErrUndefinedStaticMember is matched by receiver-less calls of methods
	// that are unknown or not registered as static.
	ErrUndefinedStaticMember = errors.New("dmx: undefined static member")

	// ErrInvalidExtension is matched when an extension source is neither
	// callable nor resolvable to a callable.
	ErrInvalidExtension = errors.New("dmx: invalid extension")

	// ErrNilReceiver is returned when a member is accessed through a nil value.
	ErrNilReceiver = errors.New("dmx: nil receiver")

	// ErrNotCallable is returned when a value cannot be adapted to apis.Callable.
	ErrNotCallable = errors.New("dmx: value is not callable")

	// ErrUnassignable is returned when a value cannot be stored in a native field.
	ErrUnassignable = errors.New("dmx: value is not assignable to field")
)

// UndefinedMemberError represents an access to a member with no descriptor
// for the exact owner type, or a static call of a non-static method.
type UndefinedMemberError struct {
	Owner  string
	Name   string
	Kind   apis.MemberKind
	Static bool
}

func (e *UndefinedMemberError) Error() string {
	switch {
	case e.Kind == apis.PropertyKind:
		return fmt.Sprintf("dmx: undefined property: %s", e.Name)
	case e.Static:
		return fmt.Sprintf("dmx: undefined static method: %s()", e.Name)
	default:
		return fmt.Sprintf("dmx: undefined method: %s()", e.Name)
	}
}

func (e *UndefinedMemberError) Is(target error) bool {
	if e.Static {
		return target == ErrUndefinedStaticMember
	}
	return target == ErrUndefinedMember
}

// InvalidExtensionError represents an extension source that could not be
// turned into a callable. Err carries the underlying cause, if any.
type InvalidExtensionError struct {
	Source any
	Err    error
}

func (e *InvalidExtensionError) Error() string {
	msg := "dmx: extend requires a callable or a source that yields one"
	if s, ok := e.Source.(string); ok {
		msg += fmt.Sprintf(" (source %q)", s)
	} else if e.Source != nil {
		msg += fmt.Sprintf(" (got %T)", e.Source)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InvalidExtensionError) Is(target error) bool {
	return target == ErrInvalidExtension
}

func (e *InvalidExtensionError) Unwrap() error {
	return e.Err
}

// Helper functions for creating errors

// NewUndefinedProperty creates an UndefinedMemberError for a property read.
func NewUndefinedProperty(owner, name string) error {
	return &UndefinedMemberError{Owner: owner, Name: name, Kind: apis.PropertyKind}
}

// NewUndefinedMethod creates an UndefinedMemberError for an instance call.
func NewUndefinedMethod(owner, name string) error {
	return &UndefinedMemberError{Owner: owner, Name: name, Kind: apis.MethodKind}
}

// NewUndefinedStaticMethod creates an UndefinedMemberError for a static call.
func NewUndefinedStaticMethod(owner, name string) error {
	return &UndefinedMemberError{Owner: owner, Name: name, Kind: apis.MethodKind, Static: true}
}

// NewInvalidExtension creates an InvalidExtensionError.
func NewInvalidExtension(src any, cause error) error {
	return &InvalidExtensionError{Source: src, Err: cause}
}

// IsUndefinedMember checks if an error is an undefined member error
func IsUndefinedMember(err error) bool {
	return errors.Is(err, ErrUndefinedMember)
}

// IsUndefinedStaticMember checks if an error is an undefined static member error
func IsUndefinedStaticMember(err error) bool {
	return errors.Is(err, ErrUndefinedStaticMember)
}

// IsInvalidExtension checks if an error is an invalid extension error
func IsInvalidExtension(err error) bool {
	return errors.Is(err, ErrInvalidExtension)
}

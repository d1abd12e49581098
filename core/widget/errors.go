/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package widget

import (
	"errors"
)

// ErrInitialization matches every InitializationError with errors.Is.
var ErrInitialization = errors.New("unable to initialize table")

// InitializationError reports construction inputs a widget cannot display.
type InitializationError struct {
	Reason string
}

func (e *InitializationError) Error() string {
	return ErrInitialization.Error() + ": " + e.Reason
}

// Is reports whether target is ErrInitialization.
func (e *InitializationError) Is(target error) bool {
	return target == ErrInitialization
}

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

/*
Package errors defines the failure taxonomy of dmx.

Three conditions are surfaced to callers of dynamic members:

  - UndefinedMemberError: a property or method name with no descriptor for
    the exact owner type. Matches ErrUndefinedMember, or
    ErrUndefinedStaticMember for receiver-less calls.
  - InvalidExtensionError: an extension source that is neither callable nor
    resolvable to a callable. Matches ErrInvalidExtension and unwraps to the
    loader's cause.

Errors returned by user-supplied factories are never wrapped: they reach the
caller exactly as returned, so a failure inside a dynamic member looks the same
as a failure inside a native one.

Use errors.Is with the sentinels, or the Is* helpers:

	if dmxerrors.IsUndefinedMember(err) {
	    // fall back
	}
*/
package errors

// Copyright (c) 2025 Andrew
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package util

// Unpack assigns the elements of a slice to the given variables in order.
// Extra elements are ignored; missing ones leave the variable untouched.
func Unpack[T any](toUnpack []T, unpackInto ...*T) {
	n := len(toUnpack)
	if len(unpackInto) < n {
		n = len(unpackInto)
	}
	for i := 0; i < n; i++ {
		*unpackInto[i] = toUnpack[i]
	}
}

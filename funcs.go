// Copyright 2023 Vekworks, Inc.
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

package vek

// Funcs is the element capability set: how values of T are
// constructed, duplicated, relocated, and released. It is bound once,
// when the Vector is created, and applies to every element the Vector
// ever holds. The zero Funcs describes a trivial element type whose
// values own nothing; plain assignment then covers every capability
// and nothing can fail.
//
// A slot with no live element is dead, and a dead slot always holds
// the zero value of T; the Vector zeroes a slot whenever an element
// dies there. The capability functions must uphold this: a failed
// Init, Copy, or Move leaves its destination dead (zero, with any
// partially acquired resources released), and a failed Move leaves
// its source live. Breaking the contract is diagnosed by builds with
// -tags vekcheck.
type Funcs[T any] struct {
	// Init constructs the default value of T in the dead slot at p.
	// A nil Init means the zero value is the default value and
	// construction never fails.
	Init func(p *T) error

	// Copy duplicates the live value at src into the dead slot at
	// dst, leaving src live. A nil Copy duplicates by plain
	// assignment and never fails.
	Copy func(dst, src *T) error

	// Move relocates the live value at src into the dead slot at
	// dst, leaving src dead. A nil Move relocates by assignment plus
	// zeroing the source and never fails. A non-nil Move is presumed
	// fallible, which makes storage migration duplicate instead of
	// relocate (see byMove) so that a failure cannot cost elements.
	Move func(dst, src *T) error

	// Destroy releases whatever the live value at p owns; the Vector
	// zeroes the slot afterwards. A nil Destroy means elements own
	// nothing. Destroy must be a no-op on the zero value: slots
	// abandoned dead by a failed update are destroyed again later.
	// Copy and Move must likewise accept a zero-value source (yielding
	// a dead destination), since a shell left inside the live range by
	// a failed update is migrated like any other slot.
	Destroy func(p *T)

	// NoCopy marks T move-only. The Vector never duplicates
	// move-only elements, and Clone and CopyFrom panic.
	NoCopy bool
}

// byMove reports how storage migration transports elements into a new
// block: by relocation when it cannot fail (nil Move) or when
// duplication is impossible (NoCopy), and by duplication otherwise,
// so that a failed migration leaves the original elements intact.
func (fn *Funcs[T]) byMove() bool {
	return fn.Move == nil || fn.NoCopy
}

// construct builds an element in the dead slot at p: with ctor when
// one is given, with the bound Init otherwise.
func (v *Vector[T]) construct(p *T, ctor func(*T) error) error {
	if ctor == nil {
		ctor = v.fn.Init
	}
	if ctor == nil {
		return nil // a dead slot already holds the zero value
	}
	return ctor(p)
}

// duplicate copy-constructs the live value at src into the dead slot
// at dst. Duplicating move-only elements is a caller bug.
func (v *Vector[T]) duplicate(dst, src *T) error {
	if v.fn.NoCopy {
		panic("vek: duplicate of move-only element")
	}
	if v.fn.Copy == nil {
		*dst = *src
		return nil
	}
	return v.fn.Copy(dst, src)
}

// relocate move-constructs the live value at src into the dead slot
// at dst, leaving src dead.
func (v *Vector[T]) relocate(dst, src *T) error {
	if v.fn.Move == nil {
		*dst = *src
		var dead T
		*src = dead
		return nil
	}
	return v.fn.Move(dst, src)
}

// destroy releases the element at p and leaves the slot dead.
// Destroying a dead slot is a tolerated no-op.
func (v *Vector[T]) destroy(p *T) {
	if v.fn.Destroy != nil {
		v.fn.Destroy(p)
	}
	var dead T
	*p = dead
}

// destroySpan destroys every element in s, front to back.
func (v *Vector[T]) destroySpan(s []T) {
	for i := range s {
		v.destroy(&s[i])
	}
}

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

import (
	"strconv"

	"github.com/vekworks/vek/internal/ints"
	"github.com/vekworks/vek/slots"
)

// exists to tickle the "go vet" copylocks check
type noCopy struct{}

func (n noCopy) Lock()   {}
func (n noCopy) Unlock() {}

// Vector is a contiguous growable sequence of T.
//
// The zero Vector is empty, allocation-free, and ready to use with
// the trivial capability set. A Vector must not be copied by value:
// the copy would share ownership of the storage block (go vet flags
// such copies). Duplicate with Clone, transfer with Take or Swap.
type Vector[T any] struct {
	_   noCopy
	mem slots.Block[T]
	n   int // live elements occupy mem slots [0, n)
	fn  Funcs[T]
}

// New returns an empty Vector with the trivial capability set:
// size 0, capacity 0, no allocation.
func New[T any]() *Vector[T] {
	return &Vector[T]{}
}

// NewFuncs returns an empty Vector with fn bound as the element
// capability set.
func NewFuncs[T any](fn Funcs[T]) *Vector[T] {
	return &Vector[T]{fn: fn}
}

// Make returns a Vector of n zero-valued live elements and capacity
// exactly n, with the trivial capability set (the zero value is the
// default value, so nothing can fail). A negative n panics. For a
// sized vector of elements with a custom capability set, compose
// NewFuncs and Resize.
func Make[T any](n int) *Vector[T] {
	if n < 0 {
		panic("vek: Make(" + strconv.Itoa(n) + ") with negative size")
	}
	return &Vector[T]{mem: slots.Alloc[T](n), n: n}
}

// Take move-constructs a Vector from src: it steals src's storage and
// size in O(1), never failing and never touching elements. src stays
// valid and empty (size 0, capacity 0) with its capability set
// intact.
func Take[T any](src *Vector[T]) *Vector[T] {
	v := &Vector[T]{fn: src.fn}
	v.mem.Swap(&src.mem)
	v.n, src.n = src.n, 0
	return v
}

// Len returns the number of live elements.
func (v *Vector[T]) Len() int {
	return v.n
}

// Cap returns the number of slots the current storage block holds.
func (v *Vector[T]) Cap() int {
	return v.mem.Cap()
}

// At returns the value of element i; i must be inside [0, Len()).
// The result is a shallow reading copy: for element types with a
// bound Destroy, whatever it references stays owned by the vector.
func (v *Vector[T]) At(i int) T {
	if i < 0 || i >= v.n {
		panic("vek: At(" + strconv.Itoa(i) + ") out of range [0:" + strconv.Itoa(v.n) + "]")
	}
	return *v.mem.Ptr(i)
}

// View returns the live elements [0, Len()) as a slice sharing the
// vector's storage; it is the iteration surface (index it, range over
// it, take element addresses). The view stays valid until the next
// operation that changes size or capacity. Whether a view is used
// read-only is the caller's discipline, as with any Go slice.
func (v *Vector[T]) View() []T {
	return v.mem.Slice(0, v.n)
}

// Set replaces the live element at i with x, destroying the old value
// first; the vector takes ownership of x. Set fails only via a
// fallible custom Move; the slot is then left dead and x is destroyed
// (basic guarantee).
func (v *Vector[T]) Set(i int, x T) error {
	if i < 0 || i >= v.n {
		panic("vek: Set(" + strconv.Itoa(i) + ") out of range [0:" + strconv.Itoa(v.n) + "]")
	}
	defer v.audit()
	p := v.mem.Ptr(i)
	v.destroy(p)
	err := v.relocate(p, &x)
	if err != nil {
		v.destroy(&x)
	}
	return err
}

// Swap exchanges the contents of v and o — storage, size, and
// capability set — in O(1) without touching elements. It never fails.
// Swap is also how move-assignment is spelled: afterwards v holds o's
// old sequence and o holds v's.
func (v *Vector[T]) Swap(o *Vector[T]) {
	v.mem.Swap(&o.mem)
	v.n, o.n = o.n, v.n
	v.fn, o.fn = o.fn, v.fn
}

// Clone returns a duplicate of v with capacity exactly Len() (no
// spare), each element duplicated in order. If one duplication fails,
// the partial clone is destroyed and freed and the element's error is
// returned; no new vector escapes (strong guarantee). Clone of
// move-only elements panics.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	if v.fn.NoCopy {
		panic("vek: Clone of move-only elements")
	}
	w := NewFuncs(v.fn)
	w.mem = slots.Alloc[T](v.n)
	for i := 0; i < v.n; i++ {
		if err := v.duplicate(w.mem.Ptr(i), v.mem.Ptr(i)); err != nil {
			v.destroySpan(w.mem.Slice(0, i))
			w.mem.Free()
			return nil, err
		}
	}
	w.n = v.n
	w.audit()
	return w, nil
}

// CopyFrom copy-assigns the contents of rhs to v; afterwards (on
// success) v holds duplicates of rhs's elements and its own capability
// set is unchanged. Assigning a vector to itself is a no-op. CopyFrom
// of move-only elements panics.
//
// When rhs does not fit in v's storage, a complete duplicate is built
// aside and swapped in, so a failure leaves v untouched (strong
// guarantee). Otherwise the assignment happens in place — replace the
// overlapping prefix, then destroy the surplus tail or duplicate the
// missing one — and a failure leaves v valid but partially updated,
// with one dead slot where the failed element would be and the size
// unchanged (basic guarantee).
func (v *Vector[T]) CopyFrom(rhs *Vector[T]) error {
	if v.fn.NoCopy {
		panic("vek: CopyFrom of move-only elements")
	}
	if v == rhs {
		return nil
	}
	defer v.audit()
	if rhs.n > v.Cap() {
		return v.assignFresh(rhs)
	}
	return v.assignInPlace(rhs)
}

// assignFresh builds a complete duplicate of rhs in a new block, then
// destroys v's elements and swaps the block in.
func (v *Vector[T]) assignFresh(rhs *Vector[T]) error {
	dst := slots.Alloc[T](rhs.n)
	for i := 0; i < rhs.n; i++ {
		if err := v.duplicate(dst.Ptr(i), rhs.mem.Ptr(i)); err != nil {
			v.destroySpan(dst.Slice(0, i))
			dst.Free()
			return err
		}
	}
	v.destroySpan(v.mem.Slice(0, v.n))
	v.mem.Swap(&dst)
	dst.Free()
	v.n = rhs.n
	return nil
}

// assignInPlace reuses v's storage: the overlapping prefix is replaced
// element by element (destroy, then duplicate into the dead slot), and
// the tails reconciled. The size updates only on full success.
func (v *Vector[T]) assignInPlace(rhs *Vector[T]) error {
	both := ints.Min(v.n, rhs.n)
	for i := 0; i < both; i++ {
		p := v.mem.Ptr(i)
		v.destroy(p)
		if err := v.duplicate(p, rhs.mem.Ptr(i)); err != nil {
			return err
		}
	}
	if rhs.n < v.n {
		v.destroySpan(v.mem.Slice(rhs.n, v.n))
	} else {
		for i := v.n; i < rhs.n; i++ {
			if err := v.duplicate(v.mem.Ptr(i), rhs.mem.Ptr(i)); err != nil {
				v.destroySpan(v.mem.Slice(v.n, i))
				return err
			}
		}
	}
	v.n = rhs.n
	return nil
}

// Clear destroys all live elements. The size becomes 0; the capacity
// is kept.
func (v *Vector[T]) Clear() {
	defer v.audit()
	v.destroySpan(v.mem.Slice(0, v.n))
	v.n = 0
}

// Release destroys all live elements and frees the storage block,
// leaving v valid and empty. Release is the explicit destructor for
// element types that own resources; a vector of trivial elements may
// simply be dropped instead.
func (v *Vector[T]) Release() {
	defer v.audit()
	v.destroySpan(v.mem.Slice(0, v.n))
	v.n = 0
	v.mem.Free()
}

// PopBack destroys the last live element and shrinks the size by one.
// PopBack on an empty vector is a caller bug and panics.
func (v *Vector[T]) PopBack() {
	if v.n == 0 {
		panic("vek: PopBack on empty vector")
	}
	defer v.audit()
	v.n--
	v.destroy(v.mem.Ptr(v.n))
}

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

// grown returns the capacity for an append that found the vector
// full: max(1, 2*n), so repeated appends reallocate O(log n) times.
func grown(n int) int {
	return ints.Max(1, 2*n)
}

// Reserve ensures capacity for at least n elements. When n <= Cap()
// it is a strict no-op: capacity, size, and element addresses are all
// unchanged. Otherwise it allocates a block of exactly n slots,
// migrates the live elements into it, and swaps storage.
//
// Migration duplicates elements whenever a fallible Move is bound and
// T is copyable: a failure then destroys everything already built in
// the new block, frees it, and leaves v untouched (strong guarantee).
// When migration relocates instead, a failed custom Move leaves the
// sources already relocated dead, their values destroyed with the
// abandoned block (basic guarantee).
func (v *Vector[T]) Reserve(n int) error {
	if n <= v.Cap() {
		return nil
	}
	defer v.audit()
	return v.regrow(n)
}

// Resize changes the number of live elements to n. Growing reserves
// exactly n slots (no doubling) and constructs default values in the
// new tail [Len(), n); shrinking destroys [n, Len()). A negative n
// panics.
//
// On failure the size is unchanged: a migration failure behaves as in
// Reserve, and an Init failure destroys the tail elements this call
// had constructed so far — though the capacity may already have grown
// (basic guarantee).
func (v *Vector[T]) Resize(n int) error {
	if n < 0 {
		panic("vek: Resize(" + strconv.Itoa(n) + ") with negative size")
	}
	defer v.audit()
	switch {
	case n > v.n:
		if err := v.Reserve(n); err != nil {
			return err
		}
		for i := v.n; i < n; i++ {
			if err := v.construct(v.mem.Ptr(i), nil); err != nil {
				v.destroySpan(v.mem.Slice(v.n, i))
				return err
			}
		}
		v.n = n
	case n < v.n:
		v.destroySpan(v.mem.Slice(n, v.n))
		v.n = n
	}
	return nil
}

// regrow replaces v's storage with a block of n > Cap() slots,
// migrating all live elements into it.
func (v *Vector[T]) regrow(n int) error {
	dst := slots.Alloc[T](n)
	if err := v.migrate(&dst, 0, 0, v.n); err != nil {
		dst.Free()
		return err
	}
	v.commit(&dst)
	return nil
}

// migrate builds the live elements v[from:to] into dst slots
// [at, at+to-from), transporting per the capability rule (see
// Funcs.byMove). If one element fails, migrate destroys every element
// it already built in dst and returns the element's error verbatim;
// v's storage is never modified here beyond killing relocated
// sources.
func (v *Vector[T]) migrate(dst *slots.Block[T], at, from, to int) error {
	if !v.fn.byMove() {
		for i := from; i < to; i++ {
			if err := v.duplicate(dst.Ptr(at+i-from), v.mem.Ptr(i)); err != nil {
				v.destroySpan(dst.Slice(at, at+i-from))
				return err
			}
		}
		return nil
	}
	if v.fn.Move == nil {
		// trivial relocation: bulk copy, then kill the sources
		src := v.mem.Slice(from, to)
		copy(dst.Slice(at, at+to-from), src)
		var dead T
		for i := range src {
			src[i] = dead
		}
		return nil
	}
	for i := from; i < to; i++ {
		if err := v.fn.Move(dst.Ptr(at+i-from), v.mem.Ptr(i)); err != nil {
			v.destroySpan(dst.Slice(at, at+i-from))
			return err
		}
	}
	return nil
}

// commit retires the old storage after a successful migration into
// dst: on the duplicating path the original elements are destroyed
// (relocated ones are already dead), then the blocks are swapped and
// the old one freed.
func (v *Vector[T]) commit(dst *slots.Block[T]) {
	if !v.fn.byMove() {
		v.destroySpan(v.mem.Slice(0, v.n))
	}
	v.mem.Swap(dst)
	dst.Free()
}

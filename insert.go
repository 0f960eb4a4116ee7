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

	"github.com/vekworks/vek/slots"
)

// PushBack appends x in amortized O(1); the vector takes ownership of
// x. With spare capacity the element lands directly in the first dead
// slot. A full vector grows to max(1, 2*Len()) slots: x is built
// first at its final slot in the new block, the old elements migrate
// after it, and storage is swapped.
//
// If PushBack fails, x is destroyed and the vector keeps its size.
// A failure during growth destroys everything already built in the
// new block — including x once it has moved in — before returning,
// leaving v untouched on the duplicating migration path (strong
// guarantee; see Reserve for the relocating-path caveat).
func (v *Vector[T]) PushBack(x T) error {
	defer v.audit()
	err := v.pushBack(&x)
	if err != nil {
		v.destroy(&x)
	}
	return err
}

func (v *Vector[T]) pushBack(x *T) error {
	if v.n < v.Cap() {
		if err := v.relocate(v.mem.Ptr(v.n), x); err != nil {
			return err
		}
		v.n++
		return nil
	}
	dst := slots.Alloc[T](grown(v.n))
	if err := v.relocate(dst.Ptr(v.n), x); err != nil {
		dst.Free()
		return err
	}
	if err := v.migrate(&dst, 0, 0, v.n); err != nil {
		v.destroy(dst.Ptr(v.n))
		dst.Free()
		return err
	}
	v.commit(&dst)
	v.n++
	return nil
}

// EmplaceBack appends an element constructed in place by ctor and
// returns its address, valid until the next size or capacity change.
// A nil ctor constructs the default value. The ctor gets a dead slot
// and must either build a live value there or leave the slot dead and
// return an error; in the latter case the vector is unchanged (strong
// guarantee, with the usual relocating-migration caveat during growth
// — see Reserve). Growth works as in PushBack: the new element is
// built before the old ones migrate, so the ctor observes the
// pre-call sequence.
func (v *Vector[T]) EmplaceBack(ctor func(*T) error) (*T, error) {
	defer v.audit()
	if v.n < v.Cap() {
		p := v.mem.Ptr(v.n)
		if err := v.construct(p, ctor); err != nil {
			return nil, err
		}
		v.n++
		return p, nil
	}
	dst := slots.Alloc[T](grown(v.n))
	p := dst.Ptr(v.n)
	if err := v.construct(p, ctor); err != nil {
		dst.Free()
		return nil, err
	}
	if err := v.migrate(&dst, 0, 0, v.n); err != nil {
		v.destroy(p)
		dst.Free()
		return nil, err
	}
	v.commit(&dst)
	v.n++
	return p, nil
}

// Insert places x at position i and shifts [i, Len()) one slot toward
// the end; O(Len()-i). The vector takes ownership of x. Positions
// outside [0, Len()] panic; i == Len() appends.
//
// If Insert fails, x is destroyed. With spare capacity only a
// fallible custom Move can fail: before the shift begins the vector
// is unchanged; afterwards it is valid but partially shifted, one
// slot dead and the size already grown (basic guarantee). A full
// vector grows exactly as Emplace describes.
func (v *Vector[T]) Insert(i int, x T) error {
	if i < 0 || i > v.n {
		panic("vek: Insert(" + strconv.Itoa(i) + ") out of range [0:" + strconv.Itoa(v.n) + "]")
	}
	defer v.audit()
	err := v.insert(i, &x)
	if err != nil {
		v.destroy(&x)
	}
	return err
}

func (v *Vector[T]) insert(i int, x *T) error {
	if v.n < v.Cap() {
		if i == v.n {
			if err := v.relocate(v.mem.Ptr(i), x); err != nil {
				return err
			}
			v.n++
			return nil
		}
		return v.openAt(i, x)
	}
	return v.regrowAt(i, func(p *T) error { return v.relocate(p, x) })
}

// Emplace constructs an element in place at position i, shifting
// [i, Len()) one slot toward the end, and returns the element's
// address (valid until the next size or capacity change); a nil ctor
// constructs the default value. Positions outside [0, Len()] panic;
// i == Len() appends like EmplaceBack.
//
// With spare capacity and i < Len(), the element is built in a
// temporary before anything shifts, so a ctor reading the vector —
// emplacing a value derived from an existing element — observes the
// pre-call sequence. A ctor failure there leaves the vector untouched
// (strong guarantee); a failed custom Move during the shift leaves it
// valid but partially shifted (basic guarantee, as in Insert).
//
// A full vector grows to max(1, 2*Len()) slots in three phases:
// migrate [0, i), construct at slot i, migrate [i, Len()) one slot
// further. A failure in any phase destroys every element already
// built in the new block — the migrated prefix included — before the
// error returns, so on the duplicating migration path the original
// sequence is untouched (strong guarantee; see Reserve for the
// relocating-path caveat). Note that here the ctor runs after the
// prefix has migrated: on the relocating path it must not read the
// vector.
func (v *Vector[T]) Emplace(i int, ctor func(*T) error) (*T, error) {
	if i < 0 || i > v.n {
		panic("vek: Emplace(" + strconv.Itoa(i) + ") out of range [0:" + strconv.Itoa(v.n) + "]")
	}
	defer v.audit()
	if v.n < v.Cap() {
		if i == v.n {
			p := v.mem.Ptr(i)
			if err := v.construct(p, ctor); err != nil {
				return nil, err
			}
			v.n++
			return p, nil
		}
		var tmp T
		if err := v.construct(&tmp, ctor); err != nil {
			return nil, err
		}
		if err := v.openAt(i, &tmp); err != nil {
			v.destroy(&tmp)
			return nil, err
		}
		return v.mem.Ptr(i), nil
	}
	if err := v.regrowAt(i, ctor); err != nil {
		return nil, err
	}
	return v.mem.Ptr(i), nil
}

// openAt opens slot i inside the live range and relocates *x into it:
// the last element moves into the first dead slot, [i, last) shifts
// one slot right back to front, and x lands in the gap. The size
// grows as soon as the occupied slot count does, so a failed custom
// Move mid-dance leaves a valid, already-grown, partially shifted
// sequence with one dead slot.
func (v *Vector[T]) openAt(i int, x *T) error {
	if err := v.relocate(v.mem.Ptr(v.n), v.mem.Ptr(v.n-1)); err != nil {
		return err
	}
	v.n++
	for j := v.n - 2; j > i; j-- {
		if err := v.relocate(v.mem.Ptr(j), v.mem.Ptr(j-1)); err != nil {
			return err
		}
	}
	return v.relocate(v.mem.Ptr(i), x)
}

// regrowAt grows a full vector around a new element at slot i, built
// by ctor into the replacement block. Any failure destroys everything
// already built in that block — including the migrated prefix when
// the construction at slot i fails — before the error returns.
func (v *Vector[T]) regrowAt(i int, ctor func(*T) error) error {
	dst := slots.Alloc[T](grown(v.n))
	if err := v.migrate(&dst, 0, 0, i); err != nil {
		dst.Free()
		return err
	}
	if err := v.construct(dst.Ptr(i), ctor); err != nil {
		v.destroySpan(dst.Slice(0, i))
		dst.Free()
		return err
	}
	if err := v.migrate(&dst, i+1, i, v.n); err != nil {
		v.destroySpan(dst.Slice(0, i+1))
		dst.Free()
		return err
	}
	v.commit(&dst)
	v.n++
	return nil
}

// Erase removes element i and shifts [i+1, Len()) one slot left;
// O(Len()-i). Positions outside [0, Len()) panic.
//
// The erased element is destroyed first; the shift then relocates
// each successor into the slot before it and the size shrinks by one,
// leaving the vacated last slot dead. Erase fails only via a fallible
// custom Move: the erased value is already gone, and the sequence is
// left valid but partially shifted around one dead slot, size
// unchanged (basic guarantee).
func (v *Vector[T]) Erase(i int) error {
	if i < 0 || i >= v.n {
		panic("vek: Erase(" + strconv.Itoa(i) + ") out of range [0:" + strconv.Itoa(v.n) + "]")
	}
	defer v.audit()
	v.destroy(v.mem.Ptr(i))
	for j := i + 1; j < v.n; j++ {
		if err := v.relocate(v.mem.Ptr(j-1), v.mem.Ptr(j)); err != nil {
			return err
		}
	}
	v.n--
	return nil
}

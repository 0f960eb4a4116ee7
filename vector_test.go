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

package vek_test

import (
	"testing"

	"golang.org/x/exp/slices"

	"github.com/vekworks/vek"
)

func push(t *testing.T, v *vek.Vector[int], vals ...int) {
	t.Helper()
	for _, x := range vals {
		if err := v.PushBack(x); err != nil {
			t.Fatalf("PushBack(%d): %v", x, err)
		}
	}
}

func want(t *testing.T, v *vek.Vector[int], vals ...int) {
	t.Helper()
	if v.Len() != len(vals) {
		t.Fatalf("Len() = %d, want %d", v.Len(), len(vals))
	}
	if got := v.View(); !slices.Equal(got, vals) {
		t.Fatalf("contents %v, want %v", got, vals)
	}
}

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: no panic", name)
		}
	}()
	fn()
}

func TestZeroValue(t *testing.T) {
	var v vek.Vector[int]
	if v.Len() != 0 || v.Cap() != 0 {
		t.Fatalf("zero Vector: len %d cap %d", v.Len(), v.Cap())
	}
	if got := v.View(); len(got) != 0 {
		t.Fatalf("zero Vector view: %v", got)
	}
	push(t, &v, 1)
	want(t, &v, 1)
	v.Release()
	want(t, &v)

	w := vek.New[int]()
	if w.Len() != 0 || w.Cap() != 0 {
		t.Fatalf("New(): len %d cap %d", w.Len(), w.Cap())
	}
}

func TestMake(t *testing.T) {
	v := vek.Make[int](4)
	want(t, v, 0, 0, 0, 0)
	if v.Cap() != 4 {
		t.Fatalf("Make(4) capacity %d, want exactly 4", v.Cap())
	}
	if w := vek.Make[string](0); w.Len() != 0 || w.Cap() != 0 {
		t.Fatalf("Make(0): len %d cap %d", w.Len(), w.Cap())
	}
}

// Repeated appends from empty must produce the doubling capacity
// sequence 1, 2, 4, 8, ... with exactly one reallocation per change.
func TestGrowthSequence(t *testing.T) {
	v := vek.New[int]()
	var caps []int
	reallocs := 0
	var base *int
	for i := 0; i < 16; i++ {
		push(t, v, i)
		caps = append(caps, v.Cap())
		if p := &v.View()[0]; p != base {
			base = p
			reallocs++
		}
	}
	wantCaps := []int{1, 2, 4, 4, 8, 8, 8, 8, 16, 16, 16, 16, 16, 16, 16, 16}
	if !slices.Equal(caps, wantCaps) {
		t.Errorf("capacity sequence %v, want %v", caps, wantCaps)
	}
	if reallocs != 5 {
		t.Errorf("%d reallocations, want 5", reallocs)
	}
	want(t, v, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15)
}

func TestPushPop(t *testing.T) {
	v := vek.New[int]()
	push(t, v, 1, 2, 3)
	want(t, v, 1, 2, 3)
	if got := []int{v.Cap()}; !slices.Equal(got, []int{4}) {
		t.Errorf("capacity after 3 pushes: %d", v.Cap())
	}
	v.PopBack()
	want(t, v, 1, 2)
	v.PopBack()
	v.PopBack()
	want(t, v)
	if v.Cap() != 4 {
		t.Errorf("PopBack changed capacity to %d", v.Cap())
	}
}

func TestReserve(t *testing.T) {
	v := vek.New[int]()
	if err := v.Reserve(10); err != nil {
		t.Fatal(err)
	}
	if v.Cap() != 10 || v.Len() != 0 {
		t.Fatalf("Reserve(10) on empty: len %d cap %d", v.Len(), v.Cap())
	}

	push(t, v, 1, 2, 3)
	base := &v.View()[0]
	// not exceeding the capacity is a strict no-op
	for _, n := range []int{0, 3, 10, -5} {
		if err := v.Reserve(n); err != nil {
			t.Fatal(err)
		}
		if v.Cap() != 10 {
			t.Fatalf("Reserve(%d) changed capacity to %d", n, v.Cap())
		}
		if &v.View()[0] != base {
			t.Fatalf("Reserve(%d) moved the elements", n)
		}
	}

	if err := v.Reserve(11); err != nil {
		t.Fatal(err)
	}
	if v.Cap() != 11 {
		t.Fatalf("Reserve(11) gave capacity %d, want exactly 11", v.Cap())
	}
	want(t, v, 1, 2, 3)
}

func TestResize(t *testing.T) {
	v := vek.New[int]()
	push(t, v, 7, 8)
	if err := v.Resize(5); err != nil {
		t.Fatal(err)
	}
	want(t, v, 7, 8, 0, 0, 0)
	if v.Cap() != 5 {
		t.Errorf("Resize(5) capacity %d, want exactly 5", v.Cap())
	}
	if err := v.Resize(1); err != nil {
		t.Fatal(err)
	}
	want(t, v, 7)
	if v.Cap() != 5 {
		t.Errorf("shrinking Resize freed storage: capacity %d", v.Cap())
	}
	if err := v.Resize(1); err != nil {
		t.Fatal(err)
	}
	want(t, v, 7)
	if err := v.Resize(0); err != nil {
		t.Fatal(err)
	}
	want(t, v)
}

func TestAtSetView(t *testing.T) {
	v := vek.New[int]()
	push(t, v, 10, 20, 30)
	if got := v.At(1); got != 20 {
		t.Errorf("At(1) = %d", got)
	}
	if err := v.Set(1, 21); err != nil {
		t.Fatal(err)
	}
	want(t, v, 10, 21, 30)
	// the view writes through
	v.View()[0] = 11
	want(t, v, 11, 21, 30)
}

func TestInsert(t *testing.T) {
	v := vek.New[int]()
	push(t, v, 1, 2, 3)
	if err := v.Insert(1, 99); err != nil {
		t.Fatal(err)
	}
	want(t, v, 1, 99, 2, 3)
	if err := v.Insert(0, -1); err != nil {
		t.Fatal(err)
	}
	want(t, v, -1, 1, 99, 2, 3)
	if err := v.Insert(v.Len(), 4); err != nil {
		t.Fatal(err)
	}
	want(t, v, -1, 1, 99, 2, 3, 4)

	// into an empty vector
	w := vek.New[int]()
	if err := w.Insert(0, 5); err != nil {
		t.Fatal(err)
	}
	want(t, w, 5)
}

func TestErase(t *testing.T) {
	v := vek.New[int]()
	push(t, v, 1, 99, 2, 3)
	if err := v.Erase(0); err != nil {
		t.Fatal(err)
	}
	want(t, v, 99, 2, 3)
	if err := v.Erase(1); err != nil {
		t.Fatal(err)
	}
	want(t, v, 99, 3)
	if err := v.Erase(v.Len() - 1); err != nil {
		t.Fatal(err)
	}
	want(t, v, 99)
	if err := v.Erase(0); err != nil {
		t.Fatal(err)
	}
	want(t, v)
}

func TestCloneIndependence(t *testing.T) {
	a := vek.New[int]()
	push(t, a, 1, 2, 3)
	b, err := a.Clone()
	if err != nil {
		t.Fatal(err)
	}
	if b.Cap() != a.Len() {
		t.Errorf("clone capacity %d, want exactly %d", b.Cap(), a.Len())
	}
	push(t, b, 4)
	want(t, a, 1, 2, 3)
	want(t, b, 1, 2, 3, 4)
	if err := a.Set(0, -1); err != nil {
		t.Fatal(err)
	}
	want(t, a, -1, 2, 3)
	want(t, b, 1, 2, 3, 4)

	empty := vek.New[string]()
	ec, err := empty.Clone()
	if err != nil {
		t.Fatal(err)
	}
	if ec.Len() != 0 || ec.Cap() != 0 {
		t.Errorf("clone of empty: len %d cap %d", ec.Len(), ec.Cap())
	}
}

func TestTake(t *testing.T) {
	a := vek.New[int]()
	push(t, a, 1, 2, 3)
	b := vek.Take(a)
	if a.Len() != 0 || a.Cap() != 0 {
		t.Fatalf("moved-from vector: len %d cap %d", a.Len(), a.Cap())
	}
	want(t, b, 1, 2, 3)
	// the source stays usable
	push(t, a, 9)
	want(t, a, 9)
	want(t, b, 1, 2, 3)
}

func TestSwap(t *testing.T) {
	a := vek.New[int]()
	b := vek.New[int]()
	push(t, a, 1, 2)
	push(t, b, 3, 4, 5)
	a.Swap(b)
	want(t, a, 3, 4, 5)
	want(t, b, 1, 2)
	a.Swap(a)
	want(t, a, 3, 4, 5)
}

func TestCopyFrom(t *testing.T) {
	// rhs does not fit: fresh storage
	a := vek.New[int]()
	push(t, a, 1)
	big := vek.New[int]()
	push(t, big, 5, 6, 7, 8)
	if err := a.CopyFrom(big); err != nil {
		t.Fatal(err)
	}
	want(t, a, 5, 6, 7, 8)

	// rhs fits, shorter: prefix replaced, tail destroyed
	small := vek.New[int]()
	push(t, small, 9)
	if err := a.CopyFrom(small); err != nil {
		t.Fatal(err)
	}
	want(t, a, 9)
	if a.Cap() < 4 {
		t.Errorf("in-place assignment shrank the storage: cap %d", a.Cap())
	}

	// rhs fits, longer: prefix replaced, tail extended
	three := vek.New[int]()
	push(t, three, 10, 11, 12)
	if err := a.CopyFrom(three); err != nil {
		t.Fatal(err)
	}
	want(t, a, 10, 11, 12)

	// the copy is independent
	push(t, three, 13)
	want(t, a, 10, 11, 12)

	// self-assignment is a no-op
	if err := a.CopyFrom(a); err != nil {
		t.Fatal(err)
	}
	want(t, a, 10, 11, 12)

	// assigning the empty vector clears in place
	if err := a.CopyFrom(vek.New[int]()); err != nil {
		t.Fatal(err)
	}
	want(t, a)
}

// Inserting a value read out of the vector itself must behave as if
// the value had been saved aside first.
func TestSelfReferentialInsert(t *testing.T) {
	v := vek.New[int]()
	push(t, v, 1, 2, 3)
	if err := v.Insert(0, v.At(2)); err != nil {
		t.Fatal(err)
	}
	want(t, v, 3, 1, 2, 3)
	if err := v.Insert(2, v.At(0)); err != nil {
		t.Fatal(err)
	}
	want(t, v, 3, 1, 3, 2, 3)
}

func TestEmplace(t *testing.T) {
	v := vek.New[int]()
	p, err := v.EmplaceBack(func(p *int) error { *p = 41; return nil })
	if err != nil {
		t.Fatal(err)
	}
	*p++
	want(t, v, 42)

	// nil ctor constructs the default value
	if _, err := v.EmplaceBack(nil); err != nil {
		t.Fatal(err)
	}
	want(t, v, 42, 0)

	p, err = v.Emplace(1, func(p *int) error { *p = 7; return nil })
	if err != nil {
		t.Fatal(err)
	}
	if *p != 7 {
		t.Fatalf("Emplace returned pointer to %d", *p)
	}
	want(t, v, 42, 7, 0)

	// a ctor reading the vector observes the pre-call sequence
	// even when the insertion point is in the middle
	if err := v.Reserve(8); err != nil {
		t.Fatal(err)
	}
	_, err = v.Emplace(0, func(p *int) error { *p = v.At(2); return nil })
	if err != nil {
		t.Fatal(err)
	}
	want(t, v, 0, 42, 7, 0)
}

func TestClearRelease(t *testing.T) {
	v := vek.New[int]()
	push(t, v, 1, 2, 3)
	v.Clear()
	want(t, v)
	if v.Cap() == 0 {
		t.Error("Clear freed the storage")
	}
	push(t, v, 4)
	want(t, v, 4)
	v.Release()
	want(t, v)
	if v.Cap() != 0 {
		t.Errorf("Release kept capacity %d", v.Cap())
	}
	push(t, v, 5)
	want(t, v, 5)
}

func TestContractPanics(t *testing.T) {
	v := vek.New[int]()
	push(t, v, 1, 2, 3)
	expectPanic(t, "At(-1)", func() { v.At(-1) })
	expectPanic(t, "At(len)", func() { v.At(v.Len()) })
	expectPanic(t, "Set(len)", func() { v.Set(v.Len(), 0) })
	expectPanic(t, "Insert(len+1)", func() { v.Insert(v.Len()+1, 0) })
	expectPanic(t, "Insert(-1)", func() { v.Insert(-1, 0) })
	expectPanic(t, "Emplace(-1)", func() { v.Emplace(-1, nil) })
	expectPanic(t, "Erase(len)", func() { v.Erase(v.Len()) })
	expectPanic(t, "Make(-1)", func() { vek.Make[int](-1) })
	expectPanic(t, "Resize(-1)", func() { v.Resize(-1) })
	expectPanic(t, "PopBack on empty", func() {
		w := vek.New[int]()
		w.PopBack()
	})
}

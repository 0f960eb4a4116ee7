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

// Package vektest audits element lifecycles inside a vek.Vector under
// test. Its tracked element type gives every construction a distinct
// identity, so a test can prove that each constructed element is
// destroyed exactly once, that failure paths release exactly what they
// built, and that no destroyed element is ever used again. The
// Tracker can also arm one-shot failures of the Init, Copy, and Move
// capabilities to drive the container down its error paths.
package vektest

import (
	"errors"
	"fmt"
	"io"
	"runtime/debug"
	"strings"
	"testing"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/vekworks/vek"
)

// ErrInjected is the error armed failures return.
var ErrInjected = errors.New("injected element failure")

// Elem is a tracked element: an int payload plus a hidden identity
// registered with the Tracker that constructed it. The zero Elem is
// dead.
type Elem struct {
	V  int
	id uint64
}

// Tracker is single-test element-lifecycle bookkeeping. It hands out
// capability sets wired to itself; every construction registers a
// fresh identity in a live table and every destruction retires one.
// A Tracker is not safe for concurrent use.
type Tracker struct {
	// TrackStacks, when set, records the construction stack of every
	// element made afterwards, so Dump can report where a leaked
	// element was born.
	TrackStacks bool

	live map[uint64]element
	next uint64

	inits, copies, moves, destroys int
	failInit, failCopy, failMove   int

	misuse []string
}

type element struct {
	val   int
	stack string
}

// NewTracker returns a Tracker with no live elements.
func NewTracker() *Tracker {
	return &Tracker{live: make(map[uint64]element)}
}

// Funcs returns the tracked capability set: Init constructs a default
// element under a fresh identity, Copy mints a new identity for the
// duplicate, Move transfers the identity and kills the source, and
// Destroy retires the identity. Counters record every successful
// call. Destroying a dead (zero) Elem is a counted-for-nothing no-op,
// as the container contract requires.
func (tr *Tracker) Funcs() vek.Funcs[Elem] {
	return vek.Funcs[Elem]{
		Init:    tr.init,
		Copy:    tr.copy,
		Move:    tr.move,
		Destroy: tr.destroy,
	}
}

// MoveOnlyFuncs is Funcs with the elements marked move-only:
// duplication panics and storage migration always relocates.
func (tr *Tracker) MoveOnlyFuncs() vek.Funcs[Elem] {
	return vek.Funcs[Elem]{
		Init:    tr.init,
		Move:    tr.move,
		Destroy: tr.destroy,
		NoCopy:  true,
	}
}

// New constructs a live tracked element holding v, counted as a
// construction; it is the way to mint arguments for PushBack, Insert,
// and Set. An element the vector never takes must be destroyed by the
// test, or Check will report it leaked.
func (tr *Tracker) New(v int) Elem {
	e := Elem{V: v, id: tr.register(v)}
	tr.inits++
	return e
}

// FailInitAfter arms the n-th subsequent Init call (n >= 1) to fail
// with ErrInjected, leaving its destination dead. The failure fires
// once; earlier and later calls succeed.
func (tr *Tracker) FailInitAfter(n int) { tr.failInit = n }

// FailCopyAfter arms the n-th subsequent Copy call to fail, as
// FailInitAfter does for Init.
func (tr *Tracker) FailCopyAfter(n int) { tr.failCopy = n }

// FailMoveAfter arms the n-th subsequent Move call to fail, as
// FailInitAfter does for Init. The failed Move leaves its destination
// dead and its source live and intact.
func (tr *Tracker) FailMoveAfter(n int) { tr.failMove = n }

// Live returns the number of live tracked elements.
func (tr *Tracker) Live() int { return len(tr.live) }

// Inits returns the number of successful default constructions,
// elements made with New included.
func (tr *Tracker) Inits() int { return tr.inits }

// Copies returns the number of successful duplications.
func (tr *Tracker) Copies() int { return tr.copies }

// Moves returns the number of successful relocations.
func (tr *Tracker) Moves() int { return tr.moves }

// Destroys returns the number of live elements destroyed; destroys of
// dead slots are not counted.
func (tr *Tracker) Destroys() int { return tr.destroys }

// Misuses returns the contract violations observed so far: an element
// destroyed twice, or a copy or move whose source was dead.
func (tr *Tracker) Misuses() []string { return tr.misuse }

// Check fails t if any element is still live or any misuse was
// recorded. Call it after the vector under test has been released,
// typically via t.Cleanup.
func (tr *Tracker) Check(t *testing.T) {
	t.Helper()
	for _, m := range tr.misuse {
		t.Errorf("element misuse: %s", m)
	}
	if tr.Live() != 0 {
		var sb strings.Builder
		tr.Dump(&sb)
		t.Errorf("%d live elements leaked:\n%s", tr.Live(), sb.String())
	}
}

// Dump writes one line per live element to w, identity and payload,
// followed by the construction stack for elements made while
// TrackStacks was set.
func (tr *Tracker) Dump(w io.Writer) {
	ids := maps.Keys(tr.live)
	slices.Sort(ids)
	for i, id := range ids {
		e := tr.live[id]
		fmt.Fprintf(w, "#%d. elem id=%d value=%d\n", i+1, id, e.val)
		if e.stack != "" {
			fmt.Fprintf(w, "constructed at:\n%s\n", e.stack)
		}
	}
}

// Reset forgets all live elements, counters, misuse records, and
// armed failures, so one Tracker can audit several scenarios in
// sequence.
func (tr *Tracker) Reset() {
	maps.Clear(tr.live)
	tr.inits, tr.copies, tr.moves, tr.destroys = 0, 0, 0, 0
	tr.failInit, tr.failCopy, tr.failMove = 0, 0, 0
	tr.misuse = nil
}

func (tr *Tracker) register(v int) uint64 {
	tr.next++
	e := element{val: v}
	if tr.TrackStacks {
		e.stack = string(debug.Stack())
	}
	tr.live[tr.next] = e
	return tr.next
}

func (tr *Tracker) alive(id uint64) bool {
	_, ok := tr.live[id]
	return ok
}

func (tr *Tracker) flag(format string, args ...any) {
	tr.misuse = append(tr.misuse, fmt.Sprintf(format, args...))
}

// fire decrements an armed countdown and reports whether this call is
// the one chosen to fail.
func (tr *Tracker) fire(n *int) bool {
	if *n <= 0 {
		return false
	}
	*n--
	return *n == 0
}

func (tr *Tracker) init(p *Elem) error {
	if tr.fire(&tr.failInit) {
		return ErrInjected
	}
	*p = Elem{id: tr.register(0)}
	tr.inits++
	return nil
}

func (tr *Tracker) copy(dst, src *Elem) error {
	if src.id == 0 {
		// a shell left inside the live range by a failed update;
		// duplicating it yields another shell
		*dst = Elem{}
		return nil
	}
	if !tr.alive(src.id) {
		tr.flag("Copy from dead source (id=%d)", src.id)
	}
	if tr.fire(&tr.failCopy) {
		return ErrInjected
	}
	*dst = Elem{V: src.V, id: tr.register(src.V)}
	tr.copies++
	return nil
}

func (tr *Tracker) move(dst, src *Elem) error {
	if src.id == 0 {
		*dst = Elem{}
		return nil
	}
	if !tr.alive(src.id) {
		tr.flag("Move from dead source (id=%d)", src.id)
	}
	if tr.fire(&tr.failMove) {
		return ErrInjected
	}
	*dst = *src
	*src = Elem{}
	tr.moves++
	return nil
}

func (tr *Tracker) destroy(p *Elem) {
	if p.id == 0 {
		return // dead slot, tolerated
	}
	if !tr.alive(p.id) {
		tr.flag("double Destroy (id=%d)", p.id)
		return
	}
	delete(tr.live, p.id)
	tr.destroys++
}

// Values reads back the payloads of v's live elements in order.
func Values(v *vek.Vector[Elem]) []int {
	view := v.View()
	out := make([]int, len(view))
	for i := range view {
		out[i] = view[i].V
	}
	return out
}

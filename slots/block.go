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

// Package slots implements raw, fixed-capacity element storage.
//
// A Block is a span of slots, each sized and aligned for one element.
// The Block tracks no element lifetimes: it never initializes, copies,
// or releases element values, and it does not know which of its slots
// (if any) are occupied. Deciding which slots hold live values, and
// running whatever setup or teardown those values need, is entirely
// the owner's job. Freeing a Block drops the memory without touching
// its contents.
package slots

import "strconv"

// Block is an exclusively-owned span of capacity-many slots.
// The zero Block is the null block: capacity 0, no memory.
//
// A Block has exactly one owner at a time; the owner moves it
// with Swap and relinquishes it with Free. Blocks must not be
// copied by value while owned.
type Block[T any] struct {
	mem []T
}

// Alloc returns a Block with capacity n.
//
// Alloc(0) returns the null block without allocating.
// A negative n is a caller bug and panics. If the memory
// cannot be obtained, the runtime's allocation failure
// propagates; it is never masked here.
func Alloc[T any](n int) Block[T] {
	if n < 0 {
		panic("slots: Alloc(" + strconv.Itoa(n) + ") with negative capacity")
	}
	if n == 0 {
		return Block[T]{}
	}
	return Block[T]{mem: make([]T, n)}
}

// Cap returns the slot count.
func (b *Block[T]) Cap() int {
	return len(b.mem)
}

// Ptr returns the address of slot i.
// The index must satisfy 0 <= i < Cap(); anything else panics.
func (b *Block[T]) Ptr(i int) *T {
	if i < 0 || i >= len(b.mem) {
		panic("slots: Ptr(" + strconv.Itoa(i) + ") out of range [0:" + strconv.Itoa(len(b.mem)) + "]")
	}
	return &b.mem[i]
}

// Slice returns a window over slots [i, j).
// The bounds must satisfy 0 <= i <= j <= Cap(); j == Cap() is the
// "one past the last slot" bound. Anything else panics.
//
// The window aliases the Block's memory and is valid until Free.
func (b *Block[T]) Slice(i, j int) []T {
	if i < 0 || j < i || j > len(b.mem) {
		panic("slots: Slice(" + strconv.Itoa(i) + ", " + strconv.Itoa(j) + ") out of range [0:" + strconv.Itoa(len(b.mem)) + "]")
	}
	return b.mem[i:j:j]
}

// Swap exchanges the storage of b and o in O(1). It never fails.
func (b *Block[T]) Swap(o *Block[T]) {
	b.mem, o.mem = o.mem, b.mem
}

// Free releases the Block's memory reference without touching its
// contents and leaves b null. Freeing the null block is a no-op.
func (b *Block[T]) Free() {
	b.mem = nil
}

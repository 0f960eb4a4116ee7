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

//go:build vekcheck

package vek

import (
	"reflect"
	"strconv"

	"github.com/vekworks/vek/internal/ints"
)

// audit runs on every exit from a mutating operation when built with
// -tags vekcheck (and is an empty stub otherwise). It panics if the
// size left the [0, Cap()] range or if a dead slot does not hold the
// zero value; the latter means an element Funcs broke its contract —
// most often a failed Init, Copy, or Move that did not leave its
// destination dead.
func (v *Vector[T]) audit() {
	if v.n != ints.Clamp(v.n, 0, v.mem.Cap()) {
		panic("vek: size " + strconv.Itoa(v.n) + " outside [0, " + strconv.Itoa(v.mem.Cap()) + "]")
	}
	var dead T
	tail := v.mem.Slice(v.n, v.mem.Cap())
	for i := range tail {
		if !reflect.DeepEqual(tail[i], dead) {
			panic("vek: dead slot " + strconv.Itoa(v.n+i) + " is not the zero value")
		}
	}
}

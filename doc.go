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

// Package vek implements a generic, contiguous, growable sequence
// container with explicit element lifetime management.
//
// A Vector owns one raw storage block (see the slots package) plus a
// count of live elements occupying slots [0, Len()). Slots at and
// beyond Len() are allocated but hold no element. The Vector alone
// constructs and releases elements inside its block; the storage layer
// never does. How elements are constructed, duplicated, relocated, and
// released is described once per element type by a Funcs value bound
// at construction time. For element types that own no resources the
// zero Funcs suffices and every operation is a plain memory move.
//
// Every fallible element operation reports failure as an error, which
// the Vector returns verbatim. Mutating operations document one of two
// outcomes for such a failure: a strong guarantee, meaning the vector
// is observably unchanged, or a basic guarantee, meaning the vector
// remains valid (live slots destroyable, size within capacity) but may
// hold a partially updated sequence. In either case nothing already
// constructed is leaked: elements built in a replacement block that
// cannot be committed are released before the error returns.
//
// Misusing the API is not an error but a bug, and panics: indexing
// outside the live range, PopBack on an empty vector, or duplicating
// move-only elements.
//
// A Vector is not safe for concurrent use. Building with -tags vekcheck
// recompiles every mutating operation with a full invariant audit on
// exit, for debugging element Funcs that break their contract.
package vek

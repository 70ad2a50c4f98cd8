/*
 * MinIO Cloud Storage, (C) 2020 MinIO, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package jiffy is an incremental JSON parsing library for
// memory-constrained environments. It exposes three coupled pieces:
//
//   - Parser, a byte-at-a-time, event-emitting recognizer backed by an
//     explicit, caller-owned state stack. It never allocates.
//   - Tree, a two-pass builder that turns a complete input buffer into an
//     immutable value tree sized exactly from a prior scan pass.
//   - Writer, a push builder that emits well-formed JSON through a write
//     callback, using the mirror image of Parser's state machine to
//     enforce structural validity.
//
// All three share one discipline: working memory is caller-controlled or
// precomputed before any byte is written, and structural validity is
// enforced by an explicit array-backed state stack rather than recursion.
package jiffy

// NewTreeFromString is a convenience wrapper around NewTree for callers
// holding a string rather than a []byte.
func NewTreeFromString(s string) (*Tree, error) {
	return NewTree([]byte(s))
}

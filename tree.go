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

package jiffy

import "sort"

// valueRec is one slot of a Tree's value arena. Its a/b fields are
// reinterpreted by Type: for Number/String they are a byte offset and
// length into Tree.bytes; for Array they are an offset and element count
// into Tree.arrRefs; for Object they are an offset and pair count into
// Tree.objRefs (each pair occupying two consecutive slots, key then value).
type valueRec struct {
	typ  Type
	a, b uint32
}

// Value is a read-only handle into a Tree. It is valid only as long as the
// owning Tree is reachable; it holds no allocation of its own.
type Value struct {
	tree *Tree
	idx  int32
}

// Type returns the value's tag.
func (v Value) Type() Type { return v.tree.recs[v.idx].typ }

// NumberBytes returns the original byte sequence of a Number value. It
// reports false if v is not a Number.
func (v Value) NumberBytes() ([]byte, bool) {
	r := v.tree.recs[v.idx]
	if r.typ != TypeNumber {
		return nil, false
	}
	return v.tree.bytes[r.a : r.a+r.b], true
}

// NumberBytesUnsafe returns the byte sequence of a Number value without
// checking its type. Behavior is undefined if v is not a Number.
func (v Value) NumberBytesUnsafe() []byte {
	r := v.tree.recs[v.idx]
	return v.tree.bytes[r.a : r.a+r.b]
}

// StringBytes returns the decoded byte sequence of a String value. It
// reports false if v is not a String.
func (v Value) StringBytes() ([]byte, bool) {
	r := v.tree.recs[v.idx]
	if r.typ != TypeString {
		return nil, false
	}
	return v.tree.bytes[r.a : r.a+r.b], true
}

// StringBytesUnsafe returns the byte sequence of a String value without
// checking its type. Behavior is undefined if v is not a String.
func (v Value) StringBytesUnsafe() []byte {
	r := v.tree.recs[v.idx]
	return v.tree.bytes[r.a : r.a+r.b]
}

// ArraySize returns the element count of an Array value, or 0 if v is not
// an Array.
func (v Value) ArraySize() int {
	r := v.tree.recs[v.idx]
	if r.typ != TypeArray {
		return 0
	}
	return int(r.b)
}

// ArrayGet returns the i-th element of an Array value. It reports false if
// v is not an Array or i is out of range.
func (v Value) ArrayGet(i int) (Value, bool) {
	r := v.tree.recs[v.idx]
	if r.typ != TypeArray || i < 0 || uint32(i) >= r.b {
		return Value{}, false
	}
	return Value{tree: v.tree, idx: v.tree.arrRefs[int(r.a)+i]}, true
}

// ArrayGetUnsafe returns the i-th element of an Array value without
// bounds or type checking.
func (v Value) ArrayGetUnsafe(i int) Value {
	r := v.tree.recs[v.idx]
	return Value{tree: v.tree, idx: v.tree.arrRefs[int(r.a)+i]}
}

// ObjectSize returns the pair count of an Object value, or 0 if v is not
// an Object.
func (v Value) ObjectSize() int {
	r := v.tree.recs[v.idx]
	if r.typ != TypeObject {
		return 0
	}
	return int(r.b)
}

// ObjectGetKey returns the i-th pair's key of an Object value. It reports
// false if v is not an Object or i is out of range.
func (v Value) ObjectGetKey(i int) (Value, bool) {
	r := v.tree.recs[v.idx]
	if r.typ != TypeObject || i < 0 || uint32(i) >= r.b {
		return Value{}, false
	}
	return Value{tree: v.tree, idx: v.tree.objRefs[int(r.a)+2*i]}, true
}

// ObjectGetKeyUnsafe returns the i-th pair's key without bounds or type
// checking.
func (v Value) ObjectGetKeyUnsafe(i int) Value {
	r := v.tree.recs[v.idx]
	return Value{tree: v.tree, idx: v.tree.objRefs[int(r.a)+2*i]}
}

// ObjectGetValue returns the i-th pair's value of an Object value. It
// reports false if v is not an Object or i is out of range.
func (v Value) ObjectGetValue(i int) (Value, bool) {
	r := v.tree.recs[v.idx]
	if r.typ != TypeObject || i < 0 || uint32(i) >= r.b {
		return Value{}, false
	}
	return Value{tree: v.tree, idx: v.tree.objRefs[int(r.a)+2*i+1]}, true
}

// ObjectGetValueUnsafe returns the i-th pair's value without bounds or
// type checking.
func (v Value) ObjectGetValueUnsafe(i int) Value {
	r := v.tree.recs[v.idx]
	return Value{tree: v.tree, idx: v.tree.objRefs[int(r.a)+2*i+1]}
}

// Tree is an immutable JSON value tree built in two parser passes: a scan
// pass that counts exactly how much storage is needed, and a parse pass
// that fills three precisely-sized slices with no further growth. This
// stands in for the base design's single contiguous allocation — Go's
// garbage-collected slices can't literally be one malloc split by hand,
// but each of the three is `make`'d exactly once at its final size, so the
// "no resizing, no reallocation" guarantee still holds.
type Tree struct {
	recs    []valueRec
	arrRefs []int32
	objRefs []int32
	bytes   []byte
	root    int32
}

// Root returns the tree's single top-level value. It reports false only
// for a tree with no values, which NewTree never produces (an input with
// no value fails during parsing instead).
func (t *Tree) Root() (Value, bool) {
	if t.root < 0 {
		return Value{}, false
	}
	return Value{tree: t, idx: t.root}, true
}

type aryRow struct {
	ary, val, seq int32
}

type objRow struct {
	obj, key, val, seq int32
}

// scanStackDepth is a cheap pre-scan (independent of Parser) that tracks
// '{'/'[' nesting, skipping escaped quotes inside strings, to size a
// parser stack without a second full parse. It reports false if brackets
// are unbalanced.
func scanStackDepth(buf []byte) (int, bool) {
	depth, maxDepth := 0, 0
	inString, escaped := false, false
	for _, b := range buf {
		if inString {
			switch {
			case escaped:
				escaped = false
			case b == '\\':
				escaped = true
			case b == '"':
				inString = false
			}
			continue
		}
		switch b {
		case '"':
			inString = true
		case '{', '[':
			depth++
			if depth > maxDepth {
				maxDepth = depth
			}
		case '}', ']':
			depth--
			if depth < 0 {
				return 0, false
			}
		}
	}
	return maxDepth, depth == 0
}

// NewTree parses buf into a Tree, pre-scanning it to size an internal
// parser stack automatically. Use NewTreeWithStack to supply one directly
// and skip that pre-scan.
func NewTree(buf []byte) (*Tree, error) {
	maxDepth, ok := scanStackDepth(buf)
	if !ok {
		return nil, &Error{Code: CodeTreeStackScanFailed}
	}
	stack := make([]State, 2*maxDepth+4)
	return NewTreeWithStack(buf, stack)
}

// NewTreeWithStack parses buf into a Tree using the supplied parser state
// stack for both the scan and parse passes.
func NewTreeWithStack(buf []byte, stack []State) (*Tree, error) {
	var numValues, numBytes, numArrayElements, numPairs uint64
	var depth, maxDepth int

	scan := &Handler{
		OnNull:  func() { numValues++ },
		OnTrue:  func() { numValues++ },
		OnFalse: func() { numValues++ },
		OnStringStart: func() { numValues++ },
		OnStringByte:  func(byte) { numBytes++ },
		OnNumberStart: func() { numValues++ },
		OnNumberByte:  func(byte) { numBytes++ },
		OnArrayStart: func() {
			numValues++
			depth++
			if depth > maxDepth {
				maxDepth = depth
			}
		},
		OnArrayEnd:          func() { depth-- },
		OnArrayElementStart: func() { numArrayElements++ },
		OnObjectStart: func() {
			numValues++
			depth++
			if depth > maxDepth {
				maxDepth = depth
			}
		},
		OnObjectEnd:      func() { depth-- },
		OnObjectKeyStart: func() { numPairs++ },
	}
	if err := Parse(scan, stack, buf, nil); err != nil {
		return nil, err
	}

	recs := make([]valueRec, numValues)
	arrRefs := make([]int32, numArrayElements)
	objRefs := make([]int32, 2*numPairs)
	content := make([]byte, numBytes)
	aryRows := make([]aryRow, 0, numArrayElements)
	objRows := make([]objRow, 0, numPairs)
	containerStack := make([]int32, 0, maxDepth)

	var cursor, byteCursor, seq int32
	var curLeafIdx, curLeafStart int32

	claim := func(typ Type) int32 {
		idx := cursor
		recs[idx] = valueRec{typ: typ}
		cursor++
		return idx
	}
	topContainer := func() int32 { return containerStack[len(containerStack)-1] }

	build := &Handler{
		OnNull:  func() { claim(TypeNull) },
		OnTrue:  func() { claim(TypeTrue) },
		OnFalse: func() { claim(TypeFalse) },

		OnStringStart: func() {
			curLeafIdx = claim(TypeString)
			curLeafStart = byteCursor
		},
		OnStringByte: func(b byte) {
			content[byteCursor] = b
			byteCursor++
		},
		OnStringEnd: func() {
			recs[curLeafIdx].a = uint32(curLeafStart)
			recs[curLeafIdx].b = uint32(byteCursor - curLeafStart)
		},

		OnNumberStart: func() {
			curLeafIdx = claim(TypeNumber)
			curLeafStart = byteCursor
		},
		OnNumberByte: func(b byte) {
			content[byteCursor] = b
			byteCursor++
		},
		OnNumberEnd: func() {
			recs[curLeafIdx].a = uint32(curLeafStart)
			recs[curLeafIdx].b = uint32(byteCursor - curLeafStart)
		},

		OnArrayStart: func() {
			idx := claim(TypeArray)
			containerStack = append(containerStack, idx)
		},
		OnArrayElementStart: func() {
			ary := topContainer()
			aryRows = append(aryRows, aryRow{ary: ary, val: cursor, seq: seq})
			seq++
			recs[ary].b++
		},
		OnArrayEnd: func() {
			containerStack = containerStack[:len(containerStack)-1]
		},

		OnObjectStart: func() {
			idx := claim(TypeObject)
			containerStack = append(containerStack, idx)
		},
		OnObjectKeyStart: func() {
			obj := topContainer()
			objRows = append(objRows, objRow{obj: obj, key: cursor, val: cursor + 1, seq: seq})
			seq++
			recs[obj].b++
		},
		OnObjectEnd: func() {
			containerStack = containerStack[:len(containerStack)-1]
		},
	}
	if err := Parse(build, stack, buf, nil); err != nil {
		return nil, err
	}

	sort.Slice(aryRows, func(i, j int) bool {
		if aryRows[i].ary != aryRows[j].ary {
			return aryRows[i].ary < aryRows[j].ary
		}
		return aryRows[i].seq < aryRows[j].seq
	})
	var arrCursor int32
	for i := 0; i < len(aryRows); {
		ary := aryRows[i].ary
		j := i
		for j < len(aryRows) && aryRows[j].ary == ary {
			j++
		}
		recs[ary].a = uint32(arrCursor)
		for k := i; k < j; k++ {
			arrRefs[arrCursor] = aryRows[k].val
			arrCursor++
		}
		i = j
	}

	sort.Slice(objRows, func(i, j int) bool {
		if objRows[i].obj != objRows[j].obj {
			return objRows[i].obj < objRows[j].obj
		}
		return objRows[i].seq < objRows[j].seq
	})
	var objCursor int32
	for i := 0; i < len(objRows); {
		obj := objRows[i].obj
		j := i
		for j < len(objRows) && objRows[j].obj == obj {
			j++
		}
		recs[obj].a = uint32(objCursor)
		for k := i; k < j; k++ {
			objRefs[objCursor] = objRows[k].key
			objRefs[objCursor+1] = objRows[k].val
			objCursor += 2
		}
		i = j
	}

	root := int32(-1)
	if numValues > 0 {
		root = 0
	}
	return &Tree{recs: recs, arrRefs: arrRefs, objRefs: objRefs, bytes: content, root: root}, nil
}

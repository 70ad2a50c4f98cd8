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

// WriterState is one frame of a Writer's placement stack: it tracks where
// the next structural call is allowed to write, mirroring Parser's State
// but in the reverse direction.
type WriterState uint8

const (
	WriterFail WriterState = iota
	WriterInit
	WriterDone

	WriterString

	WriterNumberInit
	WriterNumberAfterSign
	WriterNumberAfterLeadingZero
	WriterNumberInt
	WriterNumberAfterDot
	WriterNumberFrac
	WriterNumberAfterExp
	WriterNumberAfterExpSign
	WriterNumberExpNum

	WriterArrayStart
	WriterArrayAfterValue

	WriterObjectKey
	WriterObjectValue
	WriterObjectAfterValue
)

// WriterCallbacks is the callback vtable a Writer invokes to emit bytes
// and report completion or failure.
type WriterCallbacks struct {
	OnWrite func(b []byte)
	OnFini  func()
	OnError func(code Code)
}

// Writer accepts a sequence of structural calls (Null, ObjectStart,
// StringData, ...) and emits well-formed JSON bytes via Callbacks.OnWrite,
// enforcing placement validity with its own explicit state stack. It never
// buffers output and never allocates beyond the caller-supplied stack.
type Writer struct {
	Callbacks *WriterCallbacks

	stack    []WriterState
	depth    int
	userData interface{}
	lastErr  Code
}

// Init prepares w to emit a new document. stack must have capacity for at
// least two frames.
func (w *Writer) Init(cb *WriterCallbacks, stack []WriterState, userData interface{}) error {
	if len(stack) < 2 {
		return &Error{Code: CodeStackOverflow}
	}
	w.Callbacks = cb
	w.stack = stack
	w.depth = 0
	w.stack[0] = WriterInit
	w.userData = userData
	w.lastErr = CodeOK
	return nil
}

// GetUserData returns the opaque value passed to Init.
func (w *Writer) GetUserData() interface{} { return w.userData }

func (w *Writer) getState() WriterState  { return w.stack[w.depth] }
func (w *Writer) setState(s WriterState) { w.stack[w.depth] = s }

func (w *Writer) pushState(s WriterState) error {
	if w.depth+1 >= len(w.stack) {
		return w.fail(CodeStackOverflow)
	}
	w.depth++
	w.stack[w.depth] = s
	return nil
}

func (w *Writer) popState() error {
	if w.depth == 0 {
		return w.fail(CodeStackUnderflow)
	}
	w.depth--
	return nil
}

func (w *Writer) fail(code Code) error {
	if w.Callbacks != nil && w.Callbacks.OnError != nil {
		w.Callbacks.OnError(code)
	}
	w.lastErr = code
	w.stack[w.depth] = WriterFail
	return &Error{Code: code}
}

func (w *Writer) writeRaw(bs ...byte) {
	if w.Callbacks != nil && w.Callbacks.OnWrite != nil {
		w.Callbacks.OnWrite(bs)
	}
}

type valueKind uint8

const (
	kindAny valueKind = iota
	kindString
)

// beginValue validates that a value of the given kind may start in the
// current placement context, inserting any separator (',', a key's ':'
// having already been handled by advanceAfterValue) the JSON grammar
// requires. It never pushes a frame; composite/multi-call values
// (string, number, array, object) push their own frame right after.
func (w *Writer) beginValue(kind valueKind) error {
	if w.getState() == WriterFail {
		return &Error{Code: w.lastErr}
	}
	switch w.getState() {
	case WriterInit, WriterArrayStart, WriterObjectValue:
	case WriterArrayAfterValue:
		w.writeRaw(',')
	case WriterObjectKey:
		if kind != kindString {
			return w.fail(CodeBadState)
		}
	case WriterObjectAfterValue:
		if kind != kindString {
			return w.fail(CodeBadState)
		}
		w.writeRaw(',')
		w.setState(WriterObjectKey)
	default:
		return w.fail(CodeBadState)
	}
	return nil
}

// advanceAfterValue is called once a value (literal, string, number,
// array, or object) has fully completed, with the placement frame it
// belongs to on top of the stack. It performs the transition the
// enclosing context requires, including writing the ':' that follows an
// object key.
func (w *Writer) advanceAfterValue() error {
	switch w.getState() {
	case WriterArrayStart, WriterArrayAfterValue:
		w.setState(WriterArrayAfterValue)
	case WriterObjectKey:
		w.writeRaw(':')
		w.setState(WriterObjectValue)
	case WriterObjectValue:
		w.setState(WriterObjectAfterValue)
	case WriterInit:
		w.setState(WriterDone)
	}
	return nil
}

// Null writes a JSON null.
func (w *Writer) Null() error {
	if err := w.beginValue(kindAny); err != nil {
		return err
	}
	w.writeRaw('n', 'u', 'l', 'l')
	return w.advanceAfterValue()
}

// True writes a JSON true.
func (w *Writer) True() error {
	if err := w.beginValue(kindAny); err != nil {
		return err
	}
	w.writeRaw('t', 'r', 'u', 'e')
	return w.advanceAfterValue()
}

// False writes a JSON false.
func (w *Writer) False() error {
	if err := w.beginValue(kindAny); err != nil {
		return err
	}
	w.writeRaw('f', 'a', 'l', 's', 'e')
	return w.advanceAfterValue()
}

// ArrayStart begins a JSON array.
func (w *Writer) ArrayStart() error {
	if err := w.beginValue(kindAny); err != nil {
		return err
	}
	w.writeRaw('[')
	return w.pushState(WriterArrayStart)
}

// ArrayEnd closes the innermost open array.
func (w *Writer) ArrayEnd() error {
	switch w.getState() {
	case WriterArrayStart, WriterArrayAfterValue:
	default:
		return w.fail(CodeBadState)
	}
	w.writeRaw(']')
	if err := w.popState(); err != nil {
		return err
	}
	return w.advanceAfterValue()
}

// ObjectStart begins a JSON object.
func (w *Writer) ObjectStart() error {
	if err := w.beginValue(kindAny); err != nil {
		return err
	}
	w.writeRaw('{')
	return w.pushState(WriterObjectKey)
}

// ObjectEnd closes the innermost open object.
func (w *Writer) ObjectEnd() error {
	switch w.getState() {
	case WriterObjectKey, WriterObjectAfterValue:
	default:
		return w.fail(CodeBadState)
	}
	w.writeRaw('}')
	if err := w.popState(); err != nil {
		return err
	}
	return w.advanceAfterValue()
}

// StringStart begins a JSON string (a value or, inside an object, a key).
func (w *Writer) StringStart() error {
	if err := w.beginValue(kindString); err != nil {
		return err
	}
	w.writeRaw('"')
	return w.pushState(WriterString)
}

// StringData writes and escapes data as the content of an open string.
func (w *Writer) StringData(data []byte) error {
	if w.getState() != WriterString {
		return w.fail(CodeBadState)
	}
	for _, b := range data {
		if err := w.writeStringByte(b); err != nil {
			return err
		}
	}
	return nil
}

// StringEnd closes the open string.
func (w *Writer) StringEnd() error {
	if w.getState() != WriterString {
		return w.fail(CodeBadState)
	}
	w.writeRaw('"')
	if err := w.popState(); err != nil {
		return err
	}
	return w.advanceAfterValue()
}

// String is a one-shot wrapper for StringStart + StringData + StringEnd.
func (w *Writer) String(data []byte) error {
	if err := w.StringStart(); err != nil {
		return err
	}
	if err := w.StringData(data); err != nil {
		return err
	}
	return w.StringEnd()
}

func (w *Writer) writeStringByte(b byte) error {
	switch b {
	case 0:
		return w.fail(CodeBadByte)
	case '\\':
		w.writeRaw('\\', '\\')
	case '"':
		w.writeRaw('\\', '"')
	case '/':
		w.writeRaw('\\', '/')
	case '\n':
		w.writeRaw('\\', 'n')
	case '\r':
		w.writeRaw('\\', 'r')
	case '\t':
		w.writeRaw('\\', 't')
	case '\b':
		w.writeRaw('\\', 'b')
	case '\f':
		w.writeRaw('\\', 'f')
	case '\v':
		w.writeRaw('\\', 'v')
	default:
		w.writeRaw(b)
	}
	return nil
}

// NumberStart begins a JSON number.
func (w *Writer) NumberStart() error {
	if err := w.beginValue(kindAny); err != nil {
		return err
	}
	return w.pushState(WriterNumberInit)
}

// NumberData validates and writes data as the content of an open number.
func (w *Writer) NumberData(data []byte) error {
	for _, b := range data {
		if err := w.writeNumberByte(b); err != nil {
			return err
		}
	}
	return nil
}

// NumberEnd closes the open number. It fails if the number is incomplete
// (e.g. ended right after a sign, a '.', or an 'e').
func (w *Writer) NumberEnd() error {
	switch w.getState() {
	case WriterNumberAfterLeadingZero, WriterNumberInt, WriterNumberFrac, WriterNumberExpNum:
	default:
		return w.fail(CodeBadState)
	}
	if err := w.popState(); err != nil {
		return err
	}
	return w.advanceAfterValue()
}

// Number is a one-shot wrapper for NumberStart + NumberData + NumberEnd.
func (w *Writer) Number(data []byte) error {
	if err := w.NumberStart(); err != nil {
		return err
	}
	if err := w.NumberData(data); err != nil {
		return err
	}
	return w.NumberEnd()
}

func (w *Writer) writeNumberByte(b byte) error {
	switch w.getState() {
	case WriterNumberInit:
		switch {
		case b == '+' || b == '-':
			w.setState(WriterNumberAfterSign)
		case b == '0':
			w.setState(WriterNumberAfterLeadingZero)
		case isNonZeroDigit(b):
			w.setState(WriterNumberInt)
		default:
			return w.fail(CodeBadByte)
		}
	case WriterNumberAfterSign:
		switch {
		case b == '0':
			w.setState(WriterNumberAfterLeadingZero)
		case isNonZeroDigit(b):
			w.setState(WriterNumberInt)
		default:
			return w.fail(CodeBadByte)
		}
	case WriterNumberAfterLeadingZero:
		switch {
		case b == '.':
			w.setState(WriterNumberAfterDot)
		case b == 'e' || b == 'E':
			w.setState(WriterNumberAfterExp)
		default:
			return w.fail(CodeBadByte)
		}
	case WriterNumberInt:
		switch {
		case isDigit(b):
		case b == '.':
			w.setState(WriterNumberAfterDot)
		case b == 'e' || b == 'E':
			w.setState(WriterNumberAfterExp)
		default:
			return w.fail(CodeBadByte)
		}
	case WriterNumberAfterDot:
		if !isDigit(b) {
			return w.fail(CodeBadByte)
		}
		w.setState(WriterNumberFrac)
	case WriterNumberFrac:
		switch {
		case isDigit(b):
		case b == 'e' || b == 'E':
			w.setState(WriterNumberAfterExp)
		default:
			return w.fail(CodeBadByte)
		}
	case WriterNumberAfterExp:
		switch {
		case b == '+' || b == '-':
			w.setState(WriterNumberAfterExpSign)
		case isDigit(b):
			w.setState(WriterNumberExpNum)
		default:
			return w.fail(CodeBadByte)
		}
	case WriterNumberAfterExpSign:
		if !isDigit(b) {
			return w.fail(CodeBadByte)
		}
		w.setState(WriterNumberExpNum)
	case WriterNumberExpNum:
		if !isDigit(b) {
			return w.fail(CodeBadByte)
		}
	default:
		return w.fail(CodeBadState)
	}
	w.writeRaw(b)
	return nil
}

// Fini finalizes the document. It requires the writer to be at INIT (no
// value was ever written) or DONE.
func (w *Writer) Fini() error {
	switch w.getState() {
	case WriterInit, WriterDone:
		if w.Callbacks != nil && w.Callbacks.OnFini != nil {
			w.Callbacks.OnFini()
		}
		return nil
	default:
		return &Error{Code: CodeNotDone}
	}
}

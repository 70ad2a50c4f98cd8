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

import "fmt"

// Code identifies a specific failure reason raised by a Parser, Tree, or
// Writer. The ordering below follows the original C JIFFY_ERROR_LIST
// declaration order.
type Code uint8

const (
	CodeOK Code = iota
	CodeBadByte
	CodeBadState
	CodeBadEscape
	CodeBadUTF8BOM
	CodeBadUTF16BOM
	CodeBadUnicodeEscape
	CodeBadUnicodeCodepoint
	CodeStackUnderflow
	CodeStackOverflow
	CodeExpectedArrayElement
	CodeExpectedCommaOrArrayEnd
	CodeExpectedStringOrObjectEnd
	CodeExpectedCommaOrObjectEnd
	CodeExpectedObjectKey
	CodeExpectedColon
	CodeNotDone
	CodeTreeStackScanFailed
	CodeTreeStackMallocFailed
	CodeTreeOutputMallocFailed
	CodeTreeParseMallocFailed
	codeLast
)

var codeStrings = [...]string{
	CodeOK:                        "ok",
	CodeBadByte:                   "bad byte",
	CodeBadState:                  "bad state",
	CodeBadEscape:                 "bad escape",
	CodeBadUTF8BOM:                "bad utf-8 bom",
	CodeBadUTF16BOM:               "bad utf-16 bom",
	CodeBadUnicodeEscape:          "bad unicode escape",
	CodeBadUnicodeCodepoint:       "bad unicode codepoint",
	CodeStackUnderflow:            "stack underflow",
	CodeStackOverflow:             "stack overflow",
	CodeExpectedArrayElement:      "expected array element",
	CodeExpectedCommaOrArrayEnd:   "expected comma or array end",
	CodeExpectedStringOrObjectEnd: "expected string or object end",
	CodeExpectedCommaOrObjectEnd:  "expected comma or object end",
	CodeExpectedObjectKey:         "expected object key",
	CodeExpectedColon:             "expected colon",
	CodeNotDone:                   "not done",
	CodeTreeStackScanFailed:       "tree stack scan failed",
	CodeTreeStackMallocFailed:     "tree stack allocation failed",
	CodeTreeOutputMallocFailed:    "tree output allocation failed",
	CodeTreeParseMallocFailed:     "tree parse scratch allocation failed",
}

// String returns the human-readable name of the code.
func (c Code) String() string {
	if int(c) < len(codeStrings) && codeStrings[c] != "" {
		return codeStrings[c]
	}
	return fmt.Sprintf("code(%d)", uint8(c))
}

// Error wraps a Code with positional context (byte offset at the time of
// failure, when known).
type Error struct {
	Code     Code
	NumBytes uint64
}

func (e *Error) Error() string {
	return fmt.Sprintf("jiffy: %s at byte %d", e.Code, e.NumBytes)
}

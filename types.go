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

// Type is the tag of a parsed value.
type Type uint8

const (
	TypeNull Type = iota
	TypeTrue
	TypeFalse
	TypeNumber
	TypeString
	TypeArray
	TypeObject
)

func (t Type) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeTrue:
		return "true"
	case TypeFalse:
		return "false"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeArray:
		return "array"
	case TypeObject:
		return "object"
	default:
		return "unknown"
	}
}

// Warning identifies a recoverable condition reported via Handler.OnWarning.
type Warning uint8

const (
	WarningUTF8BOM Warning = iota
	WarningUTF16BOM
)

func (w Warning) String() string {
	switch w {
	case WarningUTF8BOM:
		return "utf-8 bom"
	case WarningUTF16BOM:
		return "utf-16 bom"
	default:
		return "unknown warning"
	}
}

// NumberFlags records which optional number grammar elements were seen,
// reported via Handler.OnNumberFlags immediately before OnNumberEnd.
type NumberFlags uint8

const (
	// NumberFlagFraction is set if the number contained a '.' fraction part.
	NumberFlagFraction NumberFlags = 1 << iota
	// NumberFlagExponent is set if the number contained an 'e'/'E' exponent part.
	NumberFlagExponent
)

// HasFraction reports whether the fraction flag is set.
func (f NumberFlags) HasFraction() bool { return f&NumberFlagFraction != 0 }

// HasExponent reports whether the exponent flag is set.
func (f NumberFlags) HasExponent() bool { return f&NumberFlagExponent != 0 }

package jiffy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStack(n int) []State { return make([]State, n) }

func TestParseLiteral(t *testing.T) {
	var sawTrue bool
	h := &Handler{OnTrue: func() { sawTrue = true }}
	require.NoError(t, Parse(h, newStack(8), []byte("true"), nil))
	assert.True(t, sawTrue)
}

func TestParseArray(t *testing.T) {
	var events []string
	var numbers []string
	var cur []byte
	h := &Handler{
		OnArrayStart:        func() { events = append(events, "array_start") },
		OnArrayEnd:          func() { events = append(events, "array_end") },
		OnArrayElementStart: func() { events = append(events, "element_start") },
		OnArrayElementEnd:   func() { events = append(events, "element_end") },
		OnNumberStart:       func() { cur = nil },
		OnNumberByte:        func(b byte) { cur = append(cur, b) },
		OnNumberEnd:         func() { numbers = append(numbers, string(cur)) },
	}
	require.NoError(t, Parse(h, newStack(8), []byte("[1,2,3]"), nil))
	assert.Equal(t, []string{
		"array_start",
		"element_start", "element_end",
		"element_start", "element_end",
		"element_start", "element_end",
		"array_end",
	}, events)
	assert.Equal(t, []string{"1", "2", "3"}, numbers)
}

func TestParseObject(t *testing.T) {
	type kv struct {
		key, val string
	}
	var pairs []kv
	var curKey, curVal []byte
	var inKey bool
	h := &Handler{
		OnObjectKeyStart: func() { inKey = true; curKey = nil },
		OnObjectValueStart: func() {
			inKey = false
			curVal = nil
		},
		OnStringByte: func(b byte) {
			if inKey {
				curKey = append(curKey, b)
			}
		},
		OnNumberByte: func(b byte) { curVal = append(curVal, b) },
		OnObjectValueEnd: func() {
			pairs = append(pairs, kv{key: string(curKey), val: string(curVal)})
		},
	}
	require.NoError(t, Parse(h, newStack(8), []byte(`{"a":1}`), nil))
	assert.Equal(t, []kv{{key: "a", val: "1"}}, pairs)
}

func TestParseUnicodeEscapeBMP(t *testing.T) {
	var got []byte
	h := &Handler{OnStringByte: func(b byte) { got = append(got, b) }}
	require.NoError(t, Parse(h, newStack(8), []byte("\"\x5cu0041\""), nil))
	assert.Equal(t, []byte("A"), got)
}

func TestParseUnicodeEscapeTwoByte(t *testing.T) {
	var got []byte
	h := &Handler{OnStringByte: func(b byte) { got = append(got, b) }}
	require.NoError(t, Parse(h, newStack(8), []byte("\"\x5cu00E9\""), nil))
	assert.Equal(t, []byte{0xC3, 0xA9}, got)
}

func TestParseZeroCodepointRejected(t *testing.T) {
	var code Code
	h := &Handler{OnError: func(c Code) { code = c }}
	err := Parse(h, newStack(8), []byte("\"\x5cu0000\""), nil)
	require.Error(t, err)
	assert.Equal(t, CodeBadUnicodeCodepoint, code)
}

func TestParseIncompleteUnicodeEscape(t *testing.T) {
	var code Code
	h := &Handler{OnError: func(c Code) { code = c }}
	err := Parse(h, newStack(8), []byte(`"\u00"`), nil)
	require.Error(t, err)
	assert.Equal(t, CodeBadUnicodeEscape, code)
}

func TestParseNumberThenBraceAtTopLevel(t *testing.T) {
	var code Code
	var numberEnded bool
	h := &Handler{
		OnNumberEnd: func() { numberEnded = true },
		OnError:     func(c Code) { code = c },
	}
	err := Parse(h, newStack(8), []byte("0}"), nil)
	require.Error(t, err)
	assert.True(t, numberEnded)
	assert.Equal(t, CodeBadByte, code)
}

func TestParseTrailingCommaInArray(t *testing.T) {
	var code Code
	h := &Handler{OnError: func(c Code) { code = c }}
	err := Parse(h, newStack(8), []byte("[1,]"), nil)
	require.Error(t, err)
	assert.Equal(t, CodeExpectedCommaOrArrayEnd, code)
}

func TestParseLeadingCommaInArray(t *testing.T) {
	var code Code
	h := &Handler{OnError: func(c Code) { code = c }}
	err := Parse(h, newStack(8), []byte("[,1]"), nil)
	require.Error(t, err)
	assert.Equal(t, CodeExpectedArrayElement, code)
}

func TestParseDoubleCommaInArray(t *testing.T) {
	var code Code
	h := &Handler{OnError: func(c Code) { code = c }}
	err := Parse(h, newStack(8), []byte("[1,,2]"), nil)
	require.Error(t, err)
	assert.Equal(t, CodeExpectedArrayElement, code)
}

func TestFiniEmptyInputNotDone(t *testing.T) {
	var p Parser
	require.NoError(t, p.Init(&Handler{}, newStack(8), nil))
	err := p.Fini()
	require.Error(t, err)
	assert.Equal(t, CodeNotDone, err.(*Error).Code)
}

func TestStackOverflow(t *testing.T) {
	var code Code
	h := &Handler{OnError: func(c Code) { code = c }}
	err := Parse(h, newStack(2), []byte("[[[1]]]"), nil)
	require.Error(t, err)
	assert.Equal(t, CodeStackOverflow, code)
}

func TestBOMUTF8(t *testing.T) {
	var sawBOM bool
	h := &Handler{
		OnWarning: func(w Warning) {
			if w == WarningUTF8BOM {
				sawBOM = true
			}
		},
		OnTrue: func() {},
	}
	buf := append([]byte{0xEF, 0xBB, 0xBF}, []byte("true")...)
	require.NoError(t, Parse(h, newStack(8), buf, nil))
	assert.True(t, sawBOM)
}

func TestLeadingPlusSign(t *testing.T) {
	var digits []byte
	h := &Handler{OnNumberByte: func(b byte) { digits = append(digits, b) }}
	require.NoError(t, Parse(h, newStack(8), []byte("+1"), nil))
	assert.Equal(t, []byte("+1"), digits)
}

func TestLeadingPlusSignDisabled(t *testing.T) {
	var code Code
	h := &Handler{OnError: func(c Code) { code = c }}
	err := Parse(h, newStack(8), []byte("+1"), nil, WithLeadingPlusSign(false))
	require.Error(t, err)
	assert.Equal(t, CodeBadByte, code)
}

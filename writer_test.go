package jiffy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWriter(t *testing.T) (*Writer, *[]byte) {
	t.Helper()
	var out []byte
	cb := &WriterCallbacks{OnWrite: func(b []byte) { out = append(out, b...) }}
	var w Writer
	require.NoError(t, w.Init(cb, make([]WriterState, 16), nil))
	return &w, &out
}

func TestWriterSimpleObject(t *testing.T) {
	w, out := newWriter(t)
	require.NoError(t, w.ObjectStart())
	require.NoError(t, w.String([]byte("k")))
	require.NoError(t, w.Number([]byte("1")))
	require.NoError(t, w.ObjectEnd())
	require.NoError(t, w.Fini())
	assert.Equal(t, `{"k":1}`, string(*out))
}

func TestWriterArrayEndAfterObjectStartFails(t *testing.T) {
	w, out := newWriter(t)
	require.NoError(t, w.ObjectStart())
	err := w.ArrayEnd()
	require.Error(t, err)
	assert.Equal(t, CodeBadState, err.(*Error).Code)
	assert.Equal(t, "{", string(*out))
}

func TestWriterArrayOfValues(t *testing.T) {
	w, out := newWriter(t)
	require.NoError(t, w.ArrayStart())
	require.NoError(t, w.Null())
	require.NoError(t, w.True())
	require.NoError(t, w.False())
	require.NoError(t, w.Number([]byte("-1.5e10")))
	require.NoError(t, w.ArrayEnd())
	require.NoError(t, w.Fini())
	assert.Equal(t, `[null,true,false,-1.5e10]`, string(*out))
}

func TestWriterNestedObjects(t *testing.T) {
	w, out := newWriter(t)
	require.NoError(t, w.ObjectStart())
	require.NoError(t, w.String([]byte("outer")))
	require.NoError(t, w.ObjectStart())
	require.NoError(t, w.String([]byte("inner")))
	require.NoError(t, w.Number([]byte("2")))
	require.NoError(t, w.ObjectEnd())
	require.NoError(t, w.ObjectEnd())
	require.NoError(t, w.Fini())
	assert.Equal(t, `{"outer":{"inner":2}}`, string(*out))
}

func TestWriterStringEscaping(t *testing.T) {
	w, out := newWriter(t)
	require.NoError(t, w.String([]byte("a\"b\\c\nd")))
	require.NoError(t, w.Fini())
	assert.Equal(t, `"a\"b\\c\nd"`, string(*out))
}

func TestWriterRejectsNulByteInString(t *testing.T) {
	w, _ := newWriter(t)
	require.NoError(t, w.StringStart())
	err := w.StringData([]byte{0})
	require.Error(t, err)
	assert.Equal(t, CodeBadByte, err.(*Error).Code)
}

func TestWriterIncompleteNumberFails(t *testing.T) {
	w, _ := newWriter(t)
	require.NoError(t, w.NumberStart())
	require.NoError(t, w.NumberData([]byte("-")))
	err := w.NumberEnd()
	require.Error(t, err)
	assert.Equal(t, CodeBadState, err.(*Error).Code)
}

func TestWriterObjectKeyMustBeString(t *testing.T) {
	w, _ := newWriter(t)
	require.NoError(t, w.ObjectStart())
	err := w.Number([]byte("1"))
	require.Error(t, err)
	assert.Equal(t, CodeBadState, err.(*Error).Code)
}

func TestWriterTrailingCommaKey(t *testing.T) {
	w, out := newWriter(t)
	require.NoError(t, w.ObjectStart())
	require.NoError(t, w.String([]byte("a")))
	require.NoError(t, w.Number([]byte("1")))
	require.NoError(t, w.String([]byte("b")))
	require.NoError(t, w.Number([]byte("2")))
	require.NoError(t, w.ObjectEnd())
	require.NoError(t, w.Fini())
	assert.Equal(t, `{"a":1,"b":2}`, string(*out))
}

func TestWriterFiniRejectsOpenContainer(t *testing.T) {
	w, _ := newWriter(t)
	require.NoError(t, w.ArrayStart())
	err := w.Fini()
	require.Error(t, err)
	assert.Equal(t, CodeNotDone, err.(*Error).Code)
}

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

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
)

const treeSerializeVersion = 1

// CompressMode selects the block codec Tree.Serialize uses for each of the
// tree's four regions.
type CompressMode uint8

const (
	// CompressNone stores every region uncompressed.
	CompressNone CompressMode = iota
	// CompressFast applies S2 compression.
	CompressFast
	// CompressDefault applies S2 compression with the same encoder as
	// CompressFast; the two modes produce identical output.
	CompressDefault
	// CompressBest applies zstd compression, trading speed for ratio.
	CompressBest
)

const (
	blockTypeUncompressed byte = 0
	blockTypeS2           byte = 1
	blockTypeZstd         byte = 2
)

func compressModeToBlockType(m CompressMode) byte {
	switch m {
	case CompressNone:
		return blockTypeUncompressed
	case CompressFast, CompressDefault:
		return blockTypeS2
	case CompressBest:
		return blockTypeZstd
	default:
		panic("jiffy: unknown compression mode")
	}
}

// Serialize encodes the tree's four regions (records, array refs, object
// refs, content bytes) as a self-describing, optionally-compressed byte
// stream that LoadTree can reconstruct without reparsing.
func (t *Tree) Serialize(mode CompressMode) ([]byte, error) {
	recsRaw := make([]byte, len(t.recs)*9)
	for i, r := range t.recs {
		recsRaw[i*9] = byte(r.typ)
		binary.LittleEndian.PutUint32(recsRaw[i*9+1:], r.a)
		binary.LittleEndian.PutUint32(recsRaw[i*9+5:], r.b)
	}
	arrRaw := int32sToBytes(t.arrRefs)
	objRaw := int32sToBytes(t.objRefs)

	dst := make([]byte, 0, len(recsRaw)+len(arrRaw)+len(objRaw)+len(t.bytes)+32)
	dst = append(dst, treeSerializeVersion)

	var tmp [binary.MaxVarintLen64]byte
	putUvarint := func(v uint64) {
		n := binary.PutUvarint(tmp[:], v)
		dst = append(dst, tmp[:n]...)
	}
	putUvarint(uint64(len(t.recs)))
	putUvarint(uint64(len(t.arrRefs)))
	putUvarint(uint64(len(t.objRefs)))
	putUvarint(uint64(len(t.bytes)))
	n := binary.PutVarint(tmp[:], int64(t.root))
	dst = append(dst, tmp[:n]...)

	dst = appendBlock(dst, mode, recsRaw)
	dst = appendBlock(dst, mode, arrRaw)
	dst = appendBlock(dst, mode, objRaw)
	dst = appendBlock(dst, mode, t.bytes)
	return dst, nil
}

// LoadTree reconstructs a Tree previously produced by Tree.Serialize.
func LoadTree(data []byte) (*Tree, error) {
	if len(data) < 1 {
		return nil, errors.New("jiffy: empty serialized tree")
	}
	if data[0] != treeSerializeVersion {
		return nil, fmt.Errorf("jiffy: unsupported serialized tree version %d", data[0])
	}
	data = data[1:]

	readUvarint := func() (uint64, error) {
		v, n := binary.Uvarint(data)
		if n <= 0 {
			return 0, errors.New("jiffy: malformed serialized tree header")
		}
		data = data[n:]
		return v, nil
	}

	numRecs, err := readUvarint()
	if err != nil {
		return nil, err
	}
	numArr, err := readUvarint()
	if err != nil {
		return nil, err
	}
	numObj, err := readUvarint()
	if err != nil {
		return nil, err
	}
	numBytes, err := readUvarint()
	if err != nil {
		return nil, err
	}
	root, n := binary.Varint(data)
	if n <= 0 {
		return nil, errors.New("jiffy: malformed serialized tree header")
	}
	data = data[n:]

	recsRaw, data, err := readBlock(data, int(numRecs)*9)
	if err != nil {
		return nil, fmt.Errorf("jiffy: records block: %w", err)
	}
	arrRaw, data, err := readBlock(data, int(numArr)*4)
	if err != nil {
		return nil, fmt.Errorf("jiffy: array refs block: %w", err)
	}
	objRaw, data, err := readBlock(data, int(numObj)*4)
	if err != nil {
		return nil, fmt.Errorf("jiffy: object refs block: %w", err)
	}
	bytesRaw, _, err := readBlock(data, int(numBytes))
	if err != nil {
		return nil, fmt.Errorf("jiffy: content block: %w", err)
	}

	recs := make([]valueRec, numRecs)
	for i := range recs {
		recs[i].typ = Type(recsRaw[i*9])
		recs[i].a = binary.LittleEndian.Uint32(recsRaw[i*9+1:])
		recs[i].b = binary.LittleEndian.Uint32(recsRaw[i*9+5:])
	}
	content := make([]byte, len(bytesRaw))
	copy(content, bytesRaw)

	return &Tree{
		recs:    recs,
		arrRefs: bytesToInt32s(arrRaw),
		objRefs: bytesToInt32s(objRaw),
		bytes:   content,
		root:    int32(root),
	}, nil
}

// appendBlock appends a length-prefixed, codec-tagged block to dst.
func appendBlock(dst []byte, mode CompressMode, raw []byte) []byte {
	bt := compressModeToBlockType(mode)
	var payload []byte
	switch bt {
	case blockTypeUncompressed:
		payload = raw
	case blockTypeS2:
		buf := make([]byte, s2.MaxEncodedLen(len(raw)))
		payload = s2.Encode(buf, raw)
	case blockTypeZstd:
		enc, _ := zstd.NewWriter(nil)
		payload = enc.EncodeAll(raw, nil)
		enc.Close()
	}
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], uint64(len(payload)+1))
	dst = append(dst, tmp[:n]...)
	dst = append(dst, bt)
	dst = append(dst, payload...)
	return dst
}

// readBlock reads one appendBlock-encoded block from the front of data,
// decompresses it to rawLen bytes, and returns the raw bytes plus the
// remainder of data.
func readBlock(data []byte, rawLen int) ([]byte, []byte, error) {
	blockLen, n := binary.Uvarint(data)
	if n <= 0 {
		return nil, nil, errors.New("malformed block length")
	}
	data = data[n:]
	if uint64(len(data)) < blockLen {
		return nil, nil, errors.New("truncated block")
	}
	block := data[:blockLen]
	rest := data[blockLen:]
	if len(block) < 1 {
		return nil, nil, errors.New("empty block")
	}
	bt := block[0]
	payload := block[1:]
	switch bt {
	case blockTypeUncompressed:
		if len(payload) != rawLen {
			return nil, nil, fmt.Errorf("size mismatch: want %d, got %d", rawLen, len(payload))
		}
		return payload, rest, nil
	case blockTypeS2:
		raw, err := s2.Decode(make([]byte, rawLen), payload)
		if err != nil {
			return nil, nil, fmt.Errorf("s2 decode: %w", err)
		}
		return raw, rest, nil
	case blockTypeZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, nil, err
		}
		defer dec.Close()
		raw, err := dec.DecodeAll(payload, make([]byte, 0, rawLen))
		if err != nil {
			return nil, nil, fmt.Errorf("zstd decode: %w", err)
		}
		if len(raw) != rawLen {
			return nil, nil, errors.New("zstd decompressed size mismatch")
		}
		return raw, rest, nil
	default:
		return nil, nil, fmt.Errorf("unknown block type %d", bt)
	}
}

func int32sToBytes(vals []int32) []byte {
	out := make([]byte, len(vals)*4)
	for i, v := range vals {
		binary.LittleEndian.PutUint32(out[i*4:], uint32(v))
	}
	return out
}

func bytesToInt32s(raw []byte) []int32 {
	out := make([]int32, len(raw)/4)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return out
}

// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package matmul

import (
	"encoding/binary"

	"github.com/ajroetker/tinyblas/hwy"
)

// BlockSize is the number of k-dimension scalars represented by one
// quantised block, for every variant in this package.
const BlockSize = 32

// Byte sizes of the wire/in-memory block layouts, little-endian.
const (
	Q8_0BlockBytes  = 2 + 32 // delta + 32 x i8
	Q4_0BlockBytes  = 2 + 16 // delta + 16 x packed nibbles
	Q5_0BlockBytes  = 2 + 4 + 16
	IQ4NLBlockBytes = 2 + 16 // identical layout to q4_0
)

// iq4nlLUT is the fixed 16-entry lookup table iq4_nl nibbles index into.
var iq4nlLUT = [16]int8{-127, -104, -83, -65, -49, -35, -22, -10, 1, 13, 25, 38, 53, 69, 89, 113}

// blockDelta reads the little-endian f16 delta at the head of any of the
// four block layouts, all of which place it in the first two bytes.
func blockDelta(blk []byte) float32 {
	return hwy.Float16FromBits(binary.LittleEndian.Uint16(blk[0:2])).Float32()
}

// DecodeQ8 unpacks a q8_0 block verbatim: the payload already is signed i8.
func DecodeQ8(blk []byte, out *[32]int8) {
	for i := range 32 {
		out[i] = int8(blk[2+i])
	}
}

// DecodeQ4 splits each packed byte into low/high nibble, zero-extends, and
// subtracts the bias of 8 to recover the signed range [-8, 7]. Low nibbles
// land in lanes 0..15, high nibbles in lanes 16..31.
func DecodeQ4(blk []byte, out *[32]int8) {
	for j := range 16 {
		b := blk[2+j]
		out[j] = int8(b&0x0F) - 8
		out[j+16] = int8(b>>4) - 8
	}
}

// DecodeQ5 behaves as DecodeQ4 but additionally folds in the 5th bit stored
// in the 4-byte qh sign-bit bank: bit i of qh belongs to lane i. This is
// equivalent to OR-ing the nibble with a per-lane 0xF0 (bit clear) / 0x00
// (bit set) mask: a clear bit yields nibble-16, a set bit yields the nibble
// itself, so lanes span [-16, 15].
func DecodeQ5(blk []byte, out *[32]int8) {
	qh := binary.LittleEndian.Uint32(blk[2:6])
	nibbles := blk[6:22]
	for j := range 16 {
		b := nibbles[j]
		lo := uint8(b & 0x0F)
		hi := uint8(b >> 4)
		if qh&(1<<uint(j)) != 0 {
			lo |= 0x10
		}
		if qh&(1<<uint(j+16)) != 0 {
			hi |= 0x10
		}
		out[j] = int8(lo) - 16
		out[j+16] = int8(hi) - 16
	}
}

// DecodeIQ4NL decodes a byte-identical-to-q4_0 block whose nibbles are
// indices into the fixed non-linear lookup table rather than biased
// integers.
func DecodeIQ4NL(blk []byte, out *[32]int8) {
	for j := range 16 {
		b := blk[2+j]
		out[j] = iq4nlLUT[b&0x0F]
		out[j+16] = iq4nlLUT[b>>4]
	}
}

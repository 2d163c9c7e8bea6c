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

package hwy

import "math"

// Float16 represents an IEEE 754 half-precision (binary16) floating-point
// number: Sign(1) | Exponent(5, bias 15) | Mantissa(10).
//
// The quantised block formats (q8_0, q4_0, q5_0, iq4_nl) all store their
// per-block delta as a Float16, so conversion correctness here feeds
// directly into dequantisation accuracy.
type Float16 uint16

// Float16 constants for special values.
const (
	Float16Zero    Float16 = 0x0000
	Float16NegZero Float16 = 0x8000
	Float16One     Float16 = 0x3C00
	Float16Inf     Float16 = 0x7C00
	Float16NegInf  Float16 = 0xFC00
	Float16NaN     Float16 = 0x7E00
)

// Float16ToFloat32 converts a single Float16 to float32, handling zero,
// denormals, infinity and NaN.
func Float16ToFloat32(h Float16) float32 {
	bits := uint32(h)
	sign := bits >> 15
	exp := (bits >> 10) & 0x1F
	mant := bits & 0x3FF

	if exp == 0 {
		if mant == 0 {
			return math.Float32frombits(sign << 31)
		}
		// Denormalized: normalize by shifting until the leading bit is set.
		exp = 1
		for mant&0x400 == 0 {
			mant <<= 1
			exp--
		}
		mant &= 0x3FF
		exp = uint32(int32(exp) + 127 - 15)
	} else if exp == 31 {
		if mant == 0 {
			return math.Float32frombits((sign << 31) | 0x7F800000)
		}
		return math.Float32frombits((sign << 31) | 0x7FC00000 | (mant << 13))
	} else {
		exp = exp + 127 - 15
	}

	return math.Float32frombits((sign << 31) | (exp << 23) | (mant << 13))
}

// Float32ToFloat16 converts a float32 to Float16 with round-to-nearest-even,
// handling overflow (to infinity), underflow (to zero) and special values.
func Float32ToFloat16(f float32) Float16 {
	bits := math.Float32bits(f)
	sign := uint16((bits >> 16) & 0x8000)
	exp := int((bits>>23)&0xFF) - 127 + 15
	mant := bits & 0x7FFFFF

	if exp <= 0 {
		if exp < -10 {
			return Float16(sign)
		}
		mant = (mant | 0x800000) >> uint(1-exp)
		if mant&0x1000 != 0 && (mant&0x2FFF) != 0 {
			mant += 0x2000
		}
		return Float16(sign | uint16(mant>>13))
	} else if exp == 0xFF-127+15 {
		if mant != 0 {
			return Float16(sign | 0x7E00 | uint16(mant>>13))
		}
		return Float16(sign | 0x7C00)
	} else if exp >= 31 {
		return Float16(sign | 0x7C00)
	}

	if mant&0x1000 != 0 {
		if mant&0x2FFF != 0 {
			mant += 0x2000
			if mant&0x800000 != 0 {
				mant = 0
				exp++
				if exp >= 31 {
					return Float16(sign | 0x7C00)
				}
			}
		}
	}

	return Float16(sign | uint16(exp<<10) | uint16(mant>>13))
}

// IsNaN returns true if h is a NaN value.
func (h Float16) IsNaN() bool {
	exp := (h >> 10) & 0x1F
	mant := h & 0x3FF
	return exp == 31 && mant != 0
}

// Float32 converts this Float16 to float32.
func (h Float16) Float32() float32 {
	return Float16ToFloat32(h)
}

// NewFloat16 creates a Float16 from a float32 value.
func NewFloat16(f float32) Float16 {
	return Float32ToFloat16(f)
}

// Bits returns the raw uint16 representation.
func (h Float16) Bits() uint16 {
	return uint16(h)
}

// Float16FromBits creates a Float16 from raw bits, e.g. as read off the
// wire from a quantised block's delta field (little-endian uint16).
func Float16FromBits(bits uint16) Float16 {
	return Float16(bits)
}

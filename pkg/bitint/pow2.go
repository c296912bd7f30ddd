// SPDX-License-Identifier: MIT
/*
Package bitint provides power-of-two bit manipulation helpers for FFT and
buffer sizing. Every operation is O(1), allocation free and real-time safe.
*/
package bitint

import "math/bits"

// IsPowerOfTwo reports whether n is a positive power of 2.
// Powers of 2 have exactly one bit set, so (n & (n-1)) clears
// the only set bit and yields zero for them alone.
func IsPowerOfTwo(n int) bool {
	return n > 0 && (n&(n-1)) == 0
}

// NextPowerOfTwo returns the smallest power of 2 >= size.
// Exact powers of 2 are preserved: the size-1 adjustment keeps
// bits.Len from pushing them up to the next power.
//
//	Input  Output
//	4      4
//	5      8
//	0      1
//	-1     1
func NextPowerOfTwo(size int) int {
	if size <= 0 {
		return 1
	}
	return 1 << bits.Len64(uint64(size-1))
}

// Log2 returns the exponent k such that n == 1<<k. The result is only
// meaningful when IsPowerOfTwo(n) holds; callers validate first.
func Log2(n int) int {
	return bits.TrailingZeros64(uint64(n))
}

// Reverse returns i with its lowest width bits reversed. This is the
// index permutation of the radix-2 decimation-in-time FFT.
func Reverse(i, width int) int {
	return int(bits.Reverse64(uint64(i)) >> (64 - width))
}

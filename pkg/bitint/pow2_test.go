// SPDX-License-Identifier: MIT
package bitint

import (
	"fmt"
	"testing"
)

func TestIsPowerOfTwo(t *testing.T) {
	tests := []struct {
		n        int
		expected bool
	}{
		{-8, false}, // Negative number
		{0, false},  // Zero
		{1, true},   // 2^0
		{2, true},
		{7, false},
		{8, true},
		{1024, true},
		{1000, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d", tt.n), func(t *testing.T) {
			if result := IsPowerOfTwo(tt.n); result != tt.expected {
				t.Errorf("IsPowerOfTwo(%d) = %v, expected %v", tt.n, result, tt.expected)
			}
		})
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	tests := []struct {
		n        int
		expected int
	}{
		{-10, 1},     // Negative number
		{0, 1},       // Zero
		{8, 8},       // Already power of two
		{10, 16},     // Not power of two
		{1000, 1024}, // Large number
		{3, 4},       // Small non-power
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d→%d", tt.n, tt.expected), func(t *testing.T) {
			if result := NextPowerOfTwo(tt.n); result != tt.expected {
				t.Errorf("NextPowerOfTwo(%d) = %d, expected %d", tt.n, result, tt.expected)
			}
		})
	}
}

func TestLog2(t *testing.T) {
	for k := 0; k < 20; k++ {
		n := 1 << k
		if result := Log2(n); result != k {
			t.Errorf("Log2(%d) = %d, expected %d", n, result, k)
		}
	}
}

func TestReverse(t *testing.T) {
	tests := []struct {
		i, width, expected int
	}{
		{0, 3, 0},
		{1, 3, 4}, // 001 -> 100
		{2, 3, 2}, // 010 -> 010
		{3, 3, 6}, // 011 -> 110
		{6, 3, 3},
		{1, 10, 512},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%d", tt.i, tt.width), func(t *testing.T) {
			if result := Reverse(tt.i, tt.width); result != tt.expected {
				t.Errorf("Reverse(%d, %d) = %d, expected %d", tt.i, tt.width, result, tt.expected)
			}
		})
	}
}

func TestReverseIsInvolution(t *testing.T) {
	const width = 8
	for i := 0; i < 1<<width; i++ {
		if back := Reverse(Reverse(i, width), width); back != i {
			t.Fatalf("Reverse(Reverse(%d)) = %d, expected identity", i, back)
		}
	}
}

// SPDX-License-Identifier: MIT
// Package transport broadcasts rendered spectrum frames to remote
// observers. It is an optional side channel: the frame loop never blocks
// on it and dropped frames are not errors.
package transport

// Frame is one rendered spectrum frame as sent to clients.
type Frame struct {
	Heights []int   `json:"heights"`
	Peaks   []int   `json:"peaks"`
	FPS     float64 `json:"fps,omitempty"`
}

// Transport delivers frames to remote observers. Implementations must be
// safe to call from the frame loop: Send either queues quickly or drops.
type Transport interface {
	Send(frame Frame) error
	Close() error
}

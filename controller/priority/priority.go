// Copyright 2025 ETH Zurich
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package priority implements a two level queue on top of buffered channels.
// Values in the priority channel are always read before values in the
// best-effort channel.
package priority

type PriorityLabel uint8

const (
	WithPriority PriorityLabel = iota
	WithBestEffort
	lastPriority

	QueueCount = int(lastPriority)
)

// Queue is the reading side of a two level queue.
type Queue[T any] [QueueCount]<-chan T

// Channels is the writing side of a two level queue. It is not safe to call
// Push concurrently with Close.
type Channels[T any] [QueueCount]chan T

// New creates the channels of a queue, each with the given capacity.
func New[T any](size int) Channels[T] {
	var c Channels[T]
	for i := range c {
		c[i] = make(chan T, size)
	}
	return c
}

// Push enqueues v with the given label without blocking. It returns false if
// the channel is full.
func (c Channels[T]) Push(label PriorityLabel, v T) bool {
	select {
	case c[label] <- v:
		return true
	default:
		return false
	}
}

// Close closes all channels. Values already enqueued can still be read.
func (c Channels[T]) Close() {
	for _, ch := range c {
		close(ch)
	}
}

// Queue returns the reading side.
func (c Channels[T]) Queue() Queue[T] {
	var q Queue[T]
	for i := range c {
		q[i] = c[i]
	}
	return q
}

// ReadAsync returns a value from the queues read in their priority order.
// If no value is available, this function does not block and returns false.
func ReadAsync[T any](queue Queue[T]) (T, bool) {
	var v T
	var ok bool
loop:
	for _, q := range queue {
		select {
		case v, ok = <-q:
			if !ok {
				// Channel is closed.
				continue
			}
			break loop
		default:
		}
	}
	return v, ok
}

// ReadBlocking returns the first available value from the queues, retrieved in priority order.
// If no value is available at any queue, it blocks until one queue receives a value.
// It returns false once the queues are closed and drained.
func ReadBlocking[T any](queue Queue[T]) (T, bool) {
	// The select below is written for exactly two queues.
	var _ [2 - len(queue)]int
	var _ [len(queue) - 2]int

	v, ok := ReadAsync(queue)
	if ok {
		return v, ok
	}
	// Block until any queue has a value.
	select {
	case v, ok := <-queue[0]:
		return v, ok
	case v, ok := <-queue[1]:
		return v, ok
	}
}

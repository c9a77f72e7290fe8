package midiio

import "log"

// chunkBuffer is a fixed-capacity FIFO that stores inbound MIDI chunks
// between scheduler passes. Not safe for concurrent use; the caller must
// synchronize.
type chunkBuffer struct {
	buf      [][]byte
	capacity int
	head     int // next write position
	count    int
	overflow bool // true if any chunk was dropped since last drain
}

func newChunkBuffer(capacity int) *chunkBuffer {
	return &chunkBuffer{
		buf:      make([][]byte, capacity),
		capacity: capacity,
	}
}

func (c *chunkBuffer) push(chunk []byte) {
	if c.count == c.capacity {
		if !c.overflow {
			log.Printf("midiio: rx buffer full (%d chunks), dropping oldest", c.capacity)
			c.overflow = true
		}
		// Overwrite oldest: head is already pointing at it
		c.buf[c.head] = chunk
		c.head = (c.head + 1) % c.capacity
		// count stays at capacity
		return
	}
	c.buf[c.head] = chunk
	c.head = (c.head + 1) % c.capacity
	c.count++
}

func (c *chunkBuffer) drainAll() [][]byte {
	if c.count == 0 {
		return nil
	}

	result := make([][]byte, c.count)
	// Oldest chunk is at (head - count) mod capacity
	start := (c.head - c.count + c.capacity) % c.capacity
	for i := 0; i < c.count; i++ {
		result[i] = c.buf[(start+i)%c.capacity]
	}

	c.count = 0
	c.head = 0
	c.overflow = false
	return result
}

func (c *chunkBuffer) len() int {
	return c.count
}

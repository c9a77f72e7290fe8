package midiio

import (
	"bytes"
	"testing"
)

func TestChunkBufferFIFO(t *testing.T) {
	b := newChunkBuffer(4)

	b.push([]byte{0xFA})
	b.push([]byte{0xCF, 5})
	b.push([]byte{0xFC})

	if b.len() != 3 {
		t.Fatalf("expected len 3, got %d", b.len())
	}

	got := b.drainAll()
	want := [][]byte{{0xFA}, {0xCF, 5}, {0xFC}}
	if len(got) != len(want) {
		t.Fatalf("expected %d chunks, got %d", len(want), len(got))
	}
	for i := range want {
		if !bytes.Equal(got[i], want[i]) {
			t.Errorf("chunk %d: got % X, want % X", i, got[i], want[i])
		}
	}

	if b.len() != 0 {
		t.Errorf("expected empty buffer after drain, got len %d", b.len())
	}
}

func TestChunkBufferDrainEmpty(t *testing.T) {
	b := newChunkBuffer(4)
	if got := b.drainAll(); got != nil {
		t.Errorf("expected nil from empty drain, got %v", got)
	}
}

func TestChunkBufferOverflowDropsOldest(t *testing.T) {
	b := newChunkBuffer(3)

	b.push([]byte{1})
	b.push([]byte{2})
	b.push([]byte{3})
	b.push([]byte{4}) // overwrites {1}
	b.push([]byte{5}) // overwrites {2}

	got := b.drainAll()
	want := [][]byte{{3}, {4}, {5}}
	if len(got) != len(want) {
		t.Fatalf("expected %d chunks, got %d", len(want), len(got))
	}
	for i := range want {
		if !bytes.Equal(got[i], want[i]) {
			t.Errorf("chunk %d: got % X, want % X", i, got[i], want[i])
		}
	}
}

func TestChunkBufferReusableAfterOverflow(t *testing.T) {
	b := newChunkBuffer(2)
	b.push([]byte{1})
	b.push([]byte{2})
	b.push([]byte{3})
	b.drainAll()

	b.push([]byte{9})
	got := b.drainAll()
	if len(got) != 1 || !bytes.Equal(got[0], []byte{9}) {
		t.Errorf("buffer not reusable after overflow drain: %v", got)
	}
}

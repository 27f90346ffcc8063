package web

import (
	"bytes"
	"testing"
)

func TestCache(t *testing.T) {
	c := newCache(2)

	if _, ok := c.get(1); ok {
		t.Error("expected miss on an empty cache")
	}

	c.add(1, []byte{0xAA})
	c.add(2, []byte{0xBB})

	if data, ok := c.get(1); !ok || !bytes.Equal(data, []byte{0xAA}) {
		t.Error("expected hit for hash 1")
	}
	if data, ok := c.get(2); !ok || !bytes.Equal(data, []byte{0xBB}) {
		t.Error("expected hit for hash 2")
	}

	// a third entry evicts the oldest
	c.add(3, []byte{0xCC})
	if _, ok := c.get(1); ok {
		t.Error("expected hash 1 to be evicted")
	}
	if _, ok := c.get(2); !ok {
		t.Error("expected hash 2 to survive")
	}
	if _, ok := c.get(3); !ok {
		t.Error("expected hit for hash 3")
	}
}

package rsync

import "testing"

// reconstruct applies delta to base in memory, without touching the
// filesystem, so tests can check byte-for-byte equality directly.
func reconstruct(base []byte, delta *Delta) []byte {
	var out []byte
	baseLen := uint64(len(base))
	for _, op := range delta.Ops {
		switch op.Type {
		case OpCopy:
			end := op.Offset + op.Len
			if end > baseLen {
				end = baseLen
			}
			out = append(out, base[op.Offset:end]...)
		case OpInsert:
			out = append(out, op.Data...)
		}
	}
	return out
}

func patternBytes(n int, seed byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(int(seed) + i*7 + i/13)
	}
	return b
}

// assertNoConsecutiveInserts checks P7: the builder never emits two adjacent
// OpInsert operations, since runs of literal bytes are always coalesced into
// a single op before a Copy (or the end of the delta) is emitted.
func assertNoConsecutiveInserts(t *testing.T, delta *Delta) {
	t.Helper()
	for i := 1; i < len(delta.Ops); i++ {
		if delta.Ops[i-1].Type == OpInsert && delta.Ops[i].Type == OpInsert {
			t.Errorf("found two consecutive Insert ops at indices %d,%d", i-1, i)
		}
	}
}

// assertCopiesAreFullBlocksWithinBase checks P6: every Copy op names exactly
// one full signature block and stays within the bounds of base.
func assertCopiesAreFullBlocksWithinBase(t *testing.T, delta *Delta, baseLen int) {
	t.Helper()
	for i, op := range delta.Ops {
		if op.Type != OpCopy {
			continue
		}
		if op.Len != BlockSize {
			t.Errorf("op %d: Copy length %d is not a full block", i, op.Len)
		}
		if op.Offset+op.Len > uint64(baseLen) {
			t.Errorf("op %d: Copy range [%d,%d) exceeds base length %d", i, op.Offset, op.Offset+op.Len, baseLen)
		}
	}
}

// TestGenerateDeltaRoundTrip covers P1: applying a generated delta to its
// base always reproduces newData exactly, across a variety of shapes.
func TestGenerateDeltaRoundTrip(t *testing.T) {
	cases := map[string]struct {
		base    []byte
		newData []byte
	}{
		"identical multiple of block size": {
			base:    patternBytes(BlockSize*3, 1),
			newData: patternBytes(BlockSize*3, 1),
		},
		"identical with short tail":      {base: patternBytes(BlockSize*2+17, 5), newData: patternBytes(BlockSize*2+17, 5)},
		"empty base, short new":          {base: nil, newData: []byte("hello")},
		"empty base, multi-block new":    {base: nil, newData: patternBytes(BlockSize*2+3, 9)},
		"empty new, nonempty base":       {base: patternBytes(BlockSize*2, 3), newData: nil},
		"both empty":                     {base: nil, newData: nil},
		"disjoint, same length":          {base: patternBytes(BlockSize*2, 11), newData: patternBytes(BlockSize*2, 97)},
		"new shorter than one block":     {base: patternBytes(BlockSize*4, 2), newData: []byte("a short literal insert")},
		"appended tail beyond base":      {base: patternBytes(BlockSize*2, 4), newData: append(append([]byte{}, patternBytes(BlockSize*2, 4)...), patternBytes(100, 200)...)},
		"prepended literal before match": {base: patternBytes(BlockSize*2, 6), newData: append(append([]byte{}, []byte("PREFIX-THAT-IS-NOT-IN-BASE-")...), patternBytes(BlockSize*2, 6)...)},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			delta := GenerateDelta(c.base, c.newData)
			got := reconstruct(c.base, delta)

			if len(got) != len(c.newData) {
				t.Fatalf("reconstructed length %d, want %d", len(got), len(c.newData))
			}
			for i := range got {
				if got[i] != c.newData[i] {
					t.Fatalf("byte mismatch at offset %d: got %d, want %d", i, got[i], c.newData[i])
				}
			}
		})
	}
}

// TestGenerateDeltaIdentityExactMultiple covers P2 for the exact-multiple
// case: an unmodified base whose length is a multiple of BlockSize produces
// nothing but Copy ops.
func TestGenerateDeltaIdentityExactMultiple(t *testing.T) {
	base := patternBytes(BlockSize*3, 42)
	delta := GenerateDelta(base, base)

	if len(delta.Ops) != 3 {
		t.Fatalf("expected 3 ops, got %d", len(delta.Ops))
	}
	for i, op := range delta.Ops {
		if op.Type != OpCopy {
			t.Errorf("op %d: expected OpCopy, got %v", i, op.Type)
		}
		if op.Offset != uint64(i*BlockSize) {
			t.Errorf("op %d: expected offset %d, got %d", i, i*BlockSize, op.Offset)
		}
	}
}

// TestGenerateDeltaIdentityShortTail covers P2 for the non-multiple case:
// every full block is copied and the final partial block surfaces as
// exactly one trailing Insert.
func TestGenerateDeltaIdentityShortTail(t *testing.T) {
	base := patternBytes(BlockSize*2+17, 3)
	delta := GenerateDelta(base, base)

	if len(delta.Ops) != 3 {
		t.Fatalf("expected 3 ops (2 copies + 1 trailing insert), got %d", len(delta.Ops))
	}
	for i := 0; i < 2; i++ {
		if delta.Ops[i].Type != OpCopy {
			t.Errorf("op %d: expected OpCopy, got %v", i, delta.Ops[i].Type)
		}
	}
	last := delta.Ops[2]
	if last.Type != OpInsert {
		t.Fatalf("expected final op to be OpInsert, got %v", last.Type)
	}
	if len(last.Data) != 17 {
		t.Errorf("expected trailing insert of 17 bytes, got %d", len(last.Data))
	}
}

// TestGenerateDeltaEmptyBase covers P5: with no signature blocks to match
// against, the entire new content surfaces as a single literal insert.
func TestGenerateDeltaEmptyBase(t *testing.T) {
	newData := patternBytes(BlockSize*2+50, 8)
	delta := GenerateDelta(nil, newData)

	if len(delta.Ops) != 1 {
		t.Fatalf("expected exactly 1 op against an empty base, got %d", len(delta.Ops))
	}
	if delta.Ops[0].Type != OpInsert {
		t.Fatalf("expected OpInsert, got %v", delta.Ops[0].Type)
	}
	if len(delta.Ops[0].Data) != len(newData) {
		t.Errorf("expected insert to carry all %d bytes, got %d", len(newData), len(delta.Ops[0].Data))
	}
}

// TestGenerateDeltaDisjointInputs covers P3: when base and newData share no
// matching block, the delta degenerates to a single Insert spanning all of
// newData.
func TestGenerateDeltaDisjointInputs(t *testing.T) {
	base := patternBytes(BlockSize*3, 11)
	newData := patternBytes(BlockSize*3, 97)

	delta := GenerateDelta(base, newData)

	if len(delta.Ops) != 1 || delta.Ops[0].Type != OpInsert {
		t.Fatalf("expected a single Insert op for disjoint inputs, got %d ops", len(delta.Ops))
	}
	if len(delta.Ops[0].Data) != len(newData) {
		t.Errorf("expected insert to carry all %d bytes, got %d", len(newData), len(delta.Ops[0].Data))
	}
}

// TestGenerateDeltaShortInput covers P4: new content shorter than one block
// can never form a matching window, regardless of the base, and always
// becomes a single literal insert (or no ops at all if empty).
func TestGenerateDeltaShortInput(t *testing.T) {
	base := patternBytes(BlockSize*4, 1)

	short := []byte("a literal shorter than one block")
	delta := GenerateDelta(base, short)
	if len(delta.Ops) != 1 || delta.Ops[0].Type != OpInsert {
		t.Fatalf("expected single Insert op for short input, got %d ops", len(delta.Ops))
	}

	empty := GenerateDelta(base, nil)
	if len(empty.Ops) != 0 {
		t.Fatalf("expected no ops for empty newData, got %d", len(empty.Ops))
	}
}

// TestGenerateDeltaMiddleEdit covers the common case of a short edit
// inserted in the middle of otherwise-unmodified content: the scan must
// re-synchronize after the edit and resume copying.
func TestGenerateDeltaMiddleEdit(t *testing.T) {
	head := patternBytes(BlockSize*2, 1)
	tail := patternBytes(BlockSize*2, 1)[BlockSize*1:]
	edit := []byte("--- this text was not present in the base file ---")

	base := append(append([]byte{}, head...), tail...)

	newData := append(append([]byte{}, head...), edit...)
	newData = append(newData, tail...)

	delta := GenerateDelta(base, newData)

	assertNoConsecutiveInserts(t, delta)
	assertCopiesAreFullBlocksWithinBase(t, delta, len(base))

	got := reconstruct(base, delta)
	if len(got) != len(newData) {
		t.Fatalf("reconstructed length %d, want %d", len(got), len(newData))
	}
	for i := range got {
		if got[i] != newData[i] {
			t.Fatalf("byte mismatch at offset %d", i)
		}
	}

	sawInsert := false
	for _, op := range delta.Ops {
		if op.Type == OpInsert {
			sawInsert = true
		}
	}
	if !sawInsert {
		t.Error("expected at least one Insert op covering the edited region")
	}
}

// TestGenerateDeltaInvariants covers P6 and P7 for a newData whose first two
// blocks come from base and whose remaining three blocks are unrelated.
func TestGenerateDeltaInvariants(t *testing.T) {
	base := patternBytes(BlockSize*5, 17)
	newData := append(append([]byte{}, patternBytes(BlockSize*2, 17)...), patternBytes(BlockSize*3, 250)...)

	delta := GenerateDelta(base, newData)
	assertNoConsecutiveInserts(t, delta)
	assertCopiesAreFullBlocksWithinBase(t, delta, len(base))
}

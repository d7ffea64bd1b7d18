package rsync

// OpType identifies the kind of a DeltaOp.
type OpType int

const (
	// OpCopy references a contiguous run of bytes in the base.
	OpCopy OpType = iota
	// OpInsert carries literal bytes to emit verbatim.
	OpInsert
)

// DeltaOp is one instruction in a Delta's program. Exactly one of (Offset,
// Len) or Data is meaningful, depending on Type.
type DeltaOp struct {
	Type OpType
	// Offset and Len are valid for OpCopy.
	Offset uint64
	Len    uint64
	// Data is valid for OpInsert.
	Data []byte
}

// Delta is the ordered sequence of operations that reconstructs a new byte
// sequence from a base. It is read-only once generated.
type Delta struct {
	Ops []DeltaOp
}

// GenerateDelta scans newData against the signature of base and returns a
// delta whose application to base reproduces newData exactly. It builds the
// base's signature internally, using the engine's default block size, so
// callers only need the two raw byte sequences.
func GenerateDelta(base, newData []byte) *Delta {
	return GenerateDeltaWithBlockSize(base, newData, BlockSize)
}

// GenerateDeltaWithBlockSize behaves like GenerateDelta but partitions base
// using blockSize instead of the package default. A blockSize of zero falls
// back to BlockSize.
func GenerateDeltaWithBlockSize(base, newData []byte, blockSize uint64) *Delta {
	signature := BuildSignatureWithBlockSize(base, blockSize)
	return generateDeltaFromSignature(signature, newData)
}

// generateDeltaFromSignature is the core scanning loop, separated out so
// tests can exercise it against a pre-built signature without forcing a
// second pass over base.
func generateDeltaFromSignature(signature *Signature, newData []byte) *Delta {
	delta := &Delta{}

	blockSize := signature.BlockSize()

	// Fast path: the rolling window cannot be formed, so no block match is
	// possible regardless of what the base looks like.
	if uint64(len(newData)) < blockSize {
		if len(newData) > 0 {
			delta.Ops = append(delta.Ops, DeltaOp{
				Type: OpInsert,
				Data: cloneBytes(newData),
			})
		}
		return delta
	}

	var insertBuf []byte
	flush := func() {
		if len(insertBuf) > 0 {
			delta.Ops = append(delta.Ops, DeltaOp{Type: OpInsert, Data: insertBuf})
			insertBuf = nil
		}
	}

	n := uint64(len(newData))
	var pos uint64

	rh := newBuzhash(uint32(blockSize))
	rh.Write(newData[0:blockSize])
	weak := rh.Sum32()

	for {
		window := newData[pos : pos+blockSize]
		matched := false

		if candidates := signature.candidates(weak); len(candidates) > 0 {
			strong := strongHash(window)
			for _, entry := range candidates {
				if entry.Len != blockSize || entry.Strong != strong {
					continue
				}

				// Confirmed match: flush any pending literal bytes, then
				// emit the copy.
				flush()
				delta.Ops = append(delta.Ops, DeltaOp{
					Type:   OpCopy,
					Offset: entry.Offset,
					Len:    entry.Len,
				})
				pos += blockSize

				if pos+blockSize <= n {
					// Reseed: the window jumped to a disjoint range, so
					// there's no cheaper option than recomputing from
					// scratch.
					rh = newBuzhash(uint32(blockSize))
					rh.Write(newData[pos : pos+blockSize])
					weak = rh.Sum32()
				} else {
					if pos < n {
						insertBuf = append(insertBuf, newData[pos:]...)
					}
					flush()
					return delta
				}

				matched = true
				break
			}
		}

		if matched {
			continue
		}

		// No match: the cursor advances by one byte, and the rolling hash
		// slides rather than being reseeded.
		insertBuf = append(insertBuf, newData[pos])
		pos++

		if pos+blockSize > n {
			insertBuf = append(insertBuf, newData[pos:]...)
			flush()
			return delta
		}

		rh.Write(newData[pos+blockSize-1 : pos+blockSize])
		weak = rh.Sum32()
	}
}

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

package rsync

// BlockSize is the default fixed block size used to partition a base
// sequence into signature blocks when no override is given. It is part of
// the wire contract between signature construction and delta construction:
// changing it changes match granularity and memory use for every signature
// already built.
const BlockSize = 4096

// SigEntry describes one indexed block of a base sequence.
type SigEntry struct {
	// Strong is the 64-bit verification hash of the block.
	Strong uint64
	// Offset is the byte offset of the block within the base.
	Offset uint64
	// Len is the block's length in bytes. It equals the signature's block
	// size for every block except possibly the final one.
	Len uint64
}

// Signature indexes the blocks of a base sequence by weak hash, so that the
// delta builder can probe candidate blocks in O(1) per position. Multiple
// entries may share a weak hash key; the strong hash filters collisions
// during matching. A Signature is read-only once built.
type Signature struct {
	blockSize uint64
	entries   map[uint32][]SigEntry
}

// BuildSignature partitions base into BlockSize-aligned blocks (the final
// block may be shorter) and indexes each by weak hash. An empty base yields
// a signature with no entries.
func BuildSignature(base []byte) *Signature {
	return BuildSignatureWithBlockSize(base, BlockSize)
}

// BuildSignatureWithBlockSize behaves like BuildSignature but partitions
// base using blockSize instead of the package default. A blockSize of zero
// falls back to BlockSize. This is the hook daemon configuration
// (pkg/configuration's BlockSize field) uses to override the engine's
// default granularity.
func BuildSignatureWithBlockSize(base []byte, blockSize uint64) *Signature {
	if blockSize == 0 {
		blockSize = BlockSize
	}

	sig := &Signature{blockSize: blockSize, entries: make(map[uint32][]SigEntry)}

	var offset uint64
	total := uint64(len(base))
	for offset < total {
		length := blockSize
		if remaining := total - offset; remaining < length {
			length = remaining
		}
		block := base[offset : offset+length]

		weak := weakHash(block)
		strong := strongHash(block)

		sig.entries[weak] = append(sig.entries[weak], SigEntry{
			Strong: strong,
			Offset: offset,
			Len:    length,
		})

		offset += length
	}

	return sig
}

// BlockSize returns the block size this signature was built with.
func (s *Signature) BlockSize() uint64 {
	return s.blockSize
}

// candidates returns the (possibly empty) ordered sequence of blocks sharing
// the given weak hash, in ascending base offset.
func (s *Signature) candidates(weak uint32) []SigEntry {
	return s.entries[weak]
}

// Empty reports whether the signature indexes no blocks, i.e. whether it was
// built from a zero-length base.
func (s *Signature) Empty() bool {
	return len(s.entries) == 0
}

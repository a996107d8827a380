package linerev

// revBlock is the unit of the block-wise reversal path.
const revBlock = 16

// reverseInto writes the byte-reversed image of src into dst, which
// must hold at least len(src) bytes. Blocks are taken from the tail of
// src toward its head and internally reversed, so the output fills
// front to back; the last partial block falls back to a byte loop.
// Output is byte-identical to reverseScalar.
func reverseInto(dst, src []byte) {
	o := 0
	i := len(src)

	for i >= revBlock {
		blk := src[i-revBlock : i]
		for j := 0; j < revBlock; j++ {
			dst[o+j] = blk[revBlock-1-j]
		}
		o += revBlock
		i -= revBlock
	}

	for i > 0 {
		i--
		dst[o] = src[i]
		o++
	}
}

// reverseScalar is the plain indexed reversal, kept as the reference
// the block path is checked against.
func reverseScalar(dst, src []byte) {
	for i, j := 0, len(src)-1; j >= 0; i, j = i+1, j-1 {
		dst[i] = src[j]
	}
}

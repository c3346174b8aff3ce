package bootstrap

import (
	"fmt"
)

// Block is a contiguous half-open index range [Start, End) over a series.
type Block struct {
	Start int
	End   int
}

// Len returns the number of indices covered by the block.
func (b Block) Len() int {
	return b.End - b.Start
}

// Partition splits the index range [0, n) into contiguous blocks of roughly
// the requested size. The block count is max(n/size, 1); the first n mod k
// blocks are one element longer than the rest, so sizes differ by at most
// one and the blocks cover every index exactly once. A size of n or larger
// yields a single block.
func Partition(n, size int) ([]Block, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: series length %d must be positive", ErrInvalidConfig, n)
	}
	if size < 1 {
		return nil, fmt.Errorf("%w: block size %d must be positive", ErrInvalidConfig, size)
	}

	k := n / size
	if k < 1 {
		k = 1
	}

	base := n / k
	rem := n % k

	blocks := make([]Block, k)
	start := 0
	for i := range blocks {
		length := base
		if i < rem {
			length++
		}
		blocks[i] = Block{Start: start, End: start + length}
		start += length
	}

	return blocks, nil
}

/*
Splits the link ID space into contiguous ranges so that a link graph can
be read in bounded batches.
*/
package partition

import (
	"bytes"
	"math/big"

	"github.com/google/uuid"
	"golang.org/x/xerrors"
)

// Range represents a contiguous UUID region which is split into a number of
// partitions.
type Range struct {
	start       uuid.UUID
	rangeSplits []uuid.UUID
}

// NewFullRange creates a new range that covers [uuid.Nil, end) and splits it
// into the provided number of partitions.
func NewFullRange(end uuid.UUID, numPartitions int) (Range, error) {
	return NewRange(uuid.Nil, end, numPartitions)
}

// NewRange creates a new range [start, end) and splits it into the
// provided number of partitions.
func NewRange(start, end uuid.UUID, numPartitions int) (Range, error) {
	if bytes.Compare(start[:], end[:]) >= 0 {
		return Range{}, xerrors.Errorf("range start UUID must be less than the end UUID")
	} else if numPartitions <= 0 {
		return Range{}, xerrors.Errorf("number of partitions must be at least equal to 1")
	}

	// Each partition spans (end - start + 1) / numPartitions IDs; the last
	// one absorbs the remainder.
	var (
		startInt = new(big.Int).SetBytes(start[:])
		partSize = new(big.Int).Sub(new(big.Int).SetBytes(end[:]), startInt)
	)
	partSize.Div(partSize.Add(partSize, big.NewInt(1)), big.NewInt(int64(numPartitions)))

	ranges := make([]uuid.UUID, numPartitions)
	for partition := 0; partition < numPartitions-1; partition++ {
		to := new(big.Int).Mul(partSize, big.NewInt(int64(partition+1)))
		to.Add(to, startInt)
		to.FillBytes(ranges[partition][:])
	}
	ranges[numPartitions-1] = end

	return Range{start: start, rangeSplits: ranges}, nil
}

// NumPartitions returns the number of partitions the range is split into.
func (r Range) NumPartitions() int { return len(r.rangeSplits) }

// PartitionExtents returns the [start, end) range for the requested partition.
func (r Range) PartitionExtents(partition int) (uuid.UUID, uuid.UUID, error) {
	if partition < 0 || partition >= len(r.rangeSplits) {
		return uuid.Nil, uuid.Nil, xerrors.Errorf("invalid partition index")
	}

	if partition == 0 {
		return r.start, r.rangeSplits[0], nil
	}
	return r.rangeSplits[partition-1], r.rangeSplits[partition], nil
}

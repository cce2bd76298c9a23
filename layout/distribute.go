// Package layout partitions classified blocks across output columns and
// assembles the final template tree.
package layout

import (
	"errors"
	"fmt"

	"github.com/tsawler/pagecraft/model"
)

// Strategy selects the policy for partitioning blocks across columns.
type Strategy string

const (
	// StrategyAuto pins headings to the first column and spreads the
	// remaining blocks round-robin across all columns.
	StrategyAuto Strategy = "auto"
	// StrategySequential splits the block list into contiguous runs of
	// as-equal-as-possible length, one run per column.
	StrategySequential Strategy = "sequential"
	// StrategyBalanced assigns blocks round-robin, guaranteeing column
	// counts that differ by at most one.
	StrategyBalanced Strategy = "balanced"
)

// MaxColumns is the largest supported column count.
const MaxColumns = 3

var (
	// ErrInvalidColumnCount is returned for a column count outside 1-3.
	ErrInvalidColumnCount = errors.New("layout: column count must be between 1 and 3")

	// ErrUnknownStrategy is returned for an unrecognized strategy name.
	ErrUnknownStrategy = errors.New("layout: unknown distribution strategy")
)

// ParseStrategy validates a strategy name from configuration.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyAuto, StrategySequential, StrategyBalanced:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}

// Validate checks a columns/strategy pair before any processing starts.
func Validate(columns int, strategy Strategy) error {
	if columns < 1 || columns > MaxColumns {
		return fmt.Errorf("%w: got %d", ErrInvalidColumnCount, columns)
	}
	if _, err := ParseStrategy(string(strategy)); err != nil {
		return err
	}
	return nil
}

// Distribute partitions blocks into columns ordered lists. Every block
// appears in exactly one column, and within each column Order is
// strictly increasing. Blocks are never reordered relative to one
// another inside a column.
func Distribute(blocks []model.Block, columns int, strategy Strategy) ([][]model.Block, error) {
	if err := Validate(columns, strategy); err != nil {
		return nil, err
	}

	cols := make([][]model.Block, columns)
	for i := range cols {
		cols[i] = []model.Block{}
	}

	if columns == 1 {
		cols[0] = append(cols[0], blocks...)
		return cols, nil
	}

	switch strategy {
	case StrategySequential:
		distributeSequential(blocks, cols)
	case StrategyBalanced:
		distributeBalanced(blocks, cols)
	case StrategyAuto:
		distributeAuto(blocks, cols)
	}

	return cols, nil
}

// distributeSequential fills columns with contiguous runs: the first
// n mod columns columns get one extra block.
func distributeSequential(blocks []model.Block, cols [][]model.Block) {
	n := len(blocks)
	per := n / len(cols)
	extra := n % len(cols)

	idx := 0
	for c := range cols {
		count := per
		if c < extra {
			count++
		}
		cols[c] = append(cols[c], blocks[idx:idx+count]...)
		idx += count
	}
}

// distributeBalanced assigns the i-th block to column i mod columns.
func distributeBalanced(blocks []model.Block, cols [][]model.Block) {
	for i, b := range blocks {
		c := i % len(cols)
		cols[c] = append(cols[c], b)
	}
}

// distributeAuto places blocks in two explicit passes so the ordering
// invariants stay independently checkable: first every heading goes to
// column 0 in document order, then the remaining blocks go round-robin
// across all columns (column 0 included), appended after the headings.
// The document outline stays in the primary column while body content
// spreads evenly.
func distributeAuto(blocks []model.Block, cols [][]model.Block) {
	for _, b := range blocks {
		if b.Kind == model.KindHeading {
			cols[0] = append(cols[0], b)
		}
	}

	i := 0
	for _, b := range blocks {
		if b.Kind == model.KindHeading {
			continue
		}
		c := i % len(cols)
		cols[c] = append(cols[c], b)
		i++
	}
}

package tracer

import "fmt"

// The BlockScheduler interface is implemented by all frame partitioning
// algorithms.
type BlockScheduler interface {
	// Split a frame into blocks of rows that can be traced independently by
	// a pool of numTracers tracers. The returned blocks cover every row
	// exactly once.
	Schedule(numTracers int, frameH uint32) []Block
}

// Select a scheduler by name. The block height is only used by the tile
// scheduler.
func SchedulerByName(name string, blockH uint32) (BlockScheduler, error) {
	switch name {
	case "", "scanline":
		return ScanlineScheduler(), nil
	case "tile":
		return TileScheduler(blockH), nil
	case "even":
		return EvenScheduler(), nil
	}
	return nil, fmt.Errorf("tracer: unknown scheduler %q", name)
}

// The scanline scheduler emits one block per frame row.
type scanlineScheduler struct{}

func ScanlineScheduler() BlockScheduler {
	return scanlineScheduler{}
}

func (scanlineScheduler) Schedule(_ int, frameH uint32) []Block {
	return TileScheduler(1).Schedule(0, frameH)
}

// The tile scheduler emits blocks of a fixed height. The last block may be
// shorter.
type tileScheduler struct {
	blockH uint32
}

func TileScheduler(blockH uint32) BlockScheduler {
	if blockH == 0 {
		blockH = 1
	}
	return &tileScheduler{blockH: blockH}
}

func (sch *tileScheduler) Schedule(_ int, frameH uint32) []Block {
	blocks := make([]Block, 0, (frameH+sch.blockH-1)/sch.blockH)
	for y := uint32(0); y < frameH; y += sch.blockH {
		h := sch.blockH
		if y+h > frameH {
			h = frameH - y
		}
		blocks = append(blocks, Block{Y: y, H: h})
	}
	return blocks
}

// The even scheduler assigns one contiguous block to each tracer.
type evenScheduler struct{}

func EvenScheduler() BlockScheduler {
	return evenScheduler{}
}

// Each tracer receives floor(frameH / numTracers) rows; in case rows don't
// add up to the frame height the missing ones are appended to the first
// block. Tracers that would receive no rows are left idle.
func (evenScheduler) Schedule(numTracers int, frameH uint32) []Block {
	if numTracers < 1 {
		numTracers = 1
	}
	if uint32(numTracers) > frameH {
		numTracers = int(frameH)
	}
	if numTracers == 0 {
		return nil
	}

	rows := frameH / uint32(numTracers)
	blocks := make([]Block, numTracers)
	blocks[0].H = rows + frameH - rows*uint32(numTracers)
	for idx := 1; idx < numTracers; idx++ {
		blocks[idx].Y = blocks[idx-1].Y + blocks[idx-1].H
		blocks[idx].H = rows
	}
	return blocks
}

// internal/table/registers.go
package table

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/tamzrod/pdp-monitor/internal/pdp"
	"github.com/tamzrod/pdp-monitor/internal/writer"
)

// RegsPerValue is the register width of one table value (float32).
const RegsPerValue = 2

// RegisterTable maps a fixed key layout onto a holding-register image.
// PutNumber only touches the image; Flush delivers it in one write.
// Keys outside the layout are dropped and counted.
type RegisterTable struct {
	mu sync.Mutex

	cli    writer.RegisterWriter
	unitID uint8
	base   uint16

	slots   map[string]int
	image   []uint16
	dropped int
}

// NewRegisterTable lays keys out in order, RegsPerValue registers each,
// starting at base on unitID.
func NewRegisterTable(cli writer.RegisterWriter, unitID uint8, base uint16, keys []string) *RegisterTable {
	slots := make(map[string]int, len(keys))
	for i, k := range keys {
		slots[k] = i
	}
	return &RegisterTable{
		cli:    cli,
		unitID: unitID,
		base:   base,
		slots:  slots,
		image:  make([]uint16, len(keys)*RegsPerValue),
	}
}

// NewPanelTable lays out every key a panel publishes.
func NewPanelTable(cli writer.RegisterWriter, unitID uint8, base uint16) *RegisterTable {
	return NewRegisterTable(cli, unitID, base, pdp.TableKeys())
}

func (t *RegisterTable) PutNumber(key string, value float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	slot, ok := t.slots[key]
	if !ok {
		t.dropped++
		return
	}

	bits := math.Float32bits(float32(value))
	t.image[slot*RegsPerValue] = uint16(bits >> 16)
	t.image[slot*RegsPerValue+1] = uint16(bits)
}

// Flush writes the whole image at the base address.
func (t *RegisterTable) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cli == nil {
		return fmt.Errorf("table: no client for unit %d", t.unitID)
	}
	if err := t.cli.WriteRegisters(t.unitID, t.base, t.image); err != nil {
		return fmt.Errorf("table: unit=%d addr=%d qty=%d: %w", t.unitID, t.base, len(t.image), err)
	}
	return nil
}

// Dropped returns how many writes hit keys outside the layout.
func (t *RegisterTable) Dropped() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dropped
}

// Span returns the register footprint of the table.
func (t *RegisterTable) Span() int { return len(t.image) }

// DecodeFloat reads one value back out of a register pair.
func DecodeFloat(hi, lo uint16) float64 {
	var b [4]byte
	binary.BigEndian.PutUint16(b[0:2], hi)
	binary.BigEndian.PutUint16(b[2:4], lo)
	return float64(math.Float32frombits(binary.BigEndian.Uint32(b[:])))
}

var _ pdp.Table = (*RegisterTable)(nil)

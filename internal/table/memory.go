// internal/table/memory.go
package table

import (
	"sort"
	"sync"

	"github.com/tamzrod/pdp-monitor/internal/pdp"
)

// MemoryTable is an in-process table. Safe for concurrent use.
type MemoryTable struct {
	mu   sync.RWMutex
	vals map[string]float64
}

func NewMemoryTable() *MemoryTable {
	return &MemoryTable{vals: make(map[string]float64)}
}

func (m *MemoryTable) PutNumber(key string, value float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vals[key] = value
}

// Number returns the last value written under key.
func (m *MemoryTable) Number(key string) (float64, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.vals[key]
	return v, ok
}

// Keys returns every written key, sorted.
func (m *MemoryTable) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.vals))
	for k := range m.vals {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

var _ pdp.Table = (*MemoryTable)(nil)

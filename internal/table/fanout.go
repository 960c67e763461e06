// internal/table/fanout.go
package table

import "github.com/tamzrod/pdp-monitor/internal/pdp"

// Fanout writes every value to each member table. Nil members are skipped.
type Fanout []pdp.Table

func (f Fanout) PutNumber(key string, value float64) {
	for _, t := range f {
		if t != nil {
			t.PutNumber(key, value)
		}
	}
}

var _ pdp.Table = Fanout(nil)

// internal/pdp/table.go
package pdp

import "strconv"

// SmartDashboardType identifies this accessor to dashboards.
const SmartDashboardType = "PowerDistributionPanel"

// Table keys written by PublishToTable.
const (
	KeyVoltage      = "Voltage"
	KeyTotalCurrent = "TotalCurrent"
)

// Table is a key/value telemetry sink accepting named numeric writes.
// The panel never owns it.
type Table interface {
	PutNumber(key string, value float64)
}

// Sendable is something that publishes itself into a Table.
type Sendable interface {
	BindTable(t Table)
	Table() Table
	PublishToTable()
	SmartDashboardType() string
}

// LiveWindowSendable is a Sendable with live-window lifecycle hooks.
type LiveWindowSendable interface {
	Sendable
	StartLiveWindowMode()
	StopLiveWindowMode()
}

// NoLiveWindow provides no-op live-window hooks for embedding.
type NoLiveWindow struct{}

func (NoLiveWindow) StartLiveWindowMode() {}
func (NoLiveWindow) StopLiveWindowMode() {}

// ChannelKey returns the table key for one channel current ("Chan0".."Chan15").
func ChannelKey(channel int) string {
	return "Chan" + strconv.Itoa(channel)
}

// TableKeys returns every key PublishToTable writes, in write order.
func TableKeys() []string {
	keys := make([]string, 0, NumChannels+2)
	for c := 0; c < NumChannels; c++ {
		keys = append(keys, ChannelKey(c))
	}
	return append(keys, KeyVoltage, KeyTotalCurrent)
}

// internal/pdp/panel.go
package pdp

import "strconv"

// NumChannels is the number of metered output channels on one PDP.
const NumChannels = 16

// InvalidModule is the module index of a panel whose initialization failed.
const InvalidModule = -1

// Panel is a validated accessor over one PDP module.
//
// A failed initialization disables the panel for good: queries return 0 and
// commands do nothing, without touching the HAL. Failures after a successful
// initialization are reported and never disable it.
//
// Panel holds no lock. Concurrent use of one Panel is not supported.
type Panel struct {
	NoLiveWindow

	hal      HAL
	module   int
	disabled bool
	reporter Reporter
	table    Table
}

// New binds a panel to module and initializes it through the HAL.
// A nil reporter discards reports.
func New(h HAL, module int, r Reporter) *Panel {
	if r == nil {
		r = NopReporter{}
	}

	p := &Panel{
		hal:      h,
		module:   module,
		reporter: r,
	}

	if st := h.InitializePDP(module); st != StatusOK {
		p.reporter.Report(&Error{
			Kind:   ErrRange,
			Op:     "Initialize",
			Status: st,
			Min:    0,
			Max:    h.GetNumPDPModules(),
			Value:  module,
			Msg:    h.ErrorMessage(st),
		})
		p.module = InvalidModule
		p.disabled = true
	}

	return p
}

// NewDefault binds a panel to module 0.
func NewDefault(h HAL, r Reporter) *Panel {
	return New(h, 0, r)
}

// Module returns the bound module index, or InvalidModule once disabled.
func (p *Panel) Module() int { return p.module }

// Disabled reports whether initialization failed.
func (p *Panel) Disabled() bool { return p.disabled }

// Voltage returns the input voltage in volts.
func (p *Panel) Voltage() float64 {
	return p.read("GetVoltage", p.hal.GetPDPVoltage)
}

// Temperature returns the panel temperature in degrees Celsius.
func (p *Panel) Temperature() float64 {
	return p.read("GetTemperature", p.hal.GetPDPTemperature)
}

// Current returns the current of one channel (0-15) in amperes.
// An out-of-range channel is reported, and the HAL is still queried.
func (p *Panel) Current(channel int) float64 {
	if p.Disabled() {
		return 0
	}

	if channel < 0 || channel >= NumChannels {
		p.reporter.Report(&Error{
			Kind:  ErrRange,
			Op:    "GetCurrent",
			Min:   0,
			Max:   NumChannels,
			Value: channel,
			Msg:   "PDP Channel " + strconv.Itoa(channel),
		})
	}

	v, st := p.hal.GetPDPChannelCurrent(p.module, channel)
	p.check("GetCurrent", st)
	return v
}

// TotalCurrent returns the current drawn across all channels in amperes.
func (p *Panel) TotalCurrent() float64 {
	return p.read("GetTotalCurrent", p.hal.GetPDPTotalCurrent)
}

// TotalPower returns the power drawn across all channels in watts.
func (p *Panel) TotalPower() float64 {
	return p.read("GetTotalPower", p.hal.GetPDPTotalPower)
}

// TotalEnergy returns the energy drawn across all channels in joules.
func (p *Panel) TotalEnergy() float64 {
	return p.read("GetTotalEnergy", p.hal.GetPDPTotalEnergy)
}

// ResetTotalEnergy zeroes the accumulated energy counter.
func (p *Panel) ResetTotalEnergy() {
	p.command("ResetTotalEnergy", p.hal.ResetPDPTotalEnergy)
}

// ClearStickyFaults clears every sticky fault flag on the panel.
func (p *Panel) ClearStickyFaults() {
	p.command("ClearStickyFaults", p.hal.ClearPDPStickyFaults)
}

// BindTable stores t and publishes to it once.
func (p *Panel) BindTable(t Table) {
	p.table = t
	p.PublishToTable()
}

// Table returns the bound table, or nil.
func (p *Panel) Table() Table { return p.table }

// PublishToTable writes every channel current, the voltage and the total
// current into the bound table. Without a table it does nothing.
func (p *Panel) PublishToTable() {
	if p.table == nil {
		return
	}

	for c := 0; c < NumChannels; c++ {
		p.table.PutNumber(ChannelKey(c), p.Current(c))
	}
	p.table.PutNumber(KeyVoltage, p.Voltage())
	p.table.PutNumber(KeyTotalCurrent, p.TotalCurrent())
}

// SmartDashboardType returns the dashboard type name.
func (p *Panel) SmartDashboardType() string { return SmartDashboardType }

// ---- internal ----

func (p *Panel) read(op string, fn func(module int) (float64, Status)) float64 {
	if p.Disabled() {
		return 0
	}
	v, st := fn(p.module)
	p.check(op, st)
	return v
}

func (p *Panel) command(op string, fn func(module int) Status) {
	if p.Disabled() {
		return
	}
	p.check(op, fn(p.module))
}

func (p *Panel) check(op string, st Status) {
	if st == StatusOK {
		return
	}
	p.reporter.Report(&Error{
		Kind:   ErrTimeout,
		Op:     op,
		Status: st,
	})
}

var _ LiveWindowSendable = (*Panel)(nil)

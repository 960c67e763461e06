// internal/hal/modbushal/binding.go
package modbushal

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"net"
	"os"
	"sync"
	"time"

	"github.com/goburrow/modbus"

	"github.com/tamzrod/pdp-monitor/internal/pdp"
)

// Status codes returned by the binding. All are negative; 0 is pdp.StatusOK.
const (
	StatusInvalidModule  pdp.Status = -1
	StatusInvalidChannel pdp.Status = -2
	StatusNotInitialized pdp.Status = -3
	StatusException      pdp.Status = -4
	StatusTransport      pdp.Status = -5
	StatusShortResponse  pdp.Status = -6
	StatusTimeout        pdp.Status = -1154
)

var statusMessages = map[pdp.Status]string{
	pdp.StatusOK:         "",
	StatusInvalidModule:  "PDP module index out of range",
	StatusInvalidChannel: "PDP channel index out of range",
	StatusNotInitialized: "PDP module not initialized",
	StatusException:      "Modbus exception response from PDP gateway",
	StatusTransport:      "Modbus transport failure",
	StatusShortResponse:  "short Modbus response from PDP gateway",
	StatusTimeout:        "PDP gateway timed out",
}

// registerClient is the subset of modbus.Client the binding uses.
type registerClient interface {
	ReadInputRegisters(address, quantity uint16) ([]byte, error)
	WriteSingleCoil(address, value uint16) ([]byte, error)
}

// Config is minimal transport config.
type Config struct {
	Transport string // "tcp" or "rtu"
	Endpoint  string // tcp host:port
	Device    string // rtu serial device
	BaudRate  int
	Timeout   time.Duration

	UnitIDBase uint8
	Modules    int
}

// Binding implements pdp.HAL over a Modbus gateway.
// It serializes requests because it mutates the slave id per module.
type Binding struct {
	mu         sync.Mutex
	client     registerClient
	selectUnit func(id uint8)
	closer     func() error

	base        uint8
	modules     int
	initialized map[int]bool
}

// New creates a connected binding.
func New(cfg Config) (*Binding, error) {
	if cfg.Modules <= 0 {
		return nil, errors.New("modbushal: modules must be > 0")
	}

	switch cfg.Transport {
	case "tcp":
		if cfg.Endpoint == "" {
			return nil, errors.New("modbushal: endpoint required")
		}
		h := modbus.NewTCPClientHandler(cfg.Endpoint)
		h.Timeout = cfg.Timeout
		if err := h.Connect(); err != nil {
			return nil, fmt.Errorf("modbushal: connect %s: %w", cfg.Endpoint, err)
		}
		return newBinding(cfg, modbus.NewClient(h), func(id uint8) { h.SlaveId = id }, h.Close), nil

	case "rtu":
		if cfg.Device == "" {
			return nil, errors.New("modbushal: device required")
		}
		h := modbus.NewRTUClientHandler(cfg.Device)
		h.BaudRate = cfg.BaudRate
		h.DataBits = 8
		h.Parity = "N"
		h.StopBits = 1
		h.Timeout = cfg.Timeout
		if err := h.Connect(); err != nil {
			return nil, fmt.Errorf("modbushal: open %s: %w", cfg.Device, err)
		}
		return newBinding(cfg, modbus.NewClient(h), func(id uint8) { h.SlaveId = id }, h.Close), nil

	default:
		return nil, fmt.Errorf("modbushal: unsupported transport %q", cfg.Transport)
	}
}

func newBinding(cfg Config, c registerClient, selectUnit func(uint8), closer func() error) *Binding {
	return &Binding{
		client:      c,
		selectUnit:  selectUnit,
		closer:      closer,
		base:        cfg.UnitIDBase,
		modules:     cfg.Modules,
		initialized: make(map[int]bool),
	}
}

// Close closes the underlying transport.
func (b *Binding) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closer == nil {
		return nil
	}
	return b.closer()
}

// ---- pdp.HAL ----

// InitializePDP range-checks module and reads its voltage once.
// A failed read drops any earlier initialization of the module.
func (b *Binding) InitializePDP(module int) pdp.Status {
	if module < 0 || module >= b.modules {
		return StatusInvalidModule
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, st := b.readFloat(module, RegVoltage); st != pdp.StatusOK {
		delete(b.initialized, module)
		return st
	}
	b.initialized[module] = true
	return pdp.StatusOK
}

func (b *Binding) GetNumPDPModules() int { return b.modules }

func (b *Binding) GetPDPVoltage(module int) (float64, pdp.Status) {
	return b.read(module, RegVoltage)
}

func (b *Binding) GetPDPTemperature(module int) (float64, pdp.Status) {
	return b.read(module, RegTemperature)
}

func (b *Binding) GetPDPChannelCurrent(module, channel int) (float64, pdp.Status) {
	if channel < 0 || channel >= pdp.NumChannels {
		return 0, StatusInvalidChannel
	}
	return b.read(module, channelRegister(channel))
}

func (b *Binding) GetPDPTotalCurrent(module int) (float64, pdp.Status) {
	return b.read(module, RegTotalCurrent)
}

func (b *Binding) GetPDPTotalPower(module int) (float64, pdp.Status) {
	return b.read(module, RegTotalPower)
}

func (b *Binding) GetPDPTotalEnergy(module int) (float64, pdp.Status) {
	return b.read(module, RegTotalEnergy)
}

func (b *Binding) ResetPDPTotalEnergy(module int) pdp.Status {
	return b.pulse(module, CoilResetTotalEnergy)
}

func (b *Binding) ClearPDPStickyFaults(module int) pdp.Status {
	return b.pulse(module, CoilClearStickyFaults)
}

func (b *Binding) ErrorMessage(st pdp.Status) string {
	if msg, ok := statusMessages[st]; ok {
		return msg
	}
	return fmt.Sprintf("unknown PDP status %d", st)
}

// ---- internal request helpers ----

func (b *Binding) read(module int, addr uint16) (float64, pdp.Status) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized[module] {
		return 0, StatusNotInitialized
	}
	return b.readFloat(module, addr)
}

// readFloat expects b.mu held.
func (b *Binding) readFloat(module int, addr uint16) (float64, pdp.Status) {
	b.selectUnit(b.unitID(module))

	raw, err := b.client.ReadInputRegisters(addr, RegsPerValue)
	if err != nil {
		return 0, statusOf(err)
	}
	if len(raw) < 2*RegsPerValue {
		return 0, StatusShortResponse
	}
	return float64(math.Float32frombits(binary.BigEndian.Uint32(raw[:4]))), pdp.StatusOK
}

func (b *Binding) pulse(module int, coil uint16) pdp.Status {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized[module] {
		return StatusNotInitialized
	}

	b.selectUnit(b.unitID(module))
	if _, err := b.client.WriteSingleCoil(coil, coilOn); err != nil {
		return statusOf(err)
	}
	return pdp.StatusOK
}

func (b *Binding) unitID(module int) uint8 {
	return b.base + uint8(module)
}

// statusOf maps a transport error to a status without assuming concrete types
// beyond what goburrow/modbus exposes.
func statusOf(err error) pdp.Status {
	var mbErr *modbus.ModbusError
	if errors.As(err, &mbErr) {
		return StatusException
	}
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return StatusTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return StatusTimeout
	}
	return StatusTransport
}

var _ pdp.HAL = (*Binding)(nil)

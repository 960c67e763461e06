// internal/hal/modbushal/binding_test.go
package modbushal

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/goburrow/modbus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/pdp-monitor/internal/pdp"
)

// ---- fake register client ----

type readCall struct {
	unit uint8
	addr uint16
	qty  uint16
}

type coilCall struct {
	unit  uint8
	addr  uint16
	value uint16
}

type fakeClient struct {
	unit   uint8
	values map[uint16]float32
	err    error
	short  bool

	reads []readCall
	coils []coilCall
}

func (f *fakeClient) ReadInputRegisters(addr, qty uint16) ([]byte, error) {
	f.reads = append(f.reads, readCall{unit: f.unit, addr: addr, qty: qty})
	if f.err != nil {
		return nil, f.err
	}
	if f.short {
		return []byte{0, 1}, nil
	}
	out := make([]byte, 4)
	binary.BigEndian.PutUint32(out, math.Float32bits(f.values[addr]))
	return out, nil
}

func (f *fakeClient) WriteSingleCoil(addr, value uint16) ([]byte, error) {
	f.coils = append(f.coils, coilCall{unit: f.unit, addr: addr, value: value})
	if f.err != nil {
		return nil, f.err
	}
	return nil, nil
}

type timeoutErr struct{}

func (timeoutErr) Error() string { return "i/o timeout" }
func (timeoutErr) Timeout() bool { return true }
func (timeoutErr) Temporary() bool { return true }

func newTestBinding(modules int) (*Binding, *fakeClient) {
	fc := &fakeClient{values: map[uint16]float32{
		RegVoltage:      12.25,
		RegTemperature:  30.5,
		RegTotalCurrent: 42,
		RegTotalPower:   510,
		RegTotalEnergy:  7200,
	}}
	for c := 0; c < pdp.NumChannels; c++ {
		fc.values[channelRegister(c)] = float32(c) * 1.5
	}
	b := newBinding(Config{UnitIDBase: 10, Modules: modules}, fc, func(id uint8) { fc.unit = id }, nil)
	return b, fc
}

// ---- tests ----

func TestInitializePDP_RangeCheck(t *testing.T) {
	b, fc := newTestBinding(4)

	assert.Equal(t, StatusInvalidModule, b.InitializePDP(4))
	assert.Equal(t, StatusInvalidModule, b.InitializePDP(-1))
	assert.Empty(t, fc.reads, "out-of-range module must not touch the wire")

	assert.Equal(t, pdp.StatusOK, b.InitializePDP(3))
	require.Len(t, fc.reads, 1)
	assert.Equal(t, readCall{unit: 13, addr: RegVoltage, qty: 2}, fc.reads[0])
	assert.Equal(t, 4, b.GetNumPDPModules())
}

func TestInitializePDP_ReadFailure(t *testing.T) {
	b, fc := newTestBinding(2)
	fc.err = timeoutErr{}

	assert.Equal(t, StatusTimeout, b.InitializePDP(0))

	fc.err = nil
	_, st := b.GetPDPVoltage(0)
	assert.Equal(t, StatusNotInitialized, st)
}

func TestInitializePDP_FailedRetryClearsModule(t *testing.T) {
	b, fc := newTestBinding(2)
	require.Equal(t, pdp.StatusOK, b.InitializePDP(1))

	fc.err = timeoutErr{}
	assert.Equal(t, StatusTimeout, b.InitializePDP(1))

	fc.err = nil
	_, st := b.GetPDPVoltage(1)
	assert.Equal(t, StatusNotInitialized, st)

	require.Equal(t, pdp.StatusOK, b.InitializePDP(1))
	_, st = b.GetPDPVoltage(1)
	assert.Equal(t, pdp.StatusOK, st)
}

func TestReads_DecodeFloat32(t *testing.T) {
	b, fc := newTestBinding(1)
	require.Equal(t, pdp.StatusOK, b.InitializePDP(0))

	v, st := b.GetPDPVoltage(0)
	assert.Equal(t, pdp.StatusOK, st)
	assert.InDelta(t, 12.25, v, 1e-6)

	v, _ = b.GetPDPTemperature(0)
	assert.InDelta(t, 30.5, v, 1e-6)
	v, _ = b.GetPDPTotalCurrent(0)
	assert.InDelta(t, 42, v, 1e-6)
	v, _ = b.GetPDPTotalPower(0)
	assert.InDelta(t, 510, v, 1e-6)
	v, _ = b.GetPDPTotalEnergy(0)
	assert.InDelta(t, 7200, v, 1e-6)

	v, _ = b.GetPDPChannelCurrent(0, 15)
	assert.InDelta(t, 22.5, v, 1e-6)
	last := fc.reads[len(fc.reads)-1]
	assert.Equal(t, uint16(34), last.addr)
	assert.Equal(t, uint8(10), last.unit)
}

func TestChannelCurrent_InvalidChannel(t *testing.T) {
	b, fc := newTestBinding(1)
	require.Equal(t, pdp.StatusOK, b.InitializePDP(0))
	n := len(fc.reads)

	_, st := b.GetPDPChannelCurrent(0, 16)
	assert.Equal(t, StatusInvalidChannel, st)
	assert.Len(t, fc.reads, n)
}

func TestCommands_PulseCoils(t *testing.T) {
	b, fc := newTestBinding(2)
	require.Equal(t, pdp.StatusOK, b.InitializePDP(1))

	assert.Equal(t, pdp.StatusOK, b.ResetPDPTotalEnergy(1))
	assert.Equal(t, pdp.StatusOK, b.ClearPDPStickyFaults(1))

	assert.Equal(t, []coilCall{
		{unit: 11, addr: CoilResetTotalEnergy, value: 0xFF00},
		{unit: 11, addr: CoilClearStickyFaults, value: 0xFF00},
	}, fc.coils)

	assert.Equal(t, StatusNotInitialized, b.ResetPDPTotalEnergy(0))
}

func TestStatusMapping(t *testing.T) {
	b, fc := newTestBinding(1)
	require.Equal(t, pdp.StatusOK, b.InitializePDP(0))

	fc.err = &modbus.ModbusError{FunctionCode: 0x84, ExceptionCode: 2}
	_, st := b.GetPDPVoltage(0)
	assert.Equal(t, StatusException, st)

	fc.err = errors.New("connection reset")
	_, st = b.GetPDPVoltage(0)
	assert.Equal(t, StatusTransport, st)

	fc.err = nil
	fc.short = true
	_, st = b.GetPDPVoltage(0)
	assert.Equal(t, StatusShortResponse, st)
}

func TestErrorMessage(t *testing.T) {
	b, _ := newTestBinding(1)

	assert.Equal(t, "", b.ErrorMessage(pdp.StatusOK))
	assert.Equal(t, "PDP module index out of range", b.ErrorMessage(StatusInvalidModule))
	assert.Equal(t, "unknown PDP status -99", b.ErrorMessage(-99))
}

func TestPanelOverBinding(t *testing.T) {
	b, _ := newTestBinding(4)

	var got []*pdp.Error
	rep := pdp.ReporterFunc(func(e *pdp.Error) { got = append(got, e) })

	ok := pdp.New(b, 3, rep)
	assert.False(t, ok.Disabled())
	assert.InDelta(t, 12.25, ok.Voltage(), 1e-6)

	bad := pdp.New(b, 9, rep)
	require.True(t, bad.Disabled())
	require.Len(t, got, 1)
	assert.Equal(t, StatusInvalidModule, got[0].Status)
	assert.Equal(t, 4, got[0].Max)
	assert.Equal(t, "PDP module index out of range", got[0].Msg)
}

// cmd/pdpmon/app_test.go
package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/tamzrod/pdp-monitor/internal/config"
	"github.com/tamzrod/pdp-monitor/internal/pdp"
	"github.com/tamzrod/pdp-monitor/internal/writer"
)

// ---- fakes ----

type countingHAL struct {
	modules  int
	channels int
	resets   int
	clears   int
}

func (h *countingHAL) InitializePDP(module int) pdp.Status {
	if module < 0 || module >= h.modules {
		return -1
	}
	return pdp.StatusOK
}
func (h *countingHAL) GetNumPDPModules() int { return h.modules }
func (h *countingHAL) GetPDPVoltage(int) (float64, pdp.Status) { return 12, pdp.StatusOK }
func (h *countingHAL) GetPDPTemperature(int) (float64, pdp.Status) { return 30, pdp.StatusOK }
func (h *countingHAL) GetPDPChannelCurrent(_, c int) (float64, pdp.Status) {
	h.channels++
	return float64(c), pdp.StatusOK
}
func (h *countingHAL) GetPDPTotalCurrent(int) (float64, pdp.Status) { return 40, pdp.StatusOK }
func (h *countingHAL) GetPDPTotalPower(int) (float64, pdp.Status) { return 480, pdp.StatusOK }
func (h *countingHAL) GetPDPTotalEnergy(int) (float64, pdp.Status) { return 9, pdp.StatusOK }
func (h *countingHAL) ResetPDPTotalEnergy(int) pdp.Status {
	h.resets++
	return pdp.StatusOK
}
func (h *countingHAL) ClearPDPStickyFaults(int) pdp.Status {
	h.clears++
	return pdp.StatusOK
}
func (h *countingHAL) ErrorMessage(pdp.Status) string { return "bad module" }

type regWrite struct {
	unitID uint8
	addr   uint16
	n      int
}

type recordingWriter struct {
	writes []regWrite
}

func (w *recordingWriter) WriteRegisters(unitID uint8, addr uint16, regs []uint16) error {
	w.writes = append(w.writes, regWrite{unitID: unitID, addr: addr, n: len(regs)})
	return nil
}

func testConfig(panels ...config.PanelConfig) *config.Config {
	return &config.Config{PDP: config.PDPConfig{
		Poll:   config.PollConfig{IntervalMs: 100},
		Panels: panels,
	}}
}

// ---- tests ----

func TestBuildPipelines_OncePublishesOncePerPanel(t *testing.T) {
	h := &countingHAL{modules: 2}
	tables := &recordingWriter{}
	statuses := &recordingWriter{}
	clients := map[string]writer.RegisterWriter{"tables": tables, "status": statuses}

	cfg := testConfig(
		config.PanelConfig{
			ID:     "main",
			Module: 0,
			Table:  config.TableConfig{Endpoint: "tables", UnitID: 1, Address: 0},
			Status: &config.StatusConfig{Endpoint: "status", UnitID: 1, Slot: 0},
		},
		config.PanelConfig{
			ID:     "aux",
			Module: 1,
			Table:  config.TableConfig{Endpoint: "tables", UnitID: 1, Address: 100},
		},
	)

	core, logs := observer.New(zapcore.InfoLevel)
	pls, err := buildPipelines(cfg, h, clients, options{once: true}, zap.New(core))
	require.NoError(t, err)
	require.Len(t, pls, 2)

	runOnce(pls)

	assert.Equal(t, 2*pdp.NumChannels, h.channels, "one publish per panel")

	require.Len(t, tables.writes, 2, "one flush per panel")
	assert.Equal(t, regWrite{unitID: 1, addr: 0, n: 36}, tables.writes[0])
	assert.Equal(t, regWrite{unitID: 1, addr: 100, n: 36}, tables.writes[1])

	require.Len(t, statuses.writes, 1, "only the panel with a status block writes status")

	readings := logs.FilterMessage("pdp readings").All()
	require.Len(t, readings, 2)
	ctx := readings[0].ContextMap()
	assert.Equal(t, "main", ctx["panel"])
	assert.Equal(t, 40.0, ctx["TotalCurrent"])
	assert.Equal(t, 15.0, ctx["Chan15"])
}

func TestBuildPipelines_StartupCommands(t *testing.T) {
	h := &countingHAL{modules: 1}
	clients := map[string]writer.RegisterWriter{"tables": &recordingWriter{}}
	cfg := testConfig(config.PanelConfig{ID: "main", Table: config.TableConfig{Endpoint: "tables"}})

	_, err := buildPipelines(cfg, h, clients, options{resetEnergy: true, clearFaults: true}, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 1, h.resets)
	assert.Equal(t, 1, h.clears)
	assert.Equal(t, pdp.NumChannels, h.channels, "binding publishes once")
}

func TestBuildPipelines_DisabledPanelStillWired(t *testing.T) {
	h := &countingHAL{modules: 1}
	clients := map[string]writer.RegisterWriter{"tables": &recordingWriter{}}
	cfg := testConfig(config.PanelConfig{ID: "ghost", Module: 9, Table: config.TableConfig{Endpoint: "tables"}})

	core, logs := observer.New(zapcore.ErrorLevel)
	pls, err := buildPipelines(cfg, h, clients, options{resetEnergy: true}, zap.New(core))
	require.NoError(t, err)
	require.Len(t, pls, 1)

	assert.True(t, pls[0].panel.Disabled())
	assert.Zero(t, h.resets)
	assert.Zero(t, h.channels)
	assert.Equal(t, 1, logs.FilterMessage("panel disabled: initialization failed").Len())
}

func TestBuildPipelines_MissingTableClient(t *testing.T) {
	cfg := testConfig(config.PanelConfig{ID: "main", Table: config.TableConfig{Endpoint: "elsewhere"}})

	_, err := buildPipelines(cfg, &countingHAL{modules: 1}, map[string]writer.RegisterWriter{}, options{}, zap.NewNop())
	assert.Error(t, err)
}

package kcd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-candb/pkg/model"
)

// roundTripNetwork builds a network the way a load pass would, so that
// dump followed by load compares equal without further normalization:
// bus name "Bus", default baudrate, multiplexed signals ahead of
// standalone ones.
func roundTripNetwork() *model.Network {
	return &model.Network{
		Version: "2.0",
		Nodes:   []*model.Node{{Name: "ECU1"}, {Name: "ECU2"}},
		Buses:   []*model.Bus{{Name: "Bus", Baudrate: model.DefaultBaudrate}},
		Messages: []*model.Message{
			{
				FrameID:          0x3FF,
				Name:             "Sensors",
				Length:           8,
				UnusedBitPattern: model.DefaultUnusedBitPattern,
				CycleTime:        intPtr(50),
				Comment:          "Sensor block.",
				Senders:          []string{"ECU1"},
				BusName:          "Bus",
				Signals: []*model.Signal{
					{
						Name:       "Pressure",
						Start:      0,
						Length:     16,
						IsSigned:   true,
						Conversion: model.NewConversion(0.5, -100, nil, false),
						Minimum:    floatPtr(0),
						Maximum:    floatPtr(500),
						Unit:       "kPa",
						Receivers:  []string{"ECU2"},
					},
					{
						Name:       "Ratio",
						Start:      16,
						Length:     32,
						Conversion: model.NewConversion(1, 0, nil, true),
					},
					{
						Name:       "Raw",
						Start:      48,
						Length:     8,
						Conversion: model.NewConversion(1, 0, nil, false),
					},
				},
			},
			{
				FrameID:          0x020,
				Name:             "MuxMsg",
				Length:           8,
				UnusedBitPattern: model.DefaultUnusedBitPattern,
				BusName:          "Bus",
				Signals: []*model.Signal{
					{
						Name:          "Mode",
						Start:         0,
						Length:        4,
						IsMultiplexer: true,
						Conversion:    model.NewConversion(1, 0, nil, false),
					},
					muxMember("A", 8, 0),
					muxMember("B", 16, 0),
					muxMember("C", 24, 1),
					muxMember("D", 32, 1),
					{
						Name:       "Checksum",
						Start:      56,
						Length:     8,
						Conversion: model.NewConversion(1, 0, nil, false),
					},
				},
			},
		},
	}
}

func muxMember(name string, start int, selector int64) *model.Signal {
	return &model.Signal{
		Name:              name,
		Start:             start,
		Length:            8,
		Conversion:        model.NewConversion(1, 0, nil, false),
		MultiplexerSignal: "Mode",
		MultiplexerIDs:    []int64{selector},
	}
}

func TestRoundTrip_ModelEquality(t *testing.T) {
	network := roundTripNetwork()

	out, err := Dump(network, DumpOptions{})
	require.NoError(t, err)

	reloaded, err := Load(out, LoadOptions{Strict: true})
	require.NoError(t, err)

	require.Equal(t, network, reloaded)
}

// TestRoundTrip_DumpIdempotent checks that dumping the reloaded model
// reproduces the identical document, grouping included.
func TestRoundTrip_DumpIdempotent(t *testing.T) {
	first, err := Dump(roundTripNetwork(), DumpOptions{})
	require.NoError(t, err)

	reloaded, err := Load(first, LoadOptions{Strict: true})
	require.NoError(t, err)

	second, err := Dump(reloaded, DumpOptions{})
	require.NoError(t, err)

	require.True(t, bytes.Equal(first, second), "dump-load-dump must be stable:\n%s\nvs\n%s", first, second)
}

func TestRoundTrip_MuxGrouping(t *testing.T) {
	out, err := Dump(roundTripNetwork(), DumpOptions{})
	require.NoError(t, err)

	reloaded, err := Load(out, LoadOptions{Strict: true})
	require.NoError(t, err)

	mux := reloaded.MessageByName("MuxMsg")
	require.NotNil(t, mux)

	selector := mux.SignalByName("Mode")
	require.NotNil(t, selector)
	assert.True(t, selector.IsMultiplexer)
	assert.False(t, selector.IsMultiplexed())

	cases := []struct {
		name     string
		selector int64
	}{
		{"A", 0}, {"B", 0}, {"C", 1}, {"D", 1},
	}
	for _, c := range cases {
		signal := mux.SignalByName(c.name)
		require.NotNil(t, signal, c.name)
		assert.Equal(t, "Mode", signal.MultiplexerSignal)
		assert.Equal(t, []int64{c.selector}, signal.MultiplexerIDs)
	}

	// Grouping order on re-dump follows first-seen selector values, so
	// the member order survives the trip intact.
	var names []string
	for _, s := range mux.Signals {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"Mode", "A", "B", "C", "D", "Checksum"}, names)
}

// An explicitly default signal must still compare equal after the
// defaults collapse on dump.
func TestRoundTrip_DefaultsCollapse(t *testing.T) {
	network := &model.Network{
		Buses: []*model.Bus{{Name: "Bus", Baudrate: model.DefaultBaudrate}},
		Messages: []*model.Message{
			{
				FrameID:          0x001,
				Name:             "M",
				Length:           1,
				UnusedBitPattern: model.DefaultUnusedBitPattern,
				BusName:          "Bus",
				Signals: []*model.Signal{
					{
						Name:       "Plain",
						Start:      0,
						Length:     1,
						ByteOrder:  model.LittleEndian,
						Conversion: model.NewConversion(1, 0, nil, false),
					},
				},
			},
		},
	}

	out, err := Dump(network, DumpOptions{})
	require.NoError(t, err)
	reloaded, err := Load(out, LoadOptions{Strict: true})
	require.NoError(t, err)
	require.Equal(t, network, reloaded)
}

package codec

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"paxflow/internal/domain"
)

func sampleReport() *domain.Report {
	return &domain.Report{
		RunID:       "7d3f6a52-8c1e-4b8e-9a57-0f3c2a1b9e44",
		GeneratedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Anchor:      "US",
		Stats:       domain.RecordStats{Total: 3, GraphSkipped: 1},
		Nodes:       []domain.ReportNode{{ID: 0, Label: "US"}, {ID: 1, Label: "Asia"}},
		Edges: []domain.ReportEdge{
			{Source: "US", Destination: "Asia", Weight: 100},
			{Source: "Asia", Destination: "US", Weight: 50},
		},
		Centrality: map[string]float64{"US": 150, "Asia": 150},
		Monthly: []domain.MonthlyTotal{
			{Period: "2023-01", Passengers: 100},
			{Period: "2023-02", Passengers: 1050},
		},
		Trend: domain.Trend{Slope: 950, Intercept: -23062050},
		Forecast: []domain.ForecastPoint{
			{Period: "2024-01", Passengers: 12450},
			{Period: "2024-02", Passengers: -3},
		},
	}
}

func TestForFormat(t *testing.T) {
	for _, name := range []string{"text", "json", "yaml", "JSON"} {
		exp, err := ForFormat(name)
		require.NoError(t, err, name)
		assert.NotNil(t, exp)
	}

	_, err := ForFormat("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "json, text, yaml")
}

func TestJSONExport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONCodec().Export(sampleReport(), &buf))

	var decoded domain.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, sampleReport(), &decoded)
	assert.Contains(t, buf.String(), `"destination": "Asia"`)
}

func TestYAMLExport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewYAMLCodec().Export(sampleReport(), &buf))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "US", decoded["anchor"])
	assert.Len(t, decoded["forecast"], 2)
	assert.Contains(t, buf.String(), "2023-02")
}

func TestTextExport(t *testing.T) {
	var buf bytes.Buffer
	codec := NewTextCodec()
	require.NoError(t, codec.Export(sampleReport(), &buf))
	assert.Equal(t, "text", codec.Format())

	out := buf.String()
	for _, want := range []string{
		"Passenger Flow Report",
		"Flow edges",
		"Asia",
		"1,050",
		"12,450",
		"2024-02",
		"-3",
		"Centrality",
	} {
		assert.Contains(t, out, want)
	}
}

func TestTextExportEmptySections(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextCodec().Export(&domain.Report{Anchor: "US"}, &buf))
	assert.Contains(t, buf.String(), "(none)")
}

func TestTextExportLargeCounts(t *testing.T) {
	report := sampleReport()
	report.Edges[0].Weight = 18446744073709551615
	report.Monthly[0].Passengers = 9223372036854775808

	var buf bytes.Buffer
	require.NoError(t, NewTextCodec().Export(report, &buf))

	out := buf.String()
	assert.Contains(t, out, "18,446,744,073,709,551,615")
	assert.Contains(t, out, "9,223,372,036,854,775,808")
	assert.NotContains(t, out, "-9,223,372,036,854,775,808")
}

func TestCommaUint(t *testing.T) {
	assert.Equal(t, "0", commaUint(0))
	assert.Equal(t, "1,200", commaUint(1200))
	assert.Equal(t, "18,446,744,073,709,551,615", commaUint(18446744073709551615))
}

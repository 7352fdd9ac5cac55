package usecase

import (
	"testing"

	"GreeksBoard/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var greekColumns = []string{
	"timestamp",
	"CE_18000_ltp", "PE_18000_ltp", "CE_18100_ltp",
	"CE_18000_delta", "PE_18000_gamma", "PE_18000_theta",
	"CE_ltp", "XE_18000_ltp", "ce_18000_ltp", "CE_18000_ltp_old",
}

func TestMatchesGroup(t *testing.T) {
	assert.True(t, MatchesGroup("CE_18000_ltp", models.SideCE, "ltp"))
	assert.True(t, MatchesGroup("CE__ltp", models.SideCE, "ltp"))
	assert.False(t, MatchesGroup("CE_ltp", models.SideCE, "ltp"), "prefix and suffix may not overlap")
	assert.False(t, MatchesGroup("PE_18000_ltp", models.SideCE, "ltp"))
	assert.False(t, MatchesGroup("CE_18000_delta", models.SideCE, "gamma"))
	assert.False(t, MatchesGroup("ce_18000_ltp", models.SideCE, "ltp"))
}

func TestDeriveSchema(t *testing.T) {
	s := DeriveSchema(greekColumns, []string{"ltp", "delta", "gamma", "theta"})
	require.Len(t, s.Metrics, 4)

	ltp, ok := s.Lookup("ltp")
	require.True(t, ok)
	assert.Equal(t, []string{"CE_18000_ltp", "CE_18100_ltp"}, ltp.CE)
	assert.Equal(t, []string{"PE_18000_ltp"}, ltp.PE)

	delta, _ := s.Lookup("delta")
	assert.Equal(t, []string{"CE_18000_delta"}, delta.CE)
	assert.Empty(t, delta.PE)

	gamma, _ := s.Lookup("gamma")
	assert.Empty(t, gamma.CE)
	assert.Equal(t, []string{"PE_18000_gamma"}, gamma.PE)
}

func TestDeriveSchemaNoDoubleCounting(t *testing.T) {
	metrics := []string{"ltp", "delta", "gamma", "theta"}
	s := DeriveSchema(greekColumns, metrics)
	seen := map[string]string{}
	for _, mc := range s.Metrics {
		for _, c := range append(append([]string{}, mc.CE...), mc.PE...) {
			prev, dup := seen[c]
			assert.False(t, dup, "%s in %s and %s", c, prev, mc.Metric)
			seen[c] = mc.Metric
		}
	}
}

func TestResolveSchemaPrefersDeclared(t *testing.T) {
	declared := models.Schema{Metrics: []models.MetricColumns{
		{Metric: "ltp", CE: []string{"CE_18100_ltp", "CE_missing_ltp"}, PE: []string{}},
	}}
	s := ResolveSchema(declared, greekColumns, []string{"ltp", "delta"})

	ltp, _ := s.Lookup("ltp")
	assert.Equal(t, []string{"CE_18100_ltp"}, ltp.CE, "declared order, absent columns dropped")
	assert.Empty(t, ltp.PE, "declared empty side means no chart")

	delta, _ := s.Lookup("delta")
	assert.Equal(t, []string{"CE_18000_delta"}, delta.CE, "undeclared metric is derived")
}

func TestYRange(t *testing.T) {
	f := NormalizeFrame(recordSet([]string{"timestamp", "CE_1_ltp", "PE_1_ltp"},
		[]string{"2024-01-09 09:15:00", "10.5", "7"},
		[]string{"2024-01-09 09:16:00", "", "n/a"},
		[]string{"2024-01-09 09:17:00", "1,204.5", "-3"},
	))

	r := YRange(f.Rows, []string{"CE_1_ltp", "PE_1_ltp"})
	require.NotNil(t, r)
	assert.Equal(t, -3.0, r.Min)
	assert.Equal(t, 1204.5, r.Max)

	assert.Nil(t, YRange(f.Rows, nil))
	assert.Nil(t, YRange(f.Rows[1:2], []string{"CE_1_ltp", "PE_1_ltp"}))
}

func TestBuildSeriesOrdersByTime(t *testing.T) {
	f := NormalizeFrame(recordSet([]string{"timestamp", "CE_1_ltp"},
		[]string{"2024-01-09 09:17:00", "3"},
		[]string{"bad", "9"},
		[]string{"2024-01-09 09:15:00", "1"},
		[]string{"2024-01-09 09:16:00", ""},
	))

	s := BuildSeries(f.Rows, []string{"CE_1_ltp"})
	require.Len(t, s, 1)
	assert.Equal(t, "CE_1_ltp", s[0].Name)
	assert.Equal(t, []float64{1, 3}, s[0].Values)
	require.Len(t, s[0].Times, 2)
	assert.True(t, s[0].Times[0].Before(s[0].Times[1]))
}

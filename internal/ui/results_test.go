package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-across/internal/across"
	"github.com/litescript/ls-across/internal/astro"
	"github.com/litescript/ls-across/internal/schema"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0s"},
		{12 * time.Second, "12s"},
		{1499 * time.Millisecond, "1s"},
		{4*time.Minute + 30*time.Second, "4m30s"},
		{time.Hour + 2*time.Minute + 10*time.Second, "1h02m"},
		{26 * time.Hour, "26h00m"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.in))
		})
	}
}

func equinoxWindows() []across.Window {
	begin := time.Date(2024, 3, 20, 3, 0, 0, 0, time.UTC)
	return []across.Window{
		{Begin: schema.NewTime(begin), End: schema.NewTime(begin.Add(30 * time.Minute)), Initial: "Earth Limb", Final: "SAA"},
		{Begin: schema.NewTime(begin.Add(time.Hour)), End: schema.NewTime(begin.Add(time.Hour + 15*time.Minute))},
	}
}

func TestWindowTable(t *testing.T) {
	tbl := WindowTable("Visibility", across.VisibilityResult{Entries: equinoxWindows()}, nil)

	assert.Equal(t, []string{"Begin", "End", "Length", "From", "To"}, tbl.Headers)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, []string{"2024-03-20 03:00:00", "2024-03-20 03:30:00", "30m00s", "Earth Limb", "SAA"}, tbl.Rows[0])
	assert.Equal(t, "-", tbl.Rows[1][3])
	assert.Equal(t, "2 windows, 45m00s total", tbl.Footer)
}

func TestWindowTable_SunSeparation(t *testing.T) {
	near := WindowTable("", across.VisibilityResult{Entries: equinoxWindows()}, &astro.Position{RA: 0, Dec: 0})
	require.Len(t, near.Headers, 6)
	assert.Contains(t, near.Rows[0][5], "(warning)")

	far := WindowTable("", across.VisibilityResult{Entries: equinoxWindows()}, &astro.Position{RA: 180, Dec: 0})
	assert.NotContains(t, far.Rows[0][5], "(")
	assert.Contains(t, far.Rows[0][5], "°")
}

func TestWindowTable_Empty(t *testing.T) {
	tbl := WindowTable("Visibility", across.VisibilityResult{}, nil)
	assert.Empty(t, tbl.Footer)
	assert.Contains(t, tbl.Render(), "No entries")
}

func TestRenderSunSeparation(t *testing.T) {
	tests := []struct {
		sep  float64
		want string
	}{
		{10, "sun-sep: 10.0° (warning)"},
		{30, "sun-sep: 30.0° (caution)"},
		{90, "sun-sep: 90.0°"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RenderSunSeparation(tt.sep))
	}
}

func TestPlanTable_OptionalColumns(t *testing.T) {
	begin := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	entry := across.PlanEntry{
		Begin:    schema.NewTime(begin),
		End:      schema.NewTime(begin.Add(time.Hour)),
		TargName: "Crab",
		RA:       83.63308,
		Dec:      22.0145,
		Exposure: 3000,
	}

	bare := PlanTable("Plan", []across.PlanEntry{entry})
	assert.Equal(t, []string{"Begin", "End", "Target", "RA", "Dec", "Exposure"}, bare.Headers)
	assert.Equal(t, []string{"2024-01-01 00:00:00", "2024-01-01 01:00:00", "Crab", "83.6331", "+22.0145", "3000s"}, bare.Rows[0])

	slew := 120
	withObs := entry
	withObs.ObsID = "00012345001"
	withObs.Slew = &slew
	full := PlanTable("Observations", []across.PlanEntry{entry, withObs})
	assert.Equal(t, []string{"Begin", "End", "Target", "RA", "Dec", "Exposure", "ObsID", "Slew"}, full.Headers)
	assert.Equal(t, []string{"-", "-"}, full.Rows[0][6:])
	assert.Equal(t, []string{"00012345001", "120s"}, full.Rows[1][6:])
}

func TestPointingTable(t *testing.T) {
	yes, no := true, false
	ra := 83.6
	tbl := PointingTable("FOV", across.FOVCheckResult{Entries: []across.Pointing{
		{RA: &ra, Observing: true, InFOV: &yes},
		{Observing: false, InFOV: &no},
		{},
	}})
	require.Len(t, tbl.Rows, 3)
	assert.Equal(t, "83.6000", tbl.Rows[0][1])
	assert.Equal(t, "-", tbl.Rows[1][1])
	assert.Equal(t, "-", tbl.Rows[2][5])
	assert.Equal(t, "in FOV for 1 of 3 samples", tbl.Footer)
}

func TestTOOTable(t *testing.T) {
	tbl := TOOTable("TOOs", []across.TOO{{
		ID:          "abc",
		TriggerInfo: across.TriggerInfo{TriggerMission: "Fermi", TriggerInstrument: "GBM"},
		Status:      across.TOORequested,
	}})
	require.Len(t, tbl.Rows, 1)
	row := tbl.Rows[0]
	assert.Equal(t, "abc", row[0])
	assert.Equal(t, "-", row[1])
	assert.Equal(t, "Fermi", row[4])
	assert.Equal(t, string(across.TOORequested), row[7])
	assert.Equal(t, string(across.ReasonNone), row[8])
}

func TestStatusLine(t *testing.T) {
	n := 7
	line := StatusLine(across.JobInfo{Status: "Rejected", JobNumber: &n, Errors: []string{"bad ra"}})
	assert.Equal(t, "Rejected job 7\nerror: bad ra", line)
	assert.Equal(t, "-", StatusLine(across.JobInfo{}))
}

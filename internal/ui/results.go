package ui

import (
	"fmt"
	"strconv"

	"github.com/litescript/ls-across/internal/across"
)

// PassageTable lists SAA passages.
func PassageTable(title string, passages []across.Passage) Table {
	t := Table{Title: title, Headers: []string{"Begin", "End", "Length"}}
	for _, p := range passages {
		t.Rows = append(t.Rows, []string{formatTime(p.Begin.Time), formatTime(p.End.Time), FormatDuration(p.Length())})
	}
	return t
}

// EphemTable lists ephemeris rows with derived altitude and speed.
func EphemTable(title string, points []across.EphemPoint) Table {
	t := Table{
		Title:   title,
		Headers: []string{"Time", "Lat", "Lon", "Alt km", "Speed km/s", "Sun RA", "Sun Dec"},
	}
	for _, p := range points {
		sunRA, sunDec := "-", "-"
		if sun, ok := p.SunDirection(); ok {
			sunRA, sunDec = fmt.Sprintf("%.3f", sun.RA), fmt.Sprintf("%+.3f", sun.Dec)
		}
		t.Rows = append(t.Rows, []string{
			formatTime(p.Time),
			fmt.Sprintf("%+.3f", p.Latitude),
			fmt.Sprintf("%.3f", p.Longitude),
			fmt.Sprintf("%.1f", p.Altitude()),
			fmt.Sprintf("%.3f", p.Speed()),
			sunRA,
			sunDec,
		})
	}
	return t
}

// PointingTable lists FOV check samples.
func PointingTable(title string, res across.FOVCheckResult) Table {
	t := Table{Title: title, Headers: []string{"Time", "RA", "Dec", "Roll", "Observing", "In FOV"}}
	for _, p := range res.Entries {
		fov := "-"
		if p.InFOV != nil {
			fov = strconv.FormatBool(*p.InFOV)
		}
		t.Rows = append(t.Rows, []string{
			formatTime(p.Timestamp.Time),
			optFloat(p.RA, "%.4f"),
			optFloat(p.Dec, "%+.4f"),
			optFloat(p.Roll, "%.1f"),
			strconv.FormatBool(p.Observing),
			fov,
		})
	}
	if len(res.Entries) > 0 {
		t.Footer = fmt.Sprintf("in FOV for %d of %d samples", len(res.Visible()), len(res.Entries))
	}
	return t
}

// PlanTable lists plan or observation entries. Columns a mission never
// fills are left out.
func PlanTable(title string, entries []across.PlanEntry) Table {
	var hasObsID, hasMode, hasSlew bool
	for _, e := range entries {
		hasObsID = hasObsID || e.ObsID != ""
		hasMode = hasMode || e.Mode != ""
		hasSlew = hasSlew || e.Slew != nil
	}

	t := Table{Title: title, Headers: []string{"Begin", "End", "Target", "RA", "Dec", "Exposure"}}
	if hasObsID {
		t.Headers = append(t.Headers, "ObsID")
	}
	if hasMode {
		t.Headers = append(t.Headers, "Mode")
	}
	if hasSlew {
		t.Headers = append(t.Headers, "Slew")
	}

	for _, e := range entries {
		row := []string{
			formatTime(e.Begin.Time),
			formatTime(e.End.Time),
			orDash(e.TargName),
			fmt.Sprintf("%.4f", e.RA),
			fmt.Sprintf("%+.4f", e.Dec),
			fmt.Sprintf("%.0fs", e.Exposure),
		}
		if hasObsID {
			row = append(row, orDash(e.ObsID))
		}
		if hasMode {
			row = append(row, orDash(e.Mode))
		}
		if hasSlew {
			slew := "-"
			if e.Slew != nil {
				slew = strconv.Itoa(*e.Slew) + "s"
			}
			row = append(row, slew)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// TOOTable lists TOO requests.
func TOOTable(title string, toos []across.TOO) Table {
	t := Table{
		Title:   title,
		Headers: []string{"TOO ID", "Submitted", "Submitter", "Trigger Time", "Mission", "Instrument", "ID", "Status", "Reason"},
	}
	for _, o := range toos {
		t.Rows = append(t.Rows, []string{
			orDash(o.ID),
			formatTime(o.CreatedOn.Time),
			orDash(o.CreatedBy),
			formatTime(o.TriggerTime.Time),
			orDash(o.TriggerInfo.TriggerMission),
			orDash(o.TriggerInfo.TriggerInstrument),
			orDash(o.TriggerInfo.TriggerID),
			orDash(string(o.Status)),
			string(o.Reason()),
		})
	}
	return t
}

// JobTable lists API jobs.
func JobTable(title string, jobs []across.APIJob) Table {
	t := Table{Title: title, Headers: []string{"Job", "Type", "Created", "Expires", "Status"}}
	for _, j := range jobs {
		num := "-"
		if j.JobNumber != nil {
			num = strconv.Itoa(*j.JobNumber)
		}
		t.Rows = append(t.Rows, []string{num, j.ReqType, formatTime(j.Created.Time), formatTime(j.Expires.Time), orDash(j.Status)})
	}
	return t
}

// StatusLine summarizes a job status block.
func StatusLine(s across.JobInfo) string {
	line := orDash(s.Status)
	if s.JobNumber != nil {
		line += " job " + strconv.Itoa(*s.JobNumber)
	}
	if !s.Completed.IsZero() {
		line += " completed " + s.Completed.String()
	}
	for _, e := range s.Errors {
		line += "\n" + errorStyle.Render("error: "+e)
	}
	return line
}

func optFloat(f *float64, format string) string {
	if f == nil {
		return "-"
	}
	return fmt.Sprintf(format, *f)
}

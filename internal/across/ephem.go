package across

import (
	"context"
	"net/http"
	"time"

	"github.com/litescript/ls-across/internal/astro"
	"github.com/litescript/ls-across/internal/schema"
)

// DefaultStepSize is the ephemeris and FOV sampling interval in seconds.
const DefaultStepSize = 60

// EphemRequest asks for a spacecraft ephemeris.
type EphemRequest struct {
	schema.DateRange
	StepSize int `json:"stepsize,omitempty" validate:"omitempty,gte=1"`
}

// Vec3 is a Cartesian vector in km or km/s.
type Vec3 [3]float64

// Astro converts v for the astro package.
func (v Vec3) Astro() astro.Vec3 {
	return astro.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// Ephemeris is a columnar spacecraft ephemeris. Position vectors are
// geocentric (GCRS).
type Ephemeris struct {
	Timestamp []schema.Time `json:"timestamp"`
	PosVec    []Vec3        `json:"posvec"`
	VelVec    []Vec3        `json:"velvec"`
	Sun       []Vec3        `json:"sun"`
	Moon      []Vec3        `json:"moon"`
	Latitude  []float64     `json:"latitude"`
	Longitude []float64     `json:"longitude"`
	StepSize  int           `json:"stepsize"`
	Status    JobInfo       `json:"status"`
}

// EphemPoint is one row of an Ephemeris.
type EphemPoint struct {
	Time      time.Time
	Pos       Vec3
	Vel       Vec3
	Sun       Vec3
	Moon      Vec3
	Latitude  float64
	Longitude float64
}

// Altitude returns the height above the Earth's equatorial radius in km.
func (p EphemPoint) Altitude() float64 {
	return astro.Altitude(p.Pos.Astro())
}

// Speed returns the orbital speed in km/s.
func (p EphemPoint) Speed() float64 {
	return p.Vel.Astro().Norm()
}

// SunDirection returns where the Sun lies as seen from the spacecraft. It
// reports false when the row has no Sun vector.
func (p EphemPoint) SunDirection() (astro.Position, bool) {
	if p.Sun == (Vec3{}) {
		return astro.Position{}, false
	}
	return astro.Toward(p.Pos.Astro(), p.Sun.Astro()), true
}

// Occulted reports whether the Earth blocks ra, dec from the spacecraft.
func (p EphemPoint) Occulted(ra, dec float64) bool {
	return astro.EarthOcculted(p.Pos.Astro(), ra, dec)
}

// Len returns the number of whole rows.
func (e Ephemeris) Len() int {
	n := len(e.Timestamp)
	for _, l := range []int{len(e.PosVec), len(e.VelVec), len(e.Latitude), len(e.Longitude)} {
		if l < n {
			n = l
		}
	}
	return n
}

// Points returns the ephemeris as rows. Missing Sun and Moon columns are
// left zero.
func (e Ephemeris) Points() []EphemPoint {
	n := e.Len()
	pts := make([]EphemPoint, n)
	for i := 0; i < n; i++ {
		pts[i] = EphemPoint{
			Time:      e.Timestamp[i].Time,
			Pos:       e.PosVec[i],
			Vel:       e.VelVec[i],
			Latitude:  e.Latitude[i],
			Longitude: e.Longitude[i],
		}
		if i < len(e.Sun) {
			pts[i].Sun = e.Sun[i]
		}
		if i < len(e.Moon) {
			pts[i].Moon = e.Moon[i]
		}
	}
	return pts
}

// Ephem returns the ephemeris of mission over the range.
func (c *Client) Ephem(ctx context.Context, mission Mission, req EphemRequest) (Ephemeris, error) {
	if err := mission.check(APIEphem, http.MethodGet); err != nil {
		return Ephemeris{}, err
	}
	if req.StepSize == 0 {
		req.StepSize = DefaultStepSize
	}

	var p schema.Problems
	schema.Check(req, &p)
	req.DateRange.Check(&p)
	if err := p.Err(); err != nil {
		return Ephemeris{}, err
	}
	q, err := schema.Build(req.DateRange, schema.Fields{"stepsize": req.StepSize})
	if err != nil {
		return Ephemeris{}, err
	}

	var out Ephemeris
	if err := c.do(ctx, call{mission: mission, api: APIEphem, method: http.MethodGet, query: q}, &out); err != nil {
		return Ephemeris{}, err
	}
	c.logJob(APIEphem, out.Status)
	return out, nil
}

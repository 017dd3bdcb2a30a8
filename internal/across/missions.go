package across

import (
	"fmt"
	"net/http"
	"strings"
)

// Mission is a spacecraft (or the ACROSS service itself) exposing APIs.
type Mission string

const (
	ACROSS    Mission = "ACROSS"
	Swift     Mission = "Swift"
	NICER     Mission = "NICER"
	NuSTAR    Mission = "NuSTAR"
	BurstCube Mission = "BurstCube"
)

// Missions lists every known mission.
var Missions = []Mission{ACROSS, Swift, NICER, NuSTAR, BurstCube}

// API names one endpoint family of a mission.
type API string

const (
	APIHello        API = "Hello"
	APIResolve      API = "Resolve"
	APIJobs         API = "APIJobs"
	APIVisibility   API = "Visibility"
	APIEphem        API = "Ephem"
	APISAA          API = "SAA"
	APIFOVCheck     API = "FOVCheck"
	APIPlan         API = "Plan"
	APIObservations API = "Observations"
	APITOO          API = "TOO"
	APITOORequests  API = "TOORequests"
)

var (
	getOnly = []string{http.MethodGet}
	getPut  = []string{http.MethodGet, http.MethodPut}
	allCRUD = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}
)

var capabilities = map[Mission]map[API][]string{
	ACROSS: {
		APIHello:   getOnly,
		APIResolve: getOnly,
		APIJobs:    getOnly,
	},
	Swift: {
		APIVisibility:   getOnly,
		APIEphem:        getOnly,
		APISAA:          getOnly,
		APIFOVCheck:     getOnly,
		APIPlan:         getPut,
		APIObservations: getPut,
	},
	NICER: {
		APIVisibility: getOnly,
		APIPlan:       getPut,
	},
	NuSTAR: {
		APIEphem: getOnly,
		APIPlan:  getPut,
	},
	BurstCube: {
		APIVisibility:  getOnly,
		APIEphem:       getOnly,
		APISAA:         getOnly,
		APIFOVCheck:    getOnly,
		APITOO:         allCRUD,
		APITOORequests: getOnly,
	},
}

// ParseMission parses a mission name, ignoring case.
func ParseMission(s string) (Mission, error) {
	for _, m := range Missions {
		if strings.EqualFold(string(m), strings.TrimSpace(s)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown mission %q", s)
}

// Supports reports whether m offers api with method.
func (m Mission) Supports(api API, method string) bool {
	for _, allowed := range capabilities[m][api] {
		if allowed == method {
			return true
		}
	}
	return false
}

// APIs returns the APIs m offers.
func (m Mission) APIs() []API {
	var out []API
	for _, api := range []API{APIHello, APIResolve, APIJobs, APIVisibility, APIEphem, APISAA,
		APIFOVCheck, APIPlan, APIObservations, APITOO, APITOORequests} {
		if _, ok := capabilities[m][api]; ok {
			out = append(out, api)
		}
	}
	return out
}

func (m Mission) check(api API, method string) error {
	if !m.Supports(api, method) {
		return &UnsupportedError{Mission: m, API: api, Method: method}
	}
	return nil
}

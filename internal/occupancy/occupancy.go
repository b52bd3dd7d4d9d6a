// Package occupancy synthesizes "popular times" style occupancy data
// for a curated set of targets. Simulation only: the upstream data
// source for real occupancy was never wired, so readings are generated
// with a plausible daily curve and a demo anomaly.
package occupancy

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

type Target struct {
	ID    string
	Name  string
	Query string
}

// Reading is one target's occupancy snapshot: a 24-hour historical
// curve, the live value for the current hour, and a spike
// classification relative to baseline.
type Reading struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	SpikePct    int    `json:"spike_pct"`
	LiveValue   int    `json:"live_value"`
	Historical  []int  `json:"historical"`
	CurrentHour int    `json:"current_hour"`
}

var defaultTargets = []Target{
	{ID: "pentagon", Name: "DOMINO'S (PENTAGON)", Query: "Domino's Pizza 2800 S Joyce St, Arlington, VA"},
	{ID: "wh_house", Name: "PAPA JOHN'S (WHITE HOUSE)", Query: "Papa John's Pizza 1300 L St NW, Washington, DC"},
	{ID: "cia_hq", Name: "DOMINO'S (LANGLEY/CIA)", Query: "Domino's Pizza 1432 Chain Bridge Rd, McLean, VA"},
}

type Engine struct {
	targets []Target

	// mu guards rng: a *rand.Rand is not safe for concurrent use and
	// CheckIndex is called from concurrent HTTP requests.
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

func NewEngine() *Engine {
	return &Engine{
		targets: defaultTargets,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		now:     time.Now,
	}
}

// CheckIndex returns a reading for every configured target.
func (e *Engine) CheckIndex() []Reading {
	readings := make([]Reading, 0, len(e.targets))
	for _, target := range e.targets {
		readings = append(readings, e.generate(target.Name))
	}
	return readings
}

func (e *Engine) generate(name string) Reading {
	e.mu.Lock()
	defer e.mu.Unlock()

	historical := make([]int, 24)
	for h := range historical {
		switch {
		case h < 10:
			historical[h] = 5 + e.rng.Intn(11)
		case h < 16:
			historical[h] = 20 + e.rng.Intn(31)
		case h < 20:
			// Evening peak.
			historical[h] = 50 + e.rng.Intn(31)
		default:
			historical[h] = 10 + e.rng.Intn(21)
		}
	}

	currentHour := e.now().Hour()

	var liveValue float64
	if strings.Contains(name, "PENTAGON") {
		// Demo anomaly so the UI always has a spike to show.
		liveValue = float64(historical[currentHour]) * 4
		if liveValue > 100 {
			liveValue = 100
		}
	} else {
		liveValue = float64(historical[currentHour]) * (0.9 + 0.2*e.rng.Float64())
	}

	baseline := historical[currentHour]
	if baseline == 0 {
		baseline = 1
	}
	spikePct := int((liveValue - float64(baseline)) / float64(baseline) * 100)

	status := "NOMINAL"
	switch {
	case spikePct > 100:
		status = "SPIKE"
	case spikePct > 20:
		status = "BUSY"
	case spikePct < -20:
		status = "QUIET"
	}

	return Reading{
		Name:        name,
		Status:      status,
		SpikePct:    spikePct,
		LiveValue:   int(liveValue),
		Historical:  historical,
		CurrentHour: currentHour,
	}
}

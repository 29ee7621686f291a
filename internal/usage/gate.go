// Package usage implements the free-tier daily scan quota.
//
// The counter resets lazily on read whenever the stored date differs from the
// current local calendar date. There is no background execution context to
// schedule resets in, so correctness never depends on a timer firing.
package usage

import (
	"encoding/json"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/erfanbaree-007/easyRx/internal/logger"
	"github.com/erfanbaree-007/easyRx/internal/storage"
)

// Plan is the subscription tier.
type Plan string

const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

const (
	// FreeDailyLimit is the number of scans a free plan allows per local day.
	FreeDailyLimit = 3

	storageKey = "subscription"

	dateLayout = "2006-01-02"
)

// State is the persisted usage/subscription record. JSON field names match
// the original persisted format.
type State struct {
	Plan         Plan   `json:"plan"`
	ScansToday   int    `json:"scansToday"`
	LastScanDate string `json:"lastScanDate"`
}

// Gate decides whether a new inference call is permitted under the quota.
type Gate struct {
	kv  storage.Store
	log zerolog.Logger
	mu  sync.Mutex
	now func() time.Time
}

// NewGate creates a usage gate on top of kv.
func NewGate(kv storage.Store) *Gate {
	return &Gate{
		kv:  kv,
		log: logger.WithComponent("usage"),
		now: time.Now,
	}
}

// Current returns today's usage state, applying the lazy daily reset: when
// the stored date is not today the counter is zeroed and the corrected state
// persisted before returning. Missing or corrupt storage yields a fresh free
// state.
func (g *Gate) Current() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current()
}

// RecordScan increments today's scan counter and persists the new state.
func (g *Gate) RecordScan() State {
	g.mu.Lock()
	defer g.mu.Unlock()

	state := g.current()
	state.ScansToday++
	g.persist(state)

	g.log.Debug().
		Int("scans_today", state.ScansToday).
		Str("plan", string(state.Plan)).
		Msg("scan recorded")
	return state
}

// Upgrade switches the plan to pro and persists the new state.
func (g *Gate) Upgrade() State {
	g.mu.Lock()
	defer g.mu.Unlock()

	state := g.current()
	state.Plan = PlanPro
	g.persist(state)

	g.log.Info().Msg("plan upgraded to pro")
	return state
}

// CanScan reports whether another scan is allowed right now.
func (g *Gate) CanScan() bool {
	state := g.Current()
	if state.Plan == PlanPro {
		return true
	}
	return state.ScansToday < FreeDailyLimit
}

// RemainingScans returns how many free scans are left today. Unlimited for
// the pro plan.
func (g *Gate) RemainingScans() int {
	state := g.Current()
	if state.Plan == PlanPro {
		return math.MaxInt
	}
	if remaining := FreeDailyLimit - state.ScansToday; remaining > 0 {
		return remaining
	}
	return 0
}

func (g *Gate) current() State {
	today := g.now().Format(dateLayout)

	data, ok, err := g.kv.Get(storageKey)
	if err != nil {
		g.log.Error().Err(err).Msg("failed to read usage state")
	}
	if ok && err == nil {
		var state State
		if err := json.Unmarshal(data, &state); err == nil && state.Plan != "" {
			if state.LastScanDate != today {
				state.ScansToday = 0
				state.LastScanDate = today
				g.persist(state)
			}
			return state
		}
		g.log.Warn().Msg("stored usage state is corrupt, resetting")
	}

	state := State{Plan: PlanFree, ScansToday: 0, LastScanDate: today}
	g.persist(state)
	return state
}

func (g *Gate) persist(state State) {
	data, err := json.Marshal(state)
	if err != nil {
		g.log.Error().Err(err).Msg("failed to encode usage state")
		return
	}
	if err := g.kv.Put(storageKey, data); err != nil {
		g.log.Error().Err(err).Msg("failed to persist usage state")
	}
}

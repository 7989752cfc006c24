package event

import (
	"sync"

	"github.com/opd-ai/space-warriors/pkg/entity"
)

// Counts is a point-in-time copy of a session tally.
type Counts struct {
	EnemiesSeen   int
	EnemiesKilled int
	ShotsFired    int
	PowerupsTaken int
	DamageTaken   int
	Deaths        int
	Restarts      int
	BestScore     int
	LongestRun    uint64 // ticks
}

// SessionStats tallies events for one session. It is safe for concurrent use.
type SessionStats struct {
	mu     sync.Mutex
	counts Counts
	subs   []*Subscription
}

// NewSessionStats subscribes a fresh tally to bus.
func NewSessionStats(bus *Bus) *SessionStats {
	s := &SessionStats{}
	s.subs = []*Subscription{
		bus.Subscribe(EnemySpawned, func(Event) { s.update(func(c *Counts) { c.EnemiesSeen++ }) }),
		bus.Subscribe(EnemyDestroyed, func(Event) { s.update(func(c *Counts) { c.EnemiesKilled++ }) }),
		bus.Subscribe(PowerupCollected, func(Event) { s.update(func(c *Counts) { c.PowerupsTaken++ }) }),
		bus.Subscribe(SessionRestarted, func(Event) { s.update(func(c *Counts) { c.Restarts++ }) }),
		bus.Subscribe(ProjectileFired, func(e Event) {
			if pe, ok := e.(*ProjectileEvent); ok && pe.Owner == entity.OwnerPlayer {
				s.update(func(c *Counts) { c.ShotsFired += pe.Count })
			}
		}),
		bus.Subscribe(PlayerDamaged, func(e Event) {
			if de, ok := e.(*PlayerDamageEvent); ok {
				s.update(func(c *Counts) { c.DamageTaken += de.Damage })
			}
		}),
		bus.Subscribe(GameOver, func(e Event) {
			s.update(func(c *Counts) {
				c.Deaths++
				se, ok := e.(*SessionEvent)
				if !ok {
					return
				}
				if se.Score > c.BestScore {
					c.BestScore = se.Score
				}
				if se.Tick > c.LongestRun {
					c.LongestRun = se.Tick
				}
			})
		}),
	}
	return s
}

func (s *SessionStats) update(fn func(c *Counts)) {
	s.mu.Lock()
	fn(&s.counts)
	s.mu.Unlock()
}

// Snapshot returns a copy of the counters.
func (s *SessionStats) Snapshot() Counts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts
}

// Close detaches the tally from its bus.
func (s *SessionStats) Close() {
	for _, sub := range s.subs {
		sub.Cancel()
	}
	s.subs = nil
}

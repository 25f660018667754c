package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sjzar/trophylodge/internal/game/model"
	"github.com/sjzar/trophylodge/internal/game/process"
	"github.com/sjzar/trophylodge/internal/game/telemetry"
	"github.com/sjzar/trophylodge/internal/lodge/conf"
)

// DrainInterval is how often the consumer empties the engine's feeds.
const DrainInterval = 250 * time.Millisecond

// Snapshot is what consumers last saw from the engine.
type Snapshot struct {
	State      string         `json:"state"`
	Status     string         `json:"status"`
	User       string         `json:"user"`
	Trophies   int            `json:"trophies"`
	LastTrophy *model.Trophy  `json:"last_trophy,omitempty"`
	GrindKills map[string]int `json:"grind_kills"`
	Updated    time.Time      `json:"updated"`
}

// Service runs the telemetry engine in the background and consumes its feeds.
type Service struct {
	conf   *conf.Config
	out    *telemetry.Outputs
	engine *telemetry.Engine

	mu   sync.RWMutex
	snap Snapshot

	cancel context.CancelFunc
	wg     sync.WaitGroup
	done   chan struct{}
}

func NewService(c *conf.Config, store telemetry.Store, finder process.Finder) *Service {
	out := telemetry.NewOutputs()
	return &Service{
		conf:   c,
		out:    out,
		engine: telemetry.NewEngine(finder, telemetry.NewGate(store, out), out, c.Telemetry()),
		snap:   Snapshot{GrindKills: make(map[string]int)},
		done:   make(chan struct{}),
	}
}

func (s *Service) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer close(s.done)
		s.run(ctx)
	}()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.consume(ctx)
	}()
	return nil
}

// Done is closed once the engine stops for good.
func (s *Service) Done() <-chan struct{} {
	return s.done
}

func (s *Service) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	s.drain()
	s.out.Status.Close()
	s.out.Trophies.Close()
	s.out.GrindKills.Close()
	s.out.Users.Close()
	return nil
}

func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := s.snap
	snap.State = s.engine.State().String()
	snap.GrindKills = make(map[string]int, len(s.snap.GrindKills))
	for k, v := range s.snap.GrindKills {
		snap.GrindKills[k] = v
	}
	if s.snap.LastTrophy != nil {
		t := *s.snap.LastTrophy
		snap.LastTrophy = &t
	}
	return snap
}

func (s *Service) run(ctx context.Context) {
	for {
		err := s.engine.Run(ctx)
		if err != nil {
			log.Debug().Err(err).Msg("telemetry stopped")
			return
		}
		if !s.conf.Restart {
			return
		}
		log.Info().Msg("restarting telemetry")
	}
}

func (s *Service) consume(ctx context.Context) {
	ticker := time.NewTicker(DrainInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			s.drain()
			return
		case <-s.out.Trophies.Ready():
			s.drain()
		case <-ticker.C:
			s.drain()
		}
	}
}

func (s *Service) drain() {
	status := s.out.Status.Drain()
	trophies := s.out.Trophies.Drain()
	kills := s.out.GrindKills.Drain()
	users := s.out.Users.Drain()
	if len(status)+len(trophies)+len(kills)+len(users) == 0 {
		return
	}

	for _, t := range trophies {
		log.Info().
			Str("species", t.Species.String()).
			Str("reserve", t.Reserve.String()).
			Str("rating", t.Rating.String()).
			Float32("score", t.Score).
			Float32("weight", t.Weight).
			Str("fur", t.Fur).
			Str("grind", t.Grind).
			Msg("trophy recorded")
	}
	for _, name := range kills {
		log.Info().Str("grind", name).Msg("grind kill")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if n := len(status); n > 0 {
		s.snap.Status = status[n-1]
	}
	if n := len(users); n > 0 {
		s.snap.User = users[n-1]
	}
	if n := len(trophies); n > 0 {
		s.snap.Trophies += n
		t := trophies[n-1]
		s.snap.LastTrophy = &t
	}
	for _, name := range kills {
		s.snap.GrindKills[name]++
	}
	s.snap.Updated = time.Now()
}

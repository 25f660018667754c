// Package telemetry watches the game's harvest record and turns each new kill
// into a validated trophy.
//
// The engine is a sequential loop:
//
//	SearchingForProcess -> WaitingForPlayableState -> Polling -> ProcessClosed
//
// It owns the sending side of the Outputs feeds and never blocks on them.
package telemetry

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sjzar/trophylodge/internal/errors"
	"github.com/sjzar/trophylodge/internal/game/fur"
	"github.com/sjzar/trophylodge/internal/game/memory"
	"github.com/sjzar/trophylodge/internal/game/model"
	"github.com/sjzar/trophylodge/internal/game/offsets"
	"github.com/sjzar/trophylodge/internal/game/process"
)

const (
	DefaultSearchInterval = 2 * time.Second
	DefaultPollInterval   = 5 * time.Second
)

const (
	StatusWaitingForGame = "Waiting for game..."
	StatusWaitingForLoad = "Waiting for game to load..."
	StatusGameClosed     = "Game has been closed. No longer tracking."
)

type State int32

const (
	StateSearching State = iota
	StateWaiting
	StatePolling
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateSearching:
		return "searching"
	case StateWaiting:
		return "waiting"
	case StatePolling:
		return "polling"
	case StateClosed:
		return "closed"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

type Config struct {
	ProcessName    string
	SearchInterval time.Duration
	PollInterval   time.Duration
}

type Engine struct {
	finder process.Finder
	gate   *Gate
	out    *Outputs
	conf   Config
	now    func() time.Time
	state  atomic.Int32
}

func NewEngine(finder process.Finder, gate *Gate, out *Outputs, conf Config) *Engine {
	if conf.ProcessName == "" {
		conf.ProcessName = offsets.ProcessName
	}
	return &Engine{
		finder: finder,
		gate:   gate,
		out:    out,
		conf:   conf,
		now:    time.Now,
	}
}

func (e *Engine) State() State {
	return State(e.state.Load())
}

func (e *Engine) setState(s State) {
	e.state.Store(int32(s))
	log.Debug().Str("state", s.String()).Msg("telemetry state")
}

// session is the per attach state carried between ticks.
type session struct {
	handle  process.Handle
	reader  *memory.Reader
	fur     *fur.Resolver
	module  memory.Address
	harvest memory.Address

	// primed is false until the first tick after attach has recorded a
	// baseline; before that the previous values are unknown.
	primed     bool
	lastScore  int32
	lastWeight float32
}

func newSession(h process.Handle) *session {
	r := memory.NewReader(h)
	return &session{
		handle: h,
		reader: r,
		fur:    fur.NewResolver(r),
		module: memory.Address(h.Process().BaseAddress),
	}
}

// Run drives one monitoring session. It returns nil once the game closes and
// ctx.Err() when cancelled; a new Run is needed to track the next session.
// A game that exits before it finishes loading sends the engine back to
// searching.
func (e *Engine) Run(ctx context.Context) error {
	for {
		s, err := e.search(ctx)
		if err != nil {
			return err
		}
		ready, err := e.waitPlayable(ctx, s)
		if err != nil || !ready {
			_ = s.handle.Close()
			if err != nil {
				return err
			}
			continue
		}
		defer s.handle.Close()
		return e.track(ctx, s)
	}
}

func (e *Engine) track(ctx context.Context, s *session) error {
	e.setState(StatePolling)
	for {
		if e.poll(ctx, s) {
			e.setState(StateClosed)
			e.status(StatusGameClosed)
			return nil
		}
		if err := sleep(ctx, e.conf.PollInterval); err != nil {
			return err
		}
	}
}

func (e *Engine) search(ctx context.Context) (*session, error) {
	e.setState(StateSearching)
	for {
		h, err := e.finder.Find(ctx, e.conf.ProcessName)
		if err == nil {
			proc := h.Process()
			e.status(fmt.Sprintf("Attached to game: %s (pid %d)", proc.Name, proc.PID))
			return newSession(h), nil
		}
		if !errors.Is(err, errors.ErrGameNotFound) {
			log.Debug().Err(err).Msg("find game failed")
		}
		e.status(StatusWaitingForGame)
		if err := sleep(ctx, e.conf.SearchInterval); err != nil {
			return nil, err
		}
	}
}

// waitPlayable reports false when the process went away before the harvest
// record became reachable.
func (e *Engine) waitPlayable(ctx context.Context, s *session) (bool, error) {
	e.setState(StateWaiting)
	for {
		s.harvest = s.reader.Resolve(s.module, offsets.Harvest)
		if s.harvest >= offsets.MinHarvestBase {
			shot := s.reader.Resolve(s.module, offsets.Shot)
			e.status(fmt.Sprintf("Game: %s; Harvest: %s; Shot: %s", s.module, s.harvest, shot))
			return true, nil
		}
		if !s.handle.Running(ctx) {
			log.Info().Uint32("pid", s.handle.Process().PID).Msg("game exited while loading")
			return false, nil
		}
		e.status(StatusWaitingForLoad)
		if err := sleep(ctx, e.conf.SearchInterval); err != nil {
			return false, err
		}
	}
}

// poll runs one tick and reports whether the game has closed.
func (e *Engine) poll(ctx context.Context, s *session) bool {
	score := s.reader.Int32(s.harvest, offsets.HarvestSessionScore)

	switch {
	case !s.primed:
		s.primed = true
		s.lastScore = score
		s.lastWeight = s.reader.Float32(s.harvest, offsets.HarvestWeight)
	case score == offsets.NoSession && s.lastScore != offsets.NoSession:
		return true
	case score != s.lastScore:
		weight := s.reader.Float32(s.harvest, offsets.HarvestWeight)
		if weight != 0 && weight != s.lastWeight {
			c := e.assemble(s, score)
			outcome := e.gate.Submit(ctx, c)
			log.Debug().
				Int32("session_score", score).
				Float32("weight", weight).
				Str("outcome", outcome.String()).
				Msg("kill event")
		}
		s.lastScore = score
		s.lastWeight = weight
	}

	e.emitUser(s)
	return false
}

func (e *Engine) assemble(s *session, score int32) Candidate {
	r, h := s.reader, s.harvest

	rawSpecies := r.RawString(h, offsets.HarvestSpecies)
	rawReserve := r.RawString(r.Pointer(h, offsets.HarvestReserve), 0)
	shot := r.Resolve(s.module, offsets.Shot)

	t := model.Trophy{
		Species:      model.ParseSpecies(rawSpecies),
		Reserve:      model.ParseReserve(rawReserve),
		Rating:       model.DecodeRating(r.Byte(h, offsets.HarvestRating)),
		Score:        r.Float32(h, offsets.HarvestScore),
		Weight:       r.Float32(h, offsets.HarvestWeight),
		Fur:          s.fur.Resolve(s.module, r.Uint32(h, offsets.HarvestFurKey)),
		Date:         e.now().UTC(),
		Gender:       model.DecodeGender(r.Int32(h, offsets.HarvestGender)),
		Cash:         r.Int32(h, offsets.HarvestCash),
		XP:           r.Int32(h, offsets.HarvestXP),
		SessionScore: score,
		Integrity:    r.Int32(h, offsets.HarvestIntegrity) == 1,
		Tracking:     r.Float32(h, offsets.HarvestTracking),
		WeaponScore:  r.Float32(shot, offsets.ShotWeaponScore),
		ShotDistance: r.Float32(shot, offsets.ShotDistance),
		ShotDamage:   r.Float32(shot, offsets.ShotDamage) * offsets.ShotDamageScale,
	}
	t.ID = t.Identity()

	return Candidate{Trophy: t, RawSpecies: rawSpecies, RawReserve: rawReserve}
}

func (e *Engine) emitUser(s *session) {
	user := s.reader.Resolve(s.module, offsets.User)
	if name := s.reader.RawString(user, offsets.UserName); name != "" {
		e.out.Users.Send(name)
	}
}

func (e *Engine) status(msg string) {
	log.Info().Msg(msg)
	e.out.Status.Send(msg)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

package telemetry

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/sjzar/trophylodge/internal/game/model"
)

// Store is the persistence collaborator the gate writes through.
type Store interface {
	TrophyExists(ctx context.Context, id float32) (bool, error)
	SaveTrophy(ctx context.Context, t *model.Trophy) error
	ActiveGrinds(ctx context.Context, species model.Species, reserve model.Reserve) ([]string, error)
	IncrementGrindKill(ctx context.Context, name string) error
}

// Candidate is a decoded kill event that has not been validated yet. The raw
// identifiers are kept for diagnostics.
type Candidate struct {
	Trophy     model.Trophy
	RawSpecies string
	RawReserve string
}

type Outcome int

const (
	Accepted Outcome = iota
	Rejected
	Duplicate
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	case Duplicate:
		return "duplicate"
	default:
		return "failed"
	}
}

// Gate turns candidates into trophy facts.
type Gate struct {
	store Store
	out   *Outputs
}

func NewGate(store Store, out *Outputs) *Gate {
	return &Gate{store: store, out: out}
}

func (g *Gate) Submit(ctx context.Context, c Candidate) Outcome {
	t := c.Trophy
	if !t.Valid() {
		g.status(diagnostic(c))
		return Rejected
	}

	t.ID = t.Identity()
	exists, err := g.store.TrophyExists(ctx, t.ID)
	if err != nil {
		log.Err(err).Float32("id", t.ID).Msg("trophy lookup failed")
		g.status(fmt.Sprintf("Problem checking trophy %s on %s", t.Species, t.Reserve))
		return Failed
	}
	if exists {
		g.status("Trophy is already saved")
		return Duplicate
	}

	grinds, err := g.store.ActiveGrinds(ctx, t.Species, t.Reserve)
	if err != nil {
		log.Err(err).Str("species", t.Species.String()).Str("reserve", t.Reserve.String()).Msg("grind lookup failed")
		grinds = nil
	}
	t.Grind = strings.Join(grinds, ", ")

	if err := g.store.SaveTrophy(ctx, &t); err != nil {
		log.Err(err).Float32("id", t.ID).Msg("save trophy failed")
		g.status(fmt.Sprintf("Problem saving %s trophy on %s", t.Species, t.Reserve))
		return Failed
	}

	for _, name := range grinds {
		if err := g.store.IncrementGrindKill(ctx, name); err != nil {
			log.Err(err).Str("grind", name).Msg("increment grind failed")
			continue
		}
		g.out.GrindKills.Send(name)
	}
	g.out.Trophies.Send(t)
	g.status(fmt.Sprintf("Stored %s trophy on %s", t.Species, t.Reserve))
	return Accepted
}

func (g *Gate) status(msg string) {
	log.Info().Msg(msg)
	g.out.Status.Send(msg)
}

func diagnostic(c Candidate) string {
	msg := fmt.Sprintf("Problem processing trophy with name %q on %q", c.RawSpecies, c.RawReserve)
	var hints []string
	if c.Trophy.Species == model.SpeciesUnknown && c.RawSpecies != "" {
		hints = append(hints, "species closest to "+model.ClosestSpecies(c.RawSpecies).String())
	}
	if c.Trophy.Reserve == model.ReserveUnknown && c.RawReserve != "" {
		hints = append(hints, "reserve closest to "+model.ClosestReserve(c.RawReserve).String())
	}
	if len(hints) > 0 {
		msg += " (" + strings.Join(hints, ", ") + ")"
	}
	return msg
}

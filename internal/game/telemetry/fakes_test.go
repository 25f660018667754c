package telemetry

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/sjzar/trophylodge/internal/errors"
	"github.com/sjzar/trophylodge/internal/game/memory"
	"github.com/sjzar/trophylodge/internal/game/memory/memtest"
	"github.com/sjzar/trophylodge/internal/game/model"
	"github.com/sjzar/trophylodge/internal/game/offsets"
	"github.com/sjzar/trophylodge/internal/game/process"
)

const (
	module     = memory.Address(0x140000000)
	harvestPtr = memory.Address(0x70000)
	harvest    = harvestPtr + memory.Address(0x280)
	reserveStr = memory.Address(0x9000)
	shotBase   = memory.Address(0xA000)
	userBase   = memory.Address(0xC100)
)

type fakeHandle struct {
	*memtest.Image
	proc   *model.Process
	gone   atomic.Bool
	closed atomic.Bool
}

func (h *fakeHandle) Process() *model.Process { return h.proc }

func (h *fakeHandle) Running(context.Context) bool { return !h.gone.Load() }

func (h *fakeHandle) Close() error {
	h.closed.Store(true)
	return nil
}

func newHandle(img *memtest.Image) *fakeHandle {
	return &fakeHandle{
		Image: img,
		proc: &model.Process{
			PID:         4242,
			Name:        offsets.ProcessName,
			BaseAddress: uint64(module),
			Status:      model.StatusOnline,
		},
	}
}

// fakeFinder reports the game missing for the first misses calls. After that
// it hands out queued handles in order, then handle.
type fakeFinder struct {
	mu     sync.Mutex
	misses int
	calls  int
	queue  []process.Handle
	handle process.Handle
}

func (f *fakeFinder) Find(_ context.Context, _ string) (process.Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls <= f.misses {
		return nil, errors.ErrGameNotFound
	}
	if len(f.queue) > 0 {
		h := f.queue[0]
		f.queue = f.queue[1:]
		return h, nil
	}
	return f.handle, nil
}

// newGame lays out a loaded game with an empty harvest record.
func newGame() *memtest.Image {
	img := memtest.NewImage()
	img.PutPointer(module+memory.Address(offsets.Harvest.Offsets[0]), harvestPtr)
	img.Zero(harvest, 0xC0)
	img.PutPointer(harvest+memory.Address(offsets.HarvestReserve), reserveStr)
	img.PutString(reserveStr, "")

	img.PutPointer(module+memory.Address(offsets.Shot.Offsets[0]), 0xB000)
	img.PutPointer(0xB000+memory.Address(offsets.Shot.Offsets[1]), 0xB100)
	img.PutPointer(0xB100+memory.Address(offsets.Shot.Offsets[2]), 0xB200)
	img.PutPointer(0xB200+memory.Address(offsets.Shot.Offsets[3]), shotBase)
	img.Zero(shotBase, 0x30)

	img.PutPointer(module+memory.Address(offsets.User.Offsets[0]), 0xC000)
	img.PutPointer(0xC000+memory.Address(offsets.User.Offsets[1]), userBase)
	img.PutString(userBase, "hunter42")
	return img
}

type kill struct {
	session  int32
	species  string
	reserve  string
	weight   float32
	score    float32
	tracking float32
	cash     int32
	xp       int32
	rating   uint8
	gender   int32
}

func putKill(img *memtest.Image, k kill) {
	at := func(off uint64) memory.Address { return harvest + memory.Address(off) }
	img.PutString(at(offsets.HarvestSpecies), k.species)
	img.PutString(reserveStr, k.reserve)
	img.PutFloat32(at(offsets.HarvestWeight), k.weight)
	img.PutFloat32(at(offsets.HarvestScore), k.score)
	img.PutFloat32(at(offsets.HarvestTracking), k.tracking)
	img.PutInt32(at(offsets.HarvestCash), k.cash)
	img.PutInt32(at(offsets.HarvestXP), k.xp)
	img.PutByte(at(offsets.HarvestRating), k.rating)
	img.PutInt32(at(offsets.HarvestGender), k.gender)
	img.PutInt32(at(offsets.HarvestIntegrity), 1)
	img.PutUint32(at(offsets.HarvestFurKey), 77)
	img.PutFloat32(shotBase+memory.Address(offsets.ShotDistance), 120.5)
	img.PutFloat32(shotBase+memory.Address(offsets.ShotDamage), 0.5)
	img.PutInt32(at(offsets.HarvestSessionScore), k.session)
}

func setSession(img *memtest.Image, v int32) {
	img.PutInt32(harvest+memory.Address(offsets.HarvestSessionScore), v)
}

type memStore struct {
	mu        sync.Mutex
	trophies  []model.Trophy
	grinds    []*model.Grind
	saves     int
	existsErr error
	saveErr   error
}

func (s *memStore) TrophyExists(_ context.Context, id float32) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.existsErr != nil {
		return false, s.existsErr
	}
	for _, t := range s.trophies {
		if t.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) SaveTrophy(_ context.Context, t *model.Trophy) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.trophies = append(s.trophies, *t)
	return nil
}

func (s *memStore) ActiveGrinds(_ context.Context, species model.Species, reserve model.Reserve) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var names []string
	for _, g := range s.grinds {
		if g.Active && g.Species == species && g.Reserve == reserve {
			names = append(names, g.Name)
		}
	}
	return names, nil
}

func (s *memStore) IncrementGrindKill(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.grinds {
		if g.Name == name {
			g.Kills++
			return nil
		}
	}
	return errors.ErrGrindNotFound
}

func (s *memStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.trophies)
}

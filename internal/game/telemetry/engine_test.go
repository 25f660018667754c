package telemetry

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/sjzar/trophylodge/internal/game/memory/memtest"
	"github.com/sjzar/trophylodge/internal/game/model"
	"github.com/sjzar/trophylodge/internal/game/offsets"
	"github.com/sjzar/trophylodge/internal/game/process"
)

var fixedNow = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

func newTestEngine(img *memtest.Image, store *memStore) (*Engine, *session, *Outputs) {
	out := NewOutputs()
	e := NewEngine(&fakeFinder{}, NewGate(store, out), out, Config{})
	e.now = func() time.Time { return fixedNow }
	s := newSession(newHandle(img))
	s.harvest = s.reader.Resolve(s.module, offsets.Harvest)
	return e, s, out
}

func hirschDeer(session int32, weight float32) kill {
	return kill{
		session:  session,
		species:  "red_deer",
		reserve:  "hirschfelden",
		weight:   weight,
		score:    170.25,
		tracking: 8,
		cash:     1200,
		xp:       450,
		rating:   2,
		gender:   1,
	}
}

func TestPollNoChange(t *testing.T) {
	img := newGame()
	store := &memStore{}
	e, s, out := newTestEngine(img, store)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if e.poll(ctx, s) {
			t.Fatal("closed unexpectedly")
		}
	}
	if store.saves != 0 || out.Trophies.Len() != 0 || out.GrindKills.Len() != 0 {
		t.Fatal("candidate assembled without a session change")
	}
	if n := out.Status.Len(); n != 0 {
		t.Fatalf("status=%q", out.Status.Drain())
	}
	if diff := cmp.Diff([]string{"hunter42", "hunter42", "hunter42"}, out.Users.Drain()); diff != "" {
		t.Fatalf("users (-want +got):\n%s", diff)
	}
}

func TestPollNewKill(t *testing.T) {
	img := newGame()
	store := &memStore{grinds: []*model.Grind{
		{Name: "hirsch deer", Species: model.RedDeer, Reserve: model.Hirschfelden, Active: true},
		{Name: "layton deer", Species: model.RedDeer, Reserve: model.LaytonLake, Active: true},
	}}
	e, s, out := newTestEngine(img, store)
	ctx := context.Background()

	e.poll(ctx, s) // baseline 0 / 0
	putKill(img, hirschDeer(42, 185.3))
	e.poll(ctx, s)

	trophies := out.Trophies.Drain()
	if len(trophies) != 1 {
		t.Fatalf("trophies=%d status=%q", len(trophies), out.Status.Drain())
	}
	want := model.Trophy{
		Species:      model.RedDeer,
		Reserve:      model.Hirschfelden,
		Rating:       model.RatingSilver,
		Score:        170.25,
		Weight:       185.3,
		Fur:          "Unknown",
		Date:         fixedNow,
		Gender:       model.Male,
		Cash:         1200,
		XP:           450,
		SessionScore: 42,
		Integrity:    true,
		Tracking:     8,
		ShotDistance: 120.5,
		ShotDamage:   50,
		Grind:        "hirsch deer",
	}
	want.ID = want.Identity()
	if diff := cmp.Diff(want, trophies[0]); diff != "" {
		t.Fatalf("trophy (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"hirsch deer"}, out.GrindKills.Drain()); diff != "" {
		t.Fatalf("grind kills (-want +got):\n%s", diff)
	}
	if store.grinds[0].Kills != 1 || store.grinds[1].Kills != 0 {
		t.Fatal("wrong grind incremented")
	}
}

func TestPollRequiresWeightChange(t *testing.T) {
	img := newGame()
	store := &memStore{}
	e, s, out := newTestEngine(img, store)
	ctx := context.Background()

	putKill(img, hirschDeer(5, 185.3))
	e.poll(ctx, s) // baseline already holds this kill

	// session changes but the record is the same kill
	setSession(img, 6)
	e.poll(ctx, s)
	if store.saves != 0 {
		t.Fatal("assembled with unchanged weight")
	}

	// zero weight never triggers
	putKill(img, hirschDeer(7, 0))
	e.poll(ctx, s)
	if store.saves != 0 || out.Trophies.Len() != 0 {
		t.Fatal("assembled with zero weight")
	}

	putKill(img, hirschDeer(8, 190))
	e.poll(ctx, s)
	if store.count() != 1 {
		t.Fatalf("stored=%d", store.count())
	}
}

func TestPollGarbageSpecies(t *testing.T) {
	img := newGame()
	store := &memStore{}
	e, s, out := newTestEngine(img, store)
	ctx := context.Background()

	e.poll(ctx, s)
	k := hirschDeer(42, 185.3)
	k.species = "\x7f\x01zz"
	putKill(img, k)
	e.poll(ctx, s)

	if out.Trophies.Len() != 0 || store.saves != 0 {
		t.Fatal("garbage species reached the store")
	}
	status := out.Status.Drain()
	if len(status) != 1 || !strings.HasPrefix(status[0], "Problem processing trophy with name") {
		t.Fatalf("status=%q", status)
	}
}

func TestPollFlappingIndicatorIsDuplicate(t *testing.T) {
	img := newGame()
	store := &memStore{}
	e, s, out := newTestEngine(img, store)
	ctx := context.Background()

	e.poll(ctx, s)
	putKill(img, hirschDeer(42, 185.3))
	e.poll(ctx, s)

	other := hirschDeer(17, 99)
	other.species = "red_fox"
	putKill(img, other)
	e.poll(ctx, s)

	putKill(img, hirschDeer(42, 185.3))
	e.poll(ctx, s)

	if store.saves != 2 {
		t.Fatalf("saves=%d", store.saves)
	}
	if n := len(out.Trophies.Drain()); n != 2 {
		t.Fatalf("trophies=%d", n)
	}
	status := out.Status.Drain()
	if len(status) == 0 || status[len(status)-1] != "Trophy is already saved" {
		t.Fatalf("status=%q", status)
	}
}

func TestPollDetectsClosedGame(t *testing.T) {
	img := newGame()
	e, s, out := newTestEngine(img, &memStore{})
	ctx := context.Background()

	e.poll(ctx, s)
	putKill(img, hirschDeer(42, 185.3))
	e.poll(ctx, s)
	out.Users.Drain()

	// process gone: every read now fails and answers zero
	img.Unmap(harvest, 0xC0)
	img.Unmap(userBase, 16)
	if !e.poll(ctx, s) {
		t.Fatal("closure not detected")
	}
	if out.Users.Len() != 0 {
		t.Fatal("user emitted after closure")
	}
}

func TestPollZeroBeforeAnySessionIsNotClosure(t *testing.T) {
	img := newGame()
	e, s, _ := newTestEngine(img, &memStore{})
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if e.poll(ctx, s) {
			t.Fatal("closed without an active session")
		}
	}
}

func eventually(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestRunLifecycle(t *testing.T) {
	img := newGame()
	// harvest pointer not there yet: game still loading
	img.Unmap(module+0x023D1EF0, 8)
	h := newHandle(img)
	finder := &fakeFinder{misses: 2, handle: h}
	store := &memStore{}
	out := NewOutputs()
	e := NewEngine(finder, NewGate(store, out), out, Config{
		SearchInterval: time.Millisecond,
		PollInterval:   time.Millisecond,
	})

	var statuses []string
	drainStatus := func() []string {
		statuses = append(statuses, out.Status.Drain()...)
		return statuses
	}
	has := func(msg string) bool {
		for _, s := range drainStatus() {
			if strings.HasPrefix(s, msg) {
				return true
			}
		}
		return false
	}

	done := make(chan error, 1)
	go func() { done <- e.Run(context.Background()) }()

	eventually(t, "waiting for load", func() bool { return has(StatusWaitingForLoad) })
	if !has(StatusWaitingForGame) || !has("Attached to game: theHunterCotW_F.exe (pid 4242)") {
		t.Fatalf("statuses=%q", statuses)
	}

	img.PutPointer(module+0x023D1EF0, harvestPtr)
	eventually(t, "polling", func() bool { return e.State() == StatePolling })
	eventually(t, "user display", func() bool { return out.Users.Len() > 0 })

	putKill(img, hirschDeer(42, 185.3))
	eventually(t, "trophy", func() bool { return out.Trophies.Len() == 1 })

	setSession(img, 0)
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run=%v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("engine did not stop after game closed")
	}
	if e.State() != StateClosed || !h.closed.Load() {
		t.Fatalf("state=%s closed=%v", e.State(), h.closed.Load())
	}
	if !has(StatusGameClosed) {
		t.Fatalf("statuses=%q", statuses)
	}
	if store.count() != 1 {
		t.Fatalf("stored=%d", store.count())
	}
}

func TestRunCancelled(t *testing.T) {
	out := NewOutputs()
	e := NewEngine(&fakeFinder{misses: 1 << 30}, NewGate(&memStore{}, out), out, Config{
		SearchInterval: time.Millisecond,
	})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.Run(ctx) }()

	eventually(t, "searching", func() bool { return out.Status.Len() > 0 })
	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("Run=%v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("engine ignored cancellation")
	}
}

func TestRunGameExitsWhileLoading(t *testing.T) {
	// first launch never gets past the loading screen
	stale := memtest.NewImage()
	first := newHandle(stale)
	first.gone.Store(true)

	img := newGame()
	second := newHandle(img)
	second.proc.PID = 4343

	finder := &fakeFinder{queue: []process.Handle{first}, handle: second}
	store := &memStore{}
	out := NewOutputs()
	e := NewEngine(finder, NewGate(store, out), out, Config{
		SearchInterval: time.Millisecond,
		PollInterval:   time.Millisecond,
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- e.Run(ctx) }()

	eventually(t, "polling", func() bool { return e.State() == StatePolling })
	if !first.closed.Load() {
		t.Fatal("stale handle not closed")
	}
	if second.closed.Load() {
		t.Fatal("live handle closed")
	}
	var attached []string
	for _, s := range out.Status.Drain() {
		if strings.HasPrefix(s, "Attached to game") {
			attached = append(attached, s)
		}
	}
	want := []string{
		"Attached to game: theHunterCotW_F.exe (pid 4242)",
		"Attached to game: theHunterCotW_F.exe (pid 4343)",
	}
	if diff := cmp.Diff(want, attached); diff != "" {
		t.Fatalf("attach statuses (-want +got):\n%s", diff)
	}

	cancel()
	if err := <-done; err != context.Canceled {
		t.Fatalf("Run=%v", err)
	}
	if !second.closed.Load() {
		t.Fatal("handle not closed on cancel")
	}
}

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sjzar/trophylodge/internal/game/model"
	"github.com/sjzar/trophylodge/internal/lodge/monitor"
	"github.com/sjzar/trophylodge/internal/lodge/store"
)

type fakeLodge struct {
	lastFilter store.Filter
	trophies   []model.Trophy
	grinds     []model.Grind
}

func (f *fakeLodge) ListTrophies(_ context.Context, filter store.Filter) ([]model.Trophy, error) {
	f.lastFilter = filter
	return f.trophies, nil
}

func (f *fakeLodge) ListGrinds(context.Context) ([]model.Grind, error) {
	return f.grinds, nil
}

type fakeStatus struct{ snap monitor.Snapshot }

func (f fakeStatus) Snapshot() monitor.Snapshot { return f.snap }

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestTrophiesEndpoint(t *testing.T) {
	lodge := &fakeLodge{trophies: []model.Trophy{{UUID: "a", Species: model.RedDeer, Reserve: model.Hirschfelden, Rating: model.RatingGold}}}
	s := NewServer("", lodge, fakeStatus{})

	w := get(t, s.Handler(), "/api/v1/trophies?species=Red%20Deer&reserve=hirschfelden&rating=great%20one&sort=shot_distance&limit=5")
	if w.Code != http.StatusOK {
		t.Fatalf("code=%d body=%s", w.Code, w.Body)
	}
	great := model.RatingGreatOne
	want := store.Filter{Species: model.RedDeer, Reserve: model.Hirschfelden, Rating: &great, Sort: store.SortShotDistance, Limit: 5}
	if diff := cmp.Diff(want, lodge.lastFilter); diff != "" {
		t.Fatalf("filter (-want +got):\n%s", diff)
	}

	var body []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body) != 1 || body[0]["species"] != "Red Deer" || body[0]["rating"] != "Gold" {
		t.Fatalf("body=%v", body)
	}
}

func TestTrophiesBadArgs(t *testing.T) {
	s := NewServer("", &fakeLodge{}, fakeStatus{})
	for _, path := range []string{
		"/api/v1/trophies?species=dragon",
		"/api/v1/trophies?reserve=moon",
		"/api/v1/trophies?limit=-1",
		"/api/v1/trophies?rating=platinum",
		"/api/v1/trophies?sort=fur",
	} {
		if w := get(t, s.Handler(), path); w.Code != http.StatusBadRequest {
			t.Errorf("%s: code=%d", path, w.Code)
		}
	}
}

func TestStatusAndGrinds(t *testing.T) {
	s := NewServer("", &fakeLodge{}, fakeStatus{snap: monitor.Snapshot{State: "polling", User: "hunter"}})

	w := get(t, s.Handler(), "/api/v1/status")
	var snap monitor.Snapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatal(err)
	}
	if snap.State != "polling" || snap.User != "hunter" {
		t.Fatalf("snap=%+v", snap)
	}

	w = get(t, s.Handler(), "/api/v1/grinds")
	if w.Code != http.StatusOK || w.Body.String() != "[]" {
		t.Fatalf("code=%d body=%s", w.Code, w.Body)
	}
}

func TestTrophiesDefaultSort(t *testing.T) {
	lodge := &fakeLodge{}
	s := NewServer("", lodge, fakeStatus{})
	if w := get(t, s.Handler(), "/api/v1/trophies"); w.Code != http.StatusOK || w.Body.String() != "[]" {
		t.Fatalf("code=%d body=%s", w.Code, w.Body)
	}
	if diff := cmp.Diff(store.Filter{Sort: store.SortDate}, lodge.lastFilter); diff != "" {
		t.Fatalf("filter (-want +got):\n%s", diff)
	}
}

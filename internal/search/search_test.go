package search_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"lexview/internal/filters"
	"lexview/internal/registry"
	"lexview/internal/search"
	"lexview/internal/search/metrics"
	"lexview/pkg/pagination"
)

// fakeRegistry serves canned act lists keyed by "publisher/year" and
// records the order of fetch calls.
type fakeRegistry struct {
	mu    sync.Mutex
	acts  map[string][]registry.Act
	fail  map[string]bool
	calls []string
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{
		acts: make(map[string][]registry.Act),
		fail: make(map[string]bool),
	}
}

func (r *fakeRegistry) key(publisher string, year int) string {
	return fmt.Sprintf("%s/%d", publisher, year)
}

func (r *fakeRegistry) Acts(ctx context.Context, publisher string, year int) ([]registry.Act, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := r.key(publisher, year)
	r.calls = append(r.calls, key)

	if r.fail[key] {
		return nil, errors.New("registry unavailable")
	}
	return r.acts[key], nil
}

func (r *fakeRegistry) Document(ctx context.Context, publisher string, year, pos int) (*registry.DocumentResult, error) {
	return nil, registry.ErrDocumentNotFound
}

func newSystem(reg registry.System, workers int) search.System {
	return search.New(
		reg,
		discardLogger(),
		metrics.NewWith(prometheus.NewRegistry()),
		pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
		workers,
	)
}

func TestSearchInvertedRangeFailsWithoutFetching(t *testing.T) {
	reg := newFakeRegistry()
	sys := newSystem(reg, 1)

	f := newFilters()
	f.SetYearLower(2020)
	f.SetYearUpper(2010)

	_, err := sys.Search(context.Background(), f)

	var dre *search.DateRangeError
	if !errors.As(err, &dre) {
		t.Fatalf("err = %v, want *DateRangeError", err)
	}
	if dre.Lower != 2020 || dre.Upper != 2010 {
		t.Errorf("bounds = (%d, %d), want (2020, 2010)", dre.Lower, dre.Upper)
	}
	if len(reg.calls) != 0 {
		t.Errorf("fetch calls = %v, want none", reg.calls)
	}
}

func TestSearchUnsetPublisherFetchesBothInOrder(t *testing.T) {
	reg := newFakeRegistry()
	sys := newSystem(reg, 1)

	f := newFilters()
	f.SetYearLower(1997)
	f.SetYearUpper(1997)

	if _, err := sys.Search(context.Background(), f); err != nil {
		t.Fatalf("search: %v", err)
	}

	want := []string{"DU/1997", "MP/1997"}
	if len(reg.calls) != 2 || reg.calls[0] != want[0] || reg.calls[1] != want[1] {
		t.Errorf("fetch calls = %v, want %v", reg.calls, want)
	}
}

func TestSearchSetPublisherFetchesOnePerYear(t *testing.T) {
	reg := newFakeRegistry()
	sys := newSystem(reg, 1)

	f := newFilters()
	f.SetPublisher("MP")
	f.SetYearLower(2000)
	f.SetYearUpper(2002)

	if _, err := sys.Search(context.Background(), f); err != nil {
		t.Fatalf("search: %v", err)
	}

	want := []string{"MP/2000", "MP/2001", "MP/2002"}
	if len(reg.calls) != len(want) {
		t.Fatalf("fetch calls = %v, want %v", reg.calls, want)
	}
	for i := range want {
		if reg.calls[i] != want[i] {
			t.Errorf("calls[%d] = %s, want %s (ascending year order)", i, reg.calls[i], want[i])
		}
	}
}

func TestSearchConcatenationOrder(t *testing.T) {
	reg := newFakeRegistry()
	reg.acts["DU/2000"] = []registry.Act{{Title: "du-2000-1"}, {Title: "du-2000-2"}}
	reg.acts["MP/2000"] = []registry.Act{{Title: "mp-2000-1"}}
	reg.acts["DU/2001"] = []registry.Act{{Title: "du-2001-1"}}
	reg.acts["MP/2001"] = []registry.Act{{Title: "mp-2001-1"}}

	f := newFilters()
	f.SetYearLower(2000)
	f.SetYearUpper(2001)

	want := []string{"du-2000-1", "du-2000-2", "mp-2000-1", "du-2001-1", "mp-2001-1"}

	for _, workers := range []int{1, 4} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			sys := newSystem(reg, workers)

			acts, err := sys.Search(context.Background(), f)
			if err != nil {
				t.Fatalf("search: %v", err)
			}

			got := titles(acts)
			if len(got) != len(want) {
				t.Fatalf("results = %v, want %v", got, want)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("results[%d] = %s, want %s (deterministic order)", i, got[i], want[i])
				}
			}
		})
	}
}

func TestSearchPartialFailureContinues(t *testing.T) {
	reg := newFakeRegistry()
	reg.acts["DU/2000"] = []registry.Act{{Title: "first"}}
	reg.fail["DU/2001"] = true
	reg.acts["DU/2002"] = []registry.Act{{Title: "last"}}

	f := newFilters()
	f.SetPublisher("DU")
	f.SetYearLower(2000)
	f.SetYearUpper(2002)

	sys := newSystem(reg, 1)
	acts, err := sys.Search(context.Background(), f)
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	got := titles(acts)
	if len(got) != 2 || got[0] != "first" || got[1] != "last" {
		t.Errorf("results = %v, want [first last]", got)
	}
	if len(reg.calls) != 3 {
		t.Errorf("fetch calls = %v, want all three years attempted", reg.calls)
	}
}

func TestSearchEndToEndInForceConstitution(t *testing.T) {
	reg := newFakeRegistry()
	reg.acts["DU/1997"] = []registry.Act{
		{
			Publisher: "DU",
			Year:      1997,
			Pos:       483,
			Title:     "Konstytucja Rzeczypospolitej Polskiej",
			Status:    "obowiązujący",
		},
		{
			Publisher: "DU",
			Year:      1997,
			Pos:       484,
			Title:     "Przepisy uchylone",
			Status:    "uchylony",
		},
	}

	f := newFilters()
	f.SetYearLower(1997)
	f.SetYearUpper(1997)
	f.SetStatus(filters.StatusInForce)

	sys := newSystem(reg, 1)
	acts, err := sys.Search(context.Background(), f)
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	if len(acts) != 1 || acts[0].Pos != 483 {
		t.Errorf("results = %v, want only the constitution", titles(acts))
	}
}

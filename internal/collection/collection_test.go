package collection

import (
	"errors"
	"testing"

	"github.com/fydblock/fydadmin/internal/domain"
)

func loadedBots(t *testing.T) Model[domain.Bot] {
	t.Helper()
	m := New[domain.Bot]()
	m.StartFetch()
	m.FetchSucceeded([]domain.Bot{
		{ID: "b1", Name: "Alpha DCA", Status: domain.BotStatusActive},
		{ID: "b2", Name: "Beta Grid", Status: domain.BotStatusPaused},
		{ID: "b3", Name: "Gamma Signal", Status: domain.BotStatusActive},
	})
	return m
}

func TestFetchLifecycle(t *testing.T) {
	m := New[domain.Bot]()
	if m.Phase() != Idle {
		t.Fatalf("fresh model phase: %v", m.Phase())
	}

	m.StartFetch()
	if !m.Loading() {
		t.Fatal("StartFetch should enter Loading")
	}

	m.FetchSucceeded([]domain.Bot{{ID: "b1"}})
	if m.Loading() {
		t.Fatal("loading flag must clear on success")
	}
	if m.Phase() != Loaded || m.Len() != 1 {
		t.Fatalf("after success: phase=%v len=%d", m.Phase(), m.Len())
	}
}

func TestFetchFailedClearsLoadingAndKeepsNoPlaceholder(t *testing.T) {
	m := New[domain.Bot]()
	m.StartFetch()
	m.FetchFailed(errors.New("boom"))

	if m.Loading() {
		t.Fatal("loading flag must clear on failure too")
	}
	if m.Phase() != Failed || m.Err() == nil {
		t.Fatalf("after failure: phase=%v err=%v", m.Phase(), m.Err())
	}
	if m.Len() != 0 {
		t.Error("failure must not fabricate items")
	}
}

func TestFetchSucceededReplacesWholesale(t *testing.T) {
	m := loadedBots(t)
	m.StartFetch()
	m.FetchSucceeded([]domain.Bot{{ID: "b9"}})
	if m.Len() != 1 {
		t.Fatalf("refetch should replace, got %d items", m.Len())
	}
	if _, ok := m.Find("b1"); ok {
		t.Error("old item survived a refetch")
	}
}

func TestVisibleAppliesSearchAndStatus(t *testing.T) {
	m := loadedBots(t)

	m.SearchTerm = "dca"
	if got := m.Visible(); len(got) != 1 || got[0].ID != "b1" {
		t.Fatalf("search: got %v", got)
	}

	m.SearchTerm = ""
	m.StatusFilter = string(domain.BotStatusActive)
	if got := m.Visible(); len(got) != 2 {
		t.Fatalf("status filter: got %d", len(got))
	}

	// Filtering is a view; the full set stays intact.
	if m.Len() != 3 {
		t.Error("filters must not drop stored items")
	}
}

func TestPatchMergesInPlace(t *testing.T) {
	m := loadedBots(t)
	ok := m.Patch("b2", func(b domain.Bot) domain.Bot {
		b.Name = "Renamed"
		return b
	})
	if !ok {
		t.Fatal("patch reported miss for present key")
	}
	got, _ := m.Find("b2")
	if got.Name != "Renamed" {
		t.Errorf("patch not applied: %+v", got)
	}
	if m.Len() != 3 {
		t.Error("patch changed collection size")
	}
}

func TestPatchAbsentKeyIsNoOp(t *testing.T) {
	m := loadedBots(t)
	if m.Patch("nope", func(b domain.Bot) domain.Bot { return b }) {
		t.Error("patch should miss for absent key")
	}
	if m.Len() != 3 {
		t.Error("missed patch mutated the collection")
	}
}

func TestRemoveDeletesExactlyOne(t *testing.T) {
	m := loadedBots(t)
	if !m.Remove("b2") {
		t.Fatal("remove reported miss for present key")
	}
	if m.Len() != 2 {
		t.Fatalf("after remove: %d items", m.Len())
	}
	if _, ok := m.Find("b2"); ok {
		t.Error("removed item still present")
	}
	// Remaining order is untouched.
	items := m.Items()
	if items[0].ID != "b1" || items[1].ID != "b3" {
		t.Errorf("remove reordered items: %v", items)
	}
}

func TestRemoveAbsentKeyIsNoOp(t *testing.T) {
	m := loadedBots(t)
	if m.Remove("nope") {
		t.Error("remove should miss for absent key")
	}
	if m.Len() != 3 {
		t.Error("missed remove mutated the collection")
	}
}

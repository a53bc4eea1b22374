package filter

import (
	"reflect"
	"testing"

	"listical-cli/internal/model"
)

func fixture() []model.Row {
	return []model.Row{
		{ID: "tl", Kind: model.KindTimelineHeader, Timeline: model.TimelineWeek},
		{ID: "flt", Kind: model.KindFilterRow},
		{ID: "hdr", Kind: model.KindProjectHeader, GroupID: "grp-a", Label: "Home"},
		{ID: "t1", Kind: model.KindTask, Project: "Home", Status: model.StatusScheduled, ParentGroupID: "grp-a", Days: []string{"1.00", ""}},
		{ID: "t2", Kind: model.KindTask, Project: "Work", Status: model.StatusDone, ParentGroupID: "grp-a", Days: []string{"", "0.30"}},
		{ID: "div", Kind: model.KindSectionDivider, Divider: model.DividerInbox},
		{ID: "t3", Kind: model.KindTask, Project: "Home", Status: model.StatusNotScheduled, Days: []string{"", ""}},
	}
}

func ids(rows []model.Row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}

func TestNoFiltersIsIdentity(t *testing.T) {
	rows := fixture()
	got := Apply(rows, Filters{})
	if &got[0] != &rows[0] || len(got) != len(rows) {
		t.Fatalf("zero-filter Apply must return the input slice unchanged")
	}
}

func TestFacetFilterHidesStructure(t *testing.T) {
	rows := fixture()
	got := Apply(rows, Filters{Facets: Facets{Project: Set{"Home": true}}})
	want := []string{"tl", "flt", "t1", "t3"}
	if !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("got %v, want %v", ids(got), want)
	}
}

func TestStatusFacet(t *testing.T) {
	rows := fixture()
	got := Apply(rows, Filters{Facets: Facets{Status: Set{string(model.StatusDone): true}}})
	want := []string{"tl", "flt", "t2"}
	if !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("got %v, want %v", ids(got), want)
	}
}

func TestDayColumnFilter(t *testing.T) {
	rows := fixture()
	got := Apply(rows, Filters{DayColumns: map[int]bool{0: true}})
	// Bypass rows survive day-column filtering; only t1 has day 0.
	want := []string{"tl", "flt", "hdr", "t1", "div"}
	if !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("got %v, want %v", ids(got), want)
	}
}

func TestCollapsedDropsDescendantsOnly(t *testing.T) {
	rows := fixture()
	got := Apply(rows, Filters{Collapsed: map[string]bool{"grp-a": true}})
	want := []string{"tl", "flt", "hdr", "div", "t3"}
	if !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("got %v, want %v", ids(got), want)
	}
	// Expanding restores the original view exactly.
	back := Apply(rows, Filters{})
	if !reflect.DeepEqual(ids(back), ids(rows)) {
		t.Fatalf("expand: got %v", ids(back))
	}
}

func TestIdempotent(t *testing.T) {
	rows := fixture()
	f := Filters{
		Facets:     Facets{Project: Set{"Home": true}},
		DayColumns: map[int]bool{0: true},
	}
	once := Apply(rows, f)
	twice := Apply(once, f)
	if !reflect.DeepEqual(ids(once), ids(twice)) {
		t.Fatalf("not idempotent: %v vs %v", ids(once), ids(twice))
	}
}

func TestUseTimeValueTokenPassesDayFilter(t *testing.T) {
	rows := []model.Row{
		{ID: "t", Kind: model.KindTask, Days: []string{model.UseTimeValue}},
	}
	got := Apply(rows, Filters{DayColumns: map[int]bool{0: true}})
	if len(got) != 1 {
		t.Fatalf("token cell should satisfy a day-column filter")
	}
}

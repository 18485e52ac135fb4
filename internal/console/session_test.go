package console

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/JonMunkholm/regions/internal/core"
)

func newTestSession(t *testing.T, seed []core.Region) (*Session, *core.Service) {
	t.Helper()
	store, err := core.NewMemoryStore(seed)
	if err != nil {
		t.Fatalf("NewMemoryStore() error = %v", err)
	}
	svc := core.NewService(store, 4)
	s := NewSession(svc)
	if err := s.EnsureLoaded(context.Background()); err != nil {
		t.Fatalf("EnsureLoaded() error = %v", err)
	}
	return s, svc
}

func continents() []core.Region {
	return []core.Region{
		{ID: "eu", Name: "Europe", Countries: []string{"France"}, IsActive: true},
		{ID: "ea", Name: "East Asia", Countries: []string{"Japan"}, IsActive: true},
		{ID: "af", Name: "Eastern Africa", Countries: []string{"Kenya"}},
	}
}

func rowNames(v View) []string {
	out := make([]string, len(v.Rows))
	for i, r := range v.Rows {
		out[i] = r.Region.Name
	}
	return out
}

// countingService counts List calls.
type countingService struct {
	*core.Service
	lists int
}

func (c *countingService) List(ctx context.Context) ([]core.Region, error) {
	c.lists++
	return c.Service.List(ctx)
}

func TestSession_InitialLoad(t *testing.T) {
	store, _ := core.NewMemoryStore(continents())
	svc := &countingService{Service: core.NewService(store, 1)}
	s := NewSession(svc)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if err := s.EnsureLoaded(ctx); err != nil {
			t.Fatalf("EnsureLoaded() error = %v", err)
		}
	}
	if svc.lists != 1 {
		t.Errorf("List called %d times, want 1", svc.lists)
	}

	v := s.View()
	if v.Total != 3 || len(v.Rows) != 3 {
		t.Errorf("Total = %d, rows = %d, want 3 and 3", v.Total, len(v.Rows))
	}
	if v.Rows[0].Number != 1 || v.Rows[2].Number != 3 {
		t.Errorf("row numbers = %d..%d, want 1..3", v.Rows[0].Number, v.Rows[2].Number)
	}
	if v.Modal.Kind != ModalClosed {
		t.Errorf("Modal = %v, want closed", v.Modal.Kind)
	}
}

func TestSession_Search(t *testing.T) {
	store, _ := core.NewMemoryStore(continents())
	svc := &countingService{Service: core.NewService(store, 1)}
	s := NewSession(svc)
	_ = s.EnsureLoaded(context.Background())

	s.Search("east")
	v := s.View()
	if got, want := rowNames(v), []string{"East Asia", "Eastern Africa"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Search(east) rows = %v, want %v", got, want)
	}
	if v.SearchTerm != "east" {
		t.Errorf("SearchTerm = %q", v.SearchTerm)
	}
	if v.Total != 3 {
		t.Errorf("Total = %d, want 3", v.Total)
	}

	s.Search("   ")
	if got, want := rowNames(s.View()), []string{"Europe", "East Asia", "Eastern Africa"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Search(blank) rows = %v, want %v", got, want)
	}

	if svc.lists != 1 {
		t.Errorf("Search triggered List, calls = %d", svc.lists)
	}
}

func TestSession_SelectionByID(t *testing.T) {
	s, _ := newTestSession(t, continents())

	s.Toggle("af")
	s.Search("east")
	v := s.View()
	// Row positions shifted but the selection follows the record.
	if !v.Rows[1].Selected || v.Rows[0].Selected {
		t.Errorf("selection after search = %+v", v.Rows)
	}
	if v.SelectedCount != 1 || v.AllSelected {
		t.Errorf("SelectedCount = %d, AllSelected = %v", v.SelectedCount, v.AllSelected)
	}

	s.Toggle("af")
	if s.View().SelectedCount != 0 {
		t.Error("second Toggle did not deselect")
	}

	// Hidden rows cannot be toggled.
	s.Toggle("eu")
	s.Search("")
	if s.View().SelectedCount != 0 {
		t.Error("Toggle selected a row that was not displayed")
	}
}

func TestSession_ToggleAll(t *testing.T) {
	s, _ := newTestSession(t, continents())

	s.Search("east")
	s.ToggleAll()
	v := s.View()
	if !v.AllSelected || v.SelectedCount != 2 {
		t.Fatalf("after ToggleAll: AllSelected = %v, SelectedCount = %d", v.AllSelected, v.SelectedCount)
	}

	s.Search("")
	v = s.View()
	if v.AllSelected || v.SelectedCount != 2 {
		t.Errorf("full list: AllSelected = %v, SelectedCount = %d", v.AllSelected, v.SelectedCount)
	}

	// Not all selected: selects the rest.
	s.ToggleAll()
	if v = s.View(); !v.AllSelected || v.SelectedCount != 3 {
		t.Errorf("second ToggleAll: AllSelected = %v, SelectedCount = %d", v.AllSelected, v.SelectedCount)
	}

	// All selected: clears.
	s.ToggleAll()
	if v = s.View(); v.SelectedCount != 0 {
		t.Errorf("third ToggleAll left %d selected", v.SelectedCount)
	}
}

func TestSession_ToggleAllEmpty(t *testing.T) {
	s, _ := newTestSession(t, nil)
	s.ToggleAll()
	if v := s.View(); v.AllSelected || v.SelectedCount != 0 {
		t.Errorf("empty list: AllSelected = %v, SelectedCount = %d", v.AllSelected, v.SelectedCount)
	}
}

func TestSession_Create(t *testing.T) {
	s, svc := newTestSession(t, continents())
	s.newID = func() string { return "new-id" }
	ctx := context.Background()

	s.Toggle("eu")
	s.OpenCreate()
	if v := s.View(); v.Modal.Kind != ModalForm || v.Modal.Editing || v.Modal.Region != nil {
		t.Fatalf("OpenCreate modal = %+v", v.Modal)
	}

	in := FormInput{Name: "Oceania", Countries: []string{"Fiji"}, IsActive: true}
	if err := s.SubmitForm(ctx, in); err != nil {
		t.Fatalf("SubmitForm() error = %v", err)
	}

	got, err := svc.Get(ctx, "new-id")
	if err != nil {
		t.Fatalf("Get(new-id) error = %v", err)
	}
	want := core.Region{ID: "new-id", Name: "Oceania", Countries: []string{"Fiji"}, IsActive: true}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("stored = %+v, want %+v", got, want)
	}

	v := s.View()
	if v.Modal.Kind != ModalClosed {
		t.Errorf("form still open after create")
	}
	if len(v.Rows) != 4 || v.Rows[3].Region.ID != "new-id" {
		t.Errorf("rows after create = %v", rowNames(v))
	}
	if v.SelectedCount != 1 {
		t.Errorf("create cleared selection, SelectedCount = %d", v.SelectedCount)
	}
	if v.Notice == nil || v.Notice.Level != NoticeInfo {
		t.Errorf("Notice = %+v, want info", v.Notice)
	}
	if s.View().Notice != nil {
		t.Error("notice shown twice")
	}
}

func TestSession_Edit(t *testing.T) {
	s, svc := newTestSession(t, continents())
	ctx := context.Background()

	s.Toggle("ea")
	if err := s.OpenEdit(ctx, "ea"); err != nil {
		t.Fatalf("OpenEdit() error = %v", err)
	}
	v := s.View()
	if v.Modal.Kind != ModalForm || !v.Modal.Editing || v.Modal.Region.Name != "East Asia" {
		t.Fatalf("OpenEdit modal = %+v", v.Modal)
	}

	if err := s.SubmitForm(ctx, FormInput{Name: "Far East", Countries: []string{"Japan", "Korea"}}); err != nil {
		t.Fatalf("SubmitForm() error = %v", err)
	}

	got, _ := svc.Get(ctx, "ea")
	if got.Name != "Far East" || got.IsActive || len(got.Countries) != 2 {
		t.Errorf("updated region = %+v", got)
	}

	v = s.View()
	if v.Modal.Kind != ModalClosed || v.SelectedCount != 0 {
		t.Errorf("after edit: modal = %v, selected = %d", v.Modal.Kind, v.SelectedCount)
	}
	if v.Total != 3 {
		t.Errorf("Total = %d, want 3", v.Total)
	}
}

func TestSession_EditMissing(t *testing.T) {
	s, _ := newTestSession(t, continents())

	err := s.OpenEdit(context.Background(), "nope")
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("OpenEdit() error = %v, want ErrNotFound", err)
	}
	v := s.View()
	if v.Modal.Kind != ModalClosed {
		t.Errorf("modal opened for missing region")
	}
	if v.Notice == nil || v.Notice.Code != "REG001" {
		t.Errorf("Notice = %+v, want REG001", v.Notice)
	}
}

func TestSession_EditTargetDeletedElsewhere(t *testing.T) {
	s, svc := newTestSession(t, continents())
	ctx := context.Background()

	_ = s.OpenEdit(ctx, "ea")
	_ = svc.Delete(ctx, "ea")

	err := s.SubmitForm(ctx, FormInput{Name: "Gone"})
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("SubmitForm() error = %v, want ErrNotFound", err)
	}
	v := s.View()
	if v.Modal.Kind != ModalForm {
		t.Errorf("failed submit closed the form")
	}
	if v.Notice == nil || v.Notice.Level != NoticeError {
		t.Errorf("Notice = %+v", v.Notice)
	}
}

func TestSession_SubmitWithoutForm(t *testing.T) {
	s, _ := newTestSession(t, continents())

	err := s.SubmitForm(context.Background(), FormInput{Name: "X"})
	if !errors.Is(err, ErrNoOpenForm) {
		t.Fatalf("SubmitForm() error = %v, want ErrNoOpenForm", err)
	}
	if v := s.View(); v.Total != 3 || v.Notice.Code != "REQ003" {
		t.Errorf("Total = %d, notice = %+v", v.Total, v.Notice)
	}
}

func TestSession_ModalsAreExclusive(t *testing.T) {
	s, _ := newTestSession(t, continents())
	ctx := context.Background()

	s.OpenCreate()
	if err := s.OpenDetail(ctx, "eu"); err != nil {
		t.Fatalf("OpenDetail() error = %v", err)
	}
	v := s.View()
	if v.Modal.Kind != ModalDetail || v.Modal.Region.ID != "eu" || v.Modal.Editing {
		t.Fatalf("detail modal = %+v", v.Modal)
	}

	_ = s.OpenEdit(ctx, "af")
	if v = s.View(); v.Modal.Kind != ModalForm || v.Modal.Region.ID != "af" {
		t.Fatalf("edit modal = %+v", v.Modal)
	}

	s.Close()
	if v = s.View(); v.Modal.Kind != ModalClosed || v.Modal.Region != nil {
		t.Errorf("Close() modal = %+v", v.Modal)
	}

	if err := s.OpenDetail(ctx, "nope"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("OpenDetail(nope) error = %v", err)
	}
}

func TestSession_DeleteOne(t *testing.T) {
	s, _ := newTestSession(t, continents())
	ctx := context.Background()

	s.Toggle("af")
	if err := s.DeleteOne(ctx, "eu"); err != nil {
		t.Fatalf("DeleteOne() error = %v", err)
	}
	v := s.View()
	if got, want := rowNames(v), []string{"East Asia", "Eastern Africa"}; !reflect.DeepEqual(got, want) {
		t.Errorf("rows = %v, want %v", got, want)
	}
	if v.SelectedCount != 0 {
		t.Errorf("selection not cleared")
	}

	if err := s.DeleteOne(ctx, "eu"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("second DeleteOne() error = %v", err)
	}
}

func TestSession_DeleteSelected(t *testing.T) {
	s, _ := newTestSession(t, continents())
	ctx := context.Background()

	s.ToggleAll()
	s.Search("east")
	if got, want := s.SelectedIDs(), []string{"ea", "af"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("SelectedIDs() = %v, want %v", got, want)
	}

	if err := s.DeleteSelected(ctx); err != nil {
		t.Fatalf("DeleteSelected() error = %v", err)
	}

	// Only the displayed selection is deleted; the filter stays applied.
	v := s.View()
	if v.Total != 1 || len(v.Rows) != 0 || v.SelectedCount != 0 {
		t.Errorf("Total = %d, rows = %v, selected = %d", v.Total, rowNames(v), v.SelectedCount)
	}
	if v.Notice == nil || v.Notice.Message != "Deleted 2 regions" {
		t.Errorf("Notice = %+v", v.Notice)
	}
}

func TestSession_DeleteSelectedPartialFailure(t *testing.T) {
	s, svc := newTestSession(t, continents())
	ctx := context.Background()

	s.ToggleAll()
	_ = svc.Delete(ctx, "ea") // removed behind the session's back

	err := s.DeleteSelected(ctx)
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("DeleteSelected() error = %v, want ErrNotFound inside", err)
	}

	v := s.View()
	if v.Total != 0 {
		t.Errorf("surviving deletes not applied, Total = %d", v.Total)
	}
	if v.Notice == nil || v.Notice.Code != "BLK001" {
		t.Fatalf("Notice = %+v, want BLK001", v.Notice)
	}
	if v.Notice.Message != "Some selected regions could not be deleted (2 of 3 deleted)" {
		t.Errorf("Notice.Message = %q", v.Notice.Message)
	}
}

func TestSession_DeleteSelectedNothing(t *testing.T) {
	s, _ := newTestSession(t, continents())
	if err := s.DeleteSelected(context.Background()); err != nil {
		t.Fatalf("DeleteSelected() error = %v", err)
	}
	if v := s.View(); v.Total != 3 || v.Notice == nil || v.Notice.Level != NoticeInfo {
		t.Errorf("Total = %d, notice = %+v", v.Total, v.Notice)
	}
}

func TestSession_ReloadPrunesSelection(t *testing.T) {
	s, svc := newTestSession(t, continents())
	ctx := context.Background()

	s.ToggleAll()
	_ = svc.Delete(ctx, "eu")
	if err := s.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got, want := s.SelectedIDs(), []string{"ea", "af"}; !reflect.DeepEqual(got, want) {
		t.Errorf("SelectedIDs() = %v, want %v", got, want)
	}
}

// failingService fails List after the first call.
type failingService struct {
	*core.Service
	calls int
}

func (f *failingService) List(ctx context.Context) ([]core.Region, error) {
	f.calls++
	if f.calls > 1 {
		return nil, errors.New("backend unavailable")
	}
	return f.Service.List(ctx)
}

func TestSession_FailedReloadKeepsSnapshot(t *testing.T) {
	store, _ := core.NewMemoryStore(continents())
	svc := &failingService{Service: core.NewService(store, 1)}
	s := NewSession(svc)
	ctx := context.Background()
	_ = s.EnsureLoaded(ctx)

	if err := s.Load(ctx); err == nil {
		t.Fatal("Load() error = nil, want failure")
	}
	v := s.View()
	if v.Total != 3 {
		t.Errorf("Total = %d after failed reload, want 3", v.Total)
	}
	if v.Notice == nil || v.Notice.Code != "ERR000" {
		t.Errorf("Notice = %+v, want ERR000", v.Notice)
	}
}

func TestSession_ViewIsSnapshot(t *testing.T) {
	s, _ := newTestSession(t, continents())
	_ = s.OpenDetail(context.Background(), "eu")

	v := s.View()
	v.Rows[0].Region.Countries[0] = "Mutated"
	v.Modal.Region.Countries[0] = "Mutated"

	again := s.View()
	if again.Rows[0].Region.Countries[0] != "France" || again.Modal.Region.Countries[0] != "France" {
		t.Error("View() exposes session state")
	}
}

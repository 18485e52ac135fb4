package console

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/JonMunkholm/regions/internal/core"
	"github.com/JonMunkholm/regions/internal/logging"
)

// ErrNoOpenForm is returned by SubmitForm when no form is open.
var ErrNoOpenForm = errors.New("invalid request: no region form is open")

// RegionService is the data access a session depends on.
type RegionService interface {
	List(ctx context.Context) ([]core.Region, error)
	Get(ctx context.Context, id string) (core.Region, error)
	Create(ctx context.Context, r core.Region) (core.Region, error)
	Update(ctx context.Context, r core.Region) (core.Region, error)
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) core.BulkDeleteResult
}

// Session is the console state of a single user.
// All methods are safe for concurrent use; actions run one at a time.
type Session struct {
	mu    sync.Mutex
	svc   RegionService
	newID func() string

	loaded    bool
	regions   []core.Region // authoritative
	displayed []core.Region
	term      string
	selected  map[string]bool
	modal     Modal
	notice    *Notice
}

// NewSession creates an unloaded session over svc.
func NewSession(svc RegionService) *Session {
	return &Session{
		svc:      svc,
		newID:    core.NewRegionID,
		selected: make(map[string]bool),
		modal:    closedModal,
	}
}

// EnsureLoaded performs the initial load the first time it is called.
func (s *Session) EnsureLoaded(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return nil
	}
	return s.reload(ctx)
}

// Load re-fetches the full list.
func (s *Session) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reload(ctx)
}

// Search commits term and filters the loaded snapshot without a service call.
func (s *Session) Search(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.term = term
	s.displayed = core.FilterByName(s.regions, term)
}

// Toggle flips the selection of a displayed region. Ids not displayed are
// ignored.
func (s *Session) Toggle(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if indexOf(s.displayed, id) < 0 {
		return
	}
	if s.selected[id] {
		delete(s.selected, id)
	} else {
		s.selected[id] = true
	}
}

// ToggleAll selects every displayed region, or clears the selection when
// they are all selected already.
func (s *Session) ToggleAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.allSelected() {
		s.selected = make(map[string]bool)
		return
	}
	for _, r := range s.displayed {
		s.selected[r.ID] = true
	}
}

// OpenCreate opens an empty form.
func (s *Session) OpenCreate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modal = formModal(nil)
}

// OpenEdit fetches the region and opens the form pre-filled with it.
func (s *Session) OpenEdit(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.svc.Get(ctx, id)
	if err != nil {
		return s.fail(ctx, "open edit form", err)
	}
	s.modal = formModal(&r)
	return nil
}

// OpenDetail opens the read-only view of an already loaded region.
func (s *Session) OpenDetail(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.regions, id)
	if i < 0 {
		return s.fail(ctx, "open detail", fmt.Errorf("open region %s: %w", id, core.ErrNotFound))
	}
	s.modal = detailModal(s.regions[i].Clone())
	return nil
}

// Close closes whichever modal is open.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modal = closedModal
}

// SubmitForm saves the open form. An edit form updates the region it was
// opened with; a create form stores a new region under a fresh id.
func (s *Session) SubmitForm(ctx context.Context, in FormInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.modal.Kind != ModalForm {
		return s.fail(ctx, "submit form", ErrNoOpenForm)
	}

	r := core.Region{
		Name:      in.Name,
		Countries: in.Countries,
		IsActive:  in.IsActive,
	}

	if s.modal.Editing {
		r.ID = s.modal.Region.ID
		if _, err := s.svc.Update(ctx, r); err != nil {
			return s.fail(ctx, "update region", err)
		}
		s.modal = closedModal
		s.clearSelection()
		s.info(fmt.Sprintf("Region %q updated", r.Name))
		return s.reload(ctx)
	}

	r.ID = s.newID()
	if _, err := s.svc.Create(ctx, r); err != nil {
		return s.fail(ctx, "create region", err)
	}
	s.modal = closedModal
	s.info(fmt.Sprintf("Region %q created", r.Name))
	return s.reload(ctx)
}

// DeleteOne deletes a single region.
func (s *Session) DeleteOne(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.svc.Delete(ctx, id); err != nil {
		return s.fail(ctx, "delete region", err)
	}
	s.clearSelection()
	if s.modal.Region != nil && s.modal.Region.ID == id {
		s.modal = closedModal
	}
	s.info("Region deleted")
	return s.reload(ctx)
}

// DeleteSelected deletes the selected regions that are currently displayed.
// Each delete succeeds or fails on its own; the outcome is summarised in a
// notice and the returned error is non-nil if any delete failed.
func (s *Session) DeleteSelected(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.selectedDisplayedIDs()
	if len(ids) == 0 {
		s.info("No regions selected")
		return nil
	}

	result := s.svc.DeleteMany(ctx, ids)
	s.clearSelection()

	err := result.Err()
	if err != nil {
		msg := core.MapError(err)
		s.notice = &Notice{
			Level:   NoticeError,
			Message: fmt.Sprintf("%s (%d of %d deleted)", msg.Message, len(result.Deleted), result.Requested),
			Action:  msg.Action,
			Code:    msg.Code,
		}
		logging.FromContext(ctx).Warn("delete selected partially failed", "error", err)
	} else {
		s.info(fmt.Sprintf("Deleted %d regions", len(result.Deleted)))
	}

	if reloadErr := s.reload(ctx); reloadErr != nil {
		return reloadErr
	}
	return err
}

// View returns a snapshot for rendering and consumes the pending notice.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		SearchTerm:  s.term,
		Rows:        make([]Row, len(s.displayed)),
		Total:       len(s.regions),
		AllSelected: s.allSelected(),
		Modal:       s.modal,
		Notice:      s.notice,
	}
	if s.modal.Region != nil {
		r := s.modal.Region.Clone()
		v.Modal.Region = &r
	}
	for i, r := range s.displayed {
		sel := s.selected[r.ID]
		if sel {
			v.SelectedCount++
		}
		v.Rows[i] = Row{Number: i + 1, Region: r.Clone(), Selected: sel}
	}

	s.notice = nil
	return v
}

// SelectedIDs returns the selected ids in displayed order.
func (s *Session) SelectedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedDisplayedIDs()
}

// reload fetches the list and re-derives displayed rows and selection.
// On failure the previous snapshot is kept. Caller holds mu.
func (s *Session) reload(ctx context.Context) error {
	regions, err := s.svc.List(ctx)
	if err != nil {
		return s.fail(ctx, "load regions", err)
	}

	s.regions = regions
	s.displayed = core.FilterByName(regions, s.term)
	s.loaded = true

	for id := range s.selected {
		if indexOf(regions, id) < 0 {
			delete(s.selected, id)
		}
	}
	return nil
}

// Report shows err as an error notice, for failures that happen before an
// action reaches the session (such as an unreadable form).
func (s *Session) Report(ctx context.Context, action string, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fail(ctx, action, err)
}

// fail records err as an error notice and returns it. Caller holds mu.
func (s *Session) fail(ctx context.Context, action string, err error) error {
	msg := core.MapError(err)
	s.notice = &Notice{
		Level:   NoticeError,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	}
	logging.FromContext(ctx).Warn("console action failed",
		"action", action,
		"code", msg.Code,
		"error", err,
	)
	return err
}

func (s *Session) info(message string) {
	s.notice = &Notice{Level: NoticeInfo, Message: message}
}

func (s *Session) clearSelection() {
	s.selected = make(map[string]bool)
}

func (s *Session) allSelected() bool {
	if len(s.displayed) == 0 {
		return false
	}
	for _, r := range s.displayed {
		if !s.selected[r.ID] {
			return false
		}
	}
	return true
}

func (s *Session) selectedDisplayedIDs() []string {
	var ids []string
	for _, r := range s.displayed {
		if s.selected[r.ID] {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

func indexOf(regions []core.Region, id string) int {
	for i := range regions {
		if regions[i].ID == id {
			return i
		}
	}
	return -1
}

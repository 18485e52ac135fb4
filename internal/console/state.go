package console

import "github.com/JonMunkholm/regions/internal/core"

// ModalKind identifies which modal, if any, is open.
type ModalKind int

const (
	ModalClosed ModalKind = iota
	ModalForm
	ModalDetail
)

func (k ModalKind) String() string {
	switch k {
	case ModalForm:
		return "form"
	case ModalDetail:
		return "detail"
	default:
		return "closed"
	}
}

// Modal is the state of the modal area.
// Region is nil for a create form and set for edit forms and detail views.
type Modal struct {
	Kind    ModalKind
	Editing bool
	Region  *core.Region
}

// closedModal is the zero state.
var closedModal = Modal{Kind: ModalClosed}

func formModal(r *core.Region) Modal {
	return Modal{Kind: ModalForm, Editing: r != nil, Region: r}
}

func detailModal(r core.Region) Modal {
	return Modal{Kind: ModalDetail, Region: &r}
}

// NoticeLevel classifies an inline notice.
type NoticeLevel string

const (
	NoticeInfo  NoticeLevel = "info"
	NoticeError NoticeLevel = "error"
)

// Notice is a one-shot message shown above the table.
type Notice struct {
	Level   NoticeLevel
	Message string
	Action  string
	Code    string
}

// FormInput is what the create/edit form submits.
type FormInput struct {
	Name      string
	Countries []string
	IsActive  bool
}

// Row is one displayed region with its 1-based row number.
type Row struct {
	Number   int
	Region   core.Region
	Selected bool
}

// View is an immutable snapshot of a session for rendering.
type View struct {
	SearchTerm    string
	Rows          []Row
	Total         int
	SelectedCount int
	AllSelected   bool
	Modal         Modal
	Notice        *Notice
}

package templates

import (
	"context"
	"io"

	"github.com/JonMunkholm/regions/internal/console"
	"github.com/JonMunkholm/regions/internal/core"
	"github.com/a-h/templ"
)

// RegionForm renders the create/edit form. An edit form is pre-filled from
// m.Region.
func RegionForm(m console.Modal) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var r core.Region
		r.IsActive = true
		if m.Region != nil {
			r = *m.Region
		}

		title, submit, submitClass := "Add New Region", "Create", "green-btn"
		if m.Editing {
			title, submit, submitClass = "Edit Region", "Update", "blue-btn"
		}

		h := newHTML(ctx, w)
		h.raw(`<div class="modal"><div class="modal-content"><h2>`, title, `</h2>`)
		h.render(closeButton())
		h.raw(`<hr><form method="post" action="/regions">`,
			`<div class="form-group"><label for="name">Name:</label>`,
			`<input type="text" id="name" name="name" value="`)
		h.text(r.Name)
		h.raw(`"></div>`,
			`<div class="form-group"><label for="countries">Countries:</label>`,
			`<textarea id="countries" name="countries" rows="3">`)
		h.text(core.EncodeCountries(r.Countries))
		h.raw(`</textarea><small>Separate countries with commas. Write \, for a comma inside a name.</small></div>`,
			`<div class="form-group last-form"><label for="status">Status:</label><select id="status" name="status">`,
			option("active", "Active", r.IsActive),
			option("inactive", "Not Active", !r.IsActive),
			`</select></div><hr><div class="modal-buttons">`,
			`<button type="submit" formaction="/close" class="red-btn">Cancel</button>`,
			`<button type="submit" class="`, submitClass, `">`, submit, `</button>`,
			`</div></form></div></div>`)
		return h.err
	})
}

// RegionDetail renders the read-only view of r.
func RegionDetail(r core.Region) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		statusClass := "red"
		if r.IsActive {
			statusClass = "green"
		}

		h := newHTML(ctx, w)
		h.raw(`<div class="modal"><div class="modal-content"><h2>`)
		h.text(r.Name)
		h.raw(`</h2>`)
		h.render(closeButton())
		h.raw(`<hr><div class="form-group view"><label>Countries:</label><p class="country-name">`)
		h.text(r.CountryList())
		h.raw(`</p></div><hr><div class="form-group view"><label>Status:</label><p class="`, statusClass, `">`, r.Status(), `</p></div>`,
			`<div class="modal-buttons center"><form method="post" action="/close"><button type="submit">Close</button></form></div>`,
			`</div></div>`)
		return h.err
	})
}

func closeButton() templ.Component {
	return templ.Raw(`<form method="post" action="/close" class="close-form"><button type="submit" class="close" aria-label="Close">&times;</button></form>`)
}

func option(value, label string, selected bool) string {
	attr := ""
	if selected {
		attr = " selected"
	}
	return `<option value="` + value + `"` + attr + `>` + label + `</option>`
}

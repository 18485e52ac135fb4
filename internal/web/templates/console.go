package templates

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/JonMunkholm/regions/internal/console"
	"github.com/JonMunkholm/regions/internal/core"
	"github.com/a-h/templ"
)

// ConsolePage renders the full console page.
func ConsolePage(v console.View) templ.Component {
	return Layout("Regions", ConsolePartial(v))
}

// ConsolePartial renders the console body, swapped in whole by HTMX requests.
func ConsolePartial(v console.View) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTML(ctx, w)
		h.raw(`<main id="console" class="console"><h1>Regions</h1>`)
		h.render(NoticeBanner(v.Notice))
		h.render(SearchBar(v.SearchTerm))
		h.render(tableButtons(v))
		h.render(RegionTable(v))
		switch v.Modal.Kind {
		case console.ModalForm:
			h.render(RegionForm(v.Modal))
		case console.ModalDetail:
			if v.Modal.Region != nil {
				h.render(RegionDetail(*v.Modal.Region))
			}
		}
		h.raw(`</main>`)
		return h.err
	})
}

// NoticeBanner renders a one-shot notice, or nothing.
func NoticeBanner(n *console.Notice) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if n == nil {
			return nil
		}
		if n.Level == console.NoticeError {
			return ErrorAlert(n.Message, n.Action, n.Code).Render(ctx, w)
		}
		h := newHTML(ctx, w)
		h.raw(`<div class="notice notice-info" role="status">`)
		h.text(n.Message)
		h.raw(`</div>`)
		return h.err
	})
}

// SearchBar renders the name search form.
func SearchBar(term string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTML(ctx, w)
		class := "search-button"
		if strings.TrimSpace(term) != "" {
			class += " active"
		}
		h.raw(`<form class="search-bar" method="post" action="/search">`,
			`<input class="search-input" type="text" name="q" placeholder="Search by region name..." value="`)
		h.text(term)
		h.raw(`"><button class="`, class, `" type="submit">Search</button></form>`)
		return h.err
	})
}

func tableButtons(v console.View) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTML(ctx, w)
		h.raw(`<div class="table-buttons">`,
			`<a class="button new-region-button" href="/regions/new">Add Region</a>`,
			`<form method="post" action="/delete-selected">`,
			`<button class="delete-selected-button" type="submit"`)
		if v.SelectedCount == 0 {
			h.raw(` disabled`)
		}
		h.raw(`>Delete Selected`)
		if v.SelectedCount > 0 {
			h.raw(` (`, strconv.Itoa(v.SelectedCount), `)`)
		}
		h.raw(`</button></form>`)
		h.raw(`<span class="count">`, strconv.Itoa(len(v.Rows)), ` of `, strconv.Itoa(v.Total), ` regions</span></div>`)
		return h.err
	})
}

// RegionTable renders the displayed rows.
func RegionTable(v console.View) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTML(ctx, w)
		h.raw(`<table class="results-table"><thead><tr><th></th><th>`,
			`<form method="post" action="/select-all">`,
			checkbox(v.AllSelected, "Select all"),
			`</form></th><th>Name</th><th class="hide-column">Countries</th><th>Status</th><th>Actions</th></tr></thead><tbody>`)

		if len(v.Rows) == 0 {
			h.raw(`<tr><td colspan="6" class="empty">No regions</td></tr>`)
		}
		for _, row := range v.Rows {
			h.render(regionRow(row))
		}

		h.raw(`</tbody></table>`)
		return h.err
	})
}

func regionRow(row console.Row) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		r := row.Region
		h := newHTML(ctx, w)
		h.raw(`<tr><td>`, strconv.Itoa(row.Number), `</td><td>`,
			`<form method="post" action="/select/`, templ.EscapeString(pathSegment(r.ID)), `">`,
			checkbox(row.Selected, "Select "+templ.EscapeString(r.Name)),
			`</form></td><td><a class="region-name" href="`, regionPath(r.ID, ""), `">`)
		h.text(r.Name)
		h.raw(`</a></td><td class="hide-column">`)
		h.text(r.CountryList())
		h.raw(`</td><td>`, statusCircle(r), `</td><td><div class="action-icons">`,
			`<a class="edit-button" href="`, regionPath(r.ID, "/edit"), `" title="Edit">Edit</a>`,
			`<form method="post" action="`, regionPath(r.ID, "/delete"), `">`,
			`<button class="delete-button" type="submit" title="Delete">Delete</button></form>`,
			`</div></td></tr>`)
		return h.err
	})
}

// checkbox renders a submit button standing in for a checkbox.
// label must already be escaped.
func checkbox(checked bool, label string) string {
	mark, pressed := "&#9744;", "false"
	if checked {
		mark, pressed = "&#9745;", "true"
	}
	return `<button class="checkbox" type="submit" aria-pressed="` + pressed + `" aria-label="` + label + `">` + mark + `</button>`
}

func statusCircle(r core.Region) string {
	class := "inactive"
	if r.IsActive {
		class = "active"
	}
	return `<div class="status-circle ` + class + `" title="` + r.Status() + `"></div>`
}

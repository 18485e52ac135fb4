package web

import (
	"fmt"
	"net/http"

	"github.com/JonMunkholm/regions/internal/console"
	"github.com/JonMunkholm/regions/internal/logging"
	"github.com/JonMunkholm/regions/internal/web/templates"
	"github.com/a-h/templ"
)

// Console handlers run one session action each. Action failures become
// inline notices on the session, so handlers render rather than error out.
//
// POST actions answer 303 to "/" (post/redirect/get) or, for HTMX, the
// console partial. GET actions that open a modal render the page directly.

// consoleAction resolves the session, makes sure it has been loaded, and runs
// act with the request context.
func (s *Server) consoleAction(w http.ResponseWriter, r *http.Request, act func(sess *console.Session)) *console.Session {
	sess := s.session(w, r)
	ctx := requestContext(r)
	_ = sess.EnsureLoaded(ctx)
	if act != nil {
		act(sess)
	}
	return sess
}

// finishPost completes a POST action.
func (s *Server) finishPost(w http.ResponseWriter, r *http.Request, sess *console.Session) {
	if isHTMX(r) {
		s.render(w, r, templates.ConsolePartial(sess.View()))
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// renderConsole renders the full page, or the partial for HTMX.
func (s *Server) renderConsole(w http.ResponseWriter, r *http.Request, sess *console.Session) {
	v := sess.View()
	if isHTMX(r) {
		s.render(w, r, templates.ConsolePartial(v))
		return
	}
	s.render(w, r, templates.ConsolePage(v))
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := c.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render console", "error", err)
	}
}

func (s *Server) handleConsole(w http.ResponseWriter, r *http.Request) {
	sess := s.consoleAction(w, r, nil)
	s.renderConsole(w, r, sess)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	sess := s.consoleAction(w, r, func(sess *console.Session) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
		if err := r.ParseForm(); err != nil {
			_ = sess.Report(requestContext(r), "search", fmt.Errorf("invalid request: %w", err))
			return
		}
		sess.Search(r.PostForm.Get("q"))
	})
	s.finishPost(w, r, sess)
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	id := regionID(r)
	sess := s.consoleAction(w, r, func(sess *console.Session) {
		sess.Toggle(id)
	})
	s.finishPost(w, r, sess)
}

func (s *Server) handleToggleAll(w http.ResponseWriter, r *http.Request) {
	sess := s.consoleAction(w, r, func(sess *console.Session) {
		sess.ToggleAll()
	})
	s.finishPost(w, r, sess)
}

func (s *Server) handleNewForm(w http.ResponseWriter, r *http.Request) {
	sess := s.consoleAction(w, r, func(sess *console.Session) {
		sess.OpenCreate()
	})
	s.renderConsole(w, r, sess)
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	id := regionID(r)
	sess := s.consoleAction(w, r, func(sess *console.Session) {
		_ = sess.OpenDetail(requestContext(r), id)
	})
	s.renderConsole(w, r, sess)
}

func (s *Server) handleEditForm(w http.ResponseWriter, r *http.Request) {
	id := regionID(r)
	sess := s.consoleAction(w, r, func(sess *console.Session) {
		_ = sess.OpenEdit(requestContext(r), id)
	})
	s.renderConsole(w, r, sess)
}

func (s *Server) handleSubmitForm(w http.ResponseWriter, r *http.Request) {
	sess := s.consoleAction(w, r, func(sess *console.Session) {
		ctx := requestContext(r)
		in, err := parseRegionForm(w, r)
		if err != nil {
			_ = sess.Report(ctx, "submit region form", err)
			return
		}
		_ = sess.SubmitForm(ctx, in)
	})
	s.finishPost(w, r, sess)
}

func (s *Server) handleDeleteOne(w http.ResponseWriter, r *http.Request) {
	id := regionID(r)
	sess := s.consoleAction(w, r, func(sess *console.Session) {
		_ = sess.DeleteOne(requestContext(r), id)
	})
	s.finishPost(w, r, sess)
}

func (s *Server) handleDeleteSelected(w http.ResponseWriter, r *http.Request) {
	sess := s.consoleAction(w, r, func(sess *console.Session) {
		_ = sess.DeleteSelected(requestContext(r))
	})
	s.finishPost(w, r, sess)
}

func (s *Server) handleClose(w http.ResponseWriter, r *http.Request) {
	sess := s.consoleAction(w, r, func(sess *console.Session) {
		sess.Close()
	})
	s.finishPost(w, r, sess)
}

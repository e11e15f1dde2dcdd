package server

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kelhaddad/folio/internal/filter"
	"github.com/kelhaddad/folio/internal/nav"
)

// isBackNav reports whether this render was reached through the /back
// redirect. Such renders re-show a route the history already popped,
// so they must not push it again.
func isBackNav(r *http.Request) bool {
	return r.URL.Query().Get("nav") == "back"
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if !isBackNav(r) {
		s.app.Visit(nav.Home)
	}

	page, err := s.app.Renderer().Home(s.app.Timeline(), s.app.Featured())
	if err != nil {
		log.Printf("server: rendering home: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, page)
}

func (s *Server) handlePosts(w http.ResponseWriter, r *http.Request) {
	if !isBackNav(r) {
		s.app.Visit(nav.Route{View: nav.ViewPosts})
	}

	state := stateFromQuery(r)
	norm, results, universe := s.app.Filter(state)

	page, err := s.app.Renderer().List(norm, results, universe)
	if err != nil {
		log.Printf("server: rendering list: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, page)
}

func (s *Server) handlePostDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, ok := s.app.Find(id)
	if !ok {
		page, err := s.app.Renderer().NotFound(id)
		if err != nil {
			http.Error(w, "post not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(page))
		return
	}

	if !isBackNav(r) {
		s.app.Visit(nav.Route{View: nav.ViewDetail, PostID: id})
	}

	if page, hit := s.app.DetailCache().Get(id); hit {
		writeHTML(w, page)
		return
	}

	page, err := s.app.Renderer().Detail(r.Context(), p)
	if err != nil {
		log.Printf("server: rendering post %s: %v", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	s.app.DetailCache().Put(id, page)
	writeHTML(w, page)
}

// handleBack pops the navigation history and redirects to the route
// underneath, falling back to home. The nav=back marker tells the
// target handler to render without pushing the route back on.
func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, s.app.Back().Path()+"?nav=back", http.StatusSeeOther)
}

// apiPost is the JSON shape served by /api/posts.
type apiPost struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	Description string    `json:"description,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Image       string    `json:"image,omitempty"`
	Featured    bool      `json:"featured,omitempty"`
	Pinned      bool      `json:"pinned,omitempty"`
}

func (s *Server) handleAPIPosts(w http.ResponseWriter, r *http.Request) {
	_, results, _ := s.app.Filter(stateFromQuery(r))

	out := make([]apiPost, len(results))
	for i, p := range results {
		out[i] = apiPost{
			ID:          p.ID,
			Title:       p.Title,
			Date:        p.Date,
			Description: p.Description,
			Tags:        p.Tags,
			Image:       p.Image,
			Featured:    p.Featured,
			Pinned:      p.Pinned,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		log.Printf("server: encoding posts: %v", err)
	}
}

func (s *Server) handleStatic(contentType string, body func() []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Write(body())
	}
}

// stateFromQuery maps the list view's query parameters onto a filter
// state. Unknown values are clamped later by Normalize.
func stateFromQuery(r *http.Request) filter.State {
	q := r.URL.Query()
	return filter.State{
		Search: q.Get("q"),
		Tags:   q["tags"],
		Sort:   filter.SortOrder(q.Get("sort")),
		View:   filter.ViewMode(q.Get("view")),
	}
}

func writeHTML(w http.ResponseWriter, page string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(page))
}

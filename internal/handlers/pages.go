package handlers

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/sbelkacem/gosocial/internal/middleware"
)

//go:embed templates
var templatesFS embed.FS

// PageHandler serves the static HTML surface: landing page, auth forms and
// the post page. The post page sits behind the soft auth variant.
type PageHandler struct {
	tmpl *template.Template
}

func NewPageHandler() (*PageHandler, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &PageHandler{tmpl: tmpl}, nil
}

func (h *PageHandler) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, name, data); err != nil {
		slog.Error("render template failed", "template", name, "error", err)
	}
}

func (h *PageHandler) Landing(w http.ResponseWriter, r *http.Request) {
	h.render(w, "index.html", nil)
}

func (h *PageHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, "register.html", nil)
}

func (h *PageHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, "login.html", nil)
}

// PostPage greets the authenticated user. The soft middleware guarantees an
// identity here; the query parameter set by registration is just a fallback
// for the first render.
func (h *PageHandler) PostPage(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if id, ok := middleware.GetIdentity(r.Context()); ok {
		username = id.Username
	}
	h.render(w, "post.html", map[string]string{"Username": username})
}

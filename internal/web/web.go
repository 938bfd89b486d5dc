// Package web serves the server-rendered pages: login and registration
// forms, the admin landing and the per-resource registration pages. The
// templates are embedded into the binary.
package web

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/daii-team/school-scheduler/internal/apperror"
	"github.com/daii-team/school-scheduler/internal/lib/sl"
	"github.com/daii-team/school-scheduler/internal/services/auth"
)

//go:embed templates/*.html
var templatesFS embed.FS

// AuthService is the authentication logic the pages delegate to.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, in auth.RegisterInput) (string, error)
}

// Server renders the pages and handles the form posts.
type Server struct {
	auth      AuthService
	log       *slog.Logger
	templates *template.Template
}

// New parses the embedded templates and creates the page server.
func New(authService AuthService, log *slog.Logger) (*Server, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Server{
		auth:      authService,
		log:       log,
		templates: tmpl,
	}, nil
}

// Routes registers the page routes behind the session guard.
func (s *Server) Routes(r chi.Router) {
	r.Use(Guard)
	r.Get("/", s.handleHome)
	r.Get("/login", s.handleLoginPage)
	r.Post("/login", s.handleLoginPost)
	r.Get("/register", s.handleRegisterPage)
	r.Post("/register", s.handleRegisterPost)
	r.Get("/logout", s.handleLogout)
	r.Get("/adm", s.handleAdm)
	r.Get("/cadastro/{resource}", s.handleCadastro)
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.log.Error("failed to render template", slog.String("template", name), sl.Err(err))
	}
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	// Guard sends sessions straight to /adm; everyone else lands on login.
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, "login.html", map[string]string{})
}

func (s *Server) handleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.render(w, "login.html", map[string]string{"Error": "Email e senha são obrigatórios"})
		return
	}
	email := r.FormValue("email")
	pwd := r.FormValue("pwd")
	if email == "" || pwd == "" {
		s.render(w, "login.html", map[string]string{"Error": "Email e senha são obrigatórios"})
		return
	}

	token, err := s.auth.Login(r.Context(), email, pwd)
	if err != nil {
		appErr := apperror.From(err, "Erro ao realizar login")
		s.log.Error("page login failed", sl.Err(err))
		s.render(w, "login.html", map[string]string{"Error": appErr.Message})
		return
	}

	SetSession(w, token)
	http.Redirect(w, r, "/adm", http.StatusFound)
}

func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, "register.html", map[string]string{})
}

func (s *Server) handleRegisterPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.render(w, "register.html", map[string]string{"Error": "Campos obrigatórios não preenchidos"})
		return
	}
	in := auth.RegisterInput{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Username: r.FormValue("username"),
		Password: r.FormValue("pwd"),
	}
	if in.Name == "" || in.Email == "" || in.Username == "" || in.Password == "" {
		s.render(w, "register.html", map[string]string{"Error": "Campos obrigatórios não preenchidos"})
		return
	}

	if _, err := s.auth.Register(r.Context(), in); err != nil {
		appErr := apperror.From(err, "Erro ao cadastrar usuário")
		s.log.Error("page registration failed", sl.Err(err))
		s.render(w, "register.html", map[string]string{"Error": appErr.Message})
		return
	}

	http.Redirect(w, r, "/login", http.StatusFound)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	ClearSession(w)
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (s *Server) handleAdm(w http.ResponseWriter, r *http.Request) {
	s.render(w, "adm.html", nil)
}

func (s *Server) handleCadastro(w http.ResponseWriter, r *http.Request) {
	resource := chi.URLParam(r, "resource")
	s.render(w, "cadastro.html", map[string]string{"Resource": resource})
}

package api

import (
	"fmt"
	"net/http"

	"github.com/Vishalkagade/german-flashcard-backend/app/clients/gemini"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

type Server struct {
	translator gemini.Translator
	router     chi.Router
}

func (s *Server) Run(port int) error {
	return http.ListenAndServe(fmt.Sprintf(":%d", port), s.router)
}

func (s *Server) setJsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// recoverPanics replaces chi's Recoverer so clients get the JSON error body
// even for panics.
func (s *Server) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().Interface("panic", rec).Str("path", r.URL.Path).Msg("recovered from panic in handler")
				w.WriteHeader(http.StatusInternalServerError)
				if _, err := w.Write([]byte(`{"error":"Internal server error"}`)); err != nil {
					log.Warn().Err(err).Msg("failed to write response")
				}
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func NewServer(translator gemini.Translator) *Server {
	s := &Server{translator: translator}
	translate := translateService{translator: translator}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(s.setJsonContentType)
	r.Use(s.recoverPanics)
	r.Post("/translate", translate.TranslateWord)

	s.router = r
	return s
}

package api

import (
	"net/http/httptest"

	"github.com/Vishalkagade/german-flashcard-backend/app/clients/gemini"
)

// stubTranslator returns a fixed translation or error and counts calls.
type stubTranslator struct {
	result gemini.Translation
	err    error
	words  []string
}

func (s *stubTranslator) Translate(word string) (gemini.Translation, error) {
	s.words = append(s.words, word)
	if s.err != nil {
		return gemini.Translation{}, s.err
	}
	return s.result, nil
}

// panicTranslator triggers the panic recovery middleware.
type panicTranslator struct{}

func (panicTranslator) Translate(string) (gemini.Translation, error) {
	panic("translator exploded")
}

// getTestServer returns a test server.
func getTestServer(translator gemini.Translator) (*httptest.Server, func()) {
	if translator == nil {
		translator = &stubTranslator{}
	}

	server := NewServer(translator)
	srv := httptest.NewServer(server.router)
	return srv, srv.Close
}

package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Vishalkagade/german-flashcard-backend/app/clients/gemini"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// translationRequest is the body accepted by POST /translate
type translationRequest struct {
	GermanWord string `json:"germanWord"`
}

// translationResponse is returned to the client on success
type translationResponse struct {
	German  string             `json:"german"`
	English string             `json:"english"`
	Raw     gemini.Translation `json:"raw"`
}

// errorResponse is the body of every failed request
type errorResponse struct {
	Error   string `json:"error"`
	Status  int    `json:"status,omitempty"`
	Details string `json:"details,omitempty"`
	Raw     string `json:"raw,omitempty"`
}

// translateService implements methods for the translation API
type translateService struct {
	translator gemini.Translator
}

// TranslateWord asks Gemini for a structured translation of a single German
// word and reshapes the reply into the flashcard payload
func (t translateService) TranslateWord(w http.ResponseWriter, r *http.Request) {
	var request translationRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || strings.TrimSpace(request.GermanWord) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "germanWord is required"})
		return
	}

	result, err := t.translator.Translate(request.GermanWord)
	if err != nil {
		t.writeTranslateError(w, request.GermanWord, err)
		return
	}
	writeJSON(w, http.StatusOK, translationResponse{
		German:  result.GermanWord + "\n\n(" + result.Details + ")",
		English: result.EnglishTranslation,
		Raw:     result,
	})
}

// writeTranslateError maps client failures to the API error contract
func (t translateService) writeTranslateError(w http.ResponseWriter, word string, err error) {
	var statusErr *gemini.StatusError
	var payloadErr *gemini.PayloadError
	switch {
	case errors.Is(err, gemini.ErrMissingAPIKey):
		log.Error().Msg("translation requested without configured gemini API key")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Server misconfiguration: API key missing"})
	case errors.As(err, &statusErr):
		writeJSON(w, statusErr.Code, errorResponse{
			Error:   "Gemini API request failed",
			Status:  statusErr.Code,
			Details: statusErr.Body,
		})
	case errors.Is(err, gemini.ErrNoContent):
		log.Error().Str("word", word).Msg("gemini reply missing generated content")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Unexpected response structure from Gemini API"})
	case errors.As(err, &payloadErr):
		log.Error().Err(err).Str("word", word).Msg("gemini returned unparsable translation payload")
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error: "Failed to parse translation from Gemini response",
			Raw:   payloadErr.Raw,
		})
	default:
		log.Error().Err(err).Str("word", word).Msg("failed to request gemini API")
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "Failed to reach Gemini API",
			Details: err.Error(),
		})
	}
}

// writeJSON marshals payload and writes it with the given status code
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	body, jerr := json.Marshal(payload)
	if jerr != nil {
		log.Error().Err(jerr).Msg("failed to marshal response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}
}

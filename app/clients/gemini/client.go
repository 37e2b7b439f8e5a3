package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/rs/zerolog/log"
)

const (
	generateURL = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"

	// DefaultModel is used when no model is configured.
	DefaultModel = "gemini-1.5-flash"
)

var (
	// ErrMissingAPIKey is returned before any request is made when the client
	// was created without an API key.
	ErrMissingAPIKey = errors.New("gemini API key is not configured")
	// ErrNoContent is returned when the reply misses the generated text at
	// any nesting level.
	ErrNoContent = errors.New("gemini reply contains no generated text")
)

// StatusError is returned for non-200 API responses and keeps the upstream
// status and body so callers can mirror them.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unsuccessfull API response %v", e.Code)
}

// PayloadError is returned when the generated text does not parse as a
// Translation. Raw carries the text unchanged for diagnostics.
type PayloadError struct {
	Raw string
	Err error
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("parse generated payload: %v", e.Err)
}

func (e *PayloadError) Unwrap() error { return e.Err }

// Translator produces a structured translation for a single German word.
type Translator interface {
	Translate(word string) (Translation, error)
}

// systemInstruction describes the translation task; the reply shape itself is
// constrained by translationSchema.
const systemInstruction = `You are a German-English dictionary for flashcard learners.
Translate the German word you are given into English.
Fill the JSON fields as follows:
- "germanWord": the given word; for nouns prefix the definite article (e.g. "das Haus"), for verbs use the infinitive.
- "englishTranslation": the most common English translation.
- "details": short grammatical annotations; for nouns the plural form (e.g. "die Häuser"), for verbs the past participle when useful (e.g. "hat gesprochen").
Respond with JSON only.`

// Client implements integration with the Gemini generateContent API
// docs: https://ai.google.dev/api/generate-content
type Client struct {
	apiKey  string
	model   string
	client  *http.Client
	context context.Context
}

func (c Client) Translate(word string) (Translation, error) {
	var result Translation
	if c.apiKey == "" {
		return result, ErrMissingAPIKey
	}

	payload := generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: systemInstruction}}},
		Contents: []content{
			{Role: "user", Parts: []part{{Text: "Translate the German word: \"" + word + "\""}}},
		},
		GenerationConfig: generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   translationSchema(),
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return result, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequest(
		http.MethodPost, fmt.Sprintf(generateURL, c.model), bytes.NewReader(body),
	)
	if err != nil {
		return result, fmt.Errorf("create request: %w", err)
	}
	if c.context != nil {
		req = req.WithContext(c.context)
	}
	req.Header.Set("Content-Type", "application/json")
	query := req.URL.Query()
	query.Add("key", c.apiKey)
	req.URL.RawQuery = query.Encode()

	response, err := c.client.Do(req)
	if err != nil {
		return result, fmt.Errorf("execute request: %w", err)
	}
	defer response.Body.Close()

	respBody, err := ioutil.ReadAll(response.Body)
	if err != nil {
		return result, fmt.Errorf("read response body: %w", err)
	}

	if response.StatusCode != 200 {
		log.Error().
			Str("status", response.Status).
			Str("body", string(respBody)).
			Msg("unsuccessfull response from gemini API")
		return result, &StatusError{Code: response.StatusCode, Body: string(respBody)}
	}
	var reply generateResponse
	if err := json.Unmarshal(respBody, &reply); err != nil {
		return result, fmt.Errorf("unmarshal response: %w", err)
	}

	// The generated text sits several optional levels deep; guard each one.
	if len(reply.Candidates) == 0 {
		return result, ErrNoContent
	}
	parts := reply.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return result, ErrNoContent
	}
	text := parts[0].Text
	if text == "" {
		return result, ErrNoContent
	}

	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return result, &PayloadError{Raw: text, Err: err}
	}
	return result, nil
}

// translationSchema constrains generation to the Translation fields, all
// required.
func translationSchema() *schema {
	return &schema{
		Type: "OBJECT",
		Properties: map[string]*schema{
			"germanWord":         {Type: "STRING"},
			"englishTranslation": {Type: "STRING"},
			"details":            {Type: "STRING"},
		},
		Required: []string{"germanWord", "englishTranslation", "details"},
	}
}

// NewClient creates a Client with the default HTTP client. An empty model
// selects DefaultModel; an empty apiKey makes Translate fail with
// ErrMissingAPIKey instead of calling the API.
func NewClient(ctx context.Context, apiKey string, model string) Client {
	if model == "" {
		model = DefaultModel
	}
	return Client{apiKey: apiKey, model: model, client: http.DefaultClient, context: ctx}
}

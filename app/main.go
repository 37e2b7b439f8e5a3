package main

import (
	"context"
	"os"

	"github.com/Vishalkagade/german-flashcard-backend/app/api"
	"github.com/Vishalkagade/german-flashcard-backend/app/clients/gemini"

	"github.com/jessevdk/go-flags"
	log "github.com/rs/zerolog/log"
)

type Opts struct {
	GeminiAPIKey string `long:"gemini-key" env:"GEMINI_API_KEY" description:"Gemini API key"`
	GeminiModel  string `long:"gemini-model" env:"GEMINI_MODEL" default:"gemini-1.5-flash" description:"Gemini model to use"`
	Port         int    `long:"port" env:"PORT" default:"8080" description:"Port to listen on"`
}

func main() {
	var opts Opts
	_, err := flags.ParseArgs(&opts, os.Args)
	if err != nil {
		return
	}
	if opts.GeminiAPIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set, translation requests will fail")
	}

	translator := gemini.NewClient(context.Background(), opts.GeminiAPIKey, opts.GeminiModel)
	server := api.NewServer(translator)
	log.Info().Int("port", opts.Port).Msg("starting API server")
	if err := server.Run(opts.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to run API server")
	}
}

package main

import (
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"knowledgebot/internal/config"
	"knowledgebot/internal/embedding"
	"knowledgebot/internal/llmservice"
	"knowledgebot/internal/rag"
	"knowledgebot/internal/server"
)

const configFilePath = "./configs/config.yaml"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found")
	}

	configPath := flag.String("config", configFilePath, "Path to the config file")
	addr := flag.String("addr", "", "Listen address override")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	log.Debug().Interface("config", cfg).Msg("Loaded config")

	var engine server.Answerer
	if e := buildEngine(cfg); e != nil {
		engine = e
	}
	srv := server.New(cfg, engine)

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	log.Info().Str("addr", cfg.Server.Addr).Msg("KnowledgeBot listening")
	if err := httpServer.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}

// buildEngine returns nil when the provider credential is missing. The
// handler then reports the configuration error per request instead of the
// process refusing to start, which keeps health checks and CORS preflight
// responsive.
func buildEngine(cfg *config.Config) *rag.RAG {
	if cfg.LLM.ResolveKey() == "" {
		log.Warn().Msg("OpenAI API key not set, queries will fail until it is configured")
		return nil
	}

	embedder, err := embedding.NewEmbedder(&cfg.EmbedLLM)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing embedder")
	}

	llm, err := llmservice.NewChatModel(&cfg.LLM)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing LLM")
	}

	return rag.NewRAG(embedder, llm, cfg)
}

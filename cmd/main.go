package main

import (
	"cmp"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/joho/godotenv/autoload"

	"fable/pkg/embeddings"
	"fable/pkg/images"
	"fable/pkg/inference"
	"fable/pkg/queue"
	"fable/pkg/queue/imagen"
	"fable/pkg/server"
)

func main() {
	ctx, done := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGKILL)

	apiKey := os.Getenv("GROQ_API_KEY")
	baseURL := os.Getenv("FABLE_BASE_URL")
	if apiKey == "" && baseURL == "" {
		baseURL = "http://localhost:1234/v1"
		log.Warn("GROQ_API_KEY not set, falling back to a local endpoint", "base_url", baseURL)
	}
	var inf inference.Inferencer = inference.NewOpenAIInferencer(apiKey, baseURL, os.Getenv("FABLE_MODEL"))

	if gemModel := os.Getenv("FABLE_GEMINI_MODEL"); gemModel != "" {
		gem, err := inference.NewGeminiInferencer(os.Getenv("GEMINI_API_KEY"), gemModel)
		if err != nil {
			log.Fatal("gemini inferencer", "error", err)
		}
		inf = gem
	}
	inf = inference.NewClient(inf)

	dim, _ := strconv.Atoi(os.Getenv("FABLE_EMBED_DIM"))
	var embedder embeddings.Embedder
	switch os.Getenv("FABLE_EMBEDDER") {
	case "off":
		log.Info("embeddings disabled, books will be written without long-term memory")
	case "openai":
		embedder = embeddings.NewOpenAI(os.Getenv("OPENAI_API_KEY"), os.Getenv("FABLE_EMBED_MODEL"), dim)
	default:
		embedder = embeddings.NewOllama(os.Getenv("OLLAMA_HOST"), os.Getenv("FABLE_EMBED_MODEL"))
	}

	var q queue.Queue
	if gemKey := os.Getenv("GEMINI_API_KEY"); gemKey != "" {
		gen, err := images.NewImagen(gemKey, os.Getenv("FABLE_IMAGE_MODEL"))
		if err != nil {
			log.Warn("cover generation disabled", "error", err)
		} else {
			iq := imagen.New(gen)
			iq.Start()
			defer iq.Stop()
			q = iq
		}
	}

	delay, _ := time.ParseDuration(os.Getenv("FABLE_PAGE_DELAY"))

	srv := server.NewServer(ctx, server.Options{
		Inferencer:  inf,
		Embedder:    embedder,
		Queue:       q,
		ProjectsDir: cmp.Or(os.Getenv("FABLE_PROJECTS_DIR"), "projects"),
		PageDelay:   delay,
		EmbedDim:    dim,
	})

	addr := ":8080"
	if envAddr := os.Getenv("PORT"); envAddr != "" {
		addr = ":" + envAddr
	}

	finishedShutDown := make(chan struct{})
	go func() {
		<-ctx.Done()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("shutdown", "error", err)
		}
		done()
		close(finishedShutDown)
	}()

	if err := srv.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server stopped", "error", err)
	}
	<-finishedShutDown
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/aria-ai/aria/internal/config"
	"github.com/aria-ai/aria/internal/log"
	"github.com/aria-ai/aria/pkg/assistant"
	"github.com/aria-ai/aria/pkg/history"
	"github.com/aria-ai/aria/pkg/inference"
	"github.com/aria-ai/aria/pkg/lookup"
	"github.com/aria-ai/aria/pkg/notes"
	"github.com/aria-ai/aria/pkg/router"
	"github.com/aria-ai/aria/pkg/stt"
	"github.com/aria-ai/aria/pkg/tts"
	"github.com/aria-ai/aria/pkg/voice"
	"github.com/aria-ai/aria/pkg/web"
)

// Provider endpoints for the OpenAI-compatible chat clients.
const (
	groqBaseURL     = "https://api.groq.com/openai/v1"
	togetherBaseURL = "https://api.together.xyz/v1"
)

func main() {
	textMode := flag.Bool("text", false, "Run in text mode (read commands from stdin)")
	voiceMode := flag.Bool("voice", false, "Run in voice mode (default)")
	configPath := flag.String("config", "aria_config.json", "Path to the config file")
	debug := flag.Bool("debug", false, "Enable debug logging")
	webEnabled := flag.Bool("web", false, "Serve the diagnostic dashboard")
	help := flag.Bool("help", false, "Print usage and exit")
	flag.Parse()

	if *help {
		flag.Usage()
		os.Exit(0)
	}

	// Best effort; a missing .env file is normal.
	godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v (continuing with defaults)\n", err)
	}

	level := "info"
	if *debug {
		level = "debug"
	}
	log.Init(level, cfg.LogFile)
	logger := log.L()

	fmt.Println("aria - your personal assistant")
	fmt.Printf("  primary AI service: %s\n", cfg.AIService)
	fmt.Printf("  wake word:          %s\n", cfg.WakeWord)
	fmt.Println()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")
		cancel()
	}()

	hist := history.New(cfg.MaxConversationHistory)

	chain := inference.NewChain(hist, cfg.AIService,
		inference.NewHuggingFace(
			inference.WithAPIKey(cfg.HuggingFaceToken),
		),
		inference.NewOllama(
			inference.WithBaseURL(cfg.OllamaURL),
			inference.WithModel(cfg.OllamaModel),
		),
		inference.NewClient(
			inference.WithName("groq"),
			inference.WithBaseURL(groqBaseURL),
			inference.WithAPIKey(cfg.GroqAPIKey),
		),
		inference.NewClient(
			inference.WithName("together"),
			inference.WithBaseURL(togetherBaseURL),
			inference.WithAPIKey(cfg.TogetherAPIKey),
			inference.WithModel("meta-llama/Llama-3-8b-chat-hf"),
		),
	)
	defer chain.Close()

	store := notes.NewStore(cfg.NotesFile)
	reminders := notes.NewReminders(cfg.RemindersFile)

	channel := buildVoiceChannel(cfg)
	defer channel.Close()

	if *webEnabled {
		server := web.NewServer(cfg.WebPort, chain, hist, store)
		channel.AddSink(voice.FuncSink(server.Spoken))
		go func() {
			if err := server.Start(); err != nil {
				logger.Error("dashboard stopped", "error", err)
			}
		}()
		defer server.Shutdown()
	}

	dispatcher := router.NewDispatcher(router.Deps{
		Speaker:   channel,
		Responder: chain,
		Notes:     store,
		Reminders: reminders,
		Weather:   lookup.NewWeather(cfg.WeatherAPIKey),
		News:      lookup.NewNews(cfg.NewsAPIKey),
		Stock:     lookup.NewStock(),
		Search:    lookup.NewSearch(),
		Wiki:      lookup.NewWiki(),
		Clock:     lookup.NewClock(),
		Logger:    logger,
	})

	a := assistant.New(dispatcher,
		assistant.WithWakeWord(cfg.WakeWord),
		assistant.WithSpeaker(channel),
		assistant.WithListener(channel),
		assistant.WithLogger(logger),
	)

	channel.Speak(fmt.Sprintf("Good %s! I'm aria, your personal assistant. How can I help?",
		lookup.NewClock().TimeOfDay()))

	useVoice := *voiceMode || !*textMode
	if useVoice && !hasCapture() {
		logger.Warn("no audio capture device available, switching to text mode")
		useVoice = false
	}

	if useVoice {
		err = a.RunVoice(ctx)
	} else {
		err = a.RunText(ctx, os.Stdin)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "aria: %v\n", err)
		os.Exit(1)
	}
}

// buildVoiceChannel wires synthesis and recognition from whatever
// credentials are present, degrading to text-only console output.
func buildVoiceChannel(cfg *config.Config) *voice.Channel {
	opts := []voice.ChannelOption{
		voice.WithSink(voice.NewConsoleSink("aria")),
	}

	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		opts = append(opts,
			voice.WithSynthesizer(tts.NewClient(tts.WithAPIKey(key))),
			voice.WithRecognizer(stt.NewChain(
				stt.NewClient(stt.WithAPIKey(key)),
				stt.NewLocal(""),
			)),
		)
	}

	return voice.NewChannel(opts...)
}

// hasCapture reports whether a microphone capture backend is wired in.
// Audio capture engines are out of scope; the Capture interface is the
// extension point for embedders that have one.
func hasCapture() bool {
	return false
}

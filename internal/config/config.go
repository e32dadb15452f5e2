// Package config loads the aria configuration file.
//
// The config is a single JSON object. Missing keys are filled from hardcoded
// defaults, and when the file does not exist the merged defaults are written
// back so the user has something to edit. Secrets can also come from the
// environment; those are never persisted.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config holds all assistant settings. It is loaded once at startup and
// passed by reference into component constructors; nothing mutates it after
// load except explicit setters on the components themselves.
type Config struct {
	// Voice output
	VoiceRate   int     `json:"voice_rate"`
	VoiceVolume float64 `json:"voice_volume"`
	VoiceID     int     `json:"voice_id"`

	// Wake word for voice mode
	WakeWord   string `json:"wake_word"`
	AutoListen bool   `json:"auto_listen"`

	// Preferred AI service: "huggingface", "ollama" or "groq"
	AIService string `json:"ai_service"`

	// Provider credentials (free tiers)
	HuggingFaceToken string `json:"huggingface_token"`
	GroqAPIKey       string `json:"groq_api_key"`
	TogetherAPIKey   string `json:"together_api_key"`

	// Local inference
	OllamaURL   string `json:"ollama_url"`
	OllamaModel string `json:"ollama_model"`

	// Information source keys
	WeatherAPIKey string `json:"weather_api_key"`
	NewsAPIKey    string `json:"news_api_key"`

	// Conversation
	MaxConversationHistory int    `json:"max_conversation_history"`
	EnableLearning         bool   `json:"enable_learning"`
	PersonalityMode        string `json:"personality_mode"`
	FallbackResponses      bool   `json:"fallback_responses"`

	// Files
	NotesFile     string `json:"notes_file"`
	RemindersFile string `json:"reminders_file"`
	LogFile       string `json:"log_file"`

	// Diagnostic web dashboard
	WebPort string `json:"web_port"`
}

// Default returns the hardcoded default configuration.
func Default() *Config {
	return &Config{
		VoiceRate:              200,
		VoiceVolume:            0.9,
		VoiceID:                0,
		WakeWord:               "aria",
		AutoListen:             true,
		AIService:              "huggingface",
		OllamaURL:              "http://localhost:11434",
		OllamaModel:            "llama2",
		MaxConversationHistory: 10,
		EnableLearning:         true,
		PersonalityMode:        "friendly",
		FallbackResponses:      true,
		NotesFile:              "notes.json",
		RemindersFile:          "reminders.json",
		LogFile:                "aria.log",
		WebPort:                "8036",
	}
}

// Load reads the config file at path, merging it over the defaults.
// If the file does not exist, the defaults are written to path and returned.
// A file that exists but cannot be parsed falls back to defaults without
// touching the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// First run: persist the defaults so the user can edit them.
			if werr := save(path, cfg); werr != nil {
				return cfg.withEnv(), werr
			}
			return cfg.withEnv(), nil
		}
		return cfg.withEnv(), err
	}

	// Unmarshal over the defaults so missing keys keep their default values.
	if err := json.Unmarshal(data, cfg); err != nil {
		return Default().withEnv(), err
	}

	return cfg.withEnv(), nil
}

// save writes the config as indented JSON.
func save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// withEnv overlays secrets from the environment. Environment values win over
// file values so deployments can keep credentials out of the config file.
func (c *Config) withEnv() *Config {
	if v := os.Getenv("HUGGINGFACE_TOKEN"); v != "" {
		c.HuggingFaceToken = v
	}
	if v := os.Getenv("GROQ_API_KEY"); v != "" {
		c.GroqAPIKey = v
	}
	if v := os.Getenv("TOGETHER_API_KEY"); v != "" {
		c.TogetherAPIKey = v
	}
	if v := os.Getenv("OPENWEATHER_API_KEY"); v != "" {
		c.WeatherAPIKey = v
	}
	if v := os.Getenv("NEWS_API_KEY"); v != "" {
		c.NewsAPIKey = v
	}
	if v := os.Getenv("OLLAMA_URL"); v != "" {
		c.OllamaURL = v
	}
	return c
}

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port   string
	Env    string
	GitHub GitHubConfig
	LLM    LLMConfig
	Cache  CacheConfig
}

type GitHubConfig struct {
	Token   string
	BaseURL string
	RPS     float64
	Burst   int
}

type LLMConfig struct {
	Provider    string // "gemini", "groq" or "fake"
	GeminiModel string
	GroqModel   string
	GroqAPIKey  string
}

type CacheConfig struct {
	Capacity int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port := flag.String("port", ":8081", "server port")
	flag.Parse()

	if envPort := os.Getenv("PORT"); envPort != "" {
		if strings.HasPrefix(envPort, ":") {
			*port = envPort
		} else {
			*port = ":" + envPort
		}
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	return &Config{
		Port:   *port,
		Env:    env,
		GitHub: loadGitHubConfig(),
		LLM:    loadLLMConfig(),
		Cache: CacheConfig{
			Capacity: intFromEnv("SNAPSHOT_CACHE_CAPACITY", 128),
		},
	}, nil
}

func loadGitHubConfig() GitHubConfig {
	return GitHubConfig{
		Token:   strings.TrimSpace(os.Getenv("GITHUB_TOKEN")),
		BaseURL: strings.TrimSpace(os.Getenv("GITHUB_API_URL")),
		RPS:     floatFromEnv("GITHUB_RPS", 0),
		Burst:   intFromEnv("GITHUB_BURST", 0),
	}
}

func loadLLMConfig() LLMConfig {
	cfg := LLMConfig{
		Provider:    strings.ToLower(strings.TrimSpace(os.Getenv("LLM_PROVIDER"))),
		GeminiModel: firstNonEmpty(strings.TrimSpace(os.Getenv("GEMINI_MODEL")), "gemini-2.0-flash"),
		GroqModel:   firstNonEmpty(strings.TrimSpace(os.Getenv("GROQ_MODEL")), "llama-3.3-70b-versatile"),
		GroqAPIKey:  strings.TrimSpace(os.Getenv("GROQ_API_KEY")),
	}
	if cfg.Provider == "" {
		switch {
		case os.Getenv("GEMINI_API_KEY") != "" || os.Getenv("GOOGLE_API_KEY") != "":
			cfg.Provider = "gemini"
		case cfg.GroqAPIKey != "":
			cfg.Provider = "groq"
		default:
			cfg.Provider = "fake"
		}
	}
	return cfg
}

func intFromEnv(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func floatFromEnv(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

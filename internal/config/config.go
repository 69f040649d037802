package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Downloader  DownloaderConfig  `yaml:"downloader"`
	Whisper     WhisperConfig     `yaml:"whisper"`
	Transcriber TranscriberConfig `yaml:"transcriber"`
	LLM         LLMConfig         `yaml:"llm"`
	Summarizer  SummarizerConfig  `yaml:"summarizer"`
	Paths       PathsConfig       `yaml:"paths"`
	Cache       CacheConfig       `yaml:"cache"`
	Audio       AudioConfig       `yaml:"audio"`
	Timeouts    TimeoutsConfig    `yaml:"timeouts"`
	Session     SessionConfig     `yaml:"session"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	OpenAI      OpenAIConfig      `yaml:"openai"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type DownloaderConfig struct {
	BinaryPath  string `yaml:"binary_path"`
	AudioFormat string `yaml:"audio_format"`
}

type WhisperConfig struct {
	ModelPath  string `yaml:"model_path"`
	BinaryPath string `yaml:"binary_path"`
	Language   string `yaml:"language"`
	Prompt     string `yaml:"prompt"`
	Threads    int    `yaml:"threads"`
}

type TranscriberConfig struct {
	// Backend is "whisper-cpp" or "openai".
	Backend string `yaml:"backend"`
	Model   string `yaml:"model"`
}

type LLMConfig struct {
	// Backend is "gemini" or "openai".
	Backend string `yaml:"backend"`
}

type SummarizerConfig struct {
	MinLength int `yaml:"min_length"`
	MaxLength int `yaml:"max_length"`
}

type PathsConfig struct {
	WorkDir  string `yaml:"work_dir"`
	CacheDir string `yaml:"cache_dir"`
}

type CacheConfig struct {
	// Mode is "keyed" (per session and source) or "legacy" (one shared transcript file).
	Mode string `yaml:"mode"`
}

type AudioConfig struct {
	Keep *bool `yaml:"keep"`
}

type TimeoutsConfig struct {
	Fetch      time.Duration `yaml:"fetch"`
	Transcribe time.Duration `yaml:"transcribe"`
	Summarize  time.Duration `yaml:"summarize"`
	Answer     time.Duration `yaml:"answer"`
}

// SessionConfig controls session lifetime. A negative IdleTTL keeps idle
// sessions forever.
type SessionConfig struct {
	IdleTTL time.Duration `yaml:"idle_ttl"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type GeminiConfig struct {
	Model   string   `yaml:"model"`
	APIKeys []string `yaml:"api_keys"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// Load reads a YAML config file, applies environment overrides and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("GEMINI_API_KEYS"); v != "" {
		c.Gemini.APIKeys = splitKeys(v)
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.OpenAI.APIKey = v
	}
	if v := os.Getenv("TUBEQA_ADDR"); v != "" {
		c.Server.Addr = v
	}
}

func splitKeys(s string) []string {
	var keys []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// KeepAudio reports whether extracted audio is left on disk after transcription.
func (c *Config) KeepAudio() bool {
	return c.Audio.Keep == nil || *c.Audio.Keep
}

func (c *Config) Validate() error {
	if c.Transcriber.Backend == "" {
		c.Transcriber.Backend = "whisper-cpp"
	}
	switch c.Transcriber.Backend {
	case "whisper-cpp":
		if c.Whisper.ModelPath == "" {
			return fmt.Errorf("whisper.model_path is required")
		}
		if c.Whisper.BinaryPath == "" {
			return fmt.Errorf("whisper.binary_path is required")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("openai.api_key is required for the openai transcriber")
		}
	default:
		return fmt.Errorf("transcriber.backend %q is not supported", c.Transcriber.Backend)
	}

	if c.LLM.Backend == "" {
		c.LLM.Backend = "gemini"
	}
	switch c.LLM.Backend {
	case "gemini":
		if len(c.Gemini.APIKeys) == 0 {
			return fmt.Errorf("gemini.api_keys is required")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("openai.api_key is required for the openai llm backend")
		}
	default:
		return fmt.Errorf("llm.backend %q is not supported", c.LLM.Backend)
	}

	if c.Summarizer.MinLength == 0 {
		c.Summarizer.MinLength = 30
	}
	if c.Summarizer.MaxLength == 0 {
		c.Summarizer.MaxLength = 130
	}
	if c.Summarizer.MinLength > c.Summarizer.MaxLength {
		return fmt.Errorf("summarizer.min_length (%d) exceeds max_length (%d)",
			c.Summarizer.MinLength, c.Summarizer.MaxLength)
	}

	if c.Cache.Mode == "" {
		c.Cache.Mode = "keyed"
	}
	if c.Cache.Mode != "keyed" && c.Cache.Mode != "legacy" {
		return fmt.Errorf("cache.mode %q is not supported", c.Cache.Mode)
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Downloader.BinaryPath == "" {
		c.Downloader.BinaryPath = "yt-dlp"
	}
	if c.Downloader.AudioFormat == "" {
		c.Downloader.AudioFormat = "mp3"
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = "auto"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 4
	}
	if c.Transcriber.Model == "" {
		c.Transcriber.Model = "whisper-1"
	}
	if c.Paths.WorkDir == "" {
		c.Paths.WorkDir = "data/work"
	}
	if c.Paths.CacheDir == "" {
		c.Paths.CacheDir = "data/transcripts"
	}
	if c.Timeouts.Fetch == 0 {
		c.Timeouts.Fetch = 10 * time.Minute
	}
	if c.Timeouts.Transcribe == 0 {
		c.Timeouts.Transcribe = 30 * time.Minute
	}
	if c.Timeouts.Summarize == 0 {
		c.Timeouts.Summarize = 2 * time.Minute
	}
	if c.Timeouts.Answer == 0 {
		c.Timeouts.Answer = time.Minute
	}
	if c.Session.IdleTTL == 0 {
		c.Session.IdleTTL = time.Hour
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o-mini"
	}

	return nil
}

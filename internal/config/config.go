package config

import (
	"errors"
	"fmt"
)

// ErrMissingOpenAIKey is returned by Validate when no OpenAI key is configured.
var ErrMissingOpenAIKey = errors.New("OpenAI API key not configured. Please set OPENAI_API_KEY environment variable.")

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	OpenAI      OpenAIConfig      `yaml:"openai"`
	LLM         LLMConfig         `yaml:"llm"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	ElevenLabs  ElevenLabsConfig  `yaml:"elevenlabs"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	Paths       PathsConfig       `yaml:"paths"`
	Pipeline    PipelineConfig    `yaml:"pipeline"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type ServerConfig struct {
	Addr        string `yaml:"addr"`
	BodyLimitMB int    `yaml:"body_limit_mb"`
}

type OpenAIConfig struct {
	APIKey             string `yaml:"-"`
	BaseURL            string `yaml:"base_url"`
	TranscriptionModel string `yaml:"transcription_model"`
	ChatModel          string `yaml:"chat_model"`
}

// LLMConfig selects the chat completion backend: "openai" or "gemini".
type LLMConfig struct {
	Provider string `yaml:"provider"`
}

type GeminiConfig struct {
	APIKeys []string `yaml:"-"`
	Model   string   `yaml:"model"`
}

type ElevenLabsConfig struct {
	APIKey       string `yaml:"-"`
	BaseURL      string `yaml:"base_url"`
	VoiceID      string `yaml:"voice_id"`
	ModelID      string `yaml:"model_id"`
	OutputFormat string `yaml:"output_format"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
	ProbePath  string `yaml:"probe_path"`
}

type PathsConfig struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
	Temp     string `yaml:"temp"`
}

// PipelineConfig holds settings for watch-folder jobs.
type PipelineConfig struct {
	RecapLanguage string `yaml:"recap_language"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

func (c *Config) Validate() error {
	if c.OpenAI.APIKey == "" {
		return ErrMissingOpenAIKey
	}

	switch c.LLM.Provider {
	case "":
		c.LLM.Provider = "openai"
	case "openai":
	case "gemini":
		if len(c.Gemini.APIKeys) == 0 {
			return fmt.Errorf("llm.provider is gemini but GEMINI_API_KEYS is empty")
		}
	default:
		return fmt.Errorf("llm.provider %q is not supported", c.LLM.Provider)
	}

	switch c.Pipeline.RecapLanguage {
	case "":
		c.Pipeline.RecapLanguage = "en"
	case "en", "fr":
	default:
		return fmt.Errorf("pipeline.recap_language %q is not supported", c.Pipeline.RecapLanguage)
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":3000"
	}
	if c.Server.BodyLimitMB == 0 {
		c.Server.BodyLimitMB = 512
	}
	if c.OpenAI.TranscriptionModel == "" {
		c.OpenAI.TranscriptionModel = "whisper-1"
	}
	if c.OpenAI.ChatModel == "" {
		c.OpenAI.ChatModel = "gpt-3.5-turbo"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.ElevenLabs.BaseURL == "" {
		c.ElevenLabs.BaseURL = "https://api.elevenlabs.io"
	}
	if c.ElevenLabs.VoiceID == "" {
		c.ElevenLabs.VoiceID = "97OoEiQZYqTZBKfi4spD"
	}
	if c.ElevenLabs.ModelID == "" {
		c.ElevenLabs.ModelID = "eleven_multilingual_v2"
	}
	if c.ElevenLabs.OutputFormat == "" {
		c.ElevenLabs.OutputFormat = "mp3_44100_128"
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.ProbePath == "" {
		c.FFmpeg.ProbePath = "ffprobe"
	}
	if c.Paths.Input == "" {
		c.Paths.Input = "data/input"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "data/output"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}

	return nil
}

package config

import (
	"errors"
	"os"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "valid config",
			config:  Config{OpenAI: OpenAIConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "missing openai key",
			config:  Config{},
			wantErr: true,
		},
		{
			name: "gemini without keys",
			config: Config{
				OpenAI: OpenAIConfig{APIKey: "sk-test"},
				LLM:    LLMConfig{Provider: "gemini"},
			},
			wantErr: true,
		},
		{
			name: "gemini with keys",
			config: Config{
				OpenAI: OpenAIConfig{APIKey: "sk-test"},
				LLM:    LLMConfig{Provider: "gemini"},
				Gemini: GeminiConfig{APIKeys: []string{"a", "b"}},
			},
			wantErr: false,
		},
		{
			name: "unknown provider",
			config: Config{
				OpenAI: OpenAIConfig{APIKey: "sk-test"},
				LLM:    LLMConfig{Provider: "claude"},
			},
			wantErr: true,
		},
		{
			name: "unsupported recap language",
			config: Config{
				OpenAI:   OpenAIConfig{APIKey: "sk-test"},
				Pipeline: PipelineConfig{RecapLanguage: "de"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateMissingKeySentinel(t *testing.T) {
	cfg := Config{}
	if err := cfg.Validate(); !errors.Is(err, ErrMissingOpenAIKey) {
		t.Errorf("Validate() error = %v, want ErrMissingOpenAIKey", err)
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{OpenAI: OpenAIConfig{APIKey: "sk-test"}}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.LLM.Provider != "openai" {
		t.Errorf("LLM.Provider = %q, want openai", cfg.LLM.Provider)
	}
	if cfg.OpenAI.ChatModel != "gpt-3.5-turbo" {
		t.Errorf("OpenAI.ChatModel = %q, want gpt-3.5-turbo", cfg.OpenAI.ChatModel)
	}
	if cfg.OpenAI.TranscriptionModel != "whisper-1" {
		t.Errorf("OpenAI.TranscriptionModel = %q, want whisper-1", cfg.OpenAI.TranscriptionModel)
	}
	if cfg.ElevenLabs.VoiceID != "97OoEiQZYqTZBKfi4spD" {
		t.Errorf("ElevenLabs.VoiceID = %q", cfg.ElevenLabs.VoiceID)
	}
	if cfg.Pipeline.RecapLanguage != "en" {
		t.Errorf("Pipeline.RecapLanguage = %q, want en", cfg.Pipeline.RecapLanguage)
	}
	if cfg.Performance.MaxConcurrent != 2 {
		t.Errorf("Performance.MaxConcurrent = %d, want 2", cfg.Performance.MaxConcurrent)
	}
	if cfg.Paths.Temp != "data/temp" {
		t.Errorf("Paths.Temp = %q, want data/temp", cfg.Paths.Temp)
	}
}

func TestLoad(t *testing.T) {
	content := `
server:
  addr: ":8080"
llm:
  provider: gemini
paths:
  input: "in"
  output: "out"
logging:
  level: "debug"
performance:
  max_concurrent: 4
`

	tmpfile, err := os.CreateTemp("", "config*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("GEMINI_API_KEYS", " k1, ,k2 ")
	t.Setenv("ELEVENLABS_API_KEY", "el-env")

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.OpenAI.APIKey != "sk-env" {
		t.Errorf("OpenAI.APIKey = %q, want sk-env", cfg.OpenAI.APIKey)
	}
	if len(cfg.Gemini.APIKeys) != 2 || cfg.Gemini.APIKeys[0] != "k1" || cfg.Gemini.APIKeys[1] != "k2" {
		t.Errorf("Gemini.APIKeys = %v, want [k1 k2]", cfg.Gemini.APIKeys)
	}
	if cfg.ElevenLabs.APIKey != "el-env" {
		t.Errorf("ElevenLabs.APIKey = %q, want el-env", cfg.ElevenLabs.APIKey)
	}
	if cfg.Performance.MaxConcurrent != 4 {
		t.Errorf("Performance.MaxConcurrent = %d, want 4", cfg.Performance.MaxConcurrent)
	}
	if cfg.Paths.Archived != "data/archived" {
		t.Errorf("Paths.Archived = %q, want default", cfg.Paths.Archived)
	}
}

func TestLoadMissingKey(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "config*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())
	tmpfile.Close()

	t.Setenv("OPENAI_API_KEY", "")

	_, err = Load(tmpfile.Name())
	if !errors.Is(err, ErrMissingOpenAIKey) {
		t.Errorf("Load() error = %v, want ErrMissingOpenAIKey", err)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() expected error for nonexistent file")
	}
}

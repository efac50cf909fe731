package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration. Values come from defaults,
// an optional yaml file, then environment overrides, in that order.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Store      StoreConfig      `yaml:"store"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Generation GenerationConfig `yaml:"generation"`
	Retrieval  RetrievalConfig  `yaml:"retrieval"`
	Knowledge  KnowledgeConfig  `yaml:"knowledge"`
	Database   DatabaseConfig   `yaml:"database"`
}

// ServerConfig holds the listen addresses.
type ServerConfig struct {
	HTTPPort string `yaml:"http_port"`
}

// StoreConfig locates the vector store. When BinaryPath is set the
// daemon launches its own qdrant against DataPath; otherwise it
// connects to an already-running instance at Host:GRPCPort.
type StoreConfig struct {
	BinaryPath string `yaml:"binary_path"`
	DataPath   string `yaml:"data_path"`
	Host       string `yaml:"host"`
	GRPCPort   int    `yaml:"grpc_port"`
	Collection string `yaml:"collection"`
}

// EmbeddingConfig configures the embedding API client.
type EmbeddingConfig struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// GenerationConfig configures the generative model service. Keys are
// never read from the yaml file; they come from the environment only.
type GenerationConfig struct {
	URL   string  `yaml:"url"`
	Model string  `yaml:"model"`
	TopP  float64 `yaml:"top_p"`
}

// RetrievalConfig tunes context retrieval.
type RetrievalConfig struct {
	TopK int `yaml:"top_k"`
}

// KnowledgeConfig locates the ingestible knowledge base.
type KnowledgeConfig struct {
	DataFile string `yaml:"data_file"`
}

// DatabaseConfig locates the local metadata database.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// NewConfig builds a config with defaults, overlaying the yaml file at
// ADARSHA_CONFIG (if set) and environment overrides.
func NewConfig() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("ADARSHA_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort: ":5000",
		},
		Store: StoreConfig{
			DataPath:   defaultDataDir("qdrant"),
			Host:       "localhost",
			GRPCPort:   6334,
			Collection: "adarsha_knowledge",
		},
		Embedding: EmbeddingConfig{
			URL:   "https://api.openai.com/v1",
			Model: "text-embedding-3-small",
		},
		Generation: GenerationConfig{
			URL:   "https://api.groq.com/openai/v1",
			Model: "llama-3.1-8b-instant",
			TopP:  0.9,
		},
		Retrieval: RetrievalConfig{
			TopK: 5,
		},
		Knowledge: KnowledgeConfig{
			DataFile: "",
		},
		Database: DatabaseConfig{
			Path: defaultDataDir("adarsha.db"),
		},
	}
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// applyEnv overlays environment variables on top of file values.
func (c *Config) applyEnv() {
	if v := os.Getenv("HTTP_PORT"); v != "" {
		if v[0] != ':' {
			v = ":" + v
		}
		c.Server.HTTPPort = v
	}
	if v := os.Getenv("VECTORDB_PATH"); v != "" {
		c.Store.DataPath = v
	}
	if v := os.Getenv("QDRANT_BINARY"); v != "" {
		c.Store.BinaryPath = v
	}
	if v := os.Getenv("COLLECTION_NAME"); v != "" {
		c.Store.Collection = v
	}
	if v := os.Getenv("GROQ_MODEL"); v != "" {
		c.Generation.Model = v
	}
	if v := os.Getenv("GROQ_API_URL"); v != "" {
		c.Generation.URL = v
	}
	if v := os.Getenv("EMBEDDING_API_URL"); v != "" {
		c.Embedding.URL = v
	}
	if v := os.Getenv("EMBEDDING_API_KEY"); v != "" {
		c.Embedding.APIKey = v
	}
	if v := os.Getenv("EMBEDDING_MODEL"); v != "" {
		c.Embedding.Model = v
	}
	if v := os.Getenv("DATA_PATH"); v != "" {
		c.Knowledge.DataFile = v
	}
}

// defaultDataDir resolves a path under ~/.adarsha, falling back to a
// relative path when the home directory is unavailable.
func defaultDataDir(name string) string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(homeDir, ".adarsha", name)
}

// NewServerConfig extracts the server sub-config for injection.
func NewServerConfig(cfg *Config) *ServerConfig {
	return &cfg.Server
}

// NewStoreConfig extracts the store sub-config for injection.
func NewStoreConfig(cfg *Config) *StoreConfig {
	return &cfg.Store
}

// NewDatabaseConfig extracts the database sub-config for injection.
func NewDatabaseConfig(cfg *Config) *DatabaseConfig {
	return &cfg.Database
}

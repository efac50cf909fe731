package vector

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/qdrant/go-client/qdrant"

	"github.com/adarsha-ai/backend/internal/infrastructure/config"
	"github.com/adarsha-ai/backend/internal/infrastructure/log"
)

// Manager owns the qdrant connection. When a binary path is configured
// it launches a local qdrant process against the data directory;
// otherwise it connects to an already-running instance.
type Manager struct {
	binaryPath string
	dataPath   string
	host       string
	grpcPort   int
	cmd        *exec.Cmd
	client     *qdrant.Client
	logger     *slog.Logger
}

// NewManager creates the manager from config.
func NewManager(cfg *config.StoreConfig) *Manager {
	return &Manager{
		binaryPath: cfg.BinaryPath,
		dataPath:   cfg.DataPath,
		host:       cfg.Host,
		grpcPort:   cfg.GRPCPort,
		logger:     log.NewModuleLogger("vector", "manager"),
	}
}

// Start launches or connects to qdrant and verifies the connection.
func (m *Manager) Start() error {
	if m.binaryPath != "" {
		if err := m.launch(); err != nil {
			return err
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host: m.host,
		Port: m.grpcPort,
	})
	if err != nil {
		m.Stop()
		return fmt.Errorf("failed to connect to qdrant: %w", err)
	}

	if _, err := client.ListCollections(context.Background()); err != nil {
		client.Close()
		m.Stop()
		return fmt.Errorf("qdrant not reachable at %s:%d: %w", m.host, m.grpcPort, err)
	}

	m.client = client
	m.logger.Info("Connected to qdrant",
		"host", m.host,
		"grpc_port", m.grpcPort,
		"managed", m.binaryPath != "",
	)

	return nil
}

func (m *Manager) launch() error {
	if err := os.MkdirAll(m.dataPath, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	if _, err := os.Stat(m.binaryPath); os.IsNotExist(err) {
		return fmt.Errorf("qdrant binary not found at %s", m.binaryPath)
	}

	args := []string{
		"--config-path", "/dev/null",
		"--storage-path", m.dataPath,
		"--grpc-port", fmt.Sprintf("%d", m.grpcPort),
	}

	m.cmd = exec.Command(m.binaryPath, args...)
	m.cmd.Stdout = os.Stdout
	m.cmd.Stderr = os.Stderr

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("failed to start qdrant: %w", err)
	}

	if err := m.waitForReady(10 * time.Second); err != nil {
		m.Stop()
		return fmt.Errorf("qdrant failed to become ready: %w", err)
	}

	return nil
}

// Stop kills the managed process (if any) and closes the connection.
func (m *Manager) Stop() error {
	if m.cmd != nil && m.cmd.Process != nil {
		if err := m.cmd.Process.Kill(); err != nil {
			return fmt.Errorf("failed to kill qdrant process: %w", err)
		}
		m.cmd.Wait()
		m.cmd = nil
	}

	if m.client != nil {
		m.client.Close()
		m.client = nil
	}

	return nil
}

// Client returns the live qdrant client, nil before Start.
func (m *Manager) Client() *qdrant.Client {
	return m.client
}

func (m *Manager) waitForReady(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		client, err := qdrant.NewClient(&qdrant.Config{
			Host: m.host,
			Port: m.grpcPort,
		})
		if err == nil {
			_, err = client.ListCollections(context.Background())
			client.Close()
			if err == nil {
				return nil
			}
		}
		time.Sleep(500 * time.Millisecond)
	}
	return fmt.Errorf("timeout waiting for qdrant to be ready")
}

// EnsureCollection creates the collection with cosine distance when it
// does not exist yet.
func (m *Manager) EnsureCollection(name string, vectorSize uint64) error {
	if m.client == nil {
		return fmt.Errorf("qdrant client not initialized")
	}

	ctx := context.Background()

	existing, err := m.client.ListCollections(ctx)
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}

	for _, collection := range existing {
		if collection == name {
			return nil
		}
	}

	err = m.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection %s: %w", name, err)
	}

	m.logger.Info("Created collection",
		"collection", name,
		"vector_size", vectorSize,
	)

	return nil
}

package pipeline

import (
	"os"

	json "github.com/goccy/go-json"

	"brickdeals/internal/models"
	"brickdeals/internal/pipeline/interfaces"
	"brickdeals/internal/providers"
)

// SnapshotManager persists the last successful catalog ingest as a
// compressed JSON file. On a cold start with an empty database the snapshot
// seeds the catalog so pricing cycles have data before the next daily fetch.
type SnapshotManager struct {
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewSnapshotManager(compressor interfaces.CompressorInterface, logger providers.Logger) *SnapshotManager {
	return &SnapshotManager{compressor: compressor, logger: logger}
}

func (sm *SnapshotManager) Save(fileName string, products []*models.Product) error {
	jsonData, err := json.Marshal(products)
	if err != nil {
		return err
	}
	data, err := sm.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

// Load returns nil without error when no snapshot exists yet.
func (sm *SnapshotManager) Load(fileName string) ([]*models.Product, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	decompressed, err := sm.compressor.Decompress(data)
	if err != nil {
		return nil, err
	}

	var products []*models.Product
	if err := json.Unmarshal(decompressed, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (sm *SnapshotManager) Close() {
	sm.compressor.Close()
}

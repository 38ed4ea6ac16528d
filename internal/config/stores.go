package config

import (
	"encoding/json"
	"fmt"
	"os"

	"parking-discount/internal/models"
)

// LoadStoresFile читает каталог магазинов из JSON-файла.
// Проверка правил выполняется при сборке калькуляторов, здесь только разбор.
func LoadStoresFile(path string) ([]models.StoreConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stores file %s: %w", path, err)
	}

	var stores []models.StoreConfig
	if err := json.Unmarshal(data, &stores); err != nil {
		return nil, fmt.Errorf("failed to parse stores file %s: %w", path, err)
	}
	if len(stores) == 0 {
		return nil, fmt.Errorf("stores file %s contains no stores", path)
	}

	return stores, nil
}

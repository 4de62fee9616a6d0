package config_test

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"dish-dispatcher/internal/config"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	assert.Equal(t, 10, cfg.ShelfCapacity["hot"])
	assert.Equal(t, 10, cfg.ShelfCapacity["cold"])
	assert.Equal(t, 10, cfg.ShelfCapacity["frozen"])
	assert.Equal(t, 15, cfg.ShelfCapacity["overflow"])
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := config.LoadConfig("non_existent_file.json")
	assert.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestLoadConfig_ValidFile(t *testing.T) {
	tempFile, err := os.CreateTemp("", "config.json")
	assert.NoError(t, err)
	defer os.Remove(tempFile.Name())

	expectedConfig := &config.Config{
		OrdersSource:                "orders.json",
		CustomerWaitBetweenOrdersMS: 250,
		CourierMinimumWaitTimeMS:    2000,
		CourierMaximumWaitTimeMS:    6000,
		ShelfCapacity: map[string]int{
			"hot":      10,
			"cold":     15,
			"frozen":   25,
			"overflow": 40,
		},
	}
	configData, err := json.Marshal(expectedConfig)
	assert.NoError(t, err)

	_, err = tempFile.Write(configData)
	assert.NoError(t, err)
	tempFile.Close()

	cfg, err := config.LoadConfig(tempFile.Name())
	assert.NoError(t, err)
	assert.Equal(t, expectedConfig, cfg)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tempFile, err := os.CreateTemp("", "invalid_config.json")
	assert.NoError(t, err)
	defer os.Remove(tempFile.Name())

	_, err = tempFile.Write([]byte("invalid json"))
	assert.NoError(t, err)
	tempFile.Close()

	cfg, err := config.LoadConfig(tempFile.Name())
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadConfig_RejectsInvertedCourierWaitRange(t *testing.T) {
	tempFile, err := os.CreateTemp("", "config.json")
	assert.NoError(t, err)
	defer os.Remove(tempFile.Name())

	bad := &config.Config{
		OrdersSource:             "orders.json",
		CourierMinimumWaitTimeMS: 6000,
		CourierMaximumWaitTimeMS: 2000,
		ShelfCapacity: map[string]int{
			"hot":      1,
			"cold":     1,
			"frozen":   1,
			"overflow": 1,
		},
	}
	data, err := json.Marshal(bad)
	assert.NoError(t, err)
	_, err = tempFile.Write(data)
	assert.NoError(t, err)
	tempFile.Close()

	cfg, err := config.LoadConfig(tempFile.Name())
	assert.Error(t, err)
	assert.Nil(t, cfg)
	var invalid *config.InvalidError
	assert.ErrorAs(t, err, &invalid)
}

func TestConfig_RejectsMissingShelfCapacityKey(t *testing.T) {
	cfg := config.DefaultConfig()
	delete(cfg.ShelfCapacity, "overflow")

	err := cfg.Validate()
	assert.Error(t, err)
	var invalid *config.InvalidError
	assert.ErrorAs(t, err, &invalid)
}

func TestConfig_RejectsNegativeShelfCapacity(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ShelfCapacity["hot"] = -1

	err := cfg.Validate()
	assert.Error(t, err)
	var invalid *config.InvalidError
	assert.ErrorAs(t, err, &invalid)
}

func TestConfig_DurationConversions(t *testing.T) {
	cfg := &config.Config{
		CustomerWaitBetweenOrdersMS: 250,
		CourierMinimumWaitTimeMS:    2000,
		CourierMaximumWaitTimeMS:    6000,
	}
	assert.Equal(t, 250*time.Millisecond, cfg.CustomerWaitBetweenOrders())
	assert.Equal(t, 2*time.Second, cfg.CourierMinimumWait())
	assert.Equal(t, 6*time.Second, cfg.CourierMaximumWait())
}

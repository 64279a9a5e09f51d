package ledger

import (
	"encoding/json"
	"os"
	"time"
)

// AlertRecord is the persisted last-alert metadata for one ticker.
type AlertRecord struct {
	Ticker       string    `json:"ticker"`
	LastAlertAt  time.Time `json:"last_alert_date"`
	RSIAtAlert   float64   `json:"rsi_at_alert"`
	PriceAtAlert float64   `json:"price_at_alert"`
}

// stateFile is the on-disk envelope. Unknown fields in a newer file are
// ignored on read, so the format can grow without breaking old binaries.
type stateFile struct {
	Version   int                    `json:"version"`
	Records   map[string]AlertRecord `json:"records"`
	UpdatedAt time.Time              `json:"updated_at"`
}

const stateVersion = 1

// LoadState reads the ledger from a JSON file. Returns an empty map if the
// file doesn't exist yet.
func LoadState(filePath string) (map[string]AlertRecord, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]AlertRecord{}, nil
		}
		return nil, err
	}
	var state stateFile
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	if state.Records == nil {
		state.Records = map[string]AlertRecord{}
	}
	return state.Records, nil
}

// SaveState writes the ledger to a JSON file.
func SaveState(filePath string, records map[string]AlertRecord) error {
	state := stateFile{
		Version:   stateVersion,
		Records:   records,
		UpdatedAt: time.Now(),
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}

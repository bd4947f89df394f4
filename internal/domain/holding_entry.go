package domain

import (
	"encoding/json"
	"fmt"
)

// stored as a two element array, [ticker, holding]

func (e HoldingEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{e.Ticker, e.Holding})
}

func (e *HoldingEntry) UnmarshalJSON(b []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(b, &pair); err != nil {
		return fmt.Errorf("failed to decode holding entry: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("holding entry must have 2 elements, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &e.Ticker); err != nil {
		return fmt.Errorf("failed to decode holding ticker: %w", err)
	}
	if err := json.Unmarshal(pair[1], &e.Holding); err != nil {
		return fmt.Errorf("failed to decode holding %s: %w", e.Ticker, err)
	}
	return nil
}

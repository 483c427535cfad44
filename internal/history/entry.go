// Package history records the outcome of each recorded test call.
package history

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/JaimeStill/promptbench/pkg/isotime"
)

// Well-known status values. Other strings are accepted as-is.
const (
	StatusOK   = "OK"
	StatusFail = "FAIL"
)

// Entry is one recorded call.
type Entry struct {
	ID        uuid.UUID       `json:"id"`
	Timestamp isotime.Time    `json:"timestamp"`
	Prompt    *string         `json:"prompt"`
	ImagePath *string         `json:"image_path"`
	Response  json.RawMessage `json:"response"`
	Status    string          `json:"status"`
}

// SaveCommand carries the data needed to record a call.
type SaveCommand struct {
	Prompt    *string         `json:"prompt"`
	ImagePath *string         `json:"image_path"`
	Response  json.RawMessage `json:"response"`
	Status    string          `json:"status"`
}

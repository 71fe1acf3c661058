package utils

import (
	"github.com/google/uuid"
)

// GenerateID returns a fresh random identifier for bids, images and the
// other domain records
func GenerateID() string {
	return uuid.New().String()
}

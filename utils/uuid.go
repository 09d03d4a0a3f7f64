package utils

import (
	"fmt"

	"github.com/google/uuid"
)

// GenerateID returns a new unique identifier string. Used for lot, bid and
// notification ids; bid ordering comes from the ledger sequence, never from
// the id.
func GenerateID() string {
	return uuid.New().String()
}

// FormatLotNo renders the human-facing catalog number for a lot.
func FormatLotNo(n int) string {
	return fmt.Sprintf("L-%04d", n)
}

package utils

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateBillID generates a bill id of the form BILL20250606-042.
func GenerateBillID() string {
	return fmt.Sprintf("BILL%s-%03d", time.Now().Format("20060102"), rand.Intn(1000))
}

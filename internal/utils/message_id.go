package utils

import (
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// GenerateMessageID creates a unique RFC 5322 message id for an outbound email.
func GenerateMessageID(domain string) string {
	alphabet := "abcdefghijklmnopqrstuvwxyz0123456789"
	id, err := gonanoid.Generate(alphabet, 12)
	if err != nil {
		panic(err)
	}

	timestamp := time.Now().UnixMicro()

	return fmt.Sprintf("<%d.%s@%s>", timestamp, id, domain)
}

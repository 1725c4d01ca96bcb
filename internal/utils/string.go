package utils

import "strings"

func NormalizeMessageID(messageID string) string {
	messageID = strings.TrimSpace(messageID)
	messageID = strings.TrimPrefix(messageID, "<")
	messageID = strings.TrimSuffix(messageID, ">")
	return messageID
}

// EnsureMessageIDBrackets formats a message id for use in a header.
func EnsureMessageIDBrackets(messageID string) string {
	messageID = strings.TrimSpace(messageID)
	if messageID == "" {
		return messageID
	}
	if !strings.HasPrefix(messageID, "<") {
		messageID = "<" + messageID
	}
	if !strings.HasSuffix(messageID, ">") {
		messageID = messageID + ">"
	}
	return messageID
}

func ExtractDomainFromEmail(email string) string {
	if email == "" {
		return ""
	}

	email = strings.TrimSpace(email)

	// Handle potential angle brackets in email (e.g., "Name <email@domain.com>")
	if strings.Contains(email, "<") && strings.Contains(email, ">") {
		startIdx := strings.LastIndex(email, "<") + 1
		endIdx := strings.LastIndex(email, ">")
		if startIdx > 0 && endIdx > startIdx {
			email = email[startIdx:endIdx]
		}
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return ""
	}

	return strings.ToLower(strings.TrimSpace(parts[1]))
}

// ExtractLocalPartFromEmail returns the text before the @ of an address.
func ExtractLocalPartFromEmail(email string) string {
	email = strings.TrimSpace(email)
	if idx := strings.Index(email, "@"); idx > 0 {
		return email[:idx]
	}
	return email
}

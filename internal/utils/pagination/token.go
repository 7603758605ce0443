package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// EncodeToken creates a base64 encoded keyset cursor from the last row's update
// time and ID. Rows are ordered by (updatedAt DESC, id DESC).
func EncodeToken(updatedAt time.Time, id string) string {
	tokenStr := fmt.Sprintf("%s|%s", updatedAt.UTC().Format(timeFormat), id)
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses the base64 encoded token back into update time and ID.
func DecodeToken(token string) (time.Time, string, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (split)")
	}

	updatedAt, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (updated_at parse): %w", err)
	}

	return updatedAt, parts[1], nil
}

// After reports whether the row (updatedAt, id) comes after the cursor in
// (updatedAt DESC, id DESC) order.
func After(updatedAt time.Time, id string, cursorAt time.Time, cursorID string) bool {
	if updatedAt.Equal(cursorAt) {
		return id < cursorID
	}
	return updatedAt.Before(cursorAt)
}

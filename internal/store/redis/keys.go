package redis

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// KeyBookmarks holds the serialized bookmark set (JSON array of ids).
	KeyBookmarks = "staffdash:bookmarks"
	// KeyPrefixEmployee is the prefix for snapshotted employee records.
	KeyPrefixEmployee = "staffdash:employee:"
	// KeyRosterOrder is the list of employee ids in roster order.
	KeyRosterOrder = "staffdash:roster:order"
	// KeyRosterSavedAt holds the RFC3339 time of the last snapshot.
	KeyRosterSavedAt = "staffdash:roster:saved_at"
)

// EmployeeKey returns the redis key for an employee by id.
func EmployeeKey(id int) string {
	return KeyPrefixEmployee + strconv.Itoa(id)
}

// ExtractEmployeeID parses the employee id out of an employee key.
func ExtractEmployeeID(key string) (int, error) {
	raw, ok := strings.CutPrefix(key, KeyPrefixEmployee)
	if !ok || raw == "" {
		return 0, fmt.Errorf("invalid employee key: %s", key)
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid employee key %s: %w", key, err)
	}
	return id, nil
}

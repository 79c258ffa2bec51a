package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// EncodeMultiFieldToken creates a token with any number of string fields.
// Fields must not contain "|".
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields.
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	return strings.Split(string(decodedBytes), "|"), nil
}

// EncodeRecordToken creates a keyset token pointing after the record lastID of table.
func EncodeRecordToken(table, lastID string) string {
	return EncodeMultiFieldToken(table, lastID)
}

// DecodeRecordToken returns the last seen record ID of a token issued for table.
func DecodeRecordToken(token, table string) (string, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return "", err
	}
	if len(parts) != 2 || parts[1] == "" {
		return "", fmt.Errorf("invalid pagination token format (split)")
	}
	if parts[0] != table {
		return "", fmt.Errorf("pagination token was issued for %q, not %q", parts[0], table)
	}
	return parts[1], nil
}

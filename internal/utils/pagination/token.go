package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// EncodeSaleToken creates a base64 encoded cursor from the timestamp and number
// of the last sale on a page. Listing is newest-first, so the next page starts
// strictly before this position.
func EncodeSaleToken(timestamp time.Time, saleNumber int64) string {
	tokenStr := fmt.Sprintf("%s|%d", timestamp.Format(timeFormat), saleNumber)
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeSaleToken parses the base64 encoded cursor back into a timestamp and sale number.
func DecodeSaleToken(token string) (time.Time, int64, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (split)")
	}

	timestamp, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (timestamp parse): %w", err)
	}

	saleNumber, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (sale number parse): %w", err)
	}

	return timestamp, saleNumber, nil
}

package postgres

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net"

	"github.com/GarethNobleLFG/brainflip/internal/store"
	"github.com/jackc/pgx/v5/pgconn"
)

// sharedWithValue encodes a deck's shared recipients for the JSONB
// shared_with column. A nil slice persists as an empty array.
func sharedWithValue(recipients []string) []byte {
	if recipients == nil {
		recipients = []string{}
	}
	// Marshaling a string slice cannot fail.
	b, _ := json.Marshal(recipients)
	return b
}

// sharedWithScanner scans the JSONB shared_with column back into a
// string slice.
type sharedWithScanner struct {
	recipients []string
}

func (s *sharedWithScanner) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		s.recipients = []string{}
		return nil
	case []byte:
		return json.Unmarshal(v, &s.recipients)
	case string:
		return json.Unmarshal([]byte(v), &s.recipients)
	default:
		return fmt.Errorf("unsupported shared_with source type %T", src)
	}
}

// mapConnectivityError converts driver-level connectivity failures into
// store.ErrUnavailable so the API boundary can surface a generic
// service-unavailable condition without leaking connection state.
// All other errors pass through unchanged.
func mapConnectivityError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}

	return err
}

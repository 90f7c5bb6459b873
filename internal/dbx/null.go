package dbx

import "database/sql"

// Int64Ptr converts a scanned nullable integer to a pointer, nil for NULL.
func Int64Ptr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

// StringPtr converts a scanned nullable string to a pointer, nil for NULL.
func StringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

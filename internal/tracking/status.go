package tracking

import (
	"database/sql/driver"
	"fmt"
)

// ZoneStatus is the three-valued inside/outside state of a user relative to
// their geofence. "unknown" means no zone-status information was ever
// supplied (or the last report carried none) and is distinct from "outside":
// collapsing the two would fabricate exit alerts on the first report after a
// hint-less one.
type ZoneStatus string

const (
	StatusInside  ZoneStatus = "inside"
	StatusOutside ZoneStatus = "outside"
	StatusUnknown ZoneStatus = "unknown"
)

// Known reports whether the status carries a definite inside/outside value.
func (s ZoneStatus) Known() bool {
	return s == StatusInside || s == StatusOutside
}

// Value implements driver.Valuer so gorm stores the status as text.
func (s ZoneStatus) Value() (driver.Value, error) {
	switch s {
	case StatusInside, StatusOutside, StatusUnknown:
		return string(s), nil
	}
	return nil, fmt.Errorf("invalid zone status %q", string(s))
}

// Scan implements sql.Scanner. A NULL column scans as unknown so rows written
// before the column existed stay readable.
func (s *ZoneStatus) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*s = StatusUnknown
		return nil
	case string:
		return s.set(v)
	case []byte:
		return s.set(string(v))
	}
	return fmt.Errorf("cannot scan %T into ZoneStatus", value)
}

func (s *ZoneStatus) set(v string) error {
	switch ZoneStatus(v) {
	case StatusInside, StatusOutside, StatusUnknown:
		*s = ZoneStatus(v)
		return nil
	}
	return fmt.Errorf("invalid zone status %q", v)
}

// statusFromHint maps the wire tri-state (true / false / absent) onto a
// ZoneStatus.
func statusFromHint(hint *bool) ZoneStatus {
	if hint == nil {
		return StatusUnknown
	}
	return statusFromBool(*hint)
}

func statusFromBool(inside bool) ZoneStatus {
	if inside {
		return StatusInside
	}
	return StatusOutside
}

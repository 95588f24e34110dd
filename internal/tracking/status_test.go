package tracking

import "testing"

// TestZoneStatus_Known verifies only inside/outside count as definite.
func TestZoneStatus_Known(t *testing.T) {
	if !StatusInside.Known() || !StatusOutside.Known() {
		t.Error("inside and outside must be known")
	}
	if StatusUnknown.Known() {
		t.Error("unknown must not be known")
	}
	if ZoneStatus("").Known() {
		t.Error("zero value must not be known")
	}
}

// TestStatusFromHint verifies the wire tri-state mapping: nil means no
// opinion, never outside.
func TestStatusFromHint(t *testing.T) {
	if got := statusFromHint(nil); got != StatusUnknown {
		t.Errorf("nil hint: expected unknown, got %q", got)
	}
	in, out := true, false
	if got := statusFromHint(&in); got != StatusInside {
		t.Errorf("true hint: expected inside, got %q", got)
	}
	if got := statusFromHint(&out); got != StatusOutside {
		t.Errorf("false hint: expected outside, got %q", got)
	}
}

// TestZoneStatus_ScanValue round-trips the status through the database
// interfaces and checks the NULL and garbage cases.
func TestZoneStatus_ScanValue(t *testing.T) {
	for _, s := range []ZoneStatus{StatusInside, StatusOutside, StatusUnknown} {
		v, err := s.Value()
		if err != nil {
			t.Fatalf("Value(%q): %v", s, err)
		}
		var got ZoneStatus
		if err := got.Scan(v); err != nil {
			t.Fatalf("Scan(%v): %v", v, err)
		}
		if got != s {
			t.Errorf("round trip: want %q, got %q", s, got)
		}
	}

	var fromBytes ZoneStatus
	if err := fromBytes.Scan([]byte("inside")); err != nil || fromBytes != StatusInside {
		t.Errorf("scan []byte: got %q, err %v", fromBytes, err)
	}

	var fromNull ZoneStatus
	if err := fromNull.Scan(nil); err != nil || fromNull != StatusUnknown {
		t.Errorf("scan NULL: got %q, err %v", fromNull, err)
	}

	var bad ZoneStatus
	if err := bad.Scan("maybe"); err == nil {
		t.Error("expected error scanning invalid status")
	}
	if _, err := ZoneStatus("maybe").Value(); err == nil {
		t.Error("expected error valuing invalid status")
	}
}

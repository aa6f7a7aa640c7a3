package idhash

import "testing"

func TestComputePositionID_Deterministic(t *testing.T) {
	a := ComputePositionID("QUICK_SCALP", "mint", 1_700_000_030)
	b := ComputePositionID("QUICK_SCALP", "mint", 1_700_000_030)
	if a != b {
		t.Errorf("same input produced different ids: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Errorf("id length = %d, want 64 hex chars", len(a))
	}
}

func TestComputePositionID_DistinctInputs(t *testing.T) {
	base := ComputePositionID("QUICK_SCALP", "mint", 1_700_000_030)
	variants := []string{
		ComputePositionID("MOMENTUM", "mint", 1_700_000_030),
		ComputePositionID("QUICK_SCALP", "other", 1_700_000_030),
		ComputePositionID("QUICK_SCALP", "mint", 1_700_000_031),
	}
	for i, v := range variants {
		if v == base {
			t.Errorf("variant %d collided with the base id", i)
		}
	}
}

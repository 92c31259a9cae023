package bonus

import (
	"testing"

	"github.com/shopspring/decimal"
)

func testConfig() Config {
	return Config{
		BaseAmount:          decimal.NewFromInt(1000),
		LatePenalty:         decimal.NewFromInt(50),
		AbsencePenalty:      decimal.NewFromInt(200),
		MinimumPresenceDays: 20,
	}
}

func TestComputePenalties(t *testing.T) {
	got := Compute(20, 2, 1, testConfig())
	if !got.Equal(decimal.NewFromInt(700)) {
		t.Fatalf("expected 700, got %s", got)
	}
}

func TestComputeBelowThreshold(t *testing.T) {
	got := Compute(18, 0, 0, testConfig())
	if !got.IsZero() {
		t.Fatalf("expected 0 below the presence threshold, got %s", got)
	}
}

func TestComputeFloorsAtZero(t *testing.T) {
	got := Compute(20, 10, 10, testConfig())
	if !got.IsZero() {
		t.Fatalf("expected 0 floor, got %s", got)
	}
}

func TestComputeNoPenalties(t *testing.T) {
	got := Compute(22, 0, 0, testConfig())
	if !got.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("expected full base, got %s", got)
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	cfg := testConfig()
	first := Compute(21, 3, 2, cfg)
	second := Compute(21, 3, 2, cfg)
	if !first.Equal(second) {
		t.Fatalf("expected identical results, got %s and %s", first, second)
	}
}

func TestComputeMonotoneInPenalties(t *testing.T) {
	cfg := testConfig()
	prev := Compute(25, 0, 0, cfg)
	for late := 1; late <= 25; late++ {
		cur := Compute(25, late, 0, cfg)
		if cur.GreaterThan(prev) {
			t.Fatalf("bonus increased with more lates: %s -> %s", prev, cur)
		}
		if cur.IsNegative() {
			t.Fatalf("bonus went negative: %s", cur)
		}
		prev = cur
	}
	prev = Compute(25, 0, 0, cfg)
	for absent := 1; absent <= 25; absent++ {
		cur := Compute(25, 0, absent, cfg)
		if cur.GreaterThan(prev) {
			t.Fatalf("bonus increased with more absences: %s -> %s", prev, cur)
		}
		prev = cur
	}
}

func TestComputeExactDecimals(t *testing.T) {
	cfg := Config{
		BaseAmount:          decimal.RequireFromString("1000.10"),
		LatePenalty:         decimal.RequireFromString("0.10"),
		AbsencePenalty:      decimal.RequireFromString("0.20"),
		MinimumPresenceDays: 1,
	}
	got := Compute(1, 1, 0, cfg)
	if got.String() != "1000" {
		t.Fatalf("expected exact 1000, got %s", got)
	}
}

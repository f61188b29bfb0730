package progression

import (
	"testing"
	"time"
)

func TestMaxXPForLevel(t *testing.T) {
	tests := []struct {
		level    int
		expected int
	}{
		{1, 100},
		{2, 110},
		{3, 121},
		{4, 133},
		{5, 146},
		{6, 160},
	}
	for _, tc := range tests {
		if got := MaxXPForLevel(tc.level); got != tc.expected {
			t.Errorf("MaxXPForLevel(%d) = %d, expected %d", tc.level, got, tc.expected)
		}
	}
}

func TestAddXP(t *testing.T) {
	tests := []struct {
		name        string
		xp          int
		wantLevel   int
		wantCurrent int
		wantGained  int
	}{
		{"below threshold", 99, 1, 99, 0},
		{"exact threshold", 100, 2, 0, 1},
		{"carry remainder", 150, 2, 50, 1},
		{"multiple levels", 100 + 110 + 121 + 5, 4, 5, 3},
		{"non positive ignored", -20, 1, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewProfile("id", "bomber", time.Unix(0, 0))
			gained := p.AddXP(tc.xp)
			if gained != tc.wantGained {
				t.Errorf("AddXP() gained = %d, expected %d", gained, tc.wantGained)
			}
			if p.Level != tc.wantLevel || p.CurrentXP != tc.wantCurrent {
				t.Errorf("AddXP() level/current = %d/%d, expected %d/%d", p.Level, p.CurrentXP, tc.wantLevel, tc.wantCurrent)
			}
			if p.MaxXP != MaxXPForLevel(p.Level) {
				t.Errorf("MaxXP = %d, expected %d", p.MaxXP, MaxXPForLevel(p.Level))
			}
		})
	}
}

func TestTotalXPAccumulates(t *testing.T) {
	p := NewProfile("id", "bomber", time.Unix(0, 0))
	p.AddXP(445)
	p.AddXP(30)
	if p.TotalXP != 475 {
		t.Errorf("TotalXP = %d, expected 475", p.TotalXP)
	}
}

func TestClaimHourly(t *testing.T) {
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	p := NewProfile("id", "bomber", start)

	if !p.ClaimHourly(start) {
		t.Fatal("first ClaimHourly() should succeed")
	}
	if p.Coins != HourlyCoins {
		t.Errorf("Coins = %d, expected %d", p.Coins, HourlyCoins)
	}
	if p.ClaimHourly(start.Add(59 * time.Minute)) {
		t.Error("ClaimHourly() within the hour should fail")
	}
	if left := p.NextClaimIn(start.Add(45 * time.Minute)); left != 15*time.Minute {
		t.Errorf("NextClaimIn() = %v, expected 15m", left)
	}
	if !p.ClaimHourly(start.Add(time.Hour)) {
		t.Error("ClaimHourly() after an hour should succeed")
	}
	if p.Coins != 2*HourlyCoins {
		t.Errorf("Coins = %d, expected %d", p.Coins, 2*HourlyCoins)
	}
}

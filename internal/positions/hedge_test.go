package positions

import (
	"math"
	"testing"
)

func TestFindHedges(t *testing.T) {
	bets := []Bet{
		{ID: 1, Matchup: "Michigan @ Ohio State", Team: "Michigan", Odds: 300, Stake: 100},
		{ID: 2, Matchup: "Auburn @ Alabama", Team: "Auburn", Odds: -110, Stake: 100},
		{ID: 3, Matchup: "USC @ Oregon", Team: "USC", Odds: 150, Stake: 40},
	}
	quotes := map[string]int{
		"michigan  @ ohio state": -200,
		"Auburn @ Alabama":       -150,
	}

	opps := FindHedges(bets, quotes)
	if len(opps) != 2 {
		t.Fatalf("expected 2 opportunities, got %d", len(opps))
	}

	lock := opps[0]
	if lock.Bet.ID != 1 || lock.Action != ActionLock {
		t.Errorf("first opportunity = %+v, want lock on bet 1", lock)
	}
	if math.Abs(lock.Plan.HedgeStake-266.67) > 0.01 {
		t.Errorf("hedge stake = %.2f, want 266.67", lock.Plan.HedgeStake)
	}
	if math.Abs(lock.Plan.LockedProfit-33.33) > 0.01 {
		t.Errorf("locked profit = %.2f, want 33.33", lock.Plan.LockedProfit)
	}

	reduce := opps[1]
	if reduce.Bet.ID != 2 || reduce.Action != ActionReduce {
		t.Errorf("second opportunity = %+v, want reduce on bet 2", reduce)
	}
	if reduce.Plan.LockedProfit >= 0 {
		t.Errorf("reduce hedge should lose money, got %.2f", reduce.Plan.LockedProfit)
	}
}

func TestFindHedgesSkipsInvalidQuotes(t *testing.T) {
	bets := []Bet{{ID: 1, Matchup: "A @ B", Team: "A", Odds: 120, Stake: 10}}

	if opps := FindHedges(bets, map[string]int{"A @ B": 0}); len(opps) != 0 {
		t.Errorf("zero quote should be skipped, got %+v", opps)
	}
	if opps := FindHedges(nil, map[string]int{"A @ B": -110}); opps == nil || len(opps) != 0 {
		t.Errorf("no bets should yield an empty slice, got %#v", opps)
	}
}

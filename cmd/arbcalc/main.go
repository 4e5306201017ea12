package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/arbitrage"
	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/config"
	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/format"
	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/odds"
)

func main() {
	_ = godotenv.Load()

	stake := flag.Float64("stake", config.DefaultStake, "total stake to split (arbitrage) or stake already placed (hedge)")
	a := flag.Int("a", 0, "American odds on side A (or the existing bet with -hedge)")
	b := flag.Int("b", 0, "American odds on side B (or the hedge price with -hedge)")
	hedge := flag.Bool("hedge", false, "size a hedge for an existing bet instead of splitting a new stake")
	flag.Parse()

	if err := run(*stake, *a, *b, *hedge); err != nil {
		if inErr, ok := arbitrage.AsInputError(err); ok {
			fmt.Fprintf(os.Stderr, "invalid -%s: %s\n", flagName(inErr.Field), inErr.Reason)
		} else {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		}
		os.Exit(2)
	}
}

func run(stake float64, a, b int, hedge bool) error {
	if hedge {
		plan, err := arbitrage.Hedge(stake, a, b)
		if err != nil {
			return err
		}
		printHedge(plan)
		return nil
	}

	r, err := arbitrage.Compute(stake, a, b)
	if err != nil {
		return err
	}
	printArbitrage(r)
	return nil
}

func printArbitrage(r arbitrage.Result) {
	v := format.ArbitrageView(r)

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("ARBITRAGE CALCULATOR")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Stake:          %s\n", format.Money(r.TotalStake))
	fmt.Printf("Side A:         %-6s decimal %.4f  implied %s\n", v.OddsA, r.DecimalA, v.ImpliedA)
	fmt.Printf("Side B:         %-6s decimal %.4f  implied %s\n", v.OddsB, r.DecimalB, v.ImpliedB)
	fmt.Printf("Total implied:  %s  (hold %s)\n", v.TotalImplied, v.Hold)
	fmt.Printf("No-vig:         A %s / B %s\n", v.FairA, v.FairB)
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("Bet A:          %s  (pays %s)\n", v.StakeA, v.PayoutA)
	fmt.Printf("Bet B:          %s  (pays %s)\n", v.StakeB, v.PayoutB)
	fmt.Printf("Worst case:     %s\n", v.GuaranteedProfit)
	fmt.Println(strings.Repeat("-", 60))
	fmt.Println(v.Headline)
}

func printHedge(p arbitrage.HedgePlan) {
	v := format.HedgeView(p)

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("HEDGE CALCULATOR")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Existing:       %s at %s\n", format.Money(p.ExistingStake), odds.FormatAmerican(p.ExistingOdds))
	fmt.Printf("Hedge:          %s at %s\n", v.HedgeStake, odds.FormatAmerican(p.HedgeOdds))
	fmt.Printf("Total outlay:   %s\n", v.TotalOutlay)
	fmt.Printf("Payout:         %s either way\n", v.Payout)
	fmt.Printf("Net:            %s\n", v.LockedProfit)
	fmt.Println(strings.Repeat("-", 60))
	fmt.Println(v.Summary)
}

// flagName maps calculator field names back to the flags that set them
func flagName(field string) string {
	switch field {
	case "total_stake", "existing_stake":
		return "stake"
	case "odds_a", "existing_odds":
		return "a"
	case "odds_b", "hedge_odds":
		return "b"
	}
	return field
}

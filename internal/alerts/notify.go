package alerts

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/analysis"
	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/arbitrage"
	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/odds"
	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/positions"
)

// Notifier logs opportunities, suppressing repeats of the same alert within the cooldown
type Notifier struct {
	mu         sync.Mutex
	lastAlerts map[string]time.Time // Dedupe alerts
	cooldown   time.Duration        // Minimum time between same alerts
	logger     *logrus.Entry
}

// NewNotifier creates a new notifier. A nil logger uses the logrus standard logger.
func NewNotifier(cooldown time.Duration, logger *logrus.Logger) *Notifier {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Notifier{
		lastAlerts: make(map[string]time.Time),
		cooldown:   cooldown,
		logger:     logger.WithField("component", "notifier"),
	}
}

// checkCooldown records key and reports whether it fired within the cooldown
func (n *Notifier) checkCooldown(key string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if lastTime, ok := n.lastAlerts[key]; ok && time.Since(lastTime) < n.cooldown {
		return true
	}
	n.lastAlerts[key] = time.Now()
	return false
}

// AlertArbitrage logs a cross-book arbitrage on a matchup
func (n *Notifier) AlertArbitrage(matchup string, opp arbitrage.Opportunity) bool {
	key := fmt.Sprintf("arb-%s-%s-%d-%s-%d", matchup, opp.HomeBook, opp.Result.OddsA, opp.AwayBook, opp.Result.OddsB)
	if n.checkCooldown(key) {
		return false
	}

	n.logger.WithFields(logrus.Fields{
		"matchup":    matchup,
		"home_book":  opp.HomeBook,
		"home_odds":  odds.FormatAmerican(opp.Result.OddsA),
		"away_book":  opp.AwayBook,
		"away_odds":  odds.FormatAmerican(opp.Result.OddsB),
		"margin_pct": opp.Result.ProfitMarginPct,
		"profit":     opp.Result.GuaranteedProfit,
	}).Warn(opp.Description)
	return true
}

// AlertHedge logs a hedge opportunity on a tracked bet
func (n *Notifier) AlertHedge(hedge positions.HedgeOpportunity) bool {
	key := fmt.Sprintf("hedge-%d-%d", hedge.Bet.ID, hedge.QuoteOdds)
	if n.checkCooldown(key) {
		return false
	}

	entry := n.logger.WithFields(logrus.Fields{
		"bet_id":      hedge.Bet.ID,
		"matchup":     hedge.Bet.Matchup,
		"team":        hedge.Bet.Team,
		"action":      hedge.Action,
		"hedge_stake": hedge.Plan.HedgeStake,
		"net":         hedge.Plan.LockedProfit,
	})
	if hedge.Action == positions.ActionLock {
		entry.Warn(hedge.Description)
	} else {
		entry.Info(hedge.Description)
	}
	return true
}

// AlertValue logs a +EV side flagged by the model
func (n *Notifier) AlertValue(matchup string, e analysis.Edge) bool {
	if !e.Value {
		return false
	}
	key := fmt.Sprintf("value-%s-%s-%s-%d", matchup, e.Side, e.Sportsbook, e.Odds)
	if n.checkCooldown(key) {
		return false
	}

	n.logger.WithFields(logrus.Fields{
		"matchup":    matchup,
		"side":       e.Side,
		"sportsbook": e.Sportsbook,
		"odds":       odds.FormatAmerican(e.Odds),
	}).Infof("+EV: model=%.1f%% market=%.1f%% ev=%.2f%% kelly=%.1f%%",
		e.ModelProb*100, e.MarketProb*100, e.EV*100, e.Kelly*100)
	return true
}

// LogError logs a failed operation. fields may be nil.
func (n *Notifier) LogError(context string, err error, fields logrus.Fields) {
	n.logger.WithFields(fields).WithField("context", context).WithError(err).Error("operation failed")
}

// LogStartup logs service startup
func (n *Notifier) LogStartup(fields logrus.Fields) {
	n.logger.WithFields(fields).Info("service started")
}

// CleanupOldAlerts removes alert records older than an hour or the cooldown, whichever is longer
func (n *Notifier) CleanupOldAlerts() int {
	n.mu.Lock()
	defer n.mu.Unlock()

	keep := time.Hour
	if n.cooldown > keep {
		keep = n.cooldown
	}
	cutoff := time.Now().Add(-keep)

	removed := 0
	for key, t := range n.lastAlerts {
		if t.Before(cutoff) {
			delete(n.lastAlerts, key)
			removed++
		}
	}
	return removed
}

package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/api"
	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/arbitrage"
	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/format"
	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/positions"
	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/prediction"
	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/teams"
)

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type arbitrageRequest struct {
	TotalStake float64 `json:"total_stake"`
	OddsA      int     `json:"odds_a"`
	OddsB      int     `json:"odds_b"`
}

type arbitrageResponse struct {
	Result  arbitrage.Result        `json:"result"`
	Display format.ArbitrageDisplay `json:"display"`
}

func (s *Server) arbitrage(w http.ResponseWriter, r *http.Request) {
	var req arbitrageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result, err := arbitrage.Compute(req.TotalStake, req.OddsA, req.OddsB)
	s.metrics.ObserveArbitrage(result, err)
	if err != nil {
		s.writeCalcError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, arbitrageResponse{Result: result, Display: format.ArbitrageView(result)})
}

type hedgeRequest struct {
	ExistingStake float64 `json:"existing_stake"`
	ExistingOdds  int     `json:"existing_odds"`
	HedgeOdds     int     `json:"hedge_odds"`
}

type hedgeResponse struct {
	Plan    arbitrage.HedgePlan `json:"plan"`
	Display format.HedgeDisplay `json:"display"`
}

func (s *Server) hedge(w http.ResponseWriter, r *http.Request) {
	var req hedgeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	plan, err := arbitrage.Hedge(req.ExistingStake, req.ExistingOdds, req.HedgeOdds)
	s.metrics.ObserveHedge(plan, err)
	if err != nil {
		s.writeCalcError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, hedgeResponse{Plan: plan, Display: format.HedgeView(plan)})
}

// writeCalcError maps input errors to 400 with the offending field; anything else is a 500
func (s *Server) writeCalcError(w http.ResponseWriter, r *http.Request, err error) {
	if inErr, ok := arbitrage.AsInputError(err); ok {
		s.writeFieldError(w, r, inErr.Field, inErr.Error())
		return
	}
	s.logError(r, "calculation failed", err)
	s.writeError(w, r, http.StatusInternalServerError, "internal error")
}

func (s *Server) listTeams(w http.ResponseWriter, r *http.Request) {
	roster := s.roster
	if roster == nil {
		roster = teams.Roster{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"teams": roster, "count": len(roster)})
}

type resolveResponse struct {
	Query   string          `json:"query"`
	Matched bool            `json:"matched"`
	Match   teams.MatchKind `json:"match"`
	Team    *teams.Team     `json:"team"`
	Badge   teams.Badge     `json:"badge"`
}

func (s *Server) resolveTeam(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		s.writeFieldError(w, r, "q", "query parameter q is required")
		return
	}

	team, kind := teams.ResolveKind(q, s.roster)
	s.metrics.ObserveResolution(kind)

	s.writeJSON(w, http.StatusOK, resolveResponse{
		Query:   q,
		Matched: team != nil,
		Match:   kind,
		Team:    team,
		Badge:   teams.BadgeFor(q, s.roster),
	})
}

func (s *Server) buildMatchup(w http.ResponseWriter, r *http.Request) {
	payload, err := prediction.DecodePayload(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil && !errors.Is(err, prediction.ErrEmptyPayload) {
		s.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	// empty body falls through with a nil payload, which builds the demo
	s.respondMatchup(w, r, payload)
}

func (s *Server) demoMatchup(w http.ResponseWriter, r *http.Request) {
	s.respondMatchup(w, r, nil)
}

// liveMatchup fetches the prediction for away @ home from the upstream predictor
func (s *Server) liveMatchup(w http.ResponseWriter, r *http.Request) {
	if s.predictor == nil {
		s.writeError(w, r, http.StatusServiceUnavailable, "live predictions are disabled")
		return
	}
	home := strings.TrimSpace(r.URL.Query().Get("home"))
	away := strings.TrimSpace(r.URL.Query().Get("away"))
	if home == "" {
		s.writeFieldError(w, r, "home", "query parameter home is required")
		return
	}
	if away == "" {
		s.writeFieldError(w, r, "away", "query parameter away is required")
		return
	}

	payload, err := s.predictor.GetPrediction(r.Context(), home, away)
	switch {
	case errors.Is(err, api.ErrNoPrediction):
		s.writeError(w, r, http.StatusNotFound, err.Error())
		return
	case err != nil:
		s.logError(r, "fetching prediction", err)
		s.writeError(w, r, http.StatusBadGateway, "predictor unavailable")
		return
	}
	s.respondMatchup(w, r, payload)
}

func (s *Server) respondMatchup(w http.ResponseWriter, r *http.Request, payload *prediction.Payload) {
	m, err := s.normalizer.Build(payload)
	if err != nil {
		s.logError(r, "building matchup", err)
		s.writeError(w, r, http.StatusInternalServerError, "could not build matchup")
		return
	}
	s.metrics.ObserveMatchup(m.WinProbSource)
	s.alertMatchup(m)
	s.writeJSON(w, http.StatusOK, m)
}

// alertMatchup notifies on arbitrage and value sides found in a matchup's market
func (s *Server) alertMatchup(m prediction.Matchup) {
	if m.Market == nil {
		return
	}
	name := m.Away.Name + " @ " + m.Home.Name
	if m.Market.Arbitrage != nil {
		s.notifier.AlertArbitrage(name, *m.Market.Arbitrage)
	}
	for _, e := range m.Market.Edges {
		s.notifier.AlertValue(name, e)
	}
}

func (s *Server) listBets(w http.ResponseWriter, r *http.Request) {
	bets, err := s.bets.ListBets()
	if err != nil {
		s.logError(r, "listing bets", err)
		s.writeError(w, r, http.StatusInternalServerError, "could not list bets")
		return
	}
	s.metrics.TrackedBets.Set(float64(len(bets)))
	s.writeJSON(w, http.StatusOK, map[string]any{"bets": bets})
}

func (s *Server) addBet(w http.ResponseWriter, r *http.Request) {
	var bet positions.Bet
	if err := decodeJSON(w, r, &bet); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	id, err := s.bets.AddBet(bet)
	if errors.Is(err, positions.ErrInvalidBet) {
		s.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.logError(r, "adding bet", err)
		s.writeError(w, r, http.StatusInternalServerError, "could not store bet")
		return
	}

	stored, err := s.bets.GetBet(id)
	if err != nil || stored == nil {
		s.logError(r, "reading stored bet", err)
		s.writeError(w, r, http.StatusInternalServerError, "could not read stored bet")
		return
	}
	s.syncTrackedBets()
	s.writeJSON(w, http.StatusCreated, stored)
}

func (s *Server) deleteBet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		s.writeFieldError(w, r, "id", "bet id must be a positive integer")
		return
	}

	err = s.bets.DeleteBet(id)
	if errors.Is(err, positions.ErrNotFound) {
		s.writeError(w, r, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		s.logError(r, "deleting bet", err)
		s.writeError(w, r, http.StatusInternalServerError, "could not delete bet")
		return
	}
	s.syncTrackedBets()
	w.WriteHeader(http.StatusNoContent)
}

type stakeRequest struct {
	Stake float64 `json:"stake"`
}

func (s *Server) updateBet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		s.writeFieldError(w, r, "id", "bet id must be a positive integer")
		return
	}

	var req stakeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	err = s.bets.UpdateStake(id, req.Stake)
	switch {
	case errors.Is(err, positions.ErrInvalidBet):
		s.writeFieldError(w, r, "stake", err.Error())
		return
	case errors.Is(err, positions.ErrNotFound):
		s.writeError(w, r, http.StatusNotFound, err.Error())
		return
	case err != nil:
		s.logError(r, "updating bet", err)
		s.writeError(w, r, http.StatusInternalServerError, "could not update bet")
		return
	}

	stored, err := s.bets.GetBet(id)
	if err != nil || stored == nil {
		s.logError(r, "reading updated bet", err)
		s.writeError(w, r, http.StatusInternalServerError, "could not read updated bet")
		return
	}
	s.writeJSON(w, http.StatusOK, stored)
}

type hedgesRequest struct {
	Quotes map[string]int `json:"quotes"`
}

func (s *Server) betHedges(w http.ResponseWriter, r *http.Request) {
	var req hedgesRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Quotes) == 0 {
		s.writeFieldError(w, r, "quotes", "at least one quote is required")
		return
	}

	bets, err := s.bets.ListBets()
	if err != nil {
		s.logError(r, "listing bets", err)
		s.writeError(w, r, http.StatusInternalServerError, "could not list bets")
		return
	}

	hedges := positions.FindHedges(bets, req.Quotes)
	for _, h := range hedges {
		s.metrics.ObserveHedge(h.Plan, nil)
		s.notifier.AlertHedge(h)
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"hedges": hedges})
}

// logError reports a failed operation through the notifier, tagged with the request id
func (s *Server) logError(r *http.Request, context string, err error) {
	s.notifier.LogError(context, err, logrus.Fields{"request_id": RequestIDFromContext(r.Context())})
}

// syncTrackedBets sets the tracked bets gauge from storage
func (s *Server) syncTrackedBets() {
	if s.bets == nil {
		return
	}
	bets, err := s.bets.ListBets()
	if err != nil {
		s.notifier.LogError("counting tracked bets", err, nil)
		return
	}
	s.metrics.TrackedBets.Set(float64(len(bets)))
}

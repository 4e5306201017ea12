package server

import (
	"net/http"
	"time"
)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	s.handle(mux, "GET /health", s.health, false)
	mux.Handle("GET /metrics", s.metrics.Handler())

	s.handle(mux, "POST /api/arbitrage", s.arbitrage, true)
	s.handle(mux, "POST /api/hedge", s.hedge, true)

	s.handle(mux, "GET /api/teams", s.listTeams, true)
	s.handle(mux, "GET /api/teams/resolve", s.resolveTeam, true)

	s.handle(mux, "POST /api/matchup", s.buildMatchup, true)
	s.handle(mux, "GET /api/matchup/demo", s.demoMatchup, true)
	s.handle(mux, "GET /api/matchup/live", s.liveMatchup, true)

	s.handle(mux, "GET /api/bets", s.requireBets(s.listBets), true)
	s.handle(mux, "POST /api/bets", s.requireBets(s.addBet), true)
	s.handle(mux, "PATCH /api/bets/{id}", s.requireBets(s.updateBet), true)
	s.handle(mux, "DELETE /api/bets/{id}", s.requireBets(s.deleteBet), true)
	s.handle(mux, "POST /api/bets/hedges", s.requireBets(s.betHedges), true)

	return s.requestLogging(mux)
}

// handle registers h under pattern with per-route metrics and, when limited, rate limiting
func (s *Server) handle(mux *http.ServeMux, pattern string, h http.HandlerFunc, limited bool) {
	var next http.Handler = h
	if limited {
		next = s.rateLimit(next)
	}

	mux.Handle(pattern, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := wrapWriter(w)
		next.ServeHTTP(ww, r)
		s.metrics.ObserveRequest(pattern, ww.status, time.Since(start))
	}))
}

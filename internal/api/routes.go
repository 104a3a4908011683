package api

import (
	"github.com/go-chi/chi/v5"
)

func (a *Server) SetupRoutes(r *chi.Mux) {
	h := a.handlers

	r.Get("/healthcheck", registerHandler(h.HealthCheck))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/pool", registerHandler(h.GetPool))

		r.Route("/accounts/{address}", func(r chi.Router) {
			r.Get("/", registerHandler(h.GetAccount))
			r.Get("/earned", registerHandler(h.GetEarned))
			r.Get("/events", registerHandler(h.GetAccountEvents))

			r.Post("/stake", registerHandler(h.Stake))
			r.Post("/withdraw", registerHandler(h.Withdraw))
			r.Post("/harvest", registerHandler(h.Harvest))
			r.Post("/claim", registerHandler(h.ClaimReward))
			r.Post("/unstake", registerHandler(h.UnStake))
		})

		r.Post("/asset/{address}/approve", registerHandler(h.ApprovePool))
	})
}

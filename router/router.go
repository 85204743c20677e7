// Copyright (c) 2025 Tess Markell.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/tmarkell/consensio/events"
	"github.com/tmarkell/consensio/handlers"
	"github.com/tmarkell/consensio/middleware"
	"github.com/tmarkell/consensio/store"
)

func NewRouter(st store.Store, hub *events.Hub) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	userHandler := handlers.NewUserHandler(st)
	topicHandler := handlers.NewTopicHandler(st)
	criterionHandler := handlers.NewCriterionHandler(st)
	candidateHandler := handlers.NewCandidateHandler(st)
	evaluationHandler := handlers.NewEvaluationHandler(st)
	rankingHandler := handlers.NewRankingHandler(st)
	demoHandler := handlers.NewDemoHandler(st)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Users
	mux.HandleFunc("POST /api/users", middleware.WithLogging(userHandler.Create))
	mux.HandleFunc("GET /api/users", middleware.WithLogging(userHandler.List))
	mux.HandleFunc("GET /api/users/{id}", middleware.WithLogging(userHandler.Get))
	mux.HandleFunc("PATCH /api/users/{id}", middleware.WithLogging(userHandler.Update))
	mux.HandleFunc("DELETE /api/users/{id}", middleware.WithLogging(userHandler.Delete))
	mux.HandleFunc("GET /api/users/{id}/topics", middleware.WithLogging(userHandler.Topics))
	mux.HandleFunc("GET /api/users/{id}/dashboard", middleware.WithLogging(userHandler.Dashboard))

	// Topics
	mux.HandleFunc("GET /api/topics", middleware.WithLogging(topicHandler.List))
	mux.HandleFunc("POST /api/topics", middleware.WithLogging(topicHandler.Create))
	mux.HandleFunc("GET /api/topics/{id}", middleware.WithLogging(topicHandler.Get))
	mux.HandleFunc("PATCH /api/topics/{id}", middleware.WithLogging(topicHandler.Update))
	mux.HandleFunc("DELETE /api/topics/{id}", middleware.WithLogging(topicHandler.Delete))
	mux.HandleFunc("POST /api/topics/{id}/participants", middleware.WithLogging(topicHandler.AddParticipant))
	mux.HandleFunc("PATCH /api/topics/{id}/phase", middleware.WithLogging(topicHandler.UpdatePhase))
	mux.HandleFunc("GET /api/topics/{id}/summary", middleware.WithLogging(topicHandler.Summary))

	// Criteria
	mux.HandleFunc("POST /api/criteria", middleware.WithLogging(criterionHandler.Create))
	mux.HandleFunc("POST /api/criteria/rank", middleware.WithLogging(criterionHandler.BulkRank))
	mux.HandleFunc("GET /api/criteria/topic/{topicId}", middleware.WithLogging(criterionHandler.ByTopic))
	mux.HandleFunc("GET /api/criteria/shared/topic/{topicId}", middleware.WithLogging(criterionHandler.SharedByTopic))
	mux.HandleFunc("GET /api/criteria/user/{userId}/topic/{topicId}", middleware.WithLogging(criterionHandler.ByUserTopic))
	mux.HandleFunc("PATCH /api/criteria/{id}", middleware.WithLogging(criterionHandler.Update))
	mux.HandleFunc("DELETE /api/criteria/{id}", middleware.WithLogging(criterionHandler.Delete))

	// Candidates
	mux.HandleFunc("POST /api/candidates", middleware.WithLogging(candidateHandler.Create))
	mux.HandleFunc("GET /api/candidates/topic/{topicId}", middleware.WithLogging(candidateHandler.ByTopic))
	mux.HandleFunc("GET /api/candidates/{id}", middleware.WithLogging(candidateHandler.Get))
	mux.HandleFunc("PATCH /api/candidates/{id}", middleware.WithLogging(candidateHandler.Update))
	mux.HandleFunc("DELETE /api/candidates/{id}", middleware.WithLogging(candidateHandler.Delete))

	// Evaluations and rankings
	mux.HandleFunc("POST /api/evaluations", middleware.WithLogging(evaluationHandler.Upsert))
	mux.HandleFunc("DELETE /api/evaluations/{id}", middleware.WithLogging(evaluationHandler.Delete))
	mux.HandleFunc("GET /api/evaluations/user/{userId}/topic/{topicId}", middleware.WithLogging(evaluationHandler.ByUserTopic))
	mux.HandleFunc("GET /api/evaluations/candidate/{candidateId}/criterion/{criterionId}", middleware.WithLogging(evaluationHandler.ByPair))
	mux.HandleFunc("GET /api/evaluations/aggregated/topic/{topicId}", middleware.WithLogging(evaluationHandler.Aggregated))
	mux.HandleFunc("GET /api/evaluations/discrepancies/topic/{topicId}", middleware.WithLogging(evaluationHandler.Discrepancies))
	mux.HandleFunc("POST /api/evaluations/rankings", middleware.WithLogging(rankingHandler.Upsert))
	mux.HandleFunc("GET /api/evaluations/rankings/topic/{topicId}", middleware.WithLogging(rankingHandler.ByTopic))
	mux.HandleFunc("GET /api/evaluations/rankings/user/{userId}/topic/{topicId}", middleware.WithLogging(rankingHandler.ByUserTopic))
	mux.HandleFunc("GET /api/evaluations/rankings/normalized/user/{userId}/topic/{topicId}", middleware.WithLogging(rankingHandler.Normalized))

	// Realtime notifications
	mux.HandleFunc("GET /ws", hub.ServeWS)

	// Demo data
	mux.HandleFunc("POST /demo/seed", middleware.WithLogging(demoHandler.Seed))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("consensio API v1"))
	})

	return mux
}

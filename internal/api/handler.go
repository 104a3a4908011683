package api

import (
	"encoding/json"
	"net/http"

	"github.com/babylonlabs-io/staking-ledger/internal/api/handlers"
	"github.com/babylonlabs-io/staking-ledger/internal/types"
	"github.com/rs/zerolog/log"
)

type handlerFunc func(r *http.Request) (*handlers.Result, *types.Error)

// registerHandler adapts a handler to http.HandlerFunc, writing the result or
// the mapped error as json.
func registerHandler(handler handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, apiErr := handler(r)
		if apiErr != nil {
			writeError(w, r, apiErr)
			return
		}

		writeJSON(w, r, result.Status, result.Data)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, apiErr *types.Error) {
	logger := log.Ctx(r.Context())
	if apiErr.StatusCode >= http.StatusInternalServerError {
		logger.Error().Err(apiErr).Str("error_code", string(apiErr.ErrorCode)).Msg("request failed")
	} else {
		logger.Debug().Err(apiErr).Str("error_code", string(apiErr.ErrorCode)).Msg("request rejected")
	}

	message := apiErr.Error()
	if apiErr.ErrorCode == types.InternalServiceError {
		// internal details stay in the logs
		message = "Internal service error"
	}

	writeJSON(w, r, apiErr.StatusCode, handlers.ErrorResponse{
		ErrorCode: string(apiErr.ErrorCode),
		Message:   message,
	})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to write response")
	}
}

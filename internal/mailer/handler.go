package mailer

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// SummaryPath is the route served by Handler.
const SummaryPath = "/send-daily-summary"

var corsHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Headers": "authorization, x-client-info, apikey, content-type",
}

// Handler accepts summary payloads over HTTP and forwards them to sender.
// It answers {"success":true,"data":...} or {"error":"..."} with status 500.
func Handler(sender Sender, log *slog.Logger) http.Handler {
	if log == nil {
		log = slog.Default()
	}
	mux := http.NewServeMux()
	mux.HandleFunc("OPTIONS "+SummaryPath, func(w http.ResponseWriter, r *http.Request) {
		setCORS(w)
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST "+SummaryPath, func(w http.ResponseWriter, r *http.Request) {
		setCORS(w)
		var p Payload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			log.Warn("decode summary payload", "err", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		log.Info("sending daily summary", "user", p.UserName)

		res, err := sender.Send(r.Context(), p)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": publicMessage(err)})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": res.Raw})
	})
	return mux
}

func setCORS(w http.ResponseWriter) {
	for k, v := range corsHeaders {
		w.Header().Set(k, v)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func publicMessage(err error) string {
	if errors.Is(err, ErrInvalidEmail) {
		return "Please enter a valid email address"
	}
	return err.Error()
}

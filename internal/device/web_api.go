package device

import (
	"encoding/json"
	"net/http"
)

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type displayResponse struct {
	Display   string    `json:"display"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Mode      Mode      `json:"mode"`
	Transform Transform `json:"transform"`
	Scale     int       `json:"scale"`
	Frames    int       `json:"frames"`
}

// apiV1Router serves read-only JSON about the emulated display under
// /api/v1/.
func (w *Web) apiV1Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/display", w.handleDisplayInfo)
	return mux
}

func (w *Web) handleDisplayInfo(rw http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeAPIError(rw, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	w.frameMu.RLock()
	seq := w.seq
	w.frameMu.RUnlock()
	writeJSON(rw, http.StatusOK, displayResponse{
		Display:   w.name,
		Width:     w.Width(),
		Height:    w.Height(),
		Mode:      w.Mode(),
		Transform: w.Transform,
		Scale:     w.Scale,
		Frames:    seq,
	})
}

func writeJSON(rw http.ResponseWriter, status int, v any) {
	rw.Header().Set("Content-Type", "application/json; charset=utf-8")
	rw.WriteHeader(status)
	_ = json.NewEncoder(rw).Encode(v)
}

func writeAPIError(rw http.ResponseWriter, status int, code, message string) {
	writeJSON(rw, status, apiError{Error: code, Message: message})
}

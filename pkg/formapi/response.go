package formapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"
)

// Response is the JSON envelope for every non-streaming reply.
type Response struct {
	Data  any          `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Response{Data: data})
}

func writeError(w http.ResponseWriter, status int, code string, err error, details map[string]string) {
	writeJSON(w, status, Response{Error: &ErrorDetail{
		Code:    code,
		Message: err.Error(),
		Details: details,
	}})
}

// isDataStar reports whether the request was sent by a datastar client.
func isDataStar(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/event-stream")
}

// patchSignals marshals v and sends it as a single datastar signal patch.
func patchSignals(sse *datastar.ServerSentEventGenerator, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return sse.PatchSignals(data)
}

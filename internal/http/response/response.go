// Package response writes the wire envelopes shared by every handler:
// plain JSON bodies for single resources, {totalItem, data} for pages and
// {success, message, statusCode} for errors.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/shoppinh/jp-order-BE/internal/repository"
)

type errorBody struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

type listBody struct {
	TotalItem int64 `json:"totalItem"`
	Data      any   `json:"data"`
}

// JSON writes a success payload.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// List writes a page result in the {totalItem, data} shape. The data array
// is never null, even for an empty page.
func List[T any](w http.ResponseWriter, page repository.PageResult[T]) {
	data := page.Items
	if data == nil {
		data = []T{}
	}
	JSON(w, http.StatusOK, listBody{TotalItem: page.Total, Data: data})
}

// Error writes the error envelope. The message is the only detail clients
// see; causes are logged server-side, never serialized.
func Error(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Success: false, Message: message, StatusCode: status})
}

package takeoff

import (
	"encoding/json"
	"net/http"

	"Armature/internal/calc/materials"
	"Armature/internal/core"
)

type Handler struct {
	Defaults materials.Defaults
}

func (h *Handler) Estimate(w http.ResponseWriter, r *http.Request) {
	var input EstimateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Estimate(input, h.Defaults)
	if err != nil {
		status := http.StatusInternalServerError
		if core.IsValidation(err) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

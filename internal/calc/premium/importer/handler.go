package importer

import (
	"encoding/json"
	"net/http"

	"Armature/internal/calc/bbs"
	"Armature/internal/calc/boq"
	"Armature/internal/calc/materials"
	"Armature/internal/core"
)

// maximum upload held in memory by ParseMultipartForm
const maxUploadBytes = 10 << 20

type Handler struct {
	Defaults materials.Defaults
}

type BBSImportResult struct {
	Count   int        `json:"count"`
	Skipped []RowError `json:"skipped,omitempty"`
	Result  bbs.Result `json:"result"`
}

type BOQImportResult struct {
	Count   int        `json:"count"`
	Skipped []RowError `json:"skipped,omitempty"`
	Result  boq.Result `json:"result"`
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if core.IsValidation(err) {
		status = http.StatusBadRequest
	}
	http.Error(w, err.Error(), status)
}

// BBS schedules an uploaded workbook. Form field "options" may hold bbs.Options as JSON.
func (h *Handler) BBS(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	var opts bbs.Options
	if raw := r.FormValue("options"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &opts); err != nil {
			http.Error(w, "Invalid options", http.StatusBadRequest)
			return
		}
	}

	imp, err := ReadBBS(file)
	if err != nil {
		http.Error(w, "Invalid file: "+err.Error(), http.StatusBadRequest)
		return
	}
	res, err := bbs.Calculate(bbs.Input{Items: imp.Items, Options: opts}, h.Defaults)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(BBSImportResult{Count: len(imp.Items), Skipped: imp.Skipped, Result: res})
}

// BOQ prices an uploaded workbook. Form fields "rates" and "options" hold
// boq.Rates and boq.Options as JSON.
func (h *Handler) BOQ(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	var in boq.Input
	if raw := r.FormValue("rates"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &in.Rates); err != nil {
			http.Error(w, "Invalid rates", http.StatusBadRequest)
			return
		}
	}
	if raw := r.FormValue("options"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &in.Options); err != nil {
			http.Error(w, "Invalid options", http.StatusBadRequest)
			return
		}
	}

	imp, err := ReadBOQ(file)
	if err != nil {
		http.Error(w, "Invalid file: "+err.Error(), http.StatusBadRequest)
		return
	}
	in.Items = imp.Items
	res, err := boq.Calculate(in)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(BOQImportResult{Count: len(imp.Items), Skipped: imp.Skipped, Result: res})
}

// Package genserver implements the reminder-generation backend: it turns
// task attributes into a short spoken phrase with tone calibrated to
// urgency and overdue status. Clients treat it as best-effort; they fall
// back to a local template when it is slow or down.
package genserver

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// handlerTimeout bounds one generation request end to end
const handlerTimeout = 5 * time.Second

type reminderRequest struct {
	BoardName string `json:"boardName"`
	TaskName  string `json:"taskName"`
	Priority  string `json:"priority"`
	IsOverdue bool   `json:"isOverdue"`
}

type reminderResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewRouter builds the HTTP handler
func NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handlerTimeout))

	r.Post("/api/reminder", handleReminder)
	r.Get("/api/health", handleHealth)

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleReminder(w http.ResponseWriter, r *http.Request) {
	var req reminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if req.TaskName == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "taskName is required"})
		return
	}

	writeJSON(w, http.StatusOK, reminderResponse{Message: Compose(req.BoardName, req.TaskName, req.Priority, req.IsOverdue)})
}

// Compose builds the reminder phrase. The choice within a tone pool is
// derived from the task attributes, so the same task always gets the
// same phrasing.
func Compose(boardName, taskName, priority string, overdue bool) string {
	var pool []string
	switch {
	case overdue:
		pool = []string{
			"%sの期限が過ぎています！今すぐ対応してください！",
			"%sはもう期限切れですよ！急いでください！",
		}
	case priority == "critical":
		pool = []string{
			"緊急タスク%sが残っていますよ！",
			"%sは最優先です。今日中にお願いします！",
		}
	default:
		pool = []string{
			"%sが今日期限です。確認してください！",
			"タスク%sをお忘れなく。今日が期限ですよ！",
		}
	}

	var subject string
	if boardName != "" {
		subject = fmt.Sprintf("「%s」の「%s」", boardName, taskName)
	} else {
		subject = fmt.Sprintf("「%s」", taskName)
	}

	h := fnv.New32a()
	h.Write([]byte(boardName + "\x00" + taskName))
	phrase := pool[h.Sum32()%uint32(len(pool))]

	return fmt.Sprintf(phrase, subject)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

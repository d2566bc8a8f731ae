package chi

import (
	"encoding/json"
	"net/http"

	"github.com/marcelsud/approval-relay/document"
	"github.com/marcelsud/approval-relay/trigger"
)

/* The host's lifecycle hook posts the in-flight document plus the persisted
 * state prior to the current save ("previous"). The handler always answers
 * 202 for well-formed requests: whether a dispatch happened is invisible to
 * the host, and nothing the detector does may fail the host's save
 */

type hookSnapshot struct {
	Doctype        string `json:"doctype"`
	Name           string `json:"name"`
	Status         string `json:"status"`
	ApprovalStatus string `json:"approval_status"`
	Employee       string `json:"employee"`
	Title          string `json:"title"`
	FromDate       string `json:"from_date"`
	Explanation    string `json:"explanation"`
}

type hookDocument struct {
	hookSnapshot
	IsNew     bool `json:"is_new"`
	Docstatus int  `json:"docstatus"`
}

type hookEventRequest struct {
	Event    string        `json:"event"`
	Doc      hookDocument  `json:"doc"`
	Previous *hookSnapshot `json:"previous"`
}

func (s hookSnapshot) toSnapshot() document.Snapshot {
	return document.Snapshot{
		Kind:           document.NewKind(s.Doctype),
		Name:           s.Name,
		Status:         s.Status,
		ApprovalStatus: s.ApprovalStatus,
		Employee:       s.Employee,
		Title:          s.Title,
		FromDate:       s.FromDate,
		Explanation:    s.Explanation,
	}
}

func (r hookEventRequest) toDocument() document.Document {
	doc := document.Document{
		Snapshot:  r.Doc.toSnapshot(),
		IsNew:     r.Doc.IsNew,
		Docstatus: document.Docstatus(r.Doc.Docstatus),
	}
	if r.Previous != nil {
		before := r.Previous.toSnapshot()
		doc.Before = &before
	}
	return doc
}

func postHookEvent(detector trigger.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req hookEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.Event == "" || req.Doc.Doctype == "" || req.Doc.Name == "" {
			http.Error(w, `{"error":"event, doc.doctype and doc.name are required"}`, http.StatusBadRequest)
			return
		}

		detector.HandleEvent(r.Context(), req.toDocument(), req.Event)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte(`{"status":"accepted"}`))
	})
}

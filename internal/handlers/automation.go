package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"sellerdesk/internal/models"
	"sellerdesk/internal/workflow"
)

type AutomationHandler struct {
	*Base
}

const workflowDraftKey = "workflow_draft"

// editor loads the in-progress block sequence. The draft lives in the
// operator's session so edits survive navigation until saved; absent a
// draft the saved workflow is fetched, and a seller who never customized
// one starts from the default sequence.
func (h *AutomationHandler) editor(w http.ResponseWriter, r *http.Request) (*workflow.Editor, error) {
	session := h.session(r)
	if draft, ok := session.Values[workflowDraftKey].([]string); ok {
		return workflow.NewEditor(draft), nil
	}

	wf, err := h.apiFor(r).GetWorkflow(r.Context())
	if err != nil {
		return nil, err
	}
	if len(wf.Blocks) == 0 {
		return workflow.NewEditor(workflow.DefaultSequence()), nil
	}
	return workflow.NewEditor(wf.Blocks), nil
}

func (h *AutomationHandler) saveDraft(w http.ResponseWriter, r *http.Request, ed *workflow.Editor) {
	session := h.session(r)
	session.Values[workflowDraftKey] = ed.Blocks()
	if err := session.Save(r, w); err != nil {
		slog.Error("Failed to save workflow draft", "error", err)
	}
}

func (h *AutomationHandler) clearDraft(w http.ResponseWriter, r *http.Request) {
	session := h.session(r)
	delete(session.Values, workflowDraftKey)
	session.Save(r, w)
}

type blockView struct {
	Index int
	Info  workflow.BlockInfo
}

func (h *AutomationHandler) Automation(w http.ResponseWriter, r *http.Request) {
	ed, err := h.editor(w, r)
	if err != nil {
		h.flashError(w, r, err, "Could not load workflow.", "/")
		return
	}

	blocks := ed.Blocks()
	views := make([]blockView, len(blocks))
	for i, id := range blocks {
		views[i] = blockView{Index: i, Info: workflow.Lookup(id)}
	}

	var available []workflow.BlockInfo
	for _, info := range workflow.Catalog() {
		if !contains(blocks, info.ID) {
			available = append(available, info)
		}
	}

	h.render(w, r, "automation.html", map[string]interface{}{
		"Blocks":    views,
		"Available": available,
		"LastIndex": len(views) - 1,
	})
}

func (h *AutomationHandler) AddBlock(w http.ResponseWriter, r *http.Request) {
	ed, err := h.editor(w, r)
	if err != nil {
		h.flashError(w, r, err, "Could not load workflow.", "/automation")
		return
	}
	ed.Add(r.FormValue("block"))
	h.saveDraft(w, r, ed)
	http.Redirect(w, r, "/automation", http.StatusSeeOther)
}

func (h *AutomationHandler) RemoveBlock(w http.ResponseWriter, r *http.Request) {
	ed, err := h.editor(w, r)
	if err != nil {
		h.flashError(w, r, err, "Could not load workflow.", "/automation")
		return
	}
	if i, err := strconv.Atoi(r.FormValue("index")); err == nil {
		ed.Remove(i)
	}
	h.saveDraft(w, r, ed)
	http.Redirect(w, r, "/automation", http.StatusSeeOther)
}

func (h *AutomationHandler) MoveBlock(w http.ResponseWriter, r *http.Request) {
	ed, err := h.editor(w, r)
	if err != nil {
		h.flashError(w, r, err, "Could not load workflow.", "/automation")
		return
	}
	from, errFrom := strconv.Atoi(r.FormValue("from"))
	to, errTo := strconv.Atoi(r.FormValue("to"))
	if errFrom == nil && errTo == nil {
		ed.Move(from, to)
	}
	h.saveDraft(w, r, ed)
	http.Redirect(w, r, "/automation", http.StatusSeeOther)
}

func (h *AutomationHandler) ResetWorkflow(w http.ResponseWriter, r *http.Request) {
	ed, err := h.editor(w, r)
	if err != nil {
		h.flashError(w, r, err, "Could not load workflow.", "/automation")
		return
	}
	ed.Reset()
	h.saveDraft(w, r, ed)
	h.flashSuccess(w, r, "Workflow reset to default.", "/automation")
}

func (h *AutomationHandler) SaveWorkflow(w http.ResponseWriter, r *http.Request) {
	ed, err := h.editor(w, r)
	if err != nil {
		h.flashError(w, r, err, "Could not load workflow.", "/automation")
		return
	}

	wf := models.Workflow{Blocks: ed.Blocks()}
	if err := h.apiFor(r).SaveWorkflow(r.Context(), wf); err != nil {
		RecordWrite("workflow_save", false)
		h.flashError(w, r, err, "Error saving workflow.", "/automation")
		return
	}
	RecordWrite("workflow_save", true)
	h.clearDraft(w, r)
	h.flashSuccess(w, r, "Workflow saved.", "/automation")
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

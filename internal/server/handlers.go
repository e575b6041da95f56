package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/swissfort-mfg/entrydesk/internal/buildinfo"
	"github.com/swissfort-mfg/entrydesk/internal/entry"
	"github.com/swissfort-mfg/entrydesk/internal/export"
	"github.com/swissfort-mfg/entrydesk/internal/model"
	"github.com/swissfort-mfg/entrydesk/internal/shortcut"
	"github.com/swissfort-mfg/entrydesk/internal/workspace"
)

const ctxWorkspace = "workspace"

// incompleteWarning is shown to the clerk when a commit is refused.
const incompleteWarning = "Please fill in all fields before adding the entry."

type fieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

type sectionRequest struct {
	Section string `json:"section" binding:"required"`
}

type masterRequest struct {
	Value string `json:"value" binding:"required"`
}

func (s *Server) newWorkspace() *workspace.Workspace {
	return workspace.New(workspace.Options{
		Forms:    s.cfg.FormSpecs(),
		Catalog:  s.catalog,
		Strict:   s.cfg.Validation.Strict,
		PageSize: s.cfg.PageSize(),
	})
}

func (s *Server) landing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"business": s.cfg.Business.Name,
		"version":  buildinfo.Version,
		"api":      "/api/v1",
	})
}

func (s *Server) getMenu(c *gin.Context) {
	c.JSON(http.StatusOK, s.newWorkspace().Menu())
}

func (s *Server) createWorkspace(c *gin.Context) {
	id, h := s.workspaces.create()
	h.mu.Lock()
	defer h.mu.Unlock()
	s.log.Info("workspace created", "workspace", id, "open", s.workspaces.len())
	c.JSON(http.StatusCreated, newWorkspaceView(id, h.ws))
}

// withWorkspace resolves :ws and holds its lock for the rest of the
// request.
func (s *Server) withWorkspace(c *gin.Context) {
	h, ok := s.workspaces.get(c.Param("ws"))
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "workspace not found"})
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	c.Set(ctxWorkspace, h.ws)
	c.Next()
}

func current(c *gin.Context) *workspace.Workspace {
	return c.MustGet(ctxWorkspace).(*workspace.Workspace)
}

func (s *Server) getWorkspace(c *gin.Context) {
	c.JSON(http.StatusOK, newWorkspaceView(c.Param("ws"), current(c)))
}

func (s *Server) deleteWorkspace(c *gin.Context) {
	current(c).Unmount()
	s.workspaces.remove(c.Param("ws"))
	c.Status(http.StatusNoContent)
}

func (s *Server) handleKey(c *gin.Context) {
	var k shortcut.Key
	if err := c.ShouldBindJSON(&k); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ws := current(c)
	a, err := ws.HandleKey(k)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"action":    a,
		"workspace": newWorkspaceView(c.Param("ws"), ws),
	})
}

func (s *Server) setSection(c *gin.Context) {
	var req sectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ws := current(c)
	if err := ws.SetSection(model.Section(req.Section)); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newWorkspaceView(c.Param("ws"), ws))
}

func (s *Server) selectMaster(c *gin.Context) {
	var req masterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ws := current(c)
	if err := ws.SelectMaster(req.Value); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newWorkspaceView(c.Param("ws"), ws))
}

func (s *Server) getActivity(c *gin.Context) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)
	if err := current(c).Activity().WriteCSV(c.Writer); err != nil {
		_ = c.Error(err)
	}
}

func (s *Server) openForm(c *gin.Context) {
	sess, err := current(c).OpenForm(model.FormKind(c.Param("form")))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newSessionView(sess, s.formatter))
}

func (s *Server) closeForm(c *gin.Context) {
	ws := current(c)
	if err := ws.CloseForm(model.FormKind(c.Param("form"))); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newWorkspaceView(c.Param("ws"), ws))
}

func (s *Server) activateForm(c *gin.Context) {
	ws := current(c)
	if err := ws.Activate(model.FormKind(c.Param("form"))); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newWorkspaceView(c.Param("ws"), ws))
}

func (s *Server) session(c *gin.Context) (*entry.Session, bool) {
	sess, err := current(c).Session(model.FormKind(c.Param("form")))
	if err != nil {
		s.fail(c, err)
		return nil, false
	}
	return sess, true
}

func (s *Server) getForm(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newSessionView(sess, s.formatter))
}

func (s *Server) editDraft(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	var req fieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	draft, err := sess.EditDraftField(model.Field(req.Field), req.Value)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": s.formatter.Map(draft)})
}

func (s *Server) editHeader(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	var req fieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h, err := sess.SetHeaderField(model.HeaderField(req.Field), req.Value)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"header": newHeaderView(h)})
}

func (s *Server) commit(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	row, err := sess.CommitDraft()
	var incomplete *entry.IncompleteError
	if errors.As(err, &incomplete) {
		problems := make([]gin.H, len(incomplete.Problems))
		for i, p := range incomplete.Problems {
			problems[i] = gin.H{"field": p.Field, "reason": p.Reason}
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":    incomplete.Error(),
			"warning":  incompleteWarning,
			"problems": problems,
		})
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"row":     s.formatter.Map(row),
		"session": newSessionView(sess, s.formatter),
	})
}

func (s *Server) removeRow(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	removed := sess.RemoveRow(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{
		"removed": removed,
		"view":    newPageView(sess.View(), s.formatter),
	})
}

// queryRows applies the search, sort and page query parameters that are
// present and returns the resulting page.
func (s *Server) queryRows(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	st := sess.ViewState()

	search, hasSearch := c.GetQuery("search")
	column, hasColumn := c.GetQuery("column")
	if hasSearch || hasColumn {
		if !hasSearch {
			search = st.Search
		}
		if !hasColumn {
			column = st.Column
		}
		sess.SetSearch(search, column)
	}

	key, hasKey := c.GetQuery("sort")
	dir, hasDir := c.GetQuery("dir")
	if hasKey || hasDir {
		if !hasKey {
			key = st.SortKey
		}
		if !hasDir {
			dir = string(st.SortDir)
		}
		sess.SetSort(key, entry.SortDir(dir))
	}

	if raw, ok := c.GetQuery("page"); ok {
		page, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid page %q", raw)})
			return
		}
		sess.SetPage(page)
	}

	c.JSON(http.StatusOK, newPageView(sess.View(), s.formatter))
}

func (s *Server) exportRows(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	e := s.exporters.Get(c.Param("format"))
	if e == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   fmt.Sprintf("unknown export format %q", c.Param("format")),
			"formats": s.exporters.Formats(),
		})
		return
	}

	form := sess.Form()
	c.Header("Content-Type", e.ContentType())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", string(form.Kind)+e.Extension()))
	c.Status(http.StatusOK)
	err := e.Export(c.Writer, export.Sheet{
		Title:     form.Label,
		Header:    sess.Header(),
		Rows:      sess.Rows(),
		Formatter: s.formatter,
	})
	if err != nil {
		_ = c.Error(err)
	}
}

// fail maps domain errors onto HTTP statuses.
func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, workspace.ErrUnknownForm),
		errors.Is(err, workspace.ErrFormNotOpen),
		errors.Is(err, workspace.ErrUnknownMasterOption):
		status = http.StatusNotFound
	case errors.Is(err, workspace.ErrUnknownSection),
		errors.Is(err, entry.ErrReadOnlyField),
		errors.Is(err, entry.ErrUnknownHeaderField):
		status = http.StatusBadRequest
	case errors.Is(err, entry.ErrIncompleteEntry):
		status = http.StatusUnprocessableEntity
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": err.Error()})
}

package v1

import (
	"net/http"

	"go-interview-portal/internal/delivery/http/response"
	"go-interview-portal/internal/domain"
	"go-interview-portal/internal/flow"

	"github.com/gin-gonic/gin"
)

type InterviewHandler struct {
	sessions *flow.Manager
	resolver domain.IdentityResolver
}

func NewInterviewHandler(r *gin.RouterGroup, sessions *flow.Manager, resolver domain.IdentityResolver) {
	handler := &InterviewHandler{sessions: sessions, resolver: resolver}

	interview := r.Group("/interview")
	{
		interview.GET("", handler.GetState)
		interview.PUT("/answers", handler.FieldEdit)
		interview.POST("/navigate", handler.Navigate)
		interview.POST("/submit", handler.Submit)
		interview.POST("/close", handler.CloseSession)
	}
}

// identify resolves the actor for this request: the authenticated session if
// the optional auth middleware set one, else the invitation token from the
// URL.
func (h *InterviewHandler) identify(c *gin.Context) (domain.Identifier, error) {
	var session *domain.AuthSession
	if userID := c.GetString(string(domain.KeyUserID)); userID != "" {
		session = &domain.AuthSession{
			UserID: userID,
			Email:  c.GetString(string(domain.KeyUserEmail)),
		}
	}
	return h.resolver.Resolve(c.Request.Context(), session, c.Query("token"))
}

// InterviewState is the wizard view returned to the client.
type InterviewState struct {
	Identifier  domain.Identifier       `json:"identifier"`
	CurrentStep int                     `json:"current_step"`
	Status      domain.SubmissionStatus `json:"status"`
	Completion  float64                 `json:"completion"`
	Answers     domain.AnswerSet        `json:"answers"`
}

// GetState godoc
// @Summary      Get interview state
// @Description  Current step, status, completion and all saved answers for the current candidate
// @Tags         interview
// @Produce      json
// @Param        token  query  string  false  "Invitation token for anonymous candidates"
// @Success      200  {object}  response.Response{data=InterviewState}
// @Failure      401  {object}  response.Response
// @Router       /interview [get]
func (h *InterviewHandler) GetState(c *gin.Context) {
	id, err := h.identify(c)
	if err != nil {
		c.Error(err)
		return
	}

	ctrl, err := h.sessions.Acquire(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Interview state", InterviewState{
		Identifier:  id,
		CurrentStep: ctrl.Step(),
		Status:      ctrl.Status(),
		Completion:  ctrl.Completion(),
		Answers:     ctrl.Answers(),
	})
}

type fieldEditRequest struct {
	Section     domain.Section     `json:"section" binding:"required"`
	QuestionKey string             `json:"question_key" binding:"required"`
	Value       domain.AnswerValue `json:"value" binding:"required"`
}

// FieldEdit godoc
// @Summary      Record a field edit
// @Description  Updates the in-memory value immediately and schedules a debounced persist
// @Tags         interview
// @Accept       json
// @Produce      json
// @Param        token    query  string            false  "Invitation token for anonymous candidates"
// @Param        request  body   fieldEditRequest  true   "Field edit"
// @Success      202  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /interview/answers [put]
func (h *InterviewHandler) FieldEdit(c *gin.Context) {
	id, err := h.identify(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req fieldEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	ctrl, err := h.sessions.Acquire(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	if err := ctrl.FieldEdit(req.Section, req.QuestionKey, req.Value); err != nil {
		c.Error(err)
		return
	}

	// Accepted, not OK: the write lands after the debounce window.
	response.Success(c, http.StatusAccepted, "Answer recorded", nil)
}

type navigateRequest struct {
	Action string `json:"action" binding:"required,oneof=next previous jump"`
	Step   int    `json:"step"`
}

// Navigate godoc
// @Summary      Move through the wizard
// @Description  next/previous move one step with boundary no-ops; jump goes directly to any step
// @Tags         interview
// @Accept       json
// @Produce      json
// @Param        token    query  string           false  "Invitation token for anonymous candidates"
// @Param        request  body   navigateRequest  true   "Navigation action"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /interview/navigate [post]
func (h *InterviewHandler) Navigate(c *gin.Context) {
	id, err := h.identify(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req navigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	ctrl, err := h.sessions.Acquire(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	var step int
	switch req.Action {
	case "next":
		step, err = ctrl.Next(c.Request.Context())
	case "previous":
		step, err = ctrl.Previous(c.Request.Context())
	case "jump":
		step, err = ctrl.JumpTo(c.Request.Context(), req.Step)
	}
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Step updated", gin.H{"current_step": step})
}

type submitRequest struct {
	Confirmed bool `json:"confirmed"`
}

// Submit godoc
// @Summary      Submit the interview
// @Description  Runs the completion gate; on permit the submission becomes final
// @Tags         interview
// @Accept       json
// @Produce      json
// @Param        token    query  string         false  "Invitation token for anonymous candidates"
// @Param        request  body   submitRequest  true   "Confirmation flag"
// @Success      200  {object}  response.Response{data=flow.Decision}
// @Failure      401  {object}  response.Response
// @Router       /interview/submit [post]
func (h *InterviewHandler) Submit(c *gin.Context) {
	id, err := h.identify(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	ctrl, err := h.sessions.Acquire(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	decision, err := ctrl.Submit(c.Request.Context(), req.Confirmed)
	if err != nil {
		c.Error(err)
		return
	}

	if !decision.Allowed {
		// A denial is a UI-level message, not an error
		response.Success(c, http.StatusOK, "Submission requirements not met", decision)
		return
	}
	response.Success(c, http.StatusOK, "Interview submitted", decision)
}

// CloseSession godoc
// @Summary      Tear down the interview session
// @Description  Flushes pending debounced writes; called on sign-out
// @Tags         interview
// @Produce      json
// @Param        token  query  string  false  "Invitation token for anonymous candidates"
// @Success      200  {object}  response.Response
// @Router       /interview/close [post]
func (h *InterviewHandler) CloseSession(c *gin.Context) {
	id, err := h.identify(c)
	if err != nil {
		c.Error(err)
		return
	}

	h.sessions.Release(id)
	response.Success(c, http.StatusOK, "Session closed", nil)
}

package v1

import (
	"net/http"

	"go-interview-portal/internal/delivery/http/response"
	"go-interview-portal/internal/domain"
	"go-interview-portal/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	rosterUC domain.RosterUsecase
	ratingUC usecase.RatingUsecase
	exportUC domain.ExportUsecase
}

func NewAdminHandler(r *gin.RouterGroup, rosterUC domain.RosterUsecase, ratingUC usecase.RatingUsecase, exportUC domain.ExportUsecase) {
	handler := &AdminHandler{rosterUC: rosterUC, ratingUC: ratingUC, exportUC: exportUC}

	admin := r.Group("/admin")
	{
		admin.GET("/roster", handler.GetRoster)
		admin.POST("/candidates/delete", handler.DeleteCandidate)
		admin.GET("/candidates/:key/ratings", handler.ListRatings)
		admin.POST("/candidates/:key/ratings", handler.AddRating)
		admin.GET("/candidates/export", handler.ExportCandidate)
	}
}

// GetRoster godoc
// @Summary      Get the candidate roster
// @Description  Deduplicated merge of accounts, invitations and progress; partial-source failures surface as warnings
// @Tags         admin
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.RosterResult}
// @Failure      403  {object}  response.Response
// @Router       /admin/roster [get]
// @Security     BearerAuth
func (h *AdminHandler) GetRoster(c *gin.Context) {
	result, err := h.rosterUC.BuildRoster(c)
	if err != nil {
		c.Error(err)
		return
	}

	message := "Candidate roster"
	if len(result.Warnings) > 0 {
		message = "Candidate roster (partial)"
	}
	response.Success(c, http.StatusOK, message, result)
}

type deleteCandidateRequest struct {
	Kind         domain.RosterRowKind `json:"kind" binding:"required,oneof=account invitation"`
	AccountID    string               `json:"account_id"`
	InvitationID int64                `json:"invitation_id"`
	Email        string               `json:"email"`
}

// DeleteCandidate godoc
// @Summary      Delete a roster row
// @Description  Branches on row kind: account rows drop all candidate data, invitation rows revoke the invitation
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body  deleteCandidateRequest  true  "Roster row reference"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /admin/candidates/delete [post]
// @Security     BearerAuth
func (h *AdminHandler) DeleteCandidate(c *gin.Context) {
	var req deleteCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	err := h.rosterUC.DeleteCandidate(c, domain.RosterEntry{
		Kind:         req.Kind,
		AccountID:    req.AccountID,
		InvitationID: req.InvitationID,
		Email:        req.Email,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidate deleted", nil)
}

type addRatingRequest struct {
	Section domain.Section `json:"section"`
	Score   int            `json:"score" binding:"required,min=1,max=5"`
	Note    string         `json:"note" binding:"max=2000"`
}

// AddRating godoc
// @Summary      Rate a candidate
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        key      path  string            true  "Candidate identifier key"
// @Param        request  body  addRatingRequest  true  "Rating"
// @Success      201  {object}  response.Response{data=domain.RatingNote}
// @Failure      400  {object}  response.Response
// @Router       /admin/candidates/{key}/ratings [post]
// @Security     BearerAuth
func (h *AdminHandler) AddRating(c *gin.Context) {
	var req addRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	note := &domain.RatingNote{
		CandidateKey: c.Param("key"),
		Section:      req.Section,
		Score:        req.Score,
		Note:         req.Note,
	}
	if err := h.ratingUC.AddRating(c, note); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Rating added", note)
}

// ListRatings godoc
// @Summary      List a candidate's ratings
// @Tags         admin
// @Produce      json
// @Param        key  path  string  true  "Candidate identifier key"
// @Success      200  {object}  response.Response{data=[]domain.RatingNote}
// @Router       /admin/candidates/{key}/ratings [get]
// @Security     BearerAuth
func (h *AdminHandler) ListRatings(c *gin.Context) {
	ratings, err := h.ratingUC.ListRatings(c, c.Param("key"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Ratings", ratings)
}

// ExportCandidate godoc
// @Summary      Export a candidate
// @Description  Structured document with identity, section answers, ratings and averaged score
// @Tags         admin
// @Produce      json
// @Param        user_id  query  string  false  "Account user id"
// @Param        email    query  string  false  "Anonymous candidate email"
// @Success      200  {object}  response.Response{data=domain.CandidateExport}
// @Failure      400  {object}  response.Response
// @Router       /admin/candidates/export [get]
// @Security     BearerAuth
func (h *AdminHandler) ExportCandidate(c *gin.Context) {
	var id domain.Identifier
	switch {
	case c.Query("user_id") != "":
		id = domain.AccountIdentifier(c.Query("user_id"))
	case c.Query("email") != "":
		id = domain.AnonymousIdentifier(c.Query("email"))
	default:
		response.Error(c, http.StatusBadRequest, "Provide user_id or email", nil)
		return
	}

	export, err := h.exportUC.ExportCandidate(c, id)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="candidate-export.json"`)
	response.Success(c, http.StatusOK, "Candidate export", export)
}

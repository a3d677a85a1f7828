package v1

import (
	"net/http"
	"strconv"

	"go-interview-portal/internal/delivery/http/middleware"
	"go-interview-portal/internal/delivery/http/response"
	"go-interview-portal/internal/domain"

	"github.com/gin-gonic/gin"
)

type InvitationHandler struct {
	invitationUC domain.InvitationUsecase
}

// NewInvitationHandler registers the admin invitation routes on the protected
// group and the public token-validation route on the open group.
func NewInvitationHandler(public *gin.RouterGroup, admin *gin.RouterGroup, invitationUC domain.InvitationUsecase) {
	handler := &InvitationHandler{invitationUC: invitationUC}

	public.GET("/invitations/validate", handler.ValidateToken)

	invitations := admin.Group("/admin/invitations")
	{
		invitations.POST("", middleware.RateLimitMiddleware(middleware.InviteRateLimitConfig()), handler.Invite)
		invitations.GET("", handler.List)
		invitations.POST("/:id/resend", middleware.RateLimitMiddleware(middleware.InviteRateLimitConfig()), handler.Resend)
		invitations.DELETE("/:id", handler.Delete)
	}
}

type inviteRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required,min=2,max=100"`
}

// Invite godoc
// @Summary      Invite a candidate
// @Description  Persists the invitation and sends the interview link by email; email failure is reported, not fatal
// @Tags         invitations
// @Accept       json
// @Produce      json
// @Param        request  body  inviteRequest  true  "Candidate"
// @Success      201  {object}  response.Response{data=domain.InviteResult}
// @Failure      409  {object}  response.Response
// @Router       /admin/invitations [post]
// @Security     BearerAuth
func (h *InvitationHandler) Invite(c *gin.Context) {
	var req inviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	result, err := h.invitationUC.InviteCandidate(c, req.Email, req.Name)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Invitation created", result)
}

// List godoc
// @Summary      List invitations
// @Tags         invitations
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Invitation}
// @Router       /admin/invitations [get]
// @Security     BearerAuth
func (h *InvitationHandler) List(c *gin.Context) {
	invitations, err := h.invitationUC.ListInvitations(c)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Invitations", invitations)
}

// Resend godoc
// @Summary      Resend an invitation email
// @Tags         invitations
// @Produce      json
// @Param        id  path  int  true  "Invitation ID"
// @Success      200  {object}  response.Response{data=domain.InviteResult}
// @Failure      404  {object}  response.Response
// @Router       /admin/invitations/{id}/resend [post]
// @Security     BearerAuth
func (h *InvitationHandler) Resend(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid invitation id", nil)
		return
	}

	result, err := h.invitationUC.ResendInvitation(c, id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Invitation resent", result)
}

// Delete godoc
// @Summary      Delete an invitation
// @Tags         invitations
// @Produce      json
// @Param        id  path  int  true  "Invitation ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/invitations/{id} [delete]
// @Security     BearerAuth
func (h *InvitationHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid invitation id", nil)
		return
	}

	if err := h.invitationUC.DeleteInvitation(c, id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Invitation deleted", nil)
}

// ValidateToken godoc
// @Summary      Validate an invitation token
// @Description  Lets the frontend greet an invited candidate by name before they start
// @Tags         invitations
// @Produce      json
// @Param        token  query  string  true  "Invitation token"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /invitations/validate [get]
func (h *InvitationHandler) ValidateToken(c *gin.Context) {
	inv, err := h.invitationUC.ResolveToken(c, c.Query("token"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Invitation valid", gin.H{
		"candidate_email": inv.CandidateEmail,
		"candidate_name":  inv.CandidateName,
		"expires_at":      inv.ExpiresAt,
	})
}

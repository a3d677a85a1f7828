package v1

import (
	"net/http"

	"go-interview-portal/internal/delivery/http/response"
	"go-interview-portal/internal/domain"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

func NewAuthHandler(r *gin.RouterGroup, authUC domain.AuthUsecase) {
	handler := &AuthHandler{authUC: authUC}

	auth := r.Group("/auth")
	{
		auth.GET("/me", handler.Me)
		auth.POST("/roles", handler.AssignRole)
	}
}

// Me godoc
// @Summary      Get the current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.User}
// @Failure      401  {object}  response.Response
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	user, err := h.authUC.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Current user", user)
}

type assignRoleRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required,oneof=candidate admin"`
}

// AssignRole godoc
// @Summary      Assign a role to a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body  assignRoleRequest  true  "Role assignment"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /auth/roles [post]
// @Security     BearerAuth
func (h *AuthHandler) AssignRole(c *gin.Context) {
	var req assignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if err := h.authUC.AssignRole(c, req.UserID, req.Role); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Role assigned", nil)
}

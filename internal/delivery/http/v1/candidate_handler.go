package v1

import (
	"net/http"

	"go-interview-portal/internal/delivery/http/response"
	"go-interview-portal/internal/domain"

	"github.com/gin-gonic/gin"
)

type CandidateHandler struct {
	candidateUC domain.CandidateUsecase
}

func NewCandidateHandler(r *gin.RouterGroup, candidateUC domain.CandidateUsecase) {
	handler := &CandidateHandler{candidateUC: candidateUC}

	candidates := r.Group("/candidates")
	{
		candidates.GET("/me", handler.GetProfile)
		candidates.PUT("/me", handler.UpdateProfile)
	}
}

// GetProfile godoc
// @Summary      Get candidate profile
// @Description  Get the profile of the currently logged-in candidate
// @Tags         candidates
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.CandidateProfile}
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/me [get]
// @Security     BearerAuth
func (h *CandidateHandler) GetProfile(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	// Gin Context implements context.Context and carries the identity keys
	profile, err := h.candidateUC.GetProfile(c, userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidate profile", profile)
}

type updateProfileRequest struct {
	FullName string   `json:"full_name" binding:"required,min=2,max=100"`
	Phone    string   `json:"phone" binding:"max=32"`
	Skills   []string `json:"skills" binding:"max=50"`
}

// UpdateProfile godoc
// @Summary      Update candidate profile
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        request  body  updateProfileRequest  true  "Profile"
// @Success      200  {object}  response.Response{data=domain.CandidateProfile}
// @Failure      400  {object}  response.Response
// @Router       /candidates/me [put]
// @Security     BearerAuth
func (h *CandidateHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	profile := &domain.CandidateProfile{
		FullName: req.FullName,
		Phone:    req.Phone,
		Skills:   req.Skills,
	}
	if err := h.candidateUC.UpdateProfile(c, profile); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated", profile)
}

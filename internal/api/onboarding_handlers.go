package api

import (
	"net/http"

	"github.com/MyelinBots/connectmap-go/internal/services/onboarding"
	"github.com/MyelinBots/connectmap-go/internal/services/tasteprofile"
	"github.com/gin-gonic/gin"
)

type onboardingRequest struct {
	onboarding.Identity
	Responses tasteprofile.OnboardingResponses `json:"responses"`
}

func (h *Handler) getCatalogue(c *gin.Context) {
	c.JSON(http.StatusOK, tasteprofile.GetCatalogue())
}

func (h *Handler) getPersonas(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"personas": tasteprofile.AllDefinitions()})
}

// previewOnboarding runs the deterministic computation without saving.
func (h *Handler) previewOnboarding(c *gin.Context) {
	var r tasteprofile.OnboardingResponses
	if err := c.ShouldBindJSON(&r); err != nil {
		h.badRequest(c, err)
		return
	}
	if err := r.Validate(); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.onboarding.Recompute(r))
}

func (h *Handler) getOnboardingStatus(c *gin.Context) {
	done, err := h.onboarding.Status(c.Request.Context(), currentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hasCompletedOnboarding": done})
}

func (h *Handler) submitOnboarding(c *gin.Context) {
	var body onboardingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, err)
		return
	}
	out, err := h.onboarding.Submit(c.Request.Context(), currentUser(c), body.Identity, body.Responses)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *Handler) getMyTasteProfile(c *gin.Context) {
	view, err := h.onboarding.GetTasteProfile(c.Request.Context(), currentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

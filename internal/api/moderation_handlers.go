package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/MyelinBots/connectmap-go/internal/db/repositories/category"
	"github.com/MyelinBots/connectmap-go/internal/services/moderation"
	"github.com/MyelinBots/connectmap-go/internal/services/xp"
	"github.com/gin-gonic/gin"
)

type rejectBody struct {
	Notes string `json:"notes"`
}

func (h *Handler) submitPlace(c *gin.Context) {
	var body moderation.SubmissionInput
	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, err)
		return
	}
	sub, err := h.moderation.Submit(c.Request.Context(), currentUser(c), body)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

func (h *Handler) getMySubmissions(c *gin.Context) {
	list, err := h.moderation.MySubmissions(c.Request.Context(), currentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"submissions": list})
}

func (h *Handler) listPendingSubmissions(c *gin.Context) {
	list, err := h.moderation.ListPending(c.Request.Context(), currentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"submissions": list})
}

func (h *Handler) approveSubmission(c *gin.Context) {
	res, err := h.moderation.Approve(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.observeXP(xp.Explorer, xp.RewardNewPlace, res.XP)
	c.JSON(http.StatusOK, res)
}

func (h *Handler) rejectSubmission(c *gin.Context) {
	var body rejectBody
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		h.badRequest(c, err)
		return
	}
	if err := h.moderation.Reject(c.Request.Context(), currentUser(c), c.Param("id"), body.Notes); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "rejected"})
}

func (h *Handler) listAdmins(c *gin.Context) {
	list, err := h.moderation.ListAdmins(c.Request.Context(), currentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"admins": list})
}

func (h *Handler) grantAdmin(c *gin.Context) {
	if err := h.moderation.GrantAdmin(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) revokeAdmin(c *gin.Context) {
	if err := h.moderation.RevokeAdmin(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) createCategory(c *gin.Context) {
	var body category.Category
	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, err)
		return
	}
	if err := h.moderation.CreateCategory(c.Request.Context(), currentUser(c), &body); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, body)
}

func (h *Handler) deleteCategory(c *gin.Context) {
	if err := h.moderation.DeleteCategory(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

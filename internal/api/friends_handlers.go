package api

import (
	"net/http"

	"github.com/MyelinBots/connectmap-go/internal/services/xp"
	"github.com/gin-gonic/gin"
)

type friendRequestBody struct {
	ToUserID string `json:"toUserId" binding:"required"`
}

func (h *Handler) listFriends(c *gin.Context) {
	list, err := h.friends.ListFriends(c.Request.Context(), currentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"friends": list})
}

func (h *Handler) removeFriend(c *gin.Context) {
	if err := h.friends.Remove(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) mutualSaves(c *gin.Context) {
	list, err := h.friends.MutualSaves(c.Request.Context(), currentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mutualSaves": list})
}

func (h *Handler) incomingRequests(c *gin.Context) {
	list, err := h.friends.Incoming(c.Request.Context(), currentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": list})
}

func (h *Handler) outgoingRequests(c *gin.Context) {
	list, err := h.friends.Outgoing(c.Request.Context(), currentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": list})
}

func (h *Handler) sendFriendRequest(c *gin.Context) {
	var body friendRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, err)
		return
	}
	req, err := h.friends.SendRequest(c.Request.Context(), currentUser(c), body.ToUserID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

func (h *Handler) acceptFriendRequest(c *gin.Context) {
	if err := h.friends.Accept(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	// both sides earn friend xp
	h.metrics.ObserveXP(string(xp.Social), 2*xp.RewardFriend)
	c.JSON(http.StatusOK, gin.H{"status": "accepted"})
}

func (h *Handler) rejectFriendRequest(c *gin.Context) {
	if err := h.friends.Reject(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "rejected"})
}

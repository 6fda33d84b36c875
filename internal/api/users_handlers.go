package api

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"

	"github.com/MyelinBots/connectmap-go/internal/errs"
	"github.com/MyelinBots/connectmap-go/internal/services/users"
	"github.com/MyelinBots/connectmap-go/internal/services/xp"
	"github.com/gin-gonic/gin"
)

func (h *Handler) getMe(c *gin.Context) {
	summary, err := h.users.GetSummary(c.Request.Context(), currentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) updateMe(c *gin.Context) {
	var body users.Update
	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, err)
		return
	}
	p, err := h.users.UpdateProfile(c.Request.Context(), currentUser(c), body)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) searchUsers(c *gin.Context) {
	found, err := h.users.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": found})
}

// getUser shows a profile to its owner, friends, or anyone when public.
// Only the owner gets the full row.
func (h *Handler) getUser(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	p, err := h.users.GetProfile(ctx, id)
	if err != nil {
		h.fail(c, err)
		return
	}

	viewer := currentUser(c)
	if viewer != id && (!p.PublicProfile || p.AnonymousMode) {
		private := fmt.Errorf("%w: profile is private", errs.ErrForbidden)
		if viewer == "" {
			h.fail(c, private)
			return
		}
		friendIDs, err := h.friends.FriendIDs(ctx, viewer)
		if err != nil {
			h.fail(c, err)
			return
		}
		if !slices.Contains(friendIDs, id) {
			h.fail(c, private)
			return
		}
	}
	var profile any = p.PublicView()
	if viewer == id {
		profile = p
	}
	c.JSON(http.StatusOK, gin.H{
		"profile":      profile,
		"achievements": xp.UserAchievements(p.Achievements),
		"progress":     xp.LevelProgress(p.XP),
	})
}

func limitParam(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.New(name + " must be a non-negative integer")
	}
	return n, nil
}

func (h *Handler) getLeaderboard(c *gin.Context) {
	limit, err := limitParam(c, "limit")
	if err != nil {
		h.badRequest(c, err)
		return
	}
	ranks, err := h.users.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": ranks, "summary": users.FormatLeaderboard(ranks)})
}

func (h *Handler) getCircleLeaderboard(c *gin.Context) {
	ctx := c.Request.Context()
	limit, err := limitParam(c, "limit")
	if err != nil {
		h.badRequest(c, err)
		return
	}
	friendIDs, err := h.friends.FriendIDs(ctx, currentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	ranks, err := h.users.CircleLeaderboard(ctx, currentUser(c), friendIDs, limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": ranks, "summary": users.FormatLeaderboard(ranks)})
}

func (h *Handler) getAchievements(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"achievements": xp.Achievements()})
}

// observeXP feeds an award into the xp counter.
func (h *Handler) observeXP(category xp.Category, amount int, res xp.Result) {
	for _, a := range res.AchievementsUnlocked {
		amount += a.XPReward
	}
	h.metrics.ObserveXP(string(category), amount)
}

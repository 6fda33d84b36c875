package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/MyelinBots/connectmap-go/internal/errs"
	"github.com/MyelinBots/connectmap-go/internal/services/geo"
	"github.com/MyelinBots/connectmap-go/internal/services/places"
	"github.com/MyelinBots/connectmap-go/internal/services/xp"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type reactionBody struct {
	Kind string `json:"kind" binding:"required"`
}

func floatParam(c *gin.Context, name string, required bool) (float64, error) {
	raw := c.Query(name)
	if raw == "" {
		if required {
			return 0, fmt.Errorf("%s is required", name)
		}
		return 0, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", name)
	}
	return f, nil
}

func pointParams(c *gin.Context) (geo.Point, error) {
	lat, err := floatParam(c, "lat", true)
	if err != nil {
		return geo.Point{}, err
	}
	lng, err := floatParam(c, "lng", true)
	if err != nil {
		return geo.Point{}, err
	}
	return geo.Point{Lat: lat, Lng: lng}, nil
}

func (h *Handler) listCategories(c *gin.Context) {
	list, err := h.places.Categories(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": list})
}

func (h *Handler) listPlaces(c *gin.Context) {
	limit, err := limitParam(c, "limit")
	if err != nil {
		h.badRequest(c, err)
		return
	}
	list, err := h.places.List(c.Request.Context(), c.Query("category"), limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"places": list})
}

func (h *Handler) nearbyPlaces(c *gin.Context) {
	center, err := pointParams(c)
	if err != nil {
		h.badRequest(c, err)
		return
	}
	radius, err := floatParam(c, "radius", false)
	if err != nil {
		h.badRequest(c, err)
		return
	}
	limit, err := limitParam(c, "limit")
	if err != nil {
		h.badRequest(c, err)
		return
	}
	list, err := h.places.Nearby(c.Request.Context(), center, radius, limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"places": list})
}

func (h *Handler) getPlace(c *gin.Context) {
	p, err := h.places.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) getDirections(c *gin.Context) {
	from, err := pointParams(c)
	if err != nil {
		h.badRequest(c, err)
		return
	}
	if !from.Valid() {
		h.fail(c, fmt.Errorf("%w: coordinates out of range", errs.ErrInvalid))
		return
	}
	p, err := h.places.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	d := geo.DistanceKm(from, geo.Point{Lat: p.Lat, Lng: p.Lng})
	c.JSON(http.StatusOK, gin.H{
		"placeId":    p.ID,
		"distanceKm": d,
		"distance":   geo.FormatDistance(d),
		"duration":   geo.EstimateDuration(d),
	})
}

func (h *Handler) react(c *gin.Context) {
	var body reactionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, err)
		return
	}
	if err := h.places.React(c.Request.Context(), c.Param("id"), body.Kind); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) toggleSave(c *gin.Context) {
	res, err := h.places.ToggleSave(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if res.XP != nil {
		h.observeXP(xp.Foodie, xp.RewardSavePlace, *res.XP)
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) getSaveStatus(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	saved, err := h.places.IsSaved(ctx, currentUser(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	n, err := h.places.SaveCount(ctx, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": saved, "saveCount": n})
}

func (h *Handler) getSavedPlaces(c *gin.Context) {
	list, err := h.places.SavedPlaces(c.Request.Context(), currentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"places": list})
}

func (h *Handler) markGoing(c *gin.Context) {
	// an empty body means going, friends only, no date
	var body places.GoingInput
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		h.badRequest(c, err)
		return
	}
	a, err := h.places.MarkGoing(c.Request.Context(), currentUser(c), c.Param("id"), body)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.refreshStats(c, a.PlaceID)
	c.JSON(http.StatusOK, a)
}

func (h *Handler) cancelGoing(c *gin.Context) {
	id := c.Param("id")
	if err := h.places.CancelGoing(c.Request.Context(), currentUser(c), id); err != nil {
		h.fail(c, err)
		return
	}
	h.refreshStats(c, id)
	c.Status(http.StatusNoContent)
}

// refreshStats keeps the attendance snapshot current after a change.
func (h *Handler) refreshStats(c *gin.Context, placeID string) {
	if _, err := h.stats.Refresh(c.Request.Context(), placeID); err != nil {
		h.log.Warn("attendance stats refresh failed", zap.String("place_id", placeID), zap.Error(err))
	}
}

func (h *Handler) getGoingStatus(c *gin.Context) {
	st, err := h.places.GoingStatus(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *Handler) getAttendanceStats(c *gin.Context) {
	st, err := h.stats.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *Handler) listReviews(c *gin.Context) {
	limit, err := limitParam(c, "limit")
	if err != nil {
		h.badRequest(c, err)
		return
	}
	list, err := h.places.Reviews(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": list})
}

func (h *Handler) addReview(c *gin.Context) {
	var body places.ReviewInput
	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, err)
		return
	}
	res, err := h.places.AddReview(c.Request.Context(), currentUser(c), c.Param("id"), body)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.observeXP(xp.Curator, xp.RewardReview, res.XP)
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) parseMapsLink(c *gin.Context) {
	link := c.Query("url")
	if !geo.IsGoogleMapsLink(link) {
		h.fail(c, fmt.Errorf("%w: not a Google Maps link", errs.ErrInvalid))
		return
	}
	parsed, ok := geo.ParseGoogleMapsLink(link)
	if !ok {
		h.fail(c, fmt.Errorf("%w: no coordinates in link", errs.ErrInvalid))
		return
	}
	c.JSON(http.StatusOK, parsed)
}

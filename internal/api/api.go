// Package api is the HTTP surface of connectmap.
package api

import (
	"net/http"

	"github.com/MyelinBots/connectmap-go/config"
	"github.com/MyelinBots/connectmap-go/internal/healthcheck"
	"github.com/MyelinBots/connectmap-go/internal/metrics"
	"github.com/MyelinBots/connectmap-go/internal/ratelimit"
	"github.com/MyelinBots/connectmap-go/internal/services/attendancestats"
	"github.com/MyelinBots/connectmap-go/internal/services/friends"
	"github.com/MyelinBots/connectmap-go/internal/services/moderation"
	"github.com/MyelinBots/connectmap-go/internal/services/onboarding"
	"github.com/MyelinBots/connectmap-go/internal/services/places"
	"github.com/MyelinBots/connectmap-go/internal/services/users"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Services is everything the handlers call into.
type Services struct {
	Users      users.Service
	Onboarding onboarding.Service
	Friends    friends.Service
	Places     places.Service
	Stats      attendancestats.Service
	Moderation moderation.Service
	Limiter    ratelimit.Limiter
	Metrics    *metrics.Metrics
	// Ready lists dependencies checked by /readyz.
	Ready map[string]healthcheck.Pinger
}

type Handler struct {
	users      users.Service
	onboarding onboarding.Service
	friends    friends.Service
	places     places.Service
	stats      attendancestats.Service
	moderation moderation.Service
	limiter    ratelimit.Limiter
	metrics    *metrics.Metrics
	log        *zap.Logger
}

func NewRouter(cfg config.Config, svc Services, log *zap.Logger) *gin.Engine {
	if !cfg.HTTPConfig.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	h := &Handler{
		users:      svc.Users,
		onboarding: svc.Onboarding,
		friends:    svc.Friends,
		places:     svc.Places,
		stats:      svc.Stats,
		moderation: svc.Moderation,
		limiter:    svc.Limiter,
		metrics:    svc.Metrics,
		log:        log,
	}
	if h.limiter == nil {
		h.limiter = ratelimit.Noop{}
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestID())
	engine.Use(requestLogger(log))
	engine.Use(svc.Metrics.Middleware())

	corsConfig := cors.DefaultConfig()
	if len(cfg.HTTPConfig.AllowOrigins) == 0 || cfg.HTTPConfig.AllowOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.HTTPConfig.AllowOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", HeaderUserID, HeaderUserEmail, HeaderRequestID}
	corsConfig.ExposeHeaders = []string{HeaderRequestID, "X-RateLimit-Remaining", "Retry-After"}
	engine.Use(cors.New(corsConfig))

	engine.GET("/healthz", healthcheck.LivenessHandler())
	engine.GET("/readyz", healthcheck.ReadinessHandler(cfg.AppConfig.Version, log, svc.Ready))
	if svc.Metrics != nil {
		engine.GET("/metrics", gin.WrapH(svc.Metrics.Handler()))
	}

	h.routes(engine.Group("/api/v1", h.authenticate()))

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorBody{Error: "route not found", RequestID: c.GetString(requestIDKey)})
	})
	return engine
}

func (h *Handler) routes(api *gin.RouterGroup) {
	authed := api.Group("", h.requireUser())

	// users
	me := authed.Group("/me")
	{
		me.GET("", h.getMe)
		me.PATCH("", h.updateMe)
		me.GET("/taste-profile", h.getMyTasteProfile)
		me.GET("/saved-places", h.getSavedPlaces)
		me.GET("/submissions", h.getMySubmissions)
		me.GET("/leaderboard", h.getCircleLeaderboard)
	}
	authed.GET("/users/search", h.rateLimit("search"), h.searchUsers)
	api.GET("/users/:id", h.getUser)
	api.GET("/leaderboard", h.getLeaderboard)
	api.GET("/achievements", h.getAchievements)

	// onboarding
	api.GET("/onboarding/catalogue", h.getCatalogue)
	api.GET("/onboarding/personas", h.getPersonas)
	api.POST("/onboarding/preview", h.previewOnboarding)
	authed.GET("/onboarding/status", h.getOnboardingStatus)
	authed.POST("/onboarding", h.rateLimit("onboarding"), h.submitOnboarding)

	// friends
	fr := authed.Group("/friends")
	{
		fr.GET("", h.listFriends)
		fr.DELETE("/:id", h.removeFriend)
		fr.GET("/mutual-saves", h.mutualSaves)
		fr.GET("/requests/incoming", h.incomingRequests)
		fr.GET("/requests/outgoing", h.outgoingRequests)
		fr.POST("/requests", h.rateLimit("friend-request"), h.sendFriendRequest)
		fr.POST("/requests/:id/accept", h.acceptFriendRequest)
		fr.POST("/requests/:id/reject", h.rejectFriendRequest)
	}

	// places
	api.GET("/categories", h.listCategories)
	api.GET("/places", h.listPlaces)
	api.GET("/places/nearby", h.nearbyPlaces)
	api.GET("/places/:id", h.getPlace)
	api.GET("/places/:id/reviews", h.listReviews)
	api.GET("/places/:id/attendance", h.getAttendanceStats)
	api.GET("/places/:id/going", h.getGoingStatus)
	api.GET("/places/:id/save", h.getSaveStatus)
	api.GET("/places/:id/directions", h.getDirections)
	pl := authed.Group("/places/:id")
	{
		pl.POST("/reactions", h.react)
		pl.POST("/save", h.toggleSave)
		pl.POST("/going", h.markGoing)
		pl.DELETE("/going", h.cancelGoing)
		pl.POST("/reviews", h.rateLimit("review"), h.addReview)
	}

	api.GET("/geo/parse", h.parseMapsLink)

	// moderation
	authed.POST("/submissions", h.rateLimit("submission"), h.submitPlace)
	adm := authed.Group("/admin")
	{
		adm.GET("/submissions", h.listPendingSubmissions)
		adm.POST("/submissions/:id/approve", h.approveSubmission)
		adm.POST("/submissions/:id/reject", h.rejectSubmission)
		adm.GET("/admins", h.listAdmins)
		adm.POST("/admins/:id", h.grantAdmin)
		adm.DELETE("/admins/:id", h.revokeAdmin)
		adm.POST("/categories", h.createCategory)
		adm.DELETE("/categories/:id", h.deleteCategory)
	}
}

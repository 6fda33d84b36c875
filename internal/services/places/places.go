package places

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/MyelinBots/connectmap-go/config"
	"github.com/MyelinBots/connectmap-go/internal/db"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/attendance"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/category"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/place"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/place_save"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/review"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/user_profile"
	"github.com/MyelinBots/connectmap-go/internal/errs"
	"github.com/MyelinBots/connectmap-go/internal/services/geo"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 500
	DefaultRadiusKm  = 5.0
	MaxRadiusKm      = 100.0

	kmPerDegreeLat = 111.32
)

// NearbyPlace is a published place with its distance from the search centre.
type NearbyPlace struct {
	*place.Place
	DistanceKm float64 `json:"distanceKm"`
	Distance   string  `json:"distance"`
	Duration   string  `json:"duration"`
}

type Service interface {
	List(ctx context.Context, categoryID string, limit int) ([]*place.Place, error)
	Get(ctx context.Context, placeID string) (*place.Place, error)
	Nearby(ctx context.Context, center geo.Point, radiusKm float64, limit int) ([]NearbyPlace, error)
	React(ctx context.Context, placeID, kind string) error
	Categories(ctx context.Context) ([]*category.Category, error)

	ToggleSave(ctx context.Context, userID, placeID string) (*SaveResult, error)
	IsSaved(ctx context.Context, userID, placeID string) (bool, error)
	SaveCount(ctx context.Context, placeID string) (int64, error)
	SavedPlaces(ctx context.Context, userID string) ([]*place.Place, error)

	MarkGoing(ctx context.Context, userID, placeID string, in GoingInput) (*attendance.Attendance, error)
	CancelGoing(ctx context.Context, userID, placeID string) error
	GoingStatus(ctx context.Context, userID, placeID string) (*GoingStatus, error)

	AddReview(ctx context.Context, userID, placeID string, in ReviewInput) (*ReviewResult, error)
	Reviews(ctx context.Context, placeID string, limit int) ([]*review.Review, error)

	// Invalidate drops a place from the lookup cache.
	Invalidate(placeID string)
}

type Impl struct {
	db          *db.DB
	places      place.PlaceRepository
	categories  category.CategoryRepository
	saves       place_save.PlaceSaveRepository
	attendances attendance.AttendanceRepository
	reviews     review.ReviewRepository
	profiles    user_profile.UserProfileRepository
	cache       *expirable.LRU[string, *place.Place]
	log         *zap.Logger
}

func New(database *db.DB, cfg config.PlacesConfig, log *zap.Logger) Service {
	size := cfg.CacheSize
	if size <= 0 {
		size = 512
	}
	return &Impl{
		db:          database,
		places:      place.NewPlaceRepository(database),
		categories:  category.NewCategoryRepository(database),
		saves:       place_save.NewPlaceSaveRepository(database),
		attendances: attendance.NewAttendanceRepository(database),
		reviews:     review.NewReviewRepository(database),
		profiles:    user_profile.NewUserProfileRepository(database),
		cache:       expirable.NewLRU[string, *place.Place](size, nil, cfg.CacheTTL),
		log:         log,
	}
}

func (s *Impl) List(ctx context.Context, categoryID string, limit int) ([]*place.Place, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	list, err := s.places.ListPublished(ctx, categoryID, limit)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*place.Place{}
	}
	return list, nil
}

// Get returns a published place and counts the view.
func (s *Impl) Get(ctx context.Context, placeID string) (*place.Place, error) {
	p, err := s.lookup(ctx, placeID)
	if err != nil {
		return nil, err
	}
	if err := s.places.IncrementViews(ctx, placeID); err != nil {
		s.log.Warn("failed to count place view", zap.String("place_id", placeID), zap.Error(err))
	}
	return p, nil
}

// lookup reads through the cache. Only published places are visible.
func (s *Impl) lookup(ctx context.Context, placeID string) (*place.Place, error) {
	if p, ok := s.cache.Get(placeID); ok {
		return p, nil
	}
	p, err := s.places.GetByID(ctx, placeID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.Status != place.StatusPublished {
		return nil, fmt.Errorf("%w: place %s", errs.ErrNotFound, placeID)
	}
	s.cache.Add(placeID, p)
	return p, nil
}

func (s *Impl) Invalidate(placeID string) {
	s.cache.Remove(placeID)
}

func (s *Impl) Nearby(ctx context.Context, center geo.Point, radiusKm float64, limit int) ([]NearbyPlace, error) {
	if !center.Valid() {
		return nil, fmt.Errorf("%w: coordinates out of range", errs.ErrInvalid)
	}
	if radiusKm <= 0 {
		radiusKm = DefaultRadiusKm
	}
	if radiusKm > MaxRadiusKm {
		radiusKm = MaxRadiusKm
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}

	candidates, err := s.places.ListPublishedInBox(ctx, boundingBox(center, radiusKm))
	if err != nil {
		return nil, err
	}

	out := []NearbyPlace{}
	for _, p := range candidates {
		d := geo.DistanceKm(center, geo.Point{Lat: p.Lat, Lng: p.Lng})
		if d > radiusKm {
			continue
		}
		out = append(out, NearbyPlace{
			Place:      p,
			DistanceKm: d,
			Distance:   geo.FormatDistance(d),
			Duration:   geo.EstimateDuration(d),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// boundingBox over-approximates the circle; the caller filters by exact distance.
func boundingBox(c geo.Point, radiusKm float64) place.Box {
	dLat := radiusKm / kmPerDegreeLat
	cos := math.Cos(c.Lat * math.Pi / 180)
	dLng := 180.0
	if cos > 1e-6 {
		dLng = math.Min(180, radiusKm/(kmPerDegreeLat*cos))
	}
	return place.Box{
		MinLat: math.Max(-90, c.Lat-dLat),
		MaxLat: math.Min(90, c.Lat+dLat),
		MinLng: math.Max(-180, c.Lng-dLng),
		MaxLng: math.Min(180, c.Lng+dLng),
	}
}

func (s *Impl) React(ctx context.Context, placeID, kind string) error {
	if !place.IsReaction(kind) {
		return fmt.Errorf("%w: unknown reaction %q", errs.ErrInvalid, kind)
	}
	if _, err := s.lookup(ctx, placeID); err != nil {
		return err
	}
	if err := s.places.IncrementReaction(ctx, placeID, kind); err != nil {
		return err
	}
	s.Invalidate(placeID)
	return nil
}

func (s *Impl) Categories(ctx context.Context) ([]*category.Category, error) {
	list, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*category.Category{}
	}
	return list, nil
}

// requireUser keeps anonymous callers out of write paths.
func requireUser(userID string) error {
	if userID == "" {
		return errs.ErrUnauthenticated
	}
	return nil
}

package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/paulmach/orb"
	"go.trai.ch/fairway/internal/core/domain"
)

const defaultNearbyRadiusKm = 50.0

// RouteRequest is the body of POST /api/route.
type RouteRequest struct {
	Waypoints    [][]float64 `json:"waypoints" binding:"required,min=2"`
	BoatDraft    float64     `json:"boat_draft"`
	BoatHeight   float64     `json:"boat_height"`
	BoatBeam     float64     `json:"boat_beam"`
	BoatSpeedKmh float64     `json:"boat_speed_kmh"`
	Departure    *time.Time  `json:"departure"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// NearbyResponse is the body of GET /api/locks/nearby.
type NearbyResponse struct {
	Locks []domain.NearbyLock `json:"locks"`
	Count int                 `json:"count"`
}

func (r RouteRequest) toDomain() (domain.RouteRequest, error) {
	points := make([]orb.Point, len(r.Waypoints))
	for i, wp := range r.Waypoints {
		if len(wp) != 2 {
			return domain.RouteRequest{}, errors.New("each waypoint must be [lon, lat]")
		}
		points[i] = orb.Point{wp[0], wp[1]}
	}

	req := domain.RouteRequest{Waypoints: points, Departure: r.Departure}
	if r.BoatDraft > 0 || r.BoatHeight > 0 || r.BoatBeam > 0 || r.BoatSpeedKmh != 0 {
		req.Boat = &domain.BoatProfile{
			DraftM:   r.BoatDraft,
			HeightM:  r.BoatHeight,
			BeamM:    r.BoatBeam,
			SpeedKmh: r.BoatSpeedKmh,
		}
	}
	return req, nil
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) route(c *gin.Context) {
	var body RouteRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	req, err := body.toDomain()
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}

	result, err := s.svc.Route(c.Request.Context(), req)
	if err != nil {
		s.fail(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, result.Feature())
}

func (s *Server) locksNearby(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lon, errLon := strconv.ParseFloat(c.Query("lon"), 64)
	if errLat != nil || errLon != nil || !domain.ValidPoint(orb.Point{lon, lat}) {
		s.fail(c, http.StatusBadRequest, errors.New("lat and lon query parameters are required"))
		return
	}

	radius := defaultNearbyRadiusKm
	if v := c.Query("radius_km"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil || r <= 0 {
			s.fail(c, http.StatusBadRequest, errors.New("radius_km must be a positive number"))
			return
		}
		radius = r
	}

	locks, err := s.svc.LocksNearby(c.Request.Context(), orb.Point{lon, lat}, radius)
	if err != nil {
		s.fail(c, statusFor(err), err)
		return
	}
	if locks == nil {
		locks = []domain.NearbyLock{}
	}
	c.JSON(http.StatusOK, NearbyResponse{Locks: locks, Count: len(locks)})
}

func (s *Server) lockStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		s.fail(c, http.StatusBadRequest, errors.New("lock id must be an integer"))
		return
	}

	at := s.now()
	if v := c.Query("at"); v != "" {
		at, err = time.Parse(time.RFC3339, v)
		if err != nil {
			s.fail(c, http.StatusBadRequest, errors.New("at must be an RFC 3339 timestamp"))
			return
		}
	}

	report, err := s.svc.LockStatus(c.Request.Context(), id, at)
	if err != nil {
		s.fail(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) fail(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError && s.logger != nil {
		s.logger.Error(err)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     err.Error(),
		RequestID: c.GetString(requestIDKey),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrLockNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrLockDataUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

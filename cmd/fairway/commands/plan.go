package commands

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/spf13/cobra"
	"go.trai.ch/fairway/internal/app"
	"go.trai.ch/fairway/internal/core/domain"
	"go.trai.ch/zerr"
)

// departureLayouts are tried in order when parsing --departure.
var departureLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02 15:04"}

func (c *CLI) newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan [flags] [--] LON,LAT LON,LAT [LON,LAT...]",
		Short: "Plan a route through the given waypoints",
		Long: "Plan a route through the given waypoints.\n\n" +
			"Waypoints with a negative longitude look like flags; put them after -- or pass\n" +
			"them with --waypoint=LON,LAT. Flag waypoints come before positional ones.",
		Example: "  fairway plan 11.6167,52.1205 11.7244,52.2633 --speed 12 --departure 2024-06-03T08:00\n" +
			"  fairway plan 9.99,53.55 10.37,53.43 -o geojson > route.json\n" +
			"  fairway plan --speed 10 -- -1.55,47.21 -2.76,47.65\n" +
			"  fairway plan --waypoint=-1.55,47.21 --waypoint=-2.76,47.65",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flagged, _ := cmd.Flags().GetStringArray("waypoint")
			args = append(flagged, args...)
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			req, err := c.planRequest(cmd, args)
			if err != nil {
				return err
			}

			output, _ := cmd.Flags().GetString("output")
			indent, _ := cmd.Flags().GetBool("indent")

			a, err := c.load(cmd.Context())
			if err != nil {
				return err
			}
			return a.PlanTrip(cmd.Context(), req, app.PlanOptions{OutputMode: output, Indent: indent})
		},
	}
	cmd.Flags().StringArrayP("waypoint", "w", nil, "Waypoint as LON,LAT; repeatable")
	cmd.Flags().Float64("draft", 0, "Boat draft in metres")
	cmd.Flags().Float64("height", 0, "Boat air draft in metres")
	cmd.Flags().Float64("beam", 0, "Boat beam in metres")
	cmd.Flags().Float64("speed", 0, "Boat speed through the water in km/h (default from config)")
	cmd.Flags().String("departure", "", "Departure time, e.g. 2024-06-03T08:00, to check lock opening hours")
	cmd.Flags().StringP("output", "o", "auto", "Output mode: auto, summary, or geojson")
	cmd.Flags().Bool("indent", false, "Indent GeoJSON output")
	return cmd
}

func (c *CLI) planRequest(cmd *cobra.Command, args []string) (domain.RouteRequest, error) {
	points := make([]orb.Point, 0, len(args))
	for _, arg := range args {
		p, err := ParseWaypoint(arg)
		if err != nil {
			return domain.RouteRequest{}, err
		}
		points = append(points, p)
	}
	req := domain.RouteRequest{Waypoints: points}

	draft, _ := cmd.Flags().GetFloat64("draft")
	height, _ := cmd.Flags().GetFloat64("height")
	beam, _ := cmd.Flags().GetFloat64("beam")
	speed, _ := cmd.Flags().GetFloat64("speed")
	if draft > 0 || height > 0 || beam > 0 || cmd.Flags().Changed("speed") {
		req.Boat = &domain.BoatProfile{DraftM: draft, HeightM: height, BeamM: beam, SpeedKmh: speed}
	}

	if v, _ := cmd.Flags().GetString("departure"); v != "" {
		dep, err := ParseDeparture(v)
		if err != nil {
			return domain.RouteRequest{}, err
		}
		req.Departure = &dep
	}
	return req, nil
}

// ParseWaypoint parses "lon,lat".
func ParseWaypoint(s string) (orb.Point, error) {
	lonStr, latStr, ok := strings.Cut(s, ",")
	if !ok {
		return orb.Point{}, zerr.With(zerr.Wrap(domain.ErrInvalidInput, "waypoint must be LON,LAT"), "waypoint", s)
	}
	lon, errLon := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	lat, errLat := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err := errors.Join(errLon, errLat); err != nil {
		return orb.Point{}, zerr.With(zerr.Wrap(domain.ErrInvalidInput, err.Error()), "waypoint", s)
	}
	return orb.Point{lon, lat}, nil
}

// ParseDeparture parses an RFC 3339 timestamp or a local "2006-01-02T15:04".
func ParseDeparture(s string) (time.Time, error) {
	for _, layout := range departureLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, zerr.With(zerr.Wrap(domain.ErrInvalidInput, "departure must look like 2006-01-02T15:04"), "departure", s)
}

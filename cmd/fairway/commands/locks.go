package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/spf13/cobra"
	"go.trai.ch/fairway/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newLocksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locks",
		Short: "Query the lock directory",
	}
	cmd.PersistentFlags().Bool("json", false, "Write the result as JSON")
	cmd.AddCommand(c.newLockStatusCmd())
	cmd.AddCommand(c.newLocksNearbyCmd())
	return cmd
}

func (c *CLI) newLockStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status ID",
		Short: "Show whether a lock is open at a given time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return zerr.With(zerr.Wrap(domain.ErrInvalidInput, "lock id must be an integer"), "id", args[0])
			}

			at := c.now()
			if v, _ := cmd.Flags().GetString("at"); v != "" {
				if at, err = ParseDeparture(v); err != nil {
					return err
				}
			}

			a, err := c.load(cmd.Context())
			if err != nil {
				return err
			}
			report, err := a.LockStatus(cmd.Context(), id, at)
			if err != nil {
				return err
			}

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			writeLockStatus(cmd.OutOrStdout(), report)
			return nil
		},
	}
	cmd.Flags().String("at", "", "Time to evaluate, e.g. 2024-06-03T08:00 (default now)")
	return cmd
}

func (c *CLI) newLocksNearbyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "nearby [flags] [--] LON,LAT",
		Short:   "List locks around a position, nearest first",
		Example: "  fairway locks nearby 11.62,52.13 --radius 20\n  fairway locks nearby -- -1.55,47.21",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			center, err := ParseWaypoint(args[0])
			if err != nil {
				return err
			}
			radius, _ := cmd.Flags().GetFloat64("radius")

			a, err := c.load(cmd.Context())
			if err != nil {
				return err
			}
			locks, err := a.LocksNearby(cmd.Context(), center, radius)
			if err != nil {
				return err
			}

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				if locks == nil {
					locks = []domain.NearbyLock{}
				}
				return writeJSON(cmd.OutOrStdout(), locks)
			}
			writeNearby(cmd.OutOrStdout(), center, radius, locks)
			return nil
		},
	}
	cmd.Flags().Float64("radius", 50, "Search radius in km")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeLockStatus(w io.Writer, r *domain.LockReport) {
	_, _ = fmt.Fprintf(w, "%s (#%d) at %s: %s\n", r.Lock.Name, r.Lock.ID, r.At.Format("Mon 2006-01-02 15:04"), r.Status.State)
	_, _ = fmt.Fprintf(w, "  %s\n", r.Status.Reason)
	if r.Status.OpensAt != nil {
		_, _ = fmt.Fprintf(w, "  opens at %s\n", r.Status.OpensAt)
	}
	if r.Status.ClosesAt != nil {
		_, _ = fmt.Fprintf(w, "  closes at %s\n", r.Status.ClosesAt)
	}
	if r.Lock.VHFChannel != "" {
		_, _ = fmt.Fprintf(w, "  VHF %s\n", r.Lock.VHFChannel)
	}
}

func writeNearby(w io.Writer, center orb.Point, radiusKm float64, locks []domain.NearbyLock) {
	if len(locks) == 0 {
		_, _ = fmt.Fprintf(w, "no locks within %g km of %.4f,%.4f\n", radiusKm, center.Lon(), center.Lat())
		return
	}
	for _, l := range locks {
		_, _ = fmt.Fprintf(w, "%7.1f km  #%-5d %s", l.DistanceMeters/1000, l.Lock.ID, l.Lock.Name)
		if l.Lock.Waterway != "" {
			_, _ = fmt.Fprintf(w, " (%s)", l.Lock.Waterway)
		}
		_, _ = fmt.Fprintln(w)
	}
}

// Package linear prints planning progress and a trip summary as plain lines.
package linear

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/fairway/internal/core/domain"
	"go.trai.ch/fairway/internal/ui/output"
	"go.trai.ch/fairway/internal/ui/style"
)

// Renderer implements ports.Renderer for terminals and logs.
// Tier progress goes to stderr; the summary goes to stdout.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	output *termenv.Output
	now    func() time.Time

	mu      sync.Mutex
	started map[domain.RoutingType]time.Time
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithClock replaces the clock used to time tiers.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		r.now = now
	}
}

// NewRenderer creates a new Renderer. Nil writers mean stdout and stderr.
func NewRenderer(stdout, stderr io.Writer, opts ...Option) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	r := &Renderer{
		stdout:  stdout,
		stderr:  stderr,
		output:  output.New(stderr),
		now:     time.Now,
		started: make(map[domain.RoutingType]time.Time),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// OnTierStart prints that a tier is being tried.
func (r *Renderer) OnTierStart(tier domain.RoutingType) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.started[tier] = r.now()
	_, _ = fmt.Fprintf(r.stderr, "%s %s\n", r.paint(style.Pending, style.Slate), tier)
}

// OnTierComplete prints the tier outcome.
func (r *Renderer) OnTierComplete(tier domain.RoutingType, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	took := r.now().Sub(r.started[tier]).Round(time.Millisecond)
	delete(r.started, tier)

	if err != nil {
		_, _ = fmt.Fprintf(r.stderr, "%s %s failed after %v: %v\n",
			r.paint(style.Cross, style.TierColor(false)), tier, took, err)
		return
	}
	_, _ = fmt.Fprintf(r.stderr, "%s %s routed in %v\n",
		r.paint(style.Check, style.TierColor(true)), tier, took)
}

// Render prints the trip summary.
func (r *Renderer) Render(result *domain.RouteResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var b strings.Builder
	r.writeSummary(&b, result)
	_, err := io.WriteString(r.stdout, b.String())
	return err
}

func (r *Renderer) writeSummary(b *strings.Builder, res *domain.RouteResult) {
	routed := "direct line"
	if res.WaterwayRouted {
		routed = "waterway routed"
	}
	fmt.Fprintf(b, "%s %s (%s)\n", r.label("Route"), res.RoutingType, routed)
	fmt.Fprintf(b, "%s %.1f km (%.1f NM)\n", r.label("Distance"), res.DistanceMeters/1000, res.DistanceNauticalMiles())

	if secs := res.EffectiveDurationSeconds(); secs > 0 {
		fmt.Fprintf(b, "%s %s\n", r.label("Duration"), FormatHours(secs/3600))
	}
	if adj := res.CurrentAdjustment; adj != nil {
		name := adj.DetectedWaterway
		if name == "" {
			name = "unknown waterway"
		}
		sign := "+"
		if adj.TimeDiffHours < 0 {
			sign = "-"
		}
		fmt.Fprintf(b, "%s %s, %s%s vs still water (%s)\n",
			r.label("Current"), name, sign, FormatHours(math.Abs(adj.TimeDiffHours)), adj.FlowSource)
	}
	if rs := res.BoatRestrictions; rs != nil {
		fmt.Fprintf(b, "%s %s\n", r.label("Boat"), restrictions(rs))
	}

	if len(res.Locks) > 0 {
		fmt.Fprintf(b, "\n%s (%d)\n", r.heading("Locks"), len(res.Locks))
		for _, hit := range res.Locks {
			line := fmt.Sprintf("  %s %s  km %.1f", style.Lock, hit.Lock.Name, hit.DistanceFromStartMeters/1000)
			if hit.Lock.Waterway != "" {
				line += "  (" + hit.Lock.Waterway + ")"
			}
			if hit.Lock.VHFChannel != "" {
				line += "  VHF " + hit.Lock.VHFChannel
			}
			b.WriteString(line + "\n")
		}
	}

	if len(res.LockWarnings) > 0 {
		fmt.Fprintf(b, "\n%s\n", r.heading("Warnings"))
		for _, w := range res.LockWarnings {
			line := fmt.Sprintf("  %s %s at %s: %s",
				r.paint(style.Warning, style.Amber), w.Hit.Lock.Name, w.EstimatedArrival.Format("Mon 15:04"), w.Reason)
			if w.SuggestedDeparture != nil {
				line += fmt.Sprintf(", depart %s %s", style.Arrow, w.SuggestedDeparture.Format("Mon 15:04"))
			}
			b.WriteString(line + "\n")
		}
	}

	var bridges []domain.Infrastructure
	for _, inf := range res.Infrastructure {
		if inf.Kind == domain.InfrastructureBridge {
			bridges = append(bridges, inf)
		}
	}
	if len(bridges) > 0 {
		fmt.Fprintf(b, "\n%s (%d)\n", r.heading("Bridges"), len(bridges))
		for _, br := range bridges {
			fmt.Fprintf(b, "  %s %s  km %.1f\n", style.Bridge, br.Name, br.DistanceFromStartMeters/1000)
		}
	}

	if len(res.Attempts) > 0 {
		fmt.Fprintf(b, "\n%s\n", r.heading("Skipped tiers"))
		for _, a := range res.Attempts {
			fmt.Fprintf(b, "  %s %s: %s\n", r.paint(style.Cross, style.Slate), a.Tier, a.Reason)
		}
	}
}

func (r *Renderer) label(s string) string {
	return r.heading(fmt.Sprintf("%-9s", s))
}

func (r *Renderer) heading(s string) string {
	return r.output.String(s).Bold().String()
}

func (r *Renderer) paint(s string, c lipgloss.Color) string {
	return output.Paint(r.output, s, c)
}

func restrictions(rs *domain.BoatRestrictions) string {
	var parts []string
	if rs.DraftM > 0 {
		parts = append(parts, fmt.Sprintf("draft %.1f m", rs.DraftM))
	}
	if rs.HeightM > 0 {
		parts = append(parts, fmt.Sprintf("air draft %.1f m", rs.HeightM))
	}
	if rs.BeamM > 0 {
		parts = append(parts, fmt.Sprintf("beam %.1f m", rs.BeamM))
	}
	return strings.Join(parts, ", ")
}

// FormatHours renders h as "2h 05m". Values under an hour print minutes only.
func FormatHours(h float64) string {
	total := int(math.Round(h * 60))
	if total < 60 {
		return fmt.Sprintf("%dm", total)
	}
	return fmt.Sprintf("%dh %02dm", total/60, total%60)
}

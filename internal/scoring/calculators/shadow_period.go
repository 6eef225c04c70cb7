package calculators

import (
	"github.com/desimealsnow/auspicious-time/internal/chart"
	"github.com/desimealsnow/auspicious-time/internal/scoring/activity"
	"github.com/desimealsnow/auspicious-time/internal/windows"
)

// ShadowPeriodPenalty penalizes event instants that fall inside a
// traditional shadow window (Rahu Kalam, Yamaganda, Gulika Kalam) for
// the event's date and place. Which windows an activity avoids is
// table-driven; when solar geometry is unavailable (polar day/night)
// the factor is neutral.
type ShadowPeriodPenalty struct {
	tables *activity.Tables
}

var shadowSeverity = map[string]float64{
	"rahu_kalam":   -1.0,
	"yamaganda":    -0.6,
	"gulika_kalam": -0.4,
}

func (ShadowPeriodPenalty) Name() string { return "shadowPeriodPenalty" }

func (s ShadowPeriodPenalty) Calculate(event *chart.Chart, _ *chart.Natal, activityKey string) float64 {
	dw, ok := windows.Compute(event.Instant, event.Lat, event.Lon)
	if !ok {
		return Neutral
	}

	avoided := s.tables.Lookup(activityKey).AvoidWindows

	worst := 0.0
	for _, w := range []windows.Window{dw.RahuKalam, dw.Yamaganda, dw.GulikaKalam} {
		if !w.Contains(event.Instant) {
			continue
		}
		if !containsString(avoided, w.Name) {
			continue
		}
		if sev := shadowSeverity[w.Name]; sev < worst {
			worst = sev
		}
	}
	return worst
}

func containsString(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

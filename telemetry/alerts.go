package telemetry

import (
	"fmt"
	"log/slog"
)

// AlertType identifies the type of alert.
type AlertType string

const (
	AlertSustainedDeficit AlertType = "sustained_deficit"
	AlertChargeCrash      AlertType = "charge_crash"
	AlertShutdown         AlertType = "shutdown"
	AlertShortfallSpike   AlertType = "shortfall_spike"
)

// Alert is an automatically detected moment in the energy economy.
type Alert struct {
	Type        AlertType `csv:"type"`
	Step        uint64    `csv:"step"`
	Description string    `csv:"description"`
}

// LogAlert logs the alert using slog.
func (a Alert) LogAlert() {
	slog.Info("alert",
		"type", string(a.Type),
		"step", a.Step,
		"description", a.Description,
	)
}

// deficitWindows is how many consecutive negative-balance windows raise
// a sustained deficit alert.
const deficitWindows = 3

// AlertDetector watches window stats for trends worth flagging.
type AlertDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	deficitRun   int
	fractionPeak float64
	shutdownPrev int
}

// NewAlertDetector creates a detector with the given history size.
func NewAlertDetector(historySize int) *AlertDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &AlertDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered alerts.
func (ad *AlertDetector) Check(stats WindowStats) []Alert {
	var alerts []Alert

	if a := ad.checkDeficit(stats); a != nil {
		alerts = append(alerts, *a)
	}
	if a := ad.checkChargeCrash(stats); a != nil {
		alerts = append(alerts, *a)
	}
	if a := ad.checkShutdown(stats); a != nil {
		alerts = append(alerts, *a)
	}
	if a := ad.checkShortfallSpike(stats); a != nil {
		alerts = append(alerts, *a)
	}

	ad.addToHistory(stats)
	if stats.FractionMean > ad.fractionPeak {
		ad.fractionPeak = stats.FractionMean
	}
	return alerts
}

func (ad *AlertDetector) addToHistory(stats WindowStats) {
	ad.history[ad.historyIdx] = stats
	ad.historyIdx = (ad.historyIdx + 1) % ad.historySize
	if ad.historyIdx == 0 {
		ad.historyFull = true
	}
}

func (ad *AlertDetector) getHistory() []WindowStats {
	if ad.historyFull {
		return ad.history
	}
	return ad.history[:ad.historyIdx]
}

func (ad *AlertDetector) checkDeficit(stats WindowStats) *Alert {
	if stats.Cores == 0 || stats.NetMean >= 0 {
		ad.deficitRun = 0
		return nil
	}
	ad.deficitRun++
	if ad.deficitRun != deficitWindows { // trigger once per run
		return nil
	}
	return &Alert{
		Type:        AlertSustainedDeficit,
		Step:        stats.WindowEndStep,
		Description: fmt.Sprintf("Drain exceeded generation for %d windows (net %.1f per core)", deficitWindows, stats.NetMean),
	}
}

func (ad *AlertDetector) checkChargeCrash(stats WindowStats) *Alert {
	if ad.fractionPeak <= 0 {
		return nil
	}
	drop := 1 - stats.FractionMean/ad.fractionPeak
	if drop <= 0.30 {
		return nil
	}
	// Reset peak after a crash
	oldPeak := ad.fractionPeak
	ad.fractionPeak = stats.FractionMean
	return &Alert{
		Type:        AlertChargeCrash,
		Step:        stats.WindowEndStep,
		Description: fmt.Sprintf("Mean charge fell %.0f%% from %.2f to %.2f", drop*100, oldPeak, stats.FractionMean),
	}
}

func (ad *AlertDetector) checkShutdown(stats WindowStats) *Alert {
	n := stats.ModeCounts[len(stats.ModeCounts)-1]
	prev := ad.shutdownPrev
	ad.shutdownPrev = n
	if n == 0 || n <= prev {
		return nil
	}
	return &Alert{
		Type:        AlertShutdown,
		Step:        stats.WindowEndStep,
		Description: fmt.Sprintf("%d of %d cores ran empty", n, stats.Cores),
	}
}

func (ad *AlertDetector) checkShortfallSpike(stats WindowStats) *Alert {
	history := ad.getHistory()
	if len(history) < 3 {
		return nil
	}
	var total int
	for _, h := range history {
		total += h.ShortfallEvents
	}
	avg := float64(total) / float64(len(history))
	if stats.ShortfallEvents < 5 || float64(stats.ShortfallEvents) <= avg*2 {
		return nil
	}
	return &Alert{
		Type:        AlertShortfallSpike,
		Step:        stats.WindowEndStep,
		Description: fmt.Sprintf("%d shortfalls against a rolling average of %.1f", stats.ShortfallEvents, avg),
	}
}

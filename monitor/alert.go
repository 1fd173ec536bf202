package monitor

import "time"

type (
	Alert struct {
		Name     string
		Priority AlertPriority
		Message  string
		Duration time.Duration

		showUntil time.Time
	}

	AlertPriority int

	Alerts struct {
		alerts []Alert
	}
)

const (
	Info AlertPriority = iota
	Warning
	Error
)

const defaultAlertDuration = 3 * time.Second

// Add shows message for the default duration.
func (a *Alerts) Add(message string, priority AlertPriority) {
	a.AddAlert(Alert{Priority: priority, Message: message, Duration: defaultAlertDuration})
}

// AddNamed replaces any visible alert with the same name, so that e.g.
// repeatedly changing the gain shows only the latest value.
func (a *Alerts) AddNamed(name, message string, priority AlertPriority) {
	a.AddAlert(Alert{Name: name, Priority: priority, Message: message, Duration: defaultAlertDuration})
}

func (a *Alerts) AddAlert(alert Alert) {
	alert.showUntil = time.Now().Add(alert.Duration)
	if alert.Name != "" {
		for i := range a.alerts {
			if a.alerts[i].Name == alert.Name {
				a.alerts[i] = alert
				return
			}
		}
	}
	a.alerts = append(a.alerts, alert)
}

// Update drops the expired alerts. Returns true if any were dropped.
func (a *Alerts) Update() bool {
	now := time.Now()
	kept := a.alerts[:0]
	for _, alert := range a.alerts {
		if now.Before(alert.showUntil) {
			kept = append(kept, alert)
		}
	}
	changed := len(kept) != len(a.alerts)
	a.alerts = kept
	return changed
}

// Iterate yields the visible alerts, oldest first.
func (a *Alerts) Iterate(yield func(Alert) bool) {
	for _, alert := range a.alerts {
		if !yield(alert) {
			return
		}
	}
}

func (a *Alerts) Len() int { return len(a.alerts) }

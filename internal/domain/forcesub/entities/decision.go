package entities

import "time"

// Decision is the outcome of an admission evaluation
type Decision struct {
	Admitted bool

	// Missing holds unsatisfied requirements in registry order
	Missing []Requirement

	// Degraded is set when requirements could not be read; the decision is then a denial with no detail
	Degraded bool
}

// Admit returns an admitted decision
func Admit() Decision {
	return Decision{Admitted: true}
}

// Deny returns a denied decision listing missing requirements
func Deny(missing []Requirement) Decision {
	return Decision{Missing: missing}
}

// DenyDegraded returns a denial caused by an unreadable registry
func DenyDegraded() Decision {
	return Decision{Degraded: true}
}

// MissingTitles returns display titles of missing requirements
func (d Decision) MissingTitles() []string {
	titles := make([]string, len(d.Missing))
	for i, req := range d.Missing {
		titles[i] = req.DisplayTitle()
	}
	return titles
}

// Button is a transport neutral inline control
type Button struct {
	Text         string
	URL          string
	CallbackData string
}

// Warning is a message telling a user which channels to join
type Warning struct {
	ChatID  int64
	Text    string
	Buttons []Button
}

// PendingWarning is a warning scheduled for deletion
type PendingWarning struct {
	ChatID    int64
	MessageID int
	NotBefore time.Time
}

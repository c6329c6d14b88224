package driver

import (
	"fmt"

	"github.com/daniel06264831/menuia/internal/pkg/errs"
)

// Presence is the availability a driver signals to dispatch.
type Presence string

const (
	PresenceOffline Presence = "offline"
	PresenceOnline  Presence = "online"
	PresenceBusy    Presence = "busy"
)

func (p Presence) Validate() error {
	switch p {
	case PresenceOffline, PresenceOnline, PresenceBusy:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("presence", fmt.Errorf("%q is not a valid presence", string(p)))
	}
}

func (p Presence) String() string {
	return string(p)
}

// IsAvailable reports whether a driver with this presence may receive offers.
func (p Presence) IsAvailable() bool {
	return p == PresenceOnline || p == PresenceBusy
}

// CandidatePresences lists the presences dispatch loads candidates for.
func CandidatePresences() []Presence {
	return []Presence{PresenceOnline, PresenceBusy}
}

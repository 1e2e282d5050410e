package booking

import (
	"strings"
	"time"
)

// SearchState selects the temporal bucket of a booking listing.
type SearchState string

const (
	StateAll      SearchState = "ALL"
	StateCurrent  SearchState = "CURRENT"
	StatePast     SearchState = "PAST"
	StateFuture   SearchState = "FUTURE"
	StateWaiting  SearchState = "WAITING"
	StateRejected SearchState = "REJECTED"
)

// ParseSearchState maps a query parameter to a SearchState. An empty value
// defaults to ALL; anything unrecognized is rejected.
func ParseSearchState(s string) (SearchState, error) {
	if s == "" {
		return StateAll, nil
	}

	switch state := SearchState(strings.ToUpper(s)); state {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return state, nil
	default:
		return "", ErrUnknownState
	}
}

// stateFilter translates a search state into store predicates. The same
// instant is used for both bounds of the CURRENT window.
func stateFilter(state SearchState, now time.Time) Filter {
	switch state {
	case StatePast:
		return Filter{EndBefore: &now}
	case StateFuture:
		return Filter{StartAfter: &now}
	case StateCurrent:
		return Filter{CurrentAt: &now}
	case StateWaiting:
		return Filter{Status: StatusWaiting}
	case StateRejected:
		return Filter{Status: StatusRejected}
	default:
		return Filter{}
	}
}

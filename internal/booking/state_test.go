package booking

import (
	"testing"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
)

func TestParseSearchState(t *testing.T) {
	cases := []struct {
		input string
		want  SearchState
	}{
		{input: "", want: StateAll},
		{input: "ALL", want: StateAll},
		{input: "current", want: StateCurrent},
		{input: "Past", want: StatePast},
		{input: "FUTURE", want: StateFuture},
		{input: "waiting", want: StateWaiting},
		{input: "rejected", want: StateRejected},
	}

	for _, tc := range cases {
		state, err := ParseSearchState(tc.input)
		assert.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.want, state, "input %q", tc.input)
	}
}

func TestParseSearchState_Unknown(t *testing.T) {
	for _, input := range []string{"UNKNOWN", "finished", "ALL "} {
		state, err := ParseSearchState(input)
		assert.ErrorIs(t, err, ErrUnknownState, "input %q", input)
		assert.Empty(t, state)
	}
}

func TestStateFilter(t *testing.T) {
	now := time.Now()

	t.Run("all is unrestricted", func(t *testing.T) {
		f := stateFilter(StateAll, now)
		assert.Equal(t, Filter{}, f)
	})

	t.Run("past bounds the end", func(t *testing.T) {
		f := stateFilter(StatePast, now)
		assert.Equal(t, now, *f.EndBefore)
		assert.Nil(t, f.StartAfter)
		assert.Nil(t, f.CurrentAt)
	})

	t.Run("future bounds the start", func(t *testing.T) {
		f := stateFilter(StateFuture, now)
		assert.Equal(t, now, *f.StartAfter)
		assert.Nil(t, f.EndBefore)
	})

	t.Run("current uses one instant for both bounds", func(t *testing.T) {
		f := stateFilter(StateCurrent, now)
		assert.Equal(t, now, *f.CurrentAt)
	})

	t.Run("waiting and rejected filter by status", func(t *testing.T) {
		assert.Equal(t, StatusWaiting, stateFilter(StateWaiting, now).Status)
		assert.Equal(t, StatusRejected, stateFilter(StateRejected, now).Status)
	})
}

// The CURRENT window keeps its historical orientation: start strictly after
// the instant and end strictly before it.
func TestLegacyCurrentWindow(t *testing.T) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	now := time.Now()

	sql, args, err := legacyCurrentWindow(bookingSelect(psql), now).ToSql()

	assert.NoError(t, err)
	assert.Contains(t, sql, "b.start_date > $1")
	assert.Contains(t, sql, "b.end_date < $2")
	assert.Equal(t, []interface{}{now, now}, args)
}

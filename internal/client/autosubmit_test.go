package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"watchchart/internal/models"
)

var (
	pst     = time.FixedZone("PST", -8*3600)
	fixedAt = time.Date(2024, 3, 11, 7, 30, 0, 0, time.UTC)
)

func fixedNow() time.Time { return fixedAt }

func emptyView() models.View {
	return models.View{Identifier: "BV1", Interval: "30m"}
}

func TestAutoSubmitWaitsForMount(t *testing.T) {
	a := NewAutoSubmit(pst, fixedNow)
	assert.Equal(t, StateAwaitingMount, a.State())

	_, fire := a.Observe(emptyView())
	assert.False(t, fire)
	assert.Equal(t, StateAwaitingMount, a.State())

	sub, fire := a.Mount()
	require.True(t, fire)
	assert.Equal(t, StateSubmitting, a.State())
	assert.Equal(t, "BV1", sub.Request.Identifier)
	assert.Equal(t, models.IntervalThirtyMinutes, sub.Request.Interval)
	assert.Equal(t, "2024-03-10T08:00:00.000Z", sub.Query.Get("start"))
	assert.Equal(t, "2024-03-11T07:59:00.000Z", sub.Query.Get("end"))
	assert.Equal(t, "BV1", sub.Query.Get("identifier"))
	assert.Equal(t, "30m", sub.Query.Get("interval"))
}

func TestAutoSubmitFiresAtMostOnce(t *testing.T) {
	a := NewAutoSubmit(pst, fixedNow)
	a.Mount()

	fires := 0
	for i := 0; i < 5; i++ {
		if _, fire := a.Observe(emptyView()); fire {
			fires++
		}
	}
	assert.Equal(t, 1, fires)
	assert.True(t, a.Fired())
}

func TestAutoSubmitNeverFiresWhenConditionBroken(t *testing.T) {
	cases := map[string]models.View{
		"window present": {Start: "2024-03-10T08:00:00Z", End: "2024-03-10T09:00:00Z"},
		"data present":   {Segments: []models.WatchSegment{{WatchedDurationSeconds: 1}}},
		"error present":  {Error: "API error: boom"},
	}
	for name, view := range cases {
		t.Run(name, func(t *testing.T) {
			a := NewAutoSubmit(pst, fixedNow)
			a.Observe(view)
			_, fire := a.Mount()
			assert.False(t, fire)
			assert.Equal(t, StateIdle, a.State())

			_, fire = a.Observe(view)
			assert.False(t, fire)
		})
	}
}

func TestAutoSubmitGoesIdleAfterNavigation(t *testing.T) {
	a := NewAutoSubmit(pst, fixedNow)
	a.Observe(emptyView())
	_, fire := a.Mount()
	require.True(t, fire)

	resolved := emptyView()
	resolved.Start = "2024-03-10T08:00:00.000Z"
	resolved.End = "2024-03-11T07:59:00.000Z"
	_, fire = a.Observe(resolved)
	assert.False(t, fire)
	assert.Equal(t, StateIdle, a.State())

	// Coming back to an empty view later on the same mount does not re-fire.
	_, fire = a.Observe(emptyView())
	assert.False(t, fire)
}

func TestAutoSubmitMountWithoutViewIsIdle(t *testing.T) {
	a := NewAutoSubmit(nil, nil)
	_, fire := a.Mount()
	assert.False(t, fire)
	assert.Equal(t, StateIdle, a.State())
	assert.Equal(t, "idle", a.State().String())
}

func TestAutoSubmitUnknownIntervalFallsBack(t *testing.T) {
	a := NewAutoSubmit(pst, fixedNow)
	a.Mount()
	sub, fire := a.Observe(models.View{Identifier: "BV1", Interval: "weird"})
	require.True(t, fire)
	assert.Equal(t, models.DefaultInterval, sub.Request.Interval)
}

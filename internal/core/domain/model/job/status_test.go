package job_test

import (
	"testing"

	"dispatch/internal/core/domain/model/job"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	valid := []job.Status{
		job.Unclaimed, job.Claimed, job.PickedUp, job.EnRoute,
		job.Nearby, job.Arrived, job.Delivered, job.Failed,
	}
	for _, s := range valid {
		t.Run(s.String(), func(t *testing.T) {
			require.NoError(t, s.Validate())
		})
	}

	t.Run("unknown_is_invalid", func(t *testing.T) {
		require.Error(t, job.Unknown.Validate())
	})

	t.Run("out_of_range_is_invalid", func(t *testing.T) {
		require.Error(t, job.Status(99).Validate())
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Unclaimed", job.Unclaimed.String())
	assert.Equal(t, "EnRoute", job.EnRoute.String())
	assert.Equal(t, "Unknown", job.Status(99).String())
}

func TestStatus_Next(t *testing.T) {
	testCases := []struct {
		from job.Status
		to   job.Status
	}{
		{job.Claimed, job.PickedUp},
		{job.PickedUp, job.EnRoute},
		{job.EnRoute, job.Nearby},
		{job.Nearby, job.Arrived},
		{job.Arrived, job.Delivered},
	}

	for _, tc := range testCases {
		t.Run(tc.from.String(), func(t *testing.T) {
			next, err := tc.from.Next()
			require.NoError(t, err)
			assert.Equal(t, tc.to, next)
		})
	}

	t.Run("no_successor_for_terminal_or_unclaimed", func(t *testing.T) {
		for _, s := range []job.Status{job.Unclaimed, job.Delivered, job.Failed} {
			_, err := s.Next()
			require.Error(t, err, s.String())
		}
	})
}

func TestStatus_CanAdvanceTo(t *testing.T) {
	t.Run("single_forward_edge_only", func(t *testing.T) {
		assert.True(t, job.Claimed.CanAdvanceTo(job.PickedUp))
		assert.True(t, job.PickedUp.CanAdvanceTo(job.EnRoute))
		assert.True(t, job.EnRoute.CanAdvanceTo(job.Nearby))
		assert.True(t, job.Nearby.CanAdvanceTo(job.Arrived))
	})

	t.Run("no_skipping", func(t *testing.T) {
		assert.False(t, job.Claimed.CanAdvanceTo(job.EnRoute))
		assert.False(t, job.PickedUp.CanAdvanceTo(job.Arrived))
	})

	t.Run("no_regressing", func(t *testing.T) {
		assert.False(t, job.EnRoute.CanAdvanceTo(job.PickedUp))
		assert.False(t, job.Arrived.CanAdvanceTo(job.Nearby))
	})

	t.Run("claim_complete_and_fail_are_not_advance_targets", func(t *testing.T) {
		assert.False(t, job.Unclaimed.CanAdvanceTo(job.Claimed))
		assert.False(t, job.Arrived.CanAdvanceTo(job.Delivered))
		assert.False(t, job.EnRoute.CanAdvanceTo(job.Failed))
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, job.Delivered.IsTerminal())
	assert.True(t, job.Failed.IsTerminal())
	assert.False(t, job.Unclaimed.IsTerminal())
	assert.False(t, job.Arrived.IsTerminal())
}

func TestStatus_IsTracking(t *testing.T) {
	tracking := []job.Status{job.Claimed, job.PickedUp, job.EnRoute, job.Nearby, job.Arrived}
	for _, s := range tracking {
		assert.True(t, s.IsTracking(), s.String())
	}

	notTracking := []job.Status{job.Unclaimed, job.Delivered, job.Failed}
	for _, s := range notTracking {
		assert.False(t, s.IsTracking(), s.String())
	}
}

func TestStatus_CanFail(t *testing.T) {
	t.Run("failure_edge_exists_from_every_claimed_nonterminal_status", func(t *testing.T) {
		for _, s := range []job.Status{job.Claimed, job.PickedUp, job.EnRoute, job.Nearby, job.Arrived} {
			assert.True(t, s.CanFail(), s.String())
		}
	})

	t.Run("nothing_to_fail_before_claim_or_after_terminal", func(t *testing.T) {
		for _, s := range []job.Status{job.Unclaimed, job.Delivered, job.Failed} {
			assert.False(t, s.CanFail(), s.String())
		}
	})
}

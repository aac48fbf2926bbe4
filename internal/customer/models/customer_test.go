package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "custodia/pkg/domain-errors"
)

func TestNewCustomer(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("starts pending with audit stamps", func(t *testing.T) {
		c, err := NewCustomer("cust-001", "operator", now)
		require.NoError(t, err)
		assert.Equal(t, StatePending, c.CurrentState)
		assert.Equal(t, "operator", c.CreatedBy)
		assert.Equal(t, now, c.CreatedOn)
		assert.Equal(t, "operator", c.LastModifiedBy)
	})

	t.Run("rejects empty identifier", func(t *testing.T) {
		_, err := NewCustomer("", "operator", now)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("rejects identifier over 32 characters", func(t *testing.T) {
		_, err := NewCustomer("this-identifier-is-way-too-long-to-accept", "operator", now)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})
}

func TestStateTransitions(t *testing.T) {
	cases := []struct {
		from    State
		action  Action
		allowed bool
	}{
		{StatePending, ActionActivate, true},
		{StatePending, ActionLock, false},
		{StatePending, ActionUnlock, false},
		{StatePending, ActionClose, false},
		{StatePending, ActionReopen, false},
		{StateActive, ActionLock, true},
		{StateActive, ActionClose, true},
		{StateActive, ActionActivate, false},
		{StateActive, ActionUnlock, false},
		{StateActive, ActionReopen, false},
		{StateLocked, ActionUnlock, true},
		{StateLocked, ActionClose, true},
		{StateLocked, ActionActivate, false},
		{StateLocked, ActionLock, false},
		{StateLocked, ActionReopen, false},
		{StateClosed, ActionReopen, true},
		{StateClosed, ActionActivate, false},
		{StateClosed, ActionUnlock, false},
		{StateClosed, ActionLock, false},
		{StateClosed, ActionClose, false},
	}

	for _, tc := range cases {
		name := string(tc.from) + "_" + string(tc.action)
		t.Run(name, func(t *testing.T) {
			c := &Customer{Identifier: "cust-001", CurrentState: tc.from}
			err := c.CanTransition(tc.action)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
			}
		})
	}
}

func TestCanTransitionRejectsNonTransitionAction(t *testing.T) {
	c := &Customer{Identifier: "cust-001", CurrentState: StatePending}
	err := c.CanTransition(ActionCreate)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestApplyTransition(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("activation stamps application date once", func(t *testing.T) {
		c := &Customer{Identifier: "cust-001", CurrentState: StatePending}
		c.ApplyTransition(ActionActivate, "operator", now)

		assert.Equal(t, StateActive, c.CurrentState)
		require.NotNil(t, c.ApplicationDate)
		assert.Equal(t, now, *c.ApplicationDate)

		later := now.Add(48 * time.Hour)
		c.ApplyTransition(ActionLock, "operator", later)
		c.ApplyTransition(ActionUnlock, "operator", later)
		assert.Equal(t, now, *c.ApplicationDate)
	})

	t.Run("refreshes modification stamp", func(t *testing.T) {
		c := &Customer{Identifier: "cust-001", CurrentState: StateActive}
		c.ApplyTransition(ActionLock, "auditor", now)
		assert.Equal(t, StateLocked, c.CurrentState)
		assert.Equal(t, "auditor", c.LastModifiedBy)
		assert.Equal(t, now, c.LastModifiedOn)
	})
}

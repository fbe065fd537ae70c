package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starwash-api/internal/core/domain"
)

func TestNormalizeRole(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  domain.Role
		ok    bool
	}{
		{name: "uppercase admin", input: "ADMIN", want: domain.RoleAdmin, ok: true},
		{name: "lowercase admin", input: "admin", want: domain.RoleAdmin, ok: true},
		{name: "mixed case staff", input: "Staff", want: domain.RoleStaff, ok: true},
		{name: "padded", input: "  staff  ", want: domain.RoleStaff, ok: true},
		{name: "unknown role", input: "manager", ok: false},
		{name: "empty", input: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := domain.NormalizeRole(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLaundryFlowWalk(t *testing.T) {
	// Walking from the first status must visit every step exactly once
	// and stop at the last one.
	status := domain.LaundryFlow[0]
	visited := []domain.LaundryStatus{status}

	for {
		next, ok := domain.NextLaundryStatus(status)
		if !ok {
			break
		}
		visited = append(visited, next)
		status = next
	}

	require.Equal(t, domain.LaundryFlow, visited)
	assert.Equal(t, domain.LaundryDone, status)
}

func TestNextLaundryStatus(t *testing.T) {
	next, ok := domain.NextLaundryStatus(domain.LaundryPending)
	require.True(t, ok)
	assert.Equal(t, domain.LaundryWashing, next)

	_, ok = domain.NextLaundryStatus(domain.LaundryDone)
	assert.False(t, ok, "final status has no successor")

	_, ok = domain.NextLaundryStatus("Ironing")
	assert.False(t, ok, "unknown status has no successor")
}

func TestFlowIndex(t *testing.T) {
	assert.Equal(t, 0, domain.FlowIndex(domain.LaundryPending))
	assert.Equal(t, 4, domain.FlowIndex(domain.LaundryDone))
	assert.Equal(t, -1, domain.FlowIndex("Ironing"))
}

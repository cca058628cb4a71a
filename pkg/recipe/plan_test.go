package recipe

import (
	"fmt"
	"testing"

	cerrors "github.com/chefkoch/chefkoch/pkg/errors"
	"github.com/chefkoch/chefkoch/pkg/header"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlan_Priorities(t *testing.T) {
	r := mustParse(t, fourNodes)

	plan, err := r.Plan(WithVersion("v0.1.0"))
	require.NoError(t, err)

	assert.Equal(t, header.KindPlan, plan.Kind)
	assert.Equal(t, "v0.1.0", plan.Metadata["plan-version"])
	assert.Equal(t, 4, plan.Jobs)
	require.Len(t, plan.Priorities, 3)

	names := func(jobs []Job) []string {
		out := make([]string, len(jobs))
		for i, j := range jobs {
			out[i] = j.Node
		}
		return out
	}
	assert.Equal(t, []string{"A", "B"}, names(plan.Priorities[0]))
	assert.Equal(t, []string{"C"}, names(plan.Priorities[1]))
	assert.Equal(t, []string{"D"}, names(plan.Priorities[2]))
	assert.Equal(t, []string{"A", "B"}, plan.Priorities[1][0].DependsOn)
	assert.Equal(t, StepKindBuiltin, plan.Priorities[2][0].Kind)

	for _, jobs := range plan.Priorities {
		for _, j := range jobs {
			_, err := uuid.Parse(j.ID)
			assert.NoError(t, err)
		}
	}
}

func TestPlan_LongestChainWins(t *testing.T) {
	r := mustParse(t, `{"nodes": [
		{"name": "Z", "inputs": {"a": "outOfA", "c": "outOfC"}, "outputs": {"o": "outOfZ"}, "stepsource": "z.py"},
		{"name": "C", "inputs": {"b": "outOfB"}, "outputs": {"o": "outOfC"}, "stepsource": "c.py"},
		{"name": "B", "inputs": {"a": "outOfA"}, "outputs": {"o": "outOfB"}, "stepsource": "b.py"},
		{"name": "A", "inputs": {"p": "flavour.p"}, "outputs": {"o": "outOfA"}, "stepsource": "a.py"}
	]}`)

	n := 0
	plan, err := r.Plan(WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("job-%d", n)
	}))
	require.NoError(t, err)
	require.Len(t, plan.Priorities, 4)
	assert.Equal(t, "A", plan.Priorities[0][0].Node)
	assert.Equal(t, "B", plan.Priorities[1][0].Node)
	assert.Equal(t, "C", plan.Priorities[2][0].Node)
	assert.Equal(t, "Z", plan.Priorities[3][0].Node)
	assert.Equal(t, 3, plan.Priorities[3][0].Priority)
	assert.Equal(t, "job-1", plan.Priorities[3][0].ID)
}

func TestPlan_RejectsCycle(t *testing.T) {
	r := mustParse(t, `{"nodes": [
		{"name": "X", "inputs": {"i": "outOfY"}, "outputs": {"o": "outOfX"}, "stepsource": "x.py"},
		{"name": "Y", "inputs": {"i": "outOfX"}, "outputs": {"o": "outOfY"}, "stepsource": "y.py"}
	]}`)

	_, err := r.Plan()
	require.Error(t, err)
	assert.True(t, cerrors.HasCode(err, cerrors.ErrCodeInvalidRecipe))
	assert.Contains(t, err.Error(), "circle")
}

func TestPlan_Empty(t *testing.T) {
	plan, err := (&Recipe{}).Plan()
	require.NoError(t, err)
	assert.Equal(t, 0, plan.Jobs)
	assert.Empty(t, plan.Priorities)
}

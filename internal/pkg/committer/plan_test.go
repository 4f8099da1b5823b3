package committer

import (
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
)

func TestCommitPlan_AddIgnoresNil(t *testing.T) {
	plan := NewPlan()
	assert.True(t, plan.IsEmpty())

	plan.Add(nil)
	plan.Add(spanner.Delete("products", spanner.Key{"a"}))
	plan.AddMultiple([]*spanner.Mutation{nil, spanner.Delete("products", spanner.Key{"b"})})

	assert.False(t, plan.IsEmpty())
	assert.Equal(t, 2, plan.Count())
	assert.Len(t, plan.Mutations(), 2)
}

func TestExistenceCheck_Missing(t *testing.T) {
	check := ExistenceCheck{
		Table:     "products",
		KeyColumn: "product_id",
		Keys:      []string{"a", "b", "c"},
	}

	assert.Empty(t, check.Missing(map[string]bool{"a": true, "b": true, "c": true}))
	assert.Equal(t, []string{"b", "c"}, check.Missing(map[string]bool{"a": true}))
}

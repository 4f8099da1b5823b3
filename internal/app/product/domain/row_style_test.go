package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStyleFor(t *testing.T) {
	tests := []struct {
		name  string
		flags RowFlags
		want  RowStyle
	}{
		{"clean row", RowFlags{}, StyleClean},
		{"changed row", RowFlags{Changed: true}, StyleChanged},
		{"created row", RowFlags{Created: true}, StyleCreated},
		{"created and changed row", RowFlags{Created: true, Changed: true}, StyleCreated},
		{"deleted row", RowFlags{Deleted: true}, StyleDeleted},
		{"deleted wins over changed", RowFlags{Deleted: true, Changed: true}, StyleDeleted},
		{"deleted wins over created", RowFlags{Deleted: true, Created: true}, StyleDeleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StyleFor(tt.flags))
		})
	}
}

func TestRowStyle_IsPending(t *testing.T) {
	assert.False(t, StyleClean.IsPending())
	assert.True(t, StyleChanged.IsPending())
	assert.True(t, StyleCreated.IsPending())
	assert.True(t, StyleDeleted.IsPending())
}

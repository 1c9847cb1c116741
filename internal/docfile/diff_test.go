package docfile

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	tests := []struct {
		name          string
		before, after string
		want          string
	}{
		{name: "identical", before: "same", after: "same", want: "same"},
		{name: "insert", before: "Hello", after: "Hello, World", want: "Hello{+, World+}"},
		{name: "delete", before: "Hello, World", after: "Hello", want: "Hello[-, World-]"},
		{name: "from empty", before: "", after: "new", want: "{+new+}"},
		{name: "to empty", before: "old", after: "", want: "[-old-]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Diff(tt.before, tt.after))
		})
	}
}

package operation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/walteh/codestyle/pkg/log"
)

func TestLineDiff(t *testing.T) {
	tests := []struct {
		name   string
		before string
		after  string
		want   []log.DiffLine
	}{
		{
			name:   "single_changed_line",
			before: "a\nint _mFoo;\nb\n",
			after:  "a\nint mFoo_d;\nb\n",
			want: []log.DiffLine{
				{Op: '-', Text: "int _mFoo;"},
				{Op: '+', Text: "int mFoo_d;"},
			},
		},
		{
			name:   "no_trailing_newline",
			before: "x _mA",
			after:  "x mA_d",
			want: []log.DiffLine{
				{Op: '-', Text: "x _mA"},
				{Op: '+', Text: "x mA_d"},
			},
		},
		{
			name:   "identical",
			before: "same\n",
			after:  "same\n",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lineDiff(tt.before, tt.after))
		})
	}
}

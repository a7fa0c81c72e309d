package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_OnValidChoice_ShouldSelectCategorySlot(t *testing.T) {
	cases := []struct {
		choice string
		want   Category
	}{
		{"1", Medical},
		{"2", Food},
		{"3", Transport},
		{"4", Shopping},
		{"5", Other},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, CategoryFromChoice(tc.choice), "choice %q", tc.choice)
	}
}

func Test_OnAnyOtherChoice_ShouldFallBackToOther(t *testing.T) {
	for _, choice := range []string{"0", "6", "abc", "", "3.5", "007", "-1", " 2"} {
		assert.Equal(t, Other, CategoryFromChoice(choice), "choice %q", choice)
	}
}

package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arome-jobs/jobwatch/internal/vocab"
)

func months(v int) *int { return &v }

func TestMapExperienceLevel(t *testing.T) {
	cases := []struct {
		months *int
		want   vocab.ExperienceBucket
	}{
		{nil, ""},
		{months(-1), ""},
		{months(0), vocab.Experience0To2},
		{months(12), vocab.Experience0To2},
		{months(24), vocab.Experience0To2},
		{months(25), vocab.Experience3To5},
		{months(60), vocab.Experience3To5},
		{months(61), vocab.Experience6To10},
		{months(72), vocab.Experience6To10},
		{months(120), vocab.Experience6To10},
		{months(121), vocab.Experience10Plus},
		{months(180), vocab.Experience10Plus},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, MapExperienceLevel(tc.months), "months=%v", tc.months)
	}
}

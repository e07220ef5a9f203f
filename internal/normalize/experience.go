package normalize

import "github.com/arome-jobs/jobwatch/internal/vocab"

// MapExperienceLevel buckets months of experience. Upper bounds are inclusive:
// 24 months is still "0-2", 24.1 would be "3-5".
func MapExperienceLevel(months *int) vocab.ExperienceBucket {
	if months == nil || *months < 0 {
		return ""
	}

	years := float64(*months) / 12
	switch {
	case years <= 2:
		return vocab.Experience0To2
	case years <= 5:
		return vocab.Experience3To5
	case years <= 10:
		return vocab.Experience6To10
	default:
		return vocab.Experience10Plus
	}
}

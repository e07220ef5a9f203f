package vocab

import "testing"

func TestIsEmploymentType(t *testing.T) {
	for _, value := range EmploymentTypes() {
		if !IsEmploymentType(string(value)) {
			t.Fatalf("expected %q to be a member", value)
		}
	}

	for _, candidate := range []string{"", "full-time", "FULL_TIME", "Intérim", "Stage", "Temporary"} {
		if IsEmploymentType(candidate) {
			t.Fatalf("expected %q to be rejected", candidate)
		}
	}
}

func TestIsExperienceBucket(t *testing.T) {
	for _, value := range ExperienceBuckets() {
		if !value.Valid() {
			t.Fatalf("expected %q to be a member", value)
		}
	}
	for _, candidate := range []string{"", "0–2", "2-5", "10"} {
		if IsExperienceBucket(candidate) {
			t.Fatalf("expected %q to be rejected", candidate)
		}
	}
}

func TestListsAreCopies(t *testing.T) {
	types := EmploymentTypes()
	types[0] = "Mutated"
	if EmploymentTypes()[0] != FullTime {
		t.Fatalf("EmploymentTypes() exposed internal slice")
	}
	if len(types) != 9 {
		t.Fatalf("expected 9 employment types, got %d", len(types))
	}
	if len(ExperienceBuckets()) != 4 {
		t.Fatalf("expected 4 experience buckets")
	}
}

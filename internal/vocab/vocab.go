// Package vocab holds the closed value sets every normalized record is expressed in.
package vocab

// EmploymentType is a canonical employment or contract type. The empty value means unknown.
type EmploymentType string

const (
	FullTime   EmploymentType = "Full-time"
	PartTime   EmploymentType = "Part-time"
	Contract   EmploymentType = "Contract"
	Internship EmploymentType = "Internship"
	CDI        EmploymentType = "CDI"
	CDD        EmploymentType = "CDD"
	Interim    EmploymentType = "Interim"
	Alternance EmploymentType = "Alternance"
	Freelance  EmploymentType = "Freelance"
)

// ExperienceBucket is a canonical years-of-experience range. The empty value means unknown.
type ExperienceBucket string

const (
	Experience0To2   ExperienceBucket = "0-2"
	Experience3To5   ExperienceBucket = "3-5"
	Experience6To10  ExperienceBucket = "6-10"
	Experience10Plus ExperienceBucket = "10+"
)

var employmentTypes = []EmploymentType{
	FullTime,
	PartTime,
	Contract,
	Internship,
	CDI,
	CDD,
	Interim,
	Alternance,
	Freelance,
}

var experienceBuckets = []ExperienceBucket{
	Experience0To2,
	Experience3To5,
	Experience6To10,
	Experience10Plus,
}

// EmploymentTypes returns the closed list of employment types in declaration order.
func EmploymentTypes() []EmploymentType {
	return append([]EmploymentType(nil), employmentTypes...)
}

// ExperienceBuckets returns the closed list of experience buckets, shortest range first.
func ExperienceBuckets() []ExperienceBucket {
	return append([]ExperienceBucket(nil), experienceBuckets...)
}

func IsEmploymentType(candidate string) bool {
	for _, value := range employmentTypes {
		if string(value) == candidate {
			return true
		}
	}
	return false
}

func IsExperienceBucket(candidate string) bool {
	for _, value := range experienceBuckets {
		if string(value) == candidate {
			return true
		}
	}
	return false
}

func (e EmploymentType) Valid() bool {
	return IsEmploymentType(string(e))
}

func (b ExperienceBucket) Valid() bool {
	return IsExperienceBucket(string(b))
}

package domain

// Grade constants define the allowed user tiers.
const (
	GradeUser  = "user"
	GradeAdmin = "admin"
)

// ValidGrades returns the set of valid user grades.
func ValidGrades() []string {
	return []string{GradeUser, GradeAdmin}
}

// IsValidGrade checks whether the given grade string is a valid user grade.
func IsValidGrade(grade string) bool {
	for _, g := range ValidGrades() {
		if g == grade {
			return true
		}
	}
	return false
}

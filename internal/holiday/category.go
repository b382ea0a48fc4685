package holiday

import "strings"

// Category is the user category that decides which holidays carry a
// leave cost
type Category string

const (
	CategoryCitizen       Category = "citizen"
	CategorySoldier       Category = "soldier"
	CategoryCareerSoldier Category = "kevah"
)

// Categories lists the supported categories in display order
var Categories = []Category{CategoryCitizen, CategorySoldier, CategoryCareerSoldier}

// ParseCategory parses a stored or user supplied category.
// Unknown values fall back to citizen.
func ParseCategory(s string) Category {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategorySoldier:
		return CategorySoldier
	case CategoryCareerSoldier, "career_soldier", "career-soldier":
		return CategoryCareerSoldier
	default:
		return CategoryCitizen
	}
}

// Valid reports whether c is one of the supported categories
func (c Category) Valid() bool {
	switch c {
	case CategoryCitizen, CategorySoldier, CategoryCareerSoldier:
		return true
	}
	return false
}

// IsSoldier reports whether the soldier schedule applies
func (c Category) IsSoldier() bool {
	return c == CategorySoldier || c == CategoryCareerSoldier
}

func (c Category) String() string {
	return string(c)
}

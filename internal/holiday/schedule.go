package holiday

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	fullDay = decimal.NewFromInt(1)
	halfDay = decimal.RequireFromString("0.5")
)

// soldierSchedule lists the observances that displace leave for soldiers
var soldierSchedule = map[string]decimal.Decimal{
	"Purim":                     fullDay,
	"Erev Pesach":               fullDay,
	"Pesach VI":                 fullDay,
	"Lag BaOmer":                fullDay,
	"Erev Shavuot":              halfDay,
	"Erev Rosh Hashana":         halfDay,
	"Erev Yom Kippur":           fullDay,
	"Erev Sukkot":               halfDay,
	"Sukkot VII (Hoshana Raba)": halfDay,
}

// careerSoldierOverrides are applied on top of soldierSchedule
var careerSoldierOverrides = map[string]decimal.Decimal{
	"Erev Shavuot":              fullDay,
	"Erev Rosh Hashana":         fullDay,
	"Erev Sukkot":               fullDay,
	"Sukkot VII (Hoshana Raba)": fullDay,
}

// excluded observances are notable but not days off
var excluded = map[string]bool{
	"Yom Yerushalayim":               true,
	"Yom HaAliyah":                   true,
	"Pesach II":                      true,
	"Pesach VIII":                    true,
	"Yom HaShoah":                    true,
	"Yom HaZikaron":                  true,
	"Shavuot II":                     true,
	"Sukkot II":                      true,
	"Sigd":                           true,
	"Hebrew Language Day":            true,
	"Family Day":                     true,
	"Herzl Day":                      true,
	"Jabotinsky Day":                 true,
	"Yom HaAliyah School Observance": true,
	"Yitzhak Rabin Memorial Day":     true,
	"Ben-Gurion Day":                 true,
}

// Schedule returns the name to cost table for a category. Citizens have
// an empty schedule.
func Schedule(category Category) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	if !category.IsSoldier() {
		return out
	}
	for name, cost := range soldierSchedule {
		out[name] = cost
	}
	if category == CategoryCareerSoldier {
		for name, cost := range careerSoldierOverrides {
			out[name] = cost
		}
	}
	return out
}

// IsExcluded reports whether an observance is never a day off
func IsExcluded(name string) bool {
	return excluded[CanonicalName(name)]
}

// CanonicalName strips the chol hamoed marker so "Pesach VI (CH''M)"
// matches "Pesach VI"
func CanonicalName(name string) string {
	name = strings.TrimSpace(name)
	return strings.TrimSpace(strings.TrimSuffix(name, "(CH''M)"))
}

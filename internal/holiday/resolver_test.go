package holiday

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/chofshli/internal/calendar"
	"github.com/username/chofshli/pkg/dateutil"
	"go.uber.org/zap"
)

type fakeSource struct {
	mu    sync.Mutex
	years map[int][]Observance
	err   error
	calls int
}

func (f *fakeSource) Observances(ctx context.Context, year int) ([]Observance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.years[year], nil
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func ob(y int, m time.Month, d int, name string, kinds ...Kind) Observance {
	return Observance{
		Date:      dateutil.Date(y, m, d),
		Name:      name,
		LocalName: "he:" + name,
		Kinds:     NewKinds(kinds...),
	}
}

// observances2025 mirrors what hebcal reports for Israel in 2025
func observances2025() []Observance {
	return []Observance{
		ob(2025, 3, 14, "Purim", KindMinor),
		ob(2025, 4, 12, "Erev Pesach", KindErev),
		ob(2025, 4, 13, "Pesach I", KindYomTov),
		ob(2025, 4, 14, "Pesach II (CH''M)", KindCholHamoed),
		ob(2025, 4, 18, "Pesach VI (CH''M)", KindCholHamoed),
		ob(2025, 4, 19, "Pesach VII", KindYomTov),
		ob(2025, 4, 24, "Yom HaShoah", KindModern),
		ob(2025, 4, 30, "Yom HaZikaron", KindModern),
		ob(2025, 5, 1, "Yom HaAtzma'ut", KindModern),
		ob(2025, 5, 16, "Lag BaOmer", KindMinor),
		ob(2025, 5, 26, "Yom Yerushalayim", KindModern),
		ob(2025, 6, 1, "Erev Shavuot", KindErev),
		ob(2025, 6, 2, "Shavuot", KindYomTov),
		ob(2025, 8, 3, "Tish'a B'Av", KindMinor),
		ob(2025, 9, 22, "Erev Rosh Hashana", KindErev),
		ob(2025, 9, 23, "Rosh Hashana 5786", KindYomTov),
		ob(2025, 9, 24, "Rosh Hashana II", KindYomTov),
		ob(2025, 10, 1, "Erev Yom Kippur", KindErev),
		ob(2025, 10, 2, "Yom Kippur", KindYomTov),
		ob(2025, 10, 6, "Erev Sukkot", KindErev),
		ob(2025, 10, 7, "Sukkot I", KindYomTov),
		ob(2025, 10, 13, "Sukkot VII (Hoshana Raba)", KindCholHamoed),
		ob(2025, 10, 14, "Shmini Atzeret", KindYomTov),
		ob(2025, 11, 4, "Yitzhak Rabin Memorial Day", KindModern),
		ob(2025, 11, 20, "Sigd", KindModern),
	}
}

func newTestResolver(src Source) *Resolver {
	return NewResolver(src, time.Hour, zap.NewNop())
}

func costOn(t *testing.T, h calendar.Holidays, m time.Month, d int) (decimal.Decimal, bool) {
	t.Helper()
	r, ok := h.Lookup(dateutil.Date(2025, m, d))
	return r.Cost, ok
}

func TestBuild_Citizen(t *testing.T) {
	h := Build(CategoryCitizen, observances2025())

	want := []string{
		"Pesach I", "Pesach VII", "Yom HaAtzma'ut", "Shavuot",
		"Rosh Hashana 5786", "Rosh Hashana II", "Yom Kippur", "Sukkot I", "Shmini Atzeret",
	}
	var got []string
	for _, r := range h.Records() {
		got = append(got, r.Name)
		assert.True(t, r.Cost.Equal(fullDay), "%s cost = %s", r.Name, r.Cost)
	}
	assert.Equal(t, want, got)
}

func TestBuild_Soldier(t *testing.T) {
	h := Build(CategorySoldier, observances2025())

	tests := []struct {
		name  string
		month time.Month
		day   int
		cost  string
	}{
		{"Purim", 3, 14, "1"},
		{"Erev Pesach", 4, 12, "1"},
		{"Pesach VI", 4, 18, "1"},
		{"Lag BaOmer", 5, 16, "1"},
		{"Erev Shavuot", 6, 1, "0.5"},
		{"Erev Rosh Hashana", 9, 22, "0.5"},
		{"Erev Yom Kippur", 10, 1, "1"},
		{"Erev Sukkot", 10, 6, "0.5"},
		{"Hoshana Raba", 10, 13, "0.5"},
		{"Pesach I stays a full day", 4, 13, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cost, ok := costOn(t, h, tt.month, tt.day)
			require.True(t, ok, "%s missing", tt.name)
			assert.Equal(t, tt.cost, cost.String())
		})
	}

	_, ok := costOn(t, h, 8, 3)
	assert.False(t, ok, "Tish'a B'Av is not a day off")
}

func TestBuild_CareerSoldier(t *testing.T) {
	h := Build(CategoryCareerSoldier, observances2025())

	for _, d := range []struct {
		month time.Month
		day   int
	}{{6, 1}, {9, 22}, {10, 6}, {10, 13}, {4, 12}, {3, 14}} {
		cost, ok := costOn(t, h, d.month, d.day)
		require.True(t, ok)
		assert.True(t, cost.Equal(fullDay), "%s-%d cost = %s", d.month, d.day, cost)
	}
	assert.Equal(t, Build(CategorySoldier, observances2025()).Len(), h.Len())
}

func TestBuild_Exclusions(t *testing.T) {
	for _, category := range Categories {
		h := Build(category, observances2025())
		for _, r := range h.Records() {
			assert.False(t, IsExcluded(r.Name), "%s kept %s", category, r.Name)
		}
		_, ok := costOn(t, h, 4, 14)
		assert.False(t, ok, "Pesach II kept for %s", category)
	}
}

func TestBuild_ScheduledYomTovForCitizen(t *testing.T) {
	obs := []Observance{ob(2025, 6, 1, "Erev Shavuot", KindErev, KindYomTov)}

	citizen := Build(CategoryCitizen, obs)
	cost, ok := costOn(t, citizen, 6, 1)
	require.True(t, ok)
	assert.True(t, cost.Equal(fullDay))

	soldier := Build(CategorySoldier, obs)
	cost, ok = costOn(t, soldier, 6, 1)
	require.True(t, ok)
	assert.True(t, cost.Equal(halfDay))
}

func TestBuild_DisplayName(t *testing.T) {
	h := Build(CategoryCitizen, observances2025())
	r, ok := h.Lookup(dateutil.Date(2025, 5, 1))
	require.True(t, ok)
	assert.Equal(t, "he:Yom HaAtzma'ut", r.DisplayName)
	assert.Equal(t, "Yom HaAtzma'ut", r.Name)
}

func TestResolver_SoldierHalfDayCost(t *testing.T) {
	src := &fakeSource{years: map[int][]Observance{2025: observances2025()}}
	r := newTestResolver(src)

	holidays, err := r.Resolve(context.Background(), 2025, CategorySoldier)
	require.NoError(t, err)

	days, err := calendar.Classify(dateutil.Date(2025, 4, 12), dateutil.Date(2025, 4, 12), holidays)
	require.NoError(t, err)
	shavuot, err := calendar.Classify(dateutil.Date(2025, 6, 1), dateutil.Date(2025, 6, 1), holidays)
	require.NoError(t, err)

	totals := calendar.Summarize(append(days, shavuot...))
	assert.Equal(t, "1.5", totals.HolidayCostDays.String())
	assert.Equal(t, 2, totals.HolidayDays)
}

func TestResolver_ExcludedHolidayIsWorkday(t *testing.T) {
	src := &fakeSource{years: map[int][]Observance{2025: observances2025()}}
	r := newTestResolver(src)

	holidays, err := r.Resolve(context.Background(), 2025, CategoryCitizen)
	require.NoError(t, err)

	// Pesach II falls on Monday 14 April 2025
	days, err := calendar.Classify(dateutil.Date(2025, 4, 14), dateutil.Date(2025, 4, 14), holidays)
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, calendar.DayTypeWorkday, days[0].Type)
	assert.Equal(t, 1, calendar.Summarize(days).RequiredLeaveDays)
}

func TestResolver_UnknownCategoryIsCitizen(t *testing.T) {
	src := &fakeSource{years: map[int][]Observance{2025: observances2025()}}
	r := newTestResolver(src)

	unknown, err := r.Resolve(context.Background(), 2025, Category("general"))
	require.NoError(t, err)
	citizen, err := r.Resolve(context.Background(), 2025, CategoryCitizen)
	require.NoError(t, err)

	assert.Equal(t, citizen.Records(), unknown.Records())
	assert.Equal(t, 1, src.callCount(), "unknown category should share the citizen cache entry")
}

func TestResolver_Cache(t *testing.T) {
	src := &fakeSource{years: map[int][]Observance{2025: observances2025()}}
	r := newTestResolver(src)
	ctx := context.Background()

	_, err := r.Resolve(ctx, 2025, CategorySoldier)
	require.NoError(t, err)
	_, err = r.Resolve(ctx, 2025, CategorySoldier)
	require.NoError(t, err)
	assert.Equal(t, 1, src.callCount())

	_, err = r.Resolve(ctx, 2025, CategoryCareerSoldier)
	require.NoError(t, err)
	assert.Equal(t, 2, src.callCount(), "category change rebuilds the calendar")

	r.ClearCache()
	_, err = r.Resolve(ctx, 2025, CategorySoldier)
	require.NoError(t, err)
	assert.Equal(t, 3, src.callCount())
}

func TestResolver_SourceFailureDegrades(t *testing.T) {
	src := &fakeSource{err: errors.New("hebcal exploded")}
	r := newTestResolver(src)

	holidays, err := r.Resolve(context.Background(), 2025, CategoryCitizen)
	require.NoError(t, err)
	assert.Equal(t, 0, holidays.Len())

	days, err := calendar.Classify(dateutil.Date(2025, 4, 13), dateutil.Date(2025, 4, 19), holidays)
	require.NoError(t, err)
	for _, d := range days {
		assert.NotEqual(t, calendar.DayTypeHoliday, d.Type)
	}

	// failures are not cached
	_, _ = r.Resolve(context.Background(), 2025, CategoryCitizen)
	assert.Equal(t, 2, src.callCount())
}

func TestResolver_CanceledContext(t *testing.T) {
	src := &fakeSource{years: map[int][]Observance{2025: observances2025()}}
	r := newTestResolver(src)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Resolve(ctx, 2025, CategoryCitizen)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, src.callCount())
}

func TestResolver_ResolveRangeAcrossYears(t *testing.T) {
	src := &fakeSource{years: map[int][]Observance{
		2025: observances2025(),
		2026: {
			ob(2026, 4, 2, "Pesach I", KindYomTov),
		},
	}}
	r := newTestResolver(src)

	holidays, err := r.ResolveRange(context.Background(),
		dateutil.Date(2025, 10, 1), dateutil.Date(2026, 4, 30), CategoryCitizen)
	require.NoError(t, err)

	_, ok := holidays.Lookup(dateutil.Date(2025, 10, 2))
	assert.True(t, ok, "Yom Kippur 2025 missing")
	_, ok = holidays.Lookup(dateutil.Date(2026, 4, 2))
	assert.True(t, ok, "Pesach 2026 missing")
	assert.Equal(t, 2, src.callCount())
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
	}{
		{"citizen", CategoryCitizen},
		{"soldier", CategorySoldier},
		{"kevah", CategoryCareerSoldier},
		{" Soldier ", CategorySoldier},
		{"career_soldier", CategoryCareerSoldier},
		{"", CategoryCitizen},
		{"admiral", CategoryCitizen},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseCategory(tt.in)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}
	assert.False(t, Category("admiral").Valid())
}

func TestKinds(t *testing.T) {
	k := NewKinds(KindYomTov, KindErev)

	assert.True(t, k.Has(KindYomTov))
	assert.False(t, k.Has(KindModern))
	assert.True(t, k.HasAny(KindModern, KindErev))
	assert.Equal(t, "yomtov,erev", k.String())

	kind, ok := ParseKind("CholHamoed")
	require.True(t, ok)
	assert.Equal(t, KindCholHamoed, kind)
	_, ok = ParseKind("fast")
	assert.False(t, ok)
}

func TestCanonicalName(t *testing.T) {
	assert.Equal(t, "Pesach VI", CanonicalName("Pesach VI (CH''M)"))
	assert.Equal(t, "Sukkot VII (Hoshana Raba)", CanonicalName("Sukkot VII (Hoshana Raba)"))
	assert.True(t, IsExcluded("Sukkot II (CH''M)"))
	assert.False(t, IsExcluded("Sukkot I"))
}

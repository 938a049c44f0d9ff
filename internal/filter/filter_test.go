package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmpty(t *testing.T) {
	s := Empty()

	assert.Equal(t, DefaultPageSize, s.PageSize())
	assert.Zero(t, s.Offset())
	assert.Nil(t, s.Breeds())
	assert.Nil(t, s.ZipCodes())
	assert.False(t, s.AgeMin().Set)
	assert.Equal(t, Asc, s.SortDirection())
}

func TestAddZip_Union(t *testing.T) {
	s, res := Empty().AddZip("10001")
	require.True(t, res.Accepted)
	s, res = s.AddZip(" 94105-1234 ")
	require.True(t, res.Accepted)

	again, res := s.AddZip("10001")
	require.True(t, res.Accepted)
	assert.Equal(t, []string{"10001", "94105-1234"}, again.ZipCodes())
	assert.True(t, again.Equal(s))
}

func TestAddBreed_Union(t *testing.T) {
	s, res := Empty().AddBreed("Beagle")
	require.True(t, res.Accepted)

	again, res := s.AddBreed(" Beagle ")
	require.True(t, res.Accepted)
	assert.Equal(t, []string{"Beagle"}, again.Breeds())
	assert.True(t, again.Equal(s))

	_, res = s.AddBreed("")
	assert.Equal(t, ReasonInvalidBreed, res.Reason)
}

func TestAccessors_ZeroValueMatchesEmpty(t *testing.T) {
	var zero State
	assert.Equal(t, DefaultPageSize, zero.PageSize())
	assert.Equal(t, Asc, zero.SortDirection())
	assert.Equal(t, SortNone, zero.SortField())
	assert.True(t, zero.Equal(Empty()))
}

func TestAddZip_RejectsMalformed(t *testing.T) {
	base, _ := Empty().AddZip("10001")
	for _, zip := range []string{"1000", "100011", "abcde", "10001-12", "10001 1234", ""} {
		t.Run(zip, func(t *testing.T) {
			next, res := base.AddZip(zip)
			assert.False(t, res.Accepted)
			assert.Equal(t, ReasonInvalidZip, res.Reason)
			assert.Equal(t, []string{"10001"}, next.ZipCodes())
		})
	}
}

func TestRemoveZip_Difference(t *testing.T) {
	s, _ := Empty().AddZip("10001")
	s, _ = s.AddZip("60614")

	s, res := s.RemoveZip("10001")
	require.True(t, res.Accepted)
	assert.Equal(t, []string{"60614"}, s.ZipCodes())

	same, res := s.RemoveZip("99999")
	require.True(t, res.Accepted)
	assert.True(t, same.Equal(s))
}

func TestToggleBreed(t *testing.T) {
	s, res := Empty().ToggleBreed("Pug")
	require.True(t, res.Accepted)
	assert.True(t, s.HasBreed("Pug"))

	s, _ = s.ToggleBreed("Beagle")
	assert.Equal(t, []string{"Beagle", "Pug"}, s.Breeds())

	s, _ = s.ToggleBreed("Pug")
	assert.Equal(t, []string{"Beagle"}, s.Breeds())

	_, res = s.ToggleBreed("   ")
	assert.Equal(t, ReasonInvalidBreed, res.Reason)
	_, res = s.ToggleBreed("bad\x00name")
	assert.Equal(t, ReasonInvalidBreed, res.Reason)
}

func TestAge_OutOfRangeKeepsPrior(t *testing.T) {
	s, res := Empty().SetAgeMin("3")
	require.True(t, res.Accepted)

	next, res := s.SetAgeMin("31")
	assert.False(t, res.Accepted)
	assert.Equal(t, ReasonAgeOutOfRange, res.Reason)
	assert.Equal(t, Age{Value: 3, Set: true}, next.AgeMin())

	next, res = s.SetAgeMin("-1")
	assert.Equal(t, ReasonAgeOutOfRange, res.Reason)
	assert.Equal(t, 3, next.AgeMin().Value)

	next, res = s.SetAgeMin("two")
	assert.Equal(t, ReasonNotANumber, res.Reason)
	assert.Equal(t, 3, next.AgeMin().Value)
}

func TestAge_ZeroIsExplicit(t *testing.T) {
	s, res := Empty().SetAgeMin("0")
	require.True(t, res.Accepted)
	assert.True(t, s.AgeMin().Set)
	require.NotNil(t, s.AgeMin().Ptr())
	assert.Equal(t, 0, *s.AgeMin().Ptr())

	s, res = s.SetAgeMin("")
	require.True(t, res.Accepted)
	assert.False(t, s.AgeMin().Set)
	assert.Nil(t, s.AgeMin().Ptr())
	assert.Equal(t, "", s.AgeMin().String())
}

func TestAge_BoundsNotCrossValidated(t *testing.T) {
	s, _ := Empty().SetAgeMin("10")
	s, res := s.SetAgeMax("2")

	assert.True(t, res.Accepted)
	assert.Equal(t, "10", s.AgeMin().String())
	assert.Equal(t, "2", s.AgeMax().String())
}

func TestSetPageSize(t *testing.T) {
	s, _ := Empty().WithOffset(75)

	next, res := s.SetPageSize(50)
	require.True(t, res.Accepted)
	assert.Equal(t, 50, next.PageSize())
	assert.Equal(t, 50, next.Offset())

	next, res = s.SetPageSize(30)
	assert.Equal(t, ReasonInvalidPageSize, res.Reason)
	assert.Equal(t, DefaultPageSize, next.PageSize())
}

func TestWithOffset(t *testing.T) {
	s, res := Empty().WithOffset(50)
	require.True(t, res.Accepted)
	assert.Equal(t, 50, s.Offset())

	_, res = s.WithOffset(30)
	assert.Equal(t, ReasonMisalignedOffset, res.Reason)
	_, res = s.WithOffset(-25)
	assert.Equal(t, ReasonMisalignedOffset, res.Reason)
}

func TestSort(t *testing.T) {
	s, res := Empty().ToggleSort(SortAge)
	require.True(t, res.Accepted)
	assert.Equal(t, SortAge, s.SortField())
	assert.Equal(t, Asc, s.SortDirection())

	s, _ = s.ToggleSort(SortAge)
	assert.Equal(t, Desc, s.SortDirection())

	s, _ = s.ToggleSort(SortName)
	assert.Equal(t, SortName, s.SortField())
	assert.Equal(t, Asc, s.SortDirection())

	_, res = s.SetSort("color", Asc)
	assert.Equal(t, ReasonInvalidSort, res.Reason)
	_, res = s.SetSort(SortBreed, "sideways")
	assert.Equal(t, ReasonInvalidSort, res.Reason)
}

func TestUpdate_DispatchesByKey(t *testing.T) {
	tests := []struct {
		name   string
		key    Key
		value  string
		want   bool
		reason Reason
	}{
		{name: "breed", key: KeyBreed, value: "Pug", want: true},
		{name: "zip add", key: KeyZipAdd, value: "10001", want: true},
		{name: "zip remove", key: KeyZipRemove, value: "10001", want: true},
		{name: "age min", key: KeyAgeMin, value: "4", want: true},
		{name: "age max bad", key: KeyAgeMax, value: "99", reason: ReasonAgeOutOfRange},
		{name: "page size", key: KeyPageSize, value: "100", want: true},
		{name: "page size text", key: KeyPageSize, value: "lots", reason: ReasonInvalidPageSize},
		{name: "offset", key: KeyOffset, value: "25", want: true},
		{name: "offset text", key: KeyOffset, value: "x", reason: ReasonMisalignedOffset},
		{name: "sort field", key: KeySortField, value: "name", want: true},
		{name: "sort direction", key: KeySortDirection, value: "desc", want: true},
		{name: "unknown", key: Key("colour"), value: "red", reason: ReasonUnknownKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, res := Empty().Update(tt.key, tt.value)
			assert.Equal(t, tt.want, res.Accepted)
			assert.Equal(t, tt.reason, res.Reason)
		})
	}
}

func TestUpdate_DoesNotMutateReceiver(t *testing.T) {
	base, _ := Empty().ToggleBreed("Pug")
	base, _ = base.AddZip("10001")

	_, _ = base.ToggleBreed("Beagle")
	_, _ = base.AddZip("60614")
	_, _ = base.RemoveZip("10001")

	assert.Equal(t, []string{"Pug"}, base.Breeds())
	assert.Equal(t, []string{"10001"}, base.ZipCodes())
}

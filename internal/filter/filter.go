// Package filter holds the validated, immutable search filter.
//
// Every change goes through State.Update (or one of the typed helpers) and
// produces a new State plus a Result. A rejected value leaves the previous
// value in place; the Result carries the reason so callers can show it.
package filter

import (
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Limits on filter values.
const (
	DefaultPageSize = 25
	MinAge          = 0
	MaxAge          = 30
	maxBreedLength  = 64
)

// PageSizes lists the selectable page sizes in display order.
var PageSizes = []int{25, 50, 100}

var zipPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

// Key names a filter field for Update.
type Key string

const (
	KeyBreed         Key = "breed"
	KeyZipAdd        Key = "zip_add"
	KeyZipRemove     Key = "zip_remove"
	KeyAgeMin        Key = "age_min"
	KeyAgeMax        Key = "age_max"
	KeyPageSize      Key = "page_size"
	KeyOffset        Key = "offset"
	KeySortField     Key = "sort_field"
	KeySortDirection Key = "sort_direction"
)

// SortField is a sortable record attribute.
type SortField string

const (
	SortNone  SortField = ""
	SortBreed SortField = "breed"
	SortName  SortField = "name"
	SortAge   SortField = "age"
)

// Direction orders a sort.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Reason explains a rejected update.
type Reason string

const (
	ReasonInvalidBreed     Reason = "breed must be 1-64 printable characters"
	ReasonInvalidZip       Reason = "zip code must be 5 digits or ZIP+4"
	ReasonNotANumber       Reason = "age must be a whole number"
	ReasonAgeOutOfRange    Reason = "age must be between 0 and 30"
	ReasonInvalidPageSize  Reason = "page size must be 25, 50 or 100"
	ReasonMisalignedOffset Reason = "offset must be a non-negative multiple of the page size"
	ReasonInvalidSort      Reason = "unknown sort option"
	ReasonUnknownKey       Reason = "unknown filter key"
)

// Result reports whether an update was applied.
type Result struct {
	Accepted bool
	Reason   Reason
}

func accepted() Result          { return Result{Accepted: true} }
func rejected(r Reason) Result { return Result{Reason: r} }

// Age is an optional age bound. Set distinguishes an explicit 0 from no bound.
type Age struct {
	Value int
	Set   bool
}

// String renders the bound, or "" when unset.
func (a Age) String() string {
	if !a.Set {
		return ""
	}
	return strconv.Itoa(a.Value)
}

// Ptr returns the bound as *int for query encoding, nil when unset.
func (a Age) Ptr() *int {
	if !a.Set {
		return nil
	}
	v := a.Value
	return &v
}

// State is a filter snapshot. Fields are only reachable through accessors,
// so every value a State holds went through validation. The zero value
// behaves like Empty. Methods never modify the receiver.
type State struct {
	breeds    map[string]struct{}
	zipCodes  map[string]struct{}
	ageMin    Age
	ageMax    Age
	size      int
	offset    int
	sortField SortField
	sortDir   Direction
}

// Empty returns the session-start filter.
func Empty() State {
	return State{size: DefaultPageSize, sortDir: Asc}
}

// AgeMin returns the lower age bound.
func (s State) AgeMin() Age { return s.ageMin }

// AgeMax returns the upper age bound.
func (s State) AgeMax() Age { return s.ageMax }

// PageSize returns the window size, DefaultPageSize when unset.
func (s State) PageSize() int {
	if s.size <= 0 {
		return DefaultPageSize
	}
	return s.size
}

// Offset returns the window start.
func (s State) Offset() int { return s.offset }

// SortField returns the active sort field, SortNone when unsorted.
func (s State) SortField() SortField { return s.sortField }

// SortDirection returns the sort direction, Asc when unset.
func (s State) SortDirection() Direction {
	if s.sortDir == "" {
		return Asc
	}
	return s.sortDir
}

// Breeds returns the selected breeds in sorted order.
func (s State) Breeds() []string {
	return sortedKeys(s.breeds)
}

// ZipCodes returns the selected zip codes in sorted order.
func (s State) ZipCodes() []string {
	return sortedKeys(s.zipCodes)
}

// HasBreed reports whether breed is selected.
func (s State) HasBreed(breed string) bool {
	_, ok := s.breeds[strings.TrimSpace(breed)]
	return ok
}

// HasZip reports whether zip is selected.
func (s State) HasZip(zip string) bool {
	_, ok := s.zipCodes[strings.TrimSpace(zip)]
	return ok
}

// Update validates value for key and returns the resulting state.
func (s State) Update(key Key, value string) (State, Result) {
	value = strings.TrimSpace(value)
	switch key {
	case KeyBreed:
		return s.ToggleBreed(value)
	case KeyZipAdd:
		return s.AddZip(value)
	case KeyZipRemove:
		return s.RemoveZip(value)
	case KeyAgeMin:
		return s.setAge(value, func(next *State, a Age) { next.ageMin = a })
	case KeyAgeMax:
		return s.setAge(value, func(next *State, a Age) { next.ageMax = a })
	case KeyPageSize:
		n, err := strconv.Atoi(value)
		if err != nil {
			return s, rejected(ReasonInvalidPageSize)
		}
		return s.SetPageSize(n)
	case KeyOffset:
		n, err := strconv.Atoi(value)
		if err != nil {
			return s, rejected(ReasonMisalignedOffset)
		}
		return s.WithOffset(n)
	case KeySortField:
		return s.SetSort(SortField(value), s.SortDirection())
	case KeySortDirection:
		return s.SetSort(s.sortField, Direction(value))
	default:
		return s, rejected(ReasonUnknownKey)
	}
}

// ToggleBreed adds breed when absent and removes it when present.
func (s State) ToggleBreed(breed string) (State, Result) {
	breed = strings.TrimSpace(breed)
	if !validBreed(breed) {
		return s, rejected(ReasonInvalidBreed)
	}
	next := s.clone()
	if _, ok := next.breeds[breed]; ok {
		delete(next.breeds, breed)
	} else {
		next.breeds[breed] = struct{}{}
	}
	return next, accepted()
}

// AddBreed inserts breed. Adding a breed that is already selected is a no-op.
func (s State) AddBreed(breed string) (State, Result) {
	breed = strings.TrimSpace(breed)
	if !validBreed(breed) {
		return s, rejected(ReasonInvalidBreed)
	}
	next := s.clone()
	next.breeds[breed] = struct{}{}
	return next, accepted()
}

// AddZip inserts zip. Adding a zip that is already selected is a no-op.
func (s State) AddZip(zip string) (State, Result) {
	zip = strings.TrimSpace(zip)
	if !zipPattern.MatchString(zip) {
		return s, rejected(ReasonInvalidZip)
	}
	next := s.clone()
	next.zipCodes[zip] = struct{}{}
	return next, accepted()
}

// RemoveZip deletes zip. Removing an absent zip is a no-op.
func (s State) RemoveZip(zip string) (State, Result) {
	zip = strings.TrimSpace(zip)
	next := s.clone()
	delete(next.zipCodes, zip)
	return next, accepted()
}

// SetAgeMin parses and applies the lower bound. Empty clears it.
func (s State) SetAgeMin(raw string) (State, Result) {
	return s.Update(KeyAgeMin, raw)
}

// SetAgeMax parses and applies the upper bound. Empty clears it.
func (s State) SetAgeMax(raw string) (State, Result) {
	return s.Update(KeyAgeMax, raw)
}

func (s State) setAge(raw string, apply func(*State, Age)) (State, Result) {
	next := s.clone()
	if raw == "" {
		apply(&next, Age{})
		return next, accepted()
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return s, rejected(ReasonNotANumber)
	}
	if n < MinAge || n > MaxAge {
		return s, rejected(ReasonAgeOutOfRange)
	}
	apply(&next, Age{Value: n, Set: true})
	return next, accepted()
}

// SetPageSize applies size and realigns the offset down to a multiple of it.
func (s State) SetPageSize(size int) (State, Result) {
	if !slices.Contains(PageSizes, size) {
		return s, rejected(ReasonInvalidPageSize)
	}
	next := s.clone()
	next.size = size
	next.offset -= next.offset % size
	return next, accepted()
}

// WithOffset moves the result window.
func (s State) WithOffset(offset int) (State, Result) {
	if offset < 0 || offset%s.PageSize() != 0 {
		return s, rejected(ReasonMisalignedOffset)
	}
	next := s.clone()
	next.offset = offset
	return next, accepted()
}

// SetSort applies a sort field and direction. An empty field disables sorting.
func (s State) SetSort(field SortField, dir Direction) (State, Result) {
	switch field {
	case SortNone, SortBreed, SortName, SortAge:
	default:
		return s, rejected(ReasonInvalidSort)
	}
	if dir == "" {
		dir = Asc
	}
	if dir != Asc && dir != Desc {
		return s, rejected(ReasonInvalidSort)
	}
	next := s.clone()
	next.sortField = field
	next.sortDir = dir
	return next, accepted()
}

// ToggleSort selects field ascending, or flips the direction when field is
// already the active sort.
func (s State) ToggleSort(field SortField) (State, Result) {
	if s.sortField == field && s.SortDirection() == Asc {
		return s.SetSort(field, Desc)
	}
	return s.SetSort(field, Asc)
}

// Equal reports whether two states describe the same query.
func (s State) Equal(o State) bool {
	return maps.Equal(s.breeds, o.breeds) &&
		maps.Equal(s.zipCodes, o.zipCodes) &&
		s.ageMin == o.ageMin &&
		s.ageMax == o.ageMax &&
		s.PageSize() == o.PageSize() &&
		s.offset == o.offset &&
		s.sortField == o.sortField &&
		s.SortDirection() == o.SortDirection()
}

func (s State) clone() State {
	next := s
	next.breeds = maps.Clone(s.breeds)
	if next.breeds == nil {
		next.breeds = make(map[string]struct{})
	}
	next.zipCodes = maps.Clone(s.zipCodes)
	if next.zipCodes == nil {
		next.zipCodes = make(map[string]struct{})
	}
	next.size = s.PageSize()
	next.sortDir = s.SortDirection()
	return next
}

func validBreed(breed string) bool {
	if breed == "" || utf8.RuneCountInString(breed) > maxBreedLength {
		return false
	}
	for _, r := range breed {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	return slices.Sorted(maps.Keys(set))
}

package catalog

import (
	"net/url"
	"strconv"
	"strings"
)

// Dog mirrors a record returned by POST /dogs.
type Dog struct {
	ID       string `json:"id"`
	ImageURL string `json:"img"`
	Name     string `json:"name"`
	Age      int    `json:"age"`
	ZipCode  string `json:"zip_code"`
	Breed    string `json:"breed"`
}

// SearchResponse mirrors GET /dogs/search.
type SearchResponse struct {
	ResultIDs []string `json:"resultIds"`
	Total     int      `json:"total"`
	Next      string   `json:"next,omitempty"`
	Prev      string   `json:"prev,omitempty"`
}

// NextOffset extracts the numeric "from" value embedded in the next cursor.
// The second return is false when the cursor is absent or carries no offset.
func (r SearchResponse) NextOffset() (int, bool) {
	return CursorOffset(r.Next)
}

// MatchResponse mirrors POST /dogs/match.
type MatchResponse struct {
	Match string `json:"match"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SearchQuery configures /dogs/search requests. Nil age bounds and empty
// slices are omitted from the query string.
type SearchQuery struct {
	Breeds        []string
	ZipCodes      []string
	AgeMin        *int
	AgeMax        *int
	Size          int
	From          int
	SortField     string
	SortDirection string
}

// Values encodes the query the way the search endpoint expects: repeated keys
// for set-valued filters and nothing at all for unset fields.
func (q SearchQuery) Values() url.Values {
	values := url.Values{}
	for _, breed := range q.Breeds {
		if b := strings.TrimSpace(breed); b != "" {
			values.Add("breeds", b)
		}
	}
	for _, zip := range q.ZipCodes {
		if z := strings.TrimSpace(zip); z != "" {
			values.Add("zipCodes", z)
		}
	}
	if q.AgeMin != nil {
		values.Set("ageMin", strconv.Itoa(*q.AgeMin))
	}
	if q.AgeMax != nil {
		values.Set("ageMax", strconv.Itoa(*q.AgeMax))
	}
	if q.Size > 0 {
		values.Set("size", strconv.Itoa(q.Size))
	}
	if q.From > 0 {
		values.Set("from", strconv.Itoa(q.From))
	}
	if field := strings.TrimSpace(q.SortField); field != "" {
		values.Set("sortField", field)
		if dir := strings.TrimSpace(q.SortDirection); dir != "" {
			values.Set("sort", dir)
		}
	}
	return values
}

// CursorOffset parses the "from" parameter out of a pagination cursor such as
// "/dogs/search?size=25&from=25".
func CursorOffset(cursor string) (int, bool) {
	cursor = strings.TrimSpace(cursor)
	if cursor == "" {
		return 0, false
	}
	u, err := url.Parse(cursor)
	if err != nil {
		return 0, false
	}
	raw := u.Query().Get("from")
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

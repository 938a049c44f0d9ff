package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/five82/pawmatch/internal/catalog"
	"github.com/five82/pawmatch/internal/filter"
	"github.com/five82/pawmatch/internal/paging"
	"github.com/five82/pawmatch/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run one filtered search and print the page",
	Long: `Run one filtered search and print the resulting page.

Breeds and zip codes may be repeated. Values are validated the same way the
interactive filter validates them.`,
	Example: `  pawmatch search --breed Beagle --breed Boxer --zip 10001 --age-max 5
  pawmatch search --sort age --desc --size 50 --from 50`,
	Args: cobra.NoArgs,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringSlice("breed", nil, "Breed to include (repeatable)")
	searchCmd.Flags().StringSlice("zip", nil, "Zip code to include (repeatable)")
	searchCmd.Flags().String("age-min", "", "Minimum age in years")
	searchCmd.Flags().String("age-max", "", "Maximum age in years")
	searchCmd.Flags().Int("size", filter.DefaultPageSize, "Page size: 25, 50 or 100")
	searchCmd.Flags().Int("from", 0, "Offset of the first result (multiple of --size)")
	searchCmd.Flags().String("sort", "", "Sort field: breed, name or age")
	searchCmd.Flags().Bool("desc", false, "Sort descending")
	searchCmd.Flags().String("format", "table", "Output format: table or json")
}

// filterFromFlags builds a filter the way the interactive editor would,
// stopping at the first rejected value.
func filterFromFlags(cmd *cobra.Command) (filter.State, error) {
	flags := cmd.Flags()
	f := filter.Empty()

	// accept adopts next or reports the rejection against flag.
	accept := func(flag string) func(filter.State, filter.Result) error {
		return func(next filter.State, res filter.Result) error {
			if !res.Accepted {
				return fmt.Errorf("--%s: %s", flag, res.Reason)
			}
			f = next
			return nil
		}
	}

	breedList, _ := flags.GetStringSlice("breed")
	for _, b := range breedList {
		if err := accept("breed")(f.AddBreed(b)); err != nil {
			return f, err
		}
	}
	zips, _ := flags.GetStringSlice("zip")
	for _, z := range zips {
		if err := accept("zip")(f.AddZip(z)); err != nil {
			return f, err
		}
	}

	ageMin, _ := flags.GetString("age-min")
	ageMax, _ := flags.GetString("age-max")
	size, _ := flags.GetInt("size")
	sortField, _ := flags.GetString("sort")
	desc, _ := flags.GetBool("desc")
	from, _ := flags.GetInt("from")
	dir := filter.Asc
	if desc {
		dir = filter.Desc
	}

	if err := accept("age-min")(f.SetAgeMin(ageMin)); err != nil {
		return f, err
	}
	if err := accept("age-max")(f.SetAgeMax(ageMax)); err != nil {
		return f, err
	}
	if err := accept("size")(f.SetPageSize(size)); err != nil {
		return f, err
	}
	if err := accept("sort")(f.SetSort(filter.SortField(sortField), dir)); err != nil {
		return f, err
	}
	if err := accept("from")(f.WithOffset(from)); err != nil {
		return f, err
	}
	return f, nil
}

func runSearch(cmd *cobra.Command, _ []string) error {
	f, err := filterFromFlags(cmd)
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")
	if format != "table" && format != "json" {
		return fmt.Errorf("--format: unknown format %q", format)
	}

	svc, cleanup, err := cliServices(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	page, err := svc.Search.Search(cmd.Context(), f)
	if err != nil {
		return err
	}

	if format == "json" {
		return writeJSON(cmd.OutOrStdout(), searchOutput{
			Total:  page.Total,
			Offset: page.Offset,
			Next:   nextOffset(page),
			Dogs:   page.Dogs,
		})
	}
	return writePage(cmd.OutOrStdout(), page)
}

type searchOutput struct {
	Total  int           `json:"total"`
	Offset int           `json:"offset"`
	Next   *int          `json:"next,omitempty"`
	Dogs   []catalog.Dog `json:"dogs"`
}

func nextOffset(page search.Page) *int {
	if !page.HasNext {
		return nil
	}
	n := page.NextOffset
	return &n
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writePage prints dogs as a table followed by the window summary.
func writePage(w io.Writer, page search.Page) error {
	if len(page.Dogs) == 0 {
		_, err := fmt.Fprintln(w, "No dogs match these filters.")
		return err
	}
	_, err := fmt.Fprintln(w, dogTable(page.Dogs))
	if err != nil {
		return err
	}
	first, last := paging.Window(page.Offset, page.Filter.PageSize(), page.Total)
	_, err = fmt.Fprintf(w, "Showing %d-%d of %d\n", first, last, page.Total)
	return err
}

func dogTable(dogs []catalog.Dog) string {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("ID", "NAME", "BREED", "AGE", "ZIP").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	for _, d := range dogs {
		t.Row(d.ID, d.Name, d.Breed, strconv.Itoa(d.Age), d.ZipCode)
	}
	return t.String()
}

package app

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/pawmatch/internal/catalog"
	"github.com/five82/pawmatch/internal/catalog/catalogtest"
)

// resetFlags restores defaults on the shared command tree so one run's flags
// do not leak into the next.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the root command with args against srv.
func execute(t *testing.T, srv *catalogtest.Server, args ...string) (string, error) {
	t.Helper()
	t.Setenv("PAWMATCH_API_URL", srv.URL)
	t.Setenv("PAWMATCH_NAME", "Ada")
	t.Setenv("PAWMATCH_EMAIL", "ada@example.com")
	t.Setenv("PAWMATCH_LOG_LEVEL", "error")

	var out bytes.Buffer
	cmd := NewRootCmd()
	resetFlags(cmd)
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "config.toml")))
	err := cmd.Execute()
	return out.String(), err
}

func TestBreedsCommand(t *testing.T) {
	srv := catalogtest.New(catalogtest.SampleDogs())
	t.Cleanup(srv.Close)

	out, err := execute(t, srv, "breeds", "beag")
	require.NoError(t, err)
	assert.Equal(t, "Beagle\n", out)

	out, err = execute(t, srv, "breeds")
	require.NoError(t, err)
	assert.Contains(t, out, "German Shepherd")
	assert.Contains(t, out, "Pug")
}

func TestSearchCommand_JSON(t *testing.T) {
	srv := catalogtest.New(catalogtest.SampleDogs())
	t.Cleanup(srv.Close)

	out, err := execute(t, srv, "search", "--breed", "Pug", "--zip", "10001", "--format", "json")
	require.NoError(t, err)

	var got struct {
		Total int           `json:"total"`
		Dogs  []catalog.Dog `json:"dogs"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 1, got.Total)
	require.Len(t, got.Dogs, 1)
	assert.Equal(t, "Ollie", got.Dogs[0].Name)
}

func TestSearchCommand_Table(t *testing.T) {
	srv := catalogtest.New(catalogtest.SampleDogs())
	t.Cleanup(srv.Close)

	out, err := execute(t, srv, "search", "--breed", "Beagle", "--sort", "age")
	require.NoError(t, err)
	assert.Contains(t, out, "Pepper")
	assert.Contains(t, out, "Luna")
	assert.Contains(t, out, "Showing 1-2 of 2")
}

func TestSearchCommand_RepeatedBreedStaysSelected(t *testing.T) {
	srv := catalogtest.New(catalogtest.SampleDogs())
	t.Cleanup(srv.Close)

	out, err := execute(t, srv, "search", "--breed", "Beagle", "--breed", "Beagle", "--format", "json")
	require.NoError(t, err)

	var got struct {
		Total int           `json:"total"`
		Dogs  []catalog.Dog `json:"dogs"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 2, got.Total)
	for _, d := range got.Dogs {
		assert.Equal(t, "Beagle", d.Breed)
	}
}

func TestFilterFromFlags_RepeatedBreed(t *testing.T) {
	cmd := NewRootCmd()
	resetFlags(cmd)
	require.NoError(t, searchCmd.Flags().Set("breed", "Beagle"))
	require.NoError(t, searchCmd.Flags().Set("breed", "Beagle"))
	t.Cleanup(func() { resetFlags(cmd) })

	f, err := filterFromFlags(searchCmd)
	require.NoError(t, err)
	assert.Equal(t, []string{"Beagle"}, f.Breeds())
}

func TestSearchCommand_RejectsInvalidFilter(t *testing.T) {
	srv := catalogtest.New(catalogtest.SampleDogs())
	t.Cleanup(srv.Close)

	_, err := execute(t, srv, "search", "--zip", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--zip")
	assert.Zero(t, srv.Calls("/dogs/search"))
}

func TestMatchCommand(t *testing.T) {
	srv := catalogtest.New(catalogtest.SampleDogs())
	t.Cleanup(srv.Close)
	srv.SetMatchPicker(func(ids []string) string { return ids[len(ids)-1] })

	out, err := execute(t, srv, "match", "--id", "d01", "--id", "d04", "--format", "json")
	require.NoError(t, err)

	var dog catalog.Dog
	require.NoError(t, json.Unmarshal([]byte(out), &dog))
	assert.Equal(t, "d04", dog.ID)
	assert.Equal(t, "Luna", dog.Name)
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := NewRootCmd()
	resetFlags(cmd)
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version", "--format", "json"})
	require.NoError(t, cmd.Execute())

	var info versionInfo
	require.NoError(t, json.Unmarshal(out.Bytes(), &info))
	assert.Equal(t, Version, info.Version)
	assert.NotEmpty(t, info.GoVersion)
}

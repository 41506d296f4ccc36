package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/climate-map/internal/mockdata"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func fixtures(t *testing.T) (string, string) {
	t.Helper()
	b, o, err := mockdata.WriteFixtures(t.TempDir())
	require.NoError(t, err)
	return b, o
}

func TestValidateText(t *testing.T) {
	b, o := fixtures(t)

	out, err := execute(t, "--boundaries", b, "--observations", o)
	require.NoError(t, err)

	assert.Contains(t, out, "4 features, 0 unnamed")
	assert.Contains(t, out, "(12 rows)")
	assert.Contains(t, out, "years:      2018, 2019, 2020")
	assert.Contains(t, out, "Join on MUNICIPIO: 3 matched")
	assert.Contains(t, out, `no boundary:     "POTOSI" (did you mean "POTOSÍ"?)`)
	assert.Contains(t, out, `no observations: "POTOSÍ"`)
	assert.Contains(t, out, "WARN")
}

func TestValidateJSON(t *testing.T) {
	b, o := fixtures(t)

	out, err := execute(t, "--boundaries", b, "--observations", o, "--format", "json")
	require.NoError(t, err)

	var r report
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, 4, r.Features)
	assert.Equal(t, 12, r.Rows)
	assert.Equal(t, []int{2018, 2019, 2020}, r.Years)
	assert.True(t, r.JoinKeyPresent)
	assert.Empty(t, r.MissingColumns)
	assert.Equal(t, 3, r.Join.Matched)
	assert.Equal(t, "POTOSÍ", r.Join.Suggestions["POTOSI"])
}

func TestValidateStrict(t *testing.T) {
	b, o := fixtures(t)

	_, err := execute(t, "--boundaries", b, "--observations", o, "--strict")
	require.ErrorIs(t, err, errJoinIncomplete)
}

func TestValidateMissingJoinColumn(t *testing.T) {
	b, _ := fixtures(t)
	csvPath := filepath.Join(t.TempDir(), "clima.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("NOMBRE,AÑO,TEMPERATURA\nLA PAZ,2020,11\n"), 0o600))

	out, err := execute(t, "--boundaries", b, "--observations", csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, `FAIL  column "MUNICIPIO" not found`)
	assert.Contains(t, out, "TEMP_MIN, TEMP_MAX, PRECIPITACIONES")

	_, err = execute(t, "--boundaries", b, "--observations", csvPath, "--strict")
	require.ErrorIs(t, err, errJoinIncomplete)
}

func TestValidateErrors(t *testing.T) {
	b, o := fixtures(t)

	_, err := execute(t, "--boundaries", b, "--observations", o, "--format", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")

	_, err = execute(t, "--boundaries", b+".missing", "--observations", o)
	require.Error(t, err)
}

package openmht

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeParamsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "params.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadParams(t *testing.T) {
	path := writeParamsFile(t, `# tracker parameters
v=307200   # image area
dth=1000
k=0
q=1e-5
r=0.01
n=5
bth=50
nmiss=2
`)

	params, err := LoadParams(path)
	require.NoError(t, err)
	assert.Equal(t, Params{
		V:     307200,
		DTh:   1000,
		K:     0,
		Q:     1e-5,
		R:     0.01,
		N:     5,
		BTh:   50,
		NMiss: 2,
	}, params)
}

func TestLoadParams_MissingKeys(t *testing.T) {
	path := writeParamsFile(t, "v=307200\ndth=1000\n")

	_, err := LoadParams(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfig)
	assert.Contains(t, err.Error(), "nmiss")
}

func TestLoadParams_BadValue(t *testing.T) {
	path := writeParamsFile(t, `v=307200
dth=wide
k=0
q=1e-5
r=0.01
n=5
bth=50
nmiss=2
`)

	_, err := LoadParams(path)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestLoadParams_MissingFile(t *testing.T) {
	_, err := LoadParams(filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, ErrConfig)
}

func TestParams_Validate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Params)
	}{
		{"v too small", func(p *Params) { p.V = 1 }},
		{"negative dth", func(p *Params) { p.DTh = -1 }},
		{"negative q", func(p *Params) { p.Q = -1 }},
		{"negative r", func(p *Params) { p.R = -0.5 }},
		{"negative n", func(p *Params) { p.N = -1 }},
		{"zero bth", func(p *Params) { p.BTh = 0 }},
		{"negative nmiss", func(p *Params) { p.NMiss = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := DefaultParams()
			tc.mutate(&params)
			assert.ErrorIs(t, params.validate(), ErrConfig)
		})
	}

	assert.NoError(t, DefaultParams().validate())
}

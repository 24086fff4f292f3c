package uv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.milieux.dev/milieux/internal/core/domain"
)

func TestIndexArgs(t *testing.T) {
	assert.Empty(t, indexArgs(domain.IndexConfig{}))

	assert.Equal(t,
		[]string{"--default-index", "https://mirror.example.com/simple"},
		indexArgs(domain.IndexConfig{DefaultIndexURL: "https://mirror.example.com/simple"}))

	assert.Equal(t,
		[]string{
			"--default-index", "https://mirror.example.com/simple",
			"--index", "https://internal.example.com/simple",
			"--index", "https://staging.example.com/simple",
		},
		indexArgs(domain.IndexConfig{
			DefaultIndexURL: "https://mirror.example.com/simple",
			IndexURLs: []string{
				"https://internal.example.com/simple",
				"https://staging.example.com/simple",
			},
		}))
}

func TestVenvEnv(t *testing.T) {
	env := domain.Environment{Name: "dev", Path: "/srv/envs/dev"}
	assert.Equal(t, []string{"VIRTUAL_ENV=/srv/envs/dev"}, venvEnv(env))
}

func TestConflictingNames(t *testing.T) {
	stderr := `  x No solution found when resolving dependencies:
  '-> Because only foo<=1.0 is available and you require foo>=2.0,
     we can conclude that the requirements are unsatisfiable.
     And because Bar[extra]==3.1 depends on foo<=1.0 ...`

	assert.Equal(t, []string{"bar", "foo"}, conflictingNames(stderr))
}

func TestConflictingNames_NotAConflict(t *testing.T) {
	assert.Nil(t, conflictingNames("error: failed to fetch https://pypi.org/simple/"))
	assert.Nil(t, conflictingNames(""))
}

func TestConflictingNames_ConflictWithoutNames(t *testing.T) {
	names := conflictingNames("No solution found when resolving dependencies")
	assert.NotNil(t, names)
	assert.Empty(t, names)
}

func TestParseFreeze(t *testing.T) {
	output := `requests==2.31.0
typing_extensions==4.9.0

# editable installs
mypkg @ file:///home/dev/mypkg
`
	installed := ParseFreeze(output)
	assert.Equal(t, []domain.InstalledPackage{
		{Name: "requests", Version: "2.31.0"},
		{Name: "typing_extensions", Version: "4.9.0"},
		{Name: "mypkg", Version: "file:///home/dev/mypkg"},
	}, installed)
}

func TestParseFreeze_Empty(t *testing.T) {
	assert.Empty(t, ParseFreeze(""))
	assert.Empty(t, ParseFreeze("\n# nothing\n"))
}

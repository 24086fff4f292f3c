package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.milieux.dev/milieux/internal/core/domain"
)

func mustSpec(t *testing.T, line string) domain.Specifier {
	t.Helper()
	spec, err := domain.ParseSpecifier(line)
	require.NoError(t, err)
	return spec
}

func TestTargetSet_LastWriteWins(t *testing.T) {
	set := domain.NewTargetSet()
	set.Add(mustSpec(t, "requests==1.0"))
	set.Add(mustSpec(t, "requests==2.0"))

	assert.Equal(t, 1, set.Len())
	spec, ok := set.Get("requests")
	require.True(t, ok)
	assert.Equal(t, "requests==2.0", spec.String())
}

func TestTargetSet_KeysByNormalizedName(t *testing.T) {
	set := domain.NewTargetSet()
	set.Add(mustSpec(t, "Typing_Extensions==4.0"))
	set.Add(mustSpec(t, "typing-extensions==4.9"))

	assert.Equal(t, 1, set.Len())
	spec, ok := set.Get("TYPING.EXTENSIONS")
	require.True(t, ok)
	assert.Equal(t, "typing-extensions==4.9", spec.String())
}

func TestTargetSet_SortedAndNames(t *testing.T) {
	set := domain.NewTargetSet()
	set.Add(mustSpec(t, "zope.interface==6.0"))
	set.Add(mustSpec(t, "attrs==23.1"))
	set.Add(mustSpec(t, "Numpy==1.26"))

	assert.Equal(t, []string{"attrs", "numpy", "zope-interface"}, set.Names())

	sorted := set.Sorted()
	require.Len(t, sorted, 3)
	assert.Equal(t, "attrs", sorted[0].Name)
	assert.Equal(t, "Numpy", sorted[1].Name)
	assert.Equal(t, "zope.interface", sorted[2].Name)
}

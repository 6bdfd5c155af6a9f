package module

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilterSimpleComparisons(t *testing.T) {
	f, err := ParseFilter("(package=com.foo)")
	require.NoError(t, err)
	assert.True(t, f.Matches(Properties{"package": "com.foo"}))
	assert.False(t, f.Matches(Properties{"package": "com.bar"}))
}

func TestParseFilterCaseInsensitiveKeys(t *testing.T) {
	f, err := ParseFilter("(Package=com.foo)")
	require.NoError(t, err)
	assert.True(t, f.Matches(Properties{"package": "com.foo"}))
}

func TestParseFilterPresence(t *testing.T) {
	f, err := ParseFilter("(package=*)")
	require.NoError(t, err)
	assert.True(t, f.Matches(Properties{"package": "anything"}))
	assert.False(t, f.Matches(Properties{}))
}

func TestParseFilterAndOr(t *testing.T) {
	f, err := ParseFilter("(&(package=com.foo)(version>=1.0.0))")
	require.NoError(t, err)
	assert.True(t, f.Matches(Properties{"package": "com.foo", "version": Version{Major: 1, Minor: 5}}))
	assert.False(t, f.Matches(Properties{"package": "com.foo", "version": Version{Major: 0, Minor: 9}}))

	f, err = ParseFilter("(|(package=com.foo)(package=com.bar))")
	require.NoError(t, err)
	assert.True(t, f.Matches(Properties{"package": "com.bar"}))
	assert.False(t, f.Matches(Properties{"package": "com.baz"}))
}

func TestParseFilterNot(t *testing.T) {
	f, err := ParseFilter("(!(package=com.foo))")
	require.NoError(t, err)
	assert.False(t, f.Matches(Properties{"package": "com.foo"}))
	assert.True(t, f.Matches(Properties{"package": "com.bar"}))
}

func TestParseFilterVersionComparison(t *testing.T) {
	f, err := ParseFilter("(version>=2.0.0)")
	require.NoError(t, err)
	assert.True(t, f.Matches(Properties{"version": Version{Major: 2, Minor: 0, Micro: 0}}))
	assert.True(t, f.Matches(Properties{"version": Version{Major: 3, Minor: 0, Micro: 0}}))
	assert.False(t, f.Matches(Properties{"version": Version{Major: 1, Minor: 9, Micro: 9}}))
}

func TestParseFilterInvalid(t *testing.T) {
	cases := []string{"", "package=com.foo", "(package)", "(&(package=com.foo)"}
	for _, expr := range cases {
		_, err := ParseFilter(expr)
		require.Error(t, err, "expected error for %q", expr)
		assert.ErrorIs(t, err, ErrInvalidFilter)
	}
}

func TestPackageNameFilterAndAndFilter(t *testing.T) {
	f := AndFilter(PackageNameFilter("com.foo"), PackageNameFilter("com.foo"))
	assert.True(t, f.Matches(Properties{"package": "com.foo"}))
}

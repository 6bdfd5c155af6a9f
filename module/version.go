package module

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Version is an OSGi-style major.minor.micro[.qualifier] version. Ordering
// follows the framework convention: numeric fields compare numerically, the
// qualifier compares lexically, and a missing qualifier sorts before any
// qualifier.
type Version struct {
	Major, Minor, Micro int
	Qualifier           string
}

// ParseVersion parses "1", "1.2", "1.2.3" or "1.2.3.qualifier".
func ParseVersion(s string) (Version, error) {
	if s == "" {
		return Version{}, nil
	}
	parts := strings.SplitN(s, ".", 4)
	var v Version
	var err error
	if v.Major, err = atoiPart(parts, 0); err != nil {
		return Version{}, fmt.Errorf("%w: %s", ErrInvalidVersion, s)
	}
	if v.Minor, err = atoiPart(parts, 1); err != nil {
		return Version{}, fmt.Errorf("%w: %s", ErrInvalidVersion, s)
	}
	if v.Micro, err = atoiPart(parts, 2); err != nil {
		return Version{}, fmt.Errorf("%w: %s", ErrInvalidVersion, s)
	}
	if len(parts) == 4 {
		v.Qualifier = parts[3]
	}
	return v, nil
}

func atoiPart(parts []string, idx int) (int, error) {
	if idx >= len(parts) || parts[idx] == "" {
		return 0, nil
	}
	return strconv.Atoi(parts[idx])
}

// semver renders the version as a semver-compatible string so that ordering
// can be delegated to Masterminds/semver instead of hand-rolled comparisons.
// The qualifier becomes a semver prerelease component (a missing qualifier
// is written as "~", which sanitizeQualifier turns into "-"). Compare only
// calls this when the numeric fields differ, so the prerelease component
// never decides an ordering; qualifiers are ordered by Compare itself.
func (v Version) semver() *semver.Version {
	q := v.Qualifier
	if q == "" {
		q = "~"
	}
	sv, err := semver.NewVersion(fmt.Sprintf("%d.%d.%d-%s", v.Major, v.Minor, v.Micro, sanitizeQualifier(q)))
	if err != nil {
		// Qualifiers may contain characters semver's prerelease grammar
		// rejects; fall back to a numeric-only version so Compare still
		// orders correctly on the parts semver understands.
		sv = semver.MustParse(fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Micro))
	}
	return sv
}

func sanitizeQualifier(q string) string {
	var b strings.Builder
	for _, r := range q {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "q"
	}
	return b.String()
}

// Compare returns -1, 0, or 1 following OSGi version ordering: numeric
// fields first, qualifier last, no-qualifier sorts before any qualifier.
func (v Version) Compare(o Version) int {
	if v.Major != o.Major || v.Minor != o.Minor || v.Micro != o.Micro {
		return v.semver().Compare(o.semver())
	}
	if v.Qualifier == o.Qualifier {
		return 0
	}
	if v.Qualifier == "" {
		return -1
	}
	if o.Qualifier == "" {
		return 1
	}
	return strings.Compare(v.Qualifier, o.Qualifier)
}

func (v Version) String() string {
	if v.Qualifier == "" {
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Micro)
	}
	return fmt.Sprintf("%d.%d.%d.%s", v.Major, v.Minor, v.Micro, v.Qualifier)
}

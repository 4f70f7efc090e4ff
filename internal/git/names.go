package git

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ChangesetPrefix is the reserved prefix of changeset branches.
const ChangesetPrefix = "changeset/"

// DefaultChangesetName is used when a fresh changeset is requested without a name.
const DefaultChangesetName = "new-changeset"

// IsChangeset reports whether branch is a changeset branch.
func IsChangeset(branch string) bool {
	return strings.HasPrefix(branch, ChangesetPrefix) && len(branch) > len(ChangesetPrefix)
}

// LocalNameForRemote derives the local changeset name for a remote branch:
// a leading "origin/" and any existing "changeset/" prefixes are stripped
// and exactly one "changeset/" prefix is added. Applying it twice is a no-op.
func LocalNameForRemote(remote string) string {
	name := strings.TrimPrefix(remote, "origin/")
	for strings.HasPrefix(name, ChangesetPrefix) {
		name = strings.TrimPrefix(name, ChangesetPrefix)
	}
	return ChangesetPrefix + name
}

// invalidRefChars matches characters git or the shell would choke on.
var invalidRefChars = regexp.MustCompile(`[\s~^:?*\[\]\\{}#@()&|;<>$` + "`" + `'"]+`)

var repeatedHyphens = regexp.MustCompile(`-{2,}`)

var repeatedSlashes = regexp.MustCompile(`/{2,}`)

// SanitizeChangesetName turns free-form input into a safe branch suffix.
// Input is NFKC-normalized, an existing changeset/ prefix is dropped and
// invalid characters become hyphens. Empty results yield DefaultChangesetName.
func SanitizeChangesetName(name string) string {
	name = norm.NFKC.String(strings.TrimSpace(name))
	for strings.HasPrefix(name, ChangesetPrefix) {
		name = strings.TrimPrefix(name, ChangesetPrefix)
	}

	name = invalidRefChars.ReplaceAllString(name, "-")
	name = strings.ReplaceAll(name, "..", "-")
	name = repeatedSlashes.ReplaceAllString(name, "/")
	name = repeatedHyphens.ReplaceAllString(name, "-")
	name = strings.TrimSuffix(name, ".lock")
	name = strings.Trim(name, "-./")

	if name == "" {
		return DefaultChangesetName
	}
	return name
}

// ChangesetBranch returns the full branch name for a changeset name.
func ChangesetBranch(name string) string {
	return ChangesetPrefix + SanitizeChangesetName(name)
}

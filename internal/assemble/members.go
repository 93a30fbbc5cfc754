package assemble

import (
	"fmt"
	"slices"
	"strings"

	"github.com/castlebridge/smithyast/internal/ast"
)

// MemberPolicy configures the reusable member-name constraint checker.
type MemberPolicy struct {
	// RequireNonEmpty rejects an empty member mapping.
	RequireNonEmpty bool
	// RequireEnumMemberNames additionally holds every name to the stricter
	// enum member grammar.
	RequireEnumMemberNames bool
}

// validateMemberNames checks a shape's member names against the policy,
// accumulating every violation found in one pass. Names must already have
// passed the identifier grammar; lexical failures are reported by the caller
// and excluded here.
func validateMemberNames(path string, names []string, policy MemberPolicy) []ValidationError {
	var errs []ValidationError

	if policy.RequireNonEmpty && len(names) == 0 {
		errs = append(errs, errorf(ErrEmptyMemberSet, path, "at least one member is required"))
	}

	sorted := slices.Clone(names)
	slices.Sort(sorted)

	// Group by lower-cased name; any group of two or more is a
	// case-insensitive collision. Every colliding name is reported, not just
	// the first pair found.
	groups := make(map[string][]string, len(sorted))
	for _, name := range sorted {
		lower := strings.ToLower(name)
		groups[lower] = append(groups[lower], name)
	}
	lowered := make([]string, 0, len(groups))
	for lower := range groups {
		lowered = append(lowered, lower)
	}
	slices.Sort(lowered)
	for _, lower := range lowered {
		group := groups[lower]
		if len(group) > 1 {
			quoted := make([]string, len(group))
			for i, name := range group {
				quoted[i] = fmt.Sprintf("%q", name)
			}
			errs = append(errs, errorf(ErrDuplicateMember, path,
				"member names collide case-insensitively: %s", strings.Join(quoted, ", ")))
		}
	}

	if policy.RequireEnumMemberNames {
		for _, name := range sorted {
			if _, err := ast.ParseEnumMemberIdentifier(name); err != nil {
				errs = append(errs, errorf(ErrInvalidEnumMemberName, childKey(path, name),
					"%q is not a valid enum member name", name))
			}
		}
	}

	return errs
}

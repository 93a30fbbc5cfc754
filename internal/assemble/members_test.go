package assemble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateMemberNamesAccepts(t *testing.T) {
	errs := validateMemberNames("shapes.\"ns#S\".members", []string{"Foo", "Bar"}, MemberPolicy{})
	assert.Empty(t, errs)
}

func TestValidateMemberNamesCaseCollision(t *testing.T) {
	errs := validateMemberNames("shapes.\"ns#S\".members", []string{"Foo", "foo", "Bar"}, MemberPolicy{})
	require.Len(t, errs, 1, "exactly one error naming all colliding keys")
	assert.Equal(t, ErrDuplicateMember, errs[0].Code)
	assert.Contains(t, errs[0].Message, `"Foo"`)
	assert.Contains(t, errs[0].Message, `"foo"`)
	assert.NotContains(t, errs[0].Message, `"Bar"`)
}

func TestValidateMemberNamesMultipleCollisionGroups(t *testing.T) {
	errs := validateMemberNames("p", []string{"a", "A", "b", "B"}, MemberPolicy{})
	require.Len(t, errs, 2)
	for _, e := range errs {
		assert.Equal(t, ErrDuplicateMember, e.Code)
	}
}

func TestValidateMemberNamesEmptySet(t *testing.T) {
	errs := validateMemberNames("p", nil, MemberPolicy{RequireNonEmpty: true})
	require.Len(t, errs, 1)
	assert.Equal(t, ErrEmptyMemberSet, errs[0].Code)

	// empty is fine without the policy
	assert.Empty(t, validateMemberNames("p", nil, MemberPolicy{}))
}

func TestValidateMemberNamesEnumNames(t *testing.T) {
	policy := MemberPolicy{RequireNonEmpty: true, RequireEnumMemberNames: true}

	assert.Empty(t, validateMemberNames("p", []string{"FOO", "BAR"}, policy))

	errs := validateMemberNames("p", []string{"_FOO"}, policy)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrInvalidEnumMemberName, errs[0].Code)
	assert.Equal(t, `p."_FOO"`, errs[0].Path)
}

func TestValidateMemberNamesAccumulatesAll(t *testing.T) {
	policy := MemberPolicy{RequireNonEmpty: true, RequireEnumMemberNames: true}
	errs := validateMemberNames("p", []string{"_A", "x", "X"}, policy)

	codes := make([]string, len(errs))
	for i, e := range errs {
		codes[i] = e.Code
	}
	assert.ElementsMatch(t, []string{ErrDuplicateMember, ErrInvalidEnumMemberName}, codes)
}

package oauthmodel

import (
	"strings"

	"github.com/samber/lo"
)

// ParseScope splits a space-delimited scope string into an ordered, de-duplicated list.
func ParseScope(scope string) []string {
	return lo.Uniq(strings.Fields(scope))
}

// JoinScope renders scopes in the space-delimited wire format.
func JoinScope(scopes []string) string {
	return strings.Join(scopes, " ")
}

// GrantScope returns the submitted scopes that were actually requested, in
// submission order. Scopes that were never requested are returned as dropped.
func GrantScope(requested, submitted []string) (granted []string, dropped []string) {
	submitted = lo.Uniq(lo.Filter(submitted, func(s string, _ int) bool {
		return strings.TrimSpace(s) != ""
	}))
	granted = lo.Filter(submitted, func(s string, _ int) bool {
		return lo.Contains(requested, s)
	})
	dropped = lo.Filter(submitted, func(s string, _ int) bool {
		return !lo.Contains(requested, s)
	})
	return granted, dropped
}

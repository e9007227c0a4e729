package tui

import "commando/internal/commit"

// ScopesFrom collects the distinct scopes used in commit subjects, most
// recent first.
func ScopesFrom(subjects []string) []string {
	seen := map[string]bool{}
	var scopes []string
	for _, s := range subjects {
		m, err := commit.Parse(s)
		if err != nil || m.Scope == "" || seen[m.Scope] {
			continue
		}
		seen[m.Scope] = true
		scopes = append(scopes, m.Scope)
	}
	return scopes
}

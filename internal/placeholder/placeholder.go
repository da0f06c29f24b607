// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package placeholder substitutes reader-supplied character names into
// story template text. Tokens are matched as opaque literals — never as
// patterns — so template authors are free to use any punctuation inside
// a token.
package placeholder

import "strings"

// Apply replaces every occurrence of placeholders[i] in content with
// names[i], for each index that has a non-empty name. Replacement is
// global and positional. When names is shorter than placeholders, the
// trailing placeholders are left verbatim; substitution is
// partial-tolerant rather than all-or-nothing.
func Apply(content string, placeholders, names []string) string {
	for i, token := range placeholders {
		if token == "" || i >= len(names) || names[i] == "" {
			continue
		}
		content = strings.ReplaceAll(content, token, names[i])
	}
	return content
}

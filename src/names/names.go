// Package names maps UTCP tool names onto the stricter naming grammars of
// downstream consumers (Amazon Bedrock being the canonical one) while
// keeping a reversible alias table so original names can be recovered.
package names

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"

	"github.com/universal-tool-calling-protocol/langchain-utcp-adapters/src/langchain"
)

// hashSuffixLen is the number of hex characters taken from the hash of an
// over-long original name to disambiguate its truncated alias.
const hashSuffixLen = 8

// maxAliasAttempts bounds the collision-resolution loop per tool.
const maxAliasAttempts = 1000

// Grammar describes a downstream consumer's tool-name rules: an allowed
// character class and a maximum length.
type Grammar struct {
	// Allowed reports whether a rune may appear in an alias. Nil means
	// ASCII alphanumerics and underscore.
	Allowed func(r rune) bool
	// MaxLength bounds the alias length. Zero or negative means 64.
	MaxLength int
}

// DefaultGrammar is the Bedrock tool-name grammar: ^[A-Za-z0-9_]{1,64}$.
func DefaultGrammar() Grammar {
	return Grammar{}
}

func (g Grammar) allowed(r rune) bool {
	if g.Allowed != nil {
		return g.Allowed(r)
	}
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

func (g Grammar) maxLength() int {
	if g.MaxLength <= 0 {
		return 64
	}
	return g.MaxLength
}

// AliasCollisionExhaustedError reports that no free grammar-conforming
// alias could be found for one tool within the attempt bound. It is fatal
// for that tool's renaming only.
type AliasCollisionExhaustedError struct {
	Original string
	Attempts int
}

func (e *AliasCollisionExhaustedError) Error() string {
	return fmt.Sprintf("no free alias for tool %q after %d attempts", e.Original, e.Attempts)
}

// AliasTable is a bidirectional alias-to-original-name mapping built once
// per batch of tools. It is read-only after construction; callers needing
// a single canonical table across batches must serialise its construction
// themselves.
type AliasTable struct {
	aliasToOriginal map[string]string
	originalToAlias map[string]string
	order           []string
}

func newAliasTable() *AliasTable {
	return &AliasTable{
		aliasToOriginal: map[string]string{},
		originalToAlias: map[string]string{},
	}
}

// Restore looks up the original tool name for an alias. An unknown alias
// is a lookup miss, not an error.
func (t *AliasTable) Restore(alias string) (string, bool) {
	if t == nil {
		return "", false
	}
	original, ok := t.aliasToOriginal[alias]
	return original, ok
}

// Alias looks up the alias assigned to an original tool name.
func (t *AliasTable) Alias(original string) (string, bool) {
	if t == nil {
		return "", false
	}
	alias, ok := t.originalToAlias[original]
	return alias, ok
}

// Aliases returns the assigned aliases in assignment order.
func (t *AliasTable) Aliases() []string {
	return append([]string(nil), t.order...)
}

// Len returns the number of alias entries in the table.
func (t *AliasTable) Len() int { return len(t.aliasToOriginal) }

func (t *AliasTable) record(alias, original string) {
	t.aliasToOriginal[alias] = original
	t.originalToAlias[original] = alias
	t.order = append(t.order, alias)
}

func (t *AliasTable) taken(alias string) bool {
	_, ok := t.aliasToOriginal[alias]
	return ok
}

// RestoreOriginalName looks an alias up in a table. It mirrors Restore as
// a package-level function for call sites holding the table by value.
func RestoreOriginalName(table *AliasTable, alias string) (string, bool) {
	return table.Restore(alias)
}

// CreateNameCompatibleMapping renames every tool whose name violates the
// grammar and returns the renamed tool list together with the alias table
// for reverse lookups. Tools whose names already conform keep their names
// (and still get a table entry). Renamed tools are clones that expose the
// alias while invoking the UTCP tool under its original name.
//
// A tool whose renaming exhausts the collision bound is dropped from the
// returned list and reported through the joined error; its siblings are
// unaffected.
func CreateNameCompatibleMapping(toolList []*langchain.StructuredTool, g Grammar) ([]*langchain.StructuredTool, *AliasTable, error) {
	table := newAliasTable()
	renamed := make([]*langchain.StructuredTool, 0, len(toolList))
	var errs []error
	for _, tool := range toolList {
		alias, err := assignAlias(table, tool.Name(), g)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if alias == tool.Name() {
			renamed = append(renamed, tool)
		} else {
			renamed = append(renamed, tool.WithName(alias))
		}
	}
	return renamed, table, errors.Join(errs...)
}

// assignAlias computes a unique grammar-conforming alias for one original
// name and records it. The resolution order is deterministic: sanitize,
// truncate with a hash suffix if over length, then an incrementing
// counter suffix until free. Every candidate is assembled from sanitized
// pieces, so it conforms to the grammar by construction.
func assignAlias(table *AliasTable, original string, g Grammar) (string, error) {
	max := g.maxLength()
	sep := separatorFor(g)
	base := []rune(sanitize(original, g))
	if len(base) == 0 {
		// Nothing of the name survives the grammar; fall back to what
		// the grammar keeps of the hex hash of the original.
		base = []rune(sanitize(hashFragment(original), g))
		if len(base) == 0 {
			return "", &AliasCollisionExhaustedError{Original: original, Attempts: 0}
		}
	}
	if len(base) > max {
		frag := []rune(sep + sanitize(hashFragment(original), g))
		if len(frag) == len(sep) || max < len(frag)+1 {
			// The grammar leaves no disambiguation suffix, or the
			// length bound cannot fit one.
			return "", &AliasCollisionExhaustedError{Original: original, Attempts: 0}
		}
		base = append(base[:max-len(frag)], frag...)
	}

	candidate := string(base)
	for attempt := 0; attempt < maxAliasAttempts; attempt++ {
		if attempt > 0 {
			suffix := sanitize(sep+strconv.Itoa(attempt), g)
			if suffix == "" || suffix == sep {
				// The grammar rejects the counter digits; no further
				// candidates are possible.
				break
			}
			head := base
			if len(head)+len(suffix) > max {
				if len(suffix) >= max {
					break
				}
				head = head[:max-len(suffix)]
			}
			candidate = string(head) + suffix
		}
		if candidate != "" && !table.taken(candidate) {
			table.record(candidate, original)
			return candidate, nil
		}
	}
	return "", &AliasCollisionExhaustedError{Original: original, Attempts: maxAliasAttempts}
}

// separatorFor picks the rune that joins a truncated name to its
// disambiguation suffix: underscore where the grammar allows it, hyphen
// as the fallback, nothing when the grammar rejects both.
func separatorFor(g Grammar) string {
	if g.allowed('_') {
		return "_"
	}
	if g.allowed('-') {
		return "-"
	}
	return ""
}

// sanitize strips every rune the grammar disallows.
func sanitize(name string, g Grammar) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		if g.allowed(r) {
			out = append(out, r)
		}
	}
	return string(out)
}

// hashFragment returns a short stable fingerprint of the original name.
func hashFragment(name string) string {
	sum := sha256.Sum256([]byte(name))
	return hex.EncodeToString(sum[:])[:hashSuffixLen]
}

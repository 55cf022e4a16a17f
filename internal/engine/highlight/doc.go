// Package highlight maintains an incremental tree-sitter parse tree across
// buffer edits and produces styled spans for the currently visible line
// range (spec §4.8). The tree is notified of each buffer mutation as a
// byte-range edit whose offsets are taken from the text before the
// mutation, then re-parsed against the updated
// buffer text; re-parse reuses the unaffected subtrees from the previous
// parse rather than starting over.
//
// Grammar selection (which language, which capture query) is the concrete
// adapter's job per spec §1 ("the concrete grammar files used by the
// syntax parser" are out of core scope) — a Highlighter with no Language
// configured degrades to producing no spans, the same way an invalid
// search pattern degrades to an empty match list.
package highlight

// Package langdetect resolves the language of files and Markdown code
// fences to front-end language ids. It uses go-enry, with a small table of
// its own for the languages refract parses.
package langdetect

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language ids.
const (
	CSharp   = "csharp"
	Markdown = "markdown"
	Text     = "text"
	langBash = "bash"
)

// Extensions that enry reports as ambiguous (".cs" is also Smalltalk).
//
//nolint:gochecknoglobals // lookup table
var extensions = map[string]string{
	".cs":       CSharp,
	".csx":      CSharp,
	".md":       Markdown,
	".markdown": Markdown,
	".mdown":    Markdown,
}

// Fence info strings that do not go through enry's alias table.
//
//nolint:gochecknoglobals // lookup table
var infoAliases = map[string]string{
	"cs":     CSharp,
	"c#":     CSharp,
	"csharp": CSharp,
	"csx":    CSharp,
	"md":     Markdown,
}

// Detect returns the language of a file. The extension decides when it is
// known; otherwise the file name, shebang and content are consulted.
func Detect(path string, content []byte) string {
	if lang, ok := extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return lang
	}
	if lang, safe := enry.GetLanguageByExtension(path); safe {
		return normalize(lang)
	}
	if lang, safe := enry.GetLanguageByFilename(path); safe {
		return normalize(lang)
	}
	return DetectSnippet(content)
}

// FromInfoString maps a fence info string such as "cs", "C#" or
// `csharp title="x"` to a language id. It returns "" for an empty info
// string and the lowercased first word when the language is unknown.
func FromInfoString(info string) string {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return ""
	}
	word := strings.ToLower(strings.TrimLeft(fields[0], "{."))
	word = strings.TrimRight(word, "}")
	if word == "" {
		return ""
	}
	if lang, ok := infoAliases[word]; ok {
		return lang
	}
	if lang, ok := enry.GetLanguageByAlias(word); ok {
		return normalize(lang)
	}
	return word
}

// DetectSnippet classifies a code fragment that has no file name, such as
// a fence without an info string. It returns "text" when unsure.
func DetectSnippet(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return Text
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	if looksLikeCSharp(content) {
		return CSharp
	}

	candidates := []string{
		"C#", "Java", "Go", "Python", "JavaScript", "TypeScript",
		"Shell", "C", "C++", "Rust", "Kotlin",
	}
	if lang, safe := enry.GetLanguageByClassifier(content, candidates); safe && lang != "" {
		return normalize(lang)
	}

	return Text
}

// looksLikeCSharp checks for markers that rarely occur outside C#.
func looksLikeCSharp(content []byte) bool {
	markers := [][]byte{
		[]byte("using System"),
		[]byte("Console.Write"),
		[]byte("static void Main("),
		[]byte("{ get; set; }"),
		[]byte("namespace "),
	}
	hits := 0
	for _, m := range markers {
		if bytes.Contains(content, m) {
			hits++
		}
	}
	if hits > 0 && !bytes.Contains(content, []byte("package ")) && !bytes.Contains(content, []byte("import ")) {
		return true
	}
	return false
}

// normalize converts go-enry language names to ids.
func normalize(lang string) string {
	switch lang {
	case "C#":
		return CSharp
	case "Shell":
		return langBash
	}
	return strings.ToLower(lang)
}

package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/refract/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		content string
		want    string
	}{
		{name: "csharp by extension", path: "src/Order.cs", want: "csharp"},
		{name: "csharp script", path: "build.CSX", want: "csharp"},
		{name: "markdown", path: "README.md", want: "markdown"},
		{name: "markdown long extension", path: "docs/guide.markdown", want: "markdown"},
		{name: "go by extension", path: "main.go", want: "go"},
		{name: "shebang without extension", path: "bin/run", content: "#!/bin/bash\necho hi", want: "bash"},
		{
			name:    "csharp content without extension",
			path:    "snippet",
			content: "using System;\nclass A { static void Main() { Console.WriteLine(1); } }",
			want:    "csharp",
		},
		{name: "unknown", path: "notes", content: "just some words", want: "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, langdetect.Detect(tt.path, []byte(tt.content)))
		})
	}
}

func TestFromInfoString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		info string
		want string
	}{
		{"cs", "csharp"},
		{"C#", "csharp"},
		{"csharp", "csharp"},
		{`csharp title="Order.cs"`, "csharp"},
		{"{.cs}", "csharp"},
		{"go", "go"},
		{"", ""},
		{"   ", ""},
		{"no-such-language", "no-such-language"},
	}

	for _, tt := range tests {
		t.Run(tt.info, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, langdetect.FromInfoString(tt.info))
		})
	}
}

func TestDetectSnippet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "empty", content: "", want: "text"},
		{name: "whitespace", content: " \n\t", want: "text"},
		{name: "shebang", content: "#!/bin/sh\necho test", want: "bash"},
		{name: "csharp", content: "namespace App {\n    class A { public int X { get; set; } }\n}", want: "csharp"},
		{name: "prose", content: "hello there", want: "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, langdetect.DetectSnippet([]byte(tt.content)))
		})
	}
}

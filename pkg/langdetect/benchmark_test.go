package langdetect

import (
	"testing"
)

func BenchmarkDetectCSharpFile(b *testing.B) {
	code := []byte("class A { void M() { } }")
	b.ResetTimer()
	for range b.N {
		Detect("Order.cs", code)
	}
}

func BenchmarkDetectSnippetCSharp(b *testing.B) {
	code := []byte(`using System;

class Program
{
    static void Main()
    {
        Console.WriteLine("Hello, World!");
    }
}`)
	b.ResetTimer()
	for range b.N {
		DetectSnippet(code)
	}
}

func BenchmarkDetectSnippetClassifier(b *testing.B) {
	code := []byte(`def hello():
    print("Hello, World!")`)
	b.ResetTimer()
	for range b.N {
		DetectSnippet(code)
	}
}

func BenchmarkFromInfoString(b *testing.B) {
	b.ResetTimer()
	for range b.N {
		FromInfoString(`csharp title="Order.cs"`)
	}
}

package matcher

import (
	"strings"
	"testing"

	"github.com/log2seq/log2seq-go/pkg/log2seq/rule"
)

var benchRules = []rule.Rule{
	{Title: "access", Match: "Component1 func:", Src: "Client", Dst: "Web Server"},
	{Title: "request", Match: "Component2 func:.* str=abc", Src: "Web Server", Dst: "API Server"},
	{Title: "notify", Match: "Component3 func:.* str=abc", Src: "API Server", Dst: "Web Server"},
}

func benchLog(n int) string {
	lines := []string{
		"Nov  2 12:34:56 : [12345678.012345] hogehoge function exec",
		"Nov  2 12:34:56 : [12345678.012345] Component1 func:1245 hogehoge val 1",
		"Nov  2 12:34:56 : [12345678.012345] Component2 func:1245 str=abc val 1",
		"",
	}
	var sb strings.Builder
	for i := 0; i < n; i++ {
		sb.WriteString(lines[i%len(lines)])
		sb.WriteByte('\n')
	}
	return sb.String()
}

func benchmarkMatch(b *testing.B, d Dialect) {
	log := benchLog(1000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Compile(benchRules, WithDialect(d)).Match(log)
	}
}

// BenchmarkMatch_ECMAScript measures a full compile-and-match pass over 1000 lines.
func BenchmarkMatch_ECMAScript(b *testing.B) { benchmarkMatch(b, DialectECMAScript) }

// BenchmarkMatch_RE2 is BenchmarkMatch_ECMAScript with the RE2 engine.
func BenchmarkMatch_RE2(b *testing.B) { benchmarkMatch(b, DialectRE2) }

func BenchmarkSplitLines(b *testing.B) {
	log := benchLog(1000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = SplitLines(log)
	}
}

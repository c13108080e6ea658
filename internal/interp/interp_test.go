package interp

import (
	"io"
	"os"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latch-lang/latch/internal/parser"
	"github.com/latch-lang/latch/internal/sema"
	"github.com/latch-lang/latch/internal/value"
)

// runScript parses, analyzes, and runs src, capturing stdout. Grounded on
// the interpreter it evolved from's interpreter_test.go golden-path convention: scripts are Go
// string literals run end to end rather than unit-testing eval in isolation.
func runScript(t *testing.T, src string) (stdout string, res Result, err error) {
	t.Helper()
	prog, diags := parser.Parse("<test>", src)
	require.Empty(t, diags)
	semaDiags := sema.Analyze("<test>", prog)
	require.Empty(t, semaDiags)

	r, w, perr := os.Pipe()
	require.NoError(t, perr)

	ip := New(map[string]map[string]*value.Builtin{})
	ip.Stdout = w

	res, err = ip.Run(prog)

	w.Close()
	out, _ := io.ReadAll(r)
	return string(out), res, err
}

func TestArithmeticAndPrecedence(t *testing.T) {
	out, res, err := runScript(t, `print(1 + 2 * 3)`)
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "7\n", out)
}

func TestStringConcatCoercion(t *testing.T) {
	out, _, err := runScript(t, `print("count: " + 3)`)
	require.NoError(t, err)
	assert.Equal(t, "count: 3\n", out)
}

func TestIfElifElseBranching(t *testing.T) {
	src := `
x := 5
if x > 10 {
	print("big")
} elif x > 0 {
	print("small positive")
} else {
	print("non-positive")
}
`
	out, _, err := runScript(t, src)
	require.NoError(t, err)
	assert.Equal(t, "small positive\n", out)
}

func TestForLoopOverList(t *testing.T) {
	src := `
total := 0
for x in [1, 2, 3, 4] {
	total = total + x
}
print(total)
`
	out, _, err := runScript(t, src)
	require.NoError(t, err)
	assert.Equal(t, "10\n", out)
}

func TestWhileLoopWithBreakAndContinue(t *testing.T) {
	src := `
i := 0
sum := 0
while i < 10 {
	i = i + 1
	if i % 2 == 0 {
		continue
	}
	if i > 7 {
		break
	}
	sum = sum + i
}
print(sum)
`
	out, _, err := runScript(t, src)
	require.NoError(t, err)
	assert.Equal(t, "16\n", out) // 1 + 3 + 5 + 7
}

func TestFunctionCallWithDefaults(t *testing.T) {
	src := `
fn greet(name, greeting = "hello") {
	return greeting + ", " + name
}
print(greet("world"))
print(greet("there", "hi"))
`
	out, _, err := runScript(t, src)
	require.NoError(t, err)
	assert.Equal(t, "hello, world\nhi, there\n", out)
}

func TestTryCatchRecoversRuntimeError(t *testing.T) {
	src := `
try {
	x := 1 / 0
} catch e {
	print(e["kind"])
}
`
	out, _, err := runScript(t, src)
	require.NoError(t, err)
	assert.Equal(t, "DivisionByZero\n", out)
}

func TestTryFinallyRunsAfterSuccessfulBody(t *testing.T) {
	src := `
try {
	print("body")
} catch e {
	print("caught")
} finally {
	print("cleanup")
}
`
	out, _, err := runScript(t, src)
	require.NoError(t, err)
	assert.Equal(t, "body\ncleanup\n", out)
}

func TestPipeOperator(t *testing.T) {
	src := `
fn double(x) { return x * 2 }
print(5 |> double())
`
	out, _, err := runScript(t, src)
	require.NoError(t, err)
	assert.Equal(t, "10\n", out)
}

func TestNullCoalesceOperator(t *testing.T) {
	src := `
x := null
print(x ?? "fallback")
`
	out, _, err := runScript(t, src)
	require.NoError(t, err)
	assert.Equal(t, "fallback\n", out)
}

func TestErrorFallbackOr(t *testing.T) {
	src := `
d := {"a": 1}
print(d["missing"] or "default")
`
	out, _, err := runScript(t, src)
	require.NoError(t, err)
	assert.Equal(t, "default\n", out)
}

func TestSafeAccessOnNull(t *testing.T) {
	src := `
x := null
print(x?.field)
`
	out, _, err := runScript(t, src)
	require.NoError(t, err)
	assert.Equal(t, "null\n", out)
}

func TestUncaughtRuntimeErrorSetsExitCode(t *testing.T) {
	out, res, err := runScript(t, `x := [1, 2][5]`)
	require.NoError(t, err)
	assert.Equal(t, 1, res.ExitCode)
	assert.Empty(t, out)
}

func TestStopStatementSetsExitCode(t *testing.T) {
	src := `
print("before")
stop 3
print("after")
`
	out, res, err := runScript(t, src)
	require.NoError(t, err)
	assert.True(t, res.Stopped)
	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, "before\n", out)
}

func TestFilterMapReduceBuiltins(t *testing.T) {
	src := `
evens := filter([1, 2, 3, 4, 5, 6], fn(x) { return x % 2 == 0 })
doubled := map(evens, fn(x) { return x * 2 })
total := reduce(doubled, fn(acc, x) { return acc + x }, 0)
print(total)
`
	out, _, err := runScript(t, src)
	require.NoError(t, err)
	assert.Equal(t, "24\n", out) // (2+4+6)*2 = 24
}

func TestGeneratorEagerMaterialization(t *testing.T) {
	src := `
fn countUp(n) {
	i := 0
	while i < n {
		yield i
		i = i + 1
	}
}
print(countUp(3))
`
	out, _, err := runScript(t, src)
	require.NoError(t, err)
	assert.Equal(t, "[0, 1, 2]\n", out)
}

func TestParallelWritesEachWorkerSlot(t *testing.T) {
	src := `
items := [1, 2, 3, 4]
results := [0, 0, 0, 0]
parallel i in range(0, 4) workers=2 {
	results[i] = items[i] * items[i]
}
print(results)
`
	out, _, err := runScript(t, src)
	require.NoError(t, err)
	assert.Equal(t, "[1, 4, 9, 16]\n", out)
}

func TestNewDefaultsMaxWorkersToNumCPUTimesFour(t *testing.T) {
	ip := New(map[string]map[string]*value.Builtin{})
	assert.Equal(t, runtime.NumCPU()*4, ip.MaxWorkers)
}

func TestParallelWorkersClauseClampedByMaxWorkers(t *testing.T) {
	src := `
results := [0, 0, 0, 0]
parallel i in range(0, 4) workers=4 {
	results[i] = i
}
print(results)
`
	prog, diags := parser.Parse("<test>", src)
	require.Empty(t, diags)
	require.Empty(t, sema.Analyze("<test>", prog))

	r, w, perr := os.Pipe()
	require.NoError(t, perr)
	ip := New(map[string]map[string]*value.Builtin{})
	ip.Stdout = w
	ip.MaxWorkers = 1 // forces every iteration onto a single goroutine

	res, err := ip.Run(prog)
	w.Close()
	out, _ := io.ReadAll(r)

	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "[0, 1, 2, 3]\n", string(out))
}

func TestParallelRebindOfOuterVarDoesNotLeakAcrossWorkers(t *testing.T) {
	src := `
total := 0
seen := [0, 0, 0, 0]
parallel i in range(0, 4) workers=4 {
	total = total + i
	seen[i] = total
}
print(total)
print(seen)
`
	out, _, err := runScript(t, src)
	require.NoError(t, err)
	// Each worker gets its own snapshot of total, so every worker's local
	// rebind starts from 0 and never observes a sibling's write.
	assert.Equal(t, "0\n[0, 1, 2, 3]\n", out)
}

func TestParallelGeneratorCallIsUnsupportedControl(t *testing.T) {
	src := `
fn countUp(n) {
	i := 0
	while i < n {
		yield i
		i = i + 1
	}
}
results := [0, 0]
parallel i in range(0, 2) workers=2 {
	results[i] = countUp(2)
}
print(results)
`
	out, res, err := runScript(t, src)
	require.NoError(t, err)
	assert.Equal(t, 1, res.ExitCode)
	assert.Empty(t, out)
}

func TestClassInstantiationAndMethods(t *testing.T) {
	src := `
class Counter {
	value = 0
	fn increment() {
		self.value = self.value + 1
		return self.value
	}
}
c := Counter()
print(c.increment())
print(c.increment())
`
	out, _, err := runScript(t, src)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n", out)
}

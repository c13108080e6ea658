package sema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latch-lang/latch/internal/parser"
)

func analyzeSrc(t *testing.T, src string) []string {
	t.Helper()
	prog, diags := parser.Parse("<test>", src)
	require.Empty(t, diags)
	semaDiags := Analyze("<test>", prog)
	reasons := make([]string, len(semaDiags))
	for i, d := range semaDiags {
		reasons[i] = d.Reason
	}
	return reasons
}

func TestValidProgramHasNoDiagnostics(t *testing.T) {
	reasons := analyzeSrc(t, `
x := 1
y := x + 1
print(y)
`)
	assert.Empty(t, reasons)
}

func TestBreakOutsideLoopIsFlagged(t *testing.T) {
	reasons := analyzeSrc(t, `break`)
	require.Len(t, reasons, 1)
	assert.Contains(t, reasons[0], "break")
}

func TestContinueOutsideLoopIsFlagged(t *testing.T) {
	reasons := analyzeSrc(t, `continue`)
	require.Len(t, reasons, 1)
	assert.Contains(t, reasons[0], "continue")
}

func TestReturnOutsideFunctionIsFlagged(t *testing.T) {
	reasons := analyzeSrc(t, `return 1`)
	require.Len(t, reasons, 1)
	assert.Contains(t, reasons[0], "return")
}

func TestBreakInsideLoopIsFine(t *testing.T) {
	reasons := analyzeSrc(t, `
items := []
for x in items {
	break
}
`)
	assert.Empty(t, reasons)
}

func TestReturnInsideFnIsFine(t *testing.T) {
	reasons := analyzeSrc(t, `
fn f() {
	return 1
}
`)
	assert.Empty(t, reasons)
}

func TestConstReassignmentIsFlagged(t *testing.T) {
	reasons := analyzeSrc(t, `
const x := 1
x = 2
`)
	require.Len(t, reasons, 1)
	assert.Contains(t, reasons[0], "const")
}

func TestAssignToUndeclaredIsFlagged(t *testing.T) {
	reasons := analyzeSrc(t, `x = 1`)
	require.Len(t, reasons, 1)
	assert.Contains(t, reasons[0], "undeclared")
}

func TestUndefinedNameReferenceIsFlagged(t *testing.T) {
	reasons := analyzeSrc(t, `print(does_not_exist)`)
	require.Len(t, reasons, 1)
	assert.Contains(t, reasons[0], "undefined")
}

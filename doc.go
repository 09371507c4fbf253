// Package psi is a small unit-testing framework for programs that carry their
// own tests.
//
// Tests register themselves while the program initialises and a generated or
// hand-written main runs them:
//
//	var _ = psi.Test("Math", "Add", func(t *psi.T) {
//		psi.CheckEq(t, add(2, 2), 4)
//		psi.RequireNe(t, add(1, 1), 0)
//	})
//
//	func main() { os.Exit(psi.Main()) }
//
// Every comparison comes in two severities. A Check failure marks the test
// failed and lets it continue; a Require failure also stops the test at
// once. Either way the run moves on to the next test. Failure reports quote
// the source text of the operands, so tests read as written.
//
// Assertions made when no test is running, and length-bounded comparisons
// given a negative length, are programming errors: they end the process.
package psi

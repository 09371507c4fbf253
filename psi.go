package psi

import (
	"github.com/dkoosis/psi/pkg/check"
	"github.com/dkoosis/psi/pkg/registry"
)

// T is the handle passed to a test body.
type T = check.T

// Register adds a test named name to the default registry and returns its
// index. Names are conventionally "Suite.Case".
func Register(name string, body func(t *T)) int {
	return registry.Default().Register(name, body)
}

// Test registers suite.name on the default registry.
func Test(suite, name string, body func(t *T)) int {
	return Register(suite+"."+name, body)
}

// Fixture registers suite.name with per-test state of type F. setup receives
// a zero F; if it fails, body and teardown are skipped. teardown runs after
// body even when a Require stopped it. setup and teardown may be nil.
func Fixture[F any](suite, name string, setup, teardown func(t *T, f *F), body func(t *T, f *F)) int {
	return Test(suite, name, fixtureBody(setup, teardown, body))
}

func fixtureBody[F any](setup, teardown func(t *T, f *F), body func(t *T, f *F)) func(t *T) {
	return func(t *T) {
		var f F
		if setup != nil {
			setup(t, &f)
		}
		if t.Failed() {
			return
		}
		if teardown != nil {
			defer teardown(t, &f)
		}
		body(t, &f)
	}
}

// Default returns the registry Test, Register and Fixture add to.
func Default() *registry.Registry {
	return registry.Default()
}

package engine

// Observer receives run events in order. Observers run synchronously on the
// engine's goroutine between test invocations.
type Observer interface {
	RunStarted(registered, toRun int)
	TestStarted(index int, name string)
	TestFinished(r Result)
	RunFinished(s *Stats)
}

// Observers fans events out to several observers.
type Observers []Observer

func (obs Observers) RunStarted(registered, toRun int) {
	for _, o := range obs {
		o.RunStarted(registered, toRun)
	}
}

func (obs Observers) TestStarted(index int, name string) {
	for _, o := range obs {
		o.TestStarted(index, name)
	}
}

func (obs Observers) TestFinished(r Result) {
	for _, o := range obs {
		o.TestFinished(r)
	}
}

func (obs Observers) RunFinished(s *Stats) {
	for _, o := range obs {
		o.RunFinished(s)
	}
}

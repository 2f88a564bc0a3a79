package wsendpoint

// Executor is the execution context handed to streaming sinks so a handler
// can consume a live stream while the transport keeps feeding it.
type Executor interface {
	Execute(task func())
}

// GoExecutor runs each task on its own goroutine.
type GoExecutor struct{}

func (GoExecutor) Execute(task func()) {
	go task()
}

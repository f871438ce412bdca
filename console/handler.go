package console

// CommandHandler receives submitted lines
type CommandHandler interface {
	HandleLine(line string)
}

// HandlerFunc adapts a function to CommandHandler
type HandlerFunc func(line string)

func (f HandlerFunc) HandleLine(line string) { f(line) }

// Shutdowner halts the target. Console calls it at most once
type Shutdowner interface {
	Shutdown()
}

// ShutdownFunc adapts a function to Shutdowner
type ShutdownFunc func()

func (f ShutdownFunc) Shutdown() { f() }

// Ringer produces an audible signal outside the device stream
type Ringer interface {
	Ring()
}

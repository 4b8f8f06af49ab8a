package coincidence

type Logger interface {
	Info(message string, module string)
	Error(string)
}

var logger Logger = noopLogger{}

func SetLogger(l Logger) {
	logger = l
}

// noopLogger keeps library logging safe before a command installs a real
// logger, for example in tests.
type noopLogger struct{}

func (noopLogger) Info(message string, module string) {}
func (noopLogger) Error(string)                       {}

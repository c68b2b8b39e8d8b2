package services

// Logger is the sink controllers report failures to. *log.Logger satisfies it.
type Logger interface {
	Printf(format string, v ...any)
}

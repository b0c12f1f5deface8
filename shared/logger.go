package shared

// ILogger is the logging surface the rest of the app depends on. It is
// satisfied by *log.Logger from charmbracelet/log.
type ILogger interface {
	Debug(msg interface{}, keyvals ...interface{})
	Debugf(format string, args ...interface{})
	Info(msg interface{}, keyvals ...interface{})
	Infof(format string, args ...interface{})
	Warn(msg interface{}, keyvals ...interface{})
	Warnf(format string, args ...interface{})
	Error(msg interface{}, keyvals ...interface{})
	Errorf(format string, args ...interface{})
	Printf(format string, args ...interface{})
}

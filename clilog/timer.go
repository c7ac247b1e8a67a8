package clilog

import "time"

// Timer measures one named phase, logged at LevelTrace when Finish is
// called, mirroring the original's clilog::stimer!/finish! pair.
type Timer struct {
	logger *Logger
	tag    Tag
	name   string
	start  time.Time
}

// StartTimer begins timing a named phase (e.g. "build_modules",
// "build_public_maps") on the package default logger.
func StartTimer(tag Tag, name string) *Timer {
	return defaultLogger.StartTimer(tag, name)
}

// StartTimer begins timing a named phase on this Logger.
func (l *Logger) StartTimer(tag Tag, name string) *Timer {
	return &Timer{logger: l, tag: tag, name: name, start: time.Now()}
}

// Finish logs the elapsed time since the timer started.
func (t *Timer) Finish() time.Duration {
	d := time.Since(t.start)
	t.logger.Trace(t.tag, "%s took %s", t.name, d)
	return d
}

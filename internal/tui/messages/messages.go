package messages

import "filepick/internal/ignore"

// RulesLoadedMsg carries a freshly loaded ignore rule set. Err is set when
// the file could not be read or some patterns did not compile; Rules is
// still usable in both cases. Seq identifies the load that produced it.
type RulesLoadedMsg struct {
	Path  string
	Rules *ignore.RuleSet
	Err   error
	Seq   int
}

// FileChangedMsg reports that a tracked file changed on disk. ID is the
// item id or the ignore file path as it was tracked.
type FileChangedMsg struct {
	ID string
}

// WatchClosedMsg is sent once the change feed has stopped.
type WatchClosedMsg struct{}

type ErrorMsg struct {
	Err error
}

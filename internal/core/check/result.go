package check

import "time"

type Result struct {
	Name      string
	OK        bool
	Kind      FailKind
	Detail    string
	Elapsed   time.Duration
	CheckedAt time.Time
}

func Pass(name, detail string) Result {
	return Result{Name: name, OK: true, Detail: detail, CheckedAt: time.Now()}
}

func Fail(name string, kind FailKind, detail string) Result {
	return Result{Name: name, Kind: kind, Detail: detail, CheckedAt: time.Now()}
}

func (r Result) Millis() int64 {
	return r.Elapsed.Milliseconds()
}

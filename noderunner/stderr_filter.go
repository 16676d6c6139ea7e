package noderunner

import (
	"io"
	"regexp"
)

// ansiEscapes matches terminal color sequences.
var ansiEscapes = regexp.MustCompile("[\u001B\u009B][[\\]()#;?]*(?:(?:(?:[a-zA-Z\\d]*(?:;[a-zA-Z\\d]*)*)?\u0007)|(?:(?:\\d{1,4}(?:;\\d{0,4})*)?[\\dA-PRZcf-ntqry=><~]))")

// stderrFilter forwards extractor diagnostics to dst, dropping the writes
// matching drop. Forwarded output has its color codes removed.
type stderrFilter struct {
	drop *regexp.Regexp
	dst  io.Writer
}

func newStderrFilter(dst io.Writer, expr string) (io.Writer, error) {
	if expr == "" {
		return dst, nil
	}

	drop, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &stderrFilter{drop: drop, dst: dst}, nil
}

func (f *stderrFilter) Write(data []byte) (int, error) {
	plain := ansiEscapes.ReplaceAll(data, nil)
	if f.drop.Match(plain) {
		return len(data), nil
	}

	if _, err := f.dst.Write(plain); err != nil {
		return 0, err
	}
	return len(data), nil
}

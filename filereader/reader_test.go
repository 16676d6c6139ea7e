package filereader

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type ReaderTest struct {
	suite.Suite

	dir   string
	lock  sync.Mutex
	lines []string
}

func TestReader(t *testing.T) {
	suite.Run(t, new(ReaderTest))
}

func (t *ReaderTest) SetupTest() {
	t.dir = t.T().TempDir()
	t.lines = nil
}

func (t *ReaderTest) write(name, content string) {
	file, err := os.OpenFile(filepath.Join(t.dir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	t.Require().NoError(err)
	defer file.Close()

	_, err = file.WriteString(content)
	t.Require().NoError(err)
}

func (t *ReaderTest) collect(line string) {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.lines = append(t.lines, line)
}

func (t *ReaderTest) collected() []string {
	t.lock.Lock()
	defer t.lock.Unlock()
	return append([]string(nil), t.lines...)
}

func (t *ReaderTest) newReader(follow bool) *Reader {
	reader, err := NewReader(&Config{Dir: t.dir, Pattern: `\.log(\.\d+)?$`, Follow: follow, PollInterval: 10 * time.Millisecond}, zap.NewNop())
	t.Require().NoError(err)
	return reader
}

func (t *ReaderTest) TestStream_ReadsFilesInNameOrder() {
	t.write("extractor.log.2", "ETSLOG BEGIN 3\n")
	t.write("extractor.log.1", "ETSLOG BEGIN 1\nETSLOG END 1\n")
	t.write("notes.txt", "ignored\n")

	err := t.newReader(false).Stream(context.Background(), t.collect)
	t.Require().NoError(err)

	t.Equal([]string{"ETSLOG BEGIN 1", "ETSLOG END 1", "ETSLOG BEGIN 3"}, t.collected())
}

func (t *ReaderTest) TestStream_KeepsPartialLine() {
	t.write("extractor.log", "ETSLOG BEGIN 1\nETSLOG EN")

	reader := t.newReader(false)
	t.Require().NoError(reader.Stream(context.Background(), t.collect))
	t.Equal([]string{"ETSLOG BEGIN 1"}, t.collected())

	t.write("extractor.log", "D 1\r\n")
	t.Require().NoError(reader.Stream(context.Background(), t.collect))
	t.Equal([]string{"ETSLOG BEGIN 1", "ETSLOG END 1"}, t.collected())
}

func (t *ReaderTest) TestStream_Follow() {
	t.write("extractor.log", "ETSLOG BEGIN 1\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- t.newReader(true).Stream(ctx, t.collect)
	}()

	t.Eventually(func() bool { return len(t.collected()) == 1 }, time.Second, 5*time.Millisecond)
	t.write("extractor.log", "ETSLOG END 1\n")
	t.write("extractor.log.1", "ETSLOG BEGIN 2\n")
	t.Eventually(func() bool { return len(t.collected()) == 3 }, time.Second, 5*time.Millisecond)

	cancel()
	t.NoError(<-done)
	t.Equal([]string{"ETSLOG BEGIN 1", "ETSLOG END 1", "ETSLOG BEGIN 2"}, t.collected())
}

func TestNewReader_Errors(t *testing.T) {
	_, err := NewReader(&Config{}, nil)
	assert.EqualError(t, err, "logs directory is not provided")

	file := filepath.Join(t.TempDir(), "extractor.log")
	assert.NoError(t, os.WriteFile(file, nil, 0644))
	_, err = NewReader(&Config{Dir: file}, nil)
	assert.ErrorContains(t, err, "is not a directory")

	_, err = NewReader(&Config{Dir: t.TempDir(), Pattern: "("}, nil)
	assert.ErrorContains(t, err, "invalid logs pattern")
}

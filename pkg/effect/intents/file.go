package intents

import (
	"io/fs"
	"os"

	"github.com/intentkit/effect/pkg/effect"
)

// ReadFile is an intent to read a whole file.
// Its result is the file contents as []byte.
type ReadFile struct {
	Path string
}

// DescribeIntent implements effect.Describer.
func (r ReadFile) DescribeIntent() any {
	return map[string]any{"intent": "read_file", "path": r.Path}
}

// WriteFile is an intent to write data to a file.
// Its result is nil.
type WriteFile struct {
	Path string
	Data []byte
	Perm fs.FileMode
}

// DescribeIntent implements effect.Describer.
func (w WriteFile) DescribeIntent() any {
	return map[string]any{"intent": "write_file", "path": w.Path, "bytes": len(w.Data)}
}

// performReadFile is the default ReadFile handler.
func performReadFile(_ effect.Context, intent ReadFile) (any, error) {
	return os.ReadFile(intent.Path)
}

// performWriteFile is the default WriteFile handler.
func performWriteFile(_ effect.Context, intent WriteFile) (any, error) {
	perm := intent.Perm
	if perm == 0 {
		perm = 0o644
	}
	return nil, os.WriteFile(intent.Path, intent.Data, perm)
}

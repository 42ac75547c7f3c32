package utils

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"

	"github.com/takoeight0821/q/token"
	"gopkg.in/yaml.v3"
)

// At formats the position prefix shared by every error message.
func At(where token.Token, msg string) string {
	if where.Lexeme == "" && where.Span.Len() == 0 {
		return fmt.Sprintf("at end: %s", msg)
	}
	return fmt.Sprintf("at %d: `%s`, %s", where.Line, where.Lexeme, msg)
}

// ErrorAt wraps an error with the token it was raised at.
type ErrorAt struct {
	Where token.Token
	Err   error
}

func (e ErrorAt) Error() string {
	return At(e.Where, e.Err.Error())
}

func (e ErrorAt) Unwrap() error {
	return e.Err
}

type TestData struct {
	Label    string
	Enable   bool
	Input    string
	Expected map[string]string
}

func ReadTestData(s []byte) []TestData {
	var data []TestData
	if err := yaml.Unmarshal(s, &data); err != nil {
		panic(err)
	}

	// Remove disabled test cases.
	i := 0
	for _, d := range data {
		if d.Enable {
			data[i] = d
			i++
		}
	}
	data = data[:i]

	return data
}

// SourceExt is the file extension of Q source files.
const SourceExt = ".q"

// FindSourceFiles returns every Q source file under dir, sorted by path.
func FindSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == SourceExt {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(files)

	return files, nil
}

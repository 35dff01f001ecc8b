// Package extraction runs deal extraction end to end: load the notes, extract
// records, save them as JSON and forward them to the optional sinks.
package extraction

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"github.com/turtacn/DealLens/pkg/errors"
)

// LoadSource reads the notes at path. A .pdf file is converted page by page,
// each page with text prefixed by a "--- PAGE n ---" marker line. Any other
// extension is read as text. Invalid UTF-8 sequences become U+FFFD.
func LoadSource(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New(errors.ErrCodeSourceNotFound, "source path is empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return "", errors.New(errors.ErrCodeSourceNotFound, "source file not found").WithDetail(path)
		}
		return "", errors.Wrap(err, errors.ErrCodeSourceUnreadable, "stat source "+path)
	}
	if info.IsDir() {
		return "", errors.New(errors.ErrCodeSourceUnreadable, "source is a directory").WithDetail(path)
	}

	var text string
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		text, err = readPDF(path)
	} else {
		text, err = readText(path)
	}
	if err != nil {
		return "", err
	}

	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "\uFFFD")
	}
	if strings.TrimSpace(text) == "" {
		return "", errors.New(errors.ErrCodeSourceEmpty, "source file is empty").WithDetail(path)
	}
	return text, nil
}

func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeSourceUnreadable, "read source "+path)
	}
	return string(data), nil
}

// readPDF concatenates the plain text of every page that has any, in page
// order. Pages are numbered from 1.
func readPDF(path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = errors.New(errors.ErrCodeSourceUnreadable, "malformed PDF").
				WithDetail(fmt.Sprintf("%s: %v", path, r))
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeSourceUnreadable, "open PDF "+path)
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() || page.V.Key("Contents").IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", errors.Wrap(err, errors.ErrCodeSourceUnreadable,
				"read PDF page "+strconv.Itoa(i)+" of "+path)
		}
		if pageText == "" {
			continue
		}
		b.WriteString("\n--- PAGE ")
		b.WriteString(strconv.Itoa(i))
		b.WriteString(" ---\n")
		b.WriteString(pageText)
	}
	return b.String(), nil
}

//Personal.AI order the ending

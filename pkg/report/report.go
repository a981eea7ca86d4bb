// Package report renders an aggregated shopping list as a downloadable file.
package report

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	FormatText = "txt"
	FormatPDF  = "pdf"

	Title = "Shopping list:"
)

// Line 购物清单中的一项
type Line struct {
	Name   string
	Unit   string
	Amount int64
}

func (l Line) String() string {
	return fmt.Sprintf("%s: %d %s", Capitalize(l.Name), l.Amount, l.Unit)
}

// Render 按格式写出清单，返回 Content-Type 与下载文件名
func Render(w io.Writer, format string, lines []Line) (contentType, filename string, err error) {
	switch format {
	case FormatPDF:
		return "application/pdf", "shopping_list.pdf", PDF(w, lines)
	case FormatText, "":
		return "text/plain; charset=utf-8", "shopping_list.txt", Text(w, lines)
	default:
		return "", "", fmt.Errorf("report: unsupported format %q", format)
	}
}

// Text 纯文本格式，每行一项
func Text(w io.Writer, lines []Line) error {
	var b strings.Builder
	b.WriteString(Title)
	b.WriteByte('\n')
	for i, l := range lines {
		fmt.Fprintf(&b, "%d. %s\n", i+1, l)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Capitalize 首字母大写，其余小写
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

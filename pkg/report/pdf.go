package report

import (
	_ "embed"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

const (
	titleSize  = 24
	itemSize   = 14
	margin     = 15.0
	lineHeight = 9.0

	fontFamily = "DejaVuSansCondensed"
)

// 内嵌 UTF-8 字体，食材名可以是西里尔字母等非拉丁文字
var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	regularFont []byte
	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	boldFont []byte
)

// PDF A4 文档，超过下边距自动换页
func PDF(w io.Writer, lines []Line) error {
	return build(lines).Output(w)
}

func build(lines []Line) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetTitle("Shopping list", true)
	pdf.AddUTF8FontFromBytes(fontFamily, "", regularFont)
	pdf.AddUTF8FontFromBytes(fontFamily, "B", boldFont)

	pdf.AddPage()
	pdf.SetFont(fontFamily, "B", titleSize)
	pdf.CellFormat(0, 14, Title, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(fontFamily, "", itemSize)
	for i, l := range lines {
		pdf.CellFormat(0, lineHeight, fmt.Sprintf("%d. %s", i+1, l), "", 1, "L", false, 0, "")
	}
	return pdf
}

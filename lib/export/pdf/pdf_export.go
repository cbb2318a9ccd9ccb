package pdfexport

import (
	"bytes"
	"fmt"

	reviewapimodels "doc-flow-backend/models/api/review"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

// GenerateReviewsReport формирует pdf-отчёт с историей оценок документа.
func GenerateReviewsReport(view reviewapimodels.ReviewsView) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateReviewsReport panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "static/font/")
	pdf.AddPage()
	pdf.AddUTF8Font("Arial", "", "Arial.ttf")
	pdf.AddUTF8Font("Arial", "B", "Arial Bold.ttf")
	pdf.SetFont("Arial", "B", 16)
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}
	_, lineHt := pdf.GetFontSize()
	pdf.MultiCell(0, lineHt+2, view.Title, "", "L", false)
	if view.Description != "" {
		pdf.SetFont("Arial", "", 12)
		_, lineHt = pdf.GetFontSize()
		pdf.MultiCell(0, lineHt+2, view.Description, "", "L", false)
	}
	pdf.Ln(4)

	for _, workflow := range view.Workflows {
		pdf.SetFont("Arial", "B", 14)
		_, lineHt = pdf.GetFontSize()
		pdf.MultiCell(0, lineHt+2, workflow.Name, "", "L", false)

		pdf.SetFont("Arial", "", 12)
		_, lineHt = pdf.GetFontSize()
		for _, rating := range workflow.Ratings {
			pdf.MultiCell(0, lineHt+2, fmt.Sprintf("%v: %v", rating.Category, rating.Value), "", "L", false)
		}
		pdf.MultiCell(0, lineHt+2, fmt.Sprintf("Всего оценок: %v", workflow.NumRatings), "", "L", false)
		for _, comment := range workflow.Comments {
			pdf.MultiCell(0, lineHt+2, fmt.Sprintf("%v: %v", comment.Author, comment.Contents), "", "L", false)
		}
		pdf.Ln(4)
	}

	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

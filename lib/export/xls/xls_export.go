package xlsexport

import (
	"bytes"

	reviewapimodels "doc-flow-backend/models/api/review"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportReviews(view reviewapimodels.ReviewsView) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var ratingHeaders = []string{"Маршрут", "Категория", "Оценка"}
var commentHeaders = []string{"Маршрут", "Автор", "Комментарий"}

func (i impl) ExportReviews(view reviewapimodels.ReviewsView) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, ratingHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	row, err = writeRatingData(f, sheet, view, row)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования таблицы с оценками в xlsx")
	}
	f.SetSheetName(sheet, "Оценки")

	commentSheet := "Комментарии"
	_, err = f.NewSheet(commentSheet)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка создания листа комментариев")
	}
	row = 0
	row, err = writeHeader(f, commentSheet, row, commentHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	_, err = writeCommentData(f, commentSheet, view, row)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования таблицы с комментариями в xlsx")
	}
	return f.WriteToBuffer()
}

func writeRatingData(f *excelize.File, sheet string, view reviewapimodels.ReviewsView, row int) (int, error) {
	total := 0
	for _, workflow := range view.Workflows {
		total += workflow.NumRatings
	}
	if total == 0 {
		return row, nil
	}
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(ratingHeaders), total+1); err != nil {
		return row, err
	}
	for _, workflow := range view.Workflows {
		for _, rating := range workflow.Ratings {
			row++
			// "Маршрут"
			col := 1
			if err := writeColumn(f, sheet, col, row, workflow.Name); err != nil {
				return row, err
			}

			// "Категория"
			col++
			if err := writeColumn(f, sheet, col, row, rating.Category); err != nil {
				return row, err
			}

			// "Оценка"
			col++
			if err := writeColumn(f, sheet, col, row, rating.Value); err != nil {
				return row, err
			}
		}
	}
	return row, nil
}

func writeCommentData(f *excelize.File, sheet string, view reviewapimodels.ReviewsView, row int) (int, error) {
	total := 0
	for _, workflow := range view.Workflows {
		total += len(workflow.Comments)
	}
	if total == 0 {
		return row, nil
	}
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(commentHeaders), total+1); err != nil {
		return row, err
	}
	for _, workflow := range view.Workflows {
		for _, comment := range workflow.Comments {
			row++
			// "Маршрут"
			col := 1
			if err := writeColumn(f, sheet, col, row, workflow.Name); err != nil {
				return row, err
			}

			// "Автор"
			col++
			if err := writeColumn(f, sheet, col, row, comment.Author); err != nil {
				return row, err
			}

			// "Комментарий"
			col++
			if err := writeColumn(f, sheet, col, row, comment.Contents); err != nil {
				return row, err
			}
		}
	}
	return row, nil
}

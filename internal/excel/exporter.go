package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/OuchiGenki/comp-prog-trainer/pkg/models"
)

// ReviewRow is one exported line: a review card joined with its catalog
// problem for readability.
type ReviewRow struct {
	ProblemID      string
	Title          string
	Status         string
	EaseFactor     float64
	Interval       int
	Repetitions    int
	NextReviewDate string
	LastReviewedAt string
}

var reviewHeader = []string{
	"Problem ID", "Title", "Status", "Ease Factor", "Interval (days)",
	"Repetitions", "Next Review", "Last Reviewed",
}

// BuildRows joins review cards with problem titles. Problems missing
// from the catalog (e.g. before the first sync) keep an empty title.
func BuildRows(cards []models.ReviewCard, titleByID map[string]string) []ReviewRow {
	rows := make([]ReviewRow, 0, len(cards))
	for _, card := range cards {
		lastReviewed := ""
		if card.LastReviewedAt != nil {
			lastReviewed = *card.LastReviewedAt
		}
		rows = append(rows, ReviewRow{
			ProblemID:      card.ProblemID,
			Title:          titleByID[card.ProblemID],
			Status:         card.Status,
			EaseFactor:     card.EaseFactor,
			Interval:       card.Interval,
			Repetitions:    card.Repetitions,
			NextReviewDate: card.NextReviewDate,
			LastReviewedAt: lastReviewed,
		})
	}
	return rows
}

// ExportReviews writes review rows to an Excel or CSV file, chosen by
// the file extension.
func ExportReviews(path string, rows []ReviewRow) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".csv" {
		return exportToCSV(path, rows)
	}
	return exportToExcel(path, rows)
}

// exportToExcel writes the rows as an xlsx workbook with one sheet.
func exportToExcel(path string, rows []ReviewRow) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Reviews"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %v", err)
	}

	if err := f.SetSheetRow(sheet, "A1", &reviewHeader); err != nil {
		return fmt.Errorf("failed to write header: %v", err)
	}

	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		values := []interface{}{
			row.ProblemID, row.Title, row.Status, row.EaseFactor,
			row.Interval, row.Repetitions, row.NextReviewDate, row.LastReviewedAt,
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %v", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save Excel file: %v", err)
	}
	return nil
}

// exportToCSV writes the rows as a CSV file.
func exportToCSV(path string, rows []ReviewRow) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write(reviewHeader); err != nil {
		return fmt.Errorf("failed to write header: %v", err)
	}
	for _, row := range rows {
		record := []string{
			row.ProblemID,
			row.Title,
			row.Status,
			strconv.FormatFloat(row.EaseFactor, 'f', 2, 64),
			strconv.Itoa(row.Interval),
			strconv.Itoa(row.Repetitions),
			row.NextReviewDate,
			row.LastReviewedAt,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %v", err)
		}
	}
	return nil
}

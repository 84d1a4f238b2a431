package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/flashmaster/internal/deck"
	"github.com/abhisek/flashmaster/internal/generate"
)

// ErrEmptySheet is returned when a spreadsheet holds no complete pairs.
var ErrEmptySheet = errors.New("no question/answer pairs found")

// ReadSheet reads question/answer pairs from column A and B of a .csv file
// or the first sheet of an .xlsx workbook. A first row reading
// "question", "answer" is treated as a header. Rows missing either side are
// skipped.
func ReadSheet(path string) ([]deck.CardInput, error) {
	var (
		rows [][]string
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		rows, err = readCSVFile(path)
	case ".xlsx", ".xlsm":
		rows, err = readWorkbook(path)
	default:
		return nil, fmt.Errorf("unsupported file type %q (want .csv or .xlsx)", ext)
	}
	if err != nil {
		return nil, err
	}
	return pairsFromRows(rows)
}

// ReadCSV reads pairs from CSV data using the same rules as ReadSheet.
func ReadCSV(r io.Reader) ([]deck.CardInput, error) {
	rows, err := readCSV(r)
	if err != nil {
		return nil, err
	}
	return pairsFromRows(rows)
}

func readCSVFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open CSV file: %w", err)
	}
	defer f.Close()
	return readCSV(f)
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read CSV: %w", err)
	}
	return rows, nil
}

func readWorkbook(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptySheet
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func pairsFromRows(rows [][]string) ([]deck.CardInput, error) {
	if len(rows) > 0 && isHeader(rows[0]) {
		rows = rows[1:]
	}

	cards := make([]deck.CardInput, 0, len(rows))
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		cards = append(cards, deck.CardInput{Question: row[0], Answer: row[1]})
	}

	cards = generate.Clean(cards)
	if len(cards) == 0 {
		return nil, ErrEmptySheet
	}
	return cards, nil
}

func isHeader(row []string) bool {
	return len(row) >= 2 &&
		strings.EqualFold(strings.TrimSpace(row[0]), "question") &&
		strings.EqualFold(strings.TrimSpace(row[1]), "answer")
}

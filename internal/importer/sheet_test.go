package importer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/abhisek/flashmaster/internal/deck"
)

func TestReadCSV(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []deck.CardInput
	}{
		{
			name: "with header",
			data: "Question,Answer\nWhat is H2O?,Water\n\"Capital of France, briefly?\",Paris\n",
			want: []deck.CardInput{
				{Question: "What is H2O?", Answer: "Water"},
				{Question: "Capital of France, briefly?", Answer: "Paris"},
			},
		},
		{
			name: "without header",
			data: "hola,hello\nadios,goodbye\n",
			want: []deck.CardInput{
				{Question: "hola", Answer: "hello"},
				{Question: "adios", Answer: "goodbye"},
			},
		},
		{
			name: "skips incomplete rows and extra columns",
			data: "q1,a1,note\nlonely\n,a3\nq4, a4 \n",
			want: []deck.CardInput{
				{Question: "q1", Answer: "a1"},
				{Question: "q4", Answer: "a4"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadCSV(strings.NewReader(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadCSV_Empty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("question,answer\n"))
	assert.ErrorIs(t, err, ErrEmptySheet)
}

func TestReadSheet_Workbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]string{
		{"question", "answer"},
		{"What is the powerhouse of the cell?", "Mitochondria"},
		{"", "orphan"},
		{"What controls the cell?", "Nucleus"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	got, err := ReadSheet(path)
	require.NoError(t, err)
	assert.Equal(t, []deck.CardInput{
		{Question: "What is the powerhouse of the cell?", Answer: "Mitochondria"},
		{Question: "What controls the cell?", Answer: "Nucleus"},
	}, got)
}

func TestReadSheet_CSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.CSV")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n"), 0o644))

	got, err := ReadSheet(path)
	require.NoError(t, err)
	assert.Equal(t, []deck.CardInput{{Question: "a", Answer: "b"}}, got)
}

func TestReadSheet_UnsupportedType(t *testing.T) {
	_, err := ReadSheet("notes.txt")
	assert.ErrorContains(t, err, "unsupported file type")
}

func TestImportSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.csv")
	require.NoError(t, os.WriteFile(path, []byte("perro,dog\ngato,cat\n"), 0o644))
	creator := &recordingCreator{}

	d, err := ImportSheet(context.Background(), creator, "Spanish", path)
	require.NoError(t, err)
	assert.Equal(t, "Spanish", d.Title)
	require.Len(t, creator.cards, 1)
	assert.Len(t, creator.cards[0], 2)

	_, err = ImportSheet(context.Background(), creator, " ", path)
	assert.ErrorIs(t, err, ErrMissingInput)
}

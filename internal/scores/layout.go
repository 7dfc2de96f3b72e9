package scores

import "fmt"

// LegacyLayout locates data inside the fixed-layout spreadsheet exported by
// the exam software. Offsets are zero-based. The layout is an external,
// versioned contract and is never inferred from the file contents.
type LegacyLayout struct {
	Version          int `yaml:"version"`
	RatesRow         int `yaml:"rates_row"`
	FirstQuestionCol int `yaml:"first_question_col"`
	LastQuestionCol  int `yaml:"last_question_col"`
	FirstDataRow     int `yaml:"first_data_row"`
	MarkCol          int `yaml:"mark_col"`
	IdentifierCol    int `yaml:"identifier_col"`
	Width            int `yaml:"width"`
}

// LegacyLayoutV1 is the layout of the exports handled so far: success rates on
// row 4 for Q01..Q40 (columns 6 to 45), one student per row from row 5 with
// the mark in column 3 and the identifier in column 46.
func LegacyLayoutV1() LegacyLayout {
	return LegacyLayout{
		Version:          1,
		RatesRow:         4,
		FirstQuestionCol: 6,
		LastQuestionCol:  45,
		FirstDataRow:     5,
		MarkCol:          3,
		IdentifierCol:    46,
		Width:            47,
	}
}

// Questions returns the number of question columns.
func (l LegacyLayout) Questions() int {
	return l.LastQuestionCol - l.FirstQuestionCol + 1
}

// Validate checks that the offsets describe a usable grid.
func (l LegacyLayout) Validate() error {
	switch {
	case l.Version != 1:
		return fmt.Errorf("unsupported layout version %d", l.Version)
	case l.RatesRow < 0 || l.FirstDataRow < 0 || l.MarkCol < 0 || l.IdentifierCol < 0 || l.FirstQuestionCol < 0:
		return fmt.Errorf("offsets must be >= 0")
	case l.FirstQuestionCol > l.LastQuestionCol:
		return fmt.Errorf("first_question_col %d is after last_question_col %d", l.FirstQuestionCol, l.LastQuestionCol)
	case l.FirstDataRow <= l.RatesRow:
		return fmt.Errorf("first_data_row %d must come after rates_row %d", l.FirstDataRow, l.RatesRow)
	}
	widest := max(l.MarkCol, l.IdentifierCol, l.LastQuestionCol)
	if l.Width <= widest {
		return fmt.Errorf("width %d must exceed column %d", l.Width, widest)
	}
	return nil
}

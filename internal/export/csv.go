package export

import (
	"encoding/csv"
	"io"
)

// WriteCSV streams the rows as CSV with a Section,Question,Answer header.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header[:]); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Section, r.Question, r.Answer}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

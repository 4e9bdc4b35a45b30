package utils

import (
	"encoding/csv"
	"fmt"
	"io"
	"server/internal/models"
)

// WriteResultsCSV renders a results summary as CSV. It is pure presentation
// glue: the rows arrive already ranked and rounded, so the download matches
// the on-screen report byte for byte.
func WriteResultsCSV(w io.Writer, summary *models.ResultsSummary) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"position", "candidate", "nickname", "votes", "percentage"}); err != nil {
		return err
	}

	for _, section := range summary.Sections {
		for _, row := range section.Rows {
			record := []string{
				section.Position,
				row.Name,
				row.Nickname,
				fmt.Sprintf("%d", row.Votes),
				fmt.Sprintf("%.2f", row.Percentage),
			}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/kirillkom/ats-resume-analyzer/internal/core/domain"
)

const sheetName = "Analyses"

var headers = []string{
	"Resume ID", "Filename", "Status", "ATS Score",
	"Experience Years", "Skills", "Education", "Uploaded At",
}

// WriteHistoryXLSX renders a user's analysis history as a spreadsheet.
// Rows arrive newest first, matching the history endpoint.
func WriteHistoryXLSX(w io.Writer, resumes []domain.Resume) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for i, resume := range resumes {
		values := rowValues(resume)
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("row cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return fmt.Errorf("write row %d: %w", i+1, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func rowValues(resume domain.Resume) []any {
	score := any("")
	experience := any("")
	skills := ""
	education := ""
	if resume.Analysis != nil {
		score = resume.Analysis.ATSScore
		if resume.Analysis.ExperienceYears != nil {
			experience = *resume.Analysis.ExperienceYears
		}
		skills = strings.Join(resume.Analysis.Skills, ", ")
		education = strings.Join(resume.Analysis.Education, ", ")
	}
	return []any{
		resume.ID, resume.Filename, string(resume.Status), score,
		experience, skills, education, resume.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

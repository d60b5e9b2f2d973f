package services

import (
	"encoding/csv"
	"io"
	"time"

	"petdiary-backend/internal/models"
)

// DiaryCSVHeader is the fixed header row of a diary export.
var DiaryCSVHeader = []string{"Pet Name", "Pet Type", "Title", "Description", "Photo URL", "Created At"}

// WriteDiaryCSV streams a pet's diary posts as CSV, one row per post in the
// order given (newest first, same as the diary list).
func WriteDiaryCSV(w io.Writer, pet *models.Pet, posts []models.DiaryPost) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(DiaryCSVHeader); err != nil {
		return err
	}
	for _, p := range posts {
		row := []string{
			pet.Name,
			pet.PetType,
			p.Title,
			p.Description,
			p.PhotoURL,
			p.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

package seed

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/goldencare-dev/carehome/backend/internal/domain"
	"github.com/goldencare-dev/carehome/backend/internal/repository"
)

// SeedRealData loads an intake sheet exported from the admissions
// spreadsheet. Expected columns: full_name, date_of_birth, gender,
// room_number, bed_number, care_plans (plan names separated by ';').
func SeedRealData(r *repository.Repository) {
	file, err := os.Open("./internal/seed/data/intake.csv")
	if err != nil {
		slog.Error("failed to open the intake sheet", "error", err)
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)

	headers, err := reader.Read()
	if err != nil {
		slog.Error("failed to read the header row", "error", err)
		return
	}

	var records []map[string]string
	for {
		row, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			slog.Error("failed to read the intake sheet", "error", err)
			return
		}

		record := make(map[string]string)
		for i, value := range row {
			record[headers[i]] = value
		}
		records = append(records, record)
	}

	// resolve room numbers and plan names up front
	rooms, err := r.GetAllRooms()
	if err != nil {
		slog.Error("failed to fetch rooms", "error", err)
		return
	}
	roomsByNumber := make(map[string]*domain.Room, len(rooms))
	for _, room := range rooms {
		roomsByNumber[room.RoomNumber] = room
	}

	plans, err := r.GetAllCarePlans()
	if err != nil {
		slog.Error("failed to fetch care plans", "error", err)
		return
	}
	plansByName := make(map[string]*domain.CarePlan, len(plans))
	for _, plan := range plans {
		plansByName[plan.PlanName] = plan
	}

	for _, record := range records {
		fullName := record["full_name"]
		if fullName == "" {
			slog.Error("row without a full_name", "record", record)
			continue
		}

		dateOfBirth, err := time.Parse("2006-01-02", record["date_of_birth"])
		if err != nil {
			slog.Error("unparseable date_of_birth", "full_name", fullName, "value", record["date_of_birth"])
			continue
		}

		resident := &domain.Resident{
			FullName:    fullName,
			DateOfBirth: dateOfBirth,
			Gender:      record["gender"],
			Status:      domain.ResidentStatusActive,
			AdmittedAt:  time.Now(),
		}

		if err := r.CreateResident(resident); err != nil {
			slog.Error("failed to insert the resident", "full_name", fullName, "error", err)
			continue
		}

		// place the resident if the sheet names a room and a bed
		room, ok := roomsByNumber[record["room_number"]]
		if ok && record["bed_number"] != "" {
			beds, err := r.GetBedsByRoomID(room.ID)
			if err != nil {
				slog.Error("failed to fetch beds", "room_number", room.RoomNumber, "error", err)
				continue
			}

			var bed *domain.Bed
			for _, b := range beds {
				if b.BedNumber == record["bed_number"] {
					bed = b
					break
				}
			}

			if bed == nil {
				slog.Error("bed not found in the room", "room_number", room.RoomNumber, "bed_number", record["bed_number"])
			} else {
				now := time.Now()
				placement := &domain.BedAssignment{
					BedID:      bed.ID,
					ResidentID: &resident.ID,
					Status:     domain.AssignmentStatusActive,
					AssignedAt: &now,
				}
				if err := r.CreateBedAssignment(placement); err != nil {
					slog.Error("failed to insert the bed assignment", "full_name", fullName, "error", err)
				}
			}
		}

		// subscribe the resident to the named care plans
		for _, planName := range strings.Split(record["care_plans"], ";") {
			planName = strings.TrimSpace(planName)
			if planName == "" {
				continue
			}

			plan, ok := plansByName[planName]
			if !ok {
				slog.Error("care plan not found", "full_name", fullName, "plan_name", planName)
				continue
			}

			now := time.Now()
			end := now.AddDate(0, 6, 0)
			subscription := &domain.CarePlanAssignment{
				CarePlanID: plan.ID,
				ResidentID: resident.ID,
				Status:     domain.AssignmentStatusActive,
				StartAt:    &now,
				EndAt:      &end,
			}
			if err := r.CreateCarePlanAssignment(subscription); err != nil {
				slog.Error("failed to insert the care plan assignment", "full_name", fullName, "error", err)
			}
		}
	}

	slog.Info("intake sheet loaded")
}

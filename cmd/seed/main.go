package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/goldencare-dev/carehome/backend/internal/config"
	"github.com/goldencare-dev/carehome/backend/internal/domain"
	"github.com/goldencare-dev/carehome/backend/internal/repository"
	"github.com/goldencare-dev/carehome/backend/internal/seed"
	"github.com/goldencare-dev/carehome/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// the standard room catalog, seeded once by op 2
var catalogRoomTypes = []*domain.RoomType{
	{TypeKey: "2_bed", DisplayName: "Double room", MonthlyPrice: 5_200_000, Description: "Two beds, private bathroom", Amenities: []string{"private bathroom", "television", "wardrobe"}},
	{TypeKey: "3_bed", DisplayName: "Triple room", MonthlyPrice: 4_100_000, Description: "Three beds, shared bathroom", Amenities: []string{"shared bathroom", "television"}},
	{TypeKey: "4_5_bed", DisplayName: "Shared room (4-5 beds)", MonthlyPrice: 3_200_000, Description: "Up to five beds", Amenities: []string{"shared bathroom"}},
	{TypeKey: "6_8_bed", DisplayName: "Ward room (6-8 beds)", MonthlyPrice: 2_400_000, Description: "Up to eight beds", Amenities: []string{"shared bathroom"}},
}

func main() {
	var op int
	var n int
	var roomID int64

	flag.IntVar(&op, "op", 0, "operation to run (1: insert random users, 2: insert the room catalog, 3: insert random residents, 4: insert random assignments for a room, 5: load the intake sheet)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.Int64Var(&roomID, "room-id", 0, "room to generate random assignments for")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load the configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to create the database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open does not establish a connection, so ping explicitly
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("failed to connect to the database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("no operation given")
	case 1:
		if n <= 0 {
			slog.Error("please give a valid number of users")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Email.UserDomain)
				if err != nil {
					slog.Error("failed to generate a random user", slog.String("error", err.Error()))
					continue
				}

				if err := repo.CreateUser(user); err != nil {
					slog.Error("failed to insert the user", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("users inserted", slog.Int("count", n-cnt))
		}
	case 2:
		seedRoomCatalog(repo, n)
	case 3:
		if n <= 0 {
			slog.Error("please give a valid number of residents")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				resident := utils.GenerateRandomResident()
				if err := repo.CreateResident(resident); err != nil {
					slog.Error("failed to insert the resident", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("residents inserted", slog.Int("count", n-cnt))
		}
	case 4:
		if roomID <= 0 {
			slog.Error("please give a valid room id")
			return
		}

		seedRoomAssignments(repo, roomID)
	case 5:
		seed.SeedRealData(repo)
	default:
		slog.Error("unknown operation")
	}
}

// seedRoomCatalog inserts the standard room types and n rooms per type,
// each filled with its full number of beds.
func seedRoomCatalog(repo *repository.Repository, n int) {
	if n <= 0 {
		slog.Error("please give a valid number of rooms per type")
		return
	}

	roomCnt := 0
	for typeIdx, rt := range catalogRoomTypes {
		if err := repo.CreateRoomType(rt); err != nil {
			slog.Error("failed to insert the room type", slog.String("type_key", rt.TypeKey), slog.String("error", err.Error()))
			continue
		}

		bedCount := domain.MaxBedsForRoomType(rt.TypeKey)
		for i := 0; i < n; i++ {
			floor := int32(rand.Intn(4) + 1)
			room := &domain.Room{
				RoomNumber: fmt.Sprintf("%d%02d", floor, typeIdx*10+i+1),
				RoomTypeID: rt.ID,
				Floor:      floor,
				Gender:     []string{"male", "female", "mixed"}[rand.Intn(3)],
				BedCount:   bedCount,
				Status:     domain.RoomStatusOperational,
			}

			if err := repo.CreateRoom(room); err != nil {
				slog.Error("failed to insert the room", slog.String("error", err.Error()))
				continue
			}

			for b := int32(0); b < bedCount; b++ {
				bed := &domain.Bed{
					BedNumber: fmt.Sprintf("%s-%c", room.RoomNumber, 'A'+b),
					RoomID:    room.ID,
					BedType:   "standard",
					Status:    domain.BedStatusAvailable,
				}
				if err := repo.CreateBed(bed); err != nil {
					slog.Error("failed to insert the bed", slog.String("error", err.Error()))
				}
			}

			roomCnt++
		}
	}

	slog.Info("room catalog inserted", slog.Int("rooms", roomCnt))
}

// seedRoomAssignments generates an assignment history for every bed in a
// room, spread across past, current and upcoming placements.
func seedRoomAssignments(repo *repository.Repository, roomID int64) {
	room, err := repo.GetRoomByID(roomID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			slog.Error("the room does not exist", slog.Int64("room_id", roomID))
		default:
			slog.Error("failed to fetch the room", slog.String("error", err.Error()))
		}
		return
	}

	beds, err := repo.GetBedsByRoomID(room.ID)
	if err != nil {
		slog.Error("failed to fetch beds", slog.String("error", err.Error()))
		return
	}

	residents, err := repo.GetAllResidents()
	if err != nil {
		slog.Error("failed to fetch residents", slog.String("error", err.Error()))
		return
	}
	if len(residents) == 0 {
		slog.Error("no residents to assign, run op 3 first")
		return
	}

	plans, err := repo.GetAllCarePlans()
	if err != nil {
		slog.Error("failed to fetch care plans", slog.String("error", err.Error()))
		return
	}

	cnt := 0
	for _, bed := range beds {
		historyLen := rand.Intn(3) + 1
		for i := 0; i < historyLen; i++ {
			resident := residents[rand.Intn(len(residents))]

			assignment := utils.GenerateRandomBedAssignment(bed.ID, resident.ID)
			if err := repo.CreateBedAssignment(assignment); err != nil {
				slog.Error("failed to insert the bed assignment", slog.String("error", err.Error()))
				continue
			}

			if len(plans) > 0 {
				plan := plans[rand.Intn(len(plans))]
				subscription := utils.GenerateRandomCarePlanAssignment(plan.ID, resident.ID)
				if err := repo.CreateCarePlanAssignment(subscription); err != nil {
					slog.Error("failed to insert the care plan assignment", slog.String("error", err.Error()))
				}
			}

			cnt++
		}
	}

	slog.Info("assignments inserted", slog.Int("count", cnt))
}

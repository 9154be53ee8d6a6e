package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/goldencare-dev/carehome/backend/internal/config"
	"github.com/goldencare-dev/carehome/backend/internal/domain"
	"github.com/goldencare-dev/carehome/backend/internal/repository"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// everything below requires a logged-in user
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
			r.Route("/update-email", func(r chi.Router) {
				r.Post("/require", h.RequireUpdateEmail)
				r.Post("/confirm", h.ConfirmUpdateEmail)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleAdministrator}))
			r.Post("/", h.CreateUser)
			r.Get("/", h.GetAllUserInfo)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).Delete("/", h.DeleteUser)
				r.Patch("/password", h.UpdateUserPassword)
			})
		})

		r.Route("/residents", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdministrator})).Post("/", h.CreateResident)
			r.Get("/", h.GetAllResidents) // family members only get their own wards back
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.resident)
				r.With(h.residentAccess).Get("/", h.GetResident)
				r.With(h.residentAccess).Get("/summary", h.GetResidentSummary)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdministrator})).Patch("/", h.UpdateResident)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdministrator})).Delete("/", h.DeleteResident)
			})
		})

		r.Route("/room-types", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdministrator})).Post("/", h.CreateRoomType)
			r.Get("/", h.GetAllRoomTypes)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.roomType)
				r.Get("/", h.GetRoomType)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdministrator})).Patch("/", h.UpdateRoomType)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdministrator})).Delete("/", h.DeleteRoomType)
			})
		})

		r.Route("/rooms", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdministrator})).Post("/", h.CreateRoom)
			r.Get("/", h.GetAllRooms)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.room)
				r.Get("/", h.GetRoom)
				r.Get("/occupancy", h.GetRoomOccupancy)
				r.Get("/beds", h.GetRoomBeds)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdministrator})).Patch("/", h.UpdateRoom)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdministrator})).Delete("/", h.DeleteRoom)
			})
		})

		r.Route("/beds", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleAdministrator}))
			r.Post("/", h.CreateBed)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.bed)
				r.Get("/", h.GetBed)
				r.Patch("/", h.UpdateBed)
				r.Delete("/", h.DeleteBed)
			})
		})

		r.Route("/care-plans", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdministrator})).Post("/", h.CreateCarePlan)
			r.Get("/", h.GetAllCarePlans)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.carePlan)
				r.Get("/", h.GetCarePlan)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdministrator})).Patch("/", h.UpdateCarePlan)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdministrator})).Delete("/", h.DeleteCarePlan)
			})
		})

		r.Route("/bed-assignments", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleAdministrator, domain.RoleCaregiver}))
			r.Post("/", h.CreateBedAssignment)
			r.Get("/", h.GetAllBedAssignments)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.bedAssignment)
				r.Get("/", h.GetBedAssignment)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdministrator})).Post("/approve", h.ApproveBedAssignment)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdministrator})).Post("/reject", h.RejectBedAssignment)
				r.Post("/activate", h.ActivateBedAssignment)
				r.Post("/finish", h.FinishBedAssignment)
			})
		})

		r.Route("/care-plan-assignments", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleAdministrator, domain.RoleCaregiver}))
			r.Post("/", h.CreateCarePlanAssignment)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.carePlanAssignment)
				r.Get("/", h.GetCarePlanAssignment)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdministrator})).Post("/approve", h.ApproveCarePlanAssignment)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdministrator})).Post("/reject", h.RejectCarePlanAssignment)
				r.Post("/activate", h.ActivateCarePlanAssignment)
				r.Post("/finish", h.FinishCarePlanAssignment)
			})
		})

		r.Route("/service-requests", func(r chi.Router) {
			r.With(h.myInfo).Post("/", h.CreateServiceRequest)
			r.With(h.myInfo).Get("/", h.GetServiceRequests)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.serviceRequest)
				r.With(h.myInfo).Get("/", h.GetServiceRequest)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdministrator})).With(h.myInfo).Post("/approve", h.ApproveServiceRequest)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdministrator})).With(h.myInfo).Post("/reject", h.RejectServiceRequest)
			})
		})
	})
}

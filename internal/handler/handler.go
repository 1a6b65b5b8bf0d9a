package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/parishops/sacristy/backend/internal/config"
	"github.com/parishops/sacristy/backend/internal/domain"
	"github.com/parishops/sacristy/backend/internal/repository"
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
		})

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateUser)
			r.Get("/", h.GetAllUserInfo)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteUser)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/password", h.UpdateUserPassword)
			})
		})

		r.Route("/mass-time-templates", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleCoordinator, domain.RoleAdmin})).Post("/", h.CreateMassTimeTemplate)
			r.Get("/", h.GetAllMassTimeTemplates)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.massTimeTemplate)
				r.Get("/", h.GetMassTimeTemplate)
				r.With(h.RequiredRole([]domain.Role{domain.RoleCoordinator, domain.RoleAdmin})).Patch("/", h.UpdateMassTimeTemplate)
				r.With(h.RequiredRole([]domain.Role{domain.RoleCoordinator, domain.RoleAdmin})).Delete("/", h.DeleteMassTimeTemplate)
			})
		})

		r.Route("/mass-roles", func(r chi.Router) {
			r.Get("/", h.GetAllMassRoles)
			r.Get("/{id}/candidates", h.GetRoleCandidates)
		})

		r.Get("/liturgical-events", h.GetLiturgicalEvents)

		r.Route("/mass-schedule", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleCoordinator, domain.RoleAdmin}))
			r.Post("/preview", h.PreviewMassSchedule)
			r.Post("/assignments", h.ProposeAssignments)
			r.Post("/suggest", h.SuggestAssignment)
			r.Post("/commit", h.CommitMassSchedule)
		})

		r.Route("/scheduling-session", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleCoordinator, domain.RoleAdmin}))
			r.Use(h.myInfo)
			r.Put("/", h.SaveSchedulingSession)
			r.Get("/", h.GetSchedulingSession)
			r.Delete("/", h.DeleteSchedulingSession)
		})
	})
}

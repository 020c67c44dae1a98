package handler

import (
	"net/http"

	"github.com/classtrack-dev/classtrack/backend/internal/config"
	"github.com/classtrack-dev/classtrack/backend/internal/repository"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

type Handler struct {
	validate   *validator.Validate
	config     *config.Config
	store      repository.Store
	translator ut.Translator
	mailer     Mailer
	otps       OTPStore

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, store repository.Store, mailer Mailer, otps OTPStore) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:   validate,
		config:     cfg,
		store:      store,
		translator: trans,
		mailer:     mailer,
		otps:       otps,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)
	h.Mux.NotFound(h.routeNotFound)

	h.Mux.Get("/health", h.Health)

	h.Mux.Route("/users", func(r chi.Router) {
		r.Get("/", h.GetAllUsers)
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Get("/{id}", h.GetUser)
	})

	h.Mux.Route("/auth/reset-password", func(r chi.Router) {
		r.Post("/require", h.RequireResetPassword)
		r.Post("/confirm", h.ConfirmResetPassword)
	})

	// everything under /assignments requires a valid bearer token
	h.Mux.Route("/assignments", func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/", h.ListAssignments)
		r.Post("/", h.CreateAssignment)
		r.Get("/report/{id}", h.ViewReport)
		r.With(h.assignment).Patch("/submit/{assignmentId}", h.SubmitAssignment)
		r.With(h.assignment).Patch("/mark/{assignmentId}", h.MarkAssignment)
		r.Route("/{assignmentId}", func(r chi.Router) {
			r.Use(h.assignment)
			r.Get("/", h.GetAssignment)
			r.Put("/", h.UpdateAssignment)
			r.Delete("/", h.DeleteAssignment)
		})
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, map[string]string{"msg": "Server is running"})
}

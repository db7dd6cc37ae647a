package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"bugtrack/internal/config"
	"bugtrack/internal/handlers"
	"bugtrack/internal/middleware"
	"bugtrack/internal/models"
	"bugtrack/internal/repository"
	"bugtrack/internal/repository/postgres"
	"bugtrack/internal/service"
)

func New(log zerolog.Logger, db *pgxpool.Pool, cfg config.Config) http.Handler {
	return NewWith(log, cfg,
		postgres.NewUserRepo(db),
		postgres.NewProjectRepo(db),
		postgres.NewTicketRepo(db),
		postgres.NewCommentRepo(db),
	)
}

// NewWith assembles the router over explicit repositories; tests supply
// in-memory implementations here.
func NewWith(
	log zerolog.Logger,
	cfg config.Config,
	users repository.UserRepository,
	projects repository.ProjectRepository,
	tickets repository.TicketRepository,
	comments repository.CommentRepository,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.Origin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(httprate.LimitByIP(200, time.Minute))
	r.Use(middleware.WithAuth(log, cfg))

	authSvc := service.NewAuthService(users, cfg.JWTSecret, cfg.TokenTTL)
	projectSvc := service.NewProjectService(projects, users)
	ticketSvc := service.NewTicketService(tickets, projects, users)
	commentSvc := service.NewCommentService(comments, tickets, users)

	ah := handlers.NewAuthHTTP(authSvc, users)
	uh := handlers.NewUserHTTP(users)
	ph := handlers.NewProjectHTTP(projectSvc)
	th := handlers.NewTicketHTTP(ticketSvc)
	ch := handlers.NewCommentHTTP(commentSvc)
	sh := handlers.NewStatsHTTP(ticketSvc)

	r.Get("/healthz", handlers.Health())

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", ah.Register())
		r.Post("/login", ah.Login())
		r.With(middleware.RequireAuth).Get("/me", ah.Me())
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", uh.List())
		r.Get("/{id}", uh.Get())
		r.With(middleware.RequireLevels(models.LevelAdmin)).Patch("/{id}/level", uh.UpdateLevel())
	})

	r.Route("/api/projects", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", ph.List())
		r.Post("/", ph.Create())
		r.Get("/user/{userId}", ph.ListByUser())
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", ph.Get())
			r.Put("/", ph.Update())
			r.Delete("/", ph.Delete())
		})
		r.Post("/{projectId}/members/{userId}", ph.AddMember())
		r.Delete("/{projectId}/members/{userId}", ph.RemoveMember())
	})

	r.Route("/api/tickets", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", th.List())
		r.Post("/", th.Create())
		r.Get("/project/{projectId}", th.ListByProject())
		r.Get("/user/{userId}", th.ListByUser())
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", th.Get())
			r.Put("/", th.Update())
			r.Delete("/", th.Delete())
		})
		r.Post("/{ticketId}/assign/{userId}", th.Assign())
		r.Delete("/{ticketId}/assign/{userId}", th.Unassign())
	})

	r.Route("/api/comments", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/ticket/{ticketId}", ch.ListByTicket())
		r.Post("/", ch.Create())
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", ch.Get())
			r.Put("/", ch.Update())
			r.Delete("/", ch.Delete())
		})
	})

	r.With(middleware.RequireAuth).Get("/api/stats/summary", sh.Summary())

	return r
}

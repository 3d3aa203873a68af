package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"resourcehub/internal/auth"
	"resourcehub/internal/httpserver/handlers"
	"resourcehub/internal/metrics"
)

func NewRouter(db *gorm.DB, lg *zap.SugaredLogger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, middleware.Logger)
	r.Use(metrics.Middleware)

	r.Post("/v1/auth/login", handlers.Login(db, lg))
	r.Post("/v1/auth/register", handlers.Register(db, lg))
	r.Get("/v1/invitations/verify/{token}", handlers.VerifyInvitation(db, lg))
	r.Get("/api/setup", handlers.Setup(db, lg))

	r.Group(func(protected chi.Router) {
		protected.Use(auth.JWTAuth(db))
		protected.Get("/v1/me", handlers.Me(db, lg))
		protected.Post("/v1/auth/logout", handlers.Logout(db))
		protected.Post("/v1/auth/password", handlers.ChangePassword(db, lg))

		protected.Get("/v1/resources", handlers.ListResources(db, lg))
		protected.Post("/v1/resources", handlers.CreateResource(db, lg))
		protected.Patch("/v1/resources/{id}", handlers.UpdateResource(db, lg))
		protected.Delete("/v1/resources/{id}", handlers.DeleteResource(db, lg))
		protected.Post("/v1/resources/reorder", handlers.ReorderResources(db, lg))

		protected.Get("/v1/categories", handlers.ListCategories(db, lg))
		protected.Get("/v1/labels", handlers.ListLabels(db, lg))
		protected.Post("/v1/labels", handlers.CreateLabel(db, lg))

		protected.Post("/v1/invitations/accept", handlers.AcceptInvitation(db, lg))
		protected.Post("/v1/access-logs", handlers.RecordAccessLog(db, lg))

		protected.Group(func(admin chi.Router) {
			admin.Use(auth.RequireTier1)
			admin.Get("/v1/admin/resources", handlers.ListAllResources(db, lg))
			admin.Post("/v1/categories", handlers.CreateCategory(db, lg))
			admin.Patch("/v1/categories/{id}", handlers.UpdateCategory(db, lg))
			admin.Delete("/v1/categories/{id}", handlers.DeleteCategory(db, lg))
			admin.Delete("/v1/labels/{id}", handlers.DeleteLabel(db, lg))

			admin.Get("/v1/admin/users", handlers.ListUsers(db, lg))
			admin.Patch("/v1/admin/users/{id}/tier", handlers.UpdateUserTier(db, lg))
			admin.Patch("/v1/admin/users/{id}", handlers.UpdateUserProfile(db, lg))

			admin.Get("/v1/invitations", handlers.ListInvitations(db, lg))
			admin.Post("/v1/invitations", handlers.CreateInvitation(db, lg))
			admin.Delete("/v1/invitations/{id}", handlers.DeleteInvitation(db, lg))

			admin.Get("/v1/access-logs", handlers.ListAccessLogs(db, lg))
			admin.Delete("/v1/access-logs", handlers.ClearAccessLogs(db, lg))

			admin.Get("/v1/admin/domains", handlers.ListAllowedDomains(db, lg))
			admin.Post("/v1/admin/domains", handlers.CreateAllowedDomain(db, lg))
			admin.Patch("/v1/admin/domains/{id}", handlers.UpdateAllowedDomain(db, lg))
			admin.Delete("/v1/admin/domains/{id}", handlers.DeleteAllowedDomain(db, lg))

			admin.Get("/v1/admin/settings/domain-restriction", handlers.GetDomainRestriction(db, lg))
			admin.Put("/v1/admin/settings/domain-restriction", handlers.SetDomainRestriction(db, lg))
		})
	})

	r.Handle("/metrics", metrics.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	return r
}

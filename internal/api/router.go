package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/cmorrow/taskhub/internal/api/middleware"
)

// NewRouter assembles the HTTP routing table. Signup, login and the two
// image read endpoints are public; everything else requires a valid,
// unrevoked bearer token.
func NewRouter(
	userHandler *UserHandler,
	taskHandler *TaskHandler,
	authMiddleware *middleware.AuthMiddleware,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.TraceMiddleware)
	r.Use(chimiddleware.Recoverer)

	r.Route("/users", func(r chi.Router) {
		r.Post("/", userHandler.Signup)
		r.Post("/login", userHandler.Login)
		r.Get("/{id}/avatar", userHandler.GetAvatar)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/logout", userHandler.Logout)
			r.Post("/logoutall", userHandler.LogoutAll)

			r.Get("/me", userHandler.GetMe)
			r.Patch("/me", userHandler.UpdateMe)
			r.Delete("/me", userHandler.DeleteMe)

			r.Post("/me/avatar", userHandler.UploadAvatar)
			r.Delete("/me/avatar", userHandler.DeleteAvatar)
		})
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/{id}/image", taskHandler.GetImage)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/", taskHandler.Create)
			r.Get("/", taskHandler.List)

			r.Get("/{id}", taskHandler.Get)
			r.Patch("/{id}", taskHandler.Update)
			r.Delete("/{id}", taskHandler.Delete)

			r.Post("/{id}/image", taskHandler.UploadImage)
			r.Delete("/{id}/image", taskHandler.DeleteImage)
		})
	})

	return r
}

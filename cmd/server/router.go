package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/bloggy-api/internal/api"
	apiMiddleware "github.com/phrazzld/bloggy-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))

	origin := app.config.Server.BaseURL
	publicBase := api.NewBaseURLFunc(origin, api.PublicPrefix)
	adminBase := api.NewBaseURLFunc(origin, api.AdminPrefix)

	responseCache := apiMiddleware.NewResponseCache(app.cache, app.config.Cache.TTL(), app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	publicPosts := api.NewPostHandler(app.postService, app.presenter, publicBase, app.logger)
	adminPosts := api.NewPostHandler(app.postService, app.presenter, adminBase, app.logger)
	commentHandler := api.NewCommentHandler(app.commentService, app.presenter, publicBase, app.logger)
	tagHandler := api.NewTagHandler(app.tagService, app.presenter, adminBase, app.logger)
	authHandler := api.NewAuthHandler(app.loginService)

	r.Route(api.PublicPrefix, func(r chi.Router) {
		// Any successful write below drops every cached document.
		r.Use(responseCache.Invalidate)

		r.Group(func(r chi.Router) {
			r.Use(responseCache.Handler)

			r.Get("/posts", publicPosts.ListPosts)
			r.Get("/posts/{id}", publicPosts.GetPost)
			r.Get("/posts/{id}/tags", publicPosts.ListPostTags)
			r.Get("/posts/{id}/comments", publicPosts.ListPostComments)
			r.Get("/posts/{id}/relationships/{name}", publicPosts.GetPostRelationship)
			r.Get("/posts/{post_id}/comments/{id}", commentHandler.GetComment)
			r.Get("/comments/{id}", commentHandler.GetCommentByID)
		})

		r.Post("/posts/{post_id}/comments", commentHandler.CreateComment)
		r.Patch("/posts/{post_id}/comments/{id}", commentHandler.UpdateComment)
		r.Put("/posts/{post_id}/comments/{id}", commentHandler.UpdateComment)
		r.Delete("/posts/{post_id}/comments/{id}", commentHandler.DeleteComment)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/auth/login", authHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.Authenticate)

				r.Get("/posts", adminPosts.ListPosts)
				r.Post("/posts", adminPosts.CreatePost)
				r.Get("/posts/{id}", adminPosts.GetPost)
				r.Patch("/posts/{id}", adminPosts.UpdatePost)
				r.Delete("/posts/{id}", adminPosts.DeletePost)

				r.Post("/posts/{post_id}/tags", tagHandler.CreateTag)
				r.Delete("/posts/{post_id}/tags/{id}", tagHandler.DeleteTag)
			})
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}

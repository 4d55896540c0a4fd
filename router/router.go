package router

import (
	"go-auth-api/handler"
	"go-auth-api/service"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "go-auth-api/docs"
)

func NewRouter(authHandler *handler.AuthHandler, userHandler *handler.UserHandler, tokens service.ITokenService) http.Handler {
	mux := http.NewServeMux()

	authenticated := handler.AuthMiddleware(tokens)

	mux.Handle("POST /api/auth/signin", handler.ErrorHandlingMiddleware(authHandler.SignIn))
	mux.Handle("POST /api/auth/refreshToken", handler.ErrorHandlingMiddleware(authHandler.RefreshToken))
	mux.Handle("POST /api/auth/signup", handler.ErrorHandlingMiddleware(authHandler.SignUp))
	mux.Handle("POST /api/auth/signout", authenticated(handler.ErrorHandlingMiddleware(authHandler.SignOut)))

	mux.Handle("GET /api/users/me", authenticated(handler.ErrorHandlingMiddleware(userHandler.Me)))

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return handler.CORSMiddleware(mux)
}

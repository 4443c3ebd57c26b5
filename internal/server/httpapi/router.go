package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/ch4-lumia/lumia-backend/internal/logging"
	"github.com/ch4-lumia/lumia-backend/internal/server/auth"
	"github.com/ch4-lumia/lumia-backend/internal/server/services"
)

// Services groups the application services the HTTP surface exposes.
type Services struct {
	Users    *services.UserService
	Settings *services.SettingsService
	Messages *services.MessageService
	Answers  *services.AnswerService
}

// NewRouter wires gin routes and middleware.
func NewRouter(log logging.Logger, codec *auth.Codec, svc Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))

	authHandler := NewAuthHandler(svc.Users)
	settingsHandler := NewSettingsHandler(svc.Settings)
	messageHandler := NewMessageHandler(svc.Messages)
	answerHandler := NewAnswerHandler(svc.Answers)

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", authHandler.SignUp)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh-token", authHandler.Refresh)
		authGroup.POST("/logout", Authenticate(codec), authHandler.Logout)
	}

	secured := api.Group("", Authenticate(codec))
	{
		secured.GET("/users/me/settings", settingsHandler.Get)
		secured.PUT("/users/me/settings", settingsHandler.Update)
		secured.GET("/questions/new-message", messageHandler.NewMessage)
		secured.POST("/answers", answerHandler.Save)
		secured.GET("/answers", answerHandler.List)
	}

	return r
}

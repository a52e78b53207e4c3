// Package routesはroutingを行います。
package routes

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"go-task-manager/backend/internal/handlers"
	"go-task-manager/backend/internal/services"
)

// SetupRouter はGinルーターをセットアップし、すべてのエンドポイントを登録します。
// API_KEY_HASH が設定されている場合のみ、/api/tasks系のルートに
// Bearerトークン認証が掛かります（単一プリンシパルのAPI保護であって、
// ユーザーごとの認可ではありません）。
func SetupRouter(taskService *services.TaskService) *gin.Engine {
	r := gin.Default()

	// CORS対策
	config := cors.DefaultConfig()
	config.AllowOrigins = corsOrigins()
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	config.AllowCredentials = true
	r.Use(cors.New(config))

	// ハンドラー
	taskHandler := handlers.NewTaskHandler(taskService)

	r.GET("/api/hello", HelloHandler)

	protected := r.Group("/")
	if apiKeyHash := os.Getenv("API_KEY_HASH"); apiKeyHash != "" {
		authService := services.NewAuthService(apiKeyHash)
		jwtService := services.NewJWTService()
		authHandler := handlers.NewAuthHandler(authService, jwtService)

		r.POST("/api/token", authHandler.TokenHandler)
		protected.Use(AuthMiddleware(jwtService))
	}
	{
		protected.GET("/api/tasks", taskHandler.ListTasksHandler)
		protected.POST("/api/tasks", taskHandler.CreateTaskHandler)
		protected.GET("/api/tasks/:id", taskHandler.GetTaskHandler)
		protected.PUT("/api/tasks/:id", taskHandler.UpdateTaskHandler)
		protected.DELETE("/api/tasks/:id", taskHandler.DeleteTaskHandler)
		protected.POST("/api/tasks/:id/done", taskHandler.MarkDoneHandler)
		protected.POST("/api/tasks/:id/reset", taskHandler.ResetStatusHandler)
		protected.POST("/api/tasks/:id/important", taskHandler.MarkImportantHandler)
		protected.POST("/api/tasks/:id/toggle-important", taskHandler.ToggleImportanceHandler)
		protected.POST("/api/clear-completed", taskHandler.ClearCompletedHandler)
		protected.GET("/api/count", taskHandler.CountTasksHandler)
	}

	return r
}

// corsOrigins はCORS_ORIGINS（カンマ区切り）から許可オリジンを読み取ります。
func corsOrigins() []string {
	env := os.Getenv("CORS_ORIGINS")
	if env == "" {
		return []string{"http://localhost:3000"}
	}
	origins := strings.Split(env, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return origins
}

// HelloHandler は死活確認用のエンドポイントです。
func HelloHandler(c *gin.Context) {
	c.JSON(200, gin.H{"message": "Hello from Task Manager Backend!"})
}

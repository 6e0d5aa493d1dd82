package router

import (
	"github.com/RigelNana/arkstudy/services/admin-service/handler"
	"github.com/RigelNana/arkstudy/services/admin-service/middleware"
	ginMetrics "github.com/RigelNana/arkstudy/services/admin-service/pkg/metrics/gin"
	"github.com/RigelNana/arkstudy/services/admin-service/repository"
	"github.com/RigelNana/arkstudy/services/admin-service/service"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	apiHealthMessage      = "Admin dashboard API server running"
	frontendHealthMessage = "Admin dashboard frontend server running"
)

type Dependencies struct {
	Store   repository.Storage
	Uploads service.UploadService
	// AdminID 作为上传和笔记的 uploadedBy / createdBy
	AdminID int64
	Log     *logrus.Logger
}

func newEngine(log *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.Recovery(log),
		middleware.RequestLogger(log),
		ginMetrics.PrometheusMiddleware(service.ServiceName, ginMetrics.WithSkipPaths("/api/health")),
	)
	return r
}

// Setup 注册全部 /api 路由
func Setup(deps Dependencies) *gin.Engine {
	r := newEngine(deps.Log)

	boards := handler.NewBoardHandler(deps.Store, deps.Log)
	subjects := handler.NewSubjectHandler(deps.Store, deps.Log)
	materials := handler.NewMaterialHandler(deps.Store, deps.Uploads, deps.AdminID, deps.Log)
	notes := handler.NewNoteHandler(deps.Store, deps.AdminID, deps.Log)
	pyqPapers := handler.NewPyqHandler(deps.Store, deps.Uploads, deps.AdminID, deps.Log)
	dashboard := handler.NewDashboardHandler(service.NewDashboardService(deps.Store), deps.Log)
	auth := handler.NewAuthHandler(service.NewAuthService(deps.Store), deps.Log)

	api := r.Group("/api")
	{
		api.GET("/health", handler.Health(apiHealthMessage))
		api.POST("/login", auth.Login)
		api.GET("/dashboard/stats", dashboard.Stats)

		api.GET("/boards", boards.List)
		api.POST("/boards", boards.Create)
		api.GET("/boards/:id", boards.Get)
		api.PUT("/boards/:id", boards.Update)
		api.DELETE("/boards/:id", boards.Delete)

		api.GET("/subjects", subjects.List)
		api.POST("/subjects", subjects.Create)
		api.GET("/subjects/:id", subjects.Get)
		api.PUT("/subjects/:id", subjects.Update)
		api.DELETE("/subjects/:id", subjects.Delete)

		api.GET("/materials", materials.List)
		api.POST("/materials", materials.Create)
		api.GET("/materials/:id", materials.Get)
		api.PUT("/materials/:id", materials.Update)
		api.DELETE("/materials/:id", materials.Delete)

		api.GET("/notes", notes.List)
		api.POST("/notes", notes.Create)
		api.GET("/notes/:id", notes.Get)
		api.PUT("/notes/:id", notes.Update)
		api.DELETE("/notes/:id", notes.Delete)

		api.GET("/pyq-papers", pyqPapers.List)
		api.POST("/pyq-papers", pyqPapers.Create)
		api.GET("/pyq-papers/:id", pyqPapers.Get)
		api.PUT("/pyq-papers/:id", pyqPapers.Update)
		api.DELETE("/pyq-papers/:id", pyqPapers.Delete)
	}
	return r
}

// SetupHealthOnly 前端独立部署时只提供健康检查
func SetupHealthOnly(log *logrus.Logger) *gin.Engine {
	r := newEngine(log)
	r.GET("/api/health", handler.Health(frontendHealthMessage))
	return r
}

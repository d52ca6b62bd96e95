package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Kiranpjk/RapidGigs-sub001/internal/handlers"
	"github.com/Kiranpjk/RapidGigs-sub001/internal/hub"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HttpServer struct {
	ctx           context.Context
	port          string
	jwtKey        []byte
	router        *gin.Engine
	restHandler   *handlers.RestHandler
	socketHandler *handlers.SocketHandler
	socketHub     *hub.Hub
}

func NewHttpServer(
	ctx context.Context,
	port string,
	jwtKey []byte,
	restHandler *handlers.RestHandler,
	socketHandler *handlers.SocketHandler,
	socketHub *hub.Hub,
) *HttpServer {
	return &HttpServer{
		ctx:           ctx,
		port:          port,
		jwtKey:        jwtKey,
		restHandler:   restHandler,
		socketHandler: socketHandler,
		socketHub:     socketHub,
	}
}

func (hs *HttpServer) Run() {
	hs.router = gin.Default()
	hs.setupRoutes()

	server := &http.Server{
		Addr:    ":" + hs.port,
		Handler: hs.router,
	}

	go func() {
		log.Printf("HTTP server started on :%v", hs.port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	hs.waitForShutdown(server)
}

func (hs *HttpServer) setupRoutes() {
	hs.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	hs.router.GET("/ws", hs.socketHandler.HandleSocketRoute)

	api := hs.router.Group("/api/chat", handlers.MustAuthenticateMiddleware(hs.jwtKey))
	{
		api.POST("/conversations", hs.restHandler.CreateOrGetConversation)
		api.GET("/conversations", hs.restHandler.GetUserConversations)
		api.GET("/conversations/:id/messages", hs.restHandler.GetMessages)
		api.POST("/conversations/:id/messages", hs.restHandler.SendMessage)
		api.PUT("/conversations/:id/read", hs.restHandler.MarkRead)
		api.DELETE("/messages/:id", hs.restHandler.DeleteMessage)
		api.GET("/messages/search", hs.restHandler.SearchMessages)
		api.GET("/users/:id/presence", hs.restHandler.GetPresence)
	}
}

func (hs *HttpServer) waitForShutdown(server *http.Server) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if err := server.Shutdown(hs.ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	hs.socketHub.Shutdown()

	log.Println("Server exiting")
}

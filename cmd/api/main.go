package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"go-task-manager/backend/internal/database"
	"go-task-manager/backend/internal/routes"
	"go-task-manager/backend/internal/services"
	"go-task-manager/backend/internal/snapshot"
	"go-task-manager/backend/internal/taskstore"
)

func main() {
	// .env の読み込み（無ければ環境変数だけで動く）
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// ストア本体。クロックはホスト側から注入する
	store := taskstore.New(func() uint64 {
		return uint64(time.Now().UnixNano())
	})
	taskService := services.NewTaskService(store)

	// スナップショット機構（任意）: 有効なら起動時に復元し、終了時に保存する
	var snapshotRepo *snapshot.Repository
	if os.Getenv("SNAPSHOT_ENABLED") == "true" {
		db := database.InitDB()
		defer db.Close()

		snapshotRepo = snapshot.NewRepository(db)
		if err := snapshotRepo.EnsureSchema(); err != nil {
			log.Fatalf("Fatal: Failed to prepare snapshot table: %v", err)
		}

		state, err := snapshotRepo.Load()
		switch {
		case errors.Is(err, snapshot.ErrSnapshotNotFound):
			log.Println("No snapshot found, starting with an empty store")
		case err != nil:
			log.Fatalf("Fatal: Failed to load snapshot: %v", err)
		default:
			if err := taskService.RestoreState(state); err != nil {
				log.Fatalf("Fatal: Snapshot state is inconsistent: %v", err)
			}
			log.Printf("Restored %d tasks from snapshot (next id %d)", len(state.Tasks), state.NextID)
		}
	}

	router := routes.SetupRouter(taskService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	server := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Printf("Server listening on port %s...", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Fatal: Server failed: %v", err)
		}
	}()

	// SIGINT/SIGTERM で停止。スナップショットが有効なら保存してから終了する
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if snapshotRepo != nil {
		if err := snapshotRepo.Save(taskService.SnapshotState()); err != nil {
			log.Printf("Failed to save snapshot on shutdown: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Fatal: Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}

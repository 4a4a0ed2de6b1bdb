package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/handler/extension"
	"github.com/99designs/gqlgen/graphql/handler/lru"
	"github.com/99designs/gqlgen/graphql/handler/transport"
	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/gorilla/websocket"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/VitaminP8/blogql/graph"
	"github.com/VitaminP8/blogql/graph/generated"
	"github.com/VitaminP8/blogql/internal/comment"
	"github.com/VitaminP8/blogql/internal/config"
	"github.com/VitaminP8/blogql/internal/logging"
	"github.com/VitaminP8/blogql/internal/post"
	"github.com/VitaminP8/blogql/internal/storage"
	"github.com/VitaminP8/blogql/internal/storage/memory"
	"github.com/VitaminP8/blogql/internal/storage/sqlite"
	"github.com/VitaminP8/blogql/internal/subscription"
	"github.com/VitaminP8/blogql/internal/user"
)

func main() {
	// загружаем .env из нашего config.go
	config.LoadEnv()
	cfg := config.Load()

	storageType := flag.String("storage", cfg.Storage, "Тип хранилища: memory или sqlite")
	port := flag.String("port", cfg.Port, "Порт HTTP сервера")
	flag.Parse()

	logger := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Format: logging.ParseFormat(cfg.LogFormat),
	})

	manager := subscription.NewSubscriptionManager()

	var postStore post.PostStorage
	var commentStore comment.CommentStorage
	var userStore user.UserStorage
	var sqliteDB *sqlite.DB

	switch *storageType {
	case config.StorageSQLite:
		db, err := sqlite.Open(cfg.SQLiteDSN)
		if err != nil {
			log.Fatalf("failed to open sqlite storage: %v", err)
		}
		if cfg.Seed {
			if err := db.Load(storage.Seed()); err != nil {
				log.Fatalf("failed to seed database: %v", err)
			}
		}
		sqliteDB = db

		log.Println("Используется SQLite хранилище")
		userStore = sqlite.NewUserSQLiteStorage(db, manager)
		postStore = sqlite.NewPostSQLiteStorage(db, manager)
		commentStore = sqlite.NewCommentSQLiteStorage(db, manager)

	case config.StorageMemory:
		db := memory.NewDB()
		if cfg.Seed {
			db = memory.NewSeededDB()
		}

		log.Println("Используется in-memory хранилище")
		userStore = memory.NewUserMemoryStorage(db, manager)
		postStore = memory.NewPostMemoryStorage(db, manager)
		commentStore = memory.NewCommentMemoryStorage(db, manager)

	default:
		log.Fatalf("неизвестный тип хранилища: %s", *storageType)
	}

	// Инициализация резолвера
	resolver := &graph.Resolver{
		UserStore:           userStore,
		PostStore:           postStore,
		CommentStore:        commentStore,
		SubscriptionManager: manager,
		Logger:              logger,
	}

	srv := handler.New(generated.NewExecutableSchema(generated.Config{
		Resolvers: rootResolver{resolver},
	}))

	srv.AddTransport(transport.Options{})
	srv.AddTransport(transport.GET{})
	srv.AddTransport(transport.POST{})
	// подписки идут через websocket
	srv.AddTransport(transport.Websocket{
		KeepAlivePingInterval: 10 * time.Second,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	})

	srv.SetQueryCache(lru.New[*ast.QueryDocument](1000))
	srv.Use(extension.Introspection{})
	srv.Use(extension.AutomaticPersistedQuery{
		Cache: lru.New[string](100),
	})

	srv.SetErrorPresenter(graph.NewErrorPresenter(logger))
	srv.SetRecoverFunc(graph.NewRecoverFunc(logger))
	srv.AroundOperations(graph.LogOperations(logger))

	mux := http.NewServeMux()
	mux.Handle("/query", srv)
	// Страница с тестовым интерфейсом Playground
	mux.Handle("/", playground.Handler("GraphQL Playground", "/query"))

	server := &http.Server{
		Addr:    ":" + *port,
		Handler: mux,
	}

	go func() {
		logger.Info("server started", "addr", "http://localhost:"+*port+"/", "storage", *storageType)
		// ListenAndServe блокирует поток до server.Shutdown() или фатальной ошибки
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Ошибка сервера: %v", err)
		}
	}()

	// Ожидание SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Завершение...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}

	if err := sqliteDB.Close(); err != nil {
		logger.Error("failed to close database", "error", err)
	}

	log.Println("Сервер остановлен корректно")
}

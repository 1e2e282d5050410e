package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kirillkgr/shareit/internal/api"
	"github.com/Kirillkgr/shareit/internal/booking"
	"github.com/Kirillkgr/shareit/internal/cache"
	"github.com/Kirillkgr/shareit/internal/event"
	"github.com/Kirillkgr/shareit/internal/item"
	"github.com/Kirillkgr/shareit/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool

	KafkaBrokers      []string
	KafkaBookingTopic string

	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	SearchCacheTTL time.Duration
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router      *gin.Engine
	Producer    *event.Producer
	SearchCache *cache.SearchCache
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Optional infrastructure. Interface fields stay nil unless the concrete
	// component exists, so the services can check against nil.
	var producer *event.Producer
	var bookingProducer booking.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = event.NewProducer(cfg.KafkaBrokers, cfg.KafkaBookingTopic)
		bookingProducer = producer
	}

	var searchCache *cache.SearchCache
	var itemCache item.Cache
	if cfg.RedisAddr != "" {
		searchCache = cache.NewSearchCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.SearchCacheTTL)
		itemCache = searchCache
	}

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo)

	// Booking repository first: the item module reads booking windows
	// through it, while the booking service reads items back. Splitting the
	// repository from the service keeps the dependency one-way.
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	windowSource := booking.NewWindowSource(bookingRepo)

	// Item Module
	itemRepo := item.NewPgxRepository(cfg.DBPool)
	commentRepo := item.NewPgxCommentRepository(cfg.DBPool)
	itemService := item.NewService(itemRepo, commentRepo, userService, windowSource, itemCache)

	// Booking Module
	bookingService := booking.NewService(bookingRepo, userService, itemService, bookingProducer)

	// API Router Config
	routerParams := api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		UserService:    userService,
		ItemService:    itemService,
		BookingService: bookingService,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:      router,
		Producer:    producer,
		SearchCache: searchCache,
	}
}

// Package eventizer là điểm vào của kit phân quyền cho marketplace Eventizer:
// registry role, evaluator policy và REST API (auth, roles, users, offers) trên fiber + gorm.
package eventizer

import (
	"github.com/gofiber/fiber/v2"
	"github.com/muslewski/eventizer-sub001/billing"
	"github.com/muslewski/eventizer-sub001/collections"
	"github.com/muslewski/eventizer-sub001/config"
	"github.com/muslewski/eventizer-sub001/contracts"
	"github.com/muslewski/eventizer-sub001/core"
	"github.com/muslewski/eventizer-sub001/database"
	"github.com/muslewski/eventizer-sub001/handlers"
	"github.com/muslewski/eventizer-sub001/middleware"
	"github.com/muslewski/eventizer-sub001/models"
	"github.com/muslewski/eventizer-sub001/repository"
	"github.com/muslewski/eventizer-sub001/router"
	"github.com/muslewski/eventizer-sub001/service"
	"github.com/muslewski/eventizer-sub001/session"
	"gorm.io/gorm"
)

// Config là alias cho config.Config để tránh conflict với package config khác
type Config = config.Config

// Core types
type (
	Role             = core.Role
	RoleDefinition   = core.RoleDefinition
	Principal        = core.Principal
	Policy           = core.Policy
	Decision         = core.Decision
	CollectionAccess = core.CollectionAccess
)

// Roles
const (
	RoleAdmin           = core.RoleAdmin
	RoleModerator       = core.RoleModerator
	RoleServiceProvider = core.RoleServiceProvider
	RoleClient          = core.RoleClient
)

// Models
type (
	User  = models.User
	Offer = models.Offer
)

// Kit là main struct chứa tất cả dependencies
type Kit struct {
	App         *fiber.App
	DB          *gorm.DB
	Config      *Config
	Collections collections.Set

	// Repositories
	UserRepo  *repository.UserRepository
	OfferRepo *repository.OfferRepository

	// Services
	AuthService  *service.AuthService
	UserService  *service.UserService
	OfferService *service.OfferService
	RoleService  *service.RoleService

	AuthMiddleware *middleware.AuthMiddleware

	// Handlers
	AuthHandler  *handlers.AuthHandler
	UserHandler  *handlers.UserHandler
	OfferHandler *handlers.OfferHandler
	RoleHandler  *handlers.RoleHandler
	RouteHandler *handlers.RouteHandler

	RouteRegistry *router.RouteRegistry
}

// Builder là builder để tạo Kit
type Builder struct {
	app           *fiber.App
	db            *gorm.DB
	config        *Config
	collections   collections.Set
	sessions      contracts.SessionProvider
	subscriptions contracts.SubscriptionChecker
	skipMigrate   bool
}

// New tạo mới Builder
func New(app *fiber.App, db *gorm.DB) *Builder {
	return &Builder{
		app: app,
		db:  db,
	}
}

// WithConfig set config cho builder
func (b *Builder) WithConfig(cfg *Config) *Builder {
	b.config = cfg
	return b
}

// WithCollections thay policy mặc định của collections (ví dụ đã override từ file YAML)
func (b *Builder) WithCollections(set collections.Set) *Builder {
	b.collections = set
	return b
}

// WithSessionProvider thay session provider mặc định (JWT)
func (b *Builder) WithSessionProvider(sessions contracts.SessionProvider) *Builder {
	b.sessions = sessions
	return b
}

// WithSubscriptionChecker set nguồn kiểm tra subscription của service provider
func (b *Builder) WithSubscriptionChecker(checker contracts.SubscriptionChecker) *Builder {
	b.subscriptions = checker
	return b
}

// SkipMigrate bỏ qua AutoMigrate khi Initialize (schema do migration tool quản lý)
func (b *Builder) SkipMigrate() *Builder {
	b.skipMigrate = true
	return b
}

// Initialize khởi tạo Kit với tất cả dependencies
func (b *Builder) Initialize() (*Kit, error) {
	if b.config == nil {
		cfg, err := config.LoadConfig()
		if err != nil {
			return nil, err
		}
		b.config = cfg
	}
	if b.collections == nil {
		set, err := collections.LoadFile(b.config.PolicyFile, collections.Defaults())
		if err != nil {
			return nil, err
		}
		b.collections = set
	}
	if b.sessions == nil {
		b.sessions = session.NewJWTProvider(b.config.JWT.Secret)
	}
	if b.subscriptions == nil {
		// không có billing: không ai có subscription, service provider không đăng được offer
		b.subscriptions = billing.NewStaticChecker()
	}

	if !b.skipMigrate {
		if err := database.Migrate(b.db); err != nil {
			return nil, err
		}
	}

	users := b.collections.MustGet(collections.SlugUsers)
	offers := b.collections.MustGet(collections.SlugOffers)

	userRepo := repository.NewUserRepository(b.db)
	offerRepo := repository.NewOfferRepository(b.db)

	authService := service.NewAuthService(userRepo, users, b.config)
	userService := service.NewUserService(userRepo, users)
	offerService := service.NewOfferService(offerRepo, userRepo, offers, b.subscriptions)
	roleService := service.NewRoleService()

	registry := router.NewRouteRegistry()

	return &Kit{
		App:            b.app,
		DB:             b.db,
		Config:         b.config,
		Collections:    b.collections,
		UserRepo:       userRepo,
		OfferRepo:      offerRepo,
		AuthService:    authService,
		UserService:    userService,
		OfferService:   offerService,
		RoleService:    roleService,
		AuthMiddleware: middleware.NewAuthMiddleware(b.sessions, userRepo),
		AuthHandler:    handlers.NewAuthHandler(authService),
		UserHandler:    handlers.NewUserHandler(userService),
		OfferHandler:   handlers.NewOfferHandler(offerService),
		RoleHandler:    handlers.NewRoleHandler(roleService),
		RouteHandler:   handlers.NewRouteHandler(registry),
		RouteRegistry:  registry,
	}, nil
}

// Router trả về AuthRouter gắn trên app, dùng chung registry của kit
func (k *Kit) Router() *router.AuthRouter {
	return router.NewAuthRouter(k.App, k.RouteRegistry, k.AuthMiddleware)
}

// RegisterRoutes đăng ký toàn bộ REST API dưới prefix /api
func (k *Kit) RegisterRoutes() {
	users := k.Collections.MustGet(collections.SlugUsers)
	offers := k.Collections.MustGet(collections.SlugOffers)
	api := k.Router().Group("/api")

	auth := api.Group("/auth")
	auth.Post("/login", k.AuthHandler.Login).Public().Description("Đăng nhập, trả về JWT").Register()
	auth.Post("/register", k.AuthHandler.Register).Collection(users, core.OperationCreate).Description("Đăng ký tài khoản").Register()
	auth.Post("/logout", k.AuthHandler.Logout).Public().Register()
	auth.Get("/me", k.AuthHandler.Me).Authenticated().Description("Thông tin tài khoản hiện tại").Register()
	auth.Put("/password", k.AuthHandler.ChangePassword).Authenticated().Register()

	roles := api.Group("/roles")
	roles.Get("/", k.RoleHandler.ListRoles).Public().Description("Registry role").Register()
	roles.Get("/assignable", k.RoleHandler.Assignable).Public().Description("Role người gọi được phép gán").Register()
	roles.Get("/:role/above", k.RoleHandler.AtOrAbove).Public().Description("Role và các tổ tiên").Register()

	userRoutes := api.Group("/users")
	userRoutes.Get("/", k.UserHandler.List).Collection(users, core.OperationRead).Description("Danh sách user (lọc theo quyền)").Register()
	userRoutes.Get("/:id", k.UserHandler.Get).Authenticated().Register()
	userRoutes.Put("/:id", k.UserHandler.Update).Authenticated().Register()
	userRoutes.Put("/:id/role", k.UserHandler.UpdateRole).Policy(users.Fields[collections.FieldRole].Update).Description("Đổi role (có guard role được bảo vệ)").Register()
	userRoutes.Delete("/:id", k.UserHandler.Delete).Collection(users, core.OperationDelete).Register()

	offerRoutes := api.Group("/offers")
	offerRoutes.Get("/", k.OfferHandler.List).Collection(offers, core.OperationRead).Description("Offer công khai").Register()
	offerRoutes.Get("/:id", k.OfferHandler.Get).Collection(offers, core.OperationRead).Register()
	offerRoutes.Post("/", k.OfferHandler.Create).Collection(offers, core.OperationCreate).Description("Tạo offer (cần subscription)").Register()
	offerRoutes.Put("/:id", k.OfferHandler.Update).Authenticated().Register()
	offerRoutes.Delete("/:id", k.OfferHandler.Delete).Authenticated().Register()

	admin := api.Group("/admin")
	admin.Get("/offers", k.OfferHandler.ListManaged).Admin(offers).Description("Offer người gọi được sửa").Register()
	admin.Get("/users", k.UserHandler.List).Admin(users).Register()

	api.Get("/routes", k.RouteHandler.List).Policy(core.MinimumRole(core.RoleModerator)).Description("Danh sách route và policy").Register()
	api.Get("/routes/find", k.RouteHandler.Find).Policy(core.MinimumRole(core.RoleModerator)).Register()
}

// GetPrincipal trả về principal của request (anonymous nếu chưa đăng nhập)
func GetPrincipal(c *fiber.Ctx) Principal {
	return middleware.GetPrincipal(c)
}

// GetUserFromContext trả về user đã load từ database bởi auth middleware
func GetUserFromContext(c *fiber.Ctx) (*User, bool) {
	return middleware.GetUserFromContext(c)
}

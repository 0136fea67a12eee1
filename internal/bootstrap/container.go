package bootstrap

import (
	"math/rand"
	"time"

	"marketplace-client/internal/config"
	"marketplace-client/internal/pkg/logger"
	"marketplace-client/internal/service"
	"marketplace-client/pkg/apiclient"
	"marketplace-client/pkg/assist"
	"marketplace-client/pkg/catalog"
	"marketplace-client/pkg/genai"
	"marketplace-client/pkg/tokenstore"
)

// Container wires the process-wide singletons: one gateway client, one
// token store, one service instance per API surface.
type Container struct {
	Config *config.Config
	Logger logger.ILogger
	Client *apiclient.Client

	AuthService      service.IAuthService
	ProductService   service.IProductService
	CategoryService  service.ICategoryService
	WishlistService  service.IWishlistService
	UserService      service.IUserService
	AssistantService service.IAssistantService
	GoogleSignIn     service.IGoogleSignIn
}

func NewContainer(cfg *config.Config, tokenPath string) *Container {
	log := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	var tokens tokenstore.Store
	if tokenPath != "" {
		tokens = tokenstore.NewFileStore(tokenPath)
	} else {
		tokens = tokenstore.NewMemoryStore()
	}

	client := apiclient.New(
		cfg.App.BaseURL,
		tokens,
		log,
		apiclient.WithTimeout(cfg.App.RequestTimeout),
		apiclient.WithResponseCache(cfg.Cache.ResponseTTL),
	)

	var completer genai.Completer
	if cfg.Keys.GoogleGemini != "" {
		completer = genai.NewGeminiCompleter(cfg.Keys.GoogleGemini)
	}

	services := catalog.Services()
	advisor := assist.NewAdvisor(rand.New(rand.NewSource(time.Now().UnixNano())))
	responder := assist.NewResponder(services, advisor)

	return &Container{
		Config: cfg,
		Logger: log,
		Client: client,

		AuthService:      service.NewAuthService(client, log),
		ProductService:   service.NewProductService(client, log),
		CategoryService:  service.NewCategoryService(client),
		WishlistService:  service.NewWishlistService(client),
		UserService:      service.NewUserService(client),
		AssistantService: service.NewAssistantService(completer, responder, services, log),
		GoogleSignIn:     service.NewGoogleSignIn(cfg.Keys),
	}
}

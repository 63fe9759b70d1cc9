package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/pantry/internal/pantry/service"
	"github.com/aussiebroadwan/pantry/internal/pantry/store"
	"github.com/aussiebroadwan/pantry/pkg/httpx"
	"github.com/aussiebroadwan/pantry/pkg/pantrysdk"
	"github.com/aussiebroadwan/pantry/pkg/slogx"

	_ "github.com/aussiebroadwan/pantry/api/pantry" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store             store.Store
	UserService       *service.UserService
	TokenService      *service.TokenService
	IngredientService *service.IngredientService
	RecipeService     *service.RecipeService
	AdminService      *service.AdminService
}

func NewRouter(
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	corsOrigins []string,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(corsOrigins),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerUsers()
	r.registerIngredients()
	r.registerRecipes()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())

	// Anything unmatched gets a JSON 404 rather than the mux's text body.
	r.Mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		pantrysdk.ErrNotFound.WriteError(w)
	}))
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Pantry Recipe API
//	@version		0.1.0
//	@description	Recipe and ingredient tracker. Every ingredient and recipe belongs to the user that created it.
//	@description
//	@description				Authenticate with an opaque token obtained from POST /api/user/token/.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/pantry
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	TokenAuth
//	@in							header
//	@name						Authorization
//	@description				Opaque API token. Format: "Token {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// tokenAuthenticator resolves tokens for httpx.AuthnMiddleware.
type tokenAuthenticator struct {
	tokens *service.TokenService
}

func (a tokenAuthenticator) AuthenticateToken(ctx context.Context, raw string) (httpx.Principal, error) {
	u, err := a.tokens.Authenticate(ctx, raw)
	if err != nil {
		return httpx.Principal{}, err
	}
	return httpx.Principal{UserID: u.ID, Email: u.Email, Staff: u.IsStaff}, nil
}

// authed wraps h with token authentication and a per-user rate limit.
func (r *Router) authed(h http.Handler, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(tokenAuthenticator{r.TokenService}),
		httpx.RateLimitByUser(limit),
	)
}

func (r *Router) registerUsers() {
	create := &CreateUserHandler{UserService: r.UserService}
	token := &TokenHandler{TokenService: r.TokenService}
	me := &MeHandler{UserService: r.UserService}

	// POST /api/user/create/ - strict rate limit by IP (public signup endpoint)
	r.Mux.Handle("POST /api/user/create/{$}",
		httpx.Chain(create,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("/api/user/create/{$}", httpx.MethodNotAllowed(http.MethodPost))

	// POST /api/user/token/ - rate limited by IP + email to slow down guessing
	r.Mux.Handle("POST /api/user/token/{$}",
		httpx.Chain(http.HandlerFunc(token.HandleCreate),
			httpx.RateLimitByIPAndField(httpx.StrictLimit, "email"),
		),
	)

	// DELETE /api/user/token/ - logout, revokes the presented token
	r.Mux.Handle("DELETE /api/user/token/{$}", r.authed(http.HandlerFunc(token.HandleDelete), httpx.ModerateLimit))
	r.Mux.Handle("/api/user/token/{$}", httpx.MethodNotAllowed(http.MethodPost, http.MethodDelete))

	// /api/user/me/ - profile of the caller
	r.Mux.Handle("GET /api/user/me/{$}", r.authed(http.HandlerFunc(me.HandleGet), httpx.LenientLimit))
	r.Mux.Handle("PUT /api/user/me/{$}", r.authed(http.HandlerFunc(me.HandlePut), httpx.ModerateLimit))
	r.Mux.Handle("PATCH /api/user/me/{$}", r.authed(http.HandlerFunc(me.HandlePatch), httpx.ModerateLimit))

	// Authentication is checked before the method, so anonymous POSTs get 401.
	r.Mux.Handle("/api/user/me/{$}", r.authed(
		httpx.MethodNotAllowed(http.MethodGet, http.MethodPut, http.MethodPatch), httpx.LenientLimit))
}

func (r *Router) registerIngredients() {
	h := &IngredientsHandler{IngredientService: r.IngredientService}

	r.Mux.Handle("GET /api/ingredients/{$}", r.authed(http.HandlerFunc(h.HandleList), httpx.LenientLimit))
	r.Mux.Handle("POST /api/ingredients/{$}", r.authed(http.HandlerFunc(h.HandleCreate), httpx.LenientLimit))
	r.Mux.Handle("/api/ingredients/{$}", r.authed(
		httpx.MethodNotAllowed(http.MethodGet, http.MethodPost), httpx.LenientLimit))

	r.Mux.Handle("GET /api/ingredients/{id}/{$}", r.authed(http.HandlerFunc(h.HandleGet), httpx.LenientLimit))
	r.Mux.Handle("PUT /api/ingredients/{id}/{$}", r.authed(http.HandlerFunc(h.HandlePut), httpx.LenientLimit))
	r.Mux.Handle("PATCH /api/ingredients/{id}/{$}", r.authed(http.HandlerFunc(h.HandlePatch), httpx.LenientLimit))
	r.Mux.Handle("DELETE /api/ingredients/{id}/{$}", r.authed(http.HandlerFunc(h.HandleDelete), httpx.LenientLimit))
	r.Mux.Handle("/api/ingredients/{id}/{$}", r.authed(
		httpx.MethodNotAllowed(http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete), httpx.LenientLimit))
}

func (r *Router) registerRecipes() {
	h := &RecipesHandler{RecipeService: r.RecipeService}

	r.Mux.Handle("GET /api/recipes/{$}", r.authed(http.HandlerFunc(h.HandleList), httpx.LenientLimit))
	r.Mux.Handle("POST /api/recipes/{$}", r.authed(http.HandlerFunc(h.HandleCreate), httpx.LenientLimit))
	r.Mux.Handle("/api/recipes/{$}", r.authed(
		httpx.MethodNotAllowed(http.MethodGet, http.MethodPost), httpx.LenientLimit))

	r.Mux.Handle("GET /api/recipes/{id}/{$}", r.authed(http.HandlerFunc(h.HandleGet), httpx.LenientLimit))
	r.Mux.Handle("PUT /api/recipes/{id}/{$}", r.authed(http.HandlerFunc(h.HandlePut), httpx.LenientLimit))
	r.Mux.Handle("PATCH /api/recipes/{id}/{$}", r.authed(http.HandlerFunc(h.HandlePatch), httpx.LenientLimit))
	r.Mux.Handle("DELETE /api/recipes/{id}/{$}", r.authed(http.HandlerFunc(h.HandleDelete), httpx.LenientLimit))
	r.Mux.Handle("/api/recipes/{id}/{$}", r.authed(
		httpx.MethodNotAllowed(http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete), httpx.LenientLimit))
}

func (r *Router) registerAdmin() {
	h := &AdminHandler{AdminService: r.AdminService}

	// Staff only - moderate rate limit by user
	staff := func(next http.Handler) http.Handler {
		return httpx.Chain(next,
			httpx.AuthnMiddleware(tokenAuthenticator{r.TokenService}),
			httpx.RequireStaff(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("GET /admin/users", staff(http.HandlerFunc(h.HandleListUsers)))
	r.Mux.Handle("POST /admin/users", staff(http.HandlerFunc(h.HandleCreateUser)))
	r.Mux.Handle("GET /admin/users/{id}", staff(http.HandlerFunc(h.HandleGetUser)))
	r.Mux.Handle("PATCH /admin/users/{id}", staff(http.HandlerFunc(h.HandleUpdateUser)))
	r.Mux.Handle("DELETE /admin/users/{id}", staff(http.HandlerFunc(h.HandleDeleteUser)))
	r.Mux.Handle("/admin/users", staff(httpx.MethodNotAllowed(http.MethodGet, http.MethodPost)))
	r.Mux.Handle("/admin/users/{id}", staff(httpx.MethodNotAllowed(http.MethodGet, http.MethodPatch, http.MethodDelete)))

	r.Mux.Handle("GET /admin/ingredients", staff(http.HandlerFunc(h.HandleListIngredients)))
	r.Mux.Handle("DELETE /admin/ingredients/{id}", staff(http.HandlerFunc(h.HandleDeleteIngredient)))
	r.Mux.Handle("/admin/ingredients", staff(httpx.MethodNotAllowed(http.MethodGet)))
	r.Mux.Handle("/admin/ingredients/{id}", staff(httpx.MethodNotAllowed(http.MethodDelete)))
}

func (r *Router) registerSystem() {
	// Health check endpoints - public rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

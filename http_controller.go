package directory

import (
	"net/http"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

// RegisterAuthRoutes mounts the registration and login endpoints
func RegisterAuthRoutes[T any](app router.Router[T], opts ...AuthControllerOption) {
	controller := NewAuthController(opts...)

	app.Post(controller.Routes.Register, controller.RegistrationCreate).
		SetName("auth.register.post")

	app.Post(controller.Routes.Login, controller.LoginPost).
		SetName("auth.login.post")
}

type AuthControllerRoutes struct {
	Login    string
	Register string
}

type AuthController struct {
	Logger Logger
	Auther Authenticator
	Routes *AuthControllerRoutes
}

type AuthControllerOption func(*AuthController) *AuthController

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger: defLogger{},
		Routes: &AuthControllerRoutes{
			Login:    "/login",
			Register: "/register",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Auther == nil {
		panic("Missing Authenticator in auth controller...")
	}

	return c
}

func WithAuthControllerAuther(auther Authenticator) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Auther = auther
		return c
	}
}

func WithAuthControllerLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Logger = logger
		return c
	}
}

// RegistrationPayload is the register request body
type RegistrationPayload struct {
	Name     string `form:"name" json:"name"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will validate the payload
func (r RegistrationPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, validation.Length(3, 100), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(1, 100)),
	)
}

func (a *AuthController) RegistrationCreate(ctx router.Context) error {
	payload := new(RegistrationPayload)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("register parse payload", "error", err)
		return writeError(ctx, errors.Wrap(err, errors.CategoryBadInput, "failed to parse request body"))
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("register validate payload", "error", err)
		return writeValidationError(ctx, err)
	}

	session, err := a.Auther.Register(ctx.Context(), payload.Name, payload.Email, payload.Password)
	if err != nil {
		a.Logger.Error("register error", "error", err)
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, session)
}

// LoginPayload is the login request body
type LoginPayload struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r LoginPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

func (a *AuthController) LoginPost(ctx router.Context) error {
	payload := new(LoginPayload)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("login parse payload", "error", err)
		return writeError(ctx, errors.Wrap(err, errors.CategoryBadInput, "failed to parse request body"))
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("login validate payload", "error", err)
		return writeValidationError(ctx, err)
	}

	session, err := a.Auther.Login(ctx.Context(), payload.Email, payload.Password)
	if err != nil {
		a.Logger.Error("login error", "error", err)
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, session)
}

// RegisterProfileRoutes mounts the profile CRUD endpoints behind the given
// middleware.
func RegisterProfileRoutes[T any](app router.Router[T], protected router.MiddlewareFunc, opts ...ProfileControllerOption) {
	controller := NewProfileController(opts...)

	app.Get("/users", controller.Index, protected).SetName("users.index")
	app.Post("/users", controller.Create, protected).SetName("users.create")
	app.Get("/users/:id", controller.Show, protected).SetName("users.show")
	app.Put("/users/:id", controller.Update, protected).SetName("users.update")
	app.Delete("/users/:id", controller.Destroy, protected).SetName("users.destroy")
}

type ProfileController struct {
	Logger Logger
	Repo   Profiles
}

type ProfileControllerOption func(*ProfileController) *ProfileController

func NewProfileController(opts ...ProfileControllerOption) *ProfileController {
	c := &ProfileController{
		Logger: defLogger{},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Repo == nil {
		panic("Missing Profiles repository in profile controller...")
	}

	return c
}

func WithProfileControllerRepo(repo Profiles) ProfileControllerOption {
	return func(c *ProfileController) *ProfileController {
		c.Repo = repo
		return c
	}
}

func WithProfileControllerLogger(logger Logger) ProfileControllerOption {
	return func(c *ProfileController) *ProfileController {
		c.Logger = logger
		return c
	}
}

// GeoPayload mirrors the coordinates block of a profile body
type GeoPayload struct {
	Lat string `form:"lat" json:"lat"`
	Lng string `form:"lng" json:"lng"`
}

// AddressPayload mirrors the address block of a profile body
type AddressPayload struct {
	Street  string     `form:"street" json:"street"`
	Suite   string     `form:"suite" json:"suite"`
	City    string     `form:"city" json:"city"`
	Zipcode string     `form:"zipcode" json:"zipcode"`
	Geo     GeoPayload `form:"geo" json:"geo"`
}

// CompanyPayload mirrors the company block of a profile body
type CompanyPayload struct {
	Name        string `form:"name" json:"name"`
	CatchPhrase string `form:"catchPhrase" json:"catchPhrase"`
	BS          string `form:"bs" json:"bs"`
}

// ProfilePayload is the create and update request body. Any id in the body
// is ignored: creates get a store-assigned id, updates use the path id.
type ProfilePayload struct {
	Name     string         `form:"name" json:"name"`
	Username string         `form:"username" json:"username"`
	Email    string         `form:"email" json:"email"`
	Address  AddressPayload `form:"address" json:"address"`
	Phone    string         `form:"phone" json:"phone"`
	Website  string         `form:"website" json:"website"`
	Company  CompanyPayload `form:"company" json:"company"`
}

// Validate will validate the payload
func (r ProfilePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(0, 200)),
		validation.Field(&r.Username, validation.Length(0, 100)),
		validation.Field(&r.Email, validation.Length(0, 100)),
	)
}

func (r ProfilePayload) toModel() *Profile {
	return &Profile{
		Name:     r.Name,
		Username: r.Username,
		Email:    r.Email,
		Phone:    r.Phone,
		Website:  r.Website,
		Address: Address{
			Street:  r.Address.Street,
			Suite:   r.Address.Suite,
			City:    r.Address.City,
			Zipcode: r.Address.Zipcode,
			Geo: Geo{
				Lat: r.Address.Geo.Lat,
				Lng: r.Address.Geo.Lng,
			},
		},
		Company: Company{
			Name:        r.Company.Name,
			CatchPhrase: r.Company.CatchPhrase,
			BS:          r.Company.BS,
		},
	}
}

func (a *ProfileController) Index(ctx router.Context) error {
	records, err := a.Repo.List(ctx.Context())
	if err != nil {
		a.Logger.Error("profile index error", "error", err)
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, records)
}

func (a *ProfileController) Show(ctx router.Context) error {
	id, err := parseProfileID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	record, err := a.Repo.GetByID(ctx.Context(), id)
	if err != nil {
		a.Logger.Error("profile show error", "id", id, "error", err)
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, record)
}

func (a *ProfileController) Create(ctx router.Context) error {
	payload := new(ProfilePayload)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("profile create parse payload", "error", err)
		return writeError(ctx, errors.Wrap(err, errors.CategoryBadInput, "failed to parse request body"))
	}

	if err := payload.Validate(); err != nil {
		return writeValidationError(ctx, err)
	}

	record, err := a.Repo.Create(ctx.Context(), payload.toModel())
	if err != nil {
		a.Logger.Error("profile create error", "error", err)
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, record)
}

func (a *ProfileController) Update(ctx router.Context) error {
	id, err := parseProfileID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	payload := new(ProfilePayload)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("profile update parse payload", "error", err)
		return writeError(ctx, errors.Wrap(err, errors.CategoryBadInput, "failed to parse request body"))
	}

	if err := payload.Validate(); err != nil {
		return writeValidationError(ctx, err)
	}

	record := payload.toModel()
	record.ID = id

	updated, err := a.Repo.Update(ctx.Context(), record)
	if err != nil {
		a.Logger.Error("profile update error", "id", id, "error", err)
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, updated)
}

func (a *ProfileController) Destroy(ctx router.Context) error {
	id, err := parseProfileID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := a.Repo.Delete(ctx.Context(), id); err != nil {
		a.Logger.Error("profile destroy error", "id", id, "error", err)
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func parseProfileID(ctx router.Context) (int64, error) {
	raw := ctx.Param("id", "")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.New("profile id must be an integer", errors.CategoryBadInput).
			WithMetadata(map[string]any{
				"id": raw,
			})
	}
	return id, nil
}

// statusForError maps an error category to an HTTP status code
func statusForError(err error) int {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return http.StatusInternalServerError
	}

	switch richErr.Category {
	case errors.CategoryAuth:
		return http.StatusUnauthorized
	case errors.CategoryAuthz:
		return http.StatusForbidden
	case errors.CategoryConflict:
		return http.StatusConflict
	case errors.CategoryNotFound:
		return http.StatusNotFound
	case errors.CategoryValidation, errors.CategoryBadInput:
		return http.StatusBadRequest
	case errors.CategoryRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func writeError(ctx router.Context, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred")
	}

	body := map[string]any{
		"message": richErr.Message,
	}
	if richErr.TextCode != "" {
		body["text_code"] = richErr.TextCode
	}

	return ctx.JSON(statusForError(richErr), map[string]any{
		"error": body,
	})
}

func writeValidationError(ctx router.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, map[string]any{
		"error": map[string]any{
			"message": "validation failed",
			"fields":  formatValidationErrors(err),
		},
	})
}

func formatValidationErrors(err error) map[string]string {
	out := map[string]string{}
	if verrs, ok := err.(validation.Errors); ok {
		for field, ferr := range verrs {
			out[field] = ferr.Error()
		}
		return out
	}
	out["payload"] = err.Error()
	return out
}

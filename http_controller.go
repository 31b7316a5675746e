package users

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
)

// CallerContextKey is where the auth middleware stores the Caller in the
// request locals.
const CallerContextKey = "caller"

// CallerFromFiber retrieves the caller identity injected by the auth
// middleware.
func CallerFromFiber(c *fiber.Ctx) (Caller, bool) {
	raw := c.Locals(CallerContextKey)
	if raw == nil {
		return Caller{}, false
	}
	caller, ok := raw.(Caller)
	return caller, ok
}

// UsersController exposes the lifecycle service over HTTP. Routing, body
// parsing and the auth middleware are collaborators; every decision lives in
// the service.
type UsersController struct {
	Debug   bool
	Logger  Logger
	Service *UserService
}

type UsersControllerOption func(*UsersController) *UsersController

func NewUsersController(service *UserService, opts ...UsersControllerOption) *UsersController {
	c := &UsersController{
		Logger:  defLogger{},
		Service: service,
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Service == nil {
		panic("Missing UserService in users controller...")
	}

	return c
}

func WithControllerLogger(l Logger) UsersControllerOption {
	return func(c *UsersController) *UsersController {
		c.Logger = l
		return c
	}
}

func WithControllerDebug(debug bool) UsersControllerOption {
	return func(c *UsersController) *UsersController {
		c.Debug = debug
		return c
	}
}

// RegisterUserRoutes mounts the home endpoints and the user collection.
// Handlers under /users expect the auth middleware to have injected the
// caller identity.
func RegisterUserRoutes(app *fiber.App, controller *UsersController, middleware ...fiber.Handler) {
	app.Get("/", controller.Home)
	app.Get("/info", controller.Info)

	grp := app.Group("/users")
	for _, m := range middleware {
		grp.Use(m)
	}

	grp.Get("/", controller.Index)
	grp.Post("/", controller.Create)
	grp.Get("/count", controller.Count)
	grp.Get("/:user_id", controller.Show)
	grp.Patch("/:user_id", controller.Update)
	grp.Delete("/:user_id", controller.Destroy)
	grp.Put("/:user_id/password", controller.UpdatePassword)
	grp.Patch("/:user_id/password", controller.UpdatePassword)
}

func (a *UsersController) Home(c *fiber.Ctx) error {
	return c.SendString("User management API")
}

func (a *UsersController) Info(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"name":    ServiceName,
		"version": Version,
	})
}

func (a *UsersController) Index(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", DefaultListLimit)
	skip := c.QueryInt("skip", 0)

	records, err := a.Service.List(c.Context(), limit, skip)
	if err != nil {
		return a.respondError(c, err)
	}

	if records == nil {
		records = []*User{}
	}

	return c.JSON(records)
}

func (a *UsersController) Count(c *fiber.Ctx) error {
	count, err := a.Service.Count(c.Context())
	if err != nil {
		return a.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"count": count,
	})
}

func (a *UsersController) Create(c *fiber.Ctx) error {
	msg := CreateUserMessage{}
	if err := c.BodyParser(&msg); err != nil {
		return a.respondError(c, errors.Wrap(err, errors.CategoryBadInput, "unable to parse request body").
			WithCode(errors.CodeBadRequest))
	}

	if a.Debug {
		a.Logger.Debug("create user payload: %s", print.MaybeHighlightJSON(fiber.Map{
			"username":      msg.Username,
			"email_address": msg.Email,
		}))
	}

	created, err := a.Service.Create(c.Context(), msg)
	if err != nil {
		return a.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (a *UsersController) Show(c *fiber.Ctx) error {
	caller, _ := CallerFromFiber(c)

	user, err := a.Service.Get(c.Context(), c.Params("user_id"), caller)
	if err != nil {
		return a.respondError(c, err)
	}

	return c.JSON(user)
}

func (a *UsersController) Update(c *fiber.Ctx) error {
	caller, ok := CallerFromFiber(c)
	if !ok {
		return a.respondError(c, ErrMissingCaller)
	}

	fields := map[string]any{}
	if err := json.Unmarshal(c.Body(), &fields); err != nil {
		return a.respondError(c, errors.Wrap(err, errors.CategoryBadInput, "unable to parse request body").
			WithCode(errors.CodeBadRequest))
	}

	id, err := a.Service.Patch(c.Context(), c.Params("user_id"), caller, fields)
	if err != nil {
		return a.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"user_id": id,
		"updated": true,
	})
}

func (a *UsersController) Destroy(c *fiber.Ctx) error {
	caller, _ := CallerFromFiber(c)

	id, err := a.Service.Delete(c.Context(), c.Params("user_id"), caller)
	if err != nil {
		return a.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"user_id": id,
		"deleted": true,
	})
}

func (a *UsersController) UpdatePassword(c *fiber.Ctx) error {
	caller, ok := CallerFromFiber(c)
	if !ok {
		return a.respondError(c, ErrMissingCaller)
	}

	msg := RotatePasswordMessage{}
	if err := c.BodyParser(&msg); err != nil {
		return a.respondError(c, errors.Wrap(err, errors.CategoryBadInput, "unable to parse request body").
			WithCode(errors.CodeBadRequest))
	}

	id, err := a.Service.RotatePassword(c.Context(), c.Params("user_id"), caller, msg)
	if err != nil {
		return a.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"user_id":          id,
		"password_updated": true,
	})
}

func (a *UsersController) respondError(c *fiber.Ctx, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryInternal, "an unexpected server error occurred").
			WithCode(errors.CodeInternal)
	}

	status := richErr.Code
	if status == 0 {
		status = fiber.StatusInternalServerError
	}

	a.Logger.Error(
		"request failed: %s category=%s metadata=%s",
		richErr.Message,
		richErr.Category,
		print.MaybePrettyJSON(richErr.Metadata),
	)

	body := fiber.Map{
		"message": richErr.Message,
	}
	if richErr.TextCode != "" {
		body["code"] = richErr.TextCode
	}
	if len(richErr.Metadata) > 0 {
		body["metadata"] = richErr.Metadata
	}

	return c.Status(status).JSON(fiber.Map{
		"error": body,
	})
}

package identity

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// ClientControllerRoutes holds the path layout for the JSON API
type ClientControllerRoutes struct {
	Clients         string
	Login           string
	ConfirmLogin    string
	PatchStatus     string
	ChangePassword  string
	Recovery        string
	ConfirmRecovery string
}

type ClientController struct {
	Debug    bool
	Logger   Logger
	Accounts *Accounts
	Tokens   TokenService
	Routes   *ClientControllerRoutes
}

type ClientControllerOption func(*ClientController) *ClientController

func NewClientController(opts ...ClientControllerOption) *ClientController {
	c := &ClientController{
		Logger: defLogger{},
		Routes: &ClientControllerRoutes{
			Clients:         "/clients",
			Login:           "/clients/login",
			ConfirmLogin:    "/clients/login/confirm",
			PatchStatus:     "/clients/status",
			ChangePassword:  "/clients/changePassword",
			Recovery:        "/recovery",
			ConfirmRecovery: "/recovery/confirm",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Accounts == nil {
		panic("Missing Accounts in client controller...")
	}

	if c.Tokens == nil {
		panic("Missing TokenService in client controller...")
	}

	return c
}

func WithControllerAccounts(accounts *Accounts) ClientControllerOption {
	return func(c *ClientController) *ClientController {
		c.Accounts = accounts
		return c
	}
}

func WithControllerTokens(tokens TokenService) ClientControllerOption {
	return func(c *ClientController) *ClientController {
		c.Tokens = tokens
		return c
	}
}

func WithControllerLogger(logger Logger) ClientControllerOption {
	return func(c *ClientController) *ClientController {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

// RegisterClientRoutes mounts the client identity API on the given app
func RegisterClientRoutes(app *fiber.App, opts ...ClientControllerOption) *ClientController {
	controller := NewClientController(opts...)

	app.Post(controller.Routes.Login, controller.LoginPost)
	app.Post(controller.Routes.ConfirmLogin, controller.ConfirmLoginPost)

	app.Post(controller.Routes.Clients, controller.RegisterPost)
	app.Get(controller.Routes.Clients, controller.ListGet)
	app.Get(controller.Routes.Clients+"/:id", controller.ProfileGet)
	app.Patch(controller.Routes.Clients+"/:id", controller.ProfilePatch)
	app.Patch(controller.Routes.PatchStatus+"/:id", controller.StatusPatch)
	app.Patch(controller.Routes.ChangePassword+"/:id", controller.ChangePasswordPatch)
	app.Delete(controller.Routes.Clients+"/:id", controller.ClientDelete)

	app.Post(controller.Routes.Recovery, controller.RecoveryPost)
	app.Post(controller.Routes.ConfirmRecovery, controller.ConfirmRecoveryPost)

	return controller
}

func (a *ClientController) RegisterPost(c *fiber.Ctx) error {
	payload := new(RegisterClientRequest)
	if err := c.BodyParser(payload); err != nil {
		return a.renderError(c, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse body"))
	}

	client, err := a.Accounts.Register(c.UserContext(), *payload)
	if err != nil {
		a.Logger.Error("RegisterPost error", "error", err)
		return a.renderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(client.Full())
}

func (a *ClientController) LoginPost(c *fiber.Ctx) error {
	payload := new(LoginRequest)
	if err := c.BodyParser(payload); err != nil {
		return a.renderError(c, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse body"))
	}

	token, err := a.Accounts.Login(c.UserContext(), *payload)
	if err != nil {
		a.Logger.Error("LoginPost error", "error", err)
		return a.renderError(c, err)
	}

	return c.JSON(fiber.Map{"token": token})
}

func (a *ClientController) ConfirmLoginPost(c *fiber.Ctx) error {
	payload := new(ConfirmLoginRequest)
	if err := c.BodyParser(payload); err != nil {
		return a.renderError(c, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse body"))
	}

	client, err := a.Accounts.ConfirmLogin(c.UserContext(), *payload)
	if err != nil {
		return a.renderError(c, err)
	}

	return c.JSON(client.Full())
}

func (a *ClientController) ListGet(c *fiber.Ctx) error {
	profiles, err := a.Accounts.ListClients(c.UserContext())
	if err != nil {
		return a.renderError(c, err)
	}

	return c.JSON(profiles)
}

func (a *ClientController) ProfileGet(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return a.renderError(c, err)
	}

	profile, err := a.Accounts.GetClientByID(c.UserContext(), a.actorFromRequest(c), id)
	if err != nil {
		return a.renderError(c, err)
	}

	return c.JSON(profile)
}

func (a *ClientController) ProfilePatch(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return a.renderError(c, err)
	}

	fields := map[string]any{}
	if err := c.BodyParser(&fields); err != nil {
		return a.renderError(c, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse body"))
	}

	client, err := a.Accounts.PatchProfile(c.UserContext(), a.actorFromRequest(c), id, fields)
	if err != nil {
		a.Logger.Error("ProfilePatch error", "client_id", id.String(), "error", err)
		return a.renderError(c, err)
	}

	return c.JSON(client.Full())
}

func (a *ClientController) StatusPatch(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return a.renderError(c, err)
	}

	fields := map[string]any{}
	if err := c.BodyParser(&fields); err != nil {
		return a.renderError(c, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse body"))
	}

	client, err := a.Accounts.PatchStatusOrPrivilege(c.UserContext(), a.actorFromRequest(c), id, fields)
	if err != nil {
		a.Logger.Error("StatusPatch error", "client_id", id.String(), "error", err)
		return a.renderError(c, err)
	}

	return c.JSON(client.Full())
}

func (a *ClientController) ChangePasswordPatch(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return a.renderError(c, err)
	}

	payload := new(ChangePasswordRequest)
	if err := c.BodyParser(payload); err != nil {
		return a.renderError(c, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse body"))
	}
	payload.ClientID = id

	client, err := a.Accounts.ChangePassword(c.UserContext(), *payload)
	if err != nil {
		a.Logger.Error("ChangePasswordPatch error", "client_id", id.String(), "error", err)
		return a.renderError(c, err)
	}

	return c.JSON(client.Full())
}

func (a *ClientController) ClientDelete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return a.renderError(c, err)
	}

	if err := a.Accounts.DeleteClient(c.UserContext(), a.actorFromRequest(c), id); err != nil {
		return a.renderError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (a *ClientController) RecoveryPost(c *fiber.Ctx) error {
	payload := new(RequestRecoveryRequest)
	if err := c.BodyParser(payload); err != nil {
		return a.renderError(c, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse body"))
	}

	ticket, err := a.Accounts.RequestRecovery(c.UserContext(), *payload)
	if err != nil {
		a.Logger.Error("RecoveryPost error", "error", err)
		return a.renderError(c, err)
	}

	return c.JSON(ticket)
}

func (a *ClientController) ConfirmRecoveryPost(c *fiber.Ctx) error {
	payload := new(ConfirmRecoveryRequest)
	if err := c.BodyParser(payload); err != nil {
		return a.renderError(c, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse body"))
	}

	if err := a.Accounts.ConfirmRecovery(c.UserContext(), *payload); err != nil {
		return a.renderError(c, err)
	}

	return c.JSON(fiber.Map{"valid": true})
}

// actorFromRequest resolves the session claims from a bearer token. A
// missing or invalid token yields a nil actor; the policy decides whether
// the operation tolerates that.
func (a *ClientController) actorFromRequest(c *fiber.Ctx) SessionClaims {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return nil
	}

	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
	if token == "" {
		return nil
	}

	claims, err := a.Tokens.Validate(token)
	if err != nil {
		if !IsTokenExpiredError(err) {
			a.Logger.Debug("actorFromRequest invalid token", "malformed", IsMalformedError(err), "error", err)
		}
		return nil
	}

	return claims
}

func (a *ClientController) renderError(c *fiber.Ctx, err error) error {
	status, body := httpError(err)
	return c.Status(status).JSON(body)
}

// httpError maps an error to a response status and JSON body. Rich errors
// map by category; everything else is an internal error.
func httpError(err error) (int, fiber.Map) {
	var richErr *goerrors.Error
	if !errors.As(err, &richErr) {
		return fiber.StatusInternalServerError, fiber.Map{
			"error": "internal server error",
		}
	}

	status := fiber.StatusInternalServerError
	switch richErr.Category {
	case goerrors.CategoryValidation, goerrors.CategoryBadInput:
		status = fiber.StatusBadRequest
	case goerrors.CategoryAuth:
		status = fiber.StatusUnauthorized
	case goerrors.CategoryAuthz:
		status = fiber.StatusForbidden
	case goerrors.CategoryNotFound:
		status = fiber.StatusNotFound
	case goerrors.CategoryConflict:
		status = fiber.StatusConflict
	case goerrors.CategoryOperation:
		status = fiber.StatusBadGateway
	}

	body := fiber.Map{"error": richErr.Message}
	if richErr.TextCode != "" {
		body["code"] = richErr.TextCode
	}

	return status, body
}

func pathID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid client id")
	}
	return id, nil
}

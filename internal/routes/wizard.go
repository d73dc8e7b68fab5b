package routes

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/zharpizza/landing/internal/middleware"
	"github.com/zharpizza/landing/internal/session"
	"github.com/zharpizza/landing/internal/wizard"
)

type wizardRequest struct {
	Phone string `json:"phone" form:"phone" validate:"max=32"`
	Code  string `json:"code" form:"code" validate:"max=16"`
	Name  string `json:"name" form:"name" validate:"max=64"`
}

type wizardResponse struct {
	Wizard wizard.View         `json:"wizard"`
	Error  string              `json:"error,omitempty"`
	User   *session.Credential `json:"user,omitempty"`
}

// wizardAction runs one wizard event for the requesting visitor. A non-nil
// Credential means the wizard completed. Only actions with opens set may
// create a wizard; the rest act on an existing one.
type wizardAction struct {
	opens bool
	run   func(ctx context.Context, w *wizard.Wizard, req wizardRequest) (*session.Credential, error)
}

var (
	openWizard = wizardAction{
		opens: true,
		run: func(context.Context, *wizard.Wizard, wizardRequest) (*session.Credential, error) {
			return nil, nil
		},
	}
	submitPhone = wizardAction{
		run: func(ctx context.Context, w *wizard.Wizard, req wizardRequest) (*session.Credential, error) {
			return nil, w.SubmitPhone(ctx, req.Phone)
		},
	}
	submitCode = wizardAction{
		run: func(ctx context.Context, w *wizard.Wizard, req wizardRequest) (*session.Credential, error) {
			return nil, w.SubmitCode(ctx, req.Code)
		},
	}
	goBack = wizardAction{
		run: func(_ context.Context, w *wizard.Wizard, _ wizardRequest) (*session.Credential, error) {
			return nil, w.Back()
		},
	}
	submitName = wizardAction{
		run: func(ctx context.Context, w *wizard.Wizard, req wizardRequest) (*session.Credential, error) {
			cred, err := w.SubmitName(ctx, req.Name)
			if err != nil {
				return nil, err
			}
			return &cred, nil
		},
	}
)

// RegisterAuthFormRoutes wires the modal's HTML forms. Every post redirects
// back to the page, which renders the wizard's new state.
func RegisterAuthFormRoutes(r fiber.Router, s *site, codeLimiter fiber.Handler) {
	group := r.Group("/auth")
	group.Post("/open", s.formWizard(openWizard))
	group.Post("/close", s.formClose)
	group.Post("/phone", codeLimiter, s.formWizard(submitPhone))
	group.Post("/code", s.formWizard(submitCode))
	group.Post("/back", s.formWizard(goBack))
	group.Post("/name", s.formWizard(submitName))
	group.Post("/logout", func(c *fiber.Ctx) error {
		if err := s.logout(c); err != nil {
			return err
		}
		return c.Redirect("/", http.StatusSeeOther)
	})
}

// RegisterWizardRoutes wires the JSON flavour of the wizard.
func RegisterWizardRoutes(r fiber.Router, s *site, codeLimiter fiber.Handler) {
	group := r.Group("/wizard")
	group.Get("", func(c *fiber.Ctx) error {
		var view wizard.View
		if w, ok := s.wizards.Peek(middleware.VisitorID(c)); ok {
			view = w.View()
		} else {
			view = wizard.View{Step: wizard.StepPhone}
		}
		return c.JSON(wizardResponse{Wizard: view})
	})
	group.Post("/open", s.apiWizard(openWizard))
	group.Post("/close", s.apiClose)
	group.Post("/phone", codeLimiter, s.apiWizard(submitPhone))
	group.Post("/code", s.apiWizard(submitCode))
	group.Post("/back", s.apiWizard(goBack))
	group.Post("/name", s.apiWizard(submitName))
}

func (s *site) parseWizardRequest(c *fiber.Ctx) (wizardRequest, error) {
	var req wizardRequest
	if len(c.Body()) == 0 {
		return req, nil
	}
	if err := c.BodyParser(&req); err != nil {
		return req, fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := s.validate.Struct(req); err != nil {
		return req, fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return req, nil
}

// runWizard applies act to the visitor's wizard and returns its resulting view.
func (s *site) runWizard(c *fiber.Ctx, act wizardAction) (wizard.View, *session.Credential, error) {
	req, err := s.parseWizardRequest(c)
	if err != nil {
		return wizard.View{}, nil, err
	}
	visitorID := middleware.VisitorID(c)
	var w *wizard.Wizard
	if act.opens {
		w = s.wizards.Open(visitorID)
	} else {
		var ok bool
		if w, ok = s.wizards.Peek(visitorID); !ok {
			return wizard.View{Step: wizard.StepPhone}, nil, wizard.ErrClosed
		}
	}
	cred, err := act.run(c.UserContext(), w, req)
	if cred != nil {
		s.wizards.Discard(visitorID, w)
	}
	if err != nil && !wizard.IsValidation(err) {
		s.logger.Warn("wizard event rejected",
			slog.String("visitor_id", visitorID),
			slog.String("path", c.Path()),
			slog.Any("error", err),
		)
	}
	return w.View(), cred, err
}

func (s *site) formWizard(act wizardAction) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, _, err := s.runWizard(c, act); err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return err
			}
		}
		return c.Redirect("/#auth", http.StatusSeeOther)
	}
}

func (s *site) formClose(c *fiber.Ctx) error {
	s.wizards.Release(middleware.VisitorID(c))
	return c.Redirect("/", http.StatusSeeOther)
}

func (s *site) apiWizard(act wizardAction) fiber.Handler {
	return func(c *fiber.Ctx) error {
		view, cred, err := s.runWizard(c, act)
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return err
		}
		resp := wizardResponse{Wizard: view, User: cred}
		if err != nil {
			resp.Error = view.Error
			if resp.Error == "" {
				resp.Error = err.Error()
			}
		}
		return c.Status(wizardStatus(err)).JSON(resp)
	}
}

func (s *site) apiClose(c *fiber.Ctx) error {
	s.wizards.Release(middleware.VisitorID(c))
	return c.JSON(wizardResponse{Wizard: wizard.View{Step: wizard.StepPhone}})
}

func wizardStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case wizard.IsValidation(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, wizard.ErrClosed),
		errors.Is(err, wizard.ErrWrongStep),
		errors.Is(err, wizard.ErrBusy),
		errors.Is(err, wizard.ErrAbandoned):
		return http.StatusConflict
	default:
		return http.StatusServiceUnavailable
	}
}

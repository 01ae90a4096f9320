package server

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/plugfox/hunchworks-server/api"
	"github.com/plugfox/hunchworks-server/internal/controller"
	errs "github.com/plugfox/hunchworks-server/internal/errors"
	"github.com/plugfox/hunchworks-server/internal/model"
)

const templateError = "error"

// hunchParams is the request body of create and update.
// Forms post hunch.<field> inputs, JSON posts {"hunch": {...}}.
type hunchParams struct {
	Hunch  model.Attributes `form:"hunch" json:"hunch"`
	Method string           `form:"_method" json:"-"`
}

func (srv *Server) hunchesIndex(w http.ResponseWriter, r *http.Request) {
	rsp, err := srv.hunches.Index(r.Context())
	if err != nil {
		srv.fail(w, r, err)
		return
	}

	srv.respond(w, r, http.StatusOK, rsp, controller.AssignHunches)
}

func (srv *Server) hunchesShow(w http.ResponseWriter, r *http.Request) {
	rsp, err := srv.hunches.Show(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		srv.fail(w, r, err)
		return
	}

	if wantsJSON(r) {
		hunch, err := assignedHunch(rsp)
		if err != nil {
			srv.fail(w, r, err)
			return
		}

		if hash, err := hunch.Hash(); err == nil {
			etag := fmt.Sprintf(`"%s"`, hash)
			w.Header().Set("ETag", etag)

			if r.Header.Get("If-None-Match") == etag {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
	}

	srv.respond(w, r, http.StatusOK, rsp, controller.AssignHunch)
}

func (srv *Server) hunchesNew(w http.ResponseWriter, r *http.Request) {
	rsp, err := srv.hunches.New(r.Context())
	if err != nil {
		srv.fail(w, r, err)
		return
	}

	srv.respond(w, r, http.StatusOK, rsp, controller.AssignHunch)
}

func (srv *Server) hunchesEdit(w http.ResponseWriter, r *http.Request) {
	rsp, err := srv.hunches.Edit(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		srv.fail(w, r, err)
		return
	}

	srv.respond(w, r, http.StatusOK, rsp, controller.AssignHunch)
}

func (srv *Server) hunchesCreate(w http.ResponseWriter, r *http.Request) {
	params, ok := srv.decodeParams(w, r)
	if !ok {
		return
	}

	rsp, err := srv.hunches.Create(r.Context(), params.Hunch.Permitted())
	if err != nil {
		srv.fail(w, r, err)
		return
	}

	if !rsp.IsRedirect() {
		srv.invalid(w, r, rsp)
		return
	}

	if wantsJSON(r) {
		api.NewResponse().SetData(rsp.Assigned(controller.AssignHunch)).Created(w, r, rsp.Location)
		return
	}

	http.Redirect(w, r, rsp.Location, http.StatusFound)
}

func (srv *Server) hunchesUpdate(w http.ResponseWriter, r *http.Request) {
	params, ok := srv.decodeParams(w, r)
	if !ok {
		return
	}

	rsp, err := srv.hunches.Update(r.Context(), chi.URLParam(r, "id"), params.Hunch.Permitted())
	if err != nil {
		srv.fail(w, r, err)
		return
	}

	if !rsp.IsRedirect() {
		srv.invalid(w, r, rsp)
		return
	}

	if wantsJSON(r) {
		api.NewResponse().SetData(rsp.Assigned(controller.AssignHunch)).Ok(w, r)
		return
	}

	http.Redirect(w, r, rsp.Location, http.StatusFound)
}

func (srv *Server) hunchesDestroy(w http.ResponseWriter, r *http.Request) {
	rsp, err := srv.hunches.Destroy(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		srv.fail(w, r, err)
		return
	}

	if wantsJSON(r) {
		render.NoContent(w, r)
		return
	}

	http.Redirect(w, r, rsp.Location, http.StatusFound)
}

// decodeParams reads the hunch attributes, answering 400 when the body cannot be decoded.
func (srv *Server) decodeParams(w http.ResponseWriter, r *http.Request) (*hunchParams, bool) {
	params := &hunchParams{}
	if err := render.Decode(r, params); err != nil {
		srv.logger.DebugContext(r.Context(), "undecodable hunch params", slog.String("error", err.Error()))

		if wantsJSON(r) {
			api.NewResponse().SetError("bad_request", err.Error()).BadRequest(w, r)
		} else {
			srv.renderError(w, r, http.StatusBadRequest, "Bad request", err.Error())
		}

		return nil, false
	}

	return params, true
}

// invalid answers a create or update that did not save.
func (srv *Server) invalid(w http.ResponseWriter, r *http.Request, rsp *controller.Response) {
	if wantsJSON(r) {
		hunch, err := assignedHunch(rsp)
		if err != nil {
			srv.fail(w, r, err)
			return
		}

		api.NewResponse().SetError("invalid", "Hunch is invalid", hunch.Errors).UnprocessableEntity(w, r)

		return
	}

	srv.html(w, r, http.StatusUnprocessableEntity, rsp.Template, rsp.Assigns)
}

// assignedHunch returns the hunch a controller action assigned.
func assignedHunch(rsp *controller.Response) (*model.Hunch, error) {
	value := rsp.Assigned(controller.AssignHunch)

	hunch, ok := value.(*model.Hunch)
	if !ok || hunch == nil {
		return nil, errs.WrapUnexpectedType("*model.Hunch", value)
	}

	return hunch, nil
}

// respond writes a rendering outcome, as a page or as the JSON envelope around the assigned variable.
func (srv *Server) respond(w http.ResponseWriter, r *http.Request, status int, rsp *controller.Response, assigned string) {
	if wantsJSON(r) {
		render.Status(r, status)
		render.JSON(w, r, &api.Response{Status: "ok", Data: rsp.Assigned(assigned)})

		return
	}

	srv.html(w, r, status, rsp.Template, rsp.Assigns)
}

// fail maps controller errors to a response status.
func (srv *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, errs.ErrorNotFound) || errors.Is(err, errs.ErrorInvalidID) {
		if wantsJSON(r) {
			api.NewResponse().SetError("not_found", err.Error()).NotFound(w, r)
		} else {
			srv.renderError(w, r, http.StatusNotFound, "Not found", err.Error())
		}

		return
	}

	srv.logger.ErrorContext(r.Context(), "hunch request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)

	if wantsJSON(r) {
		api.NewResponse().InternalServerError(w, r)
	} else {
		srv.renderError(w, r, http.StatusInternalServerError, "Internal server error", "Something went wrong.")
	}
}

func (srv *Server) notFound(w http.ResponseWriter, r *http.Request) {
	if wantsJSON(r) {
		api.NewResponse().NotFound(w, r)
		return
	}

	srv.renderError(w, r, http.StatusNotFound, "Not found", "The page you were looking for doesn't exist.")
}

// unauthorized rejects a write without a valid token.
func (srv *Server) unauthorized(w http.ResponseWriter, r *http.Request, message string) {
	if wantsJSON(r) {
		api.NewResponse().SetError("unauthorized", message).Unauthorized(w, r)
		return
	}

	srv.renderError(w, r, http.StatusUnauthorized, "Unauthorized", message)
}

func (srv *Server) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	if wantsJSON(r) {
		api.NewResponse().MethodNotAllowed(w, r)
		return
	}

	srv.renderError(w, r, http.StatusMethodNotAllowed, "Method not allowed", r.Method+" is not supported here.")
}

func (srv *Server) renderError(w http.ResponseWriter, r *http.Request, status int, title string, message string) {
	srv.html(w, r, status, templateError, map[string]any{
		"status":  status,
		"title":   title,
		"message": message,
	})
}

// html renders the page before writing anything, so a failing template still gets a clean 500.
func (srv *Server) html(w http.ResponseWriter, r *http.Request, status int, name string, assigns map[string]any) {
	var buf bytes.Buffer
	if err := srv.views.Render(&buf, name, assigns); err != nil {
		srv.logger.ErrorContext(r.Context(), "rendering page failed", slog.String("template", name), slog.String("error", err.Error()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	render.Status(r, status)
	render.HTML(w, r, buf.String())
}

// wantsJSON reports whether the client asked for JSON, by Accept header or a .json suffix.
func wantsJSON(r *http.Request) bool {
	if format, _ := r.Context().Value(middleware.URLFormatCtxKey).(string); format == "json" {
		return true
	}

	return render.GetAcceptedContentType(r) == render.ContentTypeJSON
}

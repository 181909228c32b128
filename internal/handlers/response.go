package handlers

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/fasthttp/router"
	"github.com/nimasrn/donor-hub/internal/model"
	xhttp "github.com/nimasrn/donor-hub/pkg/http"
	"github.com/nimasrn/donor-hub/pkg/logger"
)

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

type listResponse[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
}

type statusRequest struct {
	Status string `json:"status"`
}

// AdminGroup registers routes behind the admin guard.
type AdminGroup struct {
	group *router.Group
	guard xhttp.MiddlewareFunc
}

func NewAdminGroup(group *router.Group, guard xhttp.MiddlewareFunc) *AdminGroup {
	return &AdminGroup{group: group, guard: guard}
}

func (a *AdminGroup) GET(path string, h xhttp.RequestHandler) {
	a.group.GET(path, a.guard(h))
}

func (a *AdminGroup) POST(path string, h xhttp.RequestHandler) {
	a.group.POST(path, a.guard(h))
}

func (a *AdminGroup) PATCH(path string, h xhttp.RequestHandler) {
	a.group.PATCH(path, a.guard(h))
}

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrValidation),
		errors.Is(err, model.ErrInvalidState),
		errors.Is(err, model.ErrInvalidSignature):
		return xhttp.StatusBadRequest
	case errors.Is(err, model.ErrNotFound):
		return xhttp.StatusNotFound
	case errors.Is(err, model.ErrConflict):
		return xhttp.StatusConflict
	}
	return xhttp.StatusInternalServerError
}

func readJSON(ctx *xhttp.RequestCtx, dst any) error {
	return json.Unmarshal(ctx.PostBody(), dst)
}

func writeJSON(ctx *xhttp.RequestCtx, status int, v any) {
	b, _ := json.Marshal(v)
	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.Response.SetStatusCode(status)
	ctx.Response.SetBodyRaw(b)
}

func writeData(ctx *xhttp.RequestCtx, status int, data any) {
	writeJSON(ctx, status, envelope{Success: true, Data: data})
}

func writeMessage(ctx *xhttp.RequestCtx, status int, msg string) {
	writeJSON(ctx, status, envelope{Success: false, Message: msg})
}

// writeError hides the cause of unclassified failures from the caller.
func writeError(ctx *xhttp.RequestCtx, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == xhttp.StatusInternalServerError {
		logger.Error("request failed", "path", string(ctx.Path()), "error", err)
		msg = xhttp.StatusText(status)
		if errors.Is(err, model.ErrTransient) {
			msg = model.ErrTransient.Error()
		}
	}
	writeMessage(ctx, status, msg)
}

func invalidJSON(ctx *xhttp.RequestCtx, err error) {
	writeMessage(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
}

func pathInt64(ctx *xhttp.RequestCtx, name string) (int64, bool) {
	v, _ := ctx.UserValue(name).(string)
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		writeMessage(ctx, xhttp.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

func pathString(ctx *xhttp.RequestCtx, name string) string {
	v, _ := ctx.UserValue(name).(string)
	return v
}

func query(ctx *xhttp.RequestCtx, key string) string {
	return string(ctx.QueryArgs().Peek(key))
}

func listFilter(ctx *xhttp.RequestCtx) model.ListFilter {
	var f model.ListFilter
	f.Status = strings.TrimSpace(query(ctx, "status"))
	if v := query(ctx, "limit"); v != "" {
		if n, e := strconv.Atoi(v); e == nil {
			f.Limit = n
		}
	}
	if v := query(ctx, "offset"); v != "" {
		if n, e := strconv.Atoi(v); e == nil {
			f.Offset = n
		}
	}
	if strings.EqualFold(query(ctx, "order"), "desc") {
		f.Desc = true
	}
	return f
}

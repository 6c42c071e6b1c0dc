package ez

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	mdw "go-bookstore-api/internal/transport/http/middleware"
	resp "go-bookstore-api/internal/transport/http/response"
)

/* ================== 轻封装 ================== */

type EZ struct{ g *gin.RouterGroup }

func New(g *gin.RouterGroup) EZ { return EZ{g: g} }

func (e EZ) GET(path string, h func(c *gin.Context) (any, error)) {
	e.g.GET(path, func(c *gin.Context) {
		data, err := h(c)
		if err != nil {
			writeErr(c, err)
			return
		}
		c.JSON(http.StatusOK, resp.OK(data))
	})
}

/* ================== Action（非 CRUD 一行注册） ================== */

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param / c.PostForm 取
)

// 统一错误对象（配合 resp.Error(int, msg)）
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}
func BadRequest(msg string) error   { return &AErr{Code: resp.CodeBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: resp.CodeUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Code: resp.CodeForbidden, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: resp.CodeNotFound, Msg: msg} }
func Conflict(msg string) error     { return &AErr{Code: resp.CodeConflict, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: resp.CodeServerError, Msg: msg, Err: err}
}

// 动作定义：I 入参，O 出参。
// 角色白名单走分组中间件（RequireRoles），Auth 只是兜底检查 principal 是否在。
type Action[I any, O any] struct {
	Method  string // "GET" | "POST" | "PUT" | "DELETE"
	Path    string // 例："/auth/login"、"/orders/:id/status"
	Binder  Binder // 绑定方式
	Auth    bool   // 是否要求已解析出 username
	Handler func(c *gin.Context, in *I) (O, error)
}

// Register 在当前 EZ 下注册动作接口
func Register[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		// 1) principal 兜底（正常情况下分组中间件已拦截）
		if a.Auth && c.GetString(mdw.KeyUsername) == "" {
			c.JSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "unauthorized"))
			return
		}

		// 2) 绑定入参
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		default: // BindNone: 不绑定
		}
		if bindErr != nil {
			c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, bindErr.Error()))
			return
		}

		// 3) 执行 + 统一错误映射
		out, err := a.Handler(c, &in)
		if err != nil {
			writeErr(c, err)
			return
		}
		c.JSON(http.StatusOK, resp.OK(out))
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default: // 默认 POST
		e.g.POST(a.Path, h)
	}
}

func writeErr(c *gin.Context, err error) {
	var ae *AErr
	if errors.As(err, &ae) {
		c.JSON(http.StatusOK, resp.Error(ae.Code, ae.Error()))
		return
	}
	c.JSON(http.StatusOK, resp.Error(resp.CodeServerError, err.Error()))
}

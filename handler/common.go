package handler

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"Foodgram/pkg/errs"
	"Foodgram/types"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// bindJSON 解析请求体，校验失败转换为带字段名的 Validation 错误
func bindJSON(c *gin.Context, obj any) error {
	return bindError(c.ShouldBindJSON(obj))
}

func bindQuery(c *gin.Context, obj any) error {
	return bindError(c.ShouldBindQuery(obj))
}

func bindError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return errs.Validation(fe.Field(), "failed on the '%s' rule", fe.Tag()).Wrap(err)
	}
	if errors.Is(err, io.EOF) {
		return errs.Validation("", "request body is empty")
	}
	return errs.Validation("", "malformed request").Wrap(err)
}

// paramID 读取路径中的数字 id
func paramID(c *gin.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errs.NotFound("%s %q not found", name, c.Param(name))
	}
	return id, nil
}

// newPage 组装分页响应，next / previous 为完整链接
func newPage[T any](c *gin.Context, q types.PageQuery, total int64, items []T) types.Page[T] {
	page := types.Page[T]{Count: total, Results: items}
	if page.Results == nil {
		page.Results = []T{}
	}
	if int64(q.Offset()+len(items)) < total {
		next := pageURL(c, q.Page+1)
		page.Next = &next
	}
	if q.Page > 1 {
		prev := pageURL(c, q.Page-1)
		page.Previous = &prev
	}
	return page
}

func pageURL(c *gin.Context, page int) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	u := url.URL{Scheme: scheme, Host: c.Request.Host, Path: c.Request.URL.Path}
	query := c.Request.URL.Query()
	if page <= 1 {
		query.Del("page")
	} else {
		query.Set("page", strconv.Itoa(page))
	}
	u.RawQuery = query.Encode()
	return u.String()
}

func attachment(filename string) string {
	return fmt.Sprintf("attachment; filename=%q", filename)
}

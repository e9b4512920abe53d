package network

import (
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/samber/lo"
)

func newCookie(name, value string) *http.Cookie {
	return &http.Cookie{Name: name, Value: value}
}

// Cookies returns the cookies a response set, by name.
func Cookies(res *resty.Response) map[string]string {
	return lo.SliceToMap(res.Cookies(), func(c *http.Cookie) (string, string) {
		return c.Name, c.Value
	})
}

// MergeCookies returns base overlaid with update. Neither input is modified.
func MergeCookies(base, update map[string]string) map[string]string {
	return lo.Assign(base, update)
}

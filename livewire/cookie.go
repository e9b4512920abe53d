package livewire

import (
	"net/http"
	"sort"

	"github.com/samber/lo"
)

func cookieList(cookies map[string]string) []*http.Cookie {
	names := lo.Keys(cookies)
	sort.Strings(names)

	return lo.Map(names, func(name string, _ int) *http.Cookie {
		return &http.Cookie{Name: name, Value: cookies[name]}
	})
}

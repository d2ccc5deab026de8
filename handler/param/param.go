package param

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/go-chi/chi"
	"github.com/gorilla/schema"
	"github.com/spf13/cast"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.SetAliasTag("json")
	decoder.IgnoreUnknownKeys(true)
}

// Binding decode query parameters, and the json body of requests carrying
// one, into v then check its valid tags
func Binding(r *http.Request, v interface{}) error {
	if err := decoder.Decode(v, r.URL.Query()); err != nil {
		return err
	}

	typ := r.Header.Get("Content-Type")
	if r.Body != nil && r.ContentLength != 0 && (typ == "" || strings.HasPrefix(typ, "application/json")) {
		if err := json.NewDecoder(r.Body).Decode(v); err != nil {
			return err
		}
	}

	_, err := govalidator.ValidateStruct(v)
	return err
}

// String url param
func String(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}

// Uint64 url param as uint64, zero if malformed
func Uint64(r *http.Request, key string) uint64 {
	return cast.ToUint64(chi.URLParam(r, key))
}

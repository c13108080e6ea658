// Package httpmod implements Latch's `http` host module: outbound HTTP
// requests returning value.Response records (spec.md §4.5: "`http.*`
// results are `Response` records").
//
// Grounded on the interpreter it evolved from's builtin_io_net.go/std_io_net.go net/http
// wrapper and original_source/src/runtime/http.rs. net/http and net/url
// are stdlib and the only HTTP client anywhere in the example pack.
package httpmod

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/latch-lang/latch/internal/token"
	"github.com/latch-lang/latch/internal/value"
)

var client = &http.Client{Timeout: 30 * time.Second}

func Module() map[string]*value.Builtin {
	return map[string]*value.Builtin{
		"get":  {Name: "http.get", Arity: -1, Impl: get},
		"post": {Name: "http.post", Arity: -1, Impl: post},
	}
}

// get implements http.get(url, headers?) -> Response.
func get(args []value.Value) (value.Value, *value.RuntimeError) {
	if len(args) < 1 || len(args) > 2 {
		return value.Value{}, value.NewError(value.ArityError, token.Span{}, "http.get expects 1 or 2 arguments")
	}
	u, err := argString(args, 0, "http.get")
	if err != nil {
		return value.Value{}, err
	}
	req, rerr := http.NewRequest(http.MethodGet, u, nil)
	if rerr != nil {
		return value.Value{}, value.NewError(value.NetworkError, token.Span{}, "http.get(%q): %s", u, rerr)
	}
	if len(args) == 2 {
		if err := applyHeaders(req, args[1]); err != nil {
			return value.Value{}, err
		}
	}
	return doRequest(req)
}

// post implements http.post(url, body?, headers?) -> Response. body, when
// given, is a string sent verbatim; a dict body is form-encoded, matching
// http.rs's behavior of treating a map body as application/x-www-form-urlencoded.
func post(args []value.Value) (value.Value, *value.RuntimeError) {
	if len(args) < 1 || len(args) > 3 {
		return value.Value{}, value.NewError(value.ArityError, token.Span{}, "http.post expects 1 to 3 arguments")
	}
	u, err := argString(args, 0, "http.post")
	if err != nil {
		return value.Value{}, err
	}

	var body io.Reader
	contentType := ""
	if len(args) >= 2 {
		switch args[1].Tag {
		case value.TagString:
			body = strings.NewReader(args[1].AsString())
		case value.TagDict:
			form := url.Values{}
			d := args[1].AsDict()
			for _, k := range d.SortedKeys() {
				form.Set(k, value.Format(d.Entries[k]))
			}
			body = strings.NewReader(form.Encode())
			contentType = "application/x-www-form-urlencoded"
		case value.TagNull:
			// no body
		default:
			return value.Value{}, value.NewError(value.TypeError, token.Span{}, "http.post body must be a string or dict")
		}
	}

	req, rerr := http.NewRequest(http.MethodPost, u, body)
	if rerr != nil {
		return value.Value{}, value.NewError(value.NetworkError, token.Span{}, "http.post(%q): %s", u, rerr)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if len(args) == 3 {
		if err := applyHeaders(req, args[2]); err != nil {
			return value.Value{}, err
		}
	}
	return doRequest(req)
}

func applyHeaders(req *http.Request, headers value.Value) *value.RuntimeError {
	if headers.Tag == value.TagNull {
		return nil
	}
	if headers.Tag != value.TagDict {
		return value.NewError(value.TypeError, token.Span{}, "headers must be a dict")
	}
	d := headers.AsDict()
	for _, k := range d.SortedKeys() {
		v := d.Entries[k]
		if v.Tag != value.TagString {
			return value.NewError(value.TypeError, token.Span{}, "header %q must be a string", k)
		}
		req.Header.Set(k, v.AsString())
	}
	return nil
}

func doRequest(req *http.Request) (value.Value, *value.RuntimeError) {
	resp, err := client.Do(req)
	if err != nil {
		return value.Value{}, value.NewError(value.NetworkError, token.Span{}, "%s %s: %s", req.Method, req.URL, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return value.Value{}, value.NewError(value.NetworkError, token.Span{}, "%s %s: reading body: %s", req.Method, req.URL, err)
	}

	headers := value.NewDict()
	for k := range resp.Header {
		headers.Set(k, value.Str(resp.Header.Get(k)))
	}

	return value.ResponseValue(&value.Response{
		Status:  int64(resp.StatusCode),
		Body:    string(data),
		Headers: headers,
	}), nil
}

func argString(args []value.Value, i int, op string) (string, *value.RuntimeError) {
	if args[i].Tag != value.TagString {
		return "", value.NewError(value.TypeError, token.Span{}, "%s expects a string argument", op)
	}
	return args[i].AsString(), nil
}
